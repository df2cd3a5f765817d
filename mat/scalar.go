package mat

import (
	"github.com/chewxy/math32"
)

func Fract(x float32) float32 {
	return x - math32.Floor(x)
}

func Clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}

func Clamp01(x float32) float32 {
	return Clamp(x, 0, 1)
}

func Radians(deg float32) float32 {
	return deg * math32.Pi / 180
}
