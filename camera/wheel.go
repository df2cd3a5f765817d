package camera

import (
	"math"
	"time"
)

const (
	binaryDetectCnt = 4
	initialPeak     = 10
	maxInterval     = 0.1
	peakDecay       = 0.95
	continuousScale = 250
)

type wheelKind int

const (
	wheelUnknown wheelKind = iota
	wheelBinary
	wheelContinuous
)

// WheelNormalizer maps raw wheel deltas of different devices to a common
// scale. Notched wheels reporting a constant step are mapped to ±1,
// continuous devices are scaled by their recent peak rate.
type WheelNormalizer struct {
	// Now is used as the clock if set.
	Now func() time.Time

	events int
	kind   wheelKind
	peak   float64

	repeat  int
	lastAbs float64

	lastTime time.Time
	pending  float64
}

func (n *WheelNormalizer) now() time.Time {
	if n.Now != nil {
		return n.Now()
	}
	return time.Now()
}

// Ready reports whether enough events have been seen to classify the
// device.
func (n *WheelNormalizer) Ready() bool {
	return n.events > binaryDetectCnt
}

// Normalize returns the normalized delta and Ready as of before the event.
func (n *WheelNormalizer) Normalize(d float64) (float64, bool) {
	ready := n.Ready()
	if !ready {
		n.events++
	}
	abs := math.Abs(d)
	if abs == 0 {
		return 0, ready
	}

	n.classify(abs)
	n.track(d)

	if n.kind == wheelBinary {
		return math.Copysign(1, d), ready
	}
	return d * continuousScale / n.peak, ready
}

// classify treats a device repeating the same step as a notched wheel.
func (n *WheelNormalizer) classify(abs float64) {
	if abs == n.lastAbs {
		n.repeat++
	} else {
		n.repeat = 0
	}
	n.lastAbs = abs

	kind := wheelContinuous
	if n.repeat > binaryDetectCnt {
		kind = wheelBinary
	}
	if kind != n.kind {
		n.kind = kind
		n.peak = initialPeak
	}
}

// track follows the peak delta rate per second. Events arriving at the
// same instant are accumulated.
func (n *WheelNormalizer) track(d float64) {
	n.pending += d
	now := n.now()
	if dt := now.Sub(n.lastTime).Seconds(); dt > 0 {
		rate := math.Abs(n.pending / math.Min(dt, maxInterval))
		n.pending = 0
		n.lastTime = now
		if n.peak < rate {
			// low pass to suppress spikes
			n.peak = (n.peak + rate) / 2
		}
		n.peak *= peakDecay
	}
	if n.peak < 1 {
		n.peak = 1
	}
}
