package raster

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/seqsense/pcdoverlay/overlay"
	"github.com/seqsense/pcdoverlay/raycast"
)

// forEachRow calls fn for every row concurrently. Rows never share pixels,
// so fn may write its own row without locking.
func (t *Target) forEachRow(ctx context.Context, fn func(y int)) error {
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for y := 0; y < t.Height; y++ {
		if egCtx.Err() != nil {
			break
		}
		y := y
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			fn(y)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// Draw runs s on every pixel of the target.
func (t *Target) Draw(ctx context.Context, s overlay.Shader, st State) error {
	step := t.pixelStep()
	return t.forEachRow(ctx, func(y int) {
		for x := 0; x < t.Width; x++ {
			f, ok := s.Shade(overlay.Pixel{
				NDC:  raycast.PixelCenter(x, y, t.Width, t.Height),
				Step: step,
			})
			if !ok {
				continue
			}
			t.write(x, y, f, st)
		}
	})
}

// primitive is a screen space shape covering a range of rows.
type primitive interface {
	rows(height int) (y0, y1 int)
	drawRow(t *Target, y int, st State)
}

// drawPrimitives draws rows in parallel. Within a row primitives are drawn
// in slice order, so the result is the same as a serial draw.
func (t *Target) drawPrimitives(ctx context.Context, prims []primitive, st State) error {
	buckets := make([][]primitive, t.Height)
	for _, p := range prims {
		y0, y1 := p.rows(t.Height)
		if y0 < 0 {
			y0 = 0
		}
		if y1 > t.Height-1 {
			y1 = t.Height - 1
		}
		for y := y0; y <= y1; y++ {
			buckets[y] = append(buckets[y], p)
		}
	}
	return t.forEachRow(ctx, func(y int) {
		for _, p := range buckets[y] {
			p.drawRow(t, y, st)
		}
	})
}
