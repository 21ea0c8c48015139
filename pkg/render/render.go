package render

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/taigrr/whitted/pkg/scene"
)

// ProgressFunc is called after each finished row with the number of rows
// done so far. With several workers it is called from their goroutines.
type ProgressFunc func(done, total int)

type options struct {
	workers  int
	progress ProgressFunc
}

// Option configures Render.
type Option func(*options)

// WithWorkers renders rows on n goroutines. Values below 2 render
// sequentially on the calling goroutine.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithProgress registers a row completion callback.
func WithProgress(fn ProgressFunc) Option {
	return func(o *options) { o.progress = fn }
}

// Render traces one primary ray per pixel and returns the linear colors.
// Each row is independent, so the result does not depend on the worker
// count. Cancelling ctx stops scheduling rows and returns ctx.Err().
func Render(ctx context.Context, s *scene.Scene, opts ...Option) (*Framebuffer, error) {
	o := options{workers: 1}
	for _, opt := range opts {
		opt(&o)
	}

	fb := NewFramebuffer(s.Width, s.Height)
	cam := NewCamera(s)

	var done atomic.Int64
	renderRow := func(j int) {
		row := fb.Row(j)
		for i := range row {
			row[i] = CastRay(cam.PrimaryRay(i, j), s, 0)
		}
		n := int(done.Add(1))
		if o.progress != nil {
			o.progress(n, s.Height)
		}
	}

	if o.workers < 2 {
		for j := range s.Height {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			renderRow(j)
		}
		return fb, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for j := range s.Height {
		if err := gctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			renderRow(j)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// The loop may stop on cancellation before any row fails.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return fb, nil
}
