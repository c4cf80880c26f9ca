package pool

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Pool bounds the number of goroutines used to run independent jobs.
//
// A nil *Pool is valid and runs every job on the calling goroutine.
type Pool struct {
	workers int
}

// NewPool creates a Pool running at most count jobs at once.
// A count of 0 or less uses runtime.NumCPU().
func NewPool(count int) *Pool {
	if count <= 0 {
		count = runtime.NumCPU()
	}
	return &Pool{workers: count}
}

// Workers returns the concurrency limit, 1 for a nil Pool.
func (p *Pool) Workers() int {
	if p == nil {
		return 1
	}
	return p.workers
}

// Go calls f(i) for i in [0, count) and returns the first non-nil error.
// Jobs not yet started when an error occurs are skipped.
func (p *Pool) Go(count int, f func(i int) error) error {
	if p == nil || p.workers == 1 {
		for i := 0; i < count; i++ {
			if err := f(i); err != nil {
				return err
			}
		}
		return nil
	}

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(p.workers)
	for i := 0; i < count; i++ {
		i := i
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			return f(i)
		})
	}
	return g.Wait()
}
