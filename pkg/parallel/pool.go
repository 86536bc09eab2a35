// Package parallel runs data-parallel loops over index ranges on a bounded
// number of goroutines.
package parallel

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// chunksPerWorker oversubscribes the pool a little so uneven chunks
// (triangles of very different sizes) still balance.
const chunksPerWorker = 4

// Pool is a fixed-size worker pool. The zero value runs one worker.
// A Pool holds no goroutines between calls and is safe for concurrent use.
type Pool struct {
	workers int
}

// New creates a pool running at most workers goroutines at once.
// workers <= 0 selects runtime.GOMAXPROCS(0).
func New(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Pool{workers: workers}
}

// Workers returns the concurrency limit.
func (p *Pool) Workers() int {
	return max(p.workers, 1)
}

// Chunks splits [0, n) into contiguous half-open ranges.
func (p *Pool) Chunks(n int) [][2]int {
	if n <= 0 {
		return nil
	}
	per := p.Workers() * chunksPerWorker
	size := (n + per - 1) / per
	if size < 1 {
		size = 1
	}
	out := make([][2]int, 0, (n+size-1)/size)
	for lo := 0; lo < n; lo += size {
		out = append(out, [2]int{lo, min(lo+size, n)})
	}
	return out
}

// For calls fn once per chunk of [0, n), with up to Workers chunks in
// flight. Chunks run in no particular order. The first error cancels the
// remaining chunks and is returned; so is ctx's error if it is canceled
// before every chunk started.
func (p *Pool) For(ctx context.Context, n int, fn func(lo, hi int) error) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.Workers())

	for _, c := range p.Chunks(n) {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(c[0], c[1])
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// Collect runs fn over chunks of [0, n) like For and concatenates the
// returned slices in completion order. Callers that need input order must
// restore it themselves.
func Collect[T any](ctx context.Context, p *Pool, n int, fn func(lo, hi int) ([]T, error)) ([]T, error) {
	var (
		mu  sync.Mutex
		out = make([]T, 0, n)
	)
	err := p.For(ctx, n, func(lo, hi int) error {
		part, err := fn(lo, hi)
		if err != nil {
			return err
		}
		mu.Lock()
		out = append(out, part...)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Map applies fn to every element of in and returns the results in input
// order. Each worker writes a disjoint range of the output.
func Map[T, U any](ctx context.Context, p *Pool, in []T, fn func(T) U) ([]U, error) {
	out := make([]U, len(in))
	err := p.For(ctx, len(in), func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			out[i] = fn(in[i])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
