// Package worker provides bounded concurrency helpers for batch scoring
// and evidence fetching.
package worker

import (
	"context"
	"sync"
)

// Pool runs a fixed number of workers over an indexed task list.
// Results come back in input order regardless of completion order.
type Pool[T any] struct {
	workers int
}

// NewPool creates a pool with the given number of workers
func NewPool[T any](workers int) *Pool[T] {
	if workers <= 0 {
		workers = 1
	}
	return &Pool[T]{workers: workers}
}

// Map applies fn to every index in [0, n) and returns the results indexed
// by input position. When ctx is cancelled, remaining tasks still run so
// the result slice is fully populated; fn is responsible for honoring ctx.
func (p *Pool[T]) Map(ctx context.Context, n int, fn func(ctx context.Context, idx int) T) []T {
	if n <= 0 {
		return nil
	}

	results := make([]T, n)
	jobs := make(chan int)

	workers := p.workers
	if workers > n {
		workers = n
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = fn(ctx, idx)
			}
		}()
	}

	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}
