// Package parallel provides parallel execution infrastructure for series
// compute kernels.
//
// Element-wise kernels over large series split their input into contiguous
// chunks and fan the chunks out over a worker pool; each worker writes into a
// disjoint range of the shared output slice, so no synchronization beyond the
// final join is needed. Kernels below the configured threshold run
// sequentially on the calling goroutine.
//
// Results are required to be identical to a sequential execution, so only
// kernels whose per-element work is independent of evaluation order go
// through this package.
package parallel

import (
	"runtime"
	"sync"
)

// WorkerPool bounds the number of goroutines used by chunked kernel execution.
type WorkerPool struct {
	numWorkers int
}

// NewWorkerPool creates a worker pool. A non-positive size auto-detects from
// the CPU count.
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{numWorkers: numWorkers}
}

// NumWorkers returns the pool size.
func (wp *WorkerPool) NumWorkers() int {
	return wp.numWorkers
}

// Range is a half-open index interval [Lo, Hi).
type Range struct {
	Lo, Hi int
}

// Chunks splits n elements into contiguous ranges of roughly chunkSize
// elements. A non-positive chunkSize derives one from the pool size so every
// worker gets at least one chunk.
func (wp *WorkerPool) Chunks(n, chunkSize int) []Range {
	if n <= 0 {
		return nil
	}
	if chunkSize <= 0 {
		chunkSize = (n + wp.numWorkers - 1) / wp.numWorkers
		if chunkSize < 1 {
			chunkSize = 1
		}
	}
	ranges := make([]Range, 0, (n+chunkSize-1)/chunkSize)
	for lo := 0; lo < n; lo += chunkSize {
		hi := lo + chunkSize
		if hi > n {
			hi = n
		}
		ranges = append(ranges, Range{Lo: lo, Hi: hi})
	}
	return ranges
}

// MapChunks runs fn over every chunk of [0, n) on the pool's workers and
// blocks until all chunks complete. fn must only touch state belonging to its
// own range.
func (wp *WorkerPool) MapChunks(n, chunkSize int, fn func(lo, hi int)) {
	ranges := wp.Chunks(n, chunkSize)
	if len(ranges) == 0 {
		return
	}
	if len(ranges) == 1 {
		fn(ranges[0].Lo, ranges[0].Hi)
		return
	}

	rangeCh := make(chan Range, len(ranges))
	for _, r := range ranges {
		rangeCh <- r
	}
	close(rangeCh)

	workers := wp.numWorkers
	if workers > len(ranges) {
		workers = len(ranges)
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for r := range rangeCh {
				fn(r.Lo, r.Hi)
			}
		}()
	}
	wg.Wait()
}

// Process executes independent work items in parallel and returns the results
// in input order.
func Process[T, R any](wp *WorkerPool, items []T, worker func(T) R) []R {
	if len(items) == 0 {
		return nil
	}

	results := make([]R, len(items))
	wp.MapChunks(len(items), 1, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			results[i] = worker(items[i])
		}
	})
	return results
}
