// Package parallel provides the data-parallel iteration primitives the
// coinbase puzzle engine uses for its hot loops: NTT butterflies, pointwise
// polynomial products, per-solution polynomial derivation, and MSM input
// preparation. It generalizes a goroutine/sync.WaitGroup fan-out pattern
// into a flat, chunked "range over CPU cores" helper, and a generic
// associative fold on top of it.
//
// Every reduction performed with Fold uses a fixed, index-ordered folding
// of per-chunk partial results, so the result is identical regardless of
// how many goroutines ran it — satisfying the determinism requirement that
// outputs must be bit-identical across thread-pool sizes.
package parallel

import "runtime"

// Range splits [0, n) into contiguous chunks, one per available CPU, and
// runs fn(lo, hi) for each chunk on its own goroutine, blocking until all
// chunks complete. When n is 1, or when only one CPU is available, it
// runs fn(0, n) directly on the calling goroutine.
func Range(n int, fn func(lo, hi int)) {
	if n <= 0 {
		return
	}
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		fn(0, n)
		return
	}

	chunk := (n + workers - 1) / workers
	done := make(chan struct{}, workers)
	launched := 0
	for lo := 0; lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		launched++
		go func(lo, hi int) {
			fn(lo, hi)
			done <- struct{}{}
		}(lo, hi)
	}
	for i := 0; i < launched; i++ {
		<-done
	}
}

// Fold computes a data-parallel, order-independent reduction of items[0:n]
// using combine as an associative binary operator with identity zero.
// mapFn(i) produces the per-index contribution; partial results are
// combined per chunk in index order, then chunks are combined in chunk
// order, so the result does not depend on scheduling.
func Fold[T any](n int, zero T, mapFn func(i int) T, combine func(a, b T) T) T {
	if n <= 0 {
		return zero
	}
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		acc := zero
		for i := 0; i < n; i++ {
			acc = combine(acc, mapFn(i))
		}
		return acc
	}

	chunk := (n + workers - 1) / workers
	nChunks := (n + chunk - 1) / chunk
	partials := make([]T, nChunks)
	// Fold schedules its own chunks (rather than delegating to Range) so
	// each goroutine can own exactly one slot of partials by index.
	done := make(chan struct{}, nChunks)
	idx := 0
	for lo := 0; lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		go func(slot, lo, hi int) {
			acc := zero
			for i := lo; i < hi; i++ {
				acc = combine(acc, mapFn(i))
			}
			partials[slot] = acc
			done <- struct{}{}
		}(idx, lo, hi)
		idx++
	}
	for i := 0; i < idx; i++ {
		<-done
	}
	acc := zero
	for i := 0; i < idx; i++ {
		acc = combine(acc, partials[i])
	}
	return acc
}

// Map applies fn to every index in [0, n) in parallel, writing into out.
// out must have length n. Useful when each iteration only needs to write
// its own slot (no reduction), e.g. per-solution polynomial derivation.
func Map[T any](n int, out []T, fn func(i int) T) {
	if len(out) != n {
		panic("parallel.Map: out has wrong length")
	}
	Range(n, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			out[i] = fn(i)
		}
	})
}
