package analysis

import (
	"runtime"
	"sync"
)

// parallelFor splits [0, n) into at most workers contiguous chunks of at
// least minChunk items and runs fn on each concurrently.
func parallelFor(n, minChunk, workers int, fn func(start, end int)) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	minChunk = max(minChunk, 1)
	if n <= minChunk || workers <= 1 {
		fn(0, n)
		return
	}
	workers = max(1, min(workers, n/minChunk))
	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}
