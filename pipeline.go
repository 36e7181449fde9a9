package gapsweep

import (
	"sync"

	"github.com/samber/lo"
)

// task splits data into one contiguous chunk per worker. Each worker reduces its chunk on its own
// and the partial results come back in chunk order, so merging them keeps the order of data.
func task[T, R any](workersCount int, data []T, fn func(chunk []T) R) []R {
	if len(data) == 0 {
		return nil
	}
	chunkSize := (len(data) + workersCount - 1) / workersCount
	chunks := lo.Chunk(data, chunkSize)
	results := make([]R, len(chunks))

	var wg sync.WaitGroup
	for i, chunk := range chunks {
		wg.Add(1)
		go func(i int, chunk []T) {
			defer wg.Done()
			results[i] = fn(chunk)
		}(i, chunk)
	}
	wg.Wait()

	return results
}
