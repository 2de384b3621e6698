package storage

import (
	"sync"
	"testing"
)

func TestIDSourceMonotonic(t *testing.T) {
	var ids IDSource

	prev := ids.Next()
	for i := 0; i < 1000; i++ {
		next := ids.Next()
		if next <= prev {
			t.Fatalf("id %d not greater than previous %d", next, prev)
		}
		prev = next
	}
}

func TestIDSourceUniqueUnderConcurrency(t *testing.T) {
	var ids IDSource

	const workers = 8
	const perWorker = 200

	var mu sync.Mutex
	seen := make(map[int64]bool, workers*perWorker)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				id := ids.Next()
				mu.Lock()
				if seen[id] {
					mu.Unlock()
					t.Errorf("duplicate id %d", id)
					return
				}
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
}
