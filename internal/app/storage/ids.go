package storage

import (
	"sync"
	"time"
)

// IDSource hands out unique, orderable identifiers. Values are based on the
// current wall clock in milliseconds and bumped monotonically on collision,
// so ids remain unique under bursts of requests within the same millisecond.
type IDSource struct {
	mu   sync.Mutex
	last int64
}

// Next returns the next identifier.
func (s *IDSource) Next() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := time.Now().UnixMilli()
	if id <= s.last {
		id = s.last + 1
	}
	s.last = id
	return id
}
