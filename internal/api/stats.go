package api

import (
	"sync"
	"time"
)

// Stats aggregates viewer request counts per route.
type Stats struct {
	mu        sync.RWMutex
	startTime time.Time
	requests  map[string]int64
	total     int64
}

// NewStats creates an empty collector.
func NewStats() *Stats {
	return &Stats{
		startTime: time.Now(),
		requests:  make(map[string]int64),
	}
}

// Record counts one request against a route.
func (s *Stats) Record(route string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests[route]++
	s.total++
}

// Snapshot is the serializable view of the collector.
type Snapshot struct {
	TotalRequests   int64            `json:"totalRequests"`
	RequestsByRoute map[string]int64 `json:"requestsByRoute"`
	StartTime       time.Time        `json:"startTime"`
	Uptime          string           `json:"uptime"`
}

// Snapshot returns a copy of the current counters.
func (s *Stats) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byRoute := make(map[string]int64, len(s.requests))
	for k, v := range s.requests {
		byRoute[k] = v
	}

	return Snapshot{
		TotalRequests:   s.total,
		RequestsByRoute: byRoute,
		StartTime:       s.startTime,
		Uptime:          time.Since(s.startTime).Round(time.Second).String(),
	}
}
