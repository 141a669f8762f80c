package observability

import (
	"strconv"
	"sync"
	"time"
)

type counterKey struct {
	path   string
	method string
	label  string
}

// Metrics keeps in-process request and error counters. Totals are exposed
// for inspection; there is no external metrics backend.
type Metrics struct {
	mu       sync.RWMutex
	requests map[counterKey]int64
	errors   map[counterKey]int64
}

// NewMetrics initializes empty counters.
func NewMetrics() *Metrics {
	return &Metrics{
		requests: make(map[counterKey]int64),
		errors:   make(map[counterKey]int64),
	}
}

// RecordRequest counts one completed request under its path, method and
// response status.
func (m *Metrics) RecordRequest(path, method string, status int, _ time.Duration) {
	if m == nil {
		return
	}
	key := counterKey{path: path, method: method, label: strconv.Itoa(status)}
	m.mu.Lock()
	m.requests[key]++
	m.mu.Unlock()
}

// RecordError counts one failed request under its error code.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := counterKey{path: path, method: method, label: code}
	m.mu.Lock()
	m.errors[key]++
	m.mu.Unlock()
}

// TotalRequests sums the request counters.
func (m *Metrics) TotalRequests() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var total int64
	for _, n := range m.requests {
		total += n
	}
	return total
}

// TotalErrors sums the error counters.
func (m *Metrics) TotalErrors() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var total int64
	for _, n := range m.errors {
		total += n
	}
	return total
}
