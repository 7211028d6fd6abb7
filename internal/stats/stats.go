package stats

import (
	"sync"
	"time"
)

// StatStart is an open timing record for one source file.
type StatStart struct {
	file  string
	start time.Time
	clock Clock
}

// Start opens a timing record for file using clock.
func Start(clock Clock, file string) StatStart {
	return StatStart{file: file, start: clock.Now(), clock: clock}
}

// Done closes the record.
func (s StatStart) Done() Stat {
	return Stat{File: s.file, Elapsed: s.clock.Now().Sub(s.start)}
}

// Stat is the elapsed compile time of one source file.
type Stat struct {
	File    string        `json:"file"`
	Elapsed time.Duration `json:"elapsed"`
}

// Stats is the reduction of a Collector.
type Stats struct {
	Files   int           `json:"files"`
	Elapsed time.Duration `json:"elapsed"`
}

// Collector is an append-only sequence of Stat records.
type Collector struct {
	mu      sync.Mutex
	emitted []Stat
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Add appends a single record.
func (c *Collector) Add(stat Stat) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.emitted = append(c.emitted, stat)
}

// Concat appends a package's records in order.
func (c *Collector) Concat(stats []Stat) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.emitted = append(c.emitted, stats...)
}

// Total counts the records and sums their elapsed durations.
func (c *Collector) Total() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Sum(c.emitted)
}

// Sum reduces a slice of records. The result does not depend on order.
func Sum(stats []Stat) Stats {
	var total Stats
	for _, s := range stats {
		total.Files++
		total.Elapsed += s.Elapsed
	}
	return total
}
