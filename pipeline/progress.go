package pipeline

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// ProgressTracker reports embedding progress on a terminal while a large
// corpus builds. Safe for concurrent use by the batch workers.
type ProgressTracker struct {
	mu           sync.Mutex
	writer       io.Writer
	total        int
	current      int
	reportEvery  int
	lastReported int
	startedAt    time.Time
	started      bool
}

// NewProgressTracker creates a tracker writing to writer, reporting once
// every reportEvery processed items.
func NewProgressTracker(writer io.Writer, total, reportEvery int) *ProgressTracker {
	return &ProgressTracker{
		writer:      writer,
		total:       total,
		reportEvery: reportEvery,
	}
}

// Start resets the tracker and begins timing.
func (p *ProgressTracker) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.startedAt = time.Now()
	p.started = true
	p.current = 0
	p.lastReported = 0
}

// Add advances progress by delta items, reporting when a report interval
// has been crossed.
func (p *ProgressTracker) Add(delta int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}

	p.current = min(p.current+delta, p.total)
	if p.current-p.lastReported >= p.reportEvery {
		p.report()
		p.lastReported = p.current
	}
}

// Finish forces a final report and terminates the progress line.
func (p *ProgressTracker) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}

	p.current = p.total
	p.report()
	fmt.Fprintln(p.writer)
}

// Elapsed returns the time since Start.
func (p *ProgressTracker) Elapsed() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return 0
	}
	return time.Since(p.startedAt)
}

// report prints the current progress. Callers hold the lock.
func (p *ProgressTracker) report() {
	elapsed := time.Since(p.startedAt)
	rate := float64(p.current) / elapsed.Seconds()

	percentage := 0.0
	if p.total > 0 {
		percentage = float64(p.current) / float64(p.total) * 100.0
	}

	fmt.Fprintf(p.writer, "\rEmbedding: %d/%d (%.1f%%) - %.1f docs/s",
		p.current, p.total, percentage, rate)
}
