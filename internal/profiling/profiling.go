// Package profiling records mining-loop telemetry as a pprof profile, so
// a long-running ProveWithTarget loop can be inspected offline with
// `go tool pprof` instead of only via log lines. It is telemetry, not a
// runtime HTTP server: callers decide when to snapshot and where to
// write the result.
package profiling

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/pprof/profile"
)

// Recorder accumulates samples from repeated mining attempts under a
// single set of sample types (attempts, nanoseconds per attempt, and
// whether the attempt met the difficulty target).
// It is safe for concurrent use by multiple worker goroutines sharing one
// nonce range.
type Recorder struct {
	mu      sync.Mutex
	start   time.Time
	samples []*profile.Sample
}

// NewRecorder starts a recorder; startedAt should be time.Now() from the
// caller, captured once so every sample's relative offset is consistent
// regardless of when Flush is eventually called.
func NewRecorder(startedAt time.Time) *Recorder {
	return &Recorder{start: startedAt}
}

// RecordAttempt records one prove attempt: its elapsed wall time and
// whether it met the difficulty target. label identifies the worker
// (e.g. "worker-3") so per-goroutine throughput is distinguishable in the
// resulting profile.
func (r *Recorder) RecordAttempt(label string, elapsed time.Duration, met bool) {
	metValue := int64(0)
	if met {
		metValue = 1
	}
	sample := &profile.Sample{
		Value: []int64{1, elapsed.Nanoseconds(), metValue},
		Label: map[string][]string{"worker": {label}},
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.samples = append(r.samples, sample)
}

// Flush builds a pprof-format profile.Profile from every recorded sample
// and serializes it (gzip-compressed, per pprof's on-disk format) to w.
func (r *Recorder) Flush(w io.Writer) error {
	r.mu.Lock()
	samples := make([]*profile.Sample, len(r.samples))
	copy(samples, r.samples)
	duration := time.Since(r.start)
	started := r.start
	r.mu.Unlock()

	p := &profile.Profile{
		SampleType: []*profile.ValueType{
			{Type: "attempts", Unit: "count"},
			{Type: "commit_time", Unit: "nanoseconds"},
			{Type: "difficulty_met", Unit: "bool"},
		},
		Sample:        samples,
		TimeNanos:     started.UnixNano(),
		DurationNanos: duration.Nanoseconds(),
	}

	if err := p.CheckValid(); err != nil {
		return fmt.Errorf("profiling: invalid profile: %w", err)
	}
	if err := p.Write(w); err != nil {
		return fmt.Errorf("profiling: writing profile: %w", err)
	}
	return nil
}
