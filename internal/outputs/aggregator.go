package outputs

import "sync"

// ArtifactSource gives renderers read access to artifacts completed in
// earlier phases.
type ArtifactSource interface {
	// Artifact returns the artifact recorded for a format, if any.
	Artifact(format string) (string, bool)
}

// Aggregator accumulates outcomes across phases and owns the artifact cache
// consulted by dependency resolution. It is the only mutable object touched
// by concurrent workers during a parallel phase, so every insert goes through
// one lock.
type Aggregator struct {
	mu         sync.Mutex
	successful []Success
	failed     []Failure
	skipped    []Skip
	artifacts  map[string]string
	total      int
}

// NewAggregator creates an aggregator for a plan of total enabled specs.
// The total is fixed at planning time and includes specs that end up skipped.
func NewAggregator(total int) *Aggregator {
	return &Aggregator{
		artifacts: make(map[string]string, total),
		total:     total,
	}
}

// RecordSuccess appends a success and inserts its artifact into the cache in
// the same critical section, so the next phase's dependency resolution
// observes it.
func (a *Aggregator) RecordSuccess(s Success) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.successful = append(a.successful, s)
	a.artifacts[s.Format] = s.Artifact
}

// RecordFailure appends a failure.
func (a *Aggregator) RecordFailure(f Failure) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.failed = append(a.failed, f)
}

// RecordSkips appends the skips produced by dependency filtering.
func (a *Aggregator) RecordSkips(skips []Skip) {
	if len(skips) == 0 {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.skipped = append(a.skipped, skips...)
}

// Artifact implements ArtifactSource.
func (a *Aggregator) Artifact(format string) (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	artifact, ok := a.artifacts[format]
	return artifact, ok
}

// SucceededFormats returns the cumulative set of formats that have completed.
func (a *Aggregator) SucceededFormats() map[string]struct{} {
	a.mu.Lock()
	defer a.mu.Unlock()
	set := make(map[string]struct{}, len(a.artifacts))
	for format := range a.artifacts {
		set[format] = struct{}{}
	}
	return set
}

// Snapshot copies the accumulated outcomes into a report.
func (a *Aggregator) Snapshot() Report {
	a.mu.Lock()
	defer a.mu.Unlock()
	return Report{
		Successful: append([]Success(nil), a.successful...),
		Failed:     append([]Failure(nil), a.failed...),
		Skipped:    append([]Skip(nil), a.skipped...),
		Total:      a.total,
	}
}
