package outputs

import "fmt"

// ReasonDependencyNotMet marks a spec skipped because a declared dependency
// never succeeded.
const ReasonDependencyNotMet = "dependency_not_met"

// Success records a completed render and its artifact (path or URL).
type Success struct {
	Format   string
	Artifact string
}

// Failure records a render error together with the spec's failure policy.
type Failure struct {
	Format  string
	Err     error
	OnError ErrorPolicy
}

// Skip records a spec that never executed. Skips are terminal for the run.
type Skip struct {
	Format              string
	Reason              string
	MissingDependencies []string
}

// Report is the run-level outcome returned to the pipeline. Total is fixed at
// planning time to the number of enabled specs; items from phases that never
// started appear in none of the three lists.
type Report struct {
	Successful []Success
	Failed     []Failure
	Skipped    []Skip
	Total      int
	Aborted    bool
}

// StopError is returned when a serial spec with the stop policy fails,
// aborting the remaining phases.
type StopError struct {
	Format string
	Err    error
}

func (e *StopError) Error() string {
	return fmt.Sprintf("output %s failed with on_error=stop: %v", e.Format, e.Err)
}

func (e *StopError) Unwrap() error { return e.Err }
