// Package outputs implements the output execution engine: the component that
// takes the flat, user-declared list of output targets and executes them as a
// sequence of concurrency-bounded phases.
//
// Planning partitions enabled specs into phases by ascending execution group
// (or flattens them under a forced parallel/serial mode), the dependency
// resolver filters each phase against the formats that have already
// succeeded, and the group executor runs the survivors either concurrently or
// strictly in declared order. The aggregator is the single piece of shared
// mutable state: it collects successful, failed, and skipped outcomes and
// maintains the artifact cache that lets a later output observe an earlier
// output's artifact (for example a webhook post attaching a PDF produced in
// a previous group).
//
// Phases execute strictly sequentially; within a parallel phase one worker
// goroutine is dispatched per runnable spec and the phase settles only when
// every worker has finished. A failing worker never cancels its siblings.
// A serial spec configured with the stop policy aborts the remainder of its
// phase and every later phase when it fails; artifacts already produced stay
// in the report.
package outputs
