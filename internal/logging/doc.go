// Package logging assembles the structured slog loggers used across
// meetscribe components.
//
// It owns the console and JSON handlers, centralizes level parsing and
// output plumbing, and exposes attr helpers plus standardized field keys so
// stage and output code tags log lines consistently (component, meeting_id,
// stage, format). A no-op logger is available for tests and wiring code
// that cannot fail.
package logging
