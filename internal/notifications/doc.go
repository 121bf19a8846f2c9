// Package notifications sends push notifications for pipeline milestones
// through ntfy. When no topic is configured a noop implementation keeps the
// call sites unconditional.
package notifications
