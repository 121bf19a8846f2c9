// Package config loads, normalizes, and validates the TOML configuration
// that drives the pipeline: input provider, converter engine, LLM settings,
// output targets, notifications, and logging.
package config
