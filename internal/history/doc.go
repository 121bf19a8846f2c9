// Package history persists pipeline run outcomes in SQLite. One row per run
// plus one row per output outcome; the history CLI command reads it back.
package history
