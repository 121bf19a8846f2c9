// Package meeting defines the data model shared by every pipeline stage.
//
// A Transcript flows from the CONVERT stage into the LLM stage, and the
// Minutes document it produces is what every output renderer consumes. The
// package also owns the meeting ID format (timestamp, source, channel) used
// to name working directories and rendered artifacts.
package meeting
