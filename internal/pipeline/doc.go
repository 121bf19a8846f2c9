// Package pipeline drives one meeting through the stages: record the input,
// convert it to a transcript, generate minutes, and execute the configured
// outputs. A file lock on the working directory keeps runs exclusive, and
// every run is recorded in the history store.
package pipeline
