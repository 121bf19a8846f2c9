// Package llm generates structured meeting minutes from transcripts through
// an OpenAI-compatible chat completion endpoint. The client retries
// transient failures with exponential backoff and tolerates the JSON
// formatting quirks common to hosted models.
package llm
