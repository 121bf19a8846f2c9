// Package convert turns staged audio (or pre-existing transcripts) into the
// unified Transcript consumed by the minutes generator. Engines cover local
// WhisperX transcription, the Deepgram API, and a passthrough for inputs
// that are already textual.
package convert
