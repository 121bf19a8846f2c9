// Command meetscribe processes meeting recordings into distributed minutes:
// it stages an input recording, transcribes it, generates structured minutes
// with an LLM, and executes the configured output targets.
package main
