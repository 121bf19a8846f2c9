// Package inputs provides the recording providers that feed the pipeline's
// input stage. A provider stages an audio artifact into the run's working
// directory and hands its path to the convert stage.
package inputs
