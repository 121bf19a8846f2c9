// Package render implements the output renderer collaborators: the black
// boxes the execution engine calls to turn a minutes document into an
// artifact (a file path or URL).
//
// Each renderer reads its own parameters from the opaque params map declared
// on its output spec. File renderers write under
// <output_dir>/<meeting_id>/; the webhook renderer posts a Discord-style
// embed; the pdf renderer delegates to an external pandoc binary the same
// way other external tools are wrapped elsewhere in the codebase, with an
// injectable command runner for tests.
package render
