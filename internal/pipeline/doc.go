// Package pipeline orchestrates a single analysis run: acquire the remote
// video, extract a bounded audio clip, classify it, and map the verdict to
// a triage entry. Stages run strictly in sequence and the first failure
// halts the run with a stage-specific outcome.
package pipeline
