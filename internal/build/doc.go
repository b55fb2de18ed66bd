// Package build orchestrates a shader build: it expands a manifest into one
// job per shader and stage, runs the external compiler for every source that
// exists, and classifies each job as compiled, skipped, or failed.
//
// Jobs run on a bounded worker pool, but every job writes only to its own
// result slot and slots are merged in manifest order afterwards, so the
// returned Outcome and all printed output match a sequential run exactly.
package build
