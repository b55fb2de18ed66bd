// Package manifest loads the list of shader base-names to compile from a
// comma-separated file.
//
// Every field of every row becomes one entry, in file order, with all
// whitespace removed. Duplicates and empty fields are kept. Load reports why a
// manifest could not be used (missing, unreadable, malformed, or empty) so
// callers can tell those cases apart even though all of them stop a build.
package manifest
