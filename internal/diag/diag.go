// Package diag writes build diagnostics in the "<subject> : <severity> GLSL:"
// line format understood by Visual Studio style problem matchers.
package diag

import (
	"fmt"
	"io"
	"sync"
)

// Subject is used for diagnostics that are not tied to a single source file.
const Subject = "Shader compiler"

// Severity is the diagnostic level printed between the subject and the tool tag.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Format renders a single diagnostic line without the trailing newline.
func Format(sev Severity, subject, message string) string {
	return fmt.Sprintf("%s : %s GLSL: Failed to compile shader: %s", subject, sev, message)
}

// Reporter prints diagnostics and plain progress lines to one writer. It is
// safe for concurrent use.
type Reporter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewReporter returns a Reporter writing to w.
func NewReporter(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

// Error prints an error diagnostic.
func (r *Reporter) Error(subject, message string) {
	r.Println(Format(SeverityError, subject, message))
}

// Warning prints a warning diagnostic.
func (r *Reporter) Warning(subject, message string) {
	r.Println(Format(SeverityWarning, subject, message))
}

// Println prints a plain line.
func (r *Reporter) Println(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.w, line)
}
