// Package exit models how a command terminates: what to print, where, and
// with which status.
package exit

import (
	"fmt"
	"io"
)

// Status codes follow grep: a match, no match, or trouble.
const (
	CodeMatch   = 0
	CodeNoMatch = 1
	CodeError   = 2
)

// Result holds the output destination and exit code for program termination.
type Result struct {
	Output   io.Writer
	ExitCode int
	Message  string
}

// Print writes the result message to the configured output destination.
func (r *Result) Print() {
	if r.Output == nil || r.Message == "" {
		return
	}
	fmt.Fprint(r.Output, r.Message)
}

// Success creates a result with exit code 0.
func Success(w io.Writer, message string) *Result {
	return &Result{
		Output:   w,
		ExitCode: CodeMatch,
		Message:  message,
	}
}

// NoMatch reports a run that completed without finding anything.
func NoMatch() *Result {
	return &Result{ExitCode: CodeNoMatch}
}

// Error creates an error result with exit code 2.
func Error(w io.Writer, message string) *Result {
	return &Result{
		Output:   w,
		ExitCode: CodeError,
		Message:  message,
	}
}

// Errorf creates an error result with formatted message.
func Errorf(w io.Writer, format string, a ...any) *Result {
	return Error(w, fmt.Sprintf(format, a...))
}
