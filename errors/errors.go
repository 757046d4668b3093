// Package errors defines the structured error type shared by every clasm
// subsystem. Nothing in this module recovers silently: a malformed
// descriptor, a malformed signature, a stack-shape violation, an
// incompatible frame merge, or a fall-off-the-end control path all surface
// as a *ClasmError* carrying enough context for the caller to report it.
package errors

import (
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// Kind identifies the category of failure.
type Kind string

const (
	BadDescriptor       Kind = "BAD_DESCRIPTOR"
	BadSignature        Kind = "BAD_SIGNATURE"
	IllegalStack        Kind = "ILLEGAL_STACK"
	Verification        Kind = "VERIFICATION"
	IncompatibleFrames  Kind = "INCOMPATIBLE_FRAMES"
	FallOffEnd          Kind = "FALL_OFF_END"
	AnalysisFailed      Kind = "ANALYSIS_FAILED"
	UnsupportedFeature  Kind = "UNSUPPORTED_FEATURE"
)

// ExpectedActual carries the pair VERIFICATION errors report: what the
// interpreter expected to see on the operand stack/locals versus what was
// actually there.
type ExpectedActual struct {
	Expected string
	Actual   string
}

// ClasmError is the single error type every clasm package returns. It is
// never panicked across a package boundary: this module is a library other
// programs embed, and an embedder cannot recover from a panic it never
// expected to see.
type ClasmError struct {
	Kind    Kind
	Message string

	// InsnIndex is the offending instruction's index in its instruction
	// list, or -1 when the error is not instruction-scoped (e.g. a
	// BAD_DESCRIPTOR raised while parsing a standalone descriptor string).
	InsnIndex int

	// ExpectedActual is populated for VERIFICATION errors; nil otherwise.
	ExpectedActual *ExpectedActual

	cause error
}

// New creates a ClasmError with no instruction context.
func New(kind Kind, message string) *ClasmError {
	return &ClasmError{Kind: kind, Message: message, InsnIndex: -1}
}

// Newf creates a ClasmError with a formatted message.
func Newf(kind Kind, format string, args ...any) *ClasmError {
	return New(kind, fmt.Sprintf(format, args...))
}

// AtInsn returns a copy of e with InsnIndex set. Used by the analyzer to
// attach the offending instruction once it is known.
func (e *ClasmError) AtInsn(index int) *ClasmError {
	clone := *e
	clone.InsnIndex = index
	return &clone
}

// WithExpectedActual attaches an expected/actual pair, for VERIFICATION
// errors raised by a verifying interpreter.
func (e *ClasmError) WithExpectedActual(expected, actual string) *ClasmError {
	clone := *e
	clone.ExpectedActual = &ExpectedActual{Expected: expected, Actual: actual}
	return &clone
}

// WithCause wraps an underlying error (e.g. one raised by an interpreter)
// using github.com/pkg/errors so the original stack trace is preserved
// when the analyzer re-wraps it as ANALYSIS_FAILED.
func (e *ClasmError) WithCause(cause error) *ClasmError {
	clone := *e
	clone.cause = pkgerrors.WithStack(cause)
	return &clone
}

// Unwrap exposes the wrapped cause for errors.Is/errors.As.
func (e *ClasmError) Unwrap() error {
	return e.cause
}

func (e *ClasmError) Error() string {
	if e.InsnIndex >= 0 {
		if e.ExpectedActual != nil {
			return fmt.Sprintf("%s at instruction %d: %s (expected %s, got %s)",
				e.Kind, e.InsnIndex, e.Message, e.ExpectedActual.Expected, e.ExpectedActual.Actual)
		}
		return fmt.Sprintf("%s at instruction %d: %s", e.Kind, e.InsnIndex, e.Message)
	}
	if e.ExpectedActual != nil {
		return fmt.Sprintf("%s: %s (expected %s, got %s)", e.Kind, e.Message, e.ExpectedActual.Expected, e.ExpectedActual.Actual)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// AnalysisFailure wraps any error raised during analysis (by a frame, an
// interpreter, or the analyzer's own CFG walk) as ANALYSIS_FAILED, with the
// offending instruction index attached. This is the analyzer's single exit
// point for every failure mode during a dataflow pass.
func AnalysisFailure(insnIndex int, cause error) *ClasmError {
	return &ClasmError{
		Kind:      AnalysisFailed,
		Message:   pkgerrors.Cause(cause).Error(),
		InsnIndex: insnIndex,
		cause:     pkgerrors.WithStack(cause),
	}
}
