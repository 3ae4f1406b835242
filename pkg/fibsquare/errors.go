package fibsquare

import "fmt"

// ErrorCode identifies the kind of fatal condition a Prover can hit. Proof
// verification failure is never represented by an ErrorCode: Verify always
// returns a plain boolean, never an error (see §7 of the design notes).
type ErrorCode int

const (
	// ErrUnknown is the zero value, never returned deliberately.
	ErrUnknown ErrorCode = iota

	// ErrInvalidConfig marks a malformed Config (e.g. non-power-of-two
	// trace length, evaluation domain smaller than the trace length).
	ErrInvalidConfig

	// ErrInvalidInput marks a malformed public input (boundary values
	// inconsistent with the declared trace length, modulus mismatch).
	ErrInvalidInput

	// ErrNonExactDivision marks a witness that does not produce the claimed
	// terminal value, detected either by the prover's direct check of the
	// trace's terminal value or by a constraint polynomial division that
	// did not come out exact.
	ErrNonExactDivision

	// ErrProofGeneration marks any other failure while assembling a proof.
	ErrProofGeneration
)

// Error is the error type returned by Prover.Prove. It wraps an underlying
// cause where one exists.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fibsquare error [%d]: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("fibsquare error [%d]: %s", e.Code, e.Message)
}

// Unwrap exposes the wrapped cause for errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is allows errors.Is comparisons by error code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func newError(code ErrorCode, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}
