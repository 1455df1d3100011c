package interpose

import (
	"errors"
	"fmt"
)

// Configuration errors.  These indicate structural misuse of the adapter
// and are returned directly from Intercept; they are never converted into
// a failed pending result.
var (
	// ErrNoMethod means the invocation could not supply any method
	// signature: not a target method, not a proxy method, and not even
	// the call's own declared method.
	ErrNoMethod = errors.New("no method signature available on invocation")

	// ErrUnknownShape means classification produced a return shape the
	// dispatcher builder does not recognize.
	ErrUnknownShape = errors.New("unrecognized return shape")

	// ErrChainExhausted means Proceed was called with no interceptor and
	// no terminal function left to run.
	ErrChainExhausted = errors.New("proceed past the end of the interceptor chain")
)

type interceptError struct {
	err     error
	details string
}

func (e *interceptError) Error() string {
	return e.err.Error()
}

func (e *interceptError) Unwrap() error {
	return e.err
}

// DetailedError transforms errors into strings.  If the error happens to
// be an error returned by an AsyncAdapter then it will return a much more
// detailed error than just calling err.Error().
func DetailedError(err error) string {
	var ie *interceptError
	if errors.As(err, &ie) {
		return err.Error() + "\n\n" + ie.details
	}
	return err.Error()
}

func configError(base error, format string, args ...any) error {
	return &interceptError{
		err:     base,
		details: fmt.Sprintf(format, args...),
	}
}
