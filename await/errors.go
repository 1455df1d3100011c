package await

import (
	"fmt"
	"reflect"

	"github.com/muir/reflectutils"
)

// PanicError carries a recovered panic value through a failed pending
// result.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Recovered converts a recover() value into an error.  Error values pass
// through unchanged so that failure content is preserved; anything else is
// wrapped in a PanicError.
func Recovered(v any) error {
	if err, ok := v.(error); ok {
		return err
	}
	return &PanicError{Value: v}
}

// ResultTypeError reports a completed value whose dynamic type does not
// match the result type a handle was retyped to.
type ResultTypeError struct {
	Want reflect.Type
	Got  any
}

func (e *ResultTypeError) Error() string {
	return fmt.Sprintf("result type mismatch: want %s, got %T",
		reflectutils.TypeName(e.Want), e.Got)
}
