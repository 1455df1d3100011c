package interpose

import (
	"reflect"

	"github.com/interpose-go/interpose/await"
)

// returnShape classifies a method's declared return type.  Exactly one
// shape applies per method; shapeSynchronous is the fallback.
type returnShape int

const (
	shapeSynchronous returnShape = iota
	shapeCompletion              // *await.Task: heavy handle, no value
	shapeResult                  // *await.Future[T]: heavy handle, value of type T
	shapeLightCompletion         // await.ValueTask: light handle, no value
	shapeLightResult             // await.ValueFuture[T]: light handle, value of type T
)

func (s returnShape) String() string {
	switch s {
	case shapeSynchronous:
		return "synchronous"
	case shapeCompletion:
		return "completion"
	case shapeResult:
		return "result"
	case shapeLightCompletion:
		return "light completion"
	case shapeLightResult:
		return "light result"
	default:
		return "invalid"
	}
}

var (
	taskType           = reflect.TypeOf((*await.Task)(nil))
	valueTaskType      = reflect.TypeOf(await.ValueTask{})
	anyFutureType      = reflect.TypeOf((*await.AnyFuture)(nil)).Elem()
	anyValueFutureType = reflect.TypeOf((*await.AnyValueFuture)(nil)).Elem()
)

type shapeMatch struct {
	name  string
	test  func(t reflect.Type) bool
	shape returnShape
}

// shapeRegistry is checked in order; the first match wins.  The generic
// handle shapes are tested before the exact non-generic types.
var shapeRegistry = []shapeMatch{
	{
		name:  "value-carrying future",
		test:  func(t reflect.Type) bool { return t.Implements(anyFutureType) },
		shape: shapeResult,
	},
	{
		name:  "value-carrying light future",
		test:  func(t reflect.Type) bool { return t.Implements(anyValueFutureType) },
		shape: shapeLightResult,
	},
	{
		name:  "task",
		test:  func(t reflect.Type) bool { return t == taskType },
		shape: shapeCompletion,
	},
	{
		name:  "light task",
		test:  func(t reflect.Type) bool { return t == valueTaskType },
		shape: shapeLightCompletion,
	},
}

// classifyReturnType maps a declared return type to its shape.  It is a
// total, pure function: anything that is not one of the four handle shapes
// is synchronous.
func classifyReturnType(t reflect.Type) returnShape {
	for _, match := range shapeRegistry {
		if match.test(t) {
			return match.shape
		}
	}
	return shapeSynchronous
}

// resolveReturnType finds the declared return type of the method actually
// being invoked.  It prefers the most concrete signature available: the
// method on the real implementation, then the method on the proxy type,
// then the call's own declared method.  If the invocation can supply none
// of them, that is a configuration error.
func resolveReturnType(inv Invocation) (reflect.Type, error) {
	sources := []func() (reflect.Method, bool){
		inv.TargetMethod,
		inv.ProxyMethod,
		inv.Method,
	}
	for _, source := range sources {
		if m, ok := source(); ok && m.Type != nil {
			return methodReturnType(m), nil
		}
	}
	return nil, configError(ErrNoMethod,
		"the invocation supplied no target method, no proxy method, and no declared method; "+
			"at least one is required to classify the call's return shape")
}

// methodReturnType picks the type that classification runs against.  Only
// a method declaring exactly one result can be asynchronous; any other
// signature classifies through its func type, which is synchronous.
func methodReturnType(m reflect.Method) reflect.Type {
	if m.Type.NumOut() == 1 {
		return m.Type.Out(0)
	}
	return m.Type
}
