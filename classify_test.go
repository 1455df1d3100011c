package interpose

import (
	"context"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/interpose-go/interpose/await"
)

func TestClassifyReturnType(t *testing.T) {
	cases := []struct {
		name string
		typ  reflect.Type
		want returnShape
	}{
		{
			name: "heavy no-value handle",
			typ:  reflect.TypeOf((*await.Task)(nil)),
			want: shapeCompletion,
		},
		{
			name: "light no-value handle",
			typ:  reflect.TypeOf(await.ValueTask{}),
			want: shapeLightCompletion,
		},
		{
			name: "heavy string result",
			typ:  reflect.TypeOf((*await.Future[string])(nil)),
			want: shapeResult,
		},
		{
			name: "heavy int result",
			typ:  reflect.TypeOf((*await.Future[int])(nil)),
			want: shapeResult,
		},
		{
			name: "heavy any result",
			typ:  reflect.TypeOf((*await.Future[any])(nil)),
			want: shapeResult,
		},
		{
			name: "light string result",
			typ:  reflect.TypeOf(await.ValueFuture[string]{}),
			want: shapeLightResult,
		},
		{
			name: "plain string",
			typ:  reflect.TypeOf(""),
			want: shapeSynchronous,
		},
		{
			name: "error",
			typ:  reflect.TypeOf((*error)(nil)).Elem(),
			want: shapeSynchronous,
		},
		{
			name: "struct",
			typ:  reflect.TypeOf(struct{ A int }{}),
			want: shapeSynchronous,
		},
		{
			name: "channel of tasks",
			typ:  reflect.TypeOf(make(chan *await.Task)),
			want: shapeSynchronous,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, classifyReturnType(tc.typ))
		})
	}
}

type multiReturn struct{}

func (multiReturn) Both() (*await.Task, error) {
	return nil, nil
}

func (multiReturn) None() {}

func (multiReturn) One() *await.Task {
	return nil
}

func (multiReturn) Value() await.ValueFuture[string] {
	return await.ResolvedValueFuture("")
}

func TestMethodReturnTypeRequiresSingleResult(t *testing.T) {
	typ := reflect.TypeOf(multiReturn{})

	both, ok := typ.MethodByName("Both")
	require.True(t, ok)
	assert.Equal(t, shapeSynchronous, classifyReturnType(methodReturnType(both)),
		"a two-result method is never asynchronous")

	none, ok := typ.MethodByName("None")
	require.True(t, ok)
	assert.Equal(t, shapeSynchronous, classifyReturnType(methodReturnType(none)))

	one, ok := typ.MethodByName("One")
	require.True(t, ok)
	assert.Equal(t, shapeCompletion, classifyReturnType(methodReturnType(one)))

	value, ok := typ.MethodByName("Value")
	require.True(t, ok)
	assert.Equal(t, shapeLightResult, classifyReturnType(methodReturnType(value)))
}

func TestClassificationIsDeterministic(t *testing.T) {
	typ := reflect.TypeOf((*await.Future[string])(nil))
	first := classifyReturnType(typ)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, classifyReturnType(typ))
	}
}

func TestResolveReturnTypeFallbackOrder(t *testing.T) {
	g := &greeter{}
	target := methodOf(t, g, "Fetch")
	proxy := methodOf(t, g, "Ping")
	declared := methodOf(t, g, "Greet")

	t.Run("target wins", func(t *testing.T) {
		inv := NewInvocation(context.Background(), nil, nil,
			WithTargetMethod(target),
			WithProxyMethod(proxy),
			WithMethod(declared))
		typ, err := resolveReturnType(inv)
		require.NoError(t, err)
		assert.Equal(t, reflect.TypeOf((*await.Future[string])(nil)), typ)
	})

	t.Run("proxy beats declared", func(t *testing.T) {
		inv := NewInvocation(context.Background(), nil, nil,
			WithProxyMethod(proxy),
			WithMethod(declared))
		typ, err := resolveReturnType(inv)
		require.NoError(t, err)
		assert.Equal(t, reflect.TypeOf((*await.Task)(nil)), typ)
	})

	t.Run("declared is the last resort", func(t *testing.T) {
		inv := NewInvocation(context.Background(), nil, nil,
			WithMethod(declared))
		typ, err := resolveReturnType(inv)
		require.NoError(t, err)
		assert.Equal(t, reflect.TypeOf(""), typ)
	})

	t.Run("nothing resolves", func(t *testing.T) {
		inv := NewInvocation(context.Background(), nil, nil)
		_, err := resolveReturnType(inv)
		assert.ErrorIs(t, err, ErrNoMethod)
	})
}
