package container_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-container/framework/container"
)

func TestCall_ClassAtMethod(t *testing.T) {
	t.Parallel()
	c := container.New()
	c.Bind(container.KeyOf[Engine](), container.TypeOf[V8Engine]())
	c.Bind("MyClass", container.TypeOf[Dashboard](container.WithMethod("Show", container.Arg("speed"))))

	got, err := c.Call("MyClass@Show", container.Params{"speed": 5})
	require.NoError(t, err)
	assert.Equal(t, "v8@5", got)
}

func TestCall_MethodDefaultsAndInjectedReceiver(t *testing.T) {
	t.Parallel()
	c := container.New()
	c.Bind("greeter", container.TypeOf[Greeter](container.WithMethod("Greet",
		container.Arg("name"),
		container.Arg("punct").WithDefault("!"),
	)))

	got, err := c.Call("greeter@Greet", container.Params{"name": "Ada"})
	require.NoError(t, err)
	assert.Equal(t, "Hello, Ada!", got)
}

func TestCall_Closure(t *testing.T) {
	t.Parallel()
	c := container.New()
	c.Bind(container.KeyOf[Engine](), container.TypeOf[V8Engine]())

	got, err := c.Call(func(e Engine) string { return "running " + e.Name() })
	require.NoError(t, err)
	assert.Equal(t, "running v8", got)
}

func TestCall_FuncWithNamedParams(t *testing.T) {
	t.Parallel()
	c := container.New()
	send := func(to string, retries int) string { return strings.Repeat(to, retries) }

	got, err := c.Call(container.Func(send, container.Arg("to"), container.Arg("retries").WithDefault(2)),
		container.Params{"to": "ab"})
	require.NoError(t, err)
	assert.Equal(t, "abab", got)
}

func TestCall_DeclaredFunc(t *testing.T) {
	t.Parallel()
	c := container.New()
	require.NoError(t, c.DeclareFunc("shout", strings.ToUpper, container.Arg("word")))

	got, err := c.Call("shout", container.Params{"word": "hey"})
	require.NoError(t, err)
	assert.Equal(t, "HEY", got)
}

func TestCall_TargetMethodPair(t *testing.T) {
	t.Parallel()
	c := container.New()
	require.NoError(t, c.Declare("Greeter", container.TypeOf[Greeter](container.WithMethod("Greet",
		container.Arg("name"),
		container.Arg("punct").WithDefault("?"),
	))))

	got, err := c.Call([]any{&Greeter{Prefix: "Hi"}, "Greet"}, container.Params{"name": "Bob"})
	require.NoError(t, err)
	assert.Equal(t, "Hi, Bob?", got)

	// a declared type name gets a zero receiver, not a Make
	got, err = c.Call([]any{"Greeter", "Greet"}, container.Params{"name": "Bob"})
	require.NoError(t, err)
	assert.Equal(t, ", Bob?", got)
}

func TestCall_ValueReceiverFallsBackToPointer(t *testing.T) {
	t.Parallel()
	c := container.New()

	got, err := c.Call([]any{Greeter{Prefix: "Yo"}, "Greet"})
	require.NoError(t, err)
	assert.Equal(t, "Yo, ", got)
}

func TestCall_Results(t *testing.T) {
	t.Parallel()
	c := container.New()

	got, err := c.Call(func() {})
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = c.Call(func() (int, string) { return 1, "a" })
	require.NoError(t, err)
	if diff := cmp.Diff([]any{1, "a"}, got); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}

	got, err = c.Call(func() (string, error) { return "ok", nil })
	require.NoError(t, err)
	assert.Equal(t, "ok", got)

	_, err = c.Call(func() error { return errBroken })
	assert.ErrorIs(t, err, errBroken)
}

func TestCall_Variadic(t *testing.T) {
	t.Parallel()
	c := container.New()
	join := func(sep string, parts ...string) string { return strings.Join(parts, sep) }

	got, err := c.Call(container.Func(join, container.Arg("sep"), container.Arg("parts")),
		container.Params{"sep": "-", "parts": []string{"a", "b"}})
	require.NoError(t, err)
	assert.Equal(t, "a-b", got)
}

func TestCall_InvalidCallables(t *testing.T) {
	t.Parallel()
	c := container.New()
	c.Bind("greeter", container.TypeOf[Greeter]())

	cases := map[string]any{
		"nil":             nil,
		"integer":         42,
		"unknown name":    "nope",
		"empty class":     "@Greet",
		"empty method":    "greeter@",
		"missing method":  "greeter@Missing",
		"short pair":      []any{"greeter"},
		"non-string name": []any{&Greeter{}, 3},
		"nil target":      []any{nil, "Greet"},
		"undeclared type": []any{"Ghost", "Greet"},
		"nil func":        (func())(nil),
	}
	for name, callable := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := c.Call(callable)
			assert.ErrorIs(t, err, container.ErrInvalidCallable)
		})
	}
}

func TestCall_ClassThatCannotBeBuilt(t *testing.T) {
	t.Parallel()
	c := container.New()

	_, err := c.Call("Ghost@Run")
	assert.ErrorIs(t, err, container.ErrNotInstantiable)
}

func TestDeclareFunc_RejectsNonFunctions(t *testing.T) {
	t.Parallel()
	c := container.New()

	err := c.DeclareFunc("x", "not a func")
	assert.ErrorIs(t, err, container.ErrInvalidCallable)
}
