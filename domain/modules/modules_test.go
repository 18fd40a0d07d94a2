package modules

import (
	"testing"

	"github.com/akashmaji946/gomixvm/value"
	"github.com/stretchr/testify/require"
)

func TestImportMergesRegisteredPackage(t *testing.T) {
	installed := make(map[string]value.NativeFn)
	r := NewRegistry(func(name string, fn value.NativeFn) { installed[name] = fn })
	r.Register("greet", map[string]value.NativeFn{
		"hello": func(args []value.Value) (value.Value, error) { return value.String("hi"), nil },
	})

	ok, err := r.importModule([]value.Value{value.String("greet")})
	require.NoError(t, err)
	require.True(t, ok.AsBool())
	require.Contains(t, installed, "hello")
}

func TestImportUnknownPackageReturnsFalse(t *testing.T) {
	r := NewRegistry(func(name string, fn value.NativeFn) {})
	ok, err := r.importModule([]value.Value{value.String("nope")})
	require.NoError(t, err)
	require.False(t, ok.AsBool())
}
