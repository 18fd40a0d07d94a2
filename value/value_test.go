package value

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEqualityRejectsCrossTypeNumeric(t *testing.T) {
	require.False(t, Int(1).Equal(Float(1.0)))
	require.True(t, Int(1).Equal(Int(1)))
	require.True(t, Float(1.5).Equal(Float(1.5)))
}

func TestEqualityReflexiveAndSymmetric(t *testing.T) {
	vals := []Value{Nil(), Bool(true), Int(7), Float(3.5), String("hi")}
	for _, v := range vals {
		require.True(t, v.Equal(v))
	}
	require.Equal(t, String("a").Equal(String("b")), String("b").Equal(String("a")))
}

func TestStringRendering(t *testing.T) {
	require.Equal(t, "nil", Nil().String())
	require.Equal(t, "true", Bool(true).String())
	require.Equal(t, "false", Bool(false).String())
	require.Equal(t, "42", Int(42).String())
	require.Equal(t, "3.5", Float(3.5).String())
	require.Equal(t, "hi", String("hi").String())
	require.Equal(t, "[array]", ArrayOf(nil).String())
}

func TestTruthy(t *testing.T) {
	require.False(t, Nil().Truthy())
	require.False(t, Bool(false).Truthy())
	require.False(t, Int(0).Truthy())
	require.True(t, Int(1).Truthy())
	require.True(t, String("").Truthy())
}

func TestLen(t *testing.T) {
	require.Equal(t, 0, Len(String("")))
	require.Equal(t, 5, Len(String("hello")))
	require.Equal(t, 0, Len(ArrayOf(nil)))
	require.Equal(t, 3, Len(ArrayOf([]Value{Int(1), Int(2), Int(3)})))
	require.Equal(t, 0, Len(Int(5)))
}

func TestTableSetGetDelete(t *testing.T) {
	tbl := NewTable()
	require.True(t, tbl.Set("a", Int(1)))
	require.False(t, tbl.Set("a", Int(2)))
	v, ok := tbl.Get("a")
	require.True(t, ok)
	require.Equal(t, int64(2), v.AsInt())

	require.True(t, tbl.Delete("a"))
	_, ok = tbl.Get("a")
	require.False(t, ok)
}

func TestTableGrowsAndKeepsAllEntries(t *testing.T) {
	tbl := NewTable()
	for i := 0; i < 200; i++ {
		tbl.Set(string(rune('a'))+itoa(i), Int(int64(i)))
	}
	require.Equal(t, 200, tbl.Len())
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	digits := []byte{}
	for i > 0 {
		digits = append([]byte{byte('0' + i%10)}, digits...)
		i /= 10
	}
	return string(digits)
}
