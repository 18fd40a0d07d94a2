package ast

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrintProgram(t *testing.T) {
	prog := NewProgram(1, []Statement{
		NewLet(1, "x", "", NewIntLiteral(1, 42)),
		NewExpressionStatement(2, NewBinary(2, "+", NewIdentifier(2, "x"), NewIntLiteral(2, 1))),
	})
	out := Print(prog)
	require.True(t, strings.Contains(out, "Let x"))
	require.True(t, strings.Contains(out, "Binary +"))
	require.True(t, strings.Contains(out, "Int 42"))
}

func TestPrintReservedNodesAreLabeled(t *testing.T) {
	out := Print(NewBreak(3))
	require.Contains(t, out, "reserved")
}
