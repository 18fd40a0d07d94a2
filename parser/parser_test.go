package parser

import (
	"testing"

	"github.com/akashmaji946/gomixvm/ast"
	"github.com/akashmaji946/gomixvm/lexer"
	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/require"
)

func parseSource(t *testing.T, src string) (*ast.Program, error) {
	t.Helper()
	lex := lexer.NewLexer(src)
	p := New(&lex, "test")
	return p.Parse()
}

func TestParseLetAndPrint(t *testing.T) {
	prog, err := parseSource(t, `let x = 1 + 2`)
	require.NoError(t, err)
	require.Len(t, prog.Statements, 1)
	let, ok := prog.Statements[0].(*ast.Let)
	require.True(t, ok)
	require.Equal(t, "x", let.Name)
	bin, ok := let.Initializer.(*ast.Binary)
	require.True(t, ok)
	require.Equal(t, "+", bin.Operator)
}

func TestParseCompoundAssignmentDesugars(t *testing.T) {
	prog, err := parseSource(t, `let x = 1
x += 2`)
	require.NoError(t, err)
	require.Len(t, prog.Statements, 2)
	stmt, ok := prog.Statements[1].(*ast.ExpressionStatement)
	require.True(t, ok)
	assign, ok := stmt.Expr.(*ast.Assignment)
	require.True(t, ok)
	_, ok = assign.Target.(*ast.Identifier)
	require.True(t, ok)
	bin, ok := assign.Value.(*ast.Binary)
	require.True(t, ok)
	require.Equal(t, "+", bin.Operator)
	left, ok := bin.Left.(*ast.Identifier)
	require.True(t, ok)
	require.Equal(t, "x", left.Name)
}

func TestParseForRange(t *testing.T) {
	prog, err := parseSource(t, `for i in 0..5 { print(i) }`)
	require.NoError(t, err)
	fr, ok := prog.Statements[0].(*ast.ForRange)
	require.True(t, ok)
	require.Equal(t, "i", fr.Name)
}

func TestParseForIn(t *testing.T) {
	prog, err := parseSource(t, `for i in items { print(i) }`)
	require.NoError(t, err)
	fi, ok := prog.Statements[0].(*ast.ForIn)
	require.True(t, ok)
	require.Equal(t, "i", fi.Name)
}

func TestParseIfElse(t *testing.T) {
	prog, err := parseSource(t, `if 5 > 3 { print("yes") } else { print("no") }`)
	require.NoError(t, err)
	ifStmt, ok := prog.Statements[0].(*ast.If)
	require.True(t, ok)
	require.NotNil(t, ifStmt.Else)
}

func TestParseBreakAndContinueInsideWhile(t *testing.T) {
	prog, err := parseSource(t, `while true { break continue }`)
	require.NoError(t, err)
	w := prog.Statements[0].(*ast.While)
	require.Len(t, w.Body.Statements, 2)
	_, ok := w.Body.Statements[0].(*ast.Break)
	require.True(t, ok)
	_, ok = w.Body.Statements[1].(*ast.Continue)
	require.True(t, ok)
}

func TestParseMapLiteralReserved(t *testing.T) {
	prog, err := parseSource(t, `let m = {"a": 1, "b": 2}`)
	require.NoError(t, err)
	let := prog.Statements[0].(*ast.Let)
	m, ok := let.Initializer.(*ast.MapLiteral)
	require.True(t, ok)
	require.Len(t, m.Entries, 2)
}

func TestParseServerRoute(t *testing.T) {
	prog, err := parseSource(t, `server api on 8080 { route GET "/health" { respond "ok" } }`)
	require.NoError(t, err)
	srv := prog.Statements[0].(*ast.Server)
	require.Equal(t, "api", srv.Name)
	require.True(t, srv.HasPort)
	require.Equal(t, int64(8080), srv.Port)
	require.Len(t, srv.Routes, 1)
	require.Equal(t, "GET", srv.Routes[0].Method)
}

func TestParseErrorReturnsNilTreeAndAccumulatesDiagnostics(t *testing.T) {
	prog, err := parseSource(t, `let = 1
let = 2`)
	require.Error(t, err)
	require.Nil(t, prog)
	merr, ok := err.(*multierror.Error)
	require.True(t, ok)
	require.Len(t, merr.Errors, 2)
}

func TestParseCallDotIndexChain(t *testing.T) {
	prog, err := parseSource(t, `a.b[0](1, 2)`)
	require.NoError(t, err)
	stmt := prog.Statements[0].(*ast.ExpressionStatement)
	call, ok := stmt.Expr.(*ast.Call)
	require.True(t, ok)
	require.Len(t, call.Args, 2)
	idx, ok := call.Callee.(*ast.Index)
	require.True(t, ok)
	_, ok = idx.Object.(*ast.Dot)
	require.True(t, ok)
}
