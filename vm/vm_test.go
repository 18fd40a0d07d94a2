package vm

import (
	"bytes"
	"testing"

	"github.com/akashmaji946/gomixvm/chunk"
	"github.com/akashmaji946/gomixvm/value"
	"github.com/stretchr/testify/require"
)

func runChunk(t *testing.T, c *chunk.Chunk) (*VM, string) {
	t.Helper()
	var buf bytes.Buffer
	m := New()
	m.Stdout = &buf
	err := m.Run(c)
	require.NoError(t, err)
	return m, buf.String()
}

func TestPrintLiteral(t *testing.T) {
	c := chunk.New()
	idx := c.AddConstant(value.Int(5))
	c.WriteOp(chunk.OpConstant, 1)
	c.Write(byte(idx), 1)
	c.WriteOp(chunk.OpPrint, 1)
	c.WriteOp(chunk.OpHalt, 1)
	_, out := runChunk(t, c)
	require.Equal(t, "5\n", out)
}

func TestAddIntegers(t *testing.T) {
	c := chunk.New()
	a := c.AddConstant(value.Int(2))
	b := c.AddConstant(value.Int(3))
	c.WriteOp(chunk.OpConstant, 1)
	c.Write(byte(a), 1)
	c.WriteOp(chunk.OpConstant, 1)
	c.Write(byte(b), 1)
	c.WriteOp(chunk.OpAdd, 1)
	c.WriteOp(chunk.OpPrint, 1)
	c.WriteOp(chunk.OpHalt, 1)
	_, out := runChunk(t, c)
	require.Equal(t, "5\n", out)
}

func TestDivisionByZeroIsRuntimeError(t *testing.T) {
	c := chunk.New()
	a := c.AddConstant(value.Int(1))
	b := c.AddConstant(value.Int(0))
	c.WriteOp(chunk.OpConstant, 1)
	c.Write(byte(a), 1)
	c.WriteOp(chunk.OpConstant, 1)
	c.Write(byte(b), 1)
	c.WriteOp(chunk.OpDiv, 1)
	c.WriteOp(chunk.OpHalt, 1)
	m := New()
	err := m.Run(c)
	require.Error(t, err)
	var rtErr *RuntimeError
	require.ErrorAs(t, err, &rtErr)
	require.Equal(t, 1, rtErr.Line)
}

func TestCallNilIsTolerantNoOp(t *testing.T) {
	c := chunk.New()
	c.WriteOp(chunk.OpNil, 1)
	c.WriteOp(chunk.OpCall, 1)
	c.Write(0, 1)
	c.WriteOp(chunk.OpPrint, 1)
	c.WriteOp(chunk.OpHalt, 1)
	_, out := runChunk(t, c)
	require.Equal(t, "nil\n", out)
}

func TestCallNativePrint(t *testing.T) {
	c := chunk.New()
	nameIdx := c.AddConstant(value.String("print"))
	argIdx := c.AddConstant(value.String("hi"))
	c.WriteOp(chunk.OpGetGlobal, 1)
	c.Write(byte(nameIdx), 1)
	c.WriteOp(chunk.OpConstant, 1)
	c.Write(byte(argIdx), 1)
	c.WriteOp(chunk.OpCall, 1)
	c.Write(1, 1)
	c.WriteOp(chunk.OpPop, 1)
	c.WriteOp(chunk.OpHalt, 1)
	_, out := runChunk(t, c)
	require.Equal(t, "hi\n", out)
}

func TestJumpIfFalseSkipsThenBranch(t *testing.T) {
	c := chunk.New()
	c.WriteOp(chunk.OpFalse, 1)
	skip := c.EmitJump(chunk.OpJumpIfFalse, 1)
	c.WriteOp(chunk.OpPop, 1)
	trueIdx := c.AddConstant(value.String("then"))
	c.WriteOp(chunk.OpConstant, 1)
	c.Write(byte(trueIdx), 1)
	c.WriteOp(chunk.OpPrint, 1)
	require.NoError(t, c.PatchJump(skip))
	c.WriteOp(chunk.OpPop, 1)
	c.WriteOp(chunk.OpHalt, 1)
	_, out := runChunk(t, c)
	require.Equal(t, "", out)
}

func TestUndefinedGlobalIsRuntimeError(t *testing.T) {
	c := chunk.New()
	idx := c.AddConstant(value.String("missing"))
	c.WriteOp(chunk.OpGetGlobal, 3)
	c.Write(byte(idx), 3)
	c.WriteOp(chunk.OpHalt, 3)
	m := New()
	err := m.Run(c)
	require.Error(t, err)
	var rtErr *RuntimeError
	require.ErrorAs(t, err, &rtErr)
	require.Equal(t, 3, rtErr.Line)
}

func TestLenNative(t *testing.T) {
	c := chunk.New()
	nameIdx := c.AddConstant(value.String("len"))
	argIdx := c.AddConstant(value.String("hello"))
	c.WriteOp(chunk.OpGetGlobal, 1)
	c.Write(byte(nameIdx), 1)
	c.WriteOp(chunk.OpConstant, 1)
	c.Write(byte(argIdx), 1)
	c.WriteOp(chunk.OpCall, 1)
	c.Write(1, 1)
	c.WriteOp(chunk.OpPrint, 1)
	c.WriteOp(chunk.OpHalt, 1)
	_, out := runChunk(t, c)
	require.Equal(t, "5\n", out)
}
