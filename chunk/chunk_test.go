package chunk

import (
	"bytes"
	"testing"

	"github.com/akashmaji946/gomixvm/value"
	"github.com/stretchr/testify/require"
)

func TestAddConstantAndWrite(t *testing.T) {
	c := New()
	idx := c.AddConstant(value.Int(42))
	require.Equal(t, 0, idx)
	c.WriteOp(OpConstant, 1)
	c.Write(byte(idx), 1)
	require.Equal(t, 2, c.Count())
	require.Equal(t, 1, c.LineAt(0))
}

func TestPatchJumpWritesBigEndianOffset(t *testing.T) {
	c := New()
	c.WriteOp(OpTrue, 1)
	jumpOffset := c.EmitJump(OpJumpIfFalse, 1)
	c.WriteOp(OpPop, 1)
	require.NoError(t, c.PatchJump(jumpOffset))
	want := c.Count() - jumpOffset - 2
	got := int(c.Code[jumpOffset])<<8 | int(c.Code[jumpOffset+1])
	require.Equal(t, want, got)
}

func TestPatchJumpTooLargeErrors(t *testing.T) {
	c := New()
	jumpOffset := c.EmitJump(OpJump, 1)
	c.Code = append(c.Code, make([]byte, 70000)...)
	c.Lines = append(c.Lines, make([]int, 70000)...)
	require.Error(t, c.PatchJump(jumpOffset))
}

func TestEmitLoopTargetsLoopStart(t *testing.T) {
	c := New()
	loopStart := c.Count()
	c.WriteOp(OpNop, 1)
	require.NoError(t, c.EmitLoop(loopStart, 1))
	offset := int(c.Code[len(c.Code)-2])<<8 | int(c.Code[len(c.Code)-1])
	require.Equal(t, c.Count()-loopStart, offset)
}

func TestDisassembleDoesNotPanic(t *testing.T) {
	c := New()
	idx := c.AddConstant(value.Int(5))
	c.WriteOp(OpConstant, 1)
	c.Write(byte(idx), 1)
	c.WriteOp(OpPrint, 1)
	c.WriteOp(OpHalt, 1)
	var buf bytes.Buffer
	Disassemble(c, "test", &buf)
	require.Contains(t, buf.String(), "CONSTANT")
	require.Contains(t, buf.String(), "HALT")
}
