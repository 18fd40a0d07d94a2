/*
File    : gomixvm/vm/vm.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package vm implements the stack-based interpreter loop over a compiled
// chunk.Chunk: a fixed operand stack, a fixed call-frame stack (only one
// frame is ever pushed, since user-defined functions are not realized —
// see spec §9), a globals table, and a native-function registry.
package vm

import (
	"fmt"
	"io"
	"os"

	"github.com/akashmaji946/gomixvm/chunk"
	"github.com/akashmaji946/gomixvm/internal/golog"
	"github.com/akashmaji946/gomixvm/value"
)

const (
	StackMax = 1024
	FrameMax = 64
)

// RuntimeError is returned by Run when execution aborts; it carries the
// source line the failing instruction was compiled from.
type RuntimeError struct {
	Line    int
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("[line %d] runtime error: %s", e.Line, e.Message)
}

// frame is a record of one active call: its chunk, instruction pointer,
// and base into the operand stack. Only the top-level frame is ever
// pushed by the in-scope compiler's output.
type frame struct {
	chunk *chunk.Chunk
	ip    int
	base  int
}

// VM is a single-threaded bytecode interpreter. It is not safe for
// concurrent use; the domain collaborators under domain/ run their own
// goroutines but never call back into a shared VM instance concurrently.
type VM struct {
	stack  [StackMax]value.Value
	sp     int
	frames [FrameMax]frame
	fp     int

	globals *value.Table
	natives *value.Table

	Stdout io.Writer
	Trace  bool
}

// New returns a VM with its globals table initialized and the standard
// native registry (print, str, len) installed.
func New() *VM {
	m := &VM{
		globals: value.NewTable(),
		natives: value.NewTable(),
		Stdout:  os.Stdout,
	}
	m.installBuiltinNatives()
	return m
}

// RegisterNative installs fn under name in the global namespace, as a
// callable Value. Must be called before Run, matching spec §4.4 ("further
// natives may be registered under any global name before execution
// begins").
func (m *VM) RegisterNative(name string, fn value.NativeFn) {
	m.globals.Set(name, value.Native(name, fn))
}

// SetGlobal seeds a non-function global before Run, for callers that want
// to expose a value (e.g. a config table) rather than only a callable.
func (m *VM) SetGlobal(name string, v value.Value) {
	m.globals.Set(name, v)
}

func (m *VM) installBuiltinNatives() {
	m.RegisterNative("print", func(args []value.Value) (value.Value, error) {
		fmt.Fprintln(m.Stdout, value.JoinPrintArgs(args))
		return value.Nil(), nil
	})
	m.RegisterNative("str", func(args []value.Value) (value.Value, error) {
		if len(args) == 0 {
			return value.String(""), nil
		}
		return value.String(args[0].String()), nil
	})
	m.RegisterNative("len", func(args []value.Value) (value.Value, error) {
		if len(args) == 0 {
			return value.Int(0), nil
		}
		return value.Int(int64(value.Len(args[0]))), nil
	})
}

func (m *VM) push(v value.Value) error {
	if m.sp >= StackMax {
		return fmt.Errorf("stack overflow")
	}
	m.stack[m.sp] = v
	m.sp++
	return nil
}

func (m *VM) pop() (value.Value, error) {
	if m.sp == 0 {
		return value.Value{}, fmt.Errorf("stack underflow")
	}
	m.sp--
	return m.stack[m.sp], nil
}

func (m *VM) peek(distanceFromTop int) value.Value {
	return m.stack[m.sp-1-distanceFromTop]
}

// Run executes c from its first byte until HALT or a top-level RETURN,
// returning a *RuntimeError on failure. c must end with chunk.OpHalt, per
// the compiler driver's contract; executing past the end is undefined.
func (m *VM) Run(c *chunk.Chunk) error {
	m.fp = 1
	m.frames[0] = frame{chunk: c, ip: 0, base: 0}

	for {
		f := &m.frames[m.fp-1]
		if f.ip >= len(f.chunk.Code) {
			return m.runtimeErrorAt(f.ip-1, "instruction pointer ran past end of chunk")
		}
		op := chunk.OpCode(f.chunk.Code[f.ip])
		instrStart := f.ip
		f.ip++

		if m.Trace {
			golog.Tracef("sp=%d ip=%d op=%s", m.sp, instrStart, op)
		}

		switch op {
		case chunk.OpNop:
			// nothing

		case chunk.OpConstant:
			idx := f.chunk.Code[f.ip]
			f.ip++
			if err := m.push(f.chunk.Constants[idx]); err != nil {
				return m.runtimeErrorAt(instrStart, err.Error())
			}

		case chunk.OpConstantLong:
			idx := int(f.chunk.Code[f.ip])<<16 | int(f.chunk.Code[f.ip+1])<<8 | int(f.chunk.Code[f.ip+2])
			f.ip += 3
			if err := m.push(f.chunk.Constants[idx]); err != nil {
				return m.runtimeErrorAt(instrStart, err.Error())
			}

		case chunk.OpTrue:
			m.push(value.Bool(true))
		case chunk.OpFalse:
			m.push(value.Bool(false))
		case chunk.OpNil:
			m.push(value.Nil())

		case chunk.OpPop:
			if _, err := m.pop(); err != nil {
				return m.runtimeErrorAt(instrStart, err.Error())
			}
		case chunk.OpDup:
			m.push(m.peek(0))

		case chunk.OpGetLocal:
			slot := int(f.chunk.Code[f.ip])
			f.ip++
			m.push(m.stack[f.base+slot])
		case chunk.OpSetLocal:
			slot := int(f.chunk.Code[f.ip])
			f.ip++
			m.stack[f.base+slot] = m.peek(0)

		case chunk.OpGetGlobal:
			idx := f.chunk.Code[f.ip]
			f.ip++
			name := f.chunk.Constants[idx].AsString()
			v, ok := m.globals.Get(name)
			if !ok {
				return m.runtimeErrorAt(instrStart, fmt.Sprintf("undefined global '%s'", name))
			}
			m.push(v)
		case chunk.OpSetGlobal:
			idx := f.chunk.Code[f.ip]
			f.ip++
			name := f.chunk.Constants[idx].AsString()
			m.globals.Set(name, m.peek(0))

		case chunk.OpAdd, chunk.OpSub, chunk.OpMul, chunk.OpDiv, chunk.OpMod:
			if err := m.binaryArith(op); err != nil {
				return m.runtimeErrorAt(instrStart, err.Error())
			}

		case chunk.OpNegate:
			v, _ := m.pop()
			switch v.Type() {
			case value.TypeInt:
				m.push(value.Int(-v.AsInt()))
			case value.TypeFloat:
				m.push(value.Float(-v.AsFloat()))
			default:
				return m.runtimeErrorAt(instrStart, "operand to unary '-' must be numeric")
			}

		case chunk.OpNot:
			v, _ := m.pop()
			switch v.Type() {
			case value.TypeBool:
				m.push(value.Bool(!v.AsBool()))
			case value.TypeNil:
				m.push(value.Bool(true))
			default:
				m.push(value.Bool(false))
			}

		case chunk.OpEqual:
			b, _ := m.pop()
			a, _ := m.pop()
			m.push(value.Bool(a.Equal(b)))
		case chunk.OpNotEqual:
			b, _ := m.pop()
			a, _ := m.pop()
			m.push(value.Bool(!a.Equal(b)))

		case chunk.OpLess, chunk.OpLessEq, chunk.OpGreater, chunk.OpGreaterEq:
			if err := m.compare(op); err != nil {
				return m.runtimeErrorAt(instrStart, err.Error())
			}

		case chunk.OpAnd:
			b, _ := m.pop()
			a, _ := m.pop()
			m.push(value.Bool(a.Truthy() && b.Truthy()))
		case chunk.OpOr:
			b, _ := m.pop()
			a, _ := m.pop()
			m.push(value.Bool(a.Truthy() || b.Truthy()))

		case chunk.OpJump:
			offset := int(f.chunk.Code[f.ip])<<8 | int(f.chunk.Code[f.ip+1])
			f.ip += 2
			f.ip += offset
		case chunk.OpJumpBack:
			offset := int(f.chunk.Code[f.ip])<<8 | int(f.chunk.Code[f.ip+1])
			f.ip += 2
			f.ip -= offset
		case chunk.OpJumpIfFalse:
			offset := int(f.chunk.Code[f.ip])<<8 | int(f.chunk.Code[f.ip+1])
			f.ip += 2
			top := m.peek(0)
			if isFalsey(top) {
				f.ip += offset
			}

		case chunk.OpCall:
			argc := int(f.chunk.Code[f.ip])
			f.ip++
			if err := m.call(argc); err != nil {
				return m.runtimeErrorAt(instrStart, err.Error())
			}

		case chunk.OpReturn:
			result, _ := m.pop()
			m.fp--
			if m.fp == 0 {
				return nil
			}
			m.sp = f.base
			m.push(result)

		case chunk.OpPrint:
			v, _ := m.pop()
			fmt.Fprintln(m.Stdout, v.String())

		case chunk.OpArray:
			n := int(f.chunk.Code[f.ip])
			f.ip++
			elems := make([]value.Value, n)
			for i := n - 1; i >= 0; i-- {
				elems[i], _ = m.pop()
			}
			m.push(value.ArrayOf(elems))

		case chunk.OpGetField, chunk.OpSetField, chunk.OpGetIndex, chunk.OpSetIndex,
			chunk.OpMap, chunk.OpClass, chunk.OpMethod, chunk.OpInvoke,
			chunk.OpImport, chunk.OpServer, chunk.OpRoute, chunk.OpRespond,
			chunk.OpSecurity, chunk.OpAsync, chunk.OpAwait:
			if err := m.execReserved(op, f); err != nil {
				return m.runtimeErrorAt(instrStart, err.Error())
			}

		case chunk.OpHalt:
			return nil

		default:
			// An opcode byte the dispatch loop doesn't recognize aborts
			// execution with a runtime error rather than a panic.
			return m.runtimeErrorAt(instrStart, fmt.Sprintf("unknown opcode %d", op))
		}
	}
}

func isFalsey(v value.Value) bool {
	switch v.Type() {
	case value.TypeNil:
		return true
	case value.TypeBool:
		return !v.AsBool()
	case value.TypeInt:
		return v.AsInt() == 0
	default:
		return false
	}
}

func (m *VM) runtimeErrorAt(offset int, message string) error {
	line := -1
	if m.fp > 0 {
		line = m.frames[m.fp-1].chunk.LineAt(offset)
	}
	return &RuntimeError{Line: line, Message: message}
}
