/*
File    : gomixvm/vm/call.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package vm

import (
	"fmt"

	"github.com/akashmaji946/gomixvm/chunk"
	"github.com/akashmaji946/gomixvm/value"
)

// call implements OP_CALL argc: the callee sits at stack_top-argc-1. A
// native callable is invoked directly; nil is a tolerant no-op that yields
// nil (so calling an unresolved name, e.g. the never-realized user
// functions of §9, never aborts the program); any other type is a runtime
// error.
func (m *VM) call(argc int) error {
	calleeIdx := m.sp - argc - 1
	if calleeIdx < 0 {
		return fmt.Errorf("stack underflow in call")
	}
	callee := m.stack[calleeIdx]
	args := make([]value.Value, argc)
	copy(args, m.stack[calleeIdx+1:m.sp])

	switch callee.Type() {
	case value.TypeNative:
		result, err := callee.AsNative()(args)
		m.sp = calleeIdx
		if err != nil {
			return err
		}
		return m.push(result)
	case value.TypeNil:
		m.sp = calleeIdx
		return m.push(value.Nil())
	default:
		return fmt.Errorf("cannot call a value of type %v", callee.Type())
	}
}

// execReserved dispatches every reserved-but-inert opcode (spec §4.4's
// list: GET_FIELD, SET_FIELD, GET_INDEX, SET_INDEX, MAP, CLASS, METHOD,
// INVOKE, IMPORT, SERVER, ROUTE, RESPOND, SECURITY, ASYNC, AWAIT). Each
// consumes exactly the operand bytes the disassembler expects and leaves
// the stack in a sane state, but performs no real work — the corresponding
// functionality lives in the domain/ native collaborators instead, reached
// only through ordinary CALL.
func (m *VM) execReserved(op chunk.OpCode, f *frame) error {
	switch op {
	case chunk.OpGetField:
		f.ip++ // name constant index
		if _, err := m.pop(); err != nil {
			return err
		}
		return m.push(value.Nil())
	case chunk.OpSetField:
		// Stack on entry: [..., value, object]. The object is consumed;
		// value stays put as the expression's result.
		f.ip++
		if _, err := m.pop(); err != nil {
			return err
		}
		return nil
	case chunk.OpGetIndex:
		if _, err := m.pop(); err != nil {
			return err
		}
		if _, err := m.pop(); err != nil {
			return err
		}
		return m.push(value.Nil())
	case chunk.OpSetIndex:
		// Stack on entry: [..., value, object, index].
		if _, err := m.pop(); err != nil {
			return err
		}
		if _, err := m.pop(); err != nil {
			return err
		}
		return nil
	case chunk.OpMap:
		n := int(f.chunk.Code[f.ip])
		f.ip++
		for i := 0; i < 2*n; i++ {
			if _, err := m.pop(); err != nil {
				return err
			}
		}
		return m.push(value.Nil())
	case chunk.OpClass, chunk.OpMethod, chunk.OpInvoke, chunk.OpImport,
		chunk.OpServer, chunk.OpRoute:
		f.ip++ // single byte-sized operand per opTable
		return nil
	case chunk.OpRespond, chunk.OpSecurity, chunk.OpAsync, chunk.OpAwait:
		return nil
	}
	return fmt.Errorf("unhandled reserved opcode %s", op)
}
