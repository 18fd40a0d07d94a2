/*
File    : gomixvm/compiler/compiler.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package compiler lowers an ast.Program into a chunk.Chunk in a single
// tree walk, resolving identifiers to local slots or global-name constants
// and patching forward jumps as branch targets become known.
package compiler

import (
	"fmt"

	"github.com/akashmaji946/gomixvm/ast"
	"github.com/akashmaji946/gomixvm/chunk"
	"github.com/akashmaji946/gomixvm/value"
)

// MaxLocals bounds the locals stack: local slot operands are one byte.
const MaxLocals = 256

type local struct {
	name  string
	depth int
}

// Compiler walks one ast.Program and emits into a single chunk.Chunk. It
// does not realize user-defined functions (spec §9): `fn` lowers to a nil
// binding (a global at top level, a local inside a block) and the body is
// never compiled into its own chunk.
type Compiler struct {
	chunk    *chunk.Chunk
	locals   []local
	depth    int
	hadError bool
	errs     []error
}

// New returns a Compiler ready to lower into a fresh chunk.
func New() *Compiler {
	return &Compiler{chunk: chunk.New()}
}

// Compile lowers program and appends a trailing HALT, per spec §4.3 ("the
// last byte the surrounding driver appends after compilation is HALT").
// The chunk is always returned, even on error (spec §7: "the chunk is
// still returned but the caller MUST NOT execute it") — callers must check
// the returned error before calling vm.Run.
func (c *Compiler) Compile(program *ast.Program) (*chunk.Chunk, error) {
	for _, stmt := range program.Statements {
		c.compileStatement(stmt)
	}
	c.chunk.WriteOp(chunk.OpHalt, program.Line())
	if c.hadError {
		return c.chunk, joinErrors(c.errs)
	}
	return c.chunk, nil
}

func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	msg := errs[0].Error()
	for _, e := range errs[1:] {
		msg += "; " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}

func (c *Compiler) fail(line int, format string, args ...any) {
	c.hadError = true
	c.errs = append(c.errs, fmt.Errorf("line %d: %s", line, fmt.Sprintf(format, args...)))
}

// addConstant appends v to the constant pool, failing the compile if the
// pool would exceed the one-byte operand limit.
func (c *Compiler) addConstant(line int, v value.Value) int {
	if len(c.chunk.Constants) >= chunk.MaxConstants {
		c.fail(line, "too many constants in one chunk (max %d)", chunk.MaxConstants)
		return 0
	}
	return c.chunk.AddConstant(v)
}

func (c *Compiler) identifierConstant(line int, name string) int {
	return c.addConstant(line, value.InternedString(name))
}

// beginScope/endScope bracket a lexical scope: endScope pops, in LIFO
// order, every local declared at a deeper level than the one it returns
// to, emitting one POP per popped slot (spec §4.3).
func (c *Compiler) beginScope() { c.depth++ }

func (c *Compiler) endScope(line int) {
	c.depth--
	for len(c.locals) > 0 && c.locals[len(c.locals)-1].depth > c.depth {
		c.chunk.WriteOp(chunk.OpPop, line)
		c.locals = c.locals[:len(c.locals)-1]
	}
}

// declareLocal registers name as a new local at the current depth. It does
// not check the depth: callers only invoke it above depth 0 and emit a
// SET_GLOBAL at depth 0 instead.
func (c *Compiler) declareLocal(line int, name string) {
	if len(c.locals) >= MaxLocals {
		c.fail(line, "too many local variables in scope (max %d)", MaxLocals)
		return
	}
	c.locals = append(c.locals, local{name: name, depth: c.depth})
}

// resolveLocal does a reverse linear scan so inner scopes shadow outer
// ones, returning the slot index or -1 if name is not a local.
func (c *Compiler) resolveLocal(name string) int {
	for i := len(c.locals) - 1; i >= 0; i-- {
		if c.locals[i].name == name {
			return i
		}
	}
	return -1
}
