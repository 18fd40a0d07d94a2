/*
File    : gomixvm/compiler/statements.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package compiler

import (
	"github.com/akashmaji946/gomixvm/ast"
	"github.com/akashmaji946/gomixvm/chunk"
	"github.com/akashmaji946/gomixvm/value"
)

func (c *Compiler) compileStatement(stmt ast.Statement) {
	switch n := stmt.(type) {
	case *ast.Let:
		c.compileLet(n)
	case *ast.Block:
		c.beginScope()
		for _, s := range n.Statements {
			c.compileStatement(s)
		}
		c.endScope(n.Line())
	case *ast.If:
		c.compileIf(n)
	case *ast.While:
		c.compileWhile(n)
	case *ast.ForRange:
		c.compileForRange(n)
	case *ast.ForIn:
		// Reserved-but-inert: must not fail (spec §4.3).
	case *ast.Function:
		c.compileFunction(n)
	case *ast.Return:
		if n.Value != nil {
			c.compileExpression(n.Value)
		} else {
			c.chunk.WriteOp(chunk.OpNil, n.Line())
		}
		c.chunk.WriteOp(chunk.OpReturn, n.Line())
	case *ast.Print:
		c.compileExpression(n.Value)
		c.chunk.WriteOp(chunk.OpPrint, n.Line())
	case *ast.ExpressionStatement:
		c.compileExpression(n.Expr)
		c.chunk.WriteOp(chunk.OpPop, n.Line())
	case *ast.Class, *ast.Server, *ast.Respond, *ast.Security,
		*ast.Import, *ast.Break, *ast.Continue:
		// Reserved-but-inert: parse but no emission (spec §4.3, §9).
	default:
		c.fail(stmt.Line(), "internal: unhandled statement kind %T", stmt)
	}
}

// compileLet lowers `let NAME [type_name] [ = expr ]`: compile the
// initializer (or NIL if absent), then at depth 0 emit SET_GLOBAL, else
// register a new local keeping the value on the stack as its contents.
func (c *Compiler) compileLet(n *ast.Let) {
	if n.Initializer != nil {
		c.compileExpression(n.Initializer)
	} else {
		c.chunk.WriteOp(chunk.OpNil, n.Line())
	}

	if c.depth == 0 {
		idx := c.identifierConstant(n.Line(), n.Name)
		c.chunk.WriteOp(chunk.OpSetGlobal, n.Line())
		c.chunk.Write(byte(idx), n.Line())
		c.chunk.WriteOp(chunk.OpPop, n.Line())
		return
	}
	c.declareLocal(n.Line(), n.Name)
}

// compileIf lowers `if cond then [else]` per spec §4.3's exact jump
// sequence: the false branch always begins by popping the condition.
func (c *Compiler) compileIf(n *ast.If) {
	c.compileExpression(n.Condition)
	falseJump := c.chunk.EmitJump(chunk.OpJumpIfFalse, n.Line())
	c.chunk.WriteOp(chunk.OpPop, n.Line())
	c.compileStatement(n.Then)

	if n.Else != nil {
		endJump := c.chunk.EmitJump(chunk.OpJump, n.Line())
		c.patchJump(falseJump, n.Line())
		c.chunk.WriteOp(chunk.OpPop, n.Line())
		c.compileStatement(n.Else)
		c.patchJump(endJump, n.Line())
		return
	}
	c.patchJump(falseJump, n.Line())
	c.chunk.WriteOp(chunk.OpPop, n.Line())
}

func (c *Compiler) compileWhile(n *ast.While) {
	loopStart := c.chunk.Count()
	c.compileExpression(n.Condition)
	exitJump := c.chunk.EmitJump(chunk.OpJumpIfFalse, n.Line())
	c.chunk.WriteOp(chunk.OpPop, n.Line())
	c.compileStatement(n.Body)
	c.emitLoop(loopStart, n.Line())
	c.patchJump(exitJump, n.Line())
	c.chunk.WriteOp(chunk.OpPop, n.Line())
}

// compileForRange lowers `for NAME in A..B body` exactly per spec §4.3:
// open a scope, seed the loop variable, compare against B each iteration,
// increment by a CONSTANT 1 ADD SET_LOCAL sequence, and close the scope so
// ending the loop pops the loop variable.
func (c *Compiler) compileForRange(n *ast.ForRange) {
	line := n.Line()
	c.beginScope()

	if n.Start != nil {
		c.compileExpression(n.Start)
	} else {
		idx := c.addConstant(line, value.Int(0))
		c.chunk.WriteOp(chunk.OpConstant, line)
		c.chunk.Write(byte(idx), line)
	}
	c.declareLocal(line, n.Name)
	slot := byte(c.resolveLocal(n.Name))

	loopStart := c.chunk.Count()
	c.chunk.WriteOp(chunk.OpGetLocal, line)
	c.chunk.Write(slot, line)
	c.compileExpression(n.End)
	c.chunk.WriteOp(chunk.OpLess, line)
	exitJump := c.chunk.EmitJump(chunk.OpJumpIfFalse, line)
	c.chunk.WriteOp(chunk.OpPop, line)

	c.compileStatement(n.Body)

	c.chunk.WriteOp(chunk.OpGetLocal, line)
	c.chunk.Write(slot, line)
	oneIdx := c.addConstant(line, value.Int(1))
	c.chunk.WriteOp(chunk.OpConstant, line)
	c.chunk.Write(byte(oneIdx), line)
	c.chunk.WriteOp(chunk.OpAdd, line)
	c.chunk.WriteOp(chunk.OpSetLocal, line)
	c.chunk.Write(slot, line)
	c.chunk.WriteOp(chunk.OpPop, line)
	c.emitLoop(loopStart, line)

	c.patchJump(exitJump, line)
	c.chunk.WriteOp(chunk.OpPop, line)
	c.endScope(line)
}

// compileFunction lowers `fn NAME(...)` per spec §9: the body is never
// realized, only a nil binding under NAME: a global at depth 0, otherwise a
// local in the enclosing scope.
func (c *Compiler) compileFunction(n *ast.Function) {
	c.chunk.WriteOp(chunk.OpNil, n.Line())
	if c.depth == 0 {
		idx := c.identifierConstant(n.Line(), n.Name)
		c.chunk.WriteOp(chunk.OpSetGlobal, n.Line())
		c.chunk.Write(byte(idx), n.Line())
		c.chunk.WriteOp(chunk.OpPop, n.Line())
		return
	}
	c.declareLocal(n.Line(), n.Name)
}

func (c *Compiler) patchJump(offset int, line int) {
	if err := c.chunk.PatchJump(offset); err != nil {
		c.fail(line, "%s", err.Error())
	}
}

func (c *Compiler) emitLoop(loopStart int, line int) {
	if err := c.chunk.EmitLoop(loopStart, line); err != nil {
		c.fail(line, "%s", err.Error())
	}
}
