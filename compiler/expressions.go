/*
File    : gomixvm/compiler/expressions.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package compiler

import (
	"github.com/akashmaji946/gomixvm/ast"
	"github.com/akashmaji946/gomixvm/chunk"
	"github.com/akashmaji946/gomixvm/value"
)

var binaryOps = map[string]chunk.OpCode{
	"+": chunk.OpAdd, "-": chunk.OpSub, "*": chunk.OpMul, "/": chunk.OpDiv, "%": chunk.OpMod,
	"==": chunk.OpEqual, "!=": chunk.OpNotEqual,
	"<": chunk.OpLess, "<=": chunk.OpLessEq, ">": chunk.OpGreater, ">=": chunk.OpGreaterEq,
	"and": chunk.OpAnd, "or": chunk.OpOr,
}

func (c *Compiler) compileExpression(expr ast.Expression) {
	switch n := expr.(type) {
	case *ast.IntLiteral:
		idx := c.addConstant(n.Line(), value.Int(n.Value))
		c.chunk.WriteOp(chunk.OpConstant, n.Line())
		c.chunk.Write(byte(idx), n.Line())
	case *ast.FloatLiteral:
		idx := c.addConstant(n.Line(), value.Float(n.Value))
		c.chunk.WriteOp(chunk.OpConstant, n.Line())
		c.chunk.Write(byte(idx), n.Line())
	case *ast.StringLiteral:
		idx := c.addConstant(n.Line(), value.InternedString(n.Value))
		c.chunk.WriteOp(chunk.OpConstant, n.Line())
		c.chunk.Write(byte(idx), n.Line())
	case *ast.BoolLiteral:
		if n.Value {
			c.chunk.WriteOp(chunk.OpTrue, n.Line())
		} else {
			c.chunk.WriteOp(chunk.OpFalse, n.Line())
		}
	case *ast.NilLiteral:
		c.chunk.WriteOp(chunk.OpNil, n.Line())
	case *ast.Identifier:
		c.compileIdentifierRead(n)
	case *ast.Binary:
		c.compileBinary(n)
	case *ast.Unary:
		c.compileExpression(n.Operand)
		switch n.Operator {
		case "-":
			c.chunk.WriteOp(chunk.OpNegate, n.Line())
		case "not", "!":
			c.chunk.WriteOp(chunk.OpNot, n.Line())
		default:
			c.fail(n.Line(), "internal: unknown unary operator %q", n.Operator)
		}
	case *ast.Call:
		c.compileExpression(n.Callee)
		for _, a := range n.Args {
			c.compileExpression(a)
		}
		if len(n.Args) > 255 {
			c.fail(n.Line(), "too many arguments in call (max 255)")
		}
		c.chunk.WriteOp(chunk.OpCall, n.Line())
		c.chunk.Write(byte(len(n.Args)), n.Line())
	case *ast.Dot:
		c.compileExpression(n.Object)
		idx := c.identifierConstant(n.Line(), n.Field)
		c.chunk.WriteOp(chunk.OpGetField, n.Line())
		c.chunk.Write(byte(idx), n.Line())
	case *ast.Index:
		c.compileExpression(n.Object)
		c.compileExpression(n.Idx)
		c.chunk.WriteOp(chunk.OpGetIndex, n.Line())
	case *ast.ArrayLiteral:
		for _, el := range n.Elements {
			c.compileExpression(el)
		}
		if len(n.Elements) > 255 {
			c.fail(n.Line(), "too many elements in array literal (max 255)")
		}
		c.chunk.WriteOp(chunk.OpArray, n.Line())
		c.chunk.Write(byte(len(n.Elements)), n.Line())
	case *ast.MapLiteral:
		// Reserved-but-inert: lowers to NIL, the same pattern used for
		// `fn` (spec §9) — it must still yield a value where one is used.
		c.chunk.WriteOp(chunk.OpNil, n.Line())
	case *ast.Assignment:
		c.compileAssignment(n)
	default:
		c.fail(expr.Line(), "internal: unhandled expression kind %T", expr)
	}
}

func (c *Compiler) compileIdentifierRead(n *ast.Identifier) {
	if slot := c.resolveLocal(n.Name); slot != -1 {
		c.chunk.WriteOp(chunk.OpGetLocal, n.Line())
		c.chunk.Write(byte(slot), n.Line())
		return
	}
	idx := c.identifierConstant(n.Line(), n.Name)
	c.chunk.WriteOp(chunk.OpGetGlobal, n.Line())
	c.chunk.Write(byte(idx), n.Line())
}

func (c *Compiler) compileBinary(n *ast.Binary) {
	c.compileExpression(n.Left)
	c.compileExpression(n.Right)
	op, ok := binaryOps[n.Operator]
	if !ok {
		c.fail(n.Line(), "internal: unknown binary operator %q", n.Operator)
		return
	}
	c.chunk.WriteOp(op, n.Line())
}

// compileAssignment lowers `target = value`: compile the value first, then
// dispatch on the target's concrete shape. The assigned value is left on
// the stack so assignment is usable as an expression.
func (c *Compiler) compileAssignment(n *ast.Assignment) {
	c.compileExpression(n.Value)
	switch target := n.Target.(type) {
	case *ast.Identifier:
		if slot := c.resolveLocal(target.Name); slot != -1 {
			c.chunk.WriteOp(chunk.OpSetLocal, n.Line())
			c.chunk.Write(byte(slot), n.Line())
			return
		}
		idx := c.identifierConstant(n.Line(), target.Name)
		c.chunk.WriteOp(chunk.OpSetGlobal, n.Line())
		c.chunk.Write(byte(idx), n.Line())
	case *ast.Dot:
		c.compileExpression(target.Object)
		idx := c.identifierConstant(n.Line(), target.Field)
		c.chunk.WriteOp(chunk.OpSetField, n.Line())
		c.chunk.Write(byte(idx), n.Line())
	case *ast.Index:
		c.compileExpression(target.Object)
		c.compileExpression(target.Idx)
		c.chunk.WriteOp(chunk.OpSetIndex, n.Line())
	default:
		c.fail(n.Line(), "internal: invalid assignment target %T", target)
	}
}
