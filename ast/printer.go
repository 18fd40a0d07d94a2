/*
File    : gomixvm/ast/printer.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package ast

import (
	"bytes"
	"fmt"
)

const printerIndentSize = 2

// Printer is a Visitor that renders a tree in an indented, one-line-per-node
// form, used by tests to eyeball a parse result without a debugger.
type Printer struct {
	indent int
	buf    bytes.Buffer
}

// Print walks n and returns its formatted tree.
func Print(n Node) string {
	p := &Printer{}
	n.Accept(p)
	return p.buf.String()
}

func (p *Printer) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteByte(' ')
	}
}

func (p *Printer) line(format string, args ...any) {
	p.writeIndent()
	fmt.Fprintf(&p.buf, format, args...)
	p.buf.WriteByte('\n')
}

func (p *Printer) nested(children ...Node) {
	p.indent += printerIndentSize
	for _, c := range children {
		if c == nil {
			continue
		}
		c.Accept(p)
	}
	p.indent -= printerIndentSize
}

func (p *Printer) VisitProgram(n *Program) any {
	p.line("Program (line %d)", n.line)
	for _, s := range n.Statements {
		p.nested(s)
	}
	return nil
}

func (p *Printer) VisitBlock(n *Block) any {
	p.line("Block (line %d)", n.line)
	for _, s := range n.Statements {
		p.nested(s)
	}
	return nil
}

func (p *Printer) VisitIntLiteral(n *IntLiteral) any {
	p.line("Int %d", n.Value)
	return nil
}

func (p *Printer) VisitFloatLiteral(n *FloatLiteral) any {
	p.line("Float %v", n.Value)
	return nil
}

func (p *Printer) VisitStringLiteral(n *StringLiteral) any {
	p.line("String %q", n.Value)
	return nil
}

func (p *Printer) VisitBoolLiteral(n *BoolLiteral) any {
	p.line("Bool %v", n.Value)
	return nil
}

func (p *Printer) VisitNilLiteral(n *NilLiteral) any {
	p.line("Nil")
	return nil
}

func (p *Printer) VisitIdentifier(n *Identifier) any {
	p.line("Identifier %s", n.Name)
	return nil
}

func (p *Printer) VisitBinary(n *Binary) any {
	p.line("Binary %s", n.Operator)
	p.nested(n.Left, n.Right)
	return nil
}

func (p *Printer) VisitUnary(n *Unary) any {
	p.line("Unary %s", n.Operator)
	p.nested(n.Operand)
	return nil
}

func (p *Printer) VisitCall(n *Call) any {
	p.line("Call (%d args)", len(n.Args))
	p.indent += printerIndentSize
	n.Callee.Accept(p)
	for _, a := range n.Args {
		a.Accept(p)
	}
	p.indent -= printerIndentSize
	return nil
}

func (p *Printer) VisitDot(n *Dot) any {
	p.line("Dot .%s", n.Field)
	p.nested(n.Object)
	return nil
}

func (p *Printer) VisitIndex(n *Index) any {
	p.line("Index")
	p.nested(n.Object, n.Idx)
	return nil
}

func (p *Printer) VisitArrayLiteral(n *ArrayLiteral) any {
	p.line("Array (%d elements)", len(n.Elements))
	p.indent += printerIndentSize
	for _, e := range n.Elements {
		e.Accept(p)
	}
	p.indent -= printerIndentSize
	return nil
}

func (p *Printer) VisitMapLiteral(n *MapLiteral) any {
	p.line("Map (%d entries, reserved)", len(n.Entries))
	p.indent += printerIndentSize
	for _, entry := range n.Entries {
		entry.Key.Accept(p)
		entry.Value.Accept(p)
	}
	p.indent -= printerIndentSize
	return nil
}

func (p *Printer) VisitAssignment(n *Assignment) any {
	p.line("Assignment")
	p.nested(n.Target, n.Value)
	return nil
}

func (p *Printer) VisitLet(n *Let) any {
	p.line("Let %s", n.Name)
	p.nested(n.Initializer)
	return nil
}

func (p *Printer) VisitIf(n *If) any {
	p.line("If")
	p.indent += printerIndentSize
	n.Condition.Accept(p)
	n.Then.Accept(p)
	if n.Else != nil {
		n.Else.Accept(p)
	}
	p.indent -= printerIndentSize
	return nil
}

func (p *Printer) VisitWhile(n *While) any {
	p.line("While")
	p.nested(n.Condition, n.Body)
	return nil
}

func (p *Printer) VisitForRange(n *ForRange) any {
	p.line("ForRange %s", n.Name)
	p.nested(n.Start, n.End, n.Body)
	return nil
}

func (p *Printer) VisitForIn(n *ForIn) any {
	p.line("ForIn %s (reserved)", n.Name)
	p.nested(n.Iterable, n.Body)
	return nil
}

func (p *Printer) VisitFunction(n *Function) any {
	p.line("Function %s (%v)", n.Name, n.ParamNames)
	p.nested(n.Body)
	return nil
}

func (p *Printer) VisitReturn(n *Return) any {
	p.line("Return")
	p.nested(n.Value)
	return nil
}

func (p *Printer) VisitPrint(n *Print) any {
	p.line("Print")
	p.nested(n.Value)
	return nil
}

func (p *Printer) VisitClass(n *Class) any {
	p.line("Class %s (%d members, reserved)", n.Name, len(n.Members))
	p.indent += printerIndentSize
	for _, m := range n.Members {
		if m.Method != nil {
			m.Method.Accept(p)
		} else {
			p.line("Field %s", m.FieldName)
		}
	}
	p.indent -= printerIndentSize
	return nil
}

func (p *Printer) VisitServer(n *Server) any {
	p.line("Server %s (%d routes, reserved)", n.Name, len(n.Routes))
	p.indent += printerIndentSize
	for _, r := range n.Routes {
		r.Accept(p)
	}
	p.indent -= printerIndentSize
	return nil
}

func (p *Printer) VisitRoute(n *Route) any {
	p.line("Route %s %s", n.Method, n.Path)
	p.nested(n.Body)
	return nil
}

func (p *Printer) VisitRespond(n *Respond) any {
	p.line("Respond")
	p.nested(n.Value)
	return nil
}

func (p *Printer) VisitSecurity(n *Security) any {
	p.line("Security (%d rules, reserved)", len(n.Rules))
	p.indent += printerIndentSize
	for _, r := range n.Rules {
		r.Accept(p)
	}
	p.indent -= printerIndentSize
	return nil
}

func (p *Printer) VisitSecurityRule(n *SecurityRule) any {
	p.line("SecurityRule")
	p.nested(n.Rule)
	return nil
}

func (p *Printer) VisitImport(n *Import) any {
	p.line("Import %s (reserved)", n.Path)
	return nil
}

func (p *Printer) VisitBreak(n *Break) any {
	p.line("Break (reserved)")
	return nil
}

func (p *Printer) VisitContinue(n *Continue) any {
	p.line("Continue (reserved)")
	return nil
}

func (p *Printer) VisitExpressionStatement(n *ExpressionStatement) any {
	p.line("ExpressionStatement")
	p.nested(n.Expr)
	return nil
}
