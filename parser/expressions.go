/*
File    : gomixvm/parser/expressions.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package parser

import (
	"strconv"

	"github.com/akashmaji946/gomixvm/ast"
	"github.com/akashmaji946/gomixvm/lexer"
)

// compoundOps maps a compound-assignment token to the binary operator it
// desugars to: `target OP= expr` becomes `target = target OP expr`,
// entirely at parse time (no new opcodes).
var compoundOps = map[lexer.TokenType]string{
	lexer.PLUS_ASSIGN_OP:  "+",
	lexer.MINUS_ASSIGN_OP: "-",
	lexer.MUL_ASSIGN_OP:   "*",
	lexer.DIV_ASSIGN_OP:   "/",
	lexer.MOD_ASSIGN_OP:   "%",
}

func (p *Parser) parseExpression() ast.Expression { return p.parseAssignment() }

// parseAssignment is right-associative and loosest: `target = value` or a
// compound form, legal only when target is syntactically an identifier,
// dot, or index expression.
func (p *Parser) parseAssignment() ast.Expression {
	line := p.current.Line
	left := p.parseOr()

	if p.check(lexer.ASSIGN_OP) {
		p.advance()
		if !isAssignTarget(left) {
			p.errorAt(p.previous, "invalid assignment target")
			return left
		}
		value := p.parseAssignment()
		return ast.NewAssignment(line, left, value)
	}

	if op, ok := compoundOps[p.current.Type]; ok {
		p.advance()
		if !isAssignTarget(left) {
			p.errorAt(p.previous, "invalid assignment target")
			return left
		}
		value := p.parseAssignment()
		return ast.NewAssignment(line, left, ast.NewBinary(line, op, left, value))
	}

	return left
}

func isAssignTarget(e ast.Expression) bool {
	switch e.(type) {
	case *ast.Identifier, *ast.Dot, *ast.Index:
		return true
	default:
		return false
	}
}

func (p *Parser) parseOr() ast.Expression {
	left := p.parseAnd()
	for p.check(lexer.OR_OP) || p.check(lexer.OR_KEY) {
		line := p.current.Line
		p.advance()
		right := p.parseAnd()
		left = ast.NewBinary(line, "or", left, right)
	}
	return left
}

func (p *Parser) parseAnd() ast.Expression {
	left := p.parseEquality()
	for p.check(lexer.AND_OP) || p.check(lexer.AND_KEY) {
		line := p.current.Line
		p.advance()
		right := p.parseEquality()
		left = ast.NewBinary(line, "and", left, right)
	}
	return left
}

func (p *Parser) parseEquality() ast.Expression {
	left := p.parseRelational()
	for p.check(lexer.EQ_OP) || p.check(lexer.NE_OP) {
		op := p.current
		p.advance()
		right := p.parseRelational()
		left = ast.NewBinary(op.Line, op.Literal, left, right)
	}
	return left
}

func (p *Parser) parseRelational() ast.Expression {
	left := p.parseAdditive()
	for p.check(lexer.LT_OP) || p.check(lexer.LE_OP) || p.check(lexer.GT_OP) || p.check(lexer.GE_OP) {
		op := p.current
		p.advance()
		right := p.parseAdditive()
		left = ast.NewBinary(op.Line, op.Literal, left, right)
	}
	return left
}

func (p *Parser) parseAdditive() ast.Expression {
	left := p.parseMultiplicative()
	for p.check(lexer.PLUS_OP) || p.check(lexer.MINUS_OP) {
		op := p.current
		p.advance()
		right := p.parseMultiplicative()
		left = ast.NewBinary(op.Line, op.Literal, left, right)
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expression {
	left := p.parseUnary()
	for p.check(lexer.MUL_OP) || p.check(lexer.DIV_OP) || p.check(lexer.MOD_OP) {
		op := p.current
		p.advance()
		right := p.parseUnary()
		left = ast.NewBinary(op.Line, op.Literal, left, right)
	}
	return left
}

func (p *Parser) parseUnary() ast.Expression {
	if p.check(lexer.MINUS_OP) || p.check(lexer.NOT_OP) || p.check(lexer.NOT_KEY) {
		op := p.current
		p.advance()
		operand := p.parseUnary()
		return ast.NewUnary(op.Line, op.Literal, operand)
	}
	return p.parsePostfix()
}

// parsePostfix parses a primary expression followed by zero or more
// call/dot/index accessors, left-to-right.
func (p *Parser) parsePostfix() ast.Expression {
	expr := p.parsePrimary()
	for {
		switch {
		case p.check(lexer.LEFT_PAREN):
			line := p.current.Line
			p.advance()
			var args []ast.Expression
			if !p.check(lexer.RIGHT_PAREN) {
				for {
					args = append(args, p.parseExpression())
					if !p.match(lexer.COMMA_DELIM) {
						break
					}
				}
			}
			p.consume(lexer.RIGHT_PAREN, "expect ')' after arguments")
			expr = ast.NewCall(line, expr, args)
		case p.check(lexer.DOT_OP):
			line := p.current.Line
			p.advance()
			field := p.consume(lexer.IDENTIFIER_ID, "expect field name after '.'").Literal
			expr = ast.NewDot(line, expr, field)
		case p.check(lexer.LEFT_BRACKET):
			line := p.current.Line
			p.advance()
			idx := p.parseExpression()
			p.consume(lexer.RIGHT_BRACKET, "expect ']' after index expression")
			expr = ast.NewIndex(line, expr, idx)
		default:
			return expr
		}
	}
}

func (p *Parser) parsePrimary() ast.Expression {
	tok := p.current
	switch tok.Type {
	case lexer.INT_LIT:
		p.advance()
		v, _ := strconv.ParseInt(tok.Literal, 10, 64)
		return ast.NewIntLiteral(tok.Line, v)
	case lexer.FLOAT_LIT:
		p.advance()
		v, _ := strconv.ParseFloat(tok.Literal, 64)
		return ast.NewFloatLiteral(tok.Line, v)
	case lexer.STRING_LIT:
		p.advance()
		return ast.NewStringLiteral(tok.Line, tok.Literal)
	case lexer.TRUE_KEY:
		p.advance()
		return ast.NewBoolLiteral(tok.Line, true)
	case lexer.FALSE_KEY:
		p.advance()
		return ast.NewBoolLiteral(tok.Line, false)
	case lexer.NIL_KEY:
		p.advance()
		return ast.NewNilLiteral(tok.Line)
	case lexer.SELF_KEY:
		p.advance()
		return ast.NewIdentifier(tok.Line, "self")
	case lexer.IDENTIFIER_ID:
		p.advance()
		return ast.NewIdentifier(tok.Line, tok.Literal)
	case lexer.LEFT_PAREN:
		p.advance()
		expr := p.parseExpression()
		p.consume(lexer.RIGHT_PAREN, "expect ')' after expression")
		return expr
	case lexer.LEFT_BRACKET:
		return p.parseArrayLiteral()
	case lexer.LEFT_BRACE:
		return p.parseMapLiteral()
	default:
		p.errorAtCurrent("expect expression")
		p.advance()
		return ast.NewNilLiteral(tok.Line)
	}
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	line := p.current.Line
	p.advance() // '['
	var elements []ast.Expression
	if !p.check(lexer.RIGHT_BRACKET) {
		for {
			elements = append(elements, p.parseExpression())
			if !p.match(lexer.COMMA_DELIM) {
				break
			}
		}
	}
	p.consume(lexer.RIGHT_BRACKET, "expect ']' after array elements")
	return ast.NewArrayLiteral(line, elements)
}

// parseMapLiteral parses `{ expr: expr, ... }`. Reserved-but-inert: the
// compiler accepts the resulting node and emits a single NIL for it.
func (p *Parser) parseMapLiteral() ast.Expression {
	line := p.current.Line
	p.advance() // '{'
	var entries []ast.MapEntry
	if !p.check(lexer.RIGHT_BRACE) {
		for {
			key := p.parseExpression()
			p.consume(lexer.COLON_DELIM, "expect ':' after map key")
			val := p.parseExpression()
			entries = append(entries, ast.MapEntry{Key: key, Value: val})
			if !p.match(lexer.COMMA_DELIM) {
				break
			}
		}
	}
	p.consume(lexer.RIGHT_BRACE, "expect '}' after map entries")
	return ast.NewMapLiteral(line, entries)
}
