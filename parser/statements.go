/*
File    : gomixvm/parser/statements.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package parser

import (
	"strconv"

	"github.com/akashmaji946/gomixvm/ast"
	"github.com/akashmaji946/gomixvm/lexer"
)

// parseDeclaration dispatches on the current token's kind, consumes one
// optional ';' terminator after the statement, and resynchronizes on error,
// returning nil for a statement that failed to parse (the caller skips nils
// when assembling the block/program body).
func (p *Parser) parseDeclaration() ast.Statement {
	stmt := p.parseStatement()
	if !p.panicMode {
		p.match(lexer.SEMICOLON_DELIM)
	}
	if p.panicMode {
		p.synchronize()
	}
	return stmt
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.current.Type {
	case lexer.LET_KEY:
		return p.parseLet()
	case lexer.IF_KEY:
		return p.parseIf()
	case lexer.WHILE_KEY:
		return p.parseWhile()
	case lexer.FOR_KEY:
		return p.parseFor()
	case lexer.FN_KEY:
		return p.parseFunction()
	case lexer.RETURN_KEY:
		return p.parseReturn()
	case lexer.IMPORT_KEY:
		return p.parseImport()
	case lexer.CLASS_KEY:
		return p.parseClass()
	case lexer.SERVER_KEY:
		return p.parseServer()
	case lexer.SECURITY_KEY:
		return p.parseSecurity()
	case lexer.PRINT_KEY:
		return p.parsePrintStatement()
	case lexer.RESPOND_KEY:
		return p.parseRespond()
	case lexer.BREAK_KEY:
		return p.parseBreak()
	case lexer.CONTINUE_KEY:
		return p.parseContinue()
	case lexer.LEFT_BRACE:
		return p.parseBlock()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseLet() ast.Statement {
	line := p.current.Line
	p.advance() // 'let'
	name := p.consume(lexer.IDENTIFIER_ID, "expect variable name").Literal

	typeName := ""
	if p.check(lexer.IDENTIFIER_ID) {
		typeName = p.current.Literal
		p.advance()
	}

	var init ast.Expression
	if p.match(lexer.ASSIGN_OP) {
		init = p.parseExpression()
	}
	return ast.NewLet(line, name, typeName, init)
}

func (p *Parser) parseBlock() *ast.Block {
	line := p.current.Line
	p.consume(lexer.LEFT_BRACE, "expect '{'")
	var stmts []ast.Statement
	for !p.check(lexer.RIGHT_BRACE) && !p.check(lexer.EOF_TYPE) {
		stmt := p.parseDeclaration()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	p.consume(lexer.RIGHT_BRACE, "expect '}' after block")
	return ast.NewBlock(line, stmts)
}

func (p *Parser) parseIf() ast.Statement {
	line := p.current.Line
	p.advance() // 'if'
	cond := p.parseExpression()
	then := p.parseBlock()
	var els ast.Statement
	if p.match(lexer.ELSE_KEY) {
		if p.check(lexer.IF_KEY) {
			els = p.parseIf()
		} else {
			els = p.parseBlock()
		}
	}
	return ast.NewIf(line, cond, then, els)
}

func (p *Parser) parseWhile() ast.Statement {
	line := p.current.Line
	p.advance() // 'while'
	cond := p.parseExpression()
	body := p.parseBlock()
	return ast.NewWhile(line, cond, body)
}

func (p *Parser) parseFor() ast.Statement {
	line := p.current.Line
	p.advance() // 'for'
	name := p.consume(lexer.IDENTIFIER_ID, "expect loop variable name").Literal
	p.consume(lexer.IN_KEY, "expect 'in'")
	first := p.parseExpression()
	if p.match(lexer.RANGE_OP) {
		end := p.parseExpression()
		body := p.parseBlock()
		return ast.NewForRange(line, name, first, end, body)
	}
	body := p.parseBlock()
	return ast.NewForIn(line, name, first, body)
}

func (p *Parser) parseParamList() ([]string, []string) {
	var names, types []string
	p.consume(lexer.LEFT_PAREN, "expect '(' after function name")
	if !p.check(lexer.RIGHT_PAREN) {
		for {
			names = append(names, p.consume(lexer.IDENTIFIER_ID, "expect parameter name").Literal)
			typeName := ""
			if p.check(lexer.IDENTIFIER_ID) {
				typeName = p.current.Literal
				p.advance()
			}
			types = append(types, typeName)
			if !p.match(lexer.COMMA_DELIM) {
				break
			}
		}
	}
	p.consume(lexer.RIGHT_PAREN, "expect ')' after parameters")
	return names, types
}

func (p *Parser) parseFunction() ast.Statement {
	line := p.current.Line
	p.advance() // 'fn'
	name := p.consume(lexer.IDENTIFIER_ID, "expect function name").Literal
	paramNames, paramTypes := p.parseParamList()
	returnType := ""
	if p.check(lexer.IDENTIFIER_ID) {
		returnType = p.current.Literal
		p.advance()
	}
	body := p.parseBlock()
	return ast.NewFunction(line, name, paramNames, paramTypes, returnType, body)
}

func (p *Parser) parseReturn() ast.Statement {
	line := p.current.Line
	p.advance() // 'return'
	var value ast.Expression
	if !p.check(lexer.RIGHT_BRACE) && !p.check(lexer.EOF_TYPE) {
		value = p.parseExpression()
	}
	return ast.NewReturn(line, value)
}

func (p *Parser) parsePrintStatement() ast.Statement {
	line := p.current.Line
	p.advance() // 'print'
	p.consume(lexer.LEFT_PAREN, "expect '(' after 'print'")
	value := p.parseExpression()
	p.consume(lexer.RIGHT_PAREN, "expect ')' after print expression")
	return ast.NewPrint(line, value)
}

func (p *Parser) parseImport() ast.Statement {
	line := p.current.Line
	p.advance() // 'import'
	path := p.consume(lexer.IDENTIFIER_ID, "expect module name after 'import'").Literal
	return ast.NewImport(line, path)
}

func (p *Parser) parseBreak() ast.Statement {
	line := p.current.Line
	p.advance()
	return ast.NewBreak(line)
}

func (p *Parser) parseContinue() ast.Statement {
	line := p.current.Line
	p.advance()
	return ast.NewContinue(line)
}

func (p *Parser) parseRespond() ast.Statement {
	line := p.current.Line
	p.advance() // 'respond'
	value := p.parseExpression()
	return ast.NewRespond(line, value)
}

func (p *Parser) parseClass() ast.Statement {
	line := p.current.Line
	p.advance() // 'class'
	name := p.consume(lexer.IDENTIFIER_ID, "expect class name").Literal
	p.consume(lexer.LEFT_BRACE, "expect '{' after class name")
	var members []ast.ClassMember
	for !p.check(lexer.RIGHT_BRACE) && !p.check(lexer.EOF_TYPE) {
		if p.check(lexer.FN_KEY) {
			method := p.parseFunction().(*ast.Function)
			members = append(members, ast.ClassMember{Method: method})
			continue
		}
		fieldName := p.consume(lexer.IDENTIFIER_ID, "expect field name in class body").Literal
		fieldType := ""
		if p.check(lexer.IDENTIFIER_ID) {
			fieldType = p.current.Literal
			p.advance()
		}
		members = append(members, ast.ClassMember{FieldName: fieldName, FieldType: fieldType})
	}
	p.consume(lexer.RIGHT_BRACE, "expect '}' after class body")
	return ast.NewClass(line, name, members)
}

func (p *Parser) parseServer() ast.Statement {
	line := p.current.Line
	p.advance() // 'server'
	name := p.consume(lexer.IDENTIFIER_ID, "expect server name").Literal
	var port int64
	hasPort := false
	if p.match(lexer.ON_KEY) {
		tok := p.consume(lexer.INT_LIT, "expect port number after 'on'")
		port, _ = strconv.ParseInt(tok.Literal, 10, 64)
		hasPort = true
	}
	p.consume(lexer.LEFT_BRACE, "expect '{' after server header")
	var routes []*ast.Route
	for p.check(lexer.ROUTE_KEY) {
		routes = append(routes, p.parseRoute())
	}
	p.consume(lexer.RIGHT_BRACE, "expect '}' after server body")
	return ast.NewServer(line, name, port, hasPort, routes)
}

func (p *Parser) parseRoute() *ast.Route {
	line := p.current.Line
	p.advance() // 'route'
	method := p.consume(lexer.IDENTIFIER_ID, "expect HTTP method").Literal
	path := p.consume(lexer.STRING_LIT, "expect route path string").Literal
	paramName := ""
	if p.match(lexer.LEFT_BRACKET) {
		paramName = p.consume(lexer.IDENTIFIER_ID, "expect route parameter name").Literal
		p.consume(lexer.RIGHT_BRACKET, "expect ']' after route parameter")
	}
	body := p.parseBlock()
	return ast.NewRoute(line, method, path, paramName, body)
}

func (p *Parser) parseSecurity() ast.Statement {
	line := p.current.Line
	p.advance() // 'security'
	p.consume(lexer.LEFT_BRACE, "expect '{' after 'security'")
	var rules []*ast.SecurityRule
	for !p.check(lexer.RIGHT_BRACE) && !p.check(lexer.EOF_TYPE) {
		ruleLine := p.current.Line
		expr := p.parseExpression()
		rules = append(rules, ast.NewSecurityRule(ruleLine, expr))
	}
	p.consume(lexer.RIGHT_BRACE, "expect '}' after security body")
	return ast.NewSecurity(line, rules)
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	line := p.current.Line
	expr := p.parseExpression()
	return ast.NewExpressionStatement(line, expr)
}
