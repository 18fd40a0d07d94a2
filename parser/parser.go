/*
File    : gomixvm/parser/parser.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package parser implements a recursive-descent parser with a Pratt-style
// precedence cascade over the lexer's token stream, producing an ast.Program.
// On any error the parser resyncs to the next statement boundary (panic
// mode) so later, independent errors can still be reported; every
// accumulated diagnostic is returned together via go-multierror.
package parser

import (
	"fmt"

	"github.com/akashmaji946/gomixvm/ast"
	"github.com/akashmaji946/gomixvm/lexer"
	"github.com/hashicorp/go-multierror"
)

// Parser holds the lexer reference, the current and previously consumed
// tokens, and the panic-mode bookkeeping used for error recovery.
type Parser struct {
	lex       *lexer.Lexer
	fileName  string
	current   lexer.Token
	previous  lexer.Token
	hadError  bool
	panicMode bool
	errs      *multierror.Error
}

// New returns a Parser over lex, ready to produce its first token. fileName
// is used only for diagnostic prefixes.
func New(lex *lexer.Lexer, fileName string) *Parser {
	p := &Parser{lex: lex, fileName: fileName}
	p.advance()
	return p
}

// Parse consumes the entire token stream and returns the program tree. If
// any statement failed to parse, the tree is not returned (nil) and the
// accumulated diagnostics are returned as a single error — per spec §4.2,
// "the parser ... returns the program tree on success or a null tree if
// any error occurred".
func (p *Parser) Parse() (*ast.Program, error) {
	line := p.current.Line
	var statements []ast.Statement
	for p.current.Type != lexer.EOF_TYPE {
		stmt := p.parseDeclaration()
		if stmt != nil {
			statements = append(statements, stmt)
		}
	}
	if p.hadError {
		return nil, p.errs.ErrorOrNil()
	}
	return ast.NewProgram(line, statements), nil
}

// advance moves the token window forward by one, skipping (and reporting)
// any ERROR tokens the lexer produced along the way.
func (p *Parser) advance() {
	p.previous = p.current
	for {
		p.current = p.lex.NextToken()
		if p.current.Type != lexer.ERROR_TYPE {
			break
		}
		p.errorAtCurrent(p.current.Literal)
	}
}

func (p *Parser) check(t lexer.TokenType) bool { return p.current.Type == t }

func (p *Parser) match(t lexer.TokenType) bool {
	if !p.check(t) {
		return false
	}
	p.advance()
	return true
}

// consume advances past an expected token kind or reports a parse error at
// the current token.
func (p *Parser) consume(t lexer.TokenType, message string) lexer.Token {
	if p.check(t) {
		tok := p.current
		p.advance()
		return tok
	}
	p.errorAtCurrent(message)
	return p.current
}

func (p *Parser) errorAtCurrent(message string) { p.errorAt(p.current, message) }

// errorAt reports one diagnostic and enters panic mode. Per spec §4.2, only
// one diagnostic is emitted per panic window — further calls while already
// in panic mode are suppressed.
func (p *Parser) errorAt(tok lexer.Token, message string) {
	if p.panicMode {
		return
	}
	p.panicMode = true
	p.hadError = true

	where := "at end"
	if tok.Type != lexer.EOF_TYPE {
		where = fmt.Sprintf("at '%s'", tok.Literal)
	}
	if tok.Type == lexer.ERROR_TYPE {
		where = ""
	}
	var diag string
	if where == "" {
		diag = fmt.Sprintf("%s:%d: %s", p.fileName, tok.Line, message)
	} else {
		diag = fmt.Sprintf("%s:%d: %s: %s", p.fileName, tok.Line, message, where)
	}
	p.errs = multierror.Append(p.errs, fmt.Errorf("%s", diag))
}

// synchronize skips tokens until a likely statement boundary or EOF, then
// clears panic mode so later errors can be reported again.
func (p *Parser) synchronize() {
	p.panicMode = false
	for p.current.Type != lexer.EOF_TYPE {
		if p.previous.Type == lexer.SEMICOLON_DELIM {
			return
		}
		switch p.current.Type {
		case lexer.LET_KEY, lexer.FN_KEY, lexer.IF_KEY, lexer.WHILE_KEY,
			lexer.FOR_KEY, lexer.RETURN_KEY, lexer.IMPORT_KEY, lexer.CLASS_KEY,
			lexer.SERVER_KEY, lexer.PRINT_KEY, lexer.RESPOND_KEY:
			return
		}
		p.advance()
	}
}
