package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNextTokenOperators(t *testing.T) {
	lex := NewLexer("+ - -> * / % . .. = == ! != < <= > >= && ||")
	want := []TokenType{
		PLUS_OP, MINUS_OP, ARROW_OP, MUL_OP, DIV_OP, MOD_OP, DOT_OP, RANGE_OP,
		ASSIGN_OP, EQ_OP, NOT_OP, NE_OP, LT_OP, LE_OP, GT_OP, GE_OP, AND_OP, OR_OP,
	}
	for _, w := range want {
		tok := lex.NextToken()
		require.Equal(t, w, tok.Type)
	}
	require.Equal(t, EOF_TYPE, lex.NextToken().Type)
}

func TestNextTokenKeywordsVsIdentifiers(t *testing.T) {
	lex := NewLexer("let fn return if else for while in class self true false nil print import server route respond on security async await break continue not and or foobar")
	for kw, kind := range KEYWORDS_MAP {
		_ = kw
		_ = kind
	}
	order := []struct {
		lit  string
		kind TokenType
	}{
		{"let", LET_KEY}, {"fn", FN_KEY}, {"return", RETURN_KEY}, {"if", IF_KEY},
		{"else", ELSE_KEY}, {"for", FOR_KEY}, {"while", WHILE_KEY}, {"in", IN_KEY},
		{"class", CLASS_KEY}, {"self", SELF_KEY}, {"true", TRUE_KEY}, {"false", FALSE_KEY},
		{"nil", NIL_KEY}, {"print", PRINT_KEY}, {"import", IMPORT_KEY}, {"server", SERVER_KEY},
		{"route", ROUTE_KEY}, {"respond", RESPOND_KEY}, {"on", ON_KEY}, {"security", SECURITY_KEY},
		{"async", ASYNC_KEY}, {"await", AWAIT_KEY}, {"break", BREAK_KEY}, {"continue", CONTINUE_KEY},
		{"not", NOT_KEY}, {"and", AND_KEY}, {"or", OR_KEY}, {"foobar", IDENTIFIER_ID},
	}
	for _, tc := range order {
		tok := lex.NextToken()
		require.Equal(t, tc.kind, tok.Type)
		require.Equal(t, tc.lit, tok.Literal)
	}
}

func TestNextTokenNumbers(t *testing.T) {
	lex := NewLexer("42 3.14 0..5")
	tok := lex.NextToken()
	require.Equal(t, INT_LIT, tok.Type)
	require.Equal(t, "42", tok.Literal)

	tok = lex.NextToken()
	require.Equal(t, FLOAT_LIT, tok.Type)
	require.Equal(t, "3.14", tok.Literal)

	// "0..5" must not be consumed as a decimal point: 0, .., 5
	tok = lex.NextToken()
	require.Equal(t, INT_LIT, tok.Type)
	require.Equal(t, "0", tok.Literal)
	tok = lex.NextToken()
	require.Equal(t, RANGE_OP, tok.Type)
	tok = lex.NextToken()
	require.Equal(t, INT_LIT, tok.Type)
	require.Equal(t, "5", tok.Literal)
}

func TestNextTokenCompoundAssignment(t *testing.T) {
	lex := NewLexer("+= -= *= /= %=")
	want := []TokenType{PLUS_ASSIGN_OP, MINUS_ASSIGN_OP, MUL_ASSIGN_OP, DIV_ASSIGN_OP, MOD_ASSIGN_OP}
	for _, w := range want {
		tok := lex.NextToken()
		require.Equal(t, w, tok.Type)
	}
}

func TestNextTokenStrings(t *testing.T) {
	lex := NewLexer(`"hello " "with \"escape\""`)
	tok := lex.NextToken()
	require.Equal(t, STRING_LIT, tok.Type)
	require.Equal(t, "hello ", tok.Literal)

	tok = lex.NextToken()
	require.Equal(t, STRING_LIT, tok.Type)
	require.Equal(t, `with \"escape\"`, tok.Literal)
}

func TestNextTokenUnterminatedString(t *testing.T) {
	lex := NewLexer(`"never closed`)
	tok := lex.NextToken()
	require.Equal(t, ERROR_TYPE, tok.Type)
	require.Equal(t, "Unterminated string", tok.Literal)
}

func TestNextTokenLineTracking(t *testing.T) {
	lex := NewLexer("let x\n= 1\n\nlet y = 2")
	var lastLine int
	for {
		tok := lex.NextToken()
		if tok.Type == EOF_TYPE {
			break
		}
		lastLine = tok.Line
	}
	require.Equal(t, 4, lastLine)
}

func TestNextTokenStrayBitwiseOperator(t *testing.T) {
	lex := NewLexer("& |")
	tok := lex.NextToken()
	require.Equal(t, ERROR_TYPE, tok.Type)
	tok = lex.NextToken()
	require.Equal(t, ERROR_TYPE, tok.Type)
}

func TestNextTokenBOMStripped(t *testing.T) {
	lex := NewLexer("\xEF\xBB\xBFlet x")
	tok := lex.NextToken()
	require.Equal(t, LET_KEY, tok.Type)
	require.Equal(t, 1, tok.Line)
}

func TestConsumeTokensExcludesEOF(t *testing.T) {
	lex := NewLexer("1 + 2")
	toks := lex.ConsumeTokens()
	require.Len(t, toks, 3)
}
