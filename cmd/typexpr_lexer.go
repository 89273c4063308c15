package cmd

import (
	"fmt"
	"unicode"

	"github.com/antlr4-go/antlr/v4"
	"github.com/pkg/errors"
)

// token types, in the order of the TypeExpr.g4 vocabulary
const (
	tokAnd = iota + 1
	tokOr
	tokLParen
	tokRParen
	tokLBrace
	tokRBrace
	tokComma
	tokColon
	tokPipe
	tokBang
	tokGe
	tokLe
	tokEq
	tokNe
	tokIdent
	tokInt
	tokString
)

var literalNames = map[int]string{
	tokAnd:    "and",
	tokOr:     "or",
	tokLParen: "(",
	tokRParen: ")",
	tokLBrace: "{",
	tokRBrace: "}",
	tokComma:  ",",
	tokColon:  ":",
	tokPipe:   "|",
	tokBang:   "!",
	tokGe:     ">=",
	tokLe:     "<=",
	tokEq:     "==",
	tokNe:     "!=",
}

var punctuation = map[rune]int{
	'(': tokLParen,
	')': tokRParen,
	'{': tokLBrace,
	'}': tokRBrace,
	',': tokComma,
	':': tokColon,
	'|': tokPipe,
	'!': tokBang,
}

var comparisons = map[string]int{
	">=": tokGe,
	"<=": tokLe,
	"==": tokEq,
	"!=": tokNe,
}

// typeLexer is a token source for TypeExpr.g4 that feeds an antlr.CommonTokenStream.
// Characters it cannot match are reported to the error listeners, after which it only emits EOF.
type typeLexer struct {
	*antlr.BaseLexer
	line, column int
	failed       bool
}

func newTypeLexer(input antlr.CharStream) *typeLexer {
	return &typeLexer{BaseLexer: antlr.NewBaseLexer(input), line: 1}
}

func (l *typeLexer) GetLine() int {
	return l.line
}

func (l *typeLexer) GetCharPositionInLine() int {
	return l.column
}

func (l *typeLexer) la(offset int) rune {
	return rune(l.GetInputStream().LA(offset))
}

func (l *typeLexer) consume() {
	if l.la(1) == '\n' {
		l.line++
		l.column = 0
	} else {
		l.column++
	}
	l.GetInputStream().Consume()
}

func (l *typeLexer) NextToken() antlr.Token {
	input := l.GetInputStream()
	for !l.failed && l.la(1) != antlr.TokenEOF && unicode.IsSpace(l.la(1)) {
		l.consume()
	}
	start, line, column := input.Index(), l.line, l.column
	emit := func(ttype int) antlr.Token {
		return l.GetTokenFactory().Create(l.GetTokenSourceCharStreamPair(), ttype, "", antlr.TokenDefaultChannel, start, input.Index()-1, line, column)
	}
	if l.failed || l.la(1) == antlr.TokenEOF {
		return emit(antlr.TokenEOF)
	}

	c := l.la(1)
	switch {
	case unicode.IsLetter(c) || c == '_':
		for c := l.la(1); c != antlr.TokenEOF && (unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_'); c = l.la(1) {
			l.consume()
		}
		if l.la(1) == '!' && l.la(2) != '=' {
			l.consume()
		}
		switch input.GetText(start, input.Index()-1) {
		case "and":
			return emit(tokAnd)
		case "or":
			return emit(tokOr)
		}
		return emit(tokIdent)
	case unicode.IsDigit(c) || c == '-' && unicode.IsDigit(l.la(2)):
		l.consume()
		for unicode.IsDigit(l.la(1)) {
			l.consume()
		}
		return emit(tokInt)
	case c == '"':
		l.consume()
		for l.la(1) != '"' {
			if l.la(1) == antlr.TokenEOF {
				return l.fail(line, column, "unterminated string")
			}
			l.consume()
		}
		l.consume()
		return emit(tokString)
	}
	if ttype, ok := comparisons[string([]rune{c, l.la(2)})]; ok {
		l.consume()
		l.consume()
		return emit(ttype)
	}
	if ttype, ok := punctuation[c]; ok {
		l.consume()
		return emit(ttype)
	}
	return l.fail(line, column, fmt.Sprintf("unexpected character %q", c))
}

func (l *typeLexer) fail(line, column int, msg string) antlr.Token {
	l.GetErrorListenerDispatch().SyntaxError(l, nil, line, column, msg, nil)
	l.failed = true
	return l.NextToken()
}

// syntaxErrors collects what the lexer reports, in the order it was reported
type syntaxErrors struct {
	*antlr.DefaultErrorListener
	errs []error
}

func (s *syntaxErrors) SyntaxError(_ antlr.Recognizer, _ interface{}, line, column int, msg string, _ antlr.RecognitionException) {
	if line > 1 {
		s.errs = append(s.errs, errors.Errorf("%s at %d:%d", msg, line, column))
		return
	}
	s.errs = append(s.errs, errors.Errorf("%s at %d", msg, column))
}
