// Package lexer turns Prover9-style formula text into a stream of tokens,
// preserving byte offsets so the parser and downstream diagnostics can
// report precise spans. Single-pass, no backtracking.
package lexer

import (
	"unicode"
	"unicode/utf8"

	"github.com/logos-reasoner/logos/internal/errs"
	"github.com/logos-reasoner/logos/internal/fol/token"
)

// Lexer scans one input string into tokens on demand.
type Lexer struct {
	src    string
	offset int
}

// New returns a Lexer positioned at the start of src.
func New(src string) *Lexer {
	return &Lexer{src: src}
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentCont(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Next returns the next token, or a *errs.Error with code ParseError on an
// unrecognized character.
func (l *Lexer) Next() (token.Token, error) {
	l.skipWhitespace()
	if l.offset >= len(l.src) {
		return token.Token{Kind: token.EOF, Offset: l.offset}, nil
	}

	start := l.offset
	r, size := utf8.DecodeRuneInString(l.src[l.offset:])

	switch r {
	case '(':
		l.offset += size
		return token.Token{Kind: token.LP, Lexeme: "(", Offset: start}, nil
	case ')':
		l.offset += size
		return token.Token{Kind: token.RP, Lexeme: ")", Offset: start}, nil
	case ',':
		l.offset += size
		return token.Token{Kind: token.COMMA, Lexeme: ",", Offset: start}, nil
	case '.':
		l.offset += size
		return token.Token{Kind: token.DOT, Lexeme: ".", Offset: start}, nil
	case '&':
		l.offset += size
		return token.Token{Kind: token.AND, Lexeme: "&", Offset: start}, nil
	case '|':
		l.offset += size
		return token.Token{Kind: token.OR, Lexeme: "|", Offset: start}, nil
	case '=':
		l.offset += size
		return token.Token{Kind: token.EQ, Lexeme: "=", Offset: start}, nil
	case '-':
		// greedily match "->" before falling back to unary NOT
		if l.peekAt(size) == '>' {
			l.offset += size + 1
			return token.Token{Kind: token.IMPLIES, Lexeme: "->", Offset: start}, nil
		}
		l.offset += size
		return token.Token{Kind: token.NOT, Lexeme: "-", Offset: start}, nil
	case '<':
		if l.peekAt(size) == '-' && l.peekAt(size+1) == '>' {
			l.offset += size + 2
			return token.Token{Kind: token.IFF, Lexeme: "<->", Offset: start}, nil
		}
		return token.Token{}, errs.New(errs.CodeParseError, "unexpected character '<'").WithSpan(errs.Span{Start: start, End: start + size})
	}

	if isIdentStart(r) {
		return l.scanIdent(start), nil
	}

	return token.Token{}, errs.New(errs.CodeParseError, "unexpected character %q", r).WithSpan(errs.Span{Start: start, End: start + size})
}

func (l *Lexer) scanIdent(start int) token.Token {
	for l.offset < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.offset:])
		if !isIdentCont(r) {
			break
		}
		l.offset += size
	}
	lexeme := l.src[start:l.offset]
	kind := token.IDENT
	if lexeme == "all" || lexeme == "exists" {
		kind = token.QUANT
	}
	return token.Token{Kind: kind, Lexeme: lexeme, Offset: start}
}

func (l *Lexer) skipWhitespace() {
	for l.offset < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.offset:])
		if !unicode.IsSpace(r) {
			return
		}
		l.offset += size
	}
}

// peekAt returns the byte at l.offset+n without consuming it, or 0 past EOF.
func (l *Lexer) peekAt(n int) byte {
	idx := l.offset + n
	if idx >= len(l.src) {
		return 0
	}
	return l.src[idx]
}

// LineCol converts a byte offset into 1-based line/column for diagnostics.
func LineCol(src string, offset int) (line, col int) {
	line, col = 1, 1
	for i, r := range src {
		if i >= offset {
			break
		}
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

// All lexes the entire input into a token slice terminated by an EOF token.
func All(src string) ([]token.Token, error) {
	l := New(src)
	var toks []token.Token
	for {
		t, err := l.Next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, t)
		if t.Kind == token.EOF {
			break
		}
	}
	return toks, nil
}
