// Package parser implements the recursive-descent parser for the
// Prover9-style formula grammar of spec.md §4.B / §6, classifying terms as
// variables, constants, or functions as it descends and tracking the set
// of lexically-enclosing quantifier-bound names so shadowing resolves to
// the innermost binder.
package parser

import (
	"unicode"

	"github.com/logos-reasoner/logos/internal/errs"
	"github.com/logos-reasoner/logos/internal/fol/ast"
	"github.com/logos-reasoner/logos/internal/fol/lexer"
	"github.com/logos-reasoner/logos/internal/fol/token"
)

// Parser consumes a pre-lexed token slice and tracks the stack of
// currently-bound quantifier variables for term classification.
type Parser struct {
	src    string
	toks   []token.Token
	pos    int
	bound  map[string]int // name -> depth count (supports shadowing via re-push)
}

// Parse lexes and parses src into a single formula AST.
func Parse(src string) (ast.Node, error) {
	toks, err := lexer.All(src)
	if err != nil {
		return nil, attachContext(err, src)
	}
	p := &Parser{src: src, toks: toks, bound: map[string]int{}}
	n, err := p.formula()
	if err != nil {
		return nil, attachContext(err, src)
	}
	if p.at(token.DOT) {
		p.advance() // Prover9-style formula terminator, optional
	}
	if !p.at(token.EOF) {
		return nil, attachContext(p.errorf("trailing input after formula"), src)
	}
	return n, nil
}

func attachContext(err error, src string) error {
	e, ok := err.(*errs.Error)
	if !ok {
		return err
	}
	return e.WithContext(src)
}

func (p *Parser) cur() token.Token  { return p.toks[p.pos] }
func (p *Parser) at(k token.Kind) bool { return p.cur().Kind == k }

func (p *Parser) advance() token.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) expect(k token.Kind) (token.Token, error) {
	if !p.at(k) {
		return token.Token{}, p.errorf("expected %s, got %q", k, p.cur().Lexeme)
	}
	return p.advance(), nil
}

func (p *Parser) errorf(format string, args ...any) error {
	t := p.cur()
	line, col := lexer.LineCol(p.src, t.Offset)
	e := errs.New(errs.CodeParseError, format, args...).WithSpan(errs.Span{Start: t.Offset, End: t.Offset + len(t.Lexeme), Line: line, Col: col})
	return e.WithSuggestion(suggest(p, t))
}

// suggest returns a one-line fix suggestion from a fixed table, matching
// the most common authoring mistakes in this syntax.
func suggest(p *Parser, t token.Token) string {
	switch {
	case t.Kind == token.EOF:
		return "unbalanced parentheses: formula ended while a '(' was still open"
	case t.Kind == token.IDENT && (t.Lexeme == "All" || t.Lexeme == "Exists" || t.Lexeme == "ALL" || t.Lexeme == "EXISTS"):
		return "quantifier keywords are lowercase: use 'all' or 'exists'"
	case t.Kind == token.AND || t.Kind == token.OR || t.Kind == token.IMPLIES || t.Kind == token.IFF:
		return "a connective cannot trail the formula or follow another connective directly"
	case t.Kind == token.RP:
		return "empty argument list: did you mean to omit the parentheses for a 0-ary predicate?"
	case t.Kind == token.COMMA:
		return "two commas in a row: check for an extra ',' in the argument list"
	default:
		return ""
	}
}

// --- grammar ---
//
//	formula    ::= iff
//	iff        ::= impl ('<->' impl)*         (left-assoc)
//	impl       ::= disj ('->' impl)?          (right-assoc)
//	disj       ::= conj ('|' conj)*
//	conj       ::= unary ('&' unary)*
//	unary      ::= '-' unary | quant | atom
//	quant      ::= ('all'|'exists') IDENT unary
//	atom       ::= '(' formula ')' | predOrEq
//	predOrEq   ::= IDENT ('(' termList ')')? ('=' term)?
//	term       ::= IDENT ('(' termList ')')?

func (p *Parser) formula() (ast.Node, error) { return p.iff() }

func (p *Parser) iff() (ast.Node, error) {
	l, err := p.impl()
	if err != nil {
		return nil, err
	}
	for p.at(token.IFF) {
		p.advance()
		r, err := p.impl()
		if err != nil {
			return nil, err
		}
		l = &ast.Iff{L: l, R: r}
	}
	return l, nil
}

func (p *Parser) impl() (ast.Node, error) {
	l, err := p.disj()
	if err != nil {
		return nil, err
	}
	if p.at(token.IMPLIES) {
		p.advance()
		r, err := p.impl() // right-associative
		if err != nil {
			return nil, err
		}
		return &ast.Implies{L: l, R: r}, nil
	}
	return l, nil
}

func (p *Parser) disj() (ast.Node, error) {
	l, err := p.conj()
	if err != nil {
		return nil, err
	}
	for p.at(token.OR) {
		p.advance()
		r, err := p.conj()
		if err != nil {
			return nil, err
		}
		l = &ast.Or{L: l, R: r}
	}
	return l, nil
}

func (p *Parser) conj() (ast.Node, error) {
	l, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.at(token.AND) {
		p.advance()
		r, err := p.unary()
		if err != nil {
			return nil, err
		}
		l = &ast.And{L: l, R: r}
	}
	return l, nil
}

func (p *Parser) unary() (ast.Node, error) {
	switch {
	case p.at(token.NOT):
		p.advance()
		e, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &ast.Not{E: e}, nil
	case p.at(token.QUANT):
		return p.quant()
	default:
		return p.atom()
	}
}

func (p *Parser) quant() (ast.Node, error) {
	kw := p.advance() // all|exists
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	name := nameTok.Lexeme
	p.pushBound(name)
	body, err := p.unary()
	p.popBound(name)
	if err != nil {
		return nil, err
	}
	if kw.Lexeme == "all" {
		return &ast.Forall{Var: name, Body: body}, nil
	}
	return &ast.Exists{Var: name, Body: body}, nil
}

func (p *Parser) atom() (ast.Node, error) {
	if p.at(token.LP) {
		p.advance()
		n, err := p.formula()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RP); err != nil {
			return nil, err
		}
		return n, nil
	}
	return p.predOrEq()
}

func (p *Parser) predOrEq() (ast.Node, error) {
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	name := nameTok.Lexeme

	var args []ast.Node
	hasArgs := false
	if p.at(token.LP) {
		hasArgs = true
		p.advance()
		args, err = p.termList()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RP); err != nil {
			return nil, err
		}
	}

	if p.at(token.EQ) {
		p.advance()
		lhs := p.classify(name, args, hasArgs)
		rhs, err := p.term()
		if err != nil {
			return nil, err
		}
		return &ast.Equals{L: lhs, R: rhs}, nil
	}

	// Not an equality: this is a predicate application (0-arity = proposition).
	return &ast.Predicate{Name: name, Args: args}, nil
}

func (p *Parser) term() (ast.Node, error) {
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	name := nameTok.Lexeme
	var args []ast.Node
	hasArgs := false
	if p.at(token.LP) {
		hasArgs = true
		p.advance()
		args, err = p.termList()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RP); err != nil {
			return nil, err
		}
	}
	return p.classify(name, args, hasArgs), nil
}

func (p *Parser) termList() ([]ast.Node, error) {
	if p.at(token.RP) {
		return nil, p.errorf("empty argument list")
	}
	var out []ast.Node
	for {
		t, err := p.term()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
		if p.at(token.COMMA) {
			p.advance()
			if p.at(token.RP) {
				return nil, p.errorf("trailing comma in argument list")
			}
			continue
		}
		break
	}
	return out, nil
}

// classify implements spec.md §4.B's term classification table.
func (p *Parser) classify(name string, args []ast.Node, hasArgs bool) ast.Node {
	if p.bound[name] > 0 {
		return &ast.Variable{Name: name}
	}
	if isSingleLowercase(name) {
		return &ast.Variable{Name: name}
	}
	if isLowercase(name) {
		if hasArgs {
			return &ast.Function{Name: name, Args: args}
		}
		return &ast.Constant{Name: name}
	}
	// uppercase or mixed-case: always a constant, per spec.md §4.B rule 4.
	_ = hasArgs
	return &ast.Constant{Name: name}
}

func isSingleLowercase(s string) bool {
	if len(s) != 1 {
		return false
	}
	r := rune(s[0])
	return r >= 'a' && r <= 'z'
}

func isLowercase(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

func (p *Parser) pushBound(name string)  { p.bound[name]++ }
func (p *Parser) popBound(name string) {
	if p.bound[name] > 0 {
		p.bound[name]--
	}
}

// Diagnose re-parses every formula in formulas and returns per-formula
// errors/warnings/suggestions for the check-well-formed tool surface
// (spec.md §6). A formula that parses cleanly has an empty Errors slice.
type Diagnostic struct {
	Errors      []string
	Warnings    []string
	Suggestions []string
}

func Diagnose(formulas []string) []Diagnostic {
	out := make([]Diagnostic, len(formulas))
	for i, f := range formulas {
		_, err := Parse(f)
		if err == nil {
			continue
		}
		e, ok := err.(*errs.Error)
		if !ok {
			out[i] = Diagnostic{Errors: []string{err.Error()}}
			continue
		}
		d := Diagnostic{Errors: []string{e.Message}}
		if e.Suggestion != "" {
			d.Suggestions = []string{e.Suggestion}
		}
		out[i] = d
	}
	return out
}
