package syntax

import "fmt"

// EmptyMarker is the pattern notation for the empty-string atom.
const EmptyMarker = 'ε'

// SyntaxError describes why a pattern failed to parse. Index is the
// rune offset at which the parser gave up.
type SyntaxError struct {
	Index    int
	Expected string
	Found    string
	Msg      string // overrides the expected/found form when set
}

func (e *SyntaxError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%s at index: %d", e.Msg, e.Index)
	}
	return fmt.Sprintf("expected: %s at index: %d, found: %s", e.Expected, e.Index, e.Found)
}

// parser is a recursive-descent parser with one rune of lookahead.
// It implements the grammar
//
//	<union>  ::= <concat> | <concat> "|" <union>
//	<concat> ::= <star>   | <star> <concat>
//	<star>   ::= <atom>   | <atom> "*"
//	<atom>   ::= <symbol> | "ε" | "(" <union> ")"
//
// Star binds tighter than concatenation, concatenation tighter than
// union. Literal positions are assigned during the parse, so the
// left-to-right rune order of the pattern is the position order.
type parser struct {
	tokens  []rune
	pos     int
	symbols int    // positions handed out so far
	parens  int    // open-paren depth, for the stray ')' check
}

// Parse converts a pattern into a syntax tree. The returned error is
// always a *SyntaxError; no partial tree is returned on failure.
func Parse(pattern string) (*Node, error) {
	p := &parser{tokens: []rune(pattern)}
	n, err := p.parseUnion()
	if err != nil {
		return nil, err
	}
	if r, ok := p.peek(); ok {
		return nil, &SyntaxError{Index: p.pos, Expected: "end of input", Found: quote(r)}
	}
	return n, nil
}

// peek returns the current rune without consuming it.
func (p *parser) peek() (rune, bool) {
	if p.pos >= len(p.tokens) {
		return 0, false
	}
	return p.tokens[p.pos], true
}

func (p *parser) advance() { p.pos++ }

// nextPos hands out the next literal position.
func (p *parser) nextPos() int {
	p.symbols++
	return p.symbols
}

func quote(r rune) string { return "'" + string(r) + "'" }

func (p *parser) parseAtom() (*Node, error) {
	r, ok := p.peek()
	if !ok {
		return nil, &SyntaxError{Index: p.pos, Expected: "symbol", Found: "end of input"}
	}
	p.advance()

	switch r {
	case '(':
		p.parens++
		inner, err := p.parseUnion()
		if err != nil {
			return nil, err
		}
		if c, ok := p.peek(); !ok {
			return nil, &SyntaxError{Index: p.pos, Expected: "')'", Found: "end of input"}
		} else if c != ')' {
			return nil, &SyntaxError{Index: p.pos, Expected: "')'", Found: quote(c)}
		}
		p.parens--
		p.advance()
		return inner, nil

	case ')', '|', '*':
		// Index is the cursor position after the offending token.
		return nil, &SyntaxError{Index: p.pos, Expected: "symbol", Found: quote(r)}

	case EmptyMarker:
		return Empty(), nil
	}

	return Literal(r, p.nextPos()), nil
}

func (p *parser) parseStar() (*Node, error) {
	atom, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if r, ok := p.peek(); ok && r == '*' {
		p.advance()
		return Star(atom), nil
	}
	return atom, nil
}

func (p *parser) parseConcat() (*Node, error) {
	star, err := p.parseStar()
	if err != nil {
		return nil, err
	}
	// Anything but '|', ')' or end of input starts the next factor.
	if r, ok := p.peek(); ok && r != '|' && r != ')' {
		rest, err := p.parseConcat()
		if err != nil {
			return nil, err
		}
		return Concat(star, rest), nil
	}
	return star, nil
}

func (p *parser) parseUnion() (*Node, error) {
	concat, err := p.parseConcat()
	if err != nil {
		return nil, err
	}
	if r, ok := p.peek(); ok && r == ')' && p.parens == 0 {
		return nil, &SyntaxError{Index: p.pos, Msg: "unexpected close paren"}
	}
	if r, ok := p.peek(); ok && r == '|' {
		p.advance()
		rest, err := p.parseUnion()
		if err != nil {
			return nil, err
		}
		return Union(concat, rest), nil
	}
	return concat, nil
}
