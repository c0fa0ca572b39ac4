// Package syntax implements the regex abstract syntax tree and the
// recursive-descent parser that produces it.
//
// The grammar is deliberately small: literal symbols, alternation,
// Kleene star, implicit concatenation and parenthesized grouping.
// Every literal occurrence carries a position, a 1-based integer unique
// within one parsed tree, assigned left to right. Positions are what the
// automata packages compute over; the symbol itself is almost incidental.
package syntax

import "strings"

// Op identifies the kind of a Node.
type Op int

const (
	// OpEmpty matches the empty string and nothing else.
	OpEmpty Op = iota
	// OpLiteral matches exactly one occurrence of Sym.
	OpLiteral
	// OpConcat matches Left followed by Right.
	OpConcat
	// OpUnion matches Left or Right.
	OpUnion
	// OpStar matches zero or more repetitions of Left.
	OpStar
)

// Node is a node in the regex syntax tree. The variant set is closed:
// all functions over trees switch exhaustively on Op.
type Node struct {
	Op    Op
	Sym   rune  // OpLiteral only
	Pos   int   // OpLiteral only, 1-based occurrence index
	Left  *Node // OpConcat, OpUnion, OpStar
	Right *Node // OpConcat, OpUnion
}

// Empty returns the node matching only the empty string.
func Empty() *Node { return &Node{Op: OpEmpty} }

// Literal returns a literal node for sym at position pos.
func Literal(sym rune, pos int) *Node {
	return &Node{Op: OpLiteral, Sym: sym, Pos: pos}
}

// Concat returns the concatenation of left and right.
func Concat(left, right *Node) *Node {
	return &Node{Op: OpConcat, Left: left, Right: right}
}

// Union returns the alternation of left and right.
func Union(left, right *Node) *Node {
	return &Node{Op: OpUnion, Left: left, Right: right}
}

// Star returns the Kleene closure of inner.
func Star(inner *Node) *Node {
	return &Node{Op: OpStar, Left: inner}
}

// Equal reports whether two trees are structurally identical,
// including literal symbols and assigned positions.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	if n.Op != o.Op {
		return false
	}
	switch n.Op {
	case OpEmpty:
		return true
	case OpLiteral:
		return n.Sym == o.Sym && n.Pos == o.Pos
	case OpStar:
		return n.Left.Equal(o.Left)
	default: // OpConcat, OpUnion
		return n.Left.Equal(o.Left) && n.Right.Equal(o.Right)
	}
}

// precedence of a node when rendered back to pattern text.
// Union binds loosest, then concatenation, then star.
func (n *Node) precedence() int {
	switch n.Op {
	case OpUnion:
		return 1
	case OpConcat:
		return 2
	default:
		return 3
	}
}

// String renders the tree back to pattern text, parenthesizing only
// where precedence requires it.
func (n *Node) String() string {
	var b strings.Builder
	n.render(&b)
	return b.String()
}

func (n *Node) render(b *strings.Builder) {
	wrap := func(child *Node, prec int) {
		if child.precedence() < prec {
			b.WriteByte('(')
			child.render(b)
			b.WriteByte(')')
			return
		}
		child.render(b)
	}

	switch n.Op {
	case OpEmpty:
		b.WriteRune(EmptyMarker)
	case OpLiteral:
		b.WriteRune(n.Sym)
	case OpConcat:
		wrap(n.Left, 2)
		wrap(n.Right, 2)
	case OpUnion:
		wrap(n.Left, 1)
		b.WriteByte('|')
		wrap(n.Right, 1)
	case OpStar:
		wrap(n.Left, 3)
		b.WriteByte('*')
	}
}

// Mark renumbers the literal positions of the tree in place, assigning
// 1..count in left-to-right traversal order, and returns count. Parsing
// already numbers literals the same way; Mark exists so trees assembled
// by hand, or trees whose numbering is no longer trusted, can be brought
// back to the canonical assignment. Marking the same tree twice is a
// no-op: the traversal order is fixed, so the assignment is too.
func Mark(root *Node) int {
	count := 0
	var walk func(*Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		if n.Op == OpLiteral {
			count++
			n.Pos = count
			return
		}
		walk(n.Left)
		walk(n.Right)
	}
	walk(root)
	return count
}
