package syntax

import "sort"

// PosSet is a set of literal positions. Position 0 is reserved: it is
// the start state of the automata built from these tables, and its
// membership in Last0 encodes "the whole expression is nullable".
type PosSet map[int]struct{}

// NewPosSet returns a set holding the given positions.
func NewPosSet(positions ...int) PosSet {
	s := make(PosSet, len(positions))
	for _, p := range positions {
		s.Add(p)
	}
	return s
}

// Add inserts p into the set.
func (s PosSet) Add(p int) { s[p] = struct{}{} }

// Has reports whether p is in the set.
func (s PosSet) Has(p int) bool {
	_, ok := s[p]
	return ok
}

// Union inserts every position of o into s.
func (s PosSet) Union(o PosSet) {
	for p := range o {
		s[p] = struct{}{}
	}
}

// Len returns the number of positions in the set.
func (s PosSet) Len() int { return len(s) }

// Sorted returns the positions in ascending order.
func (s PosSet) Sorted() []int {
	out := make([]int, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Ints(out)
	return out
}

// Equal reports whether s and o hold the same positions.
func (s PosSet) Equal(o PosSet) bool {
	if len(s) != len(o) {
		return false
	}
	for p := range s {
		if !o.Has(p) {
			return false
		}
	}
	return true
}

// Nullable reports whether the subtree matches the empty string.
func (n *Node) Nullable() bool {
	switch n.Op {
	case OpEmpty:
		return true
	case OpLiteral:
		return false
	case OpConcat:
		return n.Left.Nullable() && n.Right.Nullable()
	case OpUnion:
		return n.Left.Nullable() || n.Right.Nullable()
	default: // OpStar
		return true
	}
}

// First returns the positions that can begin a match of the subtree.
func (n *Node) First() PosSet {
	s := NewPosSet()
	n.first(s)
	return s
}

func (n *Node) first(into PosSet) {
	switch n.Op {
	case OpEmpty:
	case OpLiteral:
		into.Add(n.Pos)
	case OpConcat:
		n.Left.first(into)
		if n.Left.Nullable() {
			n.Right.first(into)
		}
	case OpUnion:
		n.Left.first(into)
		n.Right.first(into)
	default: // OpStar
		n.Left.first(into)
	}
}

// Last returns the positions that can end a match of the subtree.
func (n *Node) Last() PosSet {
	s := NewPosSet()
	n.last(s)
	return s
}

func (n *Node) last(into PosSet) {
	switch n.Op {
	case OpEmpty:
	case OpLiteral:
		into.Add(n.Pos)
	case OpConcat:
		n.Right.last(into)
		if n.Right.Nullable() {
			n.Left.last(into)
		}
	case OpUnion:
		n.Left.last(into)
		n.Right.last(into)
	default: // OpStar
		n.Left.last(into)
	}
}

// Last0 returns Last plus position 0 when the subtree is nullable.
// At the root this is exactly the accepting-state set of the position
// automaton: 0 accepting means the empty input is accepted.
func (n *Node) Last0() PosSet {
	s := n.Last()
	if n.Nullable() {
		s.Add(0)
	}
	return s
}

// Follow returns, for each position in the subtree, the set of
// positions that may immediately follow it in some derivation.
// Positions with no successors are absent from the map.
func (n *Node) Follow() map[int]PosSet {
	follow := make(map[int]PosSet)
	n.followInto(follow)
	return follow
}

func (n *Node) followInto(follow map[int]PosSet) {
	link := func(from, to PosSet) {
		for p := range from {
			dst, ok := follow[p]
			if !ok {
				dst = NewPosSet()
				follow[p] = dst
			}
			dst.Union(to)
		}
	}

	switch n.Op {
	case OpEmpty, OpLiteral:
	case OpConcat:
		n.Left.followInto(follow)
		n.Right.followInto(follow)
		link(n.Left.Last(), n.Right.First())
	case OpUnion:
		n.Left.followInto(follow)
		n.Right.followInto(follow)
	default: // OpStar
		n.Left.followInto(follow)
		link(n.Left.Last(), n.Left.First())
	}
}

// Positions returns the position→symbol map of the subtree.
func (n *Node) Positions() map[int]rune {
	pos := make(map[int]rune)
	var walk func(*Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		if n.Op == OpLiteral {
			pos[n.Pos] = n.Sym
			return
		}
		walk(n.Left)
		walk(n.Right)
	}
	walk(n)
	return pos
}

// Tables bundles everything the automata constructions need, computed
// once from a parsed tree. A Tables value is never mutated after
// Analyze returns.
type Tables struct {
	Pos      map[int]rune   // position → symbol
	First    PosSet         // first positions of the root
	Last0    PosSet         // accepting positions, 0 included iff nullable
	Follow   map[int]PosSet // position → possible successors
	Size     int            // number of literal positions
	Nullable bool
}

// Analyze computes the position tables of a parsed tree.
func Analyze(root *Node) *Tables {
	pos := root.Positions()
	return &Tables{
		Pos:      pos,
		First:    root.First(),
		Last0:    root.Last0(),
		Follow:   root.Follow(),
		Size:     len(pos),
		Nullable: root.Nullable(),
	}
}

// FollowOf returns the successor set of a position. For position 0 the
// successors are the first positions of the whole expression, which is
// what makes 0 usable as the start state.
func (t *Tables) FollowOf(p int) PosSet {
	if p == 0 {
		return t.First
	}
	if s, ok := t.Follow[p]; ok {
		return s
	}
	return nil
}

// Alphabet returns the distinct literal symbols in ascending order.
func (t *Tables) Alphabet() []rune {
	seen := make(map[rune]struct{}, len(t.Pos))
	out := make([]rune, 0, len(t.Pos))
	for _, r := range t.Pos {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
