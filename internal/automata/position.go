package automata

import "github.com/fsmkit/glushkov/internal/syntax"

// Position is the Glushkov position automaton: one state per marked
// literal occurrence plus the start state 0. An edge p --sym(q)--> q
// exists iff q may immediately follow p; the start's successors are
// the first positions. Accepting states are Last0: the positions that
// can end a match, plus 0 itself when the expression is nullable.
type Position struct {
	core
	tables *syntax.Tables
}

// NewPosition builds the position automaton from precomputed tables.
// Construction is total: any Tables value yields a working automaton.
func NewPosition(t *syntax.Tables) *Position {
	a := &Position{
		core:   newCore(t.Size+1, t.Alphabet()),
		tables: t,
	}

	for p := range t.First {
		a.addEdge(0, t.Pos[p], p)
	}
	for p, successors := range t.Follow {
		for q := range successors {
			a.addEdge(p, t.Pos[q], q)
		}
	}
	for p := range t.Last0 {
		a.accept.set(p)
	}
	return a
}

// SymbolAt returns the literal symbol marked at position p.
// The start state 0 carries no symbol.
func (a *Position) SymbolAt(p State) (rune, bool) {
	sym, ok := a.tables.Pos[p]
	return sym, ok
}
