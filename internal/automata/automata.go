// Package automata builds finite automata from position tables and
// answers membership queries over them.
//
// Three constructions share one contract: the position (Glushkov)
// automaton, whose states are the marked positions themselves; the
// follow automaton, which merges positions with identical follow-set/
// acceptance signatures; and a determinized automaton obtained by
// subset construction over follow sets. All three recognize the same
// language; they differ only in state count.
package automata

import (
	"sort"

	"github.com/fsmkit/glushkov/internal/syntax"
)

// State identifies an automaton state. For the position automaton a
// state is a position (0 is the start); for the merged and determinized
// variants it is an index into the construction's state table.
type State = int

// Transition is one labeled edge of the transition relation.
type Transition struct {
	From   State
	Symbol rune
	To     State
}

// Automaton is the query contract shared by every construction.
// Implementations are immutable after construction, so a single value
// may serve concurrent Accepts calls without locking.
type Automaton interface {
	// Accepts reports whether the automaton accepts input. Symbols
	// outside the alphabet have no transitions, so they can only
	// empty the active set; they never cause an error.
	Accepts(input string) bool

	// Start returns the initial state.
	Start() State

	// StateCount returns the number of states.
	StateCount() int

	// States enumerates the states in ascending order.
	States() []State

	// Alphabet returns the distinct transition symbols in ascending order.
	Alphabet() []rune

	// Transitions enumerates the transition relation, ordered by
	// (from, symbol, to).
	Transitions() []Transition

	// IsAccepting reports whether s is an accepting state.
	IsAccepting(s State) bool
}

// core is the nondeterministic simulation engine shared by the
// position and follow automata: a dense state-indexed transition
// table of per-symbol target bitsets.
type core struct {
	size     int
	start    State
	trans    []map[rune]bitset // state → symbol → targets
	accept   bitset
	alphabet []rune
}

func newCore(size int, alphabet []rune) core {
	return core{
		size:     size,
		trans:    make([]map[rune]bitset, size),
		accept:   newBitset(size),
		alphabet: alphabet,
	}
}

// addEdge records from --sym--> to.
func (c *core) addEdge(from State, sym rune, to State) {
	m := c.trans[from]
	if m == nil {
		m = make(map[rune]bitset)
		c.trans[from] = m
	}
	targets := m[sym]
	if targets == nil {
		targets = newBitset(c.size)
		m[sym] = targets
	}
	targets.set(to)
}

// Accepts runs the active-set simulation: start from {start}, replace
// the set with the union of targets on each symbol, and accept iff the
// final set intersects the accepting set.
func (c *core) Accepts(input string) bool {
	active := newBitset(c.size)
	active.set(c.start)
	for _, sym := range input {
		next := newBitset(c.size)
		active.forEach(func(s int) {
			if targets := c.trans[s][sym]; targets != nil {
				next.or(targets)
			}
		})
		if next.empty() {
			return false
		}
		active = next
	}
	return active.intersects(c.accept)
}

func (c *core) Start() State     { return c.start }
func (c *core) StateCount() int  { return c.size }
func (c *core) Alphabet() []rune { return append([]rune(nil), c.alphabet...) }

func (c *core) States() []State {
	states := make([]State, c.size)
	for i := range states {
		states[i] = i
	}
	return states
}

func (c *core) IsAccepting(s State) bool {
	return s >= 0 && s < c.size && c.accept.has(s)
}

func (c *core) Transitions() []Transition {
	var out []Transition
	for from, m := range c.trans {
		for sym, targets := range m {
			targets.forEach(func(to int) {
				out = append(out, Transition{From: from, Symbol: sym, To: to})
			})
		}
	}
	sortTransitions(out)
	return out
}

func sortTransitions(ts []Transition) {
	sort.Slice(ts, func(i, j int) bool {
		if ts[i].From != ts[j].From {
			return ts[i].From < ts[j].From
		}
		if ts[i].Symbol != ts[j].Symbol {
			return ts[i].Symbol < ts[j].Symbol
		}
		return ts[i].To < ts[j].To
	})
}

// followBits converts the follow set of position p into a bitset over
// 0..t.Size. Follow sets never contain 0, so the start state has no
// incoming edges.
func followBits(t *syntax.Tables, p int) bitset {
	b := newBitset(t.Size + 1)
	for q := range t.FollowOf(p) {
		b.set(q)
	}
	return b
}
