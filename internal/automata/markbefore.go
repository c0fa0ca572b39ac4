package automata

import "github.com/fsmkit/glushkov/internal/syntax"

// markState is a mark-before state: the union of follow sets of the
// positions selected by the last symbol, plus whether that selection
// could end the match. Finality is decided by the selected positions,
// one step before the follow sets are expanded — hence the name.
type markState struct {
	follow bitset
	final  bool
}

// MarkBefore is the deterministic mark-before construction. It differs
// from Determinize in what a state remembers: not the selected
// positions themselves but their combined follow set and finality, so
// subsets with different positions but equal outlooks coincide and the
// state counts generally differ from the other constructions.
type MarkBefore struct {
	start    State
	trans    []map[rune]State
	alphabet []rune
	states   []markState
}

// NewMarkBefore builds the mark-before automaton. States are interned
// by (follow set, finality) and the worklist explores the alphabet in
// sorted order, so state numbering is deterministic.
func NewMarkBefore(t *syntax.Tables) *MarkBefore {
	alphabet := t.Alphabet()

	a := &MarkBefore{alphabet: alphabet}
	index := make(map[signature]State)

	last0 := newBitset(t.Size + 1)
	for p := range t.Last0 {
		last0.set(p)
	}

	intern := func(s markState) State {
		sig := signature{followKey: s.follow.key(), final: s.final}
		if id, ok := index[sig]; ok {
			return id
		}
		id := len(a.states)
		index[sig] = id
		a.states = append(a.states, s)
		a.trans = append(a.trans, make(map[rune]State))
		return id
	}

	initial := markState{follow: followBits(t, 0), final: t.Last0.Has(0)}
	a.start = intern(initial)

	for s := 0; s < len(a.states); s++ { // states grows as we go
		state := a.states[s]
		for _, sym := range alphabet {
			// Select the positions reachable on sym, then fold
			// their follow sets and finality into the next state.
			next := markState{follow: newBitset(t.Size + 1)}
			selected := false
			state.follow.forEach(func(p int) {
				if t.Pos[p] != sym {
					return
				}
				selected = true
				next.follow.or(followBits(t, p))
				if last0.has(p) {
					next.final = true
				}
			})
			if !selected {
				continue
			}
			a.trans[s][sym] = intern(next)
		}
	}
	return a
}

// Accepts walks the single active state through the input; acceptance
// is the finality of the state the input ends in.
func (a *MarkBefore) Accepts(input string) bool {
	s := a.start
	for _, sym := range input {
		next, ok := a.trans[s][sym]
		if !ok {
			return false
		}
		s = next
	}
	return a.states[s].final
}

func (a *MarkBefore) Start() State     { return a.start }
func (a *MarkBefore) StateCount() int  { return len(a.states) }
func (a *MarkBefore) Alphabet() []rune { return append([]rune(nil), a.alphabet...) }

func (a *MarkBefore) States() []State {
	states := make([]State, len(a.states))
	for i := range states {
		states[i] = i
	}
	return states
}

func (a *MarkBefore) IsAccepting(s State) bool {
	return s >= 0 && s < len(a.states) && a.states[s].final
}

func (a *MarkBefore) Transitions() []Transition {
	var out []Transition
	for from, m := range a.trans {
		for sym, to := range m {
			out = append(out, Transition{From: from, Symbol: sym, To: to})
		}
	}
	sortTransitions(out)
	return out
}

// FollowSet returns the positions whose follow sets state s combines,
// ascending.
func (a *MarkBefore) FollowSet(s State) []int {
	var out []int
	a.states[s].follow.forEach(func(p int) { out = append(out, p) })
	return out
}
