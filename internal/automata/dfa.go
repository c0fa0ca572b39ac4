package automata

import "github.com/fsmkit/glushkov/internal/syntax"

// DFA is the McNaughton–Yamada determinization of the position tables:
// each state is a set of positions, the start state is {0}, and the
// transition on a symbol collects the follow sets of the current
// positions and keeps the ones marked with that symbol. Missing
// transitions go to an implicit dead state.
type DFA struct {
	start    State
	trans    []map[rune]State
	accept   bitset
	alphabet []rune
	subsets  []bitset         // state → the position set it stands for
}

// Determinize runs the subset construction over the follow sets.
// Subsets are interned by bitset key, and the worklist explores the
// alphabet in sorted order, so state numbering is deterministic.
func Determinize(t *syntax.Tables) *DFA {
	alphabet := t.Alphabet()

	a := &DFA{alphabet: alphabet}
	index := make(map[string]State)

	last0 := newBitset(t.Size + 1)
	for p := range t.Last0 {
		last0.set(p)
	}

	intern := func(subset bitset) State {
		key := subset.key()
		if s, ok := index[key]; ok {
			return s
		}
		s := len(a.subsets)
		index[key] = s
		a.subsets = append(a.subsets, subset)
		a.trans = append(a.trans, make(map[rune]State))
		return s
	}

	initial := newBitset(t.Size + 1)
	initial.set(0)
	a.start = intern(initial)

	for s := 0; s < len(a.subsets); s++ { // subsets grows as we go
		subset := a.subsets[s]
		for _, sym := range alphabet {
			target := newBitset(t.Size + 1)
			subset.forEach(func(p int) {
				for q := range t.FollowOf(p) {
					if t.Pos[q] == sym {
						target.set(q)
					}
				}
			})
			if target.empty() {
				continue
			}
			a.trans[s][sym] = intern(target)
		}
	}

	a.accept = newBitset(len(a.subsets))
	for s, subset := range a.subsets {
		if subset.intersects(last0) {
			a.accept.set(s)
		}
	}
	return a
}

// Accepts walks the single active state through the input. A missing
// transition is a dead end: no suffix can recover.
func (a *DFA) Accepts(input string) bool {
	s := a.start
	for _, sym := range input {
		next, ok := a.trans[s][sym]
		if !ok {
			return false
		}
		s = next
	}
	return a.accept.has(s)
}

func (a *DFA) Start() State     { return a.start }
func (a *DFA) StateCount() int  { return len(a.subsets) }
func (a *DFA) Alphabet() []rune { return append([]rune(nil), a.alphabet...) }

func (a *DFA) States() []State {
	states := make([]State, len(a.subsets))
	for i := range states {
		states[i] = i
	}
	return states
}

func (a *DFA) IsAccepting(s State) bool {
	return s >= 0 && s < len(a.subsets) && a.accept.has(s)
}

func (a *DFA) Transitions() []Transition {
	var out []Transition
	for from, m := range a.trans {
		for sym, to := range m {
			out = append(out, Transition{From: from, Symbol: sym, To: to})
		}
	}
	sortTransitions(out)
	return out
}

// Subset returns the positions that DFA state s stands for, ascending.
func (a *DFA) Subset(s State) []int {
	var out []int
	a.subsets[s].forEach(func(p int) { out = append(out, p) })
	return out
}
