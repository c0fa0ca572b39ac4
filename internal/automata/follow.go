package automata

import "github.com/fsmkit/glushkov/internal/syntax"

// signature is what decides whether two positions merge: the exact
// follow set and the acceptance status. This is a single-pass quotient
// of the position automaton, not minimization — positions merge only
// when their follow sets are literally identical.
type signature struct {
	followKey string
	final     bool
}

// Follow is the follow automaton: the position automaton with
// same-signature positions collapsed into one state. State numbering
// is deterministic: classes are numbered in order of the smallest
// position they contain, so repeated builds from the same pattern
// yield identical automata.
type Follow struct {
	core
	classOf []State // position → merged state
	members [][]int // merged state → positions, ascending
}

// NewFollow builds the follow automaton from precomputed tables.
func NewFollow(t *syntax.Tables) *Follow {
	// Partition positions 0..Size by signature. Iterating in
	// ascending position order fixes the class numbering.
	classOf := make([]State, t.Size+1)
	index := make(map[signature]State)
	var members [][]int
	var reps []int // representative (first) position of each class

	for p := 0; p <= t.Size; p++ {
		sig := signature{
			followKey: followBits(t, p).key(),
			final:     t.Last0.Has(p),
		}
		class, ok := index[sig]
		if !ok {
			class = len(members)
			index[sig] = class
			members = append(members, nil)
			reps = append(reps, p)
		}
		classOf[p] = class
		members[class] = append(members[class], p)
	}

	a := &Follow{
		core:    newCore(len(members), t.Alphabet()),
		classOf: classOf,
		members: members,
	}
	a.start = classOf[0]

	// Every member of a class has the same follow set, so the
	// representative's successors are the class's successors.
	for class, p := range reps {
		for q := range t.FollowOf(p) {
			a.addEdge(class, t.Pos[q], classOf[q])
		}
		if t.Last0.Has(p) {
			a.accept.set(class)
		}
	}
	return a
}

// ClassOf returns the merged state that position p belongs to.
func (a *Follow) ClassOf(p int) State {
	return a.classOf[p]
}

// Members returns the positions merged into state s, ascending.
func (a *Follow) Members(s State) []int {
	return append([]int(nil), a.members[s]...)
}
