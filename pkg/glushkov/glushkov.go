// Package glushkov builds position and follow automata from regular
// expressions and answers membership queries over them.
//
// The supported pattern language is small by design: literal symbols,
// alternation '|', Kleene star '*', implicit concatenation, grouping
// parentheses and the empty-string atom 'ε'. Parsing a pattern yields
// an automaton that can be queried any number of times, concurrently,
// without further allocation of shared state.
package glushkov

import (
	"github.com/fsmkit/glushkov/internal/automata"
	"github.com/fsmkit/glushkov/internal/syntax"
)

// Automaton is the query and introspection contract shared by every
// construction this package can build.
type Automaton = automata.Automaton

// State identifies an automaton state.
type State = automata.State

// Transition is one labeled edge of an automaton's transition relation.
type Transition = automata.Transition

// SyntaxError is the error returned for malformed patterns.
type SyntaxError = syntax.SyntaxError

// Compile builds the position (Glushkov) automaton for pattern: one
// state per literal occurrence plus a start state.
func Compile(pattern string) (Automaton, error) {
	t, err := analyze(pattern)
	if err != nil {
		return nil, err
	}
	return automata.NewPosition(t), nil
}

// CompileFollow builds the follow automaton for pattern: the position
// automaton with equal-signature states merged. It recognizes the same
// language as Compile's result with at most as many states.
func CompileFollow(pattern string) (Automaton, error) {
	t, err := analyze(pattern)
	if err != nil {
		return nil, err
	}
	return automata.NewFollow(t), nil
}

// CompileDFA builds a deterministic automaton for pattern via subset
// construction over the follow sets. It is not minimized.
func CompileDFA(pattern string) (Automaton, error) {
	t, err := analyze(pattern)
	if err != nil {
		return nil, err
	}
	return automata.Determinize(t), nil
}

// CompileMarkBefore builds the deterministic mark-before automaton for
// pattern. Its states record the combined follow set and finality of
// the positions selected by the last read symbol, which often yields
// fewer states than CompileDFA.
func CompileMarkBefore(pattern string) (Automaton, error) {
	t, err := analyze(pattern)
	if err != nil {
		return nil, err
	}
	return automata.NewMarkBefore(t), nil
}

// Match parses pattern, builds the position automaton and reports
// whether it accepts input. For repeated queries against one pattern,
// compile once and reuse the automaton instead.
func Match(pattern, input string) (bool, error) {
	a, err := Compile(pattern)
	if err != nil {
		return false, err
	}
	return a.Accepts(input), nil
}

func analyze(pattern string) (*syntax.Tables, error) {
	node, err := syntax.Parse(pattern)
	if err != nil {
		return nil, err
	}
	return syntax.Analyze(node), nil
}
