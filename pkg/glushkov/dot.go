package glushkov

import (
	"fmt"
	"strings"
)

// Dot renders the automaton as a Graphviz digraph. Accepting states
// are drawn as double circles; a point node marks the start. Only the
// read-only introspection surface is used, so any Automaton works.
func Dot(a Automaton, name string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "digraph %s {\n", name)
	b.WriteString("    rankdir=LR;\n")

	for _, s := range a.States() {
		shape := "circle"
		if a.IsAccepting(s) {
			shape = "doublecircle"
		}
		fmt.Fprintf(&b, "    q%d [shape=%s];\n", s, shape)
	}
	for _, t := range a.Transitions() {
		fmt.Fprintf(&b, "    q%d -> q%d [label=%q];\n", t.From, t.To, string(t.Symbol))
	}
	fmt.Fprintf(&b, "    _start [shape=point]; _start -> q%d;\n", a.Start())

	b.WriteString("}\n")
	return b.String()
}
