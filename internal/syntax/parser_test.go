package syntax

import (
	"errors"
	"testing"
)

func TestParseSuccess(t *testing.T) {
	tests := []struct {
		pattern string
		want    *Node
	}{
		{"a", Literal('a', 1)},
		{"(a)", Literal('a', 1)},
		{"((a))", Literal('a', 1)},
		{"ab", Concat(Literal('a', 1), Literal('b', 2))},
		{"a*", Star(Literal('a', 1))},
		{"a|b", Union(Literal('a', 1), Literal('b', 2))},
		{"aa", Concat(Literal('a', 1), Literal('a', 2))},
		{"a*b", Concat(Star(Literal('a', 1)), Literal('b', 2))},
		{"ba|b", Union(Concat(Literal('b', 1), Literal('a', 2)), Literal('b', 3))},
		{"b|ab", Union(Literal('b', 1), Concat(Literal('a', 2), Literal('b', 3)))},
		{"b|a|b", Union(Literal('b', 1), Union(Literal('a', 2), Literal('b', 3)))},
		{"b|a*|b", Union(Literal('b', 1), Union(Star(Literal('a', 2)), Literal('b', 3)))},
		{"ε", Empty()},
		{"aε", Concat(Literal('a', 1), Empty())},
		{"ε|a", Union(Empty(), Literal('a', 1))},

		{"((ab)c)", Concat(Concat(Literal('a', 1), Literal('b', 2)), Literal('c', 3))},
		{"(a(bc))", Concat(Literal('a', 1), Concat(Literal('b', 2), Literal('c', 3)))},

		{"a|(b*c)|a", Union(
			Literal('a', 1),
			Union(Concat(Star(Literal('b', 2)), Literal('c', 3)), Literal('a', 4)),
		)},

		{"a(ba)*b|a", Union(
			Concat(
				Literal('a', 1),
				Concat(
					Star(Concat(Literal('b', 2), Literal('a', 3))),
					Literal('b', 4))),
			Literal('a', 5),
		)},

		{"a(ba*b)*", Concat(
			Literal('a', 1),
			Star(Concat(
				Literal('b', 2),
				Concat(
					Star(Literal('a', 3)),
					Literal('b', 4),
				),
			)),
		)},

		{"a|b*a", Union(
			Literal('a', 1),
			Concat(Star(Literal('b', 2)), Literal('a', 3)),
		)},

		{"a*b*", Concat(Star(Literal('a', 1)), Star(Literal('b', 2)))},

		{"ae|bf|cg|dh", Union(
			Concat(Literal('a', 1), Literal('e', 2)),
			Union(
				Concat(Literal('b', 3), Literal('f', 4)),
				Union(
					Concat(Literal('c', 5), Literal('g', 6)),
					Concat(Literal('d', 7), Literal('h', 8)),
				),
			),
		)},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got, err := Parse(tt.pattern)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.pattern, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Parse(%q) = %s, want %s", tt.pattern, got, tt.want)
			}
		})
	}
}

func TestParseFail(t *testing.T) {
	tests := []string{
		"",
		"(",
		")",
		"*",
		"|",
		"*a",
		"|a",
		"()",
		"a|)",
		"a)",
		"(a|",
		"(a",
		"a|*",
		"a(bc)*)*",
		"a||b",
		"a**",
		"a|()",
		"(((a))))",
		"((((a)))",
	}

	for _, pattern := range tests {
		t.Run(pattern, func(t *testing.T) {
			n, err := Parse(pattern)
			if err == nil {
				t.Fatalf("Parse(%q) = %s, want error", pattern, n)
			}
			var serr *SyntaxError
			if !errors.As(err, &serr) {
				t.Errorf("Parse(%q) error = %T, want *SyntaxError", pattern, err)
			}
		})
	}
}

func TestParseIdempotent(t *testing.T) {
	const pattern = "a*b|c(aa)*d|a|z"

	first, err := Parse(pattern)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	second, err := Parse(pattern)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !first.Equal(second) {
		t.Errorf("parsing twice gave different trees: %s vs %s", first, second)
	}
}

func TestParseErrorMessage(t *testing.T) {
	_, err := Parse("(a|")
	if err == nil {
		t.Fatal("expected error")
	}
	var serr *SyntaxError
	if !errors.As(err, &serr) {
		t.Fatalf("error = %T, want *SyntaxError", err)
	}
	if serr.Index != 3 {
		t.Errorf("Index = %d, want 3", serr.Index)
	}
	if got := serr.Error(); got != "expected: symbol at index: 3, found: end of input" {
		t.Errorf("unexpected message: %q", got)
	}
}

func TestParseErrorIndex(t *testing.T) {
	// The index reported for an unexpected token is the cursor after
	// consuming it.
	tests := []struct {
		pattern string
		index   int
		found   string
	}{
		{"*a", 1, "'*'"},
		{"a||b", 3, "'|'"},
		{"a|*b", 3, "'*'"},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			_, err := Parse(tt.pattern)
			var serr *SyntaxError
			if !errors.As(err, &serr) {
				t.Fatalf("error = %T, want *SyntaxError", err)
			}
			if serr.Index != tt.index {
				t.Errorf("Index = %d, want %d", serr.Index, tt.index)
			}
			if serr.Found != tt.found {
				t.Errorf("Found = %q, want %q", serr.Found, tt.found)
			}
		})
	}
}

func TestMark(t *testing.T) {
	tests := []struct {
		pattern string
		count   int
	}{
		{"a", 1},
		{"a|a", 2},
		{"a(ba*b)*", 4},
		{"ae|bf|cg|dh", 8},
		{"ε", 0},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			n, err := Parse(tt.pattern)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			parsed := Analyze(n).Pos

			if got := Mark(n); got != tt.count {
				t.Errorf("Mark = %d, want %d", got, tt.count)
			}
			// Re-marking must reproduce the parse-time assignment.
			remarked := Analyze(n).Pos
			if len(remarked) != len(parsed) {
				t.Fatalf("re-marking changed position count: %d vs %d", len(remarked), len(parsed))
			}
			for p, sym := range parsed {
				if remarked[p] != sym {
					t.Errorf("position %d: symbol %q after re-mark, want %q", p, remarked[p], sym)
				}
			}
		})
	}
}

func TestNodeString(t *testing.T) {
	tests := []string{
		"a",
		"ab",
		"a|b",
		"a*b*",
		"(a|b)*c",
		"a(ba*b)*",
		"ae|bf|cg|dh",
		"ε",
	}

	for _, pattern := range tests {
		t.Run(pattern, func(t *testing.T) {
			n, err := Parse(pattern)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			back, err := Parse(n.String())
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", n.String(), err)
			}
			if !back.Equal(n) {
				t.Errorf("round trip through %q changed the tree", n.String())
			}
		})
	}
}
