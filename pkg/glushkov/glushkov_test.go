package glushkov_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fsmkit/glushkov/pkg/glushkov"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		want    bool
	}{
		{"abc", "abc", true},
		{"abc", "ab", false},
		{"abc", "abcd", false},
		{"abc", "abd", false},
		{"a|b", "a", true},
		{"a|b", "b", true},
		{"a|b", "", false},
		{"a|b", "ab", false},
		{"a|b", "c", false},
		{"a*", "", true},
		{"a*", "aaaa", true},
		{"a*", "ab", false},
		{"(a|b)*c", "c", true},
		{"(a|b)*c", "aabbc", true},
		{"(a|b)*c", "cab", false},
		{"ε", "", true},
		{"ε", "x", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.input, func(t *testing.T) {
			got, err := glushkov.Match(tt.pattern, tt.input)
			if err != nil {
				t.Fatalf("Match failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Match(%q, %q) = %v, want %v", tt.pattern, tt.input, got, tt.want)
			}
		})
	}
}

func TestMatchSyntaxError(t *testing.T) {
	for _, pattern := range []string{"", "(a|", "*a", "a)", "a||b"} {
		t.Run(pattern, func(t *testing.T) {
			_, err := glushkov.Match(pattern, "a")
			if err == nil {
				t.Fatal("expected error")
			}
			var serr *glushkov.SyntaxError
			if !errors.As(err, &serr) {
				t.Errorf("error = %T, want *SyntaxError", err)
			}
		})
	}
}

func TestCompileVariantsAgree(t *testing.T) {
	const pattern = "(a|b)*abb"

	pos, err := glushkov.Compile(pattern)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	fol, err := glushkov.CompileFollow(pattern)
	if err != nil {
		t.Fatalf("CompileFollow failed: %v", err)
	}
	dfa, err := glushkov.CompileDFA(pattern)
	if err != nil {
		t.Fatalf("CompileDFA failed: %v", err)
	}
	mb, err := glushkov.CompileMarkBefore(pattern)
	if err != nil {
		t.Fatalf("CompileMarkBefore failed: %v", err)
	}

	for _, input := range []string{"", "abb", "aabb", "ab", "abba", "abababb", "x"} {
		want := pos.Accepts(input)
		if got := fol.Accepts(input); got != want {
			t.Errorf("follow.Accepts(%q) = %v, position says %v", input, got, want)
		}
		if got := dfa.Accepts(input); got != want {
			t.Errorf("dfa.Accepts(%q) = %v, position says %v", input, got, want)
		}
		if got := mb.Accepts(input); got != want {
			t.Errorf("markbefore.Accepts(%q) = %v, position says %v", input, got, want)
		}
	}

	if fol.StateCount() > pos.StateCount() {
		t.Errorf("follow automaton has %d states, position only %d",
			fol.StateCount(), pos.StateCount())
	}
}

func TestCompileConcurrentQueries(t *testing.T) {
	a, err := glushkov.CompileFollow("(a|b)*c")
	if err != nil {
		t.Fatalf("CompileFollow failed: %v", err)
	}

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 1000; j++ {
				if !a.Accepts("ababc") {
					t.Error(`Accepts("ababc") = false`)
					return
				}
				if a.Accepts("abca") {
					t.Error(`Accepts("abca") = true`)
					return
				}
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}

func TestDot(t *testing.T) {
	a, err := glushkov.CompileFollow("a*")
	if err != nil {
		t.Fatalf("CompileFollow failed: %v", err)
	}
	out := glushkov.Dot(a, "star")

	for _, want := range []string{
		"digraph star {",
		"rankdir=LR;",
		"doublecircle",
		`label="a"`,
		"_start",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Dot output missing %q:\n%s", want, out)
		}
	}
}

func TestGenerate(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "matcher.go")

	err := glushkov.Generate(glushkov.Options{
		Pattern:    "(a|b)*c",
		Name:       "Choice",
		OutputFile: outputFile,
		Package:    "matcher",
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	src, err := os.ReadFile(outputFile)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if !strings.Contains(string(src), "func ChoiceMatch(input string) bool") {
		t.Error("generated file is missing the matcher function")
	}
}

func TestGenerateOptionsValidate(t *testing.T) {
	tests := []struct {
		name string
		opts glushkov.Options
	}{
		{"missing pattern", glushkov.Options{Name: "X", OutputFile: "x.go", Package: "p"}},
		{"missing name", glushkov.Options{Pattern: "a", OutputFile: "x.go", Package: "p"}},
		{"missing output", glushkov.Options{Pattern: "a", Name: "X", Package: "p"}},
		{"missing package", glushkov.Options{Pattern: "a", Name: "X", OutputFile: "x.go"}},
		{"bad engine", glushkov.Options{Pattern: "a", Name: "X", OutputFile: "x.go", Package: "p", Engine: "nfa"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := glushkov.Generate(tt.opts); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestGenerateBadPattern(t *testing.T) {
	err := glushkov.Generate(glushkov.Options{
		Pattern:    "(a|",
		Name:       "Broken",
		OutputFile: filepath.Join(t.TempDir(), "broken.go"),
		Package:    "matcher",
	})
	if err == nil {
		t.Fatal("expected error")
	}
	var serr *glushkov.SyntaxError
	if !errors.As(err, &serr) {
		t.Errorf("error = %T, want wrapped *SyntaxError", err)
	}
}
