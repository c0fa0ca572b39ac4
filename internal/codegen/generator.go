// Package codegen emits standalone Go matcher functions from built
// automata. The generated code depends on nothing but the language:
// small automata become a uint64 bitset simulation, larger ones fall
// back to table-driven active sets.
package codegen

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"github.com/dave/jennifer/jen"

	"github.com/fsmkit/glushkov/internal/automata"
)

// MaxBitsetStates is the largest state count the single-word bitset
// emission can handle.
const MaxBitsetStates = 64

// Config holds the configuration for code generation.
type Config struct {
	Pattern string // original pattern, for the generated header
	Name    string // prefix for the generated function name
	Package string // package name of the generated file
	Verbose bool   // enable verbose logging of generation decisions
}

// Generator emits a Go matcher function for one automaton. It only
// uses the automaton's read-only introspection surface, so any
// construction works as a source.
type Generator struct {
	config Config
	auto   automata.Automaton
	file   *jen.File
	logger *Logger
}

// New creates a generator for the given automaton.
func New(config Config, auto automata.Automaton) *Generator {
	return &Generator{
		config: config,
		auto:   auto,
		file:   jen.NewFile(config.Package),
		logger: NewLogger(config.Verbose),
	}
}

// CanUseBitset reports whether the automaton fits the uint64 path.
func (g *Generator) CanUseBitset() bool {
	return g.auto.StateCount() <= MaxBitsetStates
}

// Generate renders the generated source file.
func (g *Generator) Generate() ([]byte, error) {
	g.logger.Section("Code Generation")
	g.logger.Log("Pattern: %s", g.config.Pattern)
	g.logger.Log("States: %d, alphabet size: %d", g.auto.StateCount(), len(g.auto.Alphabet()))

	g.file.HeaderComment(fmt.Sprintf("Code generated by glushkov for pattern: %s", g.config.Pattern))
	g.file.HeaderComment("DO NOT EDIT.")

	name := UpperFirst(g.config.Name) + "Match"
	doc := fmt.Sprintf("%s reports whether input is in the language of %q.", name, g.config.Pattern)

	if g.CanUseBitset() {
		g.logger.Log("Emitting bitset simulation for %s", name)
		g.file.Comment(doc)
		g.file.Func().Id(name).Params(jen.Id(inputName).String()).Bool().Block(
			g.bitsetBody()...,
		)
	} else {
		g.logger.Log("State count exceeds %d, emitting table-driven simulation for %s", MaxBitsetStates, name)
		g.emitTables()
		g.file.Comment(doc)
		g.file.Func().Id(name).Params(jen.Id(inputName).String()).Bool().Block(
			g.tableBody()...,
		)
	}

	var buf bytes.Buffer
	if err := g.file.Render(&buf); err != nil {
		return nil, fmt.Errorf("failed to render generated code: %w", err)
	}
	return buf.Bytes(), nil
}

// GenerateFile renders the source and writes it to path.
func (g *Generator) GenerateFile(path string) error {
	src, err := g.Generate()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, src, 0o644); err != nil {
		return fmt.Errorf("failed to write generated file: %w", err)
	}
	g.logger.Log("Wrote %s", path)
	return nil
}

// acceptMask returns the accepting states as a single-word bitset.
func (g *Generator) acceptMask() uint64 {
	var mask uint64
	for _, s := range g.auto.States() {
		if g.auto.IsAccepting(s) {
			mask |= 1 << s
		}
	}
	return mask
}

// bySymbol groups the transition relation by symbol, then by source
// state, folding targets into per-source masks.
func (g *Generator) bySymbol() (syms []rune, masks map[rune]map[automata.State]uint64) {
	masks = make(map[rune]map[automata.State]uint64)
	for _, t := range g.auto.Transitions() {
		m := masks[t.Symbol]
		if m == nil {
			m = make(map[automata.State]uint64)
			masks[t.Symbol] = m
			syms = append(syms, t.Symbol)
		}
		m[t.From] |= 1 << t.To
	}
	sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })
	return syms, masks
}

func (g *Generator) bitsetBody() []jen.Code {
	syms, masks := g.bySymbol()

	cases := make([]jen.Code, 0, len(syms))
	for _, sym := range syms {
		perFrom := masks[sym]
		froms := make([]int, 0, len(perFrom))
		for from := range perFrom {
			froms = append(froms, from)
		}
		sort.Ints(froms)

		body := make([]jen.Code, 0, len(froms))
		for _, from := range froms {
			body = append(body, jen.If(
				jen.Id(currentName).Op("&").Lit(uint64(1)<<from).Op("!=").Lit(0),
			).Block(
				jen.Id(nextName).Op("|=").Lit(perFrom[from]),
			))
		}
		cases = append(cases, jen.Case(jen.LitRune(sym)).Block(body...))
	}

	return []jen.Code{
		jen.Comment("Active-state set as a bitset, one bit per state"),
		jen.Id(currentName).Op(":=").Uint64().Call(jen.Lit(uint64(1) << g.auto.Start())),
		jen.For(jen.List(jen.Id("_"), jen.Id(symbolName)).Op(":=").Range().Id(inputName)).Block(
			jen.Var().Id(nextName).Uint64(),
			jen.Switch(jen.Id(symbolName)).Block(cases...),
			jen.If(jen.Id(nextName).Op("==").Lit(0)).Block(
				jen.Return(jen.False()),
			),
			jen.Id(currentName).Op("=").Id(nextName),
		),
		jen.Return(jen.Id(currentName).Op("&").Lit(g.acceptMask()).Op("!=").Lit(0)),
	}
}

// emitTables writes the package-level transition and acceptance tables
// used by the table-driven fallback.
func (g *Generator) emitTables() {
	prefix := LowerFirst(g.config.Name)

	g.file.Comment("Transition targets per state and symbol.")
	g.file.Var().Id(prefix + "Transitions").Op("=").Map(jen.Int()).Map(jen.Rune()).Index().Int().Values(
		jen.DictFunc(func(d jen.Dict) {
			perState := make(map[automata.State]map[rune][]int)
			for _, t := range g.auto.Transitions() {
				m := perState[t.From]
				if m == nil {
					m = make(map[rune][]int)
					perState[t.From] = m
				}
				m[t.Symbol] = append(m[t.Symbol], t.To)
			}
			for from, m := range perState {
				d[jen.Lit(from)] = jen.Map(jen.Rune()).Index().Int().Values(
					jen.DictFunc(func(inner jen.Dict) {
						for sym, targets := range m {
							values := make([]jen.Code, len(targets))
							for i, to := range targets {
								values[i] = jen.Lit(to)
							}
							inner[jen.LitRune(sym)] = jen.Index().Int().Values(values...)
						}
					}),
				)
			}
		}),
	)

	g.file.Comment("Accepting states.")
	g.file.Var().Id(prefix + "Accepting").Op("=").Map(jen.Int()).Bool().Values(
		jen.DictFunc(func(d jen.Dict) {
			for _, s := range g.auto.States() {
				if g.auto.IsAccepting(s) {
					d[jen.Lit(s)] = jen.True()
				}
			}
		}),
	)
}

func (g *Generator) tableBody() []jen.Code {
	prefix := LowerFirst(g.config.Name)

	return []jen.Code{
		jen.Id(activeName).Op(":=").Map(jen.Int()).Bool().Values(
			jen.Dict{jen.Lit(g.auto.Start()): jen.True()},
		),
		jen.For(jen.List(jen.Id("_"), jen.Id(symbolName)).Op(":=").Range().Id(inputName)).Block(
			jen.Id(nextName).Op(":=").Make(jen.Map(jen.Int()).Bool()),
			jen.For(jen.Id("s").Op(":=").Range().Id(activeName)).Block(
				jen.For(jen.List(jen.Id("_"), jen.Id("t")).Op(":=").Range().Id(prefix+"Transitions").Index(jen.Id("s")).Index(jen.Id(symbolName))).Block(
					jen.Id(nextName).Index(jen.Id("t")).Op("=").True(),
				),
			),
			jen.If(jen.Len(jen.Id(nextName)).Op("==").Lit(0)).Block(
				jen.Return(jen.False()),
			),
			jen.Id(activeName).Op("=").Id(nextName),
		),
		jen.For(jen.Id("s").Op(":=").Range().Id(activeName)).Block(
			jen.If(jen.Id(prefix+"Accepting").Index(jen.Id("s"))).Block(
				jen.Return(jen.True()),
			),
		),
		jen.Return(jen.False()),
	}
}
