package glushkov

import (
	"fmt"

	"github.com/fsmkit/glushkov/internal/codegen"
)

// Engine selects which construction a generated matcher simulates.
type Engine string

const (
	// EnginePosition generates from the position automaton.
	EnginePosition Engine = "position"
	// EngineFollow generates from the follow automaton. This is the
	// default: same language, never more states.
	EngineFollow Engine = "follow"
	// EngineDFA generates from the determinized automaton.
	EngineDFA Engine = "dfa"
	// EngineMarkBefore generates from the mark-before automaton.
	EngineMarkBefore Engine = "markbefore"
)

// Options configures matcher code generation.
type Options struct {
	// Pattern is the regular expression to generate a matcher for.
	Pattern string

	// Name is the prefix for the generated function name (e.g. "Hex"
	// generates "HexMatch").
	Name string

	// OutputFile is the path where generated code will be written.
	OutputFile string

	// Package is the Go package name for the generated code.
	Package string

	// Engine selects the construction to simulate (default EngineFollow).
	Engine Engine

	// Verbose enables logging of generation decisions to stderr.
	Verbose bool
}

// Validate checks if the options are valid.
func (o Options) Validate() error {
	if o.Pattern == "" {
		return fmt.Errorf("pattern cannot be empty")
	}
	if o.Name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if o.OutputFile == "" {
		return fmt.Errorf("output file cannot be empty")
	}
	if o.Package == "" {
		return fmt.Errorf("package cannot be empty")
	}
	switch o.Engine {
	case "", EnginePosition, EngineFollow, EngineDFA, EngineMarkBefore:
	default:
		return fmt.Errorf("unknown engine %q", o.Engine)
	}
	return nil
}

// Generate writes a standalone Go matcher function for the given
// pattern. It returns an error if the options are invalid, the pattern
// does not parse, or the file cannot be written.
func Generate(opts Options) error {
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	var (
		auto Automaton
		err  error
	)
	switch opts.Engine {
	case EnginePosition:
		auto, err = Compile(opts.Pattern)
	case EngineDFA:
		auto, err = CompileDFA(opts.Pattern)
	case EngineMarkBefore:
		auto, err = CompileMarkBefore(opts.Pattern)
	default:
		auto, err = CompileFollow(opts.Pattern)
	}
	if err != nil {
		return fmt.Errorf("failed to compile pattern: %w", err)
	}

	g := codegen.New(codegen.Config{
		Pattern: opts.Pattern,
		Name:    opts.Name,
		Package: opts.Package,
		Verbose: opts.Verbose,
	}, auto)

	if err := g.GenerateFile(opts.OutputFile); err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}
	return nil
}
