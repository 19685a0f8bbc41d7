package cli

import (
	"fmt"
	"io"
	"log"

	"github.com/lmmx/dslgen/internal/grammar"
	"github.com/lmmx/dslgen/internal/introspect"
	"github.com/lmmx/dslgen/internal/parser"
)

// Runner orchestrates introspection, grammar synthesis and the parse demo.
type Runner interface {
	Run(cfg *Config) error
}

type runnerImpl struct {
	inspector introspect.Inspector
	synth     grammar.Synthesizer
	out       io.Writer
}

// NewRunner creates a default runner implementation writing to out.
func NewRunner(ins introspect.Inspector, synth grammar.Synthesizer, out io.Writer) Runner {
	return &runnerImpl{inspector: ins, synth: synth, out: out}
}

// Run executes one full cycle: discover the API map, synthesize the
// grammar, build the parser and parse the demo snippet.
func (r *runnerImpl) Run(cfg *Config) error {
	api, err := introspect.Discover(r.inspector, cfg.Library, cfg.Classes)
	if err != nil {
		return fmt.Errorf("discover: %w", err)
	}
	for _, class := range cfg.Classes {
		if _, ok := api[class]; !ok {
			log.Printf("dslgen: warning: class %q not found, omitted from API map", class)
		}
	}

	text, err := r.synth.Synthesize(api)
	if err != nil {
		return fmt.Errorf("synthesize: %w", err)
	}

	fmt.Fprintln(r.out, "===== GENERATED GRAMMAR =====")
	fmt.Fprintln(r.out, text)
	fmt.Fprintln(r.out, "=============================")

	p, err := parser.New(text)
	if err != nil {
		return fmt.Errorf("build parser: %w", err)
	}

	fmt.Fprintln(r.out, "===== PARSING TEST SNIPPET =====")
	fmt.Fprintln(r.out, cfg.Snippet)

	tree, err := p.Parse(cfg.Snippet)
	if err != nil {
		return fmt.Errorf("parse snippet: %w", err)
	}

	fmt.Fprintln(r.out, "===== PARSE TREE =====")
	fmt.Fprint(r.out, tree.Pretty())
	return nil
}
