package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/lmmx/dslgen/dataframe"
	"github.com/lmmx/dslgen/internal/grammar"
	"github.com/lmmx/dslgen/internal/introspect"
	"github.com/lmmx/dslgen/internal/parser"
)

func testRunner(out *bytes.Buffer) Runner {
	ins := introspect.NewReflectInspector()
	ins.Register("dataframe",
		dataframe.DataFrame{},
		dataframe.LazyFrame{},
		dataframe.Expr{},
	)
	return NewRunner(ins, grammar.New(grammar.DefaultAllowLists()), out)
}

func TestRunner_Run_EndToEnd(t *testing.T) {
	var out bytes.Buffer
	runner := testRunner(&out)

	cfg := &Config{
		Mode:    ModeReflect,
		Library: "dataframe",
		Classes: DefaultClasses(),
		Snippet: DefaultSnippet,
	}
	if err := runner.Run(cfg); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	got := out.String()
	checks := []string{
		"===== GENERATED GRAMMAR =====",
		"FILTER:",
		"SELECT:",
		"===== PARSING TEST SNIPPET =====",
		DefaultSnippet,
		"===== PARSE TREE =====",
		"dataframe_expression",
	}
	for _, check := range checks {
		if !strings.Contains(got, check) {
			t.Fatalf("output does not contain %q\n%s", check, got)
		}
	}
}

func TestRunner_Run_LazySnippet(t *testing.T) {
	var out bytes.Buffer
	runner := testRunner(&out)

	cfg := &Config{
		Mode:    ModeReflect,
		Library: "dataframe",
		Classes: DefaultClasses(),
		Snippet: `pl.DataFrame({"x": [1,2,3]}).lazy().filter(x > 1).collect()`,
	}
	if err := runner.Run(cfg); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "lazyframe_expression") {
		t.Fatalf("expected lazy parse tree:\n%s", out.String())
	}
}

func TestRunner_Run_InvalidSnippetIsSyntaxError(t *testing.T) {
	var out bytes.Buffer
	runner := testRunner(&out)

	cfg := &Config{
		Mode:    ModeReflect,
		Library: "dataframe",
		Classes: DefaultClasses(),
		Snippet: `pl.DataFrame({"x": [1,2,3]}).unknown_method()`,
	}
	err := runner.Run(cfg)
	if err == nil {
		t.Fatal("Run() succeeded, want syntax error")
	}
	var serr *parser.SyntaxError
	if !errors.As(err, &serr) {
		t.Fatalf("error is %T, want *parser.SyntaxError", err)
	}
}

func TestRunner_Run_UnknownLibraryFails(t *testing.T) {
	var out bytes.Buffer
	runner := testRunner(&out)

	cfg := &Config{
		Mode:    ModeReflect,
		Library: "polars",
		Classes: DefaultClasses(),
		Snippet: DefaultSnippet,
	}
	if err := runner.Run(cfg); err == nil {
		t.Fatal("Run() succeeded, want load failure")
	}
}
