package parser

import (
	"errors"
	"strings"
	"testing"
)

const testGrammar = `
?start: frame_expression

?frame_expression: dataframe_expression
                 | lazyframe_expression

DATAFRAME_CALL: "pl.DataFrame" "(" /[^)]*/ ")"
LAZY_CALL: ".lazy" "(" ")"

SELECT: ".select" "(" /[^)]*/ ")"
FILTER: ".filter" "(" /[^)]*/ ")"
GROUPBY: ".groupby" "(" /[^)]*/ ")"
JOIN: ".join" "(" /[^)]*/ ")"
LAZY: ".lazy" "(" /[^)]*/ ")"
COLLECT: ".collect" "(" /[^)]*/ ")"

?dataframe_expression: DATAFRAME_CALL dataframe_chain?
?lazyframe_expression: DATAFRAME_CALL LAZY_CALL lazyframe_chain?

dataframe_chain: (DF_METHOD_CALL)+
lazyframe_chain: (LF_METHOD_CALL)+

DF_METHOD_CALL: SELECT | FILTER | GROUPBY | JOIN | LAZY
LF_METHOD_CALL: COLLECT | FILTER | SELECT | GROUPBY
`

func mustParser(t *testing.T, grammar string) *Parser {
	t.Helper()
	p, err := New(grammar)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return p
}

func TestParse_ValidSnippets(t *testing.T) {
	p := mustParser(t, testGrammar)

	snippets := []string{
		`pl.DataFrame({"x": [1,2,3]})`,
		`pl.DataFrame({"x": [1,2,3]}).filter(x > 1)`,
		`pl.DataFrame({"x": [1,2,3]}).filter(x > 1).select("x")`,
		`pl.DataFrame({"x": [1,2,3]}).lazy().filter(x > 1).select("x")`,
		`pl.DataFrame({"x": [1,2,3]}).lazy().groupby("x").collect()`,
		`pl.DataFrame({"x": [1,2,3]}).filter(x > 1).lazy()`,
	}
	for _, snippet := range snippets {
		t.Run(snippet, func(t *testing.T) {
			tree, err := p.Parse(snippet)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if tree == nil {
				t.Fatal("Parse() returned nil tree")
			}
		})
	}
}

func TestParse_InvalidSnippets(t *testing.T) {
	p := mustParser(t, testGrammar)

	snippets := []string{
		// Unknown method has no terminal rule.
		`pl.DataFrame({"x": [1,2,3]}).unknown_method()`,
		// Missing call parentheses around the constructor argument.
		`pl.DataFrame{"x": [1,2,3]}`,
		// collect is lazy-only and the chain never went lazy.
		`pl.DataFrame({"x": [1,2,3]}).collect()`,
		// A lazy chain cannot use the builder-only join.
		`pl.DataFrame({"x": [1,2,3]}).lazy().join(other)`,
		// Trailing garbage after a complete expression.
		`pl.DataFrame({"x": [1,2,3]}).filter(x > 1)!`,
	}
	for _, snippet := range snippets {
		t.Run(snippet, func(t *testing.T) {
			_, err := p.Parse(snippet)
			if err == nil {
				t.Fatal("Parse() succeeded, want syntax error")
			}
			var serr *SyntaxError
			if !errors.As(err, &serr) {
				t.Fatalf("error is %T, want *SyntaxError", err)
			}
			var gerr *GrammarError
			if errors.As(err, &gerr) {
				t.Fatalf("parse failure reported as grammar error: %v", err)
			}
		})
	}
}

func TestParse_EagerTreeShape(t *testing.T) {
	p := mustParser(t, testGrammar)

	tree, err := p.Parse(`pl.DataFrame({"x": [1,2,3]}).filter(x > 1).select("x")`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if tree.Name != "dataframe_expression" {
		t.Fatalf("root = %s, want dataframe_expression", tree.Name)
	}
	if len(tree.Children) != 2 {
		t.Fatalf("root has %d children, want 2", len(tree.Children))
	}
	if got := tree.Children[0]; got.Name != "DATAFRAME_CALL" || !got.IsLeaf() {
		t.Fatalf("first child = %#v, want DATAFRAME_CALL leaf", got)
	}

	chain := tree.Children[1]
	if chain.Name != "dataframe_chain" {
		t.Fatalf("second child = %s, want dataframe_chain", chain.Name)
	}
	if len(chain.Children) != 2 {
		t.Fatalf("chain has %d calls, want 2", len(chain.Children))
	}
	if chain.Children[0].Name != "DF_METHOD_CALL" || chain.Children[0].Token != ".filter(x > 1)" {
		t.Fatalf("first call = %#v, want .filter(x > 1)", chain.Children[0])
	}
}

func TestParse_LazyTreeShape(t *testing.T) {
	p := mustParser(t, testGrammar)

	tree, err := p.Parse(`pl.DataFrame({"x": [1,2,3]}).lazy().filter(x > 1).select("x")`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if tree.Name != "lazyframe_expression" {
		t.Fatalf("root = %s, want lazyframe_expression", tree.Name)
	}
	if len(tree.Children) != 3 {
		t.Fatalf("root has %d children, want 3", len(tree.Children))
	}
	if got := tree.Children[1]; got.Name != "LAZY_CALL" || got.Token != ".lazy()" {
		t.Fatalf("second child = %#v, want LAZY_CALL .lazy()", got)
	}

	chain := tree.Children[2]
	if chain.Name != "lazyframe_chain" || len(chain.Children) != 2 {
		t.Fatalf("chain = %#v, want lazyframe_chain with 2 calls", chain)
	}
}

func TestParse_NoChainInlinesToConstructorToken(t *testing.T) {
	p := mustParser(t, testGrammar)

	tree, err := p.Parse(`pl.DataFrame({"x": [1,2,3]})`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	// ?-rules collapse single-child nodes, so the bare constructor is the
	// whole tree.
	if tree.Name != "DATAFRAME_CALL" || !tree.IsLeaf() {
		t.Fatalf("tree = %#v, want DATAFRAME_CALL leaf", tree)
	}
}

func TestParse_PlaceholderRoleNeverMatches(t *testing.T) {
	grammar := strings.Replace(
		testGrammar,
		"DF_METHOD_CALL: SELECT | FILTER | GROUPBY | JOIN | LAZY",
		"DF_METHOD_CALL: /NO_DF_METHODS/",
		1,
	)
	p := mustParser(t, grammar)

	if _, err := p.Parse(`pl.DataFrame({"x": [1,2,3]})`); err != nil {
		t.Fatalf("bare constructor should still parse: %v", err)
	}
	if _, err := p.Parse(`pl.DataFrame({"x": [1,2,3]}).filter(x > 1)`); err == nil {
		t.Fatal("builder branch should be unsatisfiable, parse succeeded")
	}
}

func TestNew_GrammarErrors(t *testing.T) {
	tests := []struct {
		name    string
		grammar string
	}{
		{name: "empty", grammar: ""},
		{name: "no start rule", grammar: "A: \"a\"\nother: A"},
		{name: "unterminated literal", grammar: "A: \"a\nstart: A"},
		{name: "undefined symbol", grammar: "A: \"a\"\nstart: A missing_rule"},
		{name: "self-referential terminal", grammar: "A: A \"a\"\nstart: A"},
		{name: "bad regex", grammar: "A: /[unclosed/\nstart: A"},
		{name: "reduce-reduce conflict", grammar: "A: \"a\"\nx: A\ny: A\nstart: x | y"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.grammar)
			if err == nil {
				t.Fatal("New() succeeded, want grammar error")
			}
			var gerr *GrammarError
			if !errors.As(err, &gerr) {
				t.Fatalf("error is %T, want *GrammarError", err)
			}
		})
	}
}

func TestTree_Pretty(t *testing.T) {
	p := mustParser(t, testGrammar)

	tree, err := p.Parse(`pl.DataFrame({"x": [1,2,3]}).filter(x > 1)`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	pretty := tree.Pretty()
	for _, want := range []string{"dataframe_expression\n", "  DATAFRAME_CALL ", "  dataframe_chain\n", "    DF_METHOD_CALL "} {
		if !strings.Contains(pretty, want) {
			t.Fatalf("Pretty() missing %q:\n%s", want, pretty)
		}
	}
}

func TestParse_Deterministic(t *testing.T) {
	p := mustParser(t, testGrammar)
	snippet := `pl.DataFrame({"x": [1,2,3]}).lazy().select("x")`

	first, err := p.Parse(snippet)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	second, err := p.Parse(snippet)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if first.Pretty() != second.Pretty() {
		t.Fatalf("repeated Parse() disagrees:\n%s\nvs\n%s", first.Pretty(), second.Pretty())
	}
}
