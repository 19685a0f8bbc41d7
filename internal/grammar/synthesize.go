// Package grammar turns a discovered API map into the grammar text for a
// polars-like method-chaining DSL.
package grammar

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/lmmx/dslgen/internal/introspect"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Class names whose methods feed each role.
const (
	builderClass = "DataFrame"
	lazyClass    = "LazyFrame"
)

// Spec is the structured grammar description. It is assembled from the API
// map and serialized separately, so the text form stays mechanical.
type Spec struct {
	// Methods lists one terminal rule per recognized method, in emission
	// order: builder allow-list order first, then lazy-only additions.
	Methods []MethodRule
	// Builder and Lazy list the terminal names for each role's alternation.
	Builder []string
	Lazy    []string
}

// MethodRule is one per-method terminal rule.
type MethodRule struct {
	Terminal string
	Method   string
}

// Synthesizer builds grammar text from a discovered API map.
type Synthesizer interface {
	Plan(api introspect.APIMap) Spec
	Synthesize(api introspect.APIMap) (string, error)
}

type synthesizerImpl struct {
	lists AllowLists
	tmpl  *template.Template
}

// New creates a synthesizer using the given allow-lists.
func New(lists AllowLists) Synthesizer {
	tmpl := template.Must(template.New("").Funcs(template.FuncMap{
		"alternation": alternation,
	}).ParseFS(templateFS, "templates/*.tmpl"))
	return &synthesizerImpl{lists: lists, tmpl: tmpl}
}

// Plan intersects each role's allow-list with the methods discovered for
// the corresponding class. Go method names are lowered to the DSL surface
// before matching (Filter -> filter, GroupBy -> groupby). Emission order is
// allow-list order, which makes the output byte-stable for a fixed API map.
func (s *synthesizerImpl) Plan(api introspect.APIMap) Spec {
	builder := intersect(s.lists.Builder, api[builderClass])
	lazy := intersect(s.lists.Lazy, api[lazyClass])

	spec := Spec{
		Builder: terminalNames(builder),
		Lazy:    terminalNames(lazy),
	}

	seen := make(map[string]bool, len(builder)+len(lazy))
	for _, m := range builder {
		seen[m] = true
		spec.Methods = append(spec.Methods, MethodRule{Terminal: terminalName(m), Method: m})
	}
	for _, m := range lazy {
		if seen[m] {
			continue
		}
		seen[m] = true
		spec.Methods = append(spec.Methods, MethodRule{Terminal: terminalName(m), Method: m})
	}
	return spec
}

func (s *synthesizerImpl) Synthesize(api introspect.APIMap) (string, error) {
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, "grammar.tmpl", s.Plan(api)); err != nil {
		return "", fmt.Errorf("render grammar: %w", err)
	}
	return buf.String(), nil
}

// intersect keeps the allowed names actually discovered, in allow-list
// order. The discovered set is name-matched case-insensitively via
// lowering; duplicates after lowering collapse.
func intersect(allowed []string, methods introspect.MethodMap) []string {
	discovered := make(map[string]bool, len(methods))
	for name := range methods {
		discovered[strings.ToLower(name)] = true
	}

	out := make([]string, 0, len(allowed))
	for _, name := range allowed {
		if discovered[name] {
			out = append(out, name)
		}
	}
	return out
}

func terminalName(method string) string {
	return strings.ToUpper(method)
}

func terminalNames(methods []string) []string {
	out := make([]string, len(methods))
	for i, m := range methods {
		out[i] = terminalName(m)
	}
	return out
}

// alternation joins a role's terminals for its alternation rule. An empty
// role gets an unsatisfiable placeholder pattern so the grammar still
// compiles while the branch can never match real input.
func alternation(terminals []string, placeholder string) string {
	if len(terminals) == 0 {
		return "/" + placeholder + "/"
	}
	return strings.Join(terminals, " | ")
}
