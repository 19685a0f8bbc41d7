package grammar

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v2"
)

//go:embed allowlists.yaml
var allowlistYAML []byte

// AllowLists holds the hand-maintained method names per role, in emission
// order. Discovery is filtered against these; nothing outside them reaches
// the grammar.
type AllowLists struct {
	Builder []string `yaml:"builder"`
	Lazy    []string `yaml:"lazy"`
}

// DefaultAllowLists loads the embedded role allow-lists.
func DefaultAllowLists() AllowLists {
	var lists AllowLists
	if err := yaml.Unmarshal(allowlistYAML, &lists); err != nil {
		panic(fmt.Sprintf("grammar: embedded allowlists.yaml is invalid: %v", err))
	}
	return lists
}
