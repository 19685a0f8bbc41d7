package parser

import (
	"fmt"
	"sort"
)

// Parser is a compiled LALR(1) parser for one grammar text.
type Parser struct {
	spec  *grammarSpec
	rules *ruleSet
	table *lalrTable
}

// New compiles grammar text into a parser. Invalid grammars fail with a
// *GrammarError; inputs rejected later by Parse fail with a *SyntaxError,
// so the two stages stay distinguishable.
func New(text string) (*Parser, error) {
	spec, err := readGrammar(text)
	if err != nil {
		return nil, err
	}
	if err := spec.compileTerminals(); err != nil {
		return nil, err
	}
	rules, err := desugar(spec)
	if err != nil {
		return nil, err
	}
	table, err := buildLALR(rules)
	if err != nil {
		return nil, err
	}
	return &Parser{spec: spec, rules: rules, table: table}, nil
}

type token struct {
	name string
	text string
	pos  int
}

// Parse runs the input through the automaton and returns its parse tree.
func (p *Parser) Parse(input string) (*Tree, error) {
	states := []int{0}
	var nodes []*Tree
	pos := 0
	var tok *token

	for {
		st := states[len(states)-1]
		acts := p.table.actions[st]

		if tok == nil {
			next, err := p.lex(input, pos, acts)
			if err != nil {
				return nil, err
			}
			tok = next
		}

		act, ok := acts[tok.name]
		if !ok {
			return nil, &SyntaxError{
				Pos:      tok.pos,
				Msg:      "unexpected " + describeToken(tok),
				Expected: expectedNames(acts),
			}
		}

		switch act.kind {
		case actShift:
			states = append(states, act.target)
			nodes = append(nodes, &Tree{Name: tok.name, Token: tok.text})
			pos = tok.pos + len(tok.text)
			tok = nil

		case actReduce:
			prod := p.rules.prods[act.target]
			n := len(prod.rhs)
			popped := nodes[len(nodes)-n:]
			nodes = nodes[:len(nodes)-n]
			states = states[:len(states)-n]

			next, ok := p.table.gotos[states[len(states)-1]][prod.lhs]
			if !ok {
				panic(fmt.Sprintf("bug: no goto for %s in state %d", prod.lhs, states[len(states)-1]))
			}
			states = append(states, next)
			nodes = append(nodes, p.buildNode(prod.lhs, popped))

		case actAccept:
			if len(nodes) != 1 {
				panic(fmt.Sprintf("bug: %d nodes left at accept", len(nodes)))
			}
			return nodes[0], nil
		}
	}
}

// lex matches the next token at pos. Only terminals with an action in the
// current state are candidates, so tokens shared between branches (a
// .filter() call in an eager or a lazy chain) resolve by parser context.
// Longest match wins; ties prefer all-literal terminals, then definition
// order.
func (p *Parser) lex(input string, pos int, acts map[string]action) (*token, error) {
	if pos >= len(input) {
		return &token{name: endToken, pos: pos}, nil
	}

	var best *terminalDef
	bestLen := 0
	for _, t := range p.spec.terminals {
		if _, ok := acts[t.name]; !ok {
			continue
		}
		loc := t.re.FindStringIndex(input[pos:])
		if loc == nil || loc[1] == 0 {
			continue
		}
		switch {
		case loc[1] > bestLen:
			best, bestLen = t, loc[1]
		case loc[1] == bestLen && best != nil && t.literalOnly && !best.literalOnly:
			best = t
		}
	}
	if best == nil {
		return nil, &SyntaxError{
			Pos:      pos,
			Msg:      "no terminal matches input",
			Expected: expectedNames(acts),
		}
	}
	return &token{name: best.name, text: input[pos : pos+bestLen], pos: pos}, nil
}

// buildNode assembles the tree node for one reduction. Synthetic
// repetition helpers splice into their parent; inline rules collapse
// single-child nodes.
func (p *Parser) buildNode(lhs string, popped []*Tree) *Tree {
	children := make([]*Tree, 0, len(popped))
	for _, c := range popped {
		if c.splice {
			children = append(children, c.Children...)
		} else {
			children = append(children, c)
		}
	}

	nt := p.rules.nonterms[lhs]
	if nt.synthetic {
		return &Tree{Name: lhs, Children: children, splice: true}
	}
	if nt.inline && len(children) == 1 {
		return children[0]
	}
	return &Tree{Name: lhs, Children: children}
}

func describeToken(tok *token) string {
	if tok.name == endToken {
		return "end of input"
	}
	return fmt.Sprintf("%s %q", tok.name, tok.text)
}

func expectedNames(acts map[string]action) []string {
	out := make([]string, 0, len(acts))
	for name := range acts {
		if name == endToken {
			name = "end of input"
		}
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
