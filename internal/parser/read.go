// Package parser compiles synthesized grammar text into a deterministic
// LALR(1) parser and runs it over input strings.
//
// The accepted grammar format pairs upper-case terminal definitions built
// from string literals, /regex/ fragments and references to other
// terminals, with lower-case rules supporting alternation, optional `?`,
// grouping and one-or-more `+`. A leading `?` on a rule name inlines
// single-child nodes in the parse tree.
package parser

import (
	"regexp"
	"strings"
	"unicode"
)

type elemKind int

const (
	elemRef elemKind = iota
	elemLit
	elemRegex
	elemGroup
)

// elem is one item on a definition's right-hand side.
type elem struct {
	kind   elemKind
	text   string
	group  [][]elem
	suffix byte // 0, '?' or '+'
}

type terminalDef struct {
	name  string
	alts  [][]elem
	order int
	line  int

	re          *regexp.Regexp
	literalOnly bool
}

type ruleDef struct {
	name   string
	inline bool
	alts   [][]elem
	line   int
}

type grammarSpec struct {
	terminals []*terminalDef
	termIndex map[string]*terminalDef
	rules     []*ruleDef
	ruleIndex map[string]*ruleDef
}

// readGrammar parses grammar text into terminal and rule definitions.
func readGrammar(text string) (*grammarSpec, error) {
	g := &grammarSpec{
		termIndex: make(map[string]*terminalDef),
		ruleIndex: make(map[string]*ruleDef),
	}

	// Remembers which definition a continuation line extends.
	var lastTerm *terminalDef
	var lastRule *ruleDef

	for ln, raw := range strings.Split(text, "\n") {
		line := ln + 1
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" || strings.HasPrefix(trimmed, "//") {
			continue
		}

		if strings.HasPrefix(trimmed, "|") {
			alts, err := parseAlternation(&lineScanner{src: trimmed[1:], line: line})
			if err != nil {
				return nil, err
			}
			switch {
			case lastRule != nil:
				lastRule.alts = append(lastRule.alts, alts...)
			case lastTerm != nil:
				lastTerm.alts = append(lastTerm.alts, alts...)
			default:
				return nil, grammarErrf(line, "continuation with no preceding definition")
			}
			continue
		}

		name, body, ok := strings.Cut(trimmed, ":")
		if !ok {
			return nil, grammarErrf(line, "expected NAME: definition, got %q", trimmed)
		}
		name = strings.TrimSpace(name)
		inline := strings.HasPrefix(name, "?")
		name = strings.TrimPrefix(name, "?")
		if !validName(name) {
			return nil, grammarErrf(line, "invalid definition name %q", name)
		}

		alts, err := parseAlternation(&lineScanner{src: body, line: line})
		if err != nil {
			return nil, err
		}

		if isTerminalName(name) {
			if inline {
				return nil, grammarErrf(line, "terminal %q cannot be marked inline", name)
			}
			if _, dup := g.termIndex[name]; dup {
				return nil, grammarErrf(line, "duplicate terminal %q", name)
			}
			t := &terminalDef{name: name, alts: alts, order: len(g.terminals), line: line}
			g.terminals = append(g.terminals, t)
			g.termIndex[name] = t
			lastTerm, lastRule = t, nil
			continue
		}

		if _, dup := g.ruleIndex[name]; dup {
			return nil, grammarErrf(line, "duplicate rule %q", name)
		}
		r := &ruleDef{name: name, inline: inline, alts: alts, line: line}
		g.rules = append(g.rules, r)
		g.ruleIndex[name] = r
		lastTerm, lastRule = nil, r
	}

	if len(g.terminals) == 0 {
		return nil, grammarErrf(0, "no terminal definitions")
	}
	if _, ok := g.ruleIndex["start"]; !ok {
		return nil, grammarErrf(0, "no start rule")
	}
	return g, nil
}

func isTerminalName(name string) bool {
	r := rune(name[0])
	return unicode.IsUpper(r)
}

func validName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return true
}

// lineScanner walks one definition body.
type lineScanner struct {
	src  string
	pos  int
	line int
}

func (s *lineScanner) skipSpaces() {
	for s.pos < len(s.src) && (s.src[s.pos] == ' ' || s.src[s.pos] == '\t') {
		s.pos++
	}
}

func (s *lineScanner) peek() (byte, bool) {
	s.skipSpaces()
	if s.pos >= len(s.src) {
		return 0, false
	}
	return s.src[s.pos], true
}

// parseAlternation reads sequences separated by | until end of line or a
// closing parenthesis.
func parseAlternation(s *lineScanner) ([][]elem, error) {
	var alts [][]elem
	seq := []elem{}
	for {
		c, ok := s.peek()
		if !ok || c == ')' {
			break
		}
		switch {
		case c == '|':
			s.pos++
			alts = append(alts, seq)
			seq = []elem{}
		case c == '"':
			lit, err := s.delimited('"')
			if err != nil {
				return nil, err
			}
			seq = append(seq, elem{kind: elemLit, text: lit})
		case c == '/':
			rx, err := s.delimited('/')
			if err != nil {
				return nil, err
			}
			seq = append(seq, elem{kind: elemRegex, text: rx})
		case c == '(':
			s.pos++
			group, err := parseAlternation(s)
			if err != nil {
				return nil, err
			}
			if c, ok := s.peek(); !ok || c != ')' {
				return nil, grammarErrf(s.line, "unclosed group")
			}
			s.pos++
			seq = append(seq, elem{kind: elemGroup, group: group, suffix: s.suffix()})
		case c == '?' || c == '+':
			if len(seq) == 0 {
				return nil, grammarErrf(s.line, "suffix %q with nothing to repeat", string(c))
			}
			s.pos++
			seq[len(seq)-1].suffix = c
		default:
			name := s.ident()
			if name == "" {
				return nil, grammarErrf(s.line, "unexpected character %q", string(c))
			}
			seq = append(seq, elem{kind: elemRef, text: name, suffix: s.suffix()})
		}
	}
	return append(alts, seq), nil
}

// delimited reads a "..." or /.../ fragment, honoring backslash escapes
// inside regexes.
func (s *lineScanner) delimited(delim byte) (string, error) {
	s.pos++ // opening delimiter
	start := s.pos
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		if c == '\\' && delim == '/' {
			s.pos += 2
			continue
		}
		if c == delim {
			text := s.src[start:s.pos]
			s.pos++
			return text, nil
		}
		s.pos++
	}
	return "", grammarErrf(s.line, "unterminated %q fragment", string(delim))
}

func (s *lineScanner) ident() string {
	start := s.pos
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		if c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' {
			s.pos++
			continue
		}
		break
	}
	return s.src[start:s.pos]
}

func (s *lineScanner) suffix() byte {
	if s.pos < len(s.src) && (s.src[s.pos] == '?' || s.src[s.pos] == '+') {
		c := s.src[s.pos]
		s.pos++
		return c
	}
	return 0
}

// compileTerminals assembles one anchored regular expression per terminal,
// expanding references to other terminals in place.
func (g *grammarSpec) compileTerminals() error {
	for _, t := range g.terminals {
		pattern, literalOnly, err := g.terminalPattern(t, map[string]bool{})
		if err != nil {
			return err
		}
		re, rerr := regexp.Compile("^(?:" + pattern + ")")
		if rerr != nil {
			return grammarErrf(t.line, "terminal %s: bad pattern: %v", t.name, rerr)
		}
		t.re = re
		t.literalOnly = literalOnly
	}
	return nil
}

func (g *grammarSpec) terminalPattern(t *terminalDef, visiting map[string]bool) (string, bool, error) {
	if visiting[t.name] {
		return "", false, grammarErrf(t.line, "terminal %s is defined in terms of itself", t.name)
	}
	visiting[t.name] = true
	defer delete(visiting, t.name)

	literalOnly := true
	altPatterns := make([]string, 0, len(t.alts))
	for _, seq := range t.alts {
		var b strings.Builder
		for _, e := range seq {
			if e.suffix != 0 || e.kind == elemGroup {
				return "", false, grammarErrf(t.line, "terminal %s: groups and suffixes are not supported in terminal rules", t.name)
			}
			switch e.kind {
			case elemLit:
				b.WriteString(regexp.QuoteMeta(e.text))
			case elemRegex:
				literalOnly = false
				b.WriteString("(?:" + e.text + ")")
			case elemRef:
				ref, ok := g.termIndex[e.text]
				if !ok {
					return "", false, grammarErrf(t.line, "terminal %s references undefined terminal %s", t.name, e.text)
				}
				sub, subLit, err := g.terminalPattern(ref, visiting)
				if err != nil {
					return "", false, err
				}
				literalOnly = literalOnly && subLit
				b.WriteString("(?:" + sub + ")")
			}
		}
		altPatterns = append(altPatterns, "(?:"+b.String()+")")
	}
	return strings.Join(altPatterns, "|"), literalOnly, nil
}
