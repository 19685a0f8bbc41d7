package parser

import (
	"fmt"
	"strings"
)

// GrammarError reports grammar text the parser builder cannot turn into an
// LALR automaton. It is a construction-time failure, distinct from
// SyntaxError.
type GrammarError struct {
	Line int
	Msg  string
}

func (e *GrammarError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("grammar: line %d: %s", e.Line, e.Msg)
	}
	return "grammar: " + e.Msg
}

// SyntaxError reports an input string outside the recognized language.
type SyntaxError struct {
	Pos      int
	Msg      string
	Expected []string
}

func (e *SyntaxError) Error() string {
	if len(e.Expected) == 0 {
		return fmt.Sprintf("syntax error at offset %d: %s", e.Pos, e.Msg)
	}
	return fmt.Sprintf(
		"syntax error at offset %d: %s (expected %s)",
		e.Pos, e.Msg, strings.Join(e.Expected, ", "),
	)
}

func grammarErrf(line int, format string, args ...any) *GrammarError {
	return &GrammarError{Line: line, Msg: fmt.Sprintf(format, args...)}
}
