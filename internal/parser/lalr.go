package parser

import (
	"fmt"
	"sort"
	"strings"
)

const (
	endToken  = "$END"
	acceptSym = "__accept"
)

type production struct {
	lhs string
	rhs []string
}

type nonterm struct {
	name      string
	inline    bool
	synthetic bool
}

// ruleSet is the desugared grammar: plain productions over terminal and
// nonterminal symbols, with repetition and grouping lowered onto synthetic
// nonterminals.
type ruleSet struct {
	g        *grammarSpec
	prods    []production
	byLhs    map[string][]int
	nonterms map[string]*nonterm
	counter  int
}

func desugar(g *grammarSpec) (*ruleSet, error) {
	rs := &ruleSet{
		g:        g,
		byLhs:    make(map[string][]int),
		nonterms: make(map[string]*nonterm),
	}

	// The augmented start production always sits at index 0.
	rs.nonterms[acceptSym] = &nonterm{name: acceptSym, synthetic: true}
	rs.addProd(acceptSym, []string{"start"})

	for _, rd := range g.rules {
		rs.nonterms[rd.name] = &nonterm{name: rd.name, inline: rd.inline}
	}
	for _, rd := range g.rules {
		for _, seq := range rd.alts {
			expanded, err := rs.expandSeq(rd, seq)
			if err != nil {
				return nil, err
			}
			for _, rhs := range expanded {
				rs.addProd(rd.name, rhs)
			}
		}
	}

	for _, p := range rs.prods {
		for _, sym := range p.rhs {
			if _, ok := rs.nonterms[sym]; ok {
				continue
			}
			if _, ok := g.termIndex[sym]; ok {
				continue
			}
			return nil, grammarErrf(0, "rule %s references undefined symbol %s", p.lhs, sym)
		}
	}
	return rs, nil
}

func (rs *ruleSet) addProd(lhs string, rhs []string) {
	rs.byLhs[lhs] = append(rs.byLhs[lhs], len(rs.prods))
	rs.prods = append(rs.prods, production{lhs: lhs, rhs: rhs})
}

// expandSeq lowers one alternative into plain symbol sequences. Optional
// elements fork the sequence; repeated elements get a left-recursive
// synthetic nonterminal whose children are later spliced into the parent.
func (rs *ruleSet) expandSeq(rd *ruleDef, seq []elem) ([][]string, error) {
	result := [][]string{{}}
	for _, e := range seq {
		sym, err := rs.elemSymbol(rd, e)
		if err != nil {
			return nil, err
		}
		switch e.suffix {
		case 0:
			result = appendSym(result, sym)
		case '?':
			forked := make([][]string, 0, len(result)*2)
			for _, rhs := range result {
				forked = append(forked, rhs)
				forked = append(forked, appendSym([][]string{rhs}, sym)...)
			}
			result = forked
		case '+':
			rep := rs.newSynthetic(rd.name, "plus")
			rs.addProd(rep, []string{sym})
			rs.addProd(rep, []string{rep, sym})
			result = appendSym(result, rep)
		default:
			return nil, grammarErrf(rd.line, "rule %s: unsupported suffix %q", rd.name, string(e.suffix))
		}
	}
	return result, nil
}

// elemSymbol resolves an element to the symbol it contributes. Groups that
// are not a bare reference become synthetic nonterminals.
func (rs *ruleSet) elemSymbol(rd *ruleDef, e elem) (string, error) {
	switch e.kind {
	case elemRef:
		return e.text, nil
	case elemGroup:
		if len(e.group) == 1 && len(e.group[0]) == 1 {
			inner := e.group[0][0]
			if inner.kind == elemRef && inner.suffix == 0 {
				return inner.text, nil
			}
		}
		grp := rs.newSynthetic(rd.name, "group")
		for _, seq := range e.group {
			expanded, err := rs.expandSeq(rd, seq)
			if err != nil {
				return "", err
			}
			for _, rhs := range expanded {
				rs.addProd(grp, rhs)
			}
		}
		return grp, nil
	default:
		return "", grammarErrf(rd.line, "rule %s: string literals are only allowed in terminal rules", rd.name)
	}
}

func (rs *ruleSet) newSynthetic(owner, kind string) string {
	name := fmt.Sprintf("__%s_%s%d", owner, kind, rs.counter)
	rs.counter++
	rs.nonterms[name] = &nonterm{name: name, synthetic: true}
	return name
}

func appendSym(seqs [][]string, sym string) [][]string {
	out := make([][]string, len(seqs))
	for i, rhs := range seqs {
		next := make([]string, 0, len(rhs)+1)
		next = append(next, rhs...)
		out[i] = append(next, sym)
	}
	return out
}

// ---- LALR(1) table construction ----
//
// Canonical LR(1) item sets are built first, then states with equal cores
// are merged. The grammar here is small enough that the canonical detour
// costs nothing and keeps the construction easy to follow.

type lrItem struct {
	prod int
	dot  int
	la   string
}

type actionKind int

const (
	actShift actionKind = iota
	actReduce
	actAccept
)

type action struct {
	kind   actionKind
	target int // shift: state, reduce: production
}

type lalrTable struct {
	actions []map[string]action
	gotos   []map[string]int
}

type tableBuilder struct {
	rs       *ruleSet
	nullable map[string]bool
	first    map[string]map[string]bool
}

func buildLALR(rs *ruleSet) (*lalrTable, error) {
	tb := &tableBuilder{rs: rs}
	tb.computeNullable()
	tb.computeFirst()

	type stateRec struct {
		items []lrItem
		trans map[string]int
	}

	startItems := tb.closure([]lrItem{{prod: 0, dot: 0, la: endToken}})
	states := []*stateRec{{items: startItems}}
	index := map[string]int{itemsKey(startItems): 0}

	for si := 0; si < len(states); si++ {
		st := states[si]
		st.trans = make(map[string]int)
		for _, sym := range nextSymbols(tb.rs, st.items) {
			moved := tb.gotoItems(st.items, sym)
			key := itemsKey(moved)
			ti, ok := index[key]
			if !ok {
				ti = len(states)
				index[key] = ti
				states = append(states, &stateRec{items: moved})
			}
			st.trans[sym] = ti
		}
	}

	// Merge canonical states sharing a core.
	coreIndex := make(map[string]int)
	merged := make([]int, len(states))
	var cores int
	for si, st := range states {
		key := coreKey(st.items)
		mi, ok := coreIndex[key]
		if !ok {
			mi = cores
			cores++
			coreIndex[key] = mi
		}
		merged[si] = mi
	}

	table := &lalrTable{
		actions: make([]map[string]action, cores),
		gotos:   make([]map[string]int, cores),
	}
	for i := range table.actions {
		table.actions[i] = make(map[string]action)
		table.gotos[i] = make(map[string]int)
	}

	for si, st := range states {
		mi := merged[si]
		for sym, ti := range st.trans {
			if _, isTerm := tb.rs.g.termIndex[sym]; isTerm {
				if err := setAction(table.actions[mi], sym, action{kind: actShift, target: merged[ti]}, mi); err != nil {
					return nil, err
				}
			} else {
				table.gotos[mi][sym] = merged[ti]
			}
		}
		for _, it := range st.items {
			prod := tb.rs.prods[it.prod]
			if it.dot < len(prod.rhs) {
				continue
			}
			act := action{kind: actReduce, target: it.prod}
			if it.prod == 0 {
				act = action{kind: actAccept}
			}
			if err := setAction(table.actions[mi], it.la, act, mi); err != nil {
				return nil, err
			}
		}
	}
	return table, nil
}

func setAction(m map[string]action, sym string, act action, state int) error {
	prev, ok := m[sym]
	if ok && prev != act {
		return grammarErrf(0, "not LALR(1): conflict in state %d on %s", state, sym)
	}
	m[sym] = act
	return nil
}

func (tb *tableBuilder) computeNullable() {
	tb.nullable = make(map[string]bool)
	for changed := true; changed; {
		changed = false
		for _, p := range tb.rs.prods {
			if tb.nullable[p.lhs] {
				continue
			}
			all := true
			for _, sym := range p.rhs {
				if !tb.nullable[sym] {
					all = false
					break
				}
			}
			if all {
				tb.nullable[p.lhs] = true
				changed = true
			}
		}
	}
}

func (tb *tableBuilder) computeFirst() {
	tb.first = make(map[string]map[string]bool)
	for name := range tb.rs.g.termIndex {
		tb.first[name] = map[string]bool{name: true}
	}
	for name := range tb.rs.nonterms {
		tb.first[name] = map[string]bool{}
	}
	for changed := true; changed; {
		changed = false
		for _, p := range tb.rs.prods {
			dst := tb.first[p.lhs]
			for _, sym := range p.rhs {
				for t := range tb.first[sym] {
					if !dst[t] {
						dst[t] = true
						changed = true
					}
				}
				if !tb.nullable[sym] {
					break
				}
			}
		}
	}
}

// firstOfSeq returns FIRST(syms, la): first terminals of the sequence, with
// la added when the whole sequence can derive empty.
func (tb *tableBuilder) firstOfSeq(syms []string, la string) []string {
	set := make(map[string]bool)
	exhausted := true
	for _, sym := range syms {
		for t := range tb.first[sym] {
			set[t] = true
		}
		if !tb.nullable[sym] {
			exhausted = false
			break
		}
	}
	if exhausted {
		set[la] = true
	}
	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

func (tb *tableBuilder) closure(items []lrItem) []lrItem {
	seen := make(map[lrItem]bool, len(items))
	queue := make([]lrItem, 0, len(items))
	for _, it := range items {
		if !seen[it] {
			seen[it] = true
			queue = append(queue, it)
		}
	}
	for qi := 0; qi < len(queue); qi++ {
		it := queue[qi]
		prod := tb.rs.prods[it.prod]
		if it.dot >= len(prod.rhs) {
			continue
		}
		next := prod.rhs[it.dot]
		if _, isNonterm := tb.rs.nonterms[next]; !isNonterm {
			continue
		}
		las := tb.firstOfSeq(prod.rhs[it.dot+1:], it.la)
		for _, pi := range tb.rs.byLhs[next] {
			for _, la := range las {
				cand := lrItem{prod: pi, dot: 0, la: la}
				if !seen[cand] {
					seen[cand] = true
					queue = append(queue, cand)
				}
			}
		}
	}
	sortItems(queue)
	return queue
}

func (tb *tableBuilder) gotoItems(items []lrItem, sym string) []lrItem {
	var moved []lrItem
	for _, it := range items {
		prod := tb.rs.prods[it.prod]
		if it.dot < len(prod.rhs) && prod.rhs[it.dot] == sym {
			moved = append(moved, lrItem{prod: it.prod, dot: it.dot + 1, la: it.la})
		}
	}
	return tb.closure(moved)
}

// nextSymbols lists the symbols a state can transition on, sorted for
// deterministic state numbering.
func nextSymbols(rs *ruleSet, items []lrItem) []string {
	set := make(map[string]bool)
	for _, it := range items {
		prod := rs.prods[it.prod]
		if it.dot < len(prod.rhs) {
			set[prod.rhs[it.dot]] = true
		}
	}
	out := make([]string, 0, len(set))
	for sym := range set {
		out = append(out, sym)
	}
	sort.Strings(out)
	return out
}

func sortItems(items []lrItem) {
	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.prod != b.prod {
			return a.prod < b.prod
		}
		if a.dot != b.dot {
			return a.dot < b.dot
		}
		return a.la < b.la
	})
}

func itemsKey(items []lrItem) string {
	var b strings.Builder
	for _, it := range items {
		fmt.Fprintf(&b, "%d.%d.%s;", it.prod, it.dot, it.la)
	}
	return b.String()
}

func coreKey(items []lrItem) string {
	var b strings.Builder
	last := lrItem{prod: -1, dot: -1}
	for _, it := range items {
		if it.prod == last.prod && it.dot == last.dot {
			continue
		}
		last = it
		fmt.Fprintf(&b, "%d.%d;", it.prod, it.dot)
	}
	return b.String()
}
