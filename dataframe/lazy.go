package dataframe

type lazyOpKind int

const (
	opFilter lazyOpKind = iota
	opSelect
	opGroupByCount
)

type lazyOp struct {
	kind  lazyOpKind
	pred  Expr
	names []string
}

// LazyFrame is a deferred plan over a source frame. Operations queue up and
// run only on Collect.
type LazyFrame struct {
	src DataFrame
	ops []lazyOp
}

// Filter defers a row filter.
func (lf LazyFrame) Filter(pred Expr) LazyFrame {
	return lf.with(lazyOp{kind: opFilter, pred: pred})
}

// Select defers a column projection.
func (lf LazyFrame) Select(names ...string) LazyFrame {
	return lf.with(lazyOp{kind: opSelect, names: names})
}

// GroupBy defers a grouped count over the named key columns.
func (lf LazyFrame) GroupBy(names ...string) LazyFrame {
	return lf.with(lazyOp{kind: opGroupByCount, names: names})
}

// Collect runs the queued plan and returns the materialized frame.
func (lf LazyFrame) Collect() DataFrame {
	df := lf.src
	for _, op := range lf.ops {
		switch op.kind {
		case opFilter:
			df = df.Filter(op.pred)
		case opSelect:
			df = df.Select(op.names...)
		case opGroupByCount:
			df = df.GroupBy(op.names...).Count()
		}
	}
	return df
}

func (lf LazyFrame) with(op lazyOp) LazyFrame {
	ops := make([]lazyOp, len(lf.ops), len(lf.ops)+1)
	copy(ops, lf.ops)
	return LazyFrame{src: lf.src, ops: append(ops, op)}
}
