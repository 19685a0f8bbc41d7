// Package dataframe is a small eager/lazy column store. It is the
// introspection target for the grammar generator: its exported method set
// is what discovery walks at runtime.
package dataframe

import (
	"fmt"
	"sort"
)

// DataFrame is an eagerly evaluated table of named columns.
type DataFrame struct {
	columns []Series
}

// New builds a frame from a column-name to values mapping. Columns are
// ordered by name so construction is deterministic.
func New(data map[string][]any) DataFrame {
	names := make([]string, 0, len(data))
	for name := range data {
		names = append(names, name)
	}
	sort.Strings(names)

	columns := make([]Series, 0, len(names))
	for _, name := range names {
		columns = append(columns, NewSeries(name, data[name]...))
	}
	return DataFrame{columns: columns}
}

// FromSeries builds a frame from pre-built columns, keeping their order.
func FromSeries(columns ...Series) DataFrame {
	out := make([]Series, len(columns))
	copy(out, columns)
	return DataFrame{columns: out}
}

// Height returns the number of rows.
func (df DataFrame) Height() int {
	if len(df.columns) == 0 {
		return 0
	}
	return df.columns[0].Len()
}

// Width returns the number of columns.
func (df DataFrame) Width() int {
	return len(df.columns)
}

// Columns returns the column names in order.
func (df DataFrame) Columns() []string {
	names := make([]string, len(df.columns))
	for i, c := range df.columns {
		names[i] = c.Name()
	}
	return names
}

// Column returns the named column.
func (df DataFrame) Column(name string) (Series, error) {
	for _, c := range df.columns {
		if c.Name() == name {
			return c, nil
		}
	}
	return Series{}, fmt.Errorf("column %q not found", name)
}

// Select returns a frame holding only the named columns, in the given order.
// Unknown names are dropped.
func (df DataFrame) Select(names ...string) DataFrame {
	columns := make([]Series, 0, len(names))
	for _, name := range names {
		c, err := df.Column(name)
		if err != nil {
			continue
		}
		columns = append(columns, c)
	}
	return DataFrame{columns: columns}
}

// Filter returns the rows for which pred evaluates to true.
func (df DataFrame) Filter(pred Expr) DataFrame {
	keep := make([]int, 0, df.Height())
	for i := 0; i < df.Height(); i++ {
		if truthy(pred.eval(df.row(i))) {
			keep = append(keep, i)
		}
	}
	return df.take(keep)
}

// WithColumn returns a frame with one column appended, computed from expr.
// The expression must carry an alias for the new column's name.
func (df DataFrame) WithColumn(expr Expr) DataFrame {
	values := make([]any, df.Height())
	for i := 0; i < df.Height(); i++ {
		values[i] = expr.eval(df.row(i))
	}
	name := expr.name
	if name == "" {
		name = fmt.Sprintf("column_%d", df.Width())
	}
	columns := make([]Series, len(df.columns), len(df.columns)+1)
	copy(columns, df.columns)
	columns = append(columns, NewSeries(name, values...))
	return DataFrame{columns: columns}
}

// GroupBy starts a grouped aggregation over the named key columns.
func (df DataFrame) GroupBy(names ...string) GroupBy {
	return GroupBy{frame: df, keys: names}
}

// Join inner-joins two frames on one shared column.
func (df DataFrame) Join(other DataFrame, on string) DataFrame {
	left, err := df.Column(on)
	if err != nil {
		return DataFrame{}
	}
	right, err := other.Column(on)
	if err != nil {
		return DataFrame{}
	}

	var leftRows, rightRows []int
	for i := 0; i < left.Len(); i++ {
		for j := 0; j < right.Len(); j++ {
			if compare(left.Value(i), right.Value(j)) == 0 {
				leftRows = append(leftRows, i)
				rightRows = append(rightRows, j)
			}
		}
	}

	joined := df.take(leftRows)
	for _, c := range other.columns {
		if c.Name() == on {
			continue
		}
		values := make([]any, len(rightRows))
		for i, j := range rightRows {
			values[i] = c.Value(j)
		}
		joined.columns = append(joined.columns, NewSeries(c.Name(), values...))
	}
	return joined
}

// Lazy converts the frame into a deferred-evaluation LazyFrame.
func (df DataFrame) Lazy() LazyFrame {
	return LazyFrame{src: df}
}

// String renders a short shape summary.
func (df DataFrame) String() string {
	return fmt.Sprintf("DataFrame(%d x %d: %v)", df.Height(), df.Width(), df.Columns())
}

func (df DataFrame) row(i int) map[string]any {
	row := make(map[string]any, len(df.columns))
	for _, c := range df.columns {
		row[c.Name()] = c.Value(i)
	}
	return row
}

func (df DataFrame) take(rows []int) DataFrame {
	columns := make([]Series, len(df.columns))
	for ci, c := range df.columns {
		values := make([]any, len(rows))
		for i, ri := range rows {
			values[i] = c.Value(ri)
		}
		columns[ci] = NewSeries(c.Name(), values...)
	}
	return DataFrame{columns: columns}
}

// GroupBy is a pending grouped aggregation.
type GroupBy struct {
	frame DataFrame
	keys  []string
}

// Count aggregates group sizes into a "count" column.
func (g GroupBy) Count() DataFrame {
	type group struct {
		key   []any
		count int
	}

	var order []string
	groups := make(map[string]*group)
	for i := 0; i < g.frame.Height(); i++ {
		row := g.frame.row(i)
		key := make([]any, len(g.keys))
		for ki, k := range g.keys {
			key[ki] = row[k]
		}
		id := fmt.Sprint(key...)
		if _, ok := groups[id]; !ok {
			groups[id] = &group{key: key}
			order = append(order, id)
		}
		groups[id].count++
	}

	columns := make([]Series, 0, len(g.keys)+1)
	for ki, k := range g.keys {
		values := make([]any, len(order))
		for i, id := range order {
			values[i] = groups[id].key[ki]
		}
		columns = append(columns, NewSeries(k, values...))
	}
	counts := make([]any, len(order))
	for i, id := range order {
		counts[i] = groups[id].count
	}
	columns = append(columns, NewSeries("count", counts...))
	return DataFrame{columns: columns}
}
