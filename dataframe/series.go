package dataframe

import "fmt"

// Series is a named column of values.
type Series struct {
	name   string
	values []any
}

// NewSeries creates a column from a name and its values.
func NewSeries(name string, values ...any) Series {
	return Series{name: name, values: values}
}

// Name returns the column name.
func (s Series) Name() string {
	return s.name
}

// Len returns the number of values in the column.
func (s Series) Len() int {
	return len(s.values)
}

// Values returns a copy of the column values.
func (s Series) Values() []any {
	out := make([]any, len(s.values))
	copy(out, s.values)
	return out
}

// Value returns the value at index i.
func (s Series) Value(i int) any {
	return s.values[i]
}

// Rename returns a copy of the column under a new name.
func (s Series) Rename(name string) Series {
	return Series{name: name, values: s.values}
}

// String renders the column for debugging output.
func (s Series) String() string {
	return fmt.Sprintf("Series(%s: %v)", s.name, s.values)
}
