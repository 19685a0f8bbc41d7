package dataframe

import (
	"reflect"
	"testing"
)

func intCol(values ...int) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func TestFilterSelect(t *testing.T) {
	df := New(map[string][]any{
		"x": intCol(1, 2, 3),
		"y": intCol(10, 20, 30),
	})

	got := df.Filter(Col("x").Gt(Lit(1))).Select("y")
	if got.Height() != 2 {
		t.Fatalf("Height() = %d, want 2", got.Height())
	}
	if !reflect.DeepEqual(got.Columns(), []string{"y"}) {
		t.Fatalf("Columns() = %v, want [y]", got.Columns())
	}
	col, err := got.Column("y")
	if err != nil {
		t.Fatalf("Column() error = %v", err)
	}
	if !reflect.DeepEqual(col.Values(), intCol(20, 30)) {
		t.Fatalf("values = %v, want [20 30]", col.Values())
	}
}

func TestLazyCollectMatchesEager(t *testing.T) {
	df := New(map[string][]any{"x": intCol(1, 2, 3)})

	eager := df.Filter(Col("x").Gt(Lit(1))).Select("x")
	lazy := df.Lazy().Filter(Col("x").Gt(Lit(1))).Select("x").Collect()

	ec, _ := eager.Column("x")
	lc, err := lazy.Column("x")
	if err != nil {
		t.Fatalf("Column() error = %v", err)
	}
	if !reflect.DeepEqual(ec.Values(), lc.Values()) {
		t.Fatalf("lazy values = %v, eager values = %v", lc.Values(), ec.Values())
	}
}

func TestGroupByCount(t *testing.T) {
	df := New(map[string][]any{
		"k": {"a", "b", "a", "a"},
	})

	got := df.GroupBy("k").Count()
	if got.Height() != 2 {
		t.Fatalf("Height() = %d, want 2", got.Height())
	}
	counts, err := got.Column("count")
	if err != nil {
		t.Fatalf("Column() error = %v", err)
	}
	// First-seen group order: a before b.
	if !reflect.DeepEqual(counts.Values(), intCol(3, 1)) {
		t.Fatalf("counts = %v, want [3 1]", counts.Values())
	}
}

func TestJoin(t *testing.T) {
	left := New(map[string][]any{
		"id": intCol(1, 2, 3),
		"x":  intCol(10, 20, 30),
	})
	right := New(map[string][]any{
		"id": intCol(2, 3),
		"y":  intCol(200, 300),
	})

	got := left.Join(right, "id")
	if got.Height() != 2 {
		t.Fatalf("Height() = %d, want 2", got.Height())
	}
	y, err := got.Column("y")
	if err != nil {
		t.Fatalf("Column() error = %v", err)
	}
	if !reflect.DeepEqual(y.Values(), intCol(200, 300)) {
		t.Fatalf("joined y = %v, want [200 300]", y.Values())
	}
}

func TestWithColumn(t *testing.T) {
	df := New(map[string][]any{"x": intCol(1, 2)})

	got := df.WithColumn(Col("x").Mul(Lit(2)).Alias("doubled"))
	col, err := got.Column("doubled")
	if err != nil {
		t.Fatalf("Column() error = %v", err)
	}
	if !reflect.DeepEqual(col.Values(), []any{2.0, 4.0}) {
		t.Fatalf("doubled = %v, want [2 4]", col.Values())
	}
}

func TestExprIdempotentEval(t *testing.T) {
	df := New(map[string][]any{"x": intCol(1, 2, 3)})
	pred := Col("x").Gt(Lit(1))

	first := df.Filter(pred).Height()
	second := df.Filter(pred).Height()
	if first != second {
		t.Fatalf("repeated Filter() disagrees: %d vs %d", first, second)
	}
}
