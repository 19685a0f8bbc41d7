package introspect

import (
	"testing"

	"github.com/lmmx/dslgen/dataframe"
)

func testInspector() *ReflectInspector {
	ins := NewReflectInspector()
	ins.Register("dataframe",
		dataframe.DataFrame{},
		dataframe.LazyFrame{},
		dataframe.Expr{},
	)
	return ins
}

func TestDiscover_ReflectAdapter(t *testing.T) {
	api, err := Discover(testInspector(), "dataframe", []string{"DataFrame", "LazyFrame", "Expr"})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	df, ok := api["DataFrame"]
	if !ok {
		t.Fatal("DataFrame not found in API map")
	}
	for _, method := range []string{"Filter", "Select", "Lazy", "GroupBy"} {
		if _, ok := df[method]; !ok {
			t.Fatalf("DataFrame method %q not discovered", method)
		}
	}
	if got := df["Lazy"]; got.Type != "LazyFrame" || !got.Declared {
		t.Fatalf("Lazy return = %#v, want declared LazyFrame", got)
	}
	if got := df["Filter"]; got.Type != "DataFrame" {
		t.Fatalf("Filter return = %#v, want DataFrame", got)
	}
	if got := df["Columns"]; got.Type != "[]string" {
		t.Fatalf("Columns return = %#v, want opaque []string", got)
	}

	lf, ok := api["LazyFrame"]
	if !ok {
		t.Fatal("LazyFrame not found in API map")
	}
	if got := lf["Collect"]; got.Type != "DataFrame" {
		t.Fatalf("Collect return = %#v, want DataFrame", got)
	}
}

func TestDiscover_OmitsUnknownClass(t *testing.T) {
	api, err := Discover(testInspector(), "dataframe", []string{"DataFrame", "NoSuchClass"})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if _, ok := api["NoSuchClass"]; ok {
		t.Fatal("unresolvable class should be omitted, not present")
	}
	if _, ok := api["DataFrame"]; !ok {
		t.Fatal("DataFrame should still be present")
	}
}

func TestDiscover_UnregisteredLibraryFails(t *testing.T) {
	_, err := Discover(NewReflectInspector(), "polars", []string{"DataFrame"})
	if err == nil {
		t.Fatal("expected error for unregistered library, got nil")
	}
}

func TestReflectInspector_RejectsUnnamedExemplar(t *testing.T) {
	ins := NewReflectInspector()
	ins.Register("bad", map[string]int{})
	if _, err := ins.Load("bad"); err == nil {
		t.Fatal("expected error for unnamed exemplar type, got nil")
	}
}
