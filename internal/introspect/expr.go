package introspect

import "strings"

// TypeExpr is a return-type annotation in one of three shapes: a plain
// name, a dotted attribute chain, or an opaque rendering of anything else.
type TypeExpr interface {
	typeExpr()
}

// NameExpr is a bare type name, e.g. "LazyFrame".
type NameExpr struct {
	Name string
}

// AttrExpr is a dotted attribute chain, e.g. "time.Time". Values are
// outermost-first and each is itself a NameExpr or a nested AttrExpr.
type AttrExpr struct {
	Values []TypeExpr
}

// OpaqueExpr holds the display form of any other expression shape, e.g. a
// slice or generic type. Normalization never fails on these; it degrades to
// the stored string.
type OpaqueExpr struct {
	Repr string
}

func (NameExpr) typeExpr()   {}
func (AttrExpr) typeExpr()   {}
func (OpaqueExpr) typeExpr() {}

// Normalize flattens a return-type expression into a dotted string. The
// second result is false when no expression is present. Normalize is a pure
// function of its input.
func Normalize(expr TypeExpr) (string, bool) {
	switch e := expr.(type) {
	case nil:
		return "", false
	case NameExpr:
		return e.Name, true
	case AttrExpr:
		return strings.Join(flattenAttr(e), "."), true
	case OpaqueExpr:
		return e.Repr, true
	default:
		return "", false
	}
}

// flattenAttr extracts name fragments from an attribute chain, depth-first
// and left-to-right. Nested chains contribute their own flattened sequence;
// anything else contributes its opaque rendering.
func flattenAttr(expr AttrExpr) []string {
	parts := make([]string, 0, len(expr.Values))
	for _, v := range expr.Values {
		switch e := v.(type) {
		case NameExpr:
			parts = append(parts, e.Name)
		case AttrExpr:
			parts = append(parts, flattenAttr(e)...)
		case OpaqueExpr:
			parts = append(parts, e.Repr)
		}
	}
	return parts
}
