package dataframe

import "fmt"

type exprKind int

const (
	exprCol exprKind = iota
	exprLit
	exprGt
	exprLt
	exprEq
	exprAdd
	exprMul
	exprAlias
)

// Expr is a column expression evaluated row by row.
type Expr struct {
	kind  exprKind
	name  string
	value any
	left  *Expr
	right *Expr
}

// Col references a column by name.
func Col(name string) Expr {
	return Expr{kind: exprCol, name: name}
}

// Lit wraps a literal value.
func Lit(value any) Expr {
	return Expr{kind: exprLit, value: value}
}

// Gt compares the expression to another, greater-than.
func (e Expr) Gt(other Expr) Expr {
	return binary(exprGt, e, other)
}

// Lt compares the expression to another, less-than.
func (e Expr) Lt(other Expr) Expr {
	return binary(exprLt, e, other)
}

// Eq compares the expression to another for equality.
func (e Expr) Eq(other Expr) Expr {
	return binary(exprEq, e, other)
}

// Add sums the expression with another.
func (e Expr) Add(other Expr) Expr {
	return binary(exprAdd, e, other)
}

// Mul multiplies the expression with another.
func (e Expr) Mul(other Expr) Expr {
	return binary(exprMul, e, other)
}

// Alias names the expression result.
func (e Expr) Alias(name string) Expr {
	return Expr{kind: exprAlias, name: name, left: &e}
}

func binary(kind exprKind, left, right Expr) Expr {
	return Expr{kind: kind, left: &left, right: &right}
}

func (e Expr) eval(row map[string]any) any {
	switch e.kind {
	case exprCol:
		return row[e.name]
	case exprLit:
		return e.value
	case exprAlias:
		return e.left.eval(row)
	case exprGt:
		return compare(e.left.eval(row), e.right.eval(row)) > 0
	case exprLt:
		return compare(e.left.eval(row), e.right.eval(row)) < 0
	case exprEq:
		return compare(e.left.eval(row), e.right.eval(row)) == 0
	case exprAdd:
		return arith(e.left.eval(row), e.right.eval(row), func(a, b float64) float64 { return a + b })
	case exprMul:
		return arith(e.left.eval(row), e.right.eval(row), func(a, b float64) float64 { return a * b })
	default:
		return nil
	}
}

func compare(a, b any) int {
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if aok && bok {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}
	as := fmt.Sprint(a)
	bs := fmt.Sprint(b)
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	default:
		return 0
	}
}

func arith(a, b any, op func(float64, float64) float64) any {
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if !aok || !bok {
		return nil
	}
	return op(af, bf)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	default:
		return 0, false
	}
}

func truthy(v any) bool {
	b, ok := v.(bool)
	return ok && b
}
