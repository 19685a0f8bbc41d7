package introspect

import (
	"fmt"
	"go/types"

	"golang.org/x/tools/go/packages"
)

// SourceInspector introspects a Go package statically via go/packages,
// without constructing any values. The library name is the package's import
// path.
type SourceInspector struct{}

// NewSourceInspector returns the static inspector.
func NewSourceInspector() *SourceInspector {
	return &SourceInspector{}
}

// Load implements Inspector.
func (s *SourceInspector) Load(library string) (*Object, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedTypes,
	}

	pkgs, err := packages.Load(cfg, library)
	if err != nil {
		return nil, fmt.Errorf("load package %q: %w", library, err)
	}
	if packages.PrintErrors(pkgs) > 0 {
		return nil, fmt.Errorf("package %q has compilation errors", library)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("package %q not found", library)
	}

	pkg := pkgs[0]
	if pkg.Types == nil || pkg.Types.Scope() == nil {
		return nil, fmt.Errorf("type info unavailable for package %q", library)
	}

	root := NewObject(pkg.Name)
	scope := pkg.Types.Scope()
	// Scope names come back sorted, so the tree is deterministic.
	for _, name := range scope.Names() {
		obj := scope.Lookup(name)
		if !obj.Exported() {
			continue
		}
		switch v := obj.(type) {
		case *types.TypeName:
			if named, ok := v.Type().(*types.Named); ok {
				root.Add(namedTypeNode(named, pkg.Types))
			}
		case *types.Func:
			root.Add(funcNode(v, pkg.Types))
		}
	}
	return root, nil
}

func namedTypeNode(named *types.Named, local *types.Package) *Object {
	class := NewObject(named.Obj().Name())
	for i := 0; i < named.NumMethods(); i++ {
		m := named.Method(i)
		if !m.Exported() {
			continue
		}
		class.Add(funcNode(m, local))
	}
	return class
}

func funcNode(fn *types.Func, local *types.Package) *Object {
	sig, ok := fn.Type().(*types.Signature)
	if !ok {
		return NewFunction(fn.Name(), nil)
	}
	results := sig.Results()
	if results.Len() == 0 {
		return NewFunction(fn.Name(), nil)
	}
	return NewFunction(fn.Name(), typeExprFromTypes(results.At(0).Type(), local))
}

func typeExprFromTypes(t types.Type, local *types.Package) TypeExpr {
	switch v := t.(type) {
	case *types.Basic:
		return NameExpr{Name: v.Name()}
	case *types.Alias:
		return typeExprFromTypes(types.Unalias(v), local)
	case *types.Named:
		obj := v.Obj()
		if obj.Pkg() == nil || obj.Pkg() == local {
			return NameExpr{Name: obj.Name()}
		}
		return AttrExpr{Values: []TypeExpr{
			NameExpr{Name: obj.Pkg().Name()},
			NameExpr{Name: obj.Name()},
		}}
	default:
		qualifier := func(p *types.Package) string {
			if p == nil || p == local {
				return ""
			}
			return p.Name()
		}
		return OpaqueExpr{Repr: types.TypeString(t, qualifier)}
	}
}
