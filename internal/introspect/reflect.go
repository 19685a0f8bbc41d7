package introspect

import (
	"fmt"
	"reflect"
	"strings"
)

// ReflectInspector introspects live objects with package reflect. Exemplar
// values are registered per library name; Load walks their dynamic types.
// This is the adapter for libraries whose shape is only known at runtime.
type ReflectInspector struct {
	libs map[string][]any
}

// NewReflectInspector creates an inspector with an empty registry.
func NewReflectInspector() *ReflectInspector {
	return &ReflectInspector{libs: make(map[string][]any)}
}

// Register adds exemplar values for a library. Each exemplar's named type
// becomes one class node in the loaded tree, in registration order.
func (r *ReflectInspector) Register(library string, exemplars ...any) {
	r.libs[library] = append(r.libs[library], exemplars...)
}

// Load implements Inspector.
func (r *ReflectInspector) Load(library string) (*Object, error) {
	exemplars, ok := r.libs[library]
	if !ok {
		return nil, fmt.Errorf("library %q is not registered", library)
	}

	root := NewObject(library)
	for _, ex := range exemplars {
		t := reflect.TypeOf(ex)
		for t != nil && t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		if t == nil || t.Name() == "" {
			return nil, fmt.Errorf("exemplar %T has no named type", ex)
		}
		root.Add(classNode(t))
	}
	return root, nil
}

// classNode builds one class node from a named type. The pointer type is
// walked so pointer-receiver methods are included; reflect reports methods
// in sorted order, which keeps the tree deterministic.
func classNode(t reflect.Type) *Object {
	class := NewObject(t.Name())
	pt := reflect.PointerTo(t)
	for i := 0; i < pt.NumMethod(); i++ {
		m := pt.Method(i)
		class.Add(NewFunction(m.Name, returnExpr(m.Func.Type(), t.PkgPath())))
	}
	return class
}

// returnExpr models a method's first result as a TypeExpr, or nil when the
// method returns nothing.
func returnExpr(fn reflect.Type, localPkg string) TypeExpr {
	if fn.NumOut() == 0 {
		return nil
	}
	return typeExprOf(fn.Out(0), localPkg)
}

func typeExprOf(t reflect.Type, localPkg string) TypeExpr {
	if t.Name() != "" {
		// Predeclared types and types local to the inspected library are
		// plain names; foreign named types become package.Name chains.
		pkg := t.PkgPath()
		if pkg == "" || pkg == localPkg {
			return NameExpr{Name: t.Name()}
		}
		base := pkg
		if i := strings.LastIndex(pkg, "/"); i >= 0 {
			base = pkg[i+1:]
		}
		return AttrExpr{Values: []TypeExpr{
			NameExpr{Name: base},
			NameExpr{Name: t.Name()},
		}}
	}
	return OpaqueExpr{Repr: t.String()}
}
