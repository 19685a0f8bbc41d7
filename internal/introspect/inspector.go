package introspect

import "fmt"

// Inspector loads the full member tree of a named library. Implementations
// differ only in how the tree is obtained; Discover never depends on the
// mechanism.
type Inspector interface {
	Load(library string) (*Object, error)
}

// Return is one method's normalized return type. Declared is false when the
// method carries no declared return type.
type Return struct {
	Type     string
	Declared bool
}

// MethodMap maps method name to its normalized return type.
type MethodMap map[string]Return

// APIMap maps a discovered class name to its methods. Classes that never
// resolved during tree search are omitted, not errors.
type APIMap map[string]MethodMap

// Discover loads the library's member tree and collects the function
// members of each requested class. A load failure is fatal; a class that
// cannot be found is silently skipped.
func Discover(ins Inspector, library string, classes []string) (APIMap, error) {
	root, err := ins.Load(library)
	if err != nil {
		return nil, fmt.Errorf("load library %q: %w", library, err)
	}

	api := make(APIMap, len(classes))
	for _, class := range classes {
		obj := findByName(root, class)
		if obj == nil {
			continue
		}
		methods := make(MethodMap, len(obj.Members()))
		for _, m := range obj.Members() {
			if !m.IsFunction {
				continue
			}
			typ, ok := Normalize(m.Returns)
			methods[m.Name] = Return{Type: typ, Declared: ok}
		}
		api[class] = methods
	}
	return api, nil
}
