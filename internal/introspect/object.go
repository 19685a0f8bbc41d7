package introspect

import "strings"

// Object is one node of an introspected member tree: a library, a class, or
// a function-like member. The tree is built once by an Inspector and is
// read-only afterwards.
type Object struct {
	Name       string
	IsFunction bool
	// Returns is the declared return-type expression; nil on non-functions
	// and on functions with no declared return type.
	Returns TypeExpr

	members []*Object
	index   map[string]*Object
}

// NewObject creates a tree node with no members.
func NewObject(name string) *Object {
	return &Object{Name: name}
}

// NewFunction creates a function-like leaf node.
func NewFunction(name string, returns TypeExpr) *Object {
	return &Object{Name: name, IsFunction: true, Returns: returns}
}

// Add appends a child member, keeping insertion order. A child with a
// duplicate name replaces the earlier one.
func (o *Object) Add(child *Object) {
	if o.index == nil {
		o.index = make(map[string]*Object)
	}
	if prev, ok := o.index[child.Name]; ok {
		for i, m := range o.members {
			if m == prev {
				o.members[i] = child
				break
			}
		}
		o.index[child.Name] = child
		return
	}
	o.index[child.Name] = child
	o.members = append(o.members, child)
}

// Members returns the children in insertion order.
func (o *Object) Members() []*Object {
	return o.members
}

// Member returns the named child, or nil.
func (o *Object) Member(name string) *Object {
	return o.index[name]
}

// findByName searches the tree for the first node whose name ends with
// target: the node itself, then its immediate children, then each child
// subtree in order. Returns nil when nothing matches.
func findByName(o *Object, target string) *Object {
	if strings.HasSuffix(o.Name, target) {
		return o
	}
	for _, m := range o.members {
		if strings.HasSuffix(m.Name, target) {
			return m
		}
	}
	for _, m := range o.members {
		if found := findByName(m, target); found != nil {
			return found
		}
	}
	return nil
}
