package scene

import (
	"fmt"
	"sort"
	"strings"

	"github.com/plus3/moka/ecs"
)

// DefaultNamespace holds the built-in components. Bare names are looked up
// here first.
const DefaultNamespace = "moka"

// ComponentType is a registered component: a factory plus the table of
// attributes it accepts.
type ComponentType struct {
	Name   string
	New    func() ecs.Component
	Fields []Field
}

// Field returns the descriptor bound to attribute name.
func (t *ComponentType) Field(name string) (Field, bool) {
	for _, f := range t.Fields {
		if f.name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Registry maps qualified component names ("namespace.Name") to their types.
type Registry struct {
	types map[string]*ComponentType
}

// NewRegistry creates an empty component registry.
func NewRegistry() *Registry {
	return &Registry{
		types: make(map[string]*ComponentType),
	}
}

// Register adds a component type under name. A name without a namespace is
// placed in DefaultNamespace. Registering the same name twice, or declaring
// two fields with the same attribute name, panics.
func Register[C ecs.Component](r *Registry, name string, factory func() C, fields ...Field) {
	if !hasNamespace(name) {
		name = DefaultNamespace + "." + name
	}
	if _, exists := r.types[name]; exists {
		panic("component " + name + " registered twice")
	}

	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if seen[f.name] {
			panic(fmt.Sprintf("component %s declares field %q twice", name, f.name))
		}
		seen[f.name] = true
	}

	r.types[name] = &ComponentType{
		Name:   name,
		New:    func() ecs.Component { return factory() },
		Fields: fields,
	}
}

// Lookup resolves a component name as written in a document. Qualified names
// must match exactly. Bare names are tried in DefaultNamespace, then in
// fallback when it is not empty.
func (r *Registry) Lookup(name, fallback string) (*ComponentType, error) {
	if hasNamespace(name) {
		if t, ok := r.types[name]; ok {
			return t, nil
		}
		return nil, fmt.Errorf("%w: component class %s not found", ErrUnknownComponent, name)
	}

	qualified := DefaultNamespace + "." + name
	if t, ok := r.types[qualified]; ok {
		return t, nil
	}
	if fallback != "" {
		qualified = fallback + "." + name
		if t, ok := r.types[qualified]; ok {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: component class %s not found", ErrUnknownComponent, qualified)
}

// Names returns every registered qualified name, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func hasNamespace(name string) bool {
	return strings.Contains(name, ".")
}
