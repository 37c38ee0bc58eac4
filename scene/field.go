package scene

import (
	"fmt"
	"reflect"

	"github.com/plus3/moka/ecs"
)

// Kind is the target type of a bindable field.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindDouble
	KindBool
	KindString
	KindEnum
	KindCallback
	KindEntity
	KindPrefab
)

var kindNames = [...]string{
	KindInt:      "int",
	KindFloat:    "float",
	KindDouble:   "double",
	KindBool:     "bool",
	KindString:   "string",
	KindEnum:     "enum",
	KindCallback: "callback",
	KindEntity:   "entity",
	KindPrefab:   "prefab",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Field describes one attribute a component accepts in an entity document:
// its attribute name, target kind and a typed setter.
type Field struct {
	name     string
	kind     Kind
	required bool

	// enum
	typeName string
	variants []string
	variant  func(name string) (any, bool)

	// callback
	trigger func(t *Triggers, name string) (any, error)

	set func(c ecs.Component, v any)
}

func (f Field) Name() string {
	return f.name
}

func (f Field) Kind() Kind {
	return f.kind
}

// IsRequired reports whether a document must supply the attribute.
func (f Field) IsRequired() bool {
	return f.required
}

// Required returns a copy of f that must be present on every component tag.
func (f Field) Required() Field {
	f.required = true
	return f
}

// Variants returns the accepted names of an enum field.
func (f Field) Variants() []string {
	return f.variants
}

// Apply sets v on c. v must be a value produced by resolving this field.
func (f Field) Apply(c ecs.Component, v any) {
	f.set(c, v)
}

func newField[C ecs.Component, V any](name string, kind Kind, set func(C, V)) Field {
	if name == "" {
		panic("field name cannot be empty")
	}
	if set == nil {
		panic("field " + name + " has no setter")
	}
	return Field{
		name: name,
		kind: kind,
		set: func(c ecs.Component, v any) {
			set(c.(C), v.(V))
		},
	}
}

func Int[C ecs.Component](name string, set func(C, int)) Field {
	return newField(name, KindInt, set)
}

// Float binds a single precision number.
func Float[C ecs.Component](name string, set func(C, float32)) Field {
	return newField(name, KindFloat, set)
}

// Double binds a double precision number.
func Double[C ecs.Component](name string, set func(C, float64)) Field {
	return newField(name, KindDouble, set)
}

func Bool[C ecs.Component](name string, set func(C, bool)) Field {
	return newField(name, KindBool, set)
}

func String[C ecs.Component](name string, set func(C, string)) Field {
	return newField(name, KindString, set)
}

// Enum binds one of values, matched by the exact, case-sensitive String()
// form of each value.
func Enum[C ecs.Component, E fmt.Stringer](name string, values []E, set func(C, E)) Field {
	f := newField(name, KindEnum, set)

	byName := make(map[string]E, len(values))
	f.variants = make([]string, 0, len(values))
	for _, v := range values {
		s := v.String()
		if _, dup := byName[s]; dup {
			continue
		}
		byName[s] = v
		f.variants = append(f.variants, s)
	}

	f.typeName = reflect.TypeFor[E]().String()
	f.variant = func(s string) (any, bool) {
		v, ok := byName[s]
		return v, ok
	}
	return f
}

// Callback binds a trigger registered under the attribute's value. Only
// triggers registered with payload type P are compatible.
func Callback[C ecs.Component, P any](name string, set func(C, Trigger[P])) Field {
	f := newField(name, KindCallback, set)
	f.trigger = func(t *Triggers, s string) (any, error) {
		return LookupTrigger[P](t, s)
	}
	return f
}

// EntityRef binds an entity by name. References to entities that do not
// exist yet are resolved once the whole scene has been read.
func EntityRef[C ecs.Component](name string, set func(C, *ecs.Entity)) Field {
	return newField(name, KindEntity, set)
}

// PrefabRef binds a prefab built from an entity document path.
func PrefabRef[C ecs.Component](name string, set func(C, *Prefab)) Field {
	return newField(name, KindPrefab, set)
}
