package scene

import (
	"fmt"
	"reflect"

	"github.com/plus3/moka/ecs"
)

// Trigger is a named callback a component invokes when something happens to
// it. The meaning of the returned bool is defined by the calling component.
type Trigger[P any] func(source ecs.Component, payload P) bool

// None is the payload of triggers that carry no data.
type None struct{}

type triggerEntry struct {
	payload string
	fn      any
}

// Triggers is the table of statically registered callbacks that documents
// can reference by name.
type Triggers struct {
	entries map[string]triggerEntry
}

func NewTriggers() *Triggers {
	return &Triggers{
		entries: make(map[string]triggerEntry),
	}
}

// RegisterTrigger adds fn under name. Registering a name twice panics.
func RegisterTrigger[P any](t *Triggers, name string, fn Trigger[P]) {
	if _, exists := t.entries[name]; exists {
		panic("trigger " + name + " registered twice")
	}
	t.entries[name] = triggerEntry{
		payload: payloadName[P](),
		fn:      fn,
	}
}

// LookupTrigger returns the trigger registered under name with payload type P.
func LookupTrigger[P any](t *Triggers, name string) (Trigger[P], error) {
	if name == "" {
		return nil, fmt.Errorf("%w: trigger name is empty", ErrUnknownTrigger)
	}
	if t == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTrigger, name)
	}
	entry, ok := t.entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTrigger, name)
	}
	fn, ok := entry.fn.(Trigger[P])
	if !ok {
		return nil, fmt.Errorf("%w: %s has incompatible payload %s, want %s",
			ErrUnknownTrigger, name, entry.payload, payloadName[P]())
	}
	return fn, nil
}

// Len returns the number of registered triggers.
func (t *Triggers) Len() int {
	return len(t.entries)
}

func payloadName[P any]() string {
	return reflect.TypeFor[P]().String()
}
