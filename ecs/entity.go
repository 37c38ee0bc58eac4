package ecs

import "github.com/hajimehoshi/ebiten/v2"

// EntityId is a stable arena identifier. Ids are handed out in increasing
// order by a Runtime and never reused, so a stale id simply stops resolving.
type EntityId uint64

// NoEntity is the zero EntityId; no live entity has it.
const NoEntity EntityId = 0

// Entity is an addressable scene object owning a transform and an ordered set
// of components. Entities are owned by the Runtime that registered them.
type Entity struct {
	id         EntityId
	name       string
	group      string
	layer      int
	runtime    *Runtime
	transform  *Transform
	components []Component

	created   bool
	destroyed bool
}

// ID returns the entity's arena id, or NoEntity if it was never added to a Runtime.
func (e *Entity) ID() EntityId {
	return e.id
}

// Name returns the unique name, or "" for an unaddressable entity.
func (e *Entity) Name() string {
	return e.name
}

func (e *Entity) Group() string {
	return e.group
}

func (e *Entity) SetGroup(group string) {
	e.group = group
}

// BelongsTo reports whether the entity is tagged with group.
func (e *Entity) BelongsTo(group string) bool {
	return e.group != "" && e.group == group
}

func (e *Entity) Layer() int {
	return e.layer
}

func (e *Entity) Transform() *Transform {
	return e.transform
}

// Runtime returns the owning runtime.
func (e *Entity) Runtime() *Runtime {
	return e.runtime
}

// Components returns the attached components in insertion order.
// The returned slice must not be modified.
func (e *Entity) Components() []Component {
	return e.components
}

// AddComponent attaches c to the entity. A component belongs to exactly one
// entity; attaching it twice panics.
func (e *Entity) AddComponent(c Component) {
	b := c.base()
	if b.entity != nil {
		panic("component already attached to an entity")
	}
	b.entity = e
	e.components = append(e.components, c)
}

// Drawable returns the first attached component with a render capability.
func (e *Entity) Drawable() (Drawable, bool) {
	for _, c := range e.components {
		if d, ok := c.(Drawable); ok {
			return d, true
		}
	}
	return nil, false
}

// Destroy requests removal. The entity keeps updating and rendering for the
// rest of the current frame and is disposed at the next Runtime.Clean.
func (e *Entity) Destroy() {
	e.destroyed = true
}

func (e *Entity) Destroyed() bool {
	return e.destroyed
}

func (e *Entity) create() {
	if e.created {
		return
	}
	e.created = true
	e.transform.snapshot()
	for _, c := range e.components {
		c.OnCreate()
	}
}

func (e *Entity) update() {
	if !e.created {
		e.create()
	}
	for _, c := range e.components {
		c.OnUpdate()
	}
}

func (e *Entity) postUpdate() {
	for _, c := range e.components {
		c.OnPostUpdate()
	}
	e.transform.snapshot()
}

func (e *Entity) render(dst *ebiten.Image, view ebiten.GeoM) {
	if !e.created {
		return
	}
	d, ok := e.Drawable()
	if !ok || !d.Enabled() {
		return
	}
	d.Render(dst, view)
}

func (e *Entity) dispose() {
	for _, c := range e.components {
		c.OnDestroy()
	}
	e.transform.dispose()
}

// Find returns the first component of type T attached to e.
func Find[T Component](e *Entity) (T, bool) {
	for _, c := range e.components {
		if t, ok := c.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}
