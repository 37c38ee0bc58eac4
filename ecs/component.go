package ecs

import "github.com/hajimehoshi/ebiten/v2"

// Component is a capability attached to exactly one entity. Implementations
// embed Base, which supplies no-op lifecycle hooks and the entity accessors.
type Component interface {
	OnCreate()
	OnUpdate()
	OnPostUpdate()
	OnDestroy()

	base() *Base
}

// Drawable is a component that can render itself against the active camera view.
type Drawable interface {
	Component
	Enabled() bool
	Render(dst *ebiten.Image, view ebiten.GeoM)
}

// Sized is implemented by drawables with an intrinsic size, used by a
// transform that has no explicit size of its own.
type Sized interface {
	IntrinsicSize() (w, h float32, ok bool)
}

// Camera supplies the world-to-screen view used by Runtime.Render.
type Camera interface {
	View() ebiten.GeoM
}

// Base is embedded by every component.
type Base struct {
	entity   *Entity
	disabled bool
}

func (b *Base) base() *Base { return b }

func (b *Base) OnCreate()     {}
func (b *Base) OnUpdate()     {}
func (b *Base) OnPostUpdate() {}
func (b *Base) OnDestroy()    {}

// Entity returns the owning entity, or nil before the component is attached.
func (b *Base) Entity() *Entity {
	return b.entity
}

// Transform is shorthand for Entity().Transform().
func (b *Base) Transform() *Transform {
	return b.entity.transform
}

// Runtime is shorthand for Entity().Runtime().
func (b *Base) Runtime() *Runtime {
	return b.entity.runtime
}

// Enabled reports whether the component is enabled. Components start enabled.
func (b *Base) Enabled() bool {
	return !b.disabled
}

func (b *Base) SetEnabled(enabled bool) {
	b.disabled = !enabled
}
