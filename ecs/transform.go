package ecs

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/moka/pool"
	"github.com/plus3/moka/vmath"
)

type transformState struct {
	position vmath.Vec2
	size     vmath.Vec2
	rotation ebiten.GeoM
	ownSize  bool
}

func newTransformPool() *pool.Pool[transformState] {
	return pool.New(64, func(s *transformState) { *s = transformState{} })
}

// Transform holds the position, rotation and optional explicit size of an
// entity. Every entity has exactly one, created and disposed with it.
//
// A copy of the previous frame's state is kept to answer HasMoved and
// HasRotated. It is taken when the entity is created, so the state a document
// sets up counts as the starting point, and refreshed at the end of every
// PostUpdate.
type Transform struct {
	entity *Entity
	state  *transformState
	prev   transformState
	pool   *pool.Pool[transformState]
}

func newTransform(e *Entity, p *pool.Pool[transformState]) *Transform {
	state := p.Take()
	return &Transform{
		entity: e,
		state:  state,
		prev:   *state,
		pool:   p,
	}
}

func (t *Transform) Entity() *Entity {
	return t.entity
}

func (t *Transform) Position() vmath.Vec2 {
	return t.state.position
}

func (t *Transform) SetPosition(x, y float32) {
	t.state.position = vmath.V(x, y)
}

// Move translates the transform by (x, y).
func (t *Transform) Move(x, y float32) {
	t.state.position = t.state.position.Add(vmath.V(x, y))
}

// MoveDelta translates the transform by (x, y) scaled by the current frame delta.
func (t *Transform) MoveDelta(x, y float32) {
	dt := float32(t.entity.runtime.Frame().Delta)
	t.Move(x*dt, y*dt)
}

// SetRotation sets the rotation in degrees.
func (t *Transform) SetRotation(degrees float32) {
	t.SetRotationRadians(vmath.Radians(degrees))
}

func (t *Transform) SetRotationRadians(radians float64) {
	var g ebiten.GeoM
	g.Rotate(radians)
	t.state.rotation = g
}

// Rotate adds radians to the current rotation.
func (t *Transform) Rotate(radians float64) {
	t.state.rotation.Rotate(radians)
}

// Rotation returns the rotation matrix.
func (t *Transform) Rotation() ebiten.GeoM {
	return t.state.rotation
}

// Angle returns the rotation in radians, in (-π, π].
func (t *Transform) Angle() float64 {
	r := t.state.rotation
	return math.Atan2(r.Element(1, 0), r.Element(0, 0))
}

// Front returns the unit vector the transform is facing.
func (t *Transform) Front() vmath.Vec2 {
	x, y := t.state.rotation.Apply(1, 0)
	return vmath.V(float32(x), float32(y)).Nor()
}

// LookAt rotates the transform to face target.
func (t *Transform) LookAt(target vmath.Vec2) {
	dir := target.Sub(t.state.position)
	t.SetRotationRadians(float64(dir.Angle()))
}

// SetSize sets an explicit size, overriding any drawable's intrinsic size.
func (t *Transform) SetSize(w, h float32) {
	t.state.size = vmath.V(w, h)
	t.state.ownSize = true
}

// ClearSize drops the explicit size so Size falls back to the drawable.
func (t *Transform) ClearSize() {
	t.state.size = vmath.Zero
	t.state.ownSize = false
}

// Scale multiplies the current size by f and keeps the result as the
// explicit size.
func (t *Transform) Scale(f float32) {
	t.state.size = t.Size().Mul(f)
	t.state.ownSize = true
}

func (t *Transform) UsesOwnSize() bool {
	return t.state.ownSize
}

// Size returns the explicit size when one was set, otherwise the intrinsic
// size of the entity's drawable, otherwise zero.
func (t *Transform) Size() vmath.Vec2 {
	if t.state.ownSize {
		return t.state.size
	}
	if d, ok := t.entity.Drawable(); ok {
		if s, ok := d.(Sized); ok {
			if w, h, ok := s.IntrinsicSize(); ok {
				return vmath.V(w, h)
			}
		}
	}
	return t.state.size
}

// GeoM returns the model matrix: rotation followed by translation to the position.
func (t *Transform) GeoM() ebiten.GeoM {
	g := t.state.rotation
	g.Translate(float64(t.state.position.X), float64(t.state.position.Y))
	return g
}

// HasMoved reports whether the position changed since the last snapshot.
func (t *Transform) HasMoved() bool {
	return t.prev.position != t.state.position
}

// HasRotated reports whether the rotation changed since the last snapshot.
func (t *Transform) HasRotated() bool {
	return t.prev.rotation != t.state.rotation
}

func (t *Transform) HasChanged() bool {
	return t.HasMoved() || t.HasRotated()
}

// Previous returns the position recorded at the last snapshot.
func (t *Transform) Previous() vmath.Vec2 {
	return t.prev.position
}

func (t *Transform) snapshot() {
	t.prev = *t.state
}

func (t *Transform) dispose() {
	if t.pool == nil {
		return
	}
	// Stale readers keep seeing the final state through a private copy.
	final := *t.state
	t.pool.Put(t.state)
	t.pool = nil
	t.state = &final
}
