package scene

import (
	"github.com/plus3/moka/ecs"
	"github.com/plus3/moka/vmath"
)

// Prefab spawns entities from an entity document. The document is read from
// disk once per loader and reused for every spawn.
type Prefab struct {
	loader *Loader
	path   string

	position    vmath.Vec2
	rotation    float32
	hasPosition bool
	hasRotation bool
}

// Path returns the document path the prefab reads.
func (p *Prefab) Path() string {
	return p.path
}

// SetPosition overrides the document's position on later spawns.
func (p *Prefab) SetPosition(x, y float32) {
	p.position = vmath.V(x, y)
	p.hasPosition = true
}

// SetRotation overrides the document's rotation, in degrees, on later spawns.
func (p *Prefab) SetRotation(degrees float32) {
	p.rotation = degrees
	p.hasRotation = true
}

// NewEntity reads the document into the loader's runtime under name. An
// empty name spawns an entity that cannot be found by name. Entity references
// in the document must resolve by the end of the spawn.
//
// Spawning from a component hook is allowed; the new entity is created
// before its first update.
func (p *Prefab) NewEntity(name string) (*ecs.Entity, error) {
	e, err := p.loader.spawn(p.path, name)
	if err != nil {
		return nil, err
	}

	tr := e.Transform()
	if p.hasPosition {
		tr.SetPosition(p.position.X, p.position.Y)
	}
	if p.hasRotation {
		tr.SetRotation(p.rotation)
	}
	return e, nil
}
