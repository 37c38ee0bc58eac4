package ecs

import (
	"fmt"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/kamstrup/intmap"
	"github.com/plus3/moka/pool"
)

// Runtime owns every entity of a scene, bucketed into ordered layers.
//
// Layers are created lazily as higher indices are requested. Update and
// PostUpdate walk layers from the highest index down, Render walks them from
// 0 up so that higher layers composite on top. Within a layer, Update and
// PostUpdate visit entities in reverse insertion order, Render in insertion
// order.
//
// A Runtime is single-threaded: every method must be called from the goroutine
// that drives the frame loop (or the load phase before it).
type Runtime struct {
	layers     [][]*Entity
	names      map[string]*Entity
	entities   *intmap.Map[EntityId, *Entity]
	nextId     EntityId
	transforms *pool.Pool[transformState]

	camera  Camera
	frame   Frame
	created bool
	err     error
}

// NewRuntime creates an empty runtime.
func NewRuntime() *Runtime {
	return &Runtime{
		names:      make(map[string]*Entity),
		entities:   intmap.New[EntityId, *Entity](256),
		transforms: newTransformPool(),
	}
}

// NewEntity constructs an entity and adds it to layer. An empty name creates
// an entity that cannot be found by name.
func (r *Runtime) NewEntity(name string, layer int) (*Entity, error) {
	return r.AddEntity(&Entity{name: name}, layer)
}

// AddEntity registers a detached entity in layer and, if it has a name, in
// the name table. A duplicate name fails and the entity is not added to any
// layer.
func (r *Runtime) AddEntity(e *Entity, layer int) (*Entity, error) {
	if e.runtime != nil {
		panic("entity already belongs to a runtime")
	}
	if layer < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLayer, layer)
	}
	if e.name != "" {
		if _, exists := r.names[e.name]; exists {
			return nil, fmt.Errorf("%w: entity with name %q already exists", ErrDuplicateName, e.name)
		}
		r.names[e.name] = e
	}

	for len(r.layers) <= layer {
		r.layers = append(r.layers, nil)
	}

	r.nextId++
	e.id = r.nextId
	e.layer = layer
	e.runtime = r
	e.transform = newTransform(e, r.transforms)

	r.layers[layer] = append(r.layers[layer], e)
	r.entities.Put(e.id, e)
	return e, nil
}

// FindEntity returns the entity registered under name.
func (r *Runtime) FindEntity(name string) (*Entity, error) {
	e, ok := r.names[name]
	if !ok {
		return nil, fmt.Errorf("%w: there's no entity with name %q", ErrEntityNotFound, name)
	}
	return e, nil
}

// Entity resolves an arena id. Ids of disposed entities no longer resolve.
func (r *Runtime) Entity(id EntityId) (*Entity, bool) {
	return r.entities.Get(id)
}

// EntitiesInGroup returns the entities tagged with group, layer ascending,
// insertion order within a layer. The result may be empty.
func (r *Runtime) EntitiesInGroup(group string) []*Entity {
	var result []*Entity
	for _, layer := range r.layers {
		for _, e := range layer {
			if e.BelongsTo(group) {
				result = append(result, e)
			}
		}
	}
	return result
}

// AllEntities returns every entity, layer ascending, insertion order within a layer.
func (r *Runtime) AllEntities() []*Entity {
	result := make([]*Entity, 0, r.entities.Len())
	for _, layer := range r.layers {
		result = append(result, layer...)
	}
	return result
}

// Len returns the number of registered entities.
func (r *Runtime) Len() int {
	return r.entities.Len()
}

// LayerCount returns the number of layer buckets created so far.
func (r *Runtime) LayerCount() int {
	return len(r.layers)
}

// EntitiesInLayer returns a copy of the given layer's bucket.
func (r *Runtime) EntitiesInLayer(layer int) []*Entity {
	if layer < 0 || layer >= len(r.layers) {
		return nil
	}
	return slices.Clone(r.layers[layer])
}

// Create runs OnCreate for every entity registered so far. Entities added
// later are created lazily right before their first update.
func (r *Runtime) Create() {
	for _, layer := range r.layers {
		for i := len(layer) - 1; i >= 0; i-- {
			layer[i].create()
		}
	}
	r.created = true
}

// Created reports whether Create has run.
func (r *Runtime) Created() bool {
	return r.created
}

// Advance starts a new frame of dt seconds.
func (r *Runtime) Advance(dt float64) {
	r.frame.advance(dt)
}

// Frame returns the current frame timing.
func (r *Runtime) Frame() Frame {
	return r.frame
}

// Update runs every entity's update hook.
func (r *Runtime) Update() {
	for l := len(r.layers) - 1; l >= 0; l-- {
		layer := r.layers[l]
		for i := len(layer) - 1; i >= 0; i-- {
			layer[i].update()
		}
	}
}

// PostUpdate runs every entity's post-update hook and then snapshots its
// transform for the next frame's change queries.
func (r *Runtime) PostUpdate() {
	for l := len(r.layers) - 1; l >= 0; l-- {
		layer := r.layers[l]
		for i := len(layer) - 1; i >= 0; i-- {
			layer[i].postUpdate()
		}
	}
}

// Clean disposes and removes every entity flagged as destroyed.
func (r *Runtime) Clean() {
	for l, layer := range r.layers {
		for i := len(layer) - 1; i >= 0; i-- {
			e := layer[i]
			if !e.destroyed {
				continue
			}
			r.release(e)
			layer = slices.Delete(layer, i, i+1)
		}
		r.layers[l] = layer
	}
}

// Render draws every enabled drawable onto dst through the active camera.
// Entities that have not been created yet are skipped.
func (r *Runtime) Render(dst *ebiten.Image) error {
	if r.camera == nil {
		return ErrNoCamera
	}

	view := r.camera.View()
	for _, layer := range r.layers {
		for _, e := range layer {
			e.render(dst, view)
		}
	}
	return nil
}

// SetCamera selects the camera used by Render. nil clears it.
func (r *Runtime) SetCamera(c Camera) {
	r.camera = c
}

// Camera returns the active camera, or nil.
func (r *Runtime) Camera() Camera {
	return r.camera
}

// Fail records a fatal error raised from inside a hook. Only the first error is kept.
func (r *Runtime) Fail(err error) {
	if r.err == nil && err != nil {
		r.err = err
	}
}

// Err returns the error recorded by Fail, if any.
func (r *Runtime) Err() error {
	return r.err
}

// HardReset disposes every entity and clears all layers and the name table.
// It is used to reload a scene into the same runtime.
func (r *Runtime) HardReset() {
	for _, layer := range r.layers {
		for _, e := range layer {
			e.dispose()
		}
	}
	r.layers = nil
	clear(r.names)
	r.entities.Clear()
	r.camera = nil
	r.created = false
	r.err = nil
}

// Dispose releases every entity. The runtime may be reused afterwards.
func (r *Runtime) Dispose() {
	r.HardReset()
}

func (r *Runtime) release(e *Entity) {
	e.dispose()
	if e.name != "" && r.names[e.name] == e {
		delete(r.names, e.name)
	}
	r.entities.Del(e.id)
}
