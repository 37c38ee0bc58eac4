package ecs_test

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/moka/ecs"
)

// Trace records lifecycle calls of every Recorder sharing it.
type Trace struct {
	Calls []string
}

func (t *Trace) add(s string) {
	t.Calls = append(t.Calls, s)
}

// Recorder logs each hook invocation as "<hook>:<entity name>".
type Recorder struct {
	ecs.Base
	trace *Trace
}

func (r *Recorder) OnCreate()     { r.trace.add("create:" + r.Entity().Name()) }
func (r *Recorder) OnUpdate()     { r.trace.add("update:" + r.Entity().Name()) }
func (r *Recorder) OnPostUpdate() { r.trace.add("post:" + r.Entity().Name()) }
func (r *Recorder) OnDestroy()    { r.trace.add("destroy:" + r.Entity().Name()) }

// Painter is a drawable that records render calls.
type Painter struct {
	ecs.Base
	trace  *Trace
	w, h   float32
	sized  bool
	lastVw ebiten.GeoM
}

func (p *Painter) Render(dst *ebiten.Image, view ebiten.GeoM) {
	p.lastVw = view
	p.trace.add("render:" + p.Entity().Name())
}

func (p *Painter) IntrinsicSize() (float32, float32, bool) {
	return p.w, p.h, p.sized
}

// Lens is a fixed camera.
type Lens struct {
	ecs.Base
	view ebiten.GeoM
}

func (l *Lens) View() ebiten.GeoM {
	return l.view
}

// Mover moves its entity by a fixed velocity each update.
type Mover struct {
	ecs.Base
	DX, DY float32
}

func (m *Mover) OnUpdate() {
	m.Transform().MoveDelta(m.DX, m.DY)
}

func spawn(rt *ecs.Runtime, name string, layer int, components ...ecs.Component) *ecs.Entity {
	e, err := rt.NewEntity(name, layer)
	if err != nil {
		panic(err)
	}
	for _, c := range components {
		e.AddComponent(c)
	}
	return e
}
