package scene_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/plus3/moka/ecs"
	"github.com/plus3/moka/scene"
	"github.com/stretchr/testify/require"
)

type Mode int

const (
	Idle Mode = iota
	Chase
	Flee
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "IDLE"
	case Chase:
		return "CHASE"
	case Flee:
		return "FLEE"
	}
	return "?"
}

// Gizmo accepts one attribute of every kind.
type Gizmo struct {
	ecs.Base
	Count   int
	Scale   float32
	Ratio   float64
	Visible bool
	Label   string
	Mode    Mode
	OnHit   scene.Trigger[int]
	Target  *ecs.Entity
	Spawner *scene.Prefab

	sets []string
}

func registerGizmo(r *scene.Registry, name string) {
	scene.Register(r, name, func() *Gizmo { return &Gizmo{} },
		scene.Int("count", func(p *Gizmo, v int) { p.Count = v; p.sets = append(p.sets, "count") }),
		scene.Float("scale", func(p *Gizmo, v float32) { p.Scale = v }),
		scene.Double("ratio", func(p *Gizmo, v float64) { p.Ratio = v }),
		scene.Bool("visible", func(p *Gizmo, v bool) { p.Visible = v }),
		scene.String("label", func(p *Gizmo, v string) { p.Label = v; p.sets = append(p.sets, "label") }),
		scene.Enum("mode", []Mode{Idle, Chase, Flee}, func(p *Gizmo, v Mode) { p.Mode = v }),
		scene.Callback("onHit", func(p *Gizmo, v scene.Trigger[int]) { p.OnHit = v }),
		scene.EntityRef("target", func(p *Gizmo, v *ecs.Entity) { p.Target = v }),
		scene.PrefabRef("spawner", func(p *Gizmo, v *scene.Prefab) { p.Spawner = v }),
	)
}

// Marker requires its id attribute.
type Marker struct {
	ecs.Base
	ID   string
	Note string
}

func registerMarker(r *scene.Registry, name string) {
	scene.Register(r, name, func() *Marker { return &Marker{} },
		scene.String("note", func(m *Marker, v string) { m.Note = v }),
		scene.String("id", func(m *Marker, v string) { m.ID = v }).Required(),
	)
}

func testRegistry() *scene.Registry {
	r := scene.NewRegistry()
	registerGizmo(r, "Gizmo")
	registerMarker(r, "Marker")
	return r
}

func testResources() *scene.Resources {
	res := scene.NewResources()
	res.Define("a", 2)
	res.Define("b", 3)
	res.Define("ab", 10)
	res.Define("neg", -4)
	res.Define("half", 0.5)
	res.Define("on", true)
	res.Define("title", "hello")
	res.Define("mode", "FLEE")
	res.Define("hit", "count-hits")
	res.Define("bullet", "bullet.xml")
	return res
}

func testTriggers() *scene.Triggers {
	t := scene.NewTriggers()
	scene.RegisterTrigger(t, "count-hits", func(source ecs.Component, n int) bool { return n > 0 })
	scene.RegisterTrigger(t, "announce", func(source ecs.Component, _ scene.None) bool { return true })
	return t
}

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func gizmoOf(t *testing.T, e *ecs.Entity) *Gizmo {
	t.Helper()
	p, ok := ecs.Find[*Gizmo](e)
	require.True(t, ok, "entity %s has no Gizmo", e.Name())
	return p
}
