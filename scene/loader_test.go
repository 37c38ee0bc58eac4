package scene_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/plus3/moka/ecs"
	"github.com/plus3/moka/scene"
	"github.com/plus3/moka/vmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entityNames(entities []*ecs.Entity) []string {
	result := make([]string, len(entities))
	for i, e := range entities {
		result[i] = e.Name()
	}
	return result
}

func TestLoadScene(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"scene.xml": `
			<scene resources="res.yaml" namespace="game">
				<entity file="entities/hunter.xml" name="A"/>
				<entity file="entities/prey.xml" name="B"/>
				<entity file="entities/boss.xml"/>
			</scene>`,
		"res.yaml": `
hunter:
  count: 4
speed: 2.5
`,
		"entities/hunter.xml": `
			<entity layer="0">
				<Gizmo count="@hunter.count" target="B"/>
			</entity>`,
		"entities/prey.xml": `
			<entity layer="0" group="prey">
				<Gizmo target="C" scale="@speed"/>
			</entity>`,
		"entities/boss.xml": `
			<entity name="C" layer="2">
				<Tracker target="A"/>
			</entity>`,
	})

	r := testRegistry()
	scene.Register(r, "game.Tracker", func() *Gizmo { return &Gizmo{} },
		scene.EntityRef("target", func(p *Gizmo, v *ecs.Entity) { p.Target = v }).Required(),
	)

	rt := ecs.NewRuntime()
	l := scene.NewLoader(rt, r)
	require.NoError(t, l.LoadScene(filepath.Join(dir, "scene.xml")))

	assert.Equal(t, []string{"A", "B", "C"}, entityNames(rt.AllEntities()))
	assert.Equal(t, 0, l.Pending())

	a, _ := rt.FindEntity("A")
	b, _ := rt.FindEntity("B")
	c, _ := rt.FindEntity("C")

	assert.Equal(t, 4, gizmoOf(t, a).Count)
	assert.Same(t, b, gizmoOf(t, a).Target)
	assert.Same(t, c, gizmoOf(t, b).Target)
	assert.Same(t, a, gizmoOf(t, c).Target)
	assert.Equal(t, float32(2.5), gizmoOf(t, b).Scale)
	assert.Equal(t, []string{"B"}, entityNames(rt.EntitiesInGroup("prey")))
}

func TestLoadSceneUnresolvedReference(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"scene.xml": `<scene><entity file="lonely.xml"/></scene>`,
		"lonely.xml": `
			<entity name="lonely">
				<Gizmo target="ghost" count="3"/>
			</entity>`,
	})

	rt := ecs.NewRuntime()
	l := newTestLoader(rt)
	err := l.LoadScene(filepath.Join(dir, "scene.xml"))

	require.ErrorIs(t, err, scene.ErrUnresolvedReference)
	assert.Contains(t, err.Error(), `"target"`)
	assert.Contains(t, err.Error(), `"ghost"`)
	assert.Equal(t, 0, l.Pending())

	// Entities read before the failure stay registered.
	lonely, err := rt.FindEntity("lonely")
	require.NoError(t, err)
	p := gizmoOf(t, lonely)
	assert.Equal(t, 3, p.Count)
	assert.Nil(t, p.Target)
}

func TestResolvePendingOrder(t *testing.T) {
	rt := ecs.NewRuntime()

	var order []string
	r := testRegistry()
	scene.Register(r, "Log", func() *Gizmo { return &Gizmo{} },
		scene.EntityRef("target", func(p *Gizmo, v *ecs.Entity) { order = append(order, v.Name()) }),
	)
	l := scene.NewLoader(rt, r)

	for _, doc := range []string{
		`<entity><Log target="x"/></entity>`,
		`<entity><Log target="y"/></entity>`,
		`<entity><Log target="z"/></entity>`,
	} {
		_, err := l.ReadEntity(strings.NewReader(doc), "")
		require.NoError(t, err)
	}
	assert.Equal(t, 3, l.Pending())

	for _, name := range []string{"x", "y", "z"} {
		_, err := rt.NewEntity(name, 0)
		require.NoError(t, err)
	}

	require.NoError(t, l.ResolvePending())
	assert.Equal(t, []string{"z", "y", "x"}, order)

	require.NoError(t, l.ResolvePending())
	assert.Len(t, order, 3, "bindings are applied at most once")
}

func TestLoadEntities(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.xml": `<entity name="a"><Gizmo target="b"/></entity>`,
		"b.xml": `<entity name="b" layer="1"><Gizmo target="a"/></entity>`,
	})

	rt := ecs.NewRuntime()
	l := newTestLoader(rt)
	require.NoError(t, l.LoadEntities(filepath.Join(dir, "a.xml"), filepath.Join(dir, "b.xml")))

	a, _ := rt.FindEntity("a")
	b, _ := rt.FindEntity("b")
	assert.Same(t, b, gizmoOf(t, a).Target)
	assert.Same(t, a, gizmoOf(t, b).Target)
}

func TestLoadSceneErrors(t *testing.T) {
	t.Run("missing manifest", func(t *testing.T) {
		err := newTestLoader(ecs.NewRuntime()).LoadScene(filepath.Join(t.TempDir(), "none.xml"))
		assert.Error(t, err)
	})

	t.Run("wrong root", func(t *testing.T) {
		dir := writeFiles(t, map[string]string{"scene.xml": `<level/>`})
		err := newTestLoader(ecs.NewRuntime()).LoadScene(filepath.Join(dir, "scene.xml"))
		assert.ErrorIs(t, err, scene.ErrCorruptDocument)
	})

	t.Run("entry without file", func(t *testing.T) {
		dir := writeFiles(t, map[string]string{"scene.xml": `<scene><entity name="x"/></scene>`})
		err := newTestLoader(ecs.NewRuntime()).LoadScene(filepath.Join(dir, "scene.xml"))
		assert.ErrorIs(t, err, scene.ErrCorruptDocument)
	})

	t.Run("duplicate names across files", func(t *testing.T) {
		dir := writeFiles(t, map[string]string{
			"scene.xml": `<scene><entity file="e.xml" name="same"/><entity file="e.xml" name="same"/></scene>`,
			"e.xml":     `<entity layer="1"/>`,
		})
		rt := ecs.NewRuntime()
		err := newTestLoader(rt).LoadScene(filepath.Join(dir, "scene.xml"))
		assert.ErrorIs(t, err, ecs.ErrDuplicateName)
		assert.Contains(t, err.Error(), "e.xml")
		assert.Equal(t, 1, rt.Len())
	})

	t.Run("bad resources", func(t *testing.T) {
		dir := writeFiles(t, map[string]string{
			"scene.xml": `<scene resources="r.yaml"/>`,
			"r.yaml":    "a: [unclosed",
		})
		err := newTestLoader(ecs.NewRuntime()).LoadScene(filepath.Join(dir, "scene.xml"))
		assert.Error(t, err)
	})
}

func TestPrefab(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"bullet.xml": `
			<entity name="ignored" layer="1" group="bullets" position="1,1" rotation="45">
				<Gizmo count="@a" target="ship"/>
			</entity>`,
		"bad.xml": `<entity><Gizmo target="nobody"/></entity>`,
	})

	rt := ecs.NewRuntime()
	l := newTestLoader(rt, scene.WithBaseDir(dir))
	ship, err := rt.NewEntity("ship", 0)
	require.NoError(t, err)

	prefab, err := l.NewPrefab("bullet.xml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "bullet.xml"), prefab.Path())

	t.Run("document values", func(t *testing.T) {
		e, err := prefab.NewEntity("b1")
		require.NoError(t, err)

		assert.Equal(t, "b1", e.Name())
		assert.Equal(t, 1, e.Layer())
		assert.Equal(t, "bullets", e.Group())
		assert.Equal(t, vmath.V(1, 1), e.Transform().Position())
		assert.Equal(t, 2, gizmoOf(t, e).Count)
		assert.Same(t, ship, gizmoOf(t, e).Target)
	})

	t.Run("overrides and unnamed spawns", func(t *testing.T) {
		prefab.SetPosition(30, 40)
		prefab.SetRotation(0)

		first, err := prefab.NewEntity("")
		require.NoError(t, err)
		second, err := prefab.NewEntity("")
		require.NoError(t, err)

		assert.Equal(t, "", first.Name())
		assert.NotEqual(t, first.ID(), second.ID())
		assert.Equal(t, vmath.V(30, 40), second.Transform().Position())
		assert.InDelta(t, 0, second.Transform().Angle(), 1e-9)
		assert.Len(t, rt.EntitiesInGroup("bullets"), 3)
	})

	t.Run("spawn does not disturb the scene queue", func(t *testing.T) {
		_, err := l.ReadEntity(strings.NewReader(`<entity><Gizmo target="later"/></entity>`), "")
		require.NoError(t, err)

		_, err = prefab.NewEntity("b2")
		require.NoError(t, err)
		assert.Equal(t, 1, l.Pending())
	})

	t.Run("unresolved reference fails the spawn", func(t *testing.T) {
		bad, err := l.NewPrefab("bad.xml")
		require.NoError(t, err)
		_, err = bad.NewEntity("")
		assert.ErrorIs(t, err, scene.ErrUnresolvedReference)
	})

	t.Run("missing document", func(t *testing.T) {
		missing, err := l.NewPrefab("missing.xml")
		require.NoError(t, err)
		_, err = missing.NewEntity("")
		assert.Error(t, err)
	})

	t.Run("spawn during update", func(t *testing.T) {
		spawner := &Spawner{prefab: prefab}
		host, err := rt.NewEntity("host", 0)
		require.NoError(t, err)
		host.AddComponent(spawner)

		rt.Create()
		before := rt.Len()
		rt.Update()
		require.NoError(t, spawner.err)
		assert.Equal(t, before+1, rt.Len())

		rt.Update()
		assert.Equal(t, before+2, rt.Len())
	})
}

// Spawner spawns one prefab copy per update.
type Spawner struct {
	ecs.Base
	prefab *scene.Prefab
	err    error
}

func (s *Spawner) OnUpdate() {
	if _, err := s.prefab.NewEntity(""); err != nil {
		s.err = err
	}
}
