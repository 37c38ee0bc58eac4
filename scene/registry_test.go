package scene_test

import (
	"testing"

	"github.com/plus3/moka/ecs"
	"github.com/plus3/moka/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	r := scene.NewRegistry()
	registerGizmo(r, "Gizmo")
	registerMarker(r, "game.Marker")
	registerMarker(r, "game.Gizmo")

	t.Run("names", func(t *testing.T) {
		assert.Equal(t, []string{"game.Marker", "game.Gizmo", "moka.Gizmo"}, r.Names())
	})

	t.Run("default namespace wins over fallback", func(t *testing.T) {
		ct, err := r.Lookup("Gizmo", "game")
		require.NoError(t, err)
		assert.Equal(t, "moka.Gizmo", ct.Name)
	})

	t.Run("fallback namespace", func(t *testing.T) {
		ct, err := r.Lookup("Marker", "game")
		require.NoError(t, err)
		assert.Equal(t, "game.Marker", ct.Name)

		_, err = r.Lookup("Marker", "")
		assert.ErrorIs(t, err, scene.ErrUnknownComponent)
	})

	t.Run("qualified names match exactly", func(t *testing.T) {
		ct, err := r.Lookup("game.Gizmo", "other")
		require.NoError(t, err)
		assert.Equal(t, "game.Gizmo", ct.Name)

		_, err = r.Lookup("other.Gizmo", "game")
		assert.ErrorIs(t, err, scene.ErrUnknownComponent)
		assert.Contains(t, err.Error(), "component class other.Gizmo not found")
	})

	t.Run("factory makes fresh components", func(t *testing.T) {
		ct, err := r.Lookup("Gizmo", "")
		require.NoError(t, err)
		a, b := ct.New(), ct.New()
		assert.NotSame(t, a, b)
		assert.IsType(t, &Gizmo{}, a)
	})

	t.Run("field table", func(t *testing.T) {
		ct, err := r.Lookup("game.Marker", "")
		require.NoError(t, err)

		id, ok := ct.Field("id")
		require.True(t, ok)
		assert.True(t, id.IsRequired())
		assert.Equal(t, scene.KindString, id.Kind())

		note, ok := ct.Field("note")
		require.True(t, ok)
		assert.False(t, note.IsRequired())

		_, ok = ct.Field("nope")
		assert.False(t, ok)
	})

	t.Run("double registration panics", func(t *testing.T) {
		assert.Panics(t, func() { registerGizmo(r, "moka.Gizmo") })
	})

	t.Run("duplicate field panics", func(t *testing.T) {
		assert.Panics(t, func() {
			scene.Register(scene.NewRegistry(), "Twice", func() *Marker { return &Marker{} },
				scene.String("id", func(m *Marker, v string) {}),
				scene.String("id", func(m *Marker, v string) {}),
			)
		})
	})
}

func TestFieldKinds(t *testing.T) {
	ct, err := testRegistry().Lookup("Gizmo", "")
	require.NoError(t, err)

	kinds := make(map[string]scene.Kind)
	for _, f := range ct.Fields {
		kinds[f.Name()] = f.Kind()
	}
	assert.Equal(t, map[string]scene.Kind{
		"count":   scene.KindInt,
		"scale":   scene.KindFloat,
		"ratio":   scene.KindDouble,
		"visible": scene.KindBool,
		"label":   scene.KindString,
		"mode":    scene.KindEnum,
		"onHit":   scene.KindCallback,
		"target":  scene.KindEntity,
		"spawner": scene.KindPrefab,
	}, kinds)

	mode, _ := ct.Field("mode")
	assert.Equal(t, []string{"IDLE", "CHASE", "FLEE"}, mode.Variants())
	assert.Equal(t, "enum", scene.KindEnum.String())

	count, _ := ct.Field("count")
	p := &Gizmo{}
	count.Apply(p, 9)
	assert.Equal(t, 9, p.Count)
}

func TestTriggers(t *testing.T) {
	triggers := testTriggers()
	assert.Equal(t, 2, triggers.Len())

	hit, err := scene.LookupTrigger[int](triggers, "count-hits")
	require.NoError(t, err)
	assert.True(t, hit(nil, 2))

	_, err = scene.LookupTrigger[scene.None](triggers, "count-hits")
	assert.ErrorIs(t, err, scene.ErrUnknownTrigger)
	assert.Contains(t, err.Error(), "incompatible payload")

	_, err = scene.LookupTrigger[int](triggers, "")
	assert.ErrorIs(t, err, scene.ErrUnknownTrigger)

	assert.Panics(t, func() {
		scene.RegisterTrigger(triggers, "announce", func(ecs.Component, scene.None) bool { return false })
	})
}
