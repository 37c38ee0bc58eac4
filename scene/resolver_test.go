package scene_test

import (
	"testing"

	"github.com/plus3/moka/ecs"
	"github.com/plus3/moka/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gizmoField(t *testing.T, name string) scene.Field {
	t.Helper()
	ct, err := testRegistry().Lookup("Gizmo", "")
	require.NoError(t, err)
	f, ok := ct.Field(name)
	require.True(t, ok)
	return f
}

func newTestResolver(rt *ecs.Runtime) *scene.Resolver {
	prefabs := func(path string) (*scene.Prefab, error) {
		return scene.NewLoader(rt, scene.NewRegistry()).NewPrefab(path)
	}
	return scene.NewResolver(testResources(), testTriggers(), rt, prefabs)
}

func TestResolveLiterals(t *testing.T) {
	r := newTestResolver(ecs.NewRuntime())

	tests := []struct {
		field string
		raw   string
		want  any
	}{
		{"count", "42", 42},
		{"count", "-7", -7},
		{"scale", "3.5", float32(3.5)},
		{"ratio", "0.125", 0.125},
		{"visible", "true", true},
		{"visible", "false", false},
		{"label", "anything at all", "anything at all"},
		{"label", "", ""},
		{"mode", "CHASE", Chase},
	}

	for _, tt := range tests {
		t.Run(tt.field+"="+tt.raw, func(t *testing.T) {
			v, deferred, err := r.Resolve(gizmoField(t, tt.field), tt.raw)
			require.NoError(t, err)
			assert.False(t, deferred)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestResolveLiteralFailures(t *testing.T) {
	r := newTestResolver(ecs.NewRuntime())

	tests := []struct {
		field string
		raw   string
		err   error
	}{
		{"count", "3.5", scene.ErrCoercion},
		{"count", "", scene.ErrCoercion},
		{"scale", "wide", scene.ErrCoercion},
		{"visible", "yes please", scene.ErrCoercion},
		{"mode", "chase", scene.ErrCoercion},
		{"mode", "", scene.ErrCoercion},
		{"onHit", "", scene.ErrUnknownTrigger},
		{"onHit", "missing", scene.ErrUnknownTrigger},
		{"onHit", "announce", scene.ErrUnknownTrigger},
	}

	for _, tt := range tests {
		t.Run(tt.field+"="+tt.raw, func(t *testing.T) {
			_, _, err := r.Resolve(gizmoField(t, tt.field), tt.raw)
			assert.ErrorIs(t, err, tt.err)
		})
	}

	t.Run("enum error names the value", func(t *testing.T) {
		_, _, err := r.Resolve(gizmoField(t, "mode"), "SLEEP")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"SLEEP"`)
	})
}

func TestResolveReferences(t *testing.T) {
	r := newTestResolver(ecs.NewRuntime())

	tests := []struct {
		field string
		raw   string
		want  any
	}{
		{"count", "@a", 2},
		{"count", "@half", 0},
		{"scale", "@half", float32(0.5)},
		{"ratio", "@b", 3.0},
		{"visible", "@on", true},
		{"label", "@title", "hello"},
		{"mode", "@mode", Flee},
	}

	for _, tt := range tests {
		t.Run(tt.field+"="+tt.raw, func(t *testing.T) {
			v, deferred, err := r.Resolve(gizmoField(t, tt.field), tt.raw)
			require.NoError(t, err)
			assert.False(t, deferred)
			assert.Equal(t, tt.want, v)
		})
	}

	t.Run("trigger by resource", func(t *testing.T) {
		v, _, err := r.Resolve(gizmoField(t, "onHit"), "@hit")
		require.NoError(t, err)
		trigger := v.(scene.Trigger[int])
		assert.True(t, trigger(nil, 1))
		assert.False(t, trigger(nil, 0))
	})

	t.Run("prefab by resource", func(t *testing.T) {
		v, _, err := r.Resolve(gizmoField(t, "spawner"), "@bullet")
		require.NoError(t, err)
		assert.Equal(t, "bullet.xml", v.(*scene.Prefab).Path())
	})

	t.Run("unknown resource", func(t *testing.T) {
		_, _, err := r.Resolve(gizmoField(t, "count"), "@nothing")
		assert.ErrorIs(t, err, scene.ErrUnknownResource)
	})

	t.Run("wrong resource type", func(t *testing.T) {
		_, _, err := r.Resolve(gizmoField(t, "count"), "@title")
		assert.ErrorIs(t, err, scene.ErrCoercion)

		_, _, err = r.Resolve(gizmoField(t, "label"), "@a")
		assert.ErrorIs(t, err, scene.ErrCoercion)
	})

	t.Run("bare marker", func(t *testing.T) {
		_, _, err := r.Resolve(gizmoField(t, "count"), "@")
		assert.ErrorIs(t, err, scene.ErrCoercion)
	})
}

func TestResolveExpressions(t *testing.T) {
	r := newTestResolver(ecs.NewRuntime())

	tests := []struct {
		field string
		raw   string
		want  any
	}{
		{"count", "$(@a+@b)", 5},
		{"count", "$(@ab - @a)", 8},
		{"count", "$(@a*@neg)", -8},
		{"count", "$(@b-@neg)", 7},
		{"count", "$((1 + 2) * 4 % 5)", 2},
		{"scale", "$(@a / 4)", float32(0.5)},
		{"ratio", "$(@half*@half)", 0.25},
		{"label", "$(10 / 4)", "2.5"},
		{"label", "$(6 / 3)", "2"},
	}

	for _, tt := range tests {
		t.Run(tt.field+"="+tt.raw, func(t *testing.T) {
			v, deferred, err := r.Resolve(gizmoField(t, tt.field), tt.raw)
			require.NoError(t, err)
			assert.False(t, deferred)
			assert.Equal(t, tt.want, v)
		})
	}

	failures := []struct {
		name string
		raw  string
		err  error
	}{
		{"non integral into int", "$(@a / 4)", scene.ErrCoercion},
		{"missing close", "$(1 + 2", scene.ErrCoercion},
		{"missing open paren", "$1 + 2)", scene.ErrCoercion},
		{"bad reference", "$(@1 + 2)", scene.ErrCoercion},
		{"unknown reference", "$(@zzz + 2)", scene.ErrUnknownResource},
		{"letters", "$(os.exit(1))", scene.ErrCoercion},
		{"comment", "$(1 -- 2)", scene.ErrCoercion},
		{"division by zero", "$(1 / 0)", scene.ErrCoercion},
		{"syntax", "$(1 + * 2)", scene.ErrCoercion},
		{"empty", "$()", scene.ErrCoercion},
	}

	for _, tt := range failures {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := r.Resolve(gizmoField(t, "count"), tt.raw)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestResolveEntityReference(t *testing.T) {
	rt := ecs.NewRuntime()
	r := newTestResolver(rt)
	f := gizmoField(t, "target")

	t.Run("missing entity defers", func(t *testing.T) {
		v, deferred, err := r.Resolve(f, "boss")
		require.NoError(t, err)
		assert.True(t, deferred)
		assert.Nil(t, v)
	})

	boss, err := rt.NewEntity("boss", 0)
	require.NoError(t, err)

	t.Run("literal name", func(t *testing.T) {
		v, deferred, err := r.Resolve(f, "boss")
		require.NoError(t, err)
		assert.False(t, deferred)
		assert.Same(t, boss, v)
	})

	t.Run("marker looks up entities, not resources", func(t *testing.T) {
		v, deferred, err := r.Resolve(f, "@boss")
		require.NoError(t, err)
		assert.False(t, deferred)
		assert.Same(t, boss, v)
	})
}
