package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanReferences(t *testing.T) {
	tests := []struct {
		expr string
		want []string
	}{
		{"1 + 2", nil},
		{"@a+@b", []string{"a", "b"}},
		{"@width/2-@height", []string{"width", "height"}},
		{"(@a)*(@a)", []string{"a"}},
		{"@ship.speed % 3", []string{"ship.speed"}},
		{"@x1 * @x2", []string{"x1", "x2"}},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			refs, err := scanReferences(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, refs)
		})
	}

	for _, bad := range []string{"@1 + 2", "2 + @", "@ + 1", "@(a)"} {
		t.Run("malformed "+bad, func(t *testing.T) {
			_, err := scanReferences(bad)
			assert.ErrorIs(t, err, ErrCoercion)
		})
	}
}

func TestTranslate(t *testing.T) {
	tests := map[string]string{
		"1 + 2":       "(1 + 2)",
		"7 % -3":      "fmod(7, (-3))",
		"1 - -2":      "(1 - (-2))",
		"2 * (3 % 2)": "(2 * (fmod(3, 2)))",
		"+4":          "4",
	}
	for expr, want := range tests {
		got, err := translate(expr)
		require.NoError(t, err, expr)
		assert.Equal(t, want, got, expr)
	}

	for _, expr := range []string{"(1 + 2", "1 + 2)", "1 2", "*3", "fmod(1, 2)"} {
		_, err := translate(expr)
		assert.ErrorIs(t, err, ErrCoercion, expr)
	}
}

func TestEvaluator(t *testing.T) {
	eval := NewEvaluator()

	t.Run("arithmetic", func(t *testing.T) {
		tests := map[string]float64{
			"2+3":            5,
			"2 * (3 + 4)":    14,
			"7 % 4":          3,
			"-7 % 3":         -1,
			"7 % -3":         1,
			"-7.5 % 2":       -1.5,
			"2 * 7 % 4":      2,
			"1 / 4":          0.25,
			"-3 * 2":         -6,
			"1.5e2":          150,
			" 10 - 2 - 3 ":   5,
			"(2)*(-(3 + 1))": -8,
		}
		for expr, want := range tests {
			got, err := eval.Evaluate(expr)
			require.NoError(t, err, expr)
			assert.InDelta(t, want, got, 1e-9, expr)
		}
	})

	t.Run("rejected input", func(t *testing.T) {
		for _, expr := range []string{
			"",
			"   ",
			"x + 1",
			"print(1)",
			"2 ^ 3",
			"1 -- comment",
			"1 .. 2",
			"2 +",
			"0 / 0",
			"7 % 0",
			"e",
		} {
			_, err := eval.Evaluate(expr)
			assert.ErrorIs(t, err, ErrCoercion, expr)
		}
	})

	t.Run("state is reusable after errors", func(t *testing.T) {
		_, err := eval.Evaluate("2 +")
		require.Error(t, err)
		got, err := eval.Evaluate("4 * 4")
		require.NoError(t, err)
		assert.Equal(t, 16.0, got)
	})
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "5", formatNumber(5))
	assert.Equal(t, "-12", formatNumber(-12))
	assert.Equal(t, "2.5", formatNumber(2.5))
	assert.Equal(t, "0", formatNumber(0))
}
