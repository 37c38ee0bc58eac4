package components

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	c, err := parseColor("#ff8000")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0xff, G: 0x80, B: 0x00, A: 0xff}, c)

	c, err = parseColor("10203040")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}, c)

	for _, bad := range []string{"", "#fff", "#gg0000", "#ff00ff00ff"} {
		_, err := parseColor(bad)
		assert.Error(t, err, bad)
	}
}
