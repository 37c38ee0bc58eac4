package components

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/moka/ecs"
	"github.com/plus3/moka/scene"
)

var spriteFields = []scene.Field{
	scene.String("texture", (*Sprite).SetTexture).Required(),
	scene.String("tint", func(s *Sprite, v string) { s.tintText = v }),
	scene.Float("alpha", func(s *Sprite, v float32) { s.Alpha = v }),
	scene.Float("width", func(s *Sprite, v float32) { s.Width = v }),
	scene.Float("height", func(s *Sprite, v float32) { s.Height = v }),
}

// Sprite draws a texture centered on the entity's transform.
//
// The drawn size is the transform's size, which defaults to the sprite's
// width and height, or to the texture size when those are zero.
type Sprite struct {
	ecs.Base
	Tint   color.RGBA
	Alpha  float32
	Width  float32
	Height float32

	textures Textures
	name     string
	tintText string
	image    *ebiten.Image
}

func NewSprite(textures Textures) *Sprite {
	return &Sprite{
		Tint:     color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		Alpha:    1,
		textures: textures,
	}
}

// SetTexture selects the texture by name. It is loaded on creation.
func (s *Sprite) SetTexture(name string) {
	s.name = name
	s.image = nil
}

// SetImage uses img directly instead of a named texture.
func (s *Sprite) SetImage(img *ebiten.Image) {
	s.image = img
}

func (s *Sprite) Image() *ebiten.Image {
	return s.image
}

func (s *Sprite) OnCreate() {
	if s.tintText != "" {
		tint, err := parseColor(s.tintText)
		if err != nil {
			fail(&s.Base, err)
			return
		}
		s.Tint = tint
	}
	if s.image == nil && s.name != "" {
		img, err := s.textures.Texture(s.name)
		if err != nil {
			fail(&s.Base, err)
			return
		}
		s.image = img
	}
}

func (s *Sprite) IntrinsicSize() (float32, float32, bool) {
	if s.Width > 0 && s.Height > 0 {
		return s.Width, s.Height, true
	}
	if s.image == nil {
		return 0, 0, false
	}
	b := s.image.Bounds()
	return float32(b.Dx()), float32(b.Dy()), true
}

func (s *Sprite) Render(dst *ebiten.Image, view ebiten.GeoM) {
	if s.image == nil {
		return
	}
	b := s.image.Bounds()
	iw, ih := float64(b.Dx()), float64(b.Dy())
	if iw == 0 || ih == 0 {
		return
	}

	tr := s.Transform()
	size := tr.Size()

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-iw/2, -ih/2)
	if size.X > 0 && size.Y > 0 {
		op.GeoM.Scale(float64(size.X)/iw, float64(size.Y)/ih)
	}
	op.GeoM.Concat(tr.GeoM())
	op.GeoM.Concat(view)
	op.ColorScale.ScaleWithColor(s.Tint)
	op.ColorScale.ScaleAlpha(s.Alpha)
	op.Filter = ebiten.FilterLinear

	dst.DrawImage(s.image, op)
}

// parseColor reads "#rrggbb" or "#rrggbbaa".
func parseColor(text string) (color.RGBA, error) {
	hex := strings.TrimPrefix(text, "#")
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("%w: tint %q is not #rrggbb[aa]", scene.ErrCoercion, text)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: tint %q is not #rrggbb[aa]", scene.ErrCoercion, text)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
