package components

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/moka/ecs"
	"github.com/plus3/moka/scene"
)

var cameraFields = []scene.Field{
	scene.Float("width", func(c *Camera, v float32) { c.Width = v }),
	scene.Float("height", func(c *Camera, v float32) { c.Height = v }),
	scene.Bool("current", func(c *Camera, v bool) { c.Current = v }),
}

// Camera maps world coordinates to the screen. The entity's position is
// shown at the center of a Width x Height viewport and its rotation turns
// the view. A current camera becomes the runtime's active camera on creation.
type Camera struct {
	ecs.Base
	Width   float32
	Height  float32
	Current bool
}

func NewCamera() *Camera {
	return &Camera{Current: true}
}

func (c *Camera) OnCreate() {
	if c.Current {
		c.Runtime().SetCamera(c)
	}
}

func (c *Camera) OnDestroy() {
	if c.Runtime().Camera() == ecs.Camera(c) {
		c.Runtime().SetCamera(nil)
	}
}

// View returns the world-to-screen matrix.
func (c *Camera) View() ebiten.GeoM {
	tr := c.Transform()
	p := tr.Position()

	var g ebiten.GeoM
	g.Translate(-float64(p.X), -float64(p.Y))
	g.Rotate(-tr.Angle())
	g.Translate(float64(c.Width)/2, float64(c.Height)/2)
	return g
}

// ScreenToWorld converts a screen position into world coordinates.
func (c *Camera) ScreenToWorld(x, y float64) (float64, float64) {
	g := c.View()
	g.Invert()
	return g.Apply(x, y)
}
