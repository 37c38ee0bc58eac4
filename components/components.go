// Package components provides the built-in components available to every
// scene document under the "moka" namespace.
package components

import (
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/moka/ecs"
	"github.com/plus3/moka/scene"
)

// Input reports keyboard state.
type Input interface {
	Pressed(k ebiten.Key) bool
	JustPressed(k ebiten.Key) bool
}

// Keyboard reads ebiten's keyboard state.
type Keyboard struct{}

func (Keyboard) Pressed(k ebiten.Key) bool {
	return ebiten.IsKeyPressed(k)
}

func (Keyboard) JustPressed(k ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(k)
}

type options struct {
	input    Input
	textures Textures
	logger   *log.Logger
}

type Option func(*options)

// WithInput replaces the keyboard, mostly for tests.
func WithInput(in Input) Option {
	return func(o *options) {
		o.input = in
	}
}

// WithTextures sets where sprites load their textures from.
func WithTextures(t Textures) Option {
	return func(o *options) {
		o.textures = t
	}
}

// WithTextureDir loads sprite textures from image files under dir.
func WithTextureDir(dir string) Option {
	return WithTextures(NewTextureCache(dir))
}

func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		input:  Keyboard{},
		logger: log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.textures == nil {
		o.textures = NewTextureCache("")
	}
	return o
}

// Register adds every built-in component to r.
func Register(r *scene.Registry, opts ...Option) {
	o := newOptions(opts)

	scene.Register(r, "Sprite", func() *Sprite { return NewSprite(o.textures) }, spriteFields...)
	scene.Register(r, "Camera", NewCamera, cameraFields...)
	scene.Register(r, "Bullet", NewBullet, bulletFields...)
	scene.Register(r, "Debugger", func() *Debugger { return NewDebugger(o.logger) }, debuggerFields...)
	scene.Register(r, "Health", NewHealth, healthFields...)
	scene.Register(r, "Damage", NewDamage, damageFields...)
	scene.Register(r, "Shooting", func() *Shooting { return NewShooting(o.input) }, shootingFields...)
	scene.Register(r, "ShipMovement", func() *ShipMovement { return NewShipMovement(o.input) }, shipMovementFields...)
	scene.Register(r, "Follow", NewFollow, followFields...)
}

// fail reports err as a fatal frame error of the component's runtime.
func fail(c *ecs.Base, err error) {
	if err != nil {
		c.Runtime().Fail(err)
	}
}
