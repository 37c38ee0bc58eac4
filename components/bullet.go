package components

import (
	"github.com/plus3/moka/ecs"
	"github.com/plus3/moka/scene"
)

var bulletFields = []scene.Field{
	scene.Float("speed", func(b *Bullet, v float32) { b.Speed = v }),
	scene.Double("lifetime", func(b *Bullet, v float64) { b.Lifetime = v }),
}

// Bullet moves its entity forward along the transform's front vector.
// With a positive Lifetime, in seconds, the entity is destroyed once it
// has flown that long.
type Bullet struct {
	ecs.Base
	Speed    float32
	Lifetime float64

	age float64
}

func NewBullet() *Bullet {
	return &Bullet{Speed: 300}
}

func (b *Bullet) OnUpdate() {
	dt := b.Runtime().Frame().Delta
	tr := b.Transform()

	step := tr.Front().Mul(b.Speed * float32(dt))
	tr.Move(step.X, step.Y)

	b.age += dt
	if b.Lifetime > 0 && b.age >= b.Lifetime {
		b.Entity().Destroy()
	}
}
