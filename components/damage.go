package components

import (
	"github.com/plus3/moka/ecs"
	"github.com/plus3/moka/scene"
)

var damageFields = []scene.Field{
	scene.String("group", func(d *Damage, v string) { d.Group = v }).Required(),
	scene.Float("amount", func(d *Damage, v float32) { d.Amount = v }),
	scene.Float("radius", func(d *Damage, v float32) { d.Radius = v }),
}

// Damage hurts the first entity of Group within Radius that has Health,
// then destroys its own entity.
type Damage struct {
	ecs.Base
	Group  string
	Amount float32
	Radius float32
}

func NewDamage() *Damage {
	return &Damage{Amount: 10, Radius: 16}
}

func (d *Damage) OnUpdate() {
	self := d.Entity()
	if self.Destroyed() {
		return
	}
	pos := d.Transform().Position()

	for _, e := range d.Runtime().EntitiesInGroup(d.Group) {
		if e == self || e.Destroyed() {
			continue
		}
		health, ok := ecs.Find[*Health](e)
		if !ok || e.Transform().Position().Dist(pos) > d.Radius {
			continue
		}
		health.TakeDamage(d.Amount)
		self.Destroy()
		return
	}
}
