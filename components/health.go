package components

import (
	"github.com/plus3/moka/ecs"
	"github.com/plus3/moka/scene"
	"github.com/plus3/moka/vmath"
)

var healthFields = []scene.Field{
	scene.Float("defense", (*Health).SetDefense),
	scene.Float("hitPoints", func(h *Health, v float32) { h.HitPoints = v }),
	scene.Callback("damageTrigger", func(h *Health, t scene.Trigger[float32]) { h.DamageTrigger = t }),
	scene.Callback("destroyTrigger", func(h *Health, t scene.Trigger[scene.None]) { h.DestroyTrigger = t }),
}

// Health tracks hit points. Once they drop to zero the entity is destroyed,
// unless DestroyTrigger is set and returns false.
type Health struct {
	ecs.Base
	HitPoints      float32
	DamageTrigger  scene.Trigger[float32]
	DestroyTrigger scene.Trigger[scene.None]

	defense float32
}

func NewHealth() *Health {
	return &Health{HitPoints: 100}
}

// Defense is the fraction of incoming damage absorbed, in [0, 1].
func (h *Health) Defense() float32 {
	return h.defense
}

func (h *Health) SetDefense(defense float32) {
	h.defense = vmath.Clamp(defense, 0, 1)
}

// TakeDamage subtracts damage reduced by the defense and reports the
// effective amount to DamageTrigger.
func (h *Health) TakeDamage(damage float32) {
	damage *= 1 - h.defense
	h.HitPoints -= damage
	if h.DamageTrigger != nil {
		h.DamageTrigger(h, damage)
	}
}

func (h *Health) Dead() bool {
	return h.HitPoints <= 0
}

func (h *Health) OnUpdate() {
	e := h.Entity()
	if !h.Dead() || e.Destroyed() {
		return
	}
	if h.DestroyTrigger == nil || h.DestroyTrigger(h, scene.None{}) {
		e.Destroy()
	}
}
