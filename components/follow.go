package components

import (
	"github.com/plus3/moka/ecs"
	"github.com/plus3/moka/scene"
)

var followFields = []scene.Field{
	scene.EntityRef("target", func(f *Follow, e *ecs.Entity) { f.Target = e }).Required(),
	scene.Float("speed", func(f *Follow, v float32) { f.Speed = v }),
	scene.Bool("lookAt", func(f *Follow, v bool) { f.LookAt = v }),
}

// Follow moves the entity toward Target at Speed units per second, or snaps
// to it when Speed is zero. The target is dropped once it is destroyed.
type Follow struct {
	ecs.Base
	Target *ecs.Entity
	Speed  float32
	LookAt bool
}

func NewFollow() *Follow {
	return &Follow{}
}

func (f *Follow) OnUpdate() {
	if f.Target == nil {
		return
	}
	if f.Target.Destroyed() {
		f.Target = nil
		return
	}

	tr := f.Transform()
	pos := tr.Position()
	goal := f.Target.Transform().Position()
	if f.LookAt && goal != pos {
		tr.LookAt(goal)
	}

	dist := goal.Dist(pos)
	step := f.Speed * float32(f.Runtime().Frame().Delta)
	if f.Speed <= 0 || step >= dist {
		tr.SetPosition(goal.X, goal.Y)
		return
	}
	move := goal.Sub(pos).Nor().Mul(step)
	tr.Move(move.X, move.Y)
}
