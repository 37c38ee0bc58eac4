package components

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/moka/ecs"
	"github.com/plus3/moka/scene"
	"github.com/plus3/moka/vmath"
)

var shipMovementFields = []scene.Field{
	scene.Float("speed", func(s *ShipMovement, v float32) { s.Speed = v }),
	scene.Float("boundLeft", func(s *ShipMovement, v float32) { s.BoundLeft = v }),
	scene.Float("boundRight", func(s *ShipMovement, v float32) { s.BoundRight = v }),
	scene.Enum("left", keys, func(s *ShipMovement, k ebiten.Key) { s.Left = k }),
	scene.Enum("right", keys, func(s *ShipMovement, k ebiten.Key) { s.Right = k }),
}

// ShipMovement slides the entity horizontally while Left or Right is held,
// keeping it within [BoundLeft, BoundRight] when BoundRight > BoundLeft.
type ShipMovement struct {
	ecs.Base
	Speed      float32
	BoundLeft  float32
	BoundRight float32
	Left       ebiten.Key
	Right      ebiten.Key

	input Input
}

func NewShipMovement(input Input) *ShipMovement {
	return &ShipMovement{
		Speed: 50,
		Left:  ebiten.KeyA,
		Right: ebiten.KeyD,
		input: input,
	}
}

func (s *ShipMovement) OnUpdate() {
	tr := s.Transform()
	if s.input.Pressed(s.Right) {
		tr.MoveDelta(s.Speed, 0)
	}
	if s.input.Pressed(s.Left) {
		tr.MoveDelta(-s.Speed, 0)
	}

	if s.BoundRight > s.BoundLeft {
		p := tr.Position()
		tr.SetPosition(vmath.Clamp(p.X, s.BoundLeft, s.BoundRight), p.Y)
	}
}
