package components

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/moka/ecs"
	"github.com/plus3/moka/scene"
)

// keys lists every ebiten key, so documents can name one by its String form
// ("Space", "ArrowLeft", "A", ...).
var keys = func() []ebiten.Key {
	all := make([]ebiten.Key, 0, int(ebiten.KeyMax)+1)
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		all = append(all, k)
	}
	return all
}()

var shootingFields = []scene.Field{
	scene.Callback("trigger", func(s *Shooting, t scene.Trigger[*scene.Prefab]) { s.Trigger = t }),
	scene.PrefabRef("bulletPrefab", func(s *Shooting, p *scene.Prefab) { s.BulletPrefab = p }).Required(),
	scene.Enum("button", keys, func(s *Shooting, k ebiten.Key) { s.Button = k }).Required(),
}

// Shooting fires BulletPrefab from the entity's position and heading each
// time Button is pressed. When Trigger is set, the trigger spawns the bullet
// instead.
type Shooting struct {
	ecs.Base
	Trigger      scene.Trigger[*scene.Prefab]
	BulletPrefab *scene.Prefab
	Button       ebiten.Key

	input Input
}

func NewShooting(input Input) *Shooting {
	return &Shooting{input: input}
}

func (s *Shooting) OnUpdate() {
	if !s.input.JustPressed(s.Button) {
		return
	}
	s.Fire()
}

// Fire spawns one bullet regardless of input.
func (s *Shooting) Fire() {
	tr := s.Transform()
	p := tr.Position()
	s.BulletPrefab.SetPosition(p.X, p.Y)
	s.BulletPrefab.SetRotation(float32(tr.Angle() * 180 / math.Pi))

	if s.Trigger != nil {
		s.Trigger(s, s.BulletPrefab)
		return
	}
	if _, err := s.BulletPrefab.NewEntity(""); err != nil {
		fail(&s.Base, err)
	}
}
