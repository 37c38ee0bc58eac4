package components

import (
	"log"

	"github.com/plus3/moka/ecs"
	"github.com/plus3/moka/scene"
)

// RegisterTriggers adds the sample triggers:
//
//	spawn-bullet    Trigger[*scene.Prefab]  spawns an unnamed copy of the prefab
//	log-damage      Trigger[float32]        logs the damage taken
//	explode         Trigger[scene.None]     logs and lets the entity be destroyed
//	keep-alive      Trigger[scene.None]     vetoes destruction
func RegisterTriggers(t *scene.Triggers, logger *log.Logger) {
	scene.RegisterTrigger(t, "spawn-bullet", func(source ecs.Component, p *scene.Prefab) bool {
		if _, err := p.NewEntity(""); err != nil {
			logger.Printf("[trigger] spawn-bullet: %v", err)
			return false
		}
		return true
	})
	scene.RegisterTrigger(t, "log-damage", func(source ecs.Component, damage float32) bool {
		logger.Printf("[trigger] %s took %.1f damage", entityName(source), damage)
		return true
	})
	scene.RegisterTrigger(t, "explode", func(source ecs.Component, _ scene.None) bool {
		logger.Printf("[trigger] %s exploded", entityName(source))
		return true
	})
	scene.RegisterTrigger(t, "keep-alive", func(source ecs.Component, _ scene.None) bool {
		return false
	})
}

func entityName(c ecs.Component) string {
	type owned interface{ Entity() *ecs.Entity }
	if o, ok := c.(owned); ok && o.Entity() != nil && o.Entity().Name() != "" {
		return o.Entity().Name()
	}
	return "entity"
}
