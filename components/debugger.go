package components

import (
	"log"

	"github.com/plus3/moka/ecs"
	"github.com/plus3/moka/scene"
)

// DebugOption selects what a Debugger reports.
type DebugOption int

const (
	DebugNone DebugOption = iota
	DebugPosition
	DebugRotation
	DebugSize
)

func (o DebugOption) String() string {
	switch o {
	case DebugNone:
		return "NONE"
	case DebugPosition:
		return "POSITION"
	case DebugRotation:
		return "ROTATION"
	case DebugSize:
		return "SIZE"
	}
	return "UNKNOWN"
}

var debuggerFields = []scene.Field{
	scene.Enum("option", []DebugOption{DebugNone, DebugPosition, DebugRotation, DebugSize},
		func(d *Debugger, v DebugOption) { d.Option = v }),
	scene.Double("frequency", func(d *Debugger, v float64) { d.Frequency = v }),
}

// Debugger logs one property of its entity's transform every Frequency seconds.
type Debugger struct {
	ecs.Base
	Option    DebugOption
	Frequency float64

	logger  *log.Logger
	elapsed float64
}

func NewDebugger(logger *log.Logger) *Debugger {
	return &Debugger{Frequency: 1, logger: logger}
}

func (d *Debugger) OnUpdate() {
	d.elapsed += d.Runtime().Frame().Delta
	if d.elapsed <= d.Frequency {
		return
	}
	d.elapsed = 0

	tr := d.Transform()
	name := d.Entity().Name()
	switch d.Option {
	case DebugPosition:
		d.logger.Printf("[debug] %s position: %v", name, tr.Position())
	case DebugRotation:
		d.logger.Printf("[debug] %s rotation: %g", name, tr.Front().Angle())
	case DebugSize:
		d.logger.Printf("[debug] %s size: %v", name, tr.Size())
	}
}
