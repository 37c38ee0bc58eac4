// Package debugui draws Dear ImGui inspector windows over an ecs.Runtime:
// an entity browser, a component inspector, a layer viewer and frame
// statistics. Call Overlay.Draw between the backend's BeginFrame and
// EndFrame.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/moka/ecs"
)

// Overlay owns the state of every inspector window.
type Overlay struct {
	browser   EntityBrowser
	inspector ComponentInspector
	layers    LayerViewer
	perf      PerformanceStats
	windows   []func()
}

// NewOverlay creates the inspector windows with their default settings.
func NewOverlay() *Overlay {
	return &Overlay{
		browser:   NewEntityBrowser(100),
		inspector: NewComponentInspector(),
		layers:    NewLayerViewer(),
		perf:      NewPerformanceStats(120),
	}
}

// AddWindow registers an extra render function called on every Draw.
func (o *Overlay) AddWindow(render func()) {
	o.windows = append(o.windows, render)
}

// Draw renders all windows for rt. stats may be nil when no scheduler
// drives the runtime; dt is the frame time in seconds.
func (o *Overlay) Draw(rt *ecs.Runtime, stats *ecs.SchedulerStats, dt float32) {
	if layer := o.layers.Render(rt); layer != nil {
		o.browser.SetLayerFilter(layer)
	}
	o.browser.Render(rt)
	o.inspector.Render(rt, o.browser.Selected())
	o.perf.Render(rt, stats, dt)

	for _, render := range o.windows {
		render()
	}
}

// Selected returns the entity picked in the browser, if it is still alive.
func (o *Overlay) Selected(rt *ecs.Runtime) (*ecs.Entity, bool) {
	return rt.Entity(o.browser.Selected())
}

// WantsInput reports whether ImGui is consuming mouse or keyboard input,
// in which case the game should ignore it.
func (o *Overlay) WantsInput() (mouse, keyboard bool) {
	io := imgui.CurrentIO()
	return io.WantCaptureMouse(), io.WantCaptureKeyboard()
}
