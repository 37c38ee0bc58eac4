package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/moka/ecs"
)

type PerformanceStats struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
}

func NewPerformanceStats(historyFrames int) PerformanceStats {
	return PerformanceStats{
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
	}
}

func (ps *PerformanceStats) Render(rt *ecs.Runtime, stats *ecs.SchedulerStats, deltaTime float32) {
	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ps.record(deltaTime)

	imgui.Text(fmt.Sprintf("Total Entities: %d", rt.Len()))
	imgui.Text(fmt.Sprintf("Layers: %d", rt.LayerCount()))
	frame := rt.Frame()
	imgui.Text(fmt.Sprintf("Frame: %d (%.1fs elapsed)", frame.Count, frame.Elapsed))

	avg := ps.average()
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000.0/avg))
	}

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.frameHistory[0], int32(len(ps.frameHistory)))

	if stats != nil && imgui.TreeNodeStr("Phase Timing") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("PhaseStatsTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Phase")
			imgui.TableSetupColumn("Runs")
			imgui.TableSetupColumn("Last")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableHeadersRow()

			for _, phase := range stats.Phases {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(phase.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", phase.ExecutionCount))
				imgui.TableNextColumn()
				imgui.Text(phase.LastDuration.String())
				imgui.TableNextColumn()
				imgui.Text(phase.AvgDuration.String())
				imgui.TableNextColumn()
				imgui.Text(phase.MaxDuration.String())
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

func (ps *PerformanceStats) record(deltaTime float32) {
	ps.frameHistory[ps.frameIndex] = deltaTime * 1000.0
	ps.frameIndex = (ps.frameIndex + 1) % ps.historyFrames
}

// average is the mean frame time in milliseconds over the recorded frames.
func (ps *PerformanceStats) average() float32 {
	var total float32
	var n int
	for _, ft := range ps.frameHistory {
		if ft > 0 {
			total += ft
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return total / float32(n)
}

type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

func (ft *FrameTimer) GetDeltaTime() float32 {
	now := time.Now()
	delta := float32(now.Sub(ft.lastFrameTime).Seconds())
	ft.lastFrameTime = now
	return delta
}
