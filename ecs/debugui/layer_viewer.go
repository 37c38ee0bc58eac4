package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/moka/ecs"
)

type LayerInfo struct {
	Index       int
	EntityCount int
	Drawables   int
	Groups      []string
}

type LayerViewer struct {
	layers        []LayerInfo
	selectedLayer *int
	sortColumn    int
	sortAscending bool
}

func NewLayerViewer() LayerViewer {
	return LayerViewer{sortAscending: true}
}

// Render draws the layer table and returns the layer clicked this frame,
// if any.
func (lv *LayerViewer) Render(rt *ecs.Runtime) *int {
	if !imgui.BeginV("Layer Viewer", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return nil
	}

	lv.collect(rt)

	maxEntityCount := 0
	for _, layer := range lv.layers {
		maxEntityCount = max(maxEntityCount, layer.EntityCount)
	}

	var clicked *int

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("LayerTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Layer")
		imgui.TableSetupColumn("Entities")
		imgui.TableSetupColumn("Drawables")
		imgui.TableSetupColumn("Groups")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			lv.sortColumn = int(spec.ColumnIndex())
			lv.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			lv.sortLayers()
			sortSpecs.SetSpecsDirty(false)
		}

		for _, layer := range lv.layers {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := lv.selectedLayer != nil && *lv.selectedLayer == layer.Index
			if imgui.SelectableBoolV(fmt.Sprintf("%d", layer.Index), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				index := layer.Index
				clicked = &index
				lv.selectedLayer = &index
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", layer.EntityCount))
			if maxEntityCount > 0 {
				barWidth := float32(layer.EntityCount) / float32(maxEntityCount) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", layer.Drawables))

			imgui.TableNextColumn()
			imgui.Text(strings.Join(layer.Groups, ", "))
		}

		imgui.EndTable()
	}

	imgui.End()
	return clicked
}

func (lv *LayerViewer) collect(rt *ecs.Runtime) {
	lv.layers = lv.layers[:0]
	for i := range rt.LayerCount() {
		info := LayerInfo{Index: i}
		groups := make(map[string]bool)
		for _, e := range rt.EntitiesInLayer(i) {
			info.EntityCount++
			if _, ok := e.Drawable(); ok {
				info.Drawables++
			}
			if g := e.Group(); g != "" && !groups[g] {
				groups[g] = true
				info.Groups = append(info.Groups, g)
			}
		}
		sort.Strings(info.Groups)
		lv.layers = append(lv.layers, info)
	}
	lv.sortLayers()
}

func (lv *LayerViewer) sortLayers() {
	sort.SliceStable(lv.layers, func(i, j int) bool {
		a, b := lv.layers[i], lv.layers[j]
		if !lv.sortAscending {
			a, b = b, a
		}

		var less bool
		switch lv.sortColumn {
		case 1:
			less = a.EntityCount < b.EntityCount
		case 2:
			less = a.Drawables < b.Drawables
		case 3:
			less = strings.Join(a.Groups, ",") < strings.Join(b.Groups, ",")
		default:
			less = a.Index < b.Index
		}

		return less
	})
}
