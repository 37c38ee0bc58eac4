package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/moka/ecs"
)

type EntityInfo struct {
	ID             ecs.EntityId
	Name           string
	Group          string
	Layer          int
	ComponentTypes []string
}

type EntityBrowser struct {
	entities           []EntityInfo
	sortColumn         int
	sortAscending      bool
	selectedEntityId   ecs.EntityId
	filterText         string
	filterLayer        *int
	maxEntitiesPerPage int
	currentPage        int
}

func NewEntityBrowser(maxEntitiesPerPage int) EntityBrowser {
	return EntityBrowser{
		sortAscending:      true,
		maxEntitiesPerPage: maxEntitiesPerPage,
	}
}

func (eb *EntityBrowser) Render(rt *ecs.Runtime) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	eb.collect(rt)

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
		eb.filterLayer = nil
	}
	if eb.filterLayer != nil {
		imgui.SameLine()
		imgui.Text(fmt.Sprintf("layer %d", *eb.filterLayer))
	}

	filtered := eb.filtered()
	start, end, pages := eb.page(len(filtered))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("ID")
		imgui.TableSetupColumn("Name")
		imgui.TableSetupColumn("Group")
		imgui.TableSetupColumn("Layer")
		imgui.TableSetupColumn("Components")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.sortColumn = int(spec.ColumnIndex())
			eb.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			eb.sortEntities()
			sortSpecs.SetSpecsDirty(false)
		}

		for _, entity := range filtered[start:end] {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := eb.selectedEntityId == entity.ID
			if imgui.SelectableBoolV(fmt.Sprintf("%d", entity.ID), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selectedEntityId = entity.ID
			}

			imgui.TableNextColumn()
			imgui.Text(entity.Name)

			imgui.TableNextColumn()
			imgui.Text(entity.Group)

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", entity.Layer))

			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.ComponentTypes, ", "))
		}

		imgui.EndTable()
	}

	if pages > 1 {
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, pages, len(filtered)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < pages-1 {
			eb.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(filtered)))
	}

	imgui.End()
}

// collect snapshots the runtime's entities. Entities come and go every frame
// so the list is rebuilt on each render.
func (eb *EntityBrowser) collect(rt *ecs.Runtime) {
	eb.entities = eb.entities[:0]
	for _, e := range rt.AllEntities() {
		comps := e.Components()
		types := make([]string, len(comps))
		for i, c := range comps {
			types[i] = typeName(c)
		}
		eb.entities = append(eb.entities, EntityInfo{
			ID:             e.ID(),
			Name:           e.Name(),
			Group:          e.Group(),
			Layer:          e.Layer(),
			ComponentTypes: types,
		})
	}
	eb.sortEntities()
}

func (eb *EntityBrowser) sortEntities() {
	sort.SliceStable(eb.entities, func(i, j int) bool {
		a, b := eb.entities[i], eb.entities[j]
		if !eb.sortAscending {
			a, b = b, a
		}

		var less bool
		switch eb.sortColumn {
		case 1:
			less = a.Name < b.Name
		case 2:
			less = a.Group < b.Group
		case 3:
			less = a.Layer < b.Layer
		case 4:
			less = strings.Join(a.ComponentTypes, ",") < strings.Join(b.ComponentTypes, ",")
		default:
			less = a.ID < b.ID
		}

		return less
	})
}

// filtered keeps the entities whose id, name, group or component types
// contain the filter text, restricted to the selected layer if any.
func (eb *EntityBrowser) filtered() []EntityInfo {
	if eb.filterText == "" && eb.filterLayer == nil {
		return eb.entities
	}

	filtered := make([]EntityInfo, 0, len(eb.entities))
	filterLower := strings.ToLower(eb.filterText)

	for _, entity := range eb.entities {
		if eb.filterLayer != nil && entity.Layer != *eb.filterLayer {
			continue
		}

		if eb.filterText != "" {
			idStr := fmt.Sprintf("%d", entity.ID)
			componentsStr := strings.ToLower(strings.Join(entity.ComponentTypes, " "))

			if !strings.Contains(idStr, filterLower) &&
				!strings.Contains(strings.ToLower(entity.Name), filterLower) &&
				!strings.Contains(strings.ToLower(entity.Group), filterLower) &&
				!strings.Contains(componentsStr, filterLower) {
				continue
			}
		}

		filtered = append(filtered, entity)
	}

	return filtered
}

// page clamps the current page to n entities and returns its bounds and
// the page count.
func (eb *EntityBrowser) page(n int) (start, end, pages int) {
	pages = max(1, (n+eb.maxEntitiesPerPage-1)/eb.maxEntitiesPerPage)
	eb.currentPage = min(eb.currentPage, pages-1)
	start = eb.currentPage * eb.maxEntitiesPerPage
	end = min(start+eb.maxEntitiesPerPage, n)
	return start, end, pages
}

func (eb *EntityBrowser) SetLayerFilter(layer *int) {
	eb.filterLayer = layer
	eb.currentPage = 0
}

func (eb *EntityBrowser) Selected() ecs.EntityId {
	return eb.selectedEntityId
}

func (eb *EntityBrowser) Select(id ecs.EntityId) {
	eb.selectedEntityId = id
}

func typeName(v any) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", v), "*")
}
