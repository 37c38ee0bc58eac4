package debugui

import (
	"fmt"
	"math"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/moka/ecs"
)

var entityPtrType = reflect.TypeFor[*ecs.Entity]()

type toggler interface {
	Enabled() bool
	SetEnabled(bool)
}

type ComponentInspector struct {
	selectedEntityId ecs.EntityId
	fields           fieldCache
}

func NewComponentInspector() ComponentInspector {
	return ComponentInspector{fields: make(fieldCache)}
}

func (ci *ComponentInspector) Render(rt *ecs.Runtime, selectedEntityId ecs.EntityId) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ci.selectedEntityId = selectedEntityId

	if ci.selectedEntityId == ecs.NoEntity {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}

	entity, ok := rt.Entity(ci.selectedEntityId)
	if !ok {
		imgui.Text(fmt.Sprintf("Entity %d no longer exists", ci.selectedEntityId))
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Entity ID: %d", entity.ID()))
	imgui.Text(fmt.Sprintf("Name: %s", entity.Name()))
	imgui.Text(fmt.Sprintf("Group: %s  Layer: %d", entity.Group(), entity.Layer()))
	if entity.Destroyed() {
		imgui.Text("destroyed")
	}
	imgui.Separator()

	if imgui.TreeNodeStr("Transform") {
		ci.renderTransform(entity.Transform())
		imgui.TreePop()
	}

	for i, c := range entity.Components() {
		if imgui.TreeNodeStr(fmt.Sprintf("%s##%d", typeName(c), i)) {
			if t, ok := c.(toggler); ok {
				enabled := t.Enabled()
				if imgui.Checkbox("enabled", &enabled) {
					t.SetEnabled(enabled)
				}
			}
			ci.renderComponent(c)
			imgui.TreePop()
		}
	}

	imgui.End()
}

func (ci *ComponentInspector) renderTransform(tr *ecs.Transform) {
	pos := tr.Position()
	x, y := pos.X, pos.Y
	imgui.SetNextItemWidth(150)
	changedX := imgui.InputFloat("x", &x)
	imgui.SetNextItemWidth(150)
	changedY := imgui.InputFloat("y", &y)
	if changedX || changedY {
		tr.SetPosition(x, y)
	}

	degrees := float32(tr.Angle() * 180 / math.Pi)
	imgui.SetNextItemWidth(150)
	if imgui.InputFloat("rotation", &degrees) {
		tr.SetRotation(degrees)
	}

	size := tr.Size()
	imgui.Text(fmt.Sprintf("size: %v (own: %t)", size, tr.UsesOwnSize()))
}

func (ci *ComponentInspector) renderComponent(component any) {
	val := reflect.ValueOf(component)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	for _, field := range ci.fields.fields(val.Type()) {
		ci.renderField(field.Name, val.Field(field.Index), field)
	}
}

func (ci *ComponentInspector) renderField(name string, val reflect.Value, field FieldInfo) {
	if !val.IsValid() {
		imgui.Text(fmt.Sprintf("%s: <invalid>", name))
		return
	}

	if field.IsPointer {
		if val.IsNil() {
			imgui.Text(fmt.Sprintf("%s: nil", name))
			return
		}
		if val.Type() == entityPtrType {
			e := val.Interface().(*ecs.Entity)
			imgui.Text(fmt.Sprintf("%s: entity %d %q", name, e.ID(), e.Name()))
			return
		}
		if len(ci.fields.fields(field.Type)) == 0 {
			imgui.Text(fmt.Sprintf("%s: %s", name, val.Type()))
			return
		}
		val = val.Elem()
	}

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("##%s", name), &v) {
			setField(val, int64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("##%s", name), &v) && v >= 0 {
			setField(val, uint64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(fmt.Sprintf("##%s", name), &v) {
			setField(val, float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name, &v) {
			setField(val, v)
		}

	case reflect.String:
		v := val.String()
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(fmt.Sprintf("##%s", name), "", &v, imgui.InputTextFlagsNone, nil) {
			setField(val, v)
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(name) {
			for _, nf := range ci.fields.fields(val.Type()) {
				ci.renderField(nf.Name, val.Field(nf.Index), nf)
			}
			imgui.TreePop()
		}

	case reflect.Func:
		if val.IsNil() {
			imgui.Text(fmt.Sprintf("%s: unset", name))
		} else {
			imgui.Text(fmt.Sprintf("%s: set", name))
		}

	case reflect.Slice:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
	}
}

// setField stores v into an addressable field of a matching kind. Values
// that do not fit the field's kind are ignored.
func setField(field reflect.Value, v any) bool {
	if !field.CanSet() {
		return false
	}
	switch v := v.(type) {
	case int64:
		if field.CanInt() && !field.OverflowInt(v) {
			field.SetInt(v)
			return true
		}
	case uint64:
		if field.CanUint() && !field.OverflowUint(v) {
			field.SetUint(v)
			return true
		}
	case float64:
		if field.CanFloat() {
			field.SetFloat(v)
			return true
		}
	case bool:
		if field.Kind() == reflect.Bool {
			field.SetBool(v)
			return true
		}
	case string:
		if field.Kind() == reflect.String {
			field.SetString(v)
			return true
		}
	}
	return false
}
