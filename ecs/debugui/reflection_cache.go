package debugui

import "reflect"

type FieldInfo struct {
	Name      string
	Type      reflect.Type
	Index     int
	IsPointer bool
}

// fieldCache remembers the exported, non-embedded fields of struct types.
// Embedded fields such as ecs.Base carry no inspectable state. The cache is
// only touched from the render loop.
type fieldCache map[reflect.Type][]FieldInfo

func (fc fieldCache) fields(t reflect.Type) []FieldInfo {
	if cached, ok := fc[t]; ok {
		return cached
	}

	var fields []FieldInfo
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() || field.Anonymous {
				continue
			}

			fieldType := field.Type
			isPointer := fieldType.Kind() == reflect.Ptr
			if isPointer {
				fieldType = fieldType.Elem()
			}

			fields = append(fields, FieldInfo{
				Name:      field.Name,
				Type:      fieldType,
				Index:     i,
				IsPointer: isPointer,
			})
		}
	}

	fc[t] = fields
	return fields
}
