package structmap

import (
	"reflect"
)

// derefType strips one pointer level, *T and T both describe T
func derefType(t reflect.Type) reflect.Type {
	if t != nil && t.Kind() == reflect.Ptr {
		return t.Elem()
	}
	return t
}

func isStruct(t reflect.Type) bool {
	return t != nil && t.Kind() == reflect.Struct
}

// exportedFields returns struct exported fields in declaration order
func exportedFields(t reflect.Type) []reflect.StructField {
	var result = make([]reflect.StructField, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		result = append(result, field)
	}
	return result
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
