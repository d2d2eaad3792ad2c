package structmap

import (
	"github.com/viant/xunsafe"
	"reflect"
	"unsafe"
)

// Copier copies a source field value into a target field
type Copier func(src, dest *xunsafe.Field, srcPtr, destPtr unsafe.Pointer)

func copyString(src, dest *xunsafe.Field, srcPtr, destPtr unsafe.Pointer) {
	dest.SetString(destPtr, src.String(srcPtr))
}

func copyInt(src, dest *xunsafe.Field, srcPtr, destPtr unsafe.Pointer) {
	dest.SetInt(destPtr, src.Int(srcPtr))
}

func copyBool(src, dest *xunsafe.Field, srcPtr, destPtr unsafe.Pointer) {
	dest.SetBool(destPtr, src.Bool(srcPtr))
}

func copyFloat64(src, dest *xunsafe.Field, srcPtr, destPtr unsafe.Pointer) {
	dest.SetFloat64(destPtr, src.Float64(srcPtr))
}

func copyFloat32(src, dest *xunsafe.Field, srcPtr, destPtr unsafe.Pointer) {
	dest.SetFloat32(destPtr, src.Float32(srcPtr))
}

// copyAny uses typed memory move so pointer, interface and composite fields stay GC visible
func copyAny(src, dest *xunsafe.Field, srcPtr, destPtr unsafe.Pointer) {
	srcValue := reflect.NewAt(src.Type, src.Pointer(srcPtr)).Elem()
	reflect.NewAt(dest.Type, dest.Pointer(destPtr)).Elem().Set(srcValue)
}

// LookupCopier returns a copier for the supplied field type
func LookupCopier(fieldType reflect.Type) Copier {
	switch fieldType.Kind() {
	case reflect.String:
		return copyString
	case reflect.Int:
		return copyInt
	case reflect.Bool:
		return copyBool
	case reflect.Float64:
		return copyFloat64
	case reflect.Float32:
		return copyFloat32
	}
	return copyAny
}
