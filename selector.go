package structmap

import (
	"fmt"
	"github.com/viant/xunsafe"
	"reflect"
	"sync"
	"unsafe"
)

type (
	//Selector references a source field, it returns address of the selected field, i.e. func(s *Foo) interface{} { return &s.Name }
	Selector[T any] func(src *T) interface{}

	fieldName string

	slot struct {
		name   string
		offset uintptr
		rType  reflect.Type
		nested []*slot
	}

	layout struct {
		size  uintptr
		slots []*slot
	}
)

var layoutCache sync.Map // map[reflect.Type]*layout

// Name returns a selector referencing a field by name
func Name[T any](name string) Selector[T] {
	return func(*T) interface{} {
		return fieldName(name)
	}
}

// Names returns selectors referencing fields by names
func Names[T any](names ...string) []Selector[T] {
	var result = make([]Selector[T], 0, len(names))
	for _, name := range names {
		result = append(result, Name[T](name))
	}
	return result
}

// ResolveExclusions resolves selectors into excluded field names, unrecognized selectors are dropped
func ResolveExclusions[T any](selectors ...Selector[T]) Exclusions {
	var result = make(Exclusions, len(selectors))
	if len(selectors) == 0 {
		return result
	}
	probe := new(T)
	aLayout := layoutOf(reflect.TypeOf(probe).Elem())
	for _, selector := range selectors {
		if name, ok := selector.resolve(probe, aLayout); ok {
			result[name] = true
		}
	}
	return result
}

// StrictExclusions resolves selectors into excluded field names, unrecognized selectors are reported
func StrictExclusions[T any](selectors ...Selector[T]) (Exclusions, error) {
	var result = make(Exclusions, len(selectors))
	if len(selectors) == 0 {
		return result, nil
	}
	probe := new(T)
	aLayout := layoutOf(reflect.TypeOf(probe).Elem())
	for i, selector := range selectors {
		name, ok := selector.resolve(probe, aLayout)
		if !ok {
			return nil, fmt.Errorf("%w: selector[%d] does not reference %T field", ErrUnresolvedSelector, i, probe)
		}
		result[name] = true
	}
	return result, nil
}

func (s Selector[T]) resolve(probe *T, aLayout *layout) (name string, ok bool) {
	if s == nil {
		return "", false
	}
	defer func() {
		if r := recover(); r != nil { //nil nested pointer dereference
			name, ok = "", false
		}
	}()
	result := s(probe)
	switch actual := result.(type) {
	case nil:
		return "", false
	case fieldName:
		return string(actual), actual != ""
	}
	if aLayout == nil {
		return "", false
	}
	resultType := reflect.TypeOf(result)
	if resultType.Kind() != reflect.Ptr {
		return "", false
	}
	base := uintptr(unsafe.Pointer(probe))
	ptr := uintptr(xunsafe.AsPointer(result))
	if ptr < base || ptr-base >= aLayout.size {
		return "", false
	}
	return aLayout.lookup(ptr-base, resultType.Elem())
}

func (l *layout) lookup(offset uintptr, rType reflect.Type) (string, bool) {
	return lookupSlots(l.slots, offset, rType)
}

func lookupSlots(slots []*slot, offset uintptr, rType reflect.Type) (string, bool) {
	for _, candidate := range slots {
		if !candidate.contains(offset) {
			continue
		}
		if len(candidate.nested) > 0 {
			if name, ok := lookupSlots(candidate.nested, offset-candidate.offset, rType); ok {
				return name, true
			}
		}
		if offset == candidate.offset && candidate.rType == rType {
			return candidate.name, true
		}
	}
	return "", false
}

func (s *slot) contains(offset uintptr) bool {
	if offset < s.offset {
		return false
	}
	if size := s.rType.Size(); size > 0 {
		return offset < s.offset+size
	}
	return offset == s.offset
}

func layoutOf(rType reflect.Type) *layout {
	if !isStruct(rType) {
		return nil
	}
	if v, ok := layoutCache.Load(rType); ok {
		return v.(*layout)
	}
	ret := &layout{size: rType.Size(), slots: newSlots(rType)}
	if ret.size == 0 {
		ret.size = 1
	}
	layoutCache.Store(rType, ret)
	return ret
}

func newSlots(rType reflect.Type) []*slot {
	fields := exportedFields(rType)
	var result = make([]*slot, 0, len(fields))
	for _, field := range fields {
		aSlot := &slot{name: field.Name, offset: field.Offset, rType: field.Type}
		if isStruct(field.Type) {
			aSlot.nested = newSlots(field.Type)
		}
		result = append(result, aSlot)
	}
	return result
}
