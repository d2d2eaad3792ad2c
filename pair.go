package structmap

import (
	"reflect"
)

// Pair represents converter cache key
type Pair struct {
	Source reflect.Type
	Target reflect.Type
}

// NewPair creates a pair for supplied types, *T is treated as T
func NewPair(source, target reflect.Type) Pair {
	return Pair{Source: derefType(source), Target: derefType(target)}
}

// PairOf returns a pair for From and To types
func PairOf[From, To any]() Pair {
	return Pair{Source: reflect.TypeOf((*From)(nil)).Elem(), Target: reflect.TypeOf((*To)(nil)).Elem()}
}

func (p Pair) String() string {
	return typeName(p.Source) + "->" + typeName(p.Target)
}
