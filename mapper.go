package structmap

import (
	"fmt"
	"reflect"
	"unsafe"
)

// Mapper maps struct instances with cached converters
type Mapper struct {
	provider MethodProvider
	flags    Flags
}

// Provider returns mapper converter provider
func (m *Mapper) Provider() MethodProvider {
	return m.provider
}

// DefaultFlags returns flags used when none are supplied
func (m *Mapper) DefaultFlags() Flags {
	return m.flags
}

// Map maps src into a new To with default flags
func Map[From, To any](m *Mapper, src *From) (*To, error) {
	return MapWith[From, To](m, src, m.flags)
}

// MapExcluding maps src into a new To with default flags, skipping selected source fields
func MapExcluding[From, To any](m *Mapper, src *From, exclusions ...Selector[From]) (*To, error) {
	return MapWith[From, To](m, src, m.flags, exclusions...)
}

// MapWith maps src into a new To with supplied flags, skipping selected source fields
func MapWith[From, To any](m *Mapper, src *From, flags Flags, exclusions ...Selector[From]) (*To, error) {
	pair := PairOf[From, To]()
	converter, err := m.provider.GetOrCreate(reflect.TypeOf(src), reflect.TypeOf((*To)(nil)), flags, ResolveExclusions(exclusions...))
	if err != nil {
		return nil, err
	}
	if converter.Pair() != pair {
		return nil, fmt.Errorf("%w: provider returned %v converter for %v", ErrSourceType, converter.Pair(), pair)
	}
	if src == nil {
		return nil, &NullSourceError{Pair: pair}
	}
	dest := new(To)
	if err = converter.copyInto(unsafe.Pointer(src), unsafe.Pointer(dest)); err != nil {
		return nil, err
	}
	return dest, nil
}

// MustMap maps src into a new To with default flags, it panics on error
func MustMap[From, To any](m *Mapper, src *From) *To {
	ret, err := Map[From, To](m, src)
	if err != nil {
		panic(err)
	}
	return ret
}

// New creates a mapper
func New(opts ...Option) *Mapper {
	ret := &Mapper{flags: DefaultFlags}
	Options(opts).Apply(ret)
	if ret.provider == nil {
		ret.provider = NewProvider()
	}
	return ret
}
