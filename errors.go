package structmap

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	//ErrMissingMember is returned when a source field has no writable target field
	ErrMissingMember = errors.New("structmap: missing member")
	//ErrTypeMismatch is returned when matched fields have different types
	ErrTypeMismatch = errors.New("structmap: property type mismatch")
	//ErrNullSource is returned when a converter is invoked with nil source
	ErrNullSource = errors.New("structmap: nil source")
	//ErrConstructorUnavailable is returned when a target can not be allocated
	ErrConstructorUnavailable = errors.New("structmap: constructor unavailable")
	//ErrUnsupportedType is returned when a source type is not a struct
	ErrUnsupportedType = errors.New("structmap: unsupported type")
	//ErrSourceType is returned when a converter is invoked with foreign source type
	ErrSourceType = errors.New("structmap: invalid source type")
	//ErrUnresolvedSelector is returned by strict exclusion resolution
	ErrUnresolvedSelector = errors.New("structmap: unresolved selector")
)

// MissingMemberError represents a source field without target counterpart
type MissingMemberError struct {
	Field  string
	Source reflect.Type
	Target reflect.Type
}

func (e *MissingMemberError) Error() string {
	return fmt.Sprintf("structmap: missing member: %v.%v has no counterpart in %v", typeName(e.Source), e.Field, typeName(e.Target))
}

func (e *MissingMemberError) Unwrap() error {
	return ErrMissingMember
}

// PropertyTypeMismatchError represents matched fields with incompatible types
type PropertyTypeMismatchError struct {
	Field      string
	Source     reflect.Type
	Target     reflect.Type
	SourceType reflect.Type
	TargetType reflect.Type
}

func (e *PropertyTypeMismatchError) Error() string {
	return fmt.Sprintf("structmap: property type mismatch: %v.%v (%v) vs %v.%v (%v)",
		typeName(e.Source), e.Field, typeName(e.SourceType), typeName(e.Target), e.Field, typeName(e.TargetType))
}

func (e *PropertyTypeMismatchError) Unwrap() error {
	return ErrTypeMismatch
}

// NullSourceError represents converter invocation with nil source
type NullSourceError struct {
	Pair Pair
}

func (e *NullSourceError) Error() string {
	return fmt.Sprintf("structmap: nil source for %v", e.Pair)
}

func (e *NullSourceError) Unwrap() error {
	return ErrNullSource
}

// ConstructorUnavailableError represents target type that can not be allocated as a struct
type ConstructorUnavailableError struct {
	Target reflect.Type
}

func (e *ConstructorUnavailableError) Error() string {
	return fmt.Sprintf("structmap: constructor unavailable: %v is not a struct", typeName(e.Target))
}

func (e *ConstructorUnavailableError) Unwrap() error {
	return ErrConstructorUnavailable
}
