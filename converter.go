package structmap

import (
	"fmt"
	"github.com/viant/tagly/format"
	"github.com/viant/xunsafe"
	"reflect"
	"strings"
	"unsafe"
)

type (
	//Binding represents source to target field copy
	Binding struct {
		Source *xunsafe.Field
		Target *xunsafe.Field
		copier Copier
	}

	//Converter copies matching exported fields of a source struct into a new target struct
	Converter struct {
		pair      Pair
		sourcePtr reflect.Type
		flags     Flags
		excluded  Exclusions
		bindings  []*Binding
	}

	//Builder synthesizes converters
	Builder struct {
		tagNames []string
	}
)

const formatTag = "format"

var defaultBuilder = NewBuilder()

// Name returns binding field name
func (b *Binding) Name() string {
	return b.Source.Name
}

// NewBuilder creates a builder, supplied tag names are checked for ignore marker in addition to format tag
func NewBuilder(tagNames ...string) *Builder {
	return &Builder{tagNames: tagNames}
}

// Build builds a converter with default builder
func Build(source, target reflect.Type, flags Flags, excluded Exclusions) (*Converter, error) {
	return defaultBuilder.Build(source, target, flags, excluded)
}

// Build builds a converter for supplied type pair, flags and excluded source field names
func (b *Builder) Build(source, target reflect.Type, flags Flags, excluded Exclusions) (*Converter, error) {
	pair := NewPair(source, target)
	if !isStruct(pair.Source) {
		return nil, fmt.Errorf("%w: source %v is not a struct", ErrUnsupportedType, typeName(pair.Source))
	}
	if !isStruct(pair.Target) {
		return nil, &ConstructorUnavailableError{Target: pair.Target}
	}
	targetFields := make(map[string]reflect.StructField, pair.Target.NumField())
	for _, field := range exportedFields(pair.Target) {
		targetFields[field.Name] = field
	}
	ret := &Converter{
		pair:      pair,
		sourcePtr: reflect.PointerTo(pair.Source),
		flags:     flags.Policy(),
		excluded:  excluded.clone(),
	}
	for _, sourceField := range exportedFields(pair.Source) {
		if excluded.Has(sourceField.Name) || b.isIgnored(sourceField) {
			continue
		}
		targetField, ok := targetFields[sourceField.Name]
		if !ok {
			if flags.IgnoresMissing() {
				continue
			}
			return nil, &MissingMemberError{Field: sourceField.Name, Source: pair.Source, Target: pair.Target}
		}
		if sourceField.Type != targetField.Type {
			return nil, &PropertyTypeMismatchError{Field: sourceField.Name, Source: pair.Source, Target: pair.Target, SourceType: sourceField.Type, TargetType: targetField.Type}
		}
		ret.bindings = append(ret.bindings, &Binding{
			Source: xunsafe.NewField(sourceField),
			Target: xunsafe.NewField(targetField),
			copier: LookupCopier(sourceField.Type),
		})
	}
	return ret, nil
}

func (b *Builder) isIgnored(field reflect.StructField) bool {
	if field.Tag == "" {
		return false
	}
	if isIgnoreMarker(field.Tag.Get(formatTag)) {
		return true
	}
	tag, err := format.Parse(field.Tag, b.tagNames...)
	if err != nil || tag == nil {
		return false
	}
	return tag.Ignore
}

// isIgnoreMarker reports "-" and bare ignore/transient format values, tagly reads these as a case format or a name
func isIgnoreMarker(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "-", "ignore", "transient":
		return true
	}
	return false
}

// Pair returns converter type pair
func (c *Converter) Pair() Pair {
	return c.pair
}

// Flags returns flags the converter was built with
func (c *Converter) Flags() Flags {
	return c.flags
}

// Exclusions returns excluded source field names the converter was built with
func (c *Converter) Exclusions() Exclusions {
	return c.excluded.clone()
}

// Bindings returns field bindings in source declaration order
func (c *Converter) Bindings() []*Binding {
	var result = make([]*Binding, len(c.bindings))
	copy(result, c.bindings)
	return result
}

// Map creates a new target from supplied source, source has to be a pointer to the converter source type
func (c *Converter) Map(src interface{}) (interface{}, error) {
	if src == nil {
		return nil, &NullSourceError{Pair: c.pair}
	}
	if srcType := reflect.TypeOf(src); srcType != c.sourcePtr {
		return nil, fmt.Errorf("%w: expected %v, but had %v", ErrSourceType, c.sourcePtr, srcType)
	}
	srcPtr := xunsafe.AsPointer(src)
	if srcPtr == nil {
		return nil, &NullSourceError{Pair: c.pair}
	}
	dest := reflect.New(c.pair.Target).Interface()
	c.apply(srcPtr, xunsafe.AsPointer(dest))
	return dest, nil
}

// copyInto copies bound fields, srcPtr and destPtr have to point to Pair().Source and Pair().Target values
func (c *Converter) copyInto(srcPtr, destPtr unsafe.Pointer) error {
	if srcPtr == nil {
		return &NullSourceError{Pair: c.pair}
	}
	if destPtr == nil {
		return &ConstructorUnavailableError{Target: c.pair.Target}
	}
	c.apply(srcPtr, destPtr)
	return nil
}

func (c *Converter) apply(srcPtr, destPtr unsafe.Pointer) {
	for _, binding := range c.bindings {
		binding.copier(binding.Source, binding.Target, srcPtr, destPtr)
	}
}
