package structmap

import (
	"github.com/francoispqt/gojay"
)

type (
	//Plan describes a compiled converter
	Plan struct {
		Source   string
		Target   string
		Flags    string
		Excluded []string
		Bindings PlanBindings
	}

	//PlanBinding describes a field copy
	PlanBinding struct {
		Name string
		Type string
		Kind string
	}

	//PlanBindings represents plan bindings
	PlanBindings []*PlanBinding

	names []string
)

// Plan returns converter plan, the plan is a pure function of the converter build inputs
func (c *Converter) Plan() *Plan {
	ret := &Plan{
		Source:   typeName(c.pair.Source),
		Target:   typeName(c.pair.Target),
		Flags:    c.flags.String(),
		Excluded: c.excluded.Names(),
		Bindings: make(PlanBindings, 0, len(c.bindings)),
	}
	for _, binding := range c.bindings {
		ret.Bindings = append(ret.Bindings, &PlanBinding{
			Name: binding.Name(),
			Type: binding.Source.Type.String(),
			Kind: binding.Source.Type.Kind().String(),
		})
	}
	return ret
}

// JSON returns JSON encoded plan
func (p *Plan) JSON() ([]byte, error) {
	return gojay.MarshalJSONObject(p)
}

// MarshalJSONObject implements gojay.MarshalerJSONObject
func (p *Plan) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("source", p.Source)
	enc.StringKey("target", p.Target)
	enc.StringKey("flags", p.Flags)
	enc.ArrayKey("excluded", names(p.Excluded))
	enc.ArrayKey("bindings", p.Bindings)
}

// IsNil implements gojay.MarshalerJSONObject
func (p *Plan) IsNil() bool {
	return p == nil
}

// MarshalJSONObject implements gojay.MarshalerJSONObject
func (b *PlanBinding) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("name", b.Name)
	enc.StringKey("type", b.Type)
	enc.StringKey("kind", b.Kind)
}

// IsNil implements gojay.MarshalerJSONObject
func (b *PlanBinding) IsNil() bool {
	return b == nil
}

// MarshalJSONArray implements gojay.MarshalerJSONArray
func (b PlanBindings) MarshalJSONArray(enc *gojay.Encoder) {
	for _, binding := range b {
		enc.Object(binding)
	}
}

// IsNil implements gojay.MarshalerJSONArray
func (b PlanBindings) IsNil() bool {
	return b == nil
}

func (n names) MarshalJSONArray(enc *gojay.Encoder) {
	for _, name := range n {
		enc.String(name)
	}
}

func (n names) IsNil() bool {
	return n == nil
}
