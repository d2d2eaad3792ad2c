package structmap

import (
	"fmt"
	"github.com/viant/structmap/internal/syncmap"
	"golang.org/x/sync/singleflight"
	"reflect"
	"sort"
	"strings"
	"sync/atomic"
)

type (
	//MethodProvider returns converters for type pairs
	MethodProvider interface {
		//GetOrCreate returns cached converter or builds a new one, flags and exclusions are only used when building
		GetOrCreate(source, target reflect.Type, flags Flags, excluded Exclusions) (*Converter, error)
	}

	//ConverterBuilder builds converters, *Builder is the default implementation
	ConverterBuilder interface {
		Build(source, target reflect.Type, flags Flags, excluded Exclusions) (*Converter, error)
	}

	//Provider caches one converter per type pair
	Provider struct {
		builder    ConverterBuilder
		tagNames   []string
		converters *syncmap.Map[Pair, *Converter]
		group      singleflight.Group
		builds     atomic.Int64
	}

	//ProviderOption represents provider option
	ProviderOption func(p *Provider)
)

// GetOrCreate returns converter for supplied types.
// A cached converter is returned as is unless flags contain Rebuild, so the first successful build
// flags and exclusions stay in force for the pair.
func (p *Provider) GetOrCreate(source, target reflect.Type, flags Flags, excluded Exclusions) (*Converter, error) {
	pair := NewPair(source, target)
	if flags.Has(Rebuild) {
		ret, err := p.build(pair, flags, excluded)
		if err != nil {
			return nil, err
		}
		p.converters.Put(pair, ret)
		return ret, nil
	}
	if ret, ok := p.converters.Get(pair); ok {
		return ret, nil
	}
	value, err, _ := p.group.Do(flightKey(pair, flags, excluded), func() (interface{}, error) {
		if ret, ok := p.converters.Get(pair); ok {
			return ret, nil
		}
		ret, err := p.build(pair, flags, excluded)
		if err != nil {
			return nil, err
		}
		actual, _ := p.converters.GetOrPut(pair, ret) //a concurrent rebuild wins
		return actual, nil
	})
	if err != nil {
		return nil, err
	}
	return value.(*Converter), nil
}

func (p *Provider) build(pair Pair, flags Flags, excluded Exclusions) (*Converter, error) {
	ret, err := p.builder.Build(pair.Source, pair.Target, flags, excluded)
	if err != nil {
		return nil, err
	}
	p.builds.Add(1)
	return ret, nil
}

// Lookup returns cached converter
func (p *Provider) Lookup(pair Pair) (*Converter, bool) {
	return p.converters.Get(pair)
}

// Len returns number of cached converters
func (p *Provider) Len() int {
	return p.converters.Len()
}

// Builds returns number of successful converter builds
func (p *Provider) Builds() int64 {
	return p.builds.Load()
}

// Pairs returns cached pairs sorted by name
func (p *Provider) Pairs() []Pair {
	result := p.converters.Keys()
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].String() < result[j].String()
	})
	return result
}

// Reset removes all cached converters
func (p *Provider) Reset() {
	p.converters.Reset()
}

// flightKey identifies a build, callers only share a build outcome when their build inputs are the same
func flightKey(pair Pair, flags Flags, excluded Exclusions) string {
	return fmt.Sprintf("%p:%p|%v|%v", pair.Source, pair.Target, flags.Policy(), strings.Join(excluded.Names(), ","))
}

// WithBuilder returns provider option with custom builder, it takes precedence over WithTagNames
func WithBuilder(builder ConverterBuilder) ProviderOption {
	return func(p *Provider) {
		p.builder = builder
	}
}

// WithTagNames returns provider option with additional tag names checked for ignore marker.
// Tag names accumulate across options and only apply to the default builder, a builder supplied with WithBuilder is used as is.
func WithTagNames(tagNames ...string) ProviderOption {
	return func(p *Provider) {
		p.tagNames = append(p.tagNames, tagNames...)
	}
}

// NewProvider creates a provider
func NewProvider(opts ...ProviderOption) *Provider {
	ret := &Provider{converters: syncmap.New[Pair, *Converter]()}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.builder == nil {
		ret.builder = defaultBuilder
		if len(ret.tagNames) > 0 {
			ret.builder = NewBuilder(ret.tagNames...)
		}
	}
	return ret
}
