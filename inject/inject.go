// Package inject registers structmap services with a samber/do injector.
package inject

import (
	"github.com/samber/do"
	"github.com/viant/structmap"
)

// Register provides structmap.MethodProvider and *structmap.Mapper, both are lazily created singletons
func Register(i *do.Injector, opts ...structmap.ProviderOption) {
	do.Provide(i, func(i *do.Injector) (structmap.MethodProvider, error) {
		return structmap.NewProvider(opts...), nil
	})
	do.Provide(i, func(i *do.Injector) (*structmap.Mapper, error) {
		provider, err := do.Invoke[structmap.MethodProvider](i)
		if err != nil {
			return nil, err
		}
		return structmap.New(structmap.WithProvider(provider)), nil
	})
}

// Mapper returns injected mapper
func Mapper(i *do.Injector) (*structmap.Mapper, error) {
	return do.Invoke[*structmap.Mapper](i)
}

// MustMapper returns injected mapper, it panics if mapper was not registered
func MustMapper(i *do.Injector) *structmap.Mapper {
	return do.MustInvoke[*structmap.Mapper](i)
}
