package structmap

//Option mapper option
type Option func(m *Mapper)

//Options represents mapper options
type Options []Option

//Apply applies options
func (o Options) Apply(m *Mapper) {
	if len(o) == 0 {
		return
	}
	for _, opt := range o {
		opt(m)
	}
}

//WithProvider sets converter provider
func WithProvider(provider MethodProvider) Option {
	return func(m *Mapper) {
		m.provider = provider
	}
}

//WithDefaultFlags sets flags used by Map and MapExcluding
func WithDefaultFlags(flags Flags) Option {
	return func(m *Mapper) {
		m.flags = flags
	}
}
