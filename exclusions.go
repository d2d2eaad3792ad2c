package structmap

import "sort"

// Exclusions represents source field names skipped by a converter
type Exclusions map[string]bool

// NewExclusions creates exclusions for supplied names
func NewExclusions(names ...string) Exclusions {
	var result = make(Exclusions, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		result[name] = true
	}
	return result
}

// Has returns true if name is excluded
func (e Exclusions) Has(name string) bool {
	if len(e) == 0 {
		return false
	}
	return e[name]
}

// Names returns sorted excluded names
func (e Exclusions) Names() []string {
	var result = make([]string, 0, len(e))
	for name, ok := range e {
		if ok {
			result = append(result, name)
		}
	}
	sort.Strings(result)
	return result
}

func (e Exclusions) clone() Exclusions {
	return NewExclusions(e.Names()...)
}
