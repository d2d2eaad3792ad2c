package structmap

import "strings"

// Flags controls converter synthesis
type Flags uint8

const (
	//ThrowOnMissing fails synthesis when a source field has no target counterpart
	ThrowOnMissing Flags = 1 << iota
	//IgnoreMissing skips source fields without target counterpart
	IgnoreMissing
	//Rebuild bypasses and overwrites a cached converter
	Rebuild
)

// DefaultFlags are used when no flags are supplied
const DefaultFlags = ThrowOnMissing

var flagNames = []struct {
	flag Flags
	name string
}{
	{ThrowOnMissing, "ThrowOnMissing"},
	{IgnoreMissing, "IgnoreMissing"},
	{Rebuild, "Rebuild"},
}

// Has returns true if all supplied flags are set
func (f Flags) Has(flag Flags) bool {
	return f&flag == flag
}

// IgnoresMissing returns true if missing target fields are skipped.
// IgnoreMissing takes precedence when combined with ThrowOnMissing.
func (f Flags) IgnoresMissing() bool {
	return f.Has(IgnoreMissing)
}

// Policy returns flags without Rebuild, the part frozen into a converter
func (f Flags) Policy() Flags {
	return f &^ Rebuild
}

func (f Flags) String() string {
	if f == 0 {
		return "None"
	}
	var names []string
	for _, candidate := range flagNames {
		if f.Has(candidate.flag) {
			names = append(names, candidate.name)
		}
	}
	return strings.Join(names, "|")
}
