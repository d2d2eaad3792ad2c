// Package structmap copies matching exported fields between struct types.
//
// A converter is synthesized once per (source, target) type pair: exported source fields are matched
// by exact name with exported target fields, and each match is bound to a precomputed
// xunsafe field copier. Converters are cached by type pair only, so flags and exclusions
// used by the first successful build stay in force until a call with Rebuild replaces it.
//
//	mapper := structmap.New()
//	dto, err := structmap.MapExcluding[User, UserDTO](mapper, user, func(u *User) interface{} { return &u.Password })
package structmap
