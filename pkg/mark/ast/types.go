package ast

import (
	"sort"
	"strings"
)

// TypeName is the canonical name of a type reference in a mark.
// The set is closed: every alias resolves to one of the constants below,
// and anything unrecognized resolves to TypeNone.
type TypeName string

const (
	TypeNone      TypeName = "none"
	TypeString    TypeName = "string"
	TypeFloat     TypeName = "float"
	TypeUFloat    TypeName = "ufloat"
	TypeInt       TypeName = "int"
	TypeUInt      TypeName = "uint"
	TypeBoolean   TypeName = "boolean"
	TypeUndefined TypeName = "undefined"
	TypeAny       TypeName = "any"
	TypePair      TypeName = "pair"  // generic: pair<T>
	TypeArray     TypeName = "array" // generic: array<T>
	TypeEnum      TypeName = "enum"  // generic: enum<A|B|C>
)

// aliasTable lists the accepted spellings for every canonical type.
var aliasTable = map[TypeName][]string{
	TypeString:    {"string", "str"},
	TypeFloat:     {"float", "double", "single", "num", "number"},
	TypeUFloat:    {"ufloat", "count"},
	TypeInt:       {"int", "int8", "int16", "int32", "int64", "long"},
	TypeUInt:      {"uint", "uint8", "uint16", "uint32", "uint64", "ulong", "tid", "@"},
	TypeBoolean:   {"boolean", "bool", "onoff"},
	TypeUndefined: {"undefined"},
	TypeAny:       {"any", "dynamic", "object", "obj"},
	TypePair:      {"pair"},
	TypeArray:     {"array"},
	TypeEnum:      {"enum"},
}

// reverseAlias maps each alias to its canonical name.
var reverseAlias = buildReverseAlias()

func buildReverseAlias() map[string]TypeName {
	ret := make(map[string]TypeName)
	for name, aliases := range aliasTable {
		for _, alias := range aliases {
			ret[alias] = name
		}
	}
	return ret
}

// LookupTypeName resolves an alias to its canonical type name.
// The lookup is case-insensitive and ignores surrounding whitespace.
// Unknown aliases resolve to TypeNone.
func LookupTypeName(alias string) TypeName {
	if name, ok := reverseAlias[strings.ToLower(strings.TrimSpace(alias))]; ok {
		return name
	}
	return TypeNone
}

// Aliases returns the accepted spellings of a canonical type name.
func Aliases(name TypeName) []string {
	return append([]string(nil), aliasTable[name]...)
}

// AllAliases returns every known alias, sorted.
func AllAliases() []string {
	ret := make([]string, 0, len(reverseAlias))
	for alias := range reverseAlias {
		ret = append(ret, alias)
	}
	sort.Strings(ret)
	return ret
}

// PlainTypeNames returns the canonical names that are not generic.
// A scalar coercer must exist for each of them before a convertor can be built.
func PlainTypeNames() []TypeName {
	return []TypeName{
		TypeNone, TypeString, TypeFloat, TypeUFloat, TypeInt,
		TypeUInt, TypeBoolean, TypeUndefined, TypeAny,
	}
}

// IsTemplate reports whether the type takes template arguments that
// describe its elements (array and pair).
func (n TypeName) IsTemplate() bool {
	return n == TypePair || n == TypeArray
}

// IsEnum reports whether the type is an enum reference.
func (n TypeName) IsEnum() bool {
	return n == TypeEnum
}

// String returns the canonical name.
func (n TypeName) String() string {
	return string(n)
}
