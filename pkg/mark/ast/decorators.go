package ast

import "strings"

// Flag is a decorator recognized by the engine.
// Unrecognized decorators are kept by name but carry no flag.
type Flag uint8

const (
	// FlagGhost collapses an all-empty structure to an absent value.
	FlagGhost Flag = 1 << iota
	// FlagStrict disables soft omission of empty array items.
	FlagStrict
	// FlagOneOf marks a union as mutually exclusive. Consumers enforce it.
	FlagOneOf
	// FlagConst marks a value as constant. Consumers enforce it.
	FlagConst
)

// Well-known decorator spellings.
const (
	DecoratorGhost  = "$ghost"
	DecoratorStrict = "$strict"
	DecoratorOneOf  = "$oneof"
	DecoratorConst  = "$const"
)

var flagNames = map[string]Flag{
	DecoratorGhost:  FlagGhost,
	DecoratorStrict: FlagStrict,
	DecoratorOneOf:  FlagOneOf,
	DecoratorConst:  FlagConst,
}

// Decorators is the ordered set of $name flags attached to a mark.
// Decorators never change type identity, only validation policy.
type Decorators struct {
	names []string
	flags Flag
}

// NewDecorators builds a decorator set from names like "$ghost".
// Order and duplicates are preserved.
func NewDecorators(names ...string) Decorators {
	d := Decorators{names: append([]string(nil), names...)}
	for _, name := range names {
		d.flags |= flagNames[name]
	}
	return d
}

// Has reports whether the given engine flag is set.
func (d Decorators) Has(flag Flag) bool {
	return d.flags&flag != 0
}

// HasName reports whether a decorator with the exact name is present.
func (d Decorators) HasName(name string) bool {
	for _, n := range d.names {
		if n == name {
			return true
		}
	}
	return false
}

// Names returns a copy of the decorator names in declaration order.
func (d Decorators) Names() []string {
	return append([]string(nil), d.names...)
}

// Len returns the number of decorators, counting duplicates.
func (d Decorators) Len() int {
	return len(d.names)
}

// String renders the decorators space-joined.
func (d Decorators) String() string {
	return strings.Join(d.names, " ")
}
