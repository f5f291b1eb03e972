package convertor

import (
	"sort"
	"sync"

	"mercator-hq/rowmark/pkg/mark/ast"
)

// Registry maps plain type names to the scalar coercers that handle them.
// It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	coercers map[ast.TypeName]Convertor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		coercers: make(map[ast.TypeName]Convertor),
	}
}

// DefaultRegistry creates a registry with a coercer for every plain type:
// none, string, float, ufloat, int, uint, boolean, undefined and any.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.RegisterFunc(ast.TypeNone, Any)
	r.RegisterFunc(ast.TypeString, String)
	r.RegisterFunc(ast.TypeFloat, Float)
	r.RegisterFunc(ast.TypeUFloat, UFloat)
	r.RegisterFunc(ast.TypeInt, Int)
	r.RegisterFunc(ast.TypeUInt, UInt)
	r.RegisterFunc(ast.TypeBoolean, Boolean)
	r.RegisterFunc(ast.TypeUndefined, Undefined)
	r.RegisterFunc(ast.TypeAny, Any)
	return r
}

// orDefault returns reg, or a default registry when reg is nil.
func orDefault(reg *Registry) *Registry {
	if reg == nil {
		return DefaultRegistry()
	}
	return reg
}

// Register installs c as the coercer for name, replacing any previous one.
func (r *Registry) Register(name ast.TypeName, c Convertor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.coercers[name] = c
}

// RegisterFunc installs a plain function as the coercer for name.
func (r *Registry) RegisterFunc(name ast.TypeName, fn func(v interface{}, opts Options) *Result) {
	r.Register(name, ScalarFunc(fn))
}

// Lookup returns the coercer registered for name.
func (r *Registry) Lookup(name ast.TypeName) (Convertor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, found := r.coercers[name]
	return c, found
}

// Names returns the registered type names, sorted.
func (r *Registry) Names() []ast.TypeName {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]ast.TypeName, 0, len(r.coercers))
	for name := range r.coercers {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}
