package shape

import (
	"errors"
	"fmt"
	"sort"
)

// Registry misuse errors. Both indicate a configuration bug, not a runtime
// condition.
var (
	ErrDuplicateType = errors.New("shape type already registered")
	ErrUnknownType   = errors.New("unknown shape type")
)

// Registry maps family names to Definitions. It is built once at startup
// (built-in families plus any caller-registered ones) and treated as
// read-only afterwards, so no locking is needed during normal operation.
type Registry struct {
	defs  map[string]Definition
	names []string
}

// NewRegistry creates an empty registry. Most callers want Default instead.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]Definition)}
}

// Register adds a family. Registering the same type name twice fails with
// ErrDuplicateType.
func (r *Registry) Register(def Definition) error {
	name := def.TypeName()
	if name == "" {
		return fmt.Errorf("register: empty type name")
	}
	if _, exists := r.defs[name]; exists {
		return fmt.Errorf("register %q: %w", name, ErrDuplicateType)
	}
	r.defs[name] = def
	r.names = append(r.names, name)
	sort.Strings(r.names)
	return nil
}

// Get returns the Definition for a type name, or ErrUnknownType.
func (r *Registry) Get(name string) (Definition, error) {
	def, ok := r.defs[name]
	if !ok {
		return nil, fmt.Errorf("get %q: %w", name, ErrUnknownType)
	}
	return def, nil
}

// TypeNames returns a sorted copy of all registered family names.
func (r *Registry) TypeNames() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Len returns the number of registered families.
func (r *Registry) Len() int {
	return len(r.defs)
}

// Default builds a registry with every built-in family: the flat 2D set and
// the pseudo-3D solids.
func Default() *Registry {
	r := NewRegistry()
	builtins := []Definition{
		Square{},
		Rectangle{},
		Circle{},
		EquilateralTriangle{},
		Rhombus{},
		Trapezoid{},
		Hexagon{},
		Star5{},
		Cross{},
		Cube{},
		Sphere{},
		Cylinder{},
		Cone{},
		Pyramid{},
	}
	for _, def := range builtins {
		if err := r.Register(def); err != nil {
			// Built-in names are unique by construction.
			panic(err)
		}
	}
	return r
}
