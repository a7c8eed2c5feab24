package object

// Environment holds the bindings of one scope.
type Environment struct {
	store map[string]Object
	outer *Environment
}

// NewEnvironment creates a new, top-level environment.
func NewEnvironment() *Environment {
	return &Environment{store: make(map[string]Object)}
}

// NewEnclosedEnvironment creates a new environment that is enclosed by an outer one.
func NewEnclosedEnvironment(outer *Environment) *Environment {
	env := NewEnvironment()
	env.outer = outer
	return env
}

// Outer returns the enclosing environment.
func (e *Environment) Outer() *Environment {
	return e.outer
}

// Define binds name in this scope, replacing any existing binding.
func (e *Environment) Define(name string, val Object) {
	e.store[name] = val
}

// Get retrieves an object by name, checking outer scopes if necessary.
func (e *Environment) Get(name string) (Object, bool) {
	for env := e; env != nil; env = env.outer {
		if obj, ok := env.store[name]; ok {
			return obj, true
		}
	}
	return nil, false
}

// Assign updates the nearest existing binding of name. It reports false when
// no scope defines name.
func (e *Environment) Assign(name string, val Object) bool {
	for env := e; env != nil; env = env.outer {
		if _, ok := env.store[name]; ok {
			env.store[name] = val
			return true
		}
	}
	return false
}

// Ancestor returns the environment distance hops outward; 0 is e itself.
// It returns nil if the chain is shorter than distance.
func (e *Environment) Ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance && env != nil; i++ {
		env = env.outer
	}
	return env
}

// GetAt reads name from exactly the environment distance hops outward.
func (e *Environment) GetAt(distance int, name string) (Object, bool) {
	env := e.Ancestor(distance)
	if env == nil {
		return nil, false
	}
	obj, ok := env.store[name]
	return obj, ok
}

// AssignAt writes name into exactly the environment distance hops outward.
func (e *Environment) AssignAt(distance int, name string, val Object) bool {
	env := e.Ancestor(distance)
	if env == nil {
		return false
	}
	env.store[name] = val
	return true
}
