// symbols/symbol_table.go - lexical scope chain
//
// A Scope maps names to entities for one lexical region. Scopes form a
// parent-linked tree rooted at the prelude scope; a name may be declared at
// most once along any chain from the root.

package symbols

// Scope is one lexical region: the program top level, a function body, a
// loop body or a conditional branch.
type Scope struct {
	parent   *Scope
	store    map[string]Entity
	order    []string
	inLoop   bool
	function *Function
}

// NewRootScope returns a scope with no parent, outside any loop or function.
func NewRootScope() *Scope {
	return &Scope{store: make(map[string]Entity)}
}

// ChildOption overrides a context flag inherited by a child scope.
type ChildOption func(*Scope)

// WithLoop sets whether the child scope is inside a loop.
func WithLoop(inLoop bool) ChildOption {
	return func(s *Scope) { s.inLoop = inLoop }
}

// WithFunction sets the enclosing function of the child scope. Entering a
// function body also clears the loop flag: break never crosses a function.
func WithFunction(fn *Function) ChildOption {
	return func(s *Scope) {
		s.function = fn
		s.inLoop = false
	}
}

// Child creates a scope enclosed by s. The loop flag and the enclosing
// function are inherited unless overridden; options apply in order.
func (s *Scope) Child(opts ...ChildOption) *Scope {
	child := &Scope{
		parent:   s,
		store:    make(map[string]Entity),
		inLoop:   s.inLoop,
		function: s.function,
	}
	for _, opt := range opts {
		opt(child)
	}
	return child
}

// Parent returns the enclosing scope, or nil for the root.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// InLoop reports whether s is inside a loop body of the current function.
func (s *Scope) InLoop() bool {
	return s.inLoop
}

// Function returns the enclosing function, or nil at top level.
func (s *Scope) Function() *Function {
	return s.function
}

// Sees reports whether name is declared in s or any ancestor.
func (s *Scope) Sees(name string) bool {
	_, ok := s.Lookup(name)
	return ok
}

// Lookup searches s and then its ancestors.
func (s *Scope) Lookup(name string) (Entity, bool) {
	for scope := s; scope != nil; scope = scope.parent {
		if e, ok := scope.store[name]; ok {
			return e, true
		}
	}
	return nil, false
}

// LookupLocal searches s only.
func (s *Scope) LookupLocal(name string) (Entity, bool) {
	e, ok := s.store[name]
	return e, ok
}

// Declare binds name to e in s. It fails if name is already visible from s,
// whether it was declared here or in any ancestor.
func (s *Scope) Declare(name string, e Entity) error {
	if existing, ok := s.Lookup(name); ok {
		return &DuplicateError{Name: name, Existing: existing}
	}
	s.store[name] = e
	s.order = append(s.order, name)
	return nil
}

// Resolve returns the entity name refers to from s.
func (s *Scope) Resolve(name string) (Entity, error) {
	if e, ok := s.Lookup(name); ok {
		return e, nil
	}
	return nil, &NotFoundError{Name: name}
}

// Names returns the names declared locally in s, in declaration order.
func (s *Scope) Names() []string {
	names := make([]string, len(s.order))
	copy(names, s.order)
	return names
}

// Len returns the number of local declarations.
func (s *Scope) Len() int {
	return len(s.order)
}
