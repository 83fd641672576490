// Package prelude provides the built-in bindings every program starts with:
// the primitive type names, a few constants and the standard functions.
package prelude

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/funvibe/pokerscript/internal/symbols"
	"github.com/funvibe/pokerscript/internal/token"
	"github.com/funvibe/pokerscript/internal/typesystem"
	"gopkg.in/yaml.v3"
)

//go:embed prelude.yaml
var defaultPrelude []byte

// file mirrors the layout of a prelude YAML document.
type file struct {
	Types     []typeSpec     `yaml:"types"`
	Constants []constantSpec `yaml:"constants"`
	Functions []functionSpec `yaml:"functions"`
}

type typeSpec struct {
	Name      string `yaml:"name"`
	Primitive string `yaml:"primitive"`
}

type constantSpec struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type functionSpec struct {
	Name    string      `yaml:"name"`
	Params  []paramSpec `yaml:"params"`
	Returns string      `yaml:"returns,omitempty"` // empty means void
}

type paramSpec struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

var primitiveKinds = map[string]*typesystem.Primitive{
	"int":     typesystem.Int,
	"float":   typesystem.Float,
	"string":  typesystem.String,
	"boolean": typesystem.Boolean,
}

// Binding is one name the prelude contributes to the root scope.
type Binding struct {
	Name   string
	Entity symbols.Entity
}

// Prelude is an ordered set of built-in bindings.
type Prelude struct {
	bindings []Binding
	index    map[string]symbols.Entity
}

var (
	defaultOnce sync.Once
	defaultInst *Prelude
)

// Default returns the embedded standard prelude. It is parsed once and
// shared; its entities are never mutated after construction.
func Default() *Prelude {
	defaultOnce.Do(func() {
		p, err := Parse(defaultPrelude)
		if err != nil {
			panic(fmt.Sprintf("prelude: embedded prelude is invalid: %v", err))
		}
		defaultInst = p
	})
	return defaultInst
}

// Load reads a prelude file from disk.
func Load(path string) (*Prelude, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading prelude %s: %w", path, err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Parse builds a prelude from YAML. Types come first, then constants, then
// functions, each in file order.
func Parse(data []byte) (*Prelude, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing prelude: %w", err)
	}

	p := &Prelude{index: make(map[string]symbols.Entity)}
	named := make(map[string]typesystem.Type)

	for i, ts := range f.Types {
		prim, ok := primitiveKinds[ts.Primitive]
		if !ok {
			return nil, fmt.Errorf("types[%d] (%s): unknown primitive %q", i, ts.Name, ts.Primitive)
		}
		if err := p.add(symbols.NewTypeEntity(ts.Name, prim, token.Token{})); err != nil {
			return nil, fmt.Errorf("types[%d]: %w", i, err)
		}
		named[ts.Name] = prim
	}

	for i, cs := range f.Constants {
		typ, err := ParseType(cs.Type, named)
		if err != nil {
			return nil, fmt.Errorf("constants[%d] (%s): %w", i, cs.Name, err)
		}
		if err := p.add(symbols.NewVariable(cs.Name, true, typ, token.Token{})); err != nil {
			return nil, fmt.Errorf("constants[%d]: %w", i, err)
		}
	}

	for i, fs := range f.Functions {
		var ret typesystem.Type
		if fs.Returns != "" {
			t, err := ParseType(fs.Returns, named)
			if err != nil {
				return nil, fmt.Errorf("functions[%d] (%s): return: %w", i, fs.Name, err)
			}
			ret = t
		}
		fn := symbols.NewFunction(fs.Name, ret, token.Token{})
		for j, ps := range fs.Params {
			t, err := ParseType(ps.Type, named)
			if err != nil {
				return nil, fmt.Errorf("functions[%d] (%s): params[%d]: %w", i, fs.Name, j, err)
			}
			fn.AddParam(symbols.NewVariable(ps.Name, false, t, token.Token{}))
		}
		if err := p.add(fn); err != nil {
			return nil, fmt.Errorf("functions[%d]: %w", i, err)
		}
	}
	return p, nil
}

func (p *Prelude) add(e symbols.Entity) error {
	if e.Name() == "" {
		return fmt.Errorf("name is required")
	}
	if _, dup := p.index[e.Name()]; dup {
		return fmt.Errorf("%s defined twice", e.Name())
	}
	p.index[e.Name()] = e
	p.bindings = append(p.bindings, Binding{Name: e.Name(), Entity: e})
	return nil
}

// Bindings returns the bindings in declaration order.
func (p *Prelude) Bindings() []Binding {
	return p.bindings
}

// Lookup finds a binding by name.
func (p *Prelude) Lookup(name string) (symbols.Entity, bool) {
	e, ok := p.index[name]
	return e, ok
}

// Populate declares every binding in scope, in order.
func (p *Prelude) Populate(scope *symbols.Scope) error {
	for _, b := range p.bindings {
		if err := scope.Declare(b.Name, b.Entity); err != nil {
			return fmt.Errorf("prelude: %w", err)
		}
	}
	return nil
}

// ParseType reads a type written in surface syntax: a declared type name,
// any, void, [T] or T?.
func ParseType(s string, named map[string]typesystem.Type) (typesystem.Type, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return nil, fmt.Errorf("empty type")
	case strings.HasSuffix(s, "?"):
		elem, err := ParseType(s[:len(s)-1], named)
		if err != nil {
			return nil, err
		}
		return typesystem.NewOptional(elem), nil
	case strings.HasPrefix(s, "["):
		if !strings.HasSuffix(s, "]") {
			return nil, fmt.Errorf("unterminated array type %q", s)
		}
		elem, err := ParseType(s[1:len(s)-1], named)
		if err != nil {
			return nil, err
		}
		return typesystem.NewArray(elem), nil
	case s == "any":
		return typesystem.Any, nil
	case s == "void":
		return typesystem.Void, nil
	}
	if t, ok := named[s]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("unknown type %q", s)
}
