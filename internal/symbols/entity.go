package symbols

import (
	"fmt"

	"github.com/funvibe/pokerscript/internal/token"
	"github.com/funvibe/pokerscript/internal/typesystem"
	"github.com/google/uuid"
)

type EntityKind int

const (
	VariableEntity EntityKind = iota
	FunctionEntity
	TypeEntityKind
)

func (k EntityKind) String() string {
	switch k {
	case VariableEntity:
		return "variable"
	case FunctionEntity:
		return "function"
	case TypeEntityKind:
		return "type"
	}
	return fmt.Sprintf("EntityKind(%d)", int(k))
}

// entityNamespace seeds the name-based entity identifiers.
var entityNamespace = uuid.MustParse("6f1c7a52-3b0e-5d4a-9c61-2f8e0b7d4a13")

// Entity is a declared Variable, Function or Type. Entities are created once
// at their declaration and shared by every identifier that resolves to them.
type Entity interface {
	Name() string
	Kind() EntityKind
	// Type is the entity's value type; for a TypeEntity it is the type the
	// name denotes.
	Type() typesystem.Type
	// Decl is the declaring token; zero for prelude bindings.
	Decl() token.Token
	// ID is stable across runs: it depends only on kind, name, position
	// and ordinal.
	ID() uuid.UUID
	setOrdinal(n int)
}

// SetOrdinal records that e is the n-th declaration of its program, which
// keeps IDs apart for declarations that share a name and a position.
// Prelude entities keep ordinal 0.
func SetOrdinal(e Entity, n int) { e.setOrdinal(n) }

func entityID(kind EntityKind, name string, decl token.Token, ordinal int) uuid.UUID {
	key := fmt.Sprintf("%s:%s:%d:%d:%d", kind, name, decl.Line, decl.Column, ordinal)
	return uuid.NewSHA1(entityNamespace, []byte(key))
}

// Variable is a named storage location. Parameters are Variables too.
type Variable struct {
	name     string
	readOnly bool
	typ      typesystem.Type
	decl     token.Token
	ordinal  int
}

func NewVariable(name string, readOnly bool, typ typesystem.Type, decl token.Token) *Variable {
	return &Variable{name: name, readOnly: readOnly, typ: typ, decl: decl}
}

func (v *Variable) Name() string          { return v.name }
func (v *Variable) Kind() EntityKind      { return VariableEntity }
func (v *Variable) Type() typesystem.Type { return v.typ }
func (v *Variable) Decl() token.Token     { return v.decl }
func (v *Variable) ID() uuid.UUID         { return entityID(VariableEntity, v.name, v.decl, v.ordinal) }
func (v *Variable) ReadOnly() bool        { return v.readOnly }
func (v *Variable) setOrdinal(n int)      { v.ordinal = n }

// Function is a declared or built-in callable.
type Function struct {
	name    string
	params  []*Variable
	ret     typesystem.Type
	decl    token.Token
	ordinal int
}

// NewFunction creates a function with no parameters yet. A nil return type
// means void.
func NewFunction(name string, ret typesystem.Type, decl token.Token) *Function {
	if ret == nil {
		ret = typesystem.Void
	}
	return &Function{name: name, ret: ret, decl: decl}
}

func (f *Function) Name() string                { return f.name }
func (f *Function) Kind() EntityKind            { return FunctionEntity }
func (f *Function) Decl() token.Token           { return f.decl }
func (f *Function) ID() uuid.UUID               { return entityID(FunctionEntity, f.name, f.decl, f.ordinal) }
func (f *Function) Params() []*Variable         { return f.params }
func (f *Function) ReturnType() typesystem.Type { return f.ret }
func (f *Function) setOrdinal(n int)            { f.ordinal = n }

// AddParam appends a parameter in declaration order.
func (f *Function) AddParam(p *Variable) {
	f.params = append(f.params, p)
}

// ParamTypes returns the declared parameter types in order.
func (f *Function) ParamTypes() []typesystem.Type {
	types := make([]typesystem.Type, len(f.params))
	for i, p := range f.params {
		types[i] = p.Type()
	}
	return types
}

// Type returns the function's signature type.
func (f *Function) Type() typesystem.Type {
	return &typesystem.Func{Params: f.ParamTypes(), Return: f.ret}
}

// TypeEntity binds a name to a type, e.g. chip to the integer primitive.
type TypeEntity struct {
	name    string
	typ     typesystem.Type
	decl    token.Token
	ordinal int
}

func NewTypeEntity(name string, typ typesystem.Type, decl token.Token) *TypeEntity {
	return &TypeEntity{name: name, typ: typ, decl: decl}
}

func (t *TypeEntity) Name() string          { return t.name }
func (t *TypeEntity) Kind() EntityKind      { return TypeEntityKind }
func (t *TypeEntity) Type() typesystem.Type { return t.typ }
func (t *TypeEntity) Decl() token.Token     { return t.decl }
func (t *TypeEntity) ID() uuid.UUID         { return entityID(TypeEntityKind, t.name, t.decl, t.ordinal) }
func (t *TypeEntity) setOrdinal(n int)      { t.ordinal = n }

// IsReadOnly reports whether e cannot be the target of an assignment.
// Only mutable Variables are writable.
func IsReadOnly(e Entity) bool {
	v, ok := e.(*Variable)
	return !ok || v.ReadOnly()
}
