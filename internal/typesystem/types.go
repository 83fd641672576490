package typesystem

import "strings"

// Type is the interface for all types in our system.
// The variant set is closed: Primitive, Array, Optional and Func.
type Type interface {
	String() string
	typeNode()
}

// PrimitiveKind enumerates the primitive types.
type PrimitiveKind int

const (
	IntKind PrimitiveKind = iota
	FloatKind
	StringKind
	BooleanKind
	VoidKind
	AnyKind
)

// Primitive is a built-in scalar type. Primitives are singletons and are
// compared by identity.
type Primitive struct {
	kind PrimitiveKind
	name string
}

func (p *Primitive) typeNode()           {}
func (p *Primitive) String() string      { return p.name }
func (p *Primitive) Kind() PrimitiveKind { return p.kind }

// The primitive singletons, named the way Pokerscript programs spell them.
var (
	Int     = &Primitive{kind: IntKind, name: "chip"}
	Float   = &Primitive{kind: FloatKind, name: "change"}
	String  = &Primitive{kind: StringKind, name: "stringBet"}
	Boolean = &Primitive{kind: BooleanKind, name: "playingOnTilt"}
	Void    = &Primitive{kind: VoidKind, name: "void"}
	// Any is a universal assignment target, never the type of a value.
	Any = &Primitive{kind: AnyKind, name: "any"}
)

// Primitives lists every primitive singleton in kind order.
var Primitives = []*Primitive{Int, Float, String, Boolean, Void, Any}

// PrimitiveByKind returns the singleton for kind.
func PrimitiveByKind(kind PrimitiveKind) *Primitive {
	return Primitives[kind]
}

// Array is [Elem].
type Array struct {
	Elem Type
}

func (a *Array) typeNode()      {}
func (a *Array) String() string { return "[" + a.Elem.String() + "]" }

// Optional is Elem?.
type Optional struct {
	Elem Type
}

func (o *Optional) typeNode()      {}
func (o *Optional) String() string { return o.Elem.String() + "?" }

// Func is the type of a function entity.
type Func struct {
	Params []Type
	Return Type
}

func (f *Func) typeNode() {}

func (f *Func) String() string {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.String()
	}
	return "(" + strings.Join(params, ",") + ")->" + f.Return.String()
}

// NewArray returns [elem].
func NewArray(elem Type) *Array { return &Array{Elem: elem} }

// NewOptional returns elem?.
func NewOptional(elem Type) *Optional { return &Optional{Elem: elem} }
