package typesystem

// Equivalent reports whether a and b denote exactly the same structure.
// Composite types are compared element-wise; different variants are never
// equivalent.
func Equivalent(a, b Type) bool {
	if a == nil || b == nil {
		return false
	}
	switch x := a.(type) {
	case *Primitive:
		y, ok := b.(*Primitive)
		return ok && x == y
	case *Array:
		y, ok := b.(*Array)
		return ok && Equivalent(x.Elem, y.Elem)
	case *Optional:
		y, ok := b.(*Optional)
		return ok && Equivalent(x.Elem, y.Elem)
	case *Func:
		y, ok := b.(*Func)
		if !ok || len(x.Params) != len(y.Params) {
			return false
		}
		for i := range x.Params {
			if !Equivalent(x.Params[i], y.Params[i]) {
				return false
			}
		}
		return Equivalent(x.Return, y.Return)
	default:
		panic("typesystem: unknown type variant")
	}
}

// Assignable reports whether a value of type src may be stored in a location
// of type target. Any accepts everything; otherwise the types must be
// equivalent. Arrays, optionals and functions are invariant: [chip] is never
// assignable to [any] even though chip is assignable to any.
func Assignable(src, target Type) bool {
	if target == Any {
		return src != nil
	}
	return Equivalent(src, target)
}

// IsNumber reports whether t is chip or change.
func IsNumber(t Type) bool {
	return t == Int || t == Float
}

// IsNumberOrString reports whether t is chip, change or stringBet.
func IsNumberOrString(t Type) bool {
	return IsNumber(t) || t == String
}

// IsBoolean reports whether t is playingOnTilt.
func IsBoolean(t Type) bool {
	return t == Boolean
}

// IsInteger reports whether t is chip.
func IsInteger(t Type) bool {
	return t == Int
}

// ElementOf returns the element type of an array, or nil.
func ElementOf(t Type) Type {
	if a, ok := t.(*Array); ok {
		return a.Elem
	}
	return nil
}
