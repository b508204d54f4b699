package ast

// Equal implements structural equality (spec §4.3 `==`): same Kind, same
// shape, recursively equal elements. Lambdas, Macros and Builtins are only
// equal to themselves (pointer identity), since they carry no comparable
// data of their own.
func Equal(a, b Expr) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case *None:
		return true
	case *Boolean:
		return av.Value == b.(*Boolean).Value
	case *Integer:
		return av.Value == b.(*Integer).Value
	case *Float:
		return av.Value == b.(*Float).Value
	case *String:
		return av.Value == b.(*String).Value
	case *Symbol:
		return av.Name == b.(*Symbol).Name
	case *List:
		bv := b.(*List)
		if len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !Equal(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	case *Map:
		bv := b.(*Map)
		if len(av.Values) != len(bv.Values) {
			return false
		}
		for k, v := range av.Values {
			other, ok := bv.Values[k]
			if !ok || !Equal(v, other) {
				return false
			}
		}
		return true
	case *Quote:
		return Equal(av.Wrapped, b.(*Quote).Wrapped)
	case *Lambda, *Macro, *Builtin:
		return a == b
	default:
		return a == b
	}
}

// Identical implements identity equality: containers and closures
// compare by reference, scalars by value (there is only one representation
// of a given scalar, so value and identity coincide for them).
func Identical(a, b Expr) bool {
	switch a.(type) {
	case *List, *Map, *Lambda, *Macro, *Builtin:
		return a == b
	default:
		return Equal(a, b)
	}
}

// TypeName returns the lowercase type name used in error messages and by
// any `type_of` builtin.
func TypeName(e Expr) string {
	switch e.Kind() {
	case KindNone:
		return "none"
	case KindBoolean:
		return "boolean"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindSymbol:
		return "symbol"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	case KindLambda:
		return "lambda"
	case KindMacro:
		return "macro"
	case KindBuiltin:
		return "builtin"
	default:
		return "expression"
	}
}
