package ast

// Substitute implements macro argument binding (spec §3: "the caller's
// syntax is bound verbatim"; spec §4.3: "bind param to args[0]
// unevaluated"). Quill's Macro carries no captured environment, so the
// only faithful way to make the parameter's occurrences see the caller's
// raw syntax is textual substitution of the body before it is evaluated
// in the calling environment — classic unhygienic macro expansion.
// Substitution does not descend into a nested binder that shadows name
// (a Lambda/Macro with the same parameter, a for-loop with the same
// variable, or a let declaring the same plain symbol or destructuring
// pattern). Inside a block (Do), a let that shadows name stops
// substitution for every statement after it, not just its own Value —
// once rebound, the macro parameter is out of scope for the rest of the
// block exactly as it would be for any other shadowed name.
func Substitute(expr Expr, name string, replacement Expr) Expr {
	switch e := expr.(type) {
	case *Symbol:
		if e.Name == name {
			return replacement
		}
		return e

	case *List:
		out := make([]Expr, len(e.Elements))
		for i, el := range e.Elements {
			out[i] = Substitute(el, name, replacement)
		}
		return &List{P: e.P, Elements: out}

	case *Map:
		out := NewMap(e.P)
		for k, v := range e.Values {
			out.Values[k] = Substitute(v, name, replacement)
		}
		return out

	case *Lambda:
		if e.Param == name {
			return e
		}
		return &Lambda{P: e.P, Param: e.Param, Body: Substitute(e.Body, name, replacement), Closure: e.Closure}

	case *Macro:
		if e.Param == name {
			return e
		}
		return &Macro{P: e.P, Param: e.Param, Body: Substitute(e.Body, name, replacement)}

	case *Apply:
		args := make([]Expr, len(e.Args))
		for i, a := range e.Args {
			args[i] = Substitute(a, name, replacement)
		}
		return &Apply{P: e.P, Callee: Substitute(e.Callee, name, replacement), Args: args}

	case *Quote:
		return &Quote{P: e.P, Wrapped: Substitute(e.Wrapped, name, replacement)}

	case *Do:
		out := make([]Expr, len(e.Exprs))
		shadowed := false
		for i, x := range e.Exprs {
			if shadowed {
				out[i] = x
				continue
			}
			out[i] = Substitute(x, name, replacement)
			if declares(x, name) {
				shadowed = true
			}
		}
		return &Do{P: e.P, Exprs: out}

	case *If:
		var els Expr
		if e.Else != nil {
			els = Substitute(e.Else, name, replacement)
		}
		return &If{P: e.P, Cond: Substitute(e.Cond, name, replacement), Then: Substitute(e.Then, name, replacement), Else: els}

	case *Assign:
		return &Assign{P: e.P, Target: Substitute(e.Target, name, replacement), Value: Substitute(e.Value, name, replacement)}

	case *Declare:
		if bindsName(e.Target, name) {
			return &Declare{P: e.P, Target: e.Target, Value: Substitute(e.Value, name, replacement)}
		}
		return &Declare{P: e.P, Target: Substitute(e.Target, name, replacement), Value: Substitute(e.Value, name, replacement)}

	case *For:
		if e.Var == name {
			return &For{P: e.P, Var: e.Var, Iterable: Substitute(e.Iterable, name, replacement), Body: e.Body}
		}
		return &For{P: e.P, Var: e.Var, Iterable: Substitute(e.Iterable, name, replacement), Body: Substitute(e.Body, name, replacement)}

	case *While:
		return &While{P: e.P, Cond: Substitute(e.Cond, name, replacement), Body: Substitute(e.Body, name, replacement)}

	case *Index:
		return &Index{P: e.P, Container: Substitute(e.Container, name, replacement), Key: Substitute(e.Key, name, replacement)}

	default:
		// None/Boolean/Integer/Float/String/Builtin carry no sub-expressions.
		return expr
	}
}

// declares reports whether stmt is a `let` that binds name, shadowing it
// for every statement after stmt in the same block.
func declares(stmt Expr, name string) bool {
	decl, ok := stmt.(*Declare)
	if !ok {
		return false
	}
	return bindsName(decl.Target, name)
}

// bindsName reports whether a Declare target (a plain Symbol, or a
// List/Map destructuring pattern of Symbols) binds name.
func bindsName(target Expr, name string) bool {
	switch t := target.(type) {
	case *Symbol:
		return t.Name == name
	case *List:
		for _, el := range t.Elements {
			if bindsName(el, name) {
				return true
			}
		}
		return false
	case *Map:
		for _, v := range t.Values {
			if bindsName(v, name) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
