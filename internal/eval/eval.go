// Package eval implements Quill's tree-walking evaluator (spec §4.3): a
// single recursive function that reduces an internal/ast.Expr to a value
// in a given internal/ast.Environment, or returns a *errors.EvalError.
package eval

import (
	"github.com/kestrel-lang/quill/internal/ast"
	qerrors "github.com/kestrel-lang/quill/internal/errors"
)

// MaxDepth bounds recursion so a runaway program fails with StackOverflow
// (spec §4.3) instead of crashing the host process. It is a package
// variable, not a constant, so a host (the CLI's `--depth` flag) can raise
// or lower it per run.
var MaxDepth = 1024

// Eval reduces expr to a value in env, per the reduction rules of spec
// §4.3. depth is the current recursion depth; external callers should
// always pass 0.
func Eval(expr ast.Expr, env *ast.Environment, depth int) (ast.Expr, *qerrors.EvalError) {
	if depth > MaxDepth {
		return nil, qerrors.NewEvalError(qerrors.CodeStackOverflow, "recursion depth exceeded %d", MaxDepth).At(expr.Pos())
	}

	switch e := expr.(type) {
	case *ast.None, *ast.Boolean, *ast.Integer, *ast.Float, *ast.String,
		*ast.Builtin:
		return expr, nil

	case *ast.Literal:
		return e.Value, nil

	case *boundArg:
		return Eval(e.expr, e.env, depth+1)

	case *ast.Symbol:
		if v, ok := env.Lookup(e.Name); ok {
			return v, nil
		}
		return nil, qerrors.NewEvalError(qerrors.CodeUnboundSymbol, "unbound symbol %q", e.Name).At(e.P)

	case *ast.Quote:
		return e.Wrapped, nil

	case *ast.List:
		elems := make([]ast.Expr, len(e.Elements))
		for i, el := range e.Elements {
			v, err := Eval(el, env, depth+1)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return &ast.List{P: e.P, Elements: elems}, nil

	case *ast.Map:
		m := ast.NewMap(e.P)
		for _, k := range e.SortedKeys() {
			v, err := Eval(e.Values[k], env, depth+1)
			if err != nil {
				return nil, err
			}
			m.Values[k] = v
		}
		return m, nil

	case *ast.Lambda:
		if e.Closure != nil {
			return e, nil // already a value (e.g. re-evaluated via the `eval` builtin); idempotent
		}
		return &ast.Lambda{P: e.P, Param: e.Param, Body: e.Body, Closure: env}, nil

	case *ast.Macro:
		return &ast.Macro{P: e.P, Param: e.Param, Body: e.Body}, nil

	case *ast.Do:
		var result ast.Expr = &ast.None{P: e.P}
		for _, sub := range e.Exprs {
			v, err := Eval(sub, env, depth+1)
			if err != nil {
				return nil, err
			}
			result = v
		}
		return result, nil

	case *ast.Declare:
		value, err := Eval(e.Value, env, depth+1)
		if err != nil {
			return nil, err
		}
		if err := bindPattern(e.Target, value, env); err != nil {
			return nil, err
		}
		return value, nil

	case *ast.Assign:
		value, err := Eval(e.Value, env, depth+1)
		if err != nil {
			return nil, err
		}
		return assign(e.Target, value, env, depth)

	case *ast.If:
		cond, err := Eval(e.Cond, env, depth+1)
		if err != nil {
			return nil, err
		}
		if Truthy(cond) {
			return Eval(e.Then, env, depth+1)
		}
		if e.Else != nil {
			return Eval(e.Else, env, depth+1)
		}
		return &ast.None{P: e.P}, nil

	case *ast.For:
		return evalFor(e, env, depth)

	case *ast.While:
		return evalWhile(e, env, depth)

	case *ast.Index:
		container, err := Eval(e.Container, env, depth+1)
		if err != nil {
			return nil, err
		}
		key, err := Eval(e.Key, env, depth+1)
		if err != nil {
			return nil, err
		}
		return indexGet(container, key, e.P)

	case *ast.Apply:
		return evalApply(e, env, depth)

	default:
		return nil, qerrors.NewEvalError(qerrors.CodeTypeMismatch, "cannot evaluate %s", expr.Kind()).At(expr.Pos())
	}
}

// Truthy implements spec §4.3's truthiness rule: false, None, 0, 0.0, and
// empty string/list/map are falsy; everything else is truthy.
func Truthy(v ast.Expr) bool {
	switch e := v.(type) {
	case *ast.Boolean:
		return e.Value
	case *ast.None:
		return false
	case *ast.Integer:
		return e.Value != 0
	case *ast.Float:
		return e.Value != 0
	case *ast.String:
		return e.Value != ""
	case *ast.List:
		return len(e.Elements) != 0
	case *ast.Map:
		return len(e.Values) != 0
	default:
		return true
	}
}

func bindPattern(target ast.Expr, value ast.Expr, env *ast.Environment) *qerrors.EvalError {
	switch t := target.(type) {
	case *ast.Symbol:
		env.Define(t.Name, value)
		return nil
	case *ast.List:
		list, ok := value.(*ast.List)
		if !ok {
			return qerrors.NewEvalError(qerrors.CodeTypeMismatch, "cannot destructure %s as a list", ast.TypeName(value)).At(t.P)
		}
		if len(list.Elements) != len(t.Elements) {
			return qerrors.NewEvalError(qerrors.CodeTypeMismatch, "list pattern expects %d elements, got %d", len(t.Elements), len(list.Elements)).At(t.P)
		}
		for i, sub := range t.Elements {
			if err := bindPattern(sub, list.Elements[i], env); err != nil {
				return err
			}
		}
		return nil
	case *ast.Map:
		m, ok := value.(*ast.Map)
		if !ok {
			return qerrors.NewEvalError(qerrors.CodeTypeMismatch, "cannot destructure %s as a map", ast.TypeName(value)).At(t.P)
		}
		for key, sub := range t.Values {
			v, ok := m.Values[key]
			if !ok {
				return qerrors.NewEvalError(qerrors.CodeIndexError, "missing key %q in destructured map", key).At(t.P)
			}
			if err := bindPattern(sub, v, env); err != nil {
				return err
			}
		}
		return nil
	default:
		return qerrors.NewEvalError(qerrors.CodeTypeMismatch, "invalid let target %s", target.Kind()).At(target.Pos())
	}
}

func assign(target ast.Expr, value ast.Expr, env *ast.Environment, depth int) (ast.Expr, *qerrors.EvalError) {
	switch t := target.(type) {
	case *ast.Symbol:
		if !env.Assign(t.Name, value) {
			env.Define(t.Name, value)
		}
		return value, nil
	case *ast.Index:
		container, err := Eval(t.Container, env, depth+1)
		if err != nil {
			return nil, err
		}
		key, err := Eval(t.Key, env, depth+1)
		if err != nil {
			return nil, err
		}
		return value, indexSet(container, key, value, t.P)
	default:
		return nil, qerrors.NewEvalError(qerrors.CodeTypeMismatch, "invalid assignment target %s", target.Kind()).At(target.Pos())
	}
}

func evalFor(e *ast.For, env *ast.Environment, depth int) (ast.Expr, *qerrors.EvalError) {
	iter, err := Eval(e.Iterable, env, depth+1)
	if err != nil {
		return nil, err
	}
	run := func(item ast.Expr) *qerrors.EvalError {
		child := env.Child()
		child.Define(e.Var, item)
		_, err := Eval(e.Body, child, depth+1)
		return err
	}
	switch it := iter.(type) {
	case *ast.List:
		for _, el := range it.Elements {
			if err := run(el); err != nil {
				return nil, err
			}
		}
	case *ast.Map:
		for _, k := range it.SortedKeys() {
			if err := run(&ast.String{Value: k}); err != nil {
				return nil, err
			}
		}
	case *ast.String:
		for _, r := range it.Value {
			if err := run(&ast.String{Value: string(r)}); err != nil {
				return nil, err
			}
		}
	default:
		return nil, qerrors.NewEvalError(qerrors.CodeTypeMismatch, "%s is not iterable", ast.TypeName(iter)).At(e.Iterable.Pos())
	}
	return &ast.None{P: e.P}, nil
}

func evalWhile(e *ast.While, env *ast.Environment, depth int) (ast.Expr, *qerrors.EvalError) {
	for {
		cond, err := Eval(e.Cond, env, depth+1)
		if err != nil {
			return nil, err
		}
		if !Truthy(cond) {
			return &ast.None{P: e.P}, nil
		}
		if _, err := Eval(e.Body, env.Child(), depth+1); err != nil {
			return nil, err
		}
	}
}

