package eval

import (
	"github.com/kestrel-lang/quill/internal/ast"
	qerrors "github.com/kestrel-lang/quill/internal/errors"
	"github.com/kestrel-lang/quill/internal/lexer"
)

// evalApply implements spec §4.3 Apply dispatch. The callee is always
// evaluated; what happens to the arguments depends entirely on what kind
// of callable it turns out to be.
func evalApply(e *ast.Apply, env *ast.Environment, depth int) (ast.Expr, *qerrors.EvalError) {
	callee, err := Eval(e.Callee, env, depth+1)
	if err != nil {
		return nil, err
	}
	return applyTo(callee, e.Args, env, depth, e.P)
}

// Apply invokes callee (already evaluated) with raw argument expressions,
// exactly as the evaluator's own Apply dispatch would. Exported so
// builtins like `try` can hand a value off to a handler callback without
// re-implementing the Lambda/Macro/Builtin dispatch rules.
func Apply(callee ast.Expr, args []ast.Expr, env *ast.Environment, depth int, pos lexer.Position) (ast.Expr, *qerrors.EvalError) {
	return applyTo(callee, args, env, depth, pos)
}

func applyTo(callee ast.Expr, args []ast.Expr, env *ast.Environment, depth int, pos lexer.Position) (ast.Expr, *qerrors.EvalError) {
	switch c := callee.(type) {
	case *ast.Lambda:
		return applyLambda(c, args, env, depth, pos)
	case *ast.Macro:
		return applyMacro(c, args, env, depth, pos)
	case *ast.Builtin:
		return applyBuiltin(c, args, env, depth, pos)
	default:
		return nil, qerrors.NewEvalError(qerrors.CodeNotCallable, "%s is not callable", ast.TypeName(callee)).At(pos)
	}
}

// applyBuiltin invokes a host callable. Juxtaposition only ever supplies one
// argument per Apply node, so a multi-argument builtin reached through
// juxtaposed calls (e.g. `try (1/0) (e -> e.code)`, spec §8) would otherwise
// see just one argument per call; curry-equivalence (spec §4.3: `f x y`
// means the same as `(f x) y` for every callable f) requires it to behave
// exactly like a curried lambda instead. When fewer arguments arrive than
// Arity calls for, they are closed over — still unevaluated, each paired
// with the environment it was supplied in via boundArg — in a new,
// lower-arity Builtin; the real call only happens once enough arguments
// have accumulated, and each stays lazy until Fn itself evaluates it. This
// matters for try: its first argument must not be evaluated (and must not
// have a chance to raise) until try's own Fn runs, not when the partial
// application is built. A negative Arity (or a parenthesized call supplying
// Arity or more at once) invokes Fn immediately, unchanged.
func applyBuiltin(c *ast.Builtin, args []ast.Expr, env *ast.Environment, depth int, pos lexer.Position) (ast.Expr, *qerrors.EvalError) {
	if c.Arity < 0 || len(args) >= c.Arity {
		v, err := c.Fn(args, env, depth+1)
		if err != nil {
			if ee, ok := err.(*qerrors.EvalError); ok {
				return nil, ee
			}
			return nil, qerrors.NewEvalError(qerrors.CodeCustomError, "%s", err.Error()).At(pos)
		}
		return v, nil
	}

	bound := make([]ast.Expr, len(args))
	for i, a := range args {
		bound[i] = &boundArg{expr: a, env: env}
	}
	fn, name, help := c.Fn, c.Name, c.Help
	return &ast.Builtin{
		P:     pos,
		Name:  name,
		Help:  help,
		Arity: c.Arity - len(args),
		Fn: func(more []ast.Expr, env *ast.Environment, depth int) (ast.Expr, error) {
			return fn(append(append([]ast.Expr{}, bound...), more...), env, depth)
		},
	}, nil
}

// boundArg freezes an argument expression together with the environment it
// was supplied in, so a partially-applied Builtin (see applyBuiltin) can
// still evaluate it lazily and in the right scope once the real call
// happens, rather than eagerly at curry time.
type boundArg struct {
	expr ast.Expr
	env  *ast.Environment
}

func (b *boundArg) Kind() ast.Kind      { return b.expr.Kind() }
func (b *boundArg) Pos() lexer.Position { return b.expr.Pos() }
func (b *boundArg) String() string      { return b.expr.String() }

// applyLambda applies a closure. One arg binds the single parameter in a
// fresh child of the closure's captured environment; more than one arg
// curries left-associatively, per spec §4.3.
func applyLambda(fn *ast.Lambda, args []ast.Expr, env *ast.Environment, depth int, pos lexer.Position) (ast.Expr, *qerrors.EvalError) {
	if len(args) == 0 {
		return fn, nil
	}
	argVal, err := Eval(args[0], env, depth+1)
	if err != nil {
		return nil, err
	}
	child := fn.Closure.Child()
	child.Define(fn.Param, argVal)
	result, err := Eval(fn.Body, child, depth+1)
	if err != nil {
		return nil, err
	}
	if len(args) == 1 {
		return result, nil
	}
	return applyTo(result, args[1:], env, depth, pos)
}

// applyMacro substitutes the caller's raw (unevaluated) first argument for
// every occurrence of the macro's parameter in its body, then evaluates
// the substituted body in the *calling* environment — a Macro carries no
// captured environment of its own (spec §3), so this is the only way its
// parameter sees both the caller's literal syntax and the caller's
// bindings (see internal/ast.Substitute and DESIGN.md).
func applyMacro(m *ast.Macro, args []ast.Expr, env *ast.Environment, depth int, pos lexer.Position) (ast.Expr, *qerrors.EvalError) {
	if len(args) == 0 {
		return m, nil
	}
	body := ast.Substitute(m.Body, m.Param, args[0])
	result, err := Eval(body, env, depth+1)
	if err != nil {
		return nil, err
	}
	if len(args) == 1 {
		return result, nil
	}
	return applyTo(result, args[1:], env, depth, pos)
}
