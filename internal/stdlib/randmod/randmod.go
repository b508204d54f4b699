// Package randmod is a host-registered standard module:
// random/randomInt builtins on math/rand/v2 — no third-party RNG
// library fit this concern, so it stays stdlib-only (see DESIGN.md).
// There is no seeding builtin; math/rand/v2's global source is used as is.
package randmod

import (
	"math/rand/v2"

	"github.com/kestrel-lang/quill/internal/ast"
	qerrors "github.com/kestrel-lang/quill/internal/errors"
	"github.com/kestrel-lang/quill/internal/eval"
)

func Install(env *ast.Environment) {
	define(env, "random", "uniform float in [0, 1)", randomFloat)
	define(env, "randomInt", "uniform integer in [0, n)", randomInt)
}

func define(env *ast.Environment, name, help string, fn ast.BuiltinFunc) {
	env.Define(name, &ast.Builtin{Name: name, Fn: fn, Help: help, Arity: -1})
}

func randomFloat(args []ast.Expr, env *ast.Environment, depth int) (ast.Expr, error) {
	if len(args) != 0 {
		return nil, qerrors.NewEvalError(qerrors.CodeArityMismatch, "random expects 0 arguments, got %d", len(args))
	}
	return &ast.Float{Value: rand.Float64()}, nil
}

func randomInt(args []ast.Expr, env *ast.Environment, depth int) (ast.Expr, error) {
	if len(args) != 1 {
		return nil, qerrors.NewEvalError(qerrors.CodeArityMismatch, "randomInt expects 1 argument, got %d", len(args))
	}
	v, err := eval.Eval(args[0], env, depth)
	if err != nil {
		return nil, err
	}
	n, ok := v.(*ast.Integer)
	if !ok {
		return nil, qerrors.NewEvalError(qerrors.CodeTypeMismatch, "randomInt expects an integer bound, got %s", ast.TypeName(v))
	}
	if n.Value <= 0 {
		return nil, qerrors.NewEvalError(qerrors.CodeCustomError, "randomInt: bound must be positive, got %d", n.Value)
	}
	return &ast.Integer{Value: rand.Int64N(n.Value)}, nil
}
