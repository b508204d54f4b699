// Package timemod is a host-registered standard module:
// now/unixMillis/sleep builtins on the stdlib time package — no
// third-party time/clock library fit this concern, so it stays
// stdlib-only (see DESIGN.md).
package timemod

import (
	"time"

	"github.com/kestrel-lang/quill/internal/ast"
	qerrors "github.com/kestrel-lang/quill/internal/errors"
	"github.com/kestrel-lang/quill/internal/eval"
)

func Install(env *ast.Environment) {
	define(env, "now", "current time as Unix seconds", now)
	define(env, "unixMillis", "current time as Unix milliseconds", unixMillis)
	define(env, "sleep", "pause for a number of milliseconds", sleep)
}

func define(env *ast.Environment, name, help string, fn ast.BuiltinFunc) {
	env.Define(name, &ast.Builtin{Name: name, Fn: fn, Help: help, Arity: -1})
}

func now(args []ast.Expr, env *ast.Environment, depth int) (ast.Expr, error) {
	if len(args) != 0 {
		return nil, qerrors.NewEvalError(qerrors.CodeArityMismatch, "now expects 0 arguments, got %d", len(args))
	}
	return &ast.Integer{Value: time.Now().Unix()}, nil
}

func unixMillis(args []ast.Expr, env *ast.Environment, depth int) (ast.Expr, error) {
	if len(args) != 0 {
		return nil, qerrors.NewEvalError(qerrors.CodeArityMismatch, "unixMillis expects 0 arguments, got %d", len(args))
	}
	return &ast.Integer{Value: time.Now().UnixMilli()}, nil
}

func sleep(args []ast.Expr, env *ast.Environment, depth int) (ast.Expr, error) {
	if len(args) != 1 {
		return nil, qerrors.NewEvalError(qerrors.CodeArityMismatch, "sleep expects 1 argument, got %d", len(args))
	}
	v, err := eval.Eval(args[0], env, depth)
	if err != nil {
		return nil, err
	}
	i, ok := v.(*ast.Integer)
	if !ok {
		return nil, qerrors.NewEvalError(qerrors.CodeTypeMismatch, "sleep expects an integer millisecond count, got %s", ast.TypeName(v))
	}
	time.Sleep(time.Duration(i.Value) * time.Millisecond)
	return &ast.None{}, nil
}
