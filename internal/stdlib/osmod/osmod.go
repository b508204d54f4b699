// Package osmod is a host-registered standard module:
// getEnv/args/exit builtins on the stdlib os package.
package osmod

import (
	"os"

	"github.com/kestrel-lang/quill/internal/ast"
	qerrors "github.com/kestrel-lang/quill/internal/errors"
	"github.com/kestrel-lang/quill/internal/eval"
)

func Install(env *ast.Environment) {
	define(env, "getEnv", "read an environment variable, or \"\" if unset", getEnv)
	define(env, "args", "the process's command-line arguments", args)
	define(env, "exit", "terminate the host process with a status code", exit)
}

func define(env *ast.Environment, name, help string, fn ast.BuiltinFunc) {
	env.Define(name, &ast.Builtin{Name: name, Fn: fn, Help: help, Arity: -1})
}

func getEnv(argv []ast.Expr, env *ast.Environment, depth int) (ast.Expr, error) {
	if len(argv) != 1 {
		return nil, qerrors.NewEvalError(qerrors.CodeArityMismatch, "getEnv expects 1 argument, got %d", len(argv))
	}
	v, err := eval.Eval(argv[0], env, depth)
	if err != nil {
		return nil, err
	}
	s, ok := v.(*ast.String)
	if !ok {
		return nil, qerrors.NewEvalError(qerrors.CodeTypeMismatch, "getEnv expects a string name, got %s", ast.TypeName(v))
	}
	return &ast.String{Value: os.Getenv(s.Value)}, nil
}

func args(argv []ast.Expr, env *ast.Environment, depth int) (ast.Expr, error) {
	if len(argv) != 0 {
		return nil, qerrors.NewEvalError(qerrors.CodeArityMismatch, "args expects 0 arguments, got %d", len(argv))
	}
	elems := make([]ast.Expr, len(os.Args))
	for i, a := range os.Args {
		elems[i] = &ast.String{Value: a}
	}
	return &ast.List{Elements: elems}, nil
}

func exit(argv []ast.Expr, env *ast.Environment, depth int) (ast.Expr, error) {
	if len(argv) != 1 {
		return nil, qerrors.NewEvalError(qerrors.CodeArityMismatch, "exit expects 1 argument, got %d", len(argv))
	}
	v, err := eval.Eval(argv[0], env, depth)
	if err != nil {
		return nil, err
	}
	code, ok := v.(*ast.Integer)
	if !ok {
		return nil, qerrors.NewEvalError(qerrors.CodeTypeMismatch, "exit expects an integer status code, got %s", ast.TypeName(v))
	}
	os.Exit(int(code.Value))
	return &ast.None{}, nil
}
