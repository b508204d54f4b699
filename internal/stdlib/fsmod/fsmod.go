// Package fsmod is a host-registered standard module:
// readFile/writeFile/listDir builtins on os/path/filepath. No third-party
// filesystem library fit this concern, so it stays stdlib-only (see
// DESIGN.md).
package fsmod

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/kestrel-lang/quill/internal/ast"
	qerrors "github.com/kestrel-lang/quill/internal/errors"
	"github.com/kestrel-lang/quill/internal/eval"
)

func Install(env *ast.Environment) {
	define(env, "readFile", "read a file's contents as a string", readFile)
	define(env, "writeFile", "write a string to a file, creating or truncating it", writeFile)
	define(env, "listDir", "list entry names of a directory", listDir)
}

func define(env *ast.Environment, name, help string, fn ast.BuiltinFunc) {
	env.Define(name, &ast.Builtin{Name: name, Fn: fn, Help: help, Arity: -1})
}

func stringArg(name string, args []ast.Expr, i int, env *ast.Environment, depth int) (string, *qerrors.EvalError) {
	v, err := eval.Eval(args[i], env, depth)
	if err != nil {
		return "", err
	}
	s, ok := v.(*ast.String)
	if !ok {
		return "", qerrors.NewEvalError(qerrors.CodeTypeMismatch, "%s expects a string argument, got %s", name, ast.TypeName(v))
	}
	return s.Value, nil
}

func readFile(args []ast.Expr, env *ast.Environment, depth int) (ast.Expr, error) {
	if len(args) != 1 {
		return nil, qerrors.NewEvalError(qerrors.CodeArityMismatch, "readFile expects 1 argument, got %d", len(args))
	}
	path, err := stringArg("readFile", args, 0, env, depth)
	if err != nil {
		return nil, err
	}
	data, rerr := os.ReadFile(path)
	if rerr != nil {
		return nil, qerrors.NewEvalError(qerrors.CodeCustomError, "readFile: %s", rerr)
	}
	return &ast.String{Value: string(data)}, nil
}

func writeFile(args []ast.Expr, env *ast.Environment, depth int) (ast.Expr, error) {
	if len(args) != 2 {
		return nil, qerrors.NewEvalError(qerrors.CodeArityMismatch, "writeFile expects 2 arguments, got %d", len(args))
	}
	path, err := stringArg("writeFile", args, 0, env, depth)
	if err != nil {
		return nil, err
	}
	content, err := stringArg("writeFile", args, 1, env, depth)
	if err != nil {
		return nil, err
	}
	if werr := os.WriteFile(path, []byte(content), 0o644); werr != nil {
		return nil, qerrors.NewEvalError(qerrors.CodeCustomError, "writeFile: %s", werr)
	}
	return &ast.None{}, nil
}

func listDir(args []ast.Expr, env *ast.Environment, depth int) (ast.Expr, error) {
	if len(args) != 1 {
		return nil, qerrors.NewEvalError(qerrors.CodeArityMismatch, "listDir expects 1 argument, got %d", len(args))
	}
	path, err := stringArg("listDir", args, 0, env, depth)
	if err != nil {
		return nil, err
	}
	entries, rerr := os.ReadDir(path)
	if rerr != nil {
		return nil, qerrors.NewEvalError(qerrors.CodeCustomError, "listDir: %s", rerr)
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = filepath.Base(e.Name())
	}
	sort.Strings(names)
	elems := make([]ast.Expr, len(names))
	for i, n := range names {
		elems[i] = &ast.String{Value: n}
	}
	return &ast.List{Elements: elems}, nil
}
