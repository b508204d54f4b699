package builtins

import (
	"github.com/kestrel-lang/quill/internal/ast"
	qerrors "github.com/kestrel-lang/quill/internal/errors"
	"github.com/kestrel-lang/quill/internal/eval"
	"github.com/kestrel-lang/quill/internal/lexer"
)

func installMeta(env *ast.Environment) {
	// quote(e) wraps its raw argument syntax without evaluating it — the
	// callable form of the `'` prefix operator, usable from juxtaposition
	// inside a macro body (spec §4.4, worked example in §8).
	define(env, "quote", 1, "return an expression unevaluated", func(args []ast.Expr, env *ast.Environment, depth int) (ast.Expr, error) {
		if len(args) != 1 {
			return nil, qerrors.NewEvalError(qerrors.CodeArityMismatch, "quote expects 1 argument, got %d", len(args))
		}
		return &ast.Quote{Wrapped: args[0]}, nil
	})

	// eval(e) evaluates its argument to get a value, then — if that value
	// is itself an expression (typically produced by `quote` or a
	// macro) — evaluates it again, running it as code.
	define(env, "eval", 1, "evaluate a (possibly quoted) expression", func(args []ast.Expr, env *ast.Environment, depth int) (ast.Expr, error) {
		if len(args) != 1 {
			return nil, qerrors.NewEvalError(qerrors.CodeArityMismatch, "eval expects 1 argument, got %d", len(args))
		}
		code, err := eval.Eval(args[0], env, depth)
		if err != nil {
			return nil, err
		}
		if q, ok := code.(*ast.Quote); ok {
			code = q.Wrapped
		}
		result, err := eval.Eval(code, env, depth)
		if err != nil {
			return nil, err
		}
		return result, nil
	})

	// try(expr, handler) evaluates expr; on failure it applies handler to
	// a map {message, code, expression} instead of propagating the error
	// (spec §4.4, §7 — the only in-language recovery point).
	define(env, "try", 2, "catch an evaluation error", func(args []ast.Expr, env *ast.Environment, depth int) (ast.Expr, error) {
		if len(args) != 2 {
			return nil, qerrors.NewEvalError(qerrors.CodeArityMismatch, "try expects 2 arguments, got %d", len(args))
		}
		result, evalErr := eval.Eval(args[0], env, depth)
		if evalErr == nil {
			return result, nil
		}
		handler, err := eval.Eval(args[1], env, depth)
		if err != nil {
			return nil, err
		}
		errMap := ast.NewMap(args[0].Pos())
		errMap.Values["message"] = &ast.String{Value: evalErr.Message}
		errMap.Values["code"] = &ast.Integer{Value: int64(evalErr.ErrCode)}
		errMap.Values["expression"] = &ast.Quote{Wrapped: args[0]}
		return eval.Apply(handler, []ast.Expr{&ast.Literal{Value: errMap}}, env, depth, args[0].Pos())
	})

	// codes() returns the stable error code table (spec §6.1 Error::codes()).
	define(env, "codes", -1, "return the stable error code table", func(args []ast.Expr, env *ast.Environment, depth int) (ast.Expr, error) {
		if len(args) != 0 {
			return nil, qerrors.NewEvalError(qerrors.CodeArityMismatch, "codes expects 0 arguments, got %d", len(args))
		}
		m := ast.NewMap(lexer.Position{})
		for _, entry := range qerrors.Codes() {
			m.Values[entry.Name] = &ast.Integer{Value: int64(entry.Code)}
		}
		return m, nil
	})
}
