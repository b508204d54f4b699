package builtins

import (
	"github.com/kestrel-lang/quill/internal/ast"
	qerrors "github.com/kestrel-lang/quill/internal/errors"
	"github.com/kestrel-lang/quill/internal/eval"
)

// installLogic wires && and || as short-circuiting builtins: unlike
// arithmetic, they must not evaluate their second argument unless needed,
// which is exactly why the parser leaves them as unevaluated Apply
// arguments instead of eagerly reducing both sides (spec §4.4: "builtins
// decide whether to evaluate their arguments").
func installLogic(env *ast.Environment) {
	define(env, "&&", 2, "short-circuiting logical and", func(args []ast.Expr, env *ast.Environment, depth int) (ast.Expr, error) {
		if len(args) != 2 {
			return nil, qerrors.NewEvalError(qerrors.CodeArityMismatch, "&& expects 2 arguments, got %d", len(args))
		}
		lhs, err := eval.Eval(args[0], env, depth)
		if err != nil {
			return nil, err
		}
		if !eval.Truthy(lhs) {
			return &ast.Boolean{Value: false}, nil
		}
		rhs, err := eval.Eval(args[1], env, depth)
		if err != nil {
			return nil, err
		}
		return &ast.Boolean{Value: eval.Truthy(rhs)}, nil
	})

	define(env, "||", 2, "short-circuiting logical or", func(args []ast.Expr, env *ast.Environment, depth int) (ast.Expr, error) {
		if len(args) != 2 {
			return nil, qerrors.NewEvalError(qerrors.CodeArityMismatch, "|| expects 2 arguments, got %d", len(args))
		}
		lhs, err := eval.Eval(args[0], env, depth)
		if err != nil {
			return nil, err
		}
		if eval.Truthy(lhs) {
			return &ast.Boolean{Value: true}, nil
		}
		rhs, err := eval.Eval(args[1], env, depth)
		if err != nil {
			return nil, err
		}
		return &ast.Boolean{Value: eval.Truthy(rhs)}, nil
	})

	define(env, "not", 1, "logical negation", func(args []ast.Expr, env *ast.Environment, depth int) (ast.Expr, error) {
		if len(args) != 1 {
			return nil, qerrors.NewEvalError(qerrors.CodeArityMismatch, "not expects 1 argument, got %d", len(args))
		}
		v, err := eval.Eval(args[0], env, depth)
		if err != nil {
			return nil, err
		}
		return &ast.Boolean{Value: !eval.Truthy(v)}, nil
	})
}
