package builtins

import (
	"github.com/kestrel-lang/quill/internal/ast"
	qerrors "github.com/kestrel-lang/quill/internal/errors"
	"github.com/kestrel-lang/quill/internal/eval"
)

func evalTwo(name string, args []ast.Expr, env *ast.Environment, depth int) (ast.Expr, ast.Expr, *qerrors.EvalError) {
	if len(args) != 2 {
		return nil, nil, qerrors.NewEvalError(qerrors.CodeArityMismatch, "%s expects 2 arguments, got %d", name, len(args))
	}
	a, err := eval.Eval(args[0], env, depth)
	if err != nil {
		return nil, nil, err
	}
	b, err := eval.Eval(args[1], env, depth)
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

func installComparison(env *ast.Environment) {
	define(env, "==", 2, "structural/numeric equality", func(args []ast.Expr, env *ast.Environment, depth int) (ast.Expr, error) {
		a, b, err := evalTwo("==", args, env, depth)
		if err != nil {
			return nil, err
		}
		return &ast.Boolean{Value: valuesEqual(a, b)}, nil
	})

	define(env, "!=", 2, "structural/numeric inequality", func(args []ast.Expr, env *ast.Environment, depth int) (ast.Expr, error) {
		a, b, err := evalTwo("!=", args, env, depth)
		if err != nil {
			return nil, err
		}
		return &ast.Boolean{Value: !valuesEqual(a, b)}, nil
	})

	order := func(name string, cmp func(c int) bool) {
		define(env, name, 2, "numeric comparison", func(args []ast.Expr, env *ast.Environment, depth int) (ast.Expr, error) {
			a, b, err := evalTwo(name, args, env, depth)
			if err != nil {
				return nil, err
			}
			c, err := compareNumbers(name, a, b)
			if err != nil {
				return nil, err
			}
			return &ast.Boolean{Value: cmp(c)}, nil
		})
	}
	order("<", func(c int) bool { return c < 0 })
	order("<=", func(c int) bool { return c <= 0 })
	order(">", func(c int) bool { return c > 0 })
	order(">=", func(c int) bool { return c >= 0 })
}

// valuesEqual is == (numeric values compare across int/float promotion;
// everything else falls back to structural equality, spec §4.3).
func valuesEqual(a, b ast.Expr) bool {
	af, _, aOK := asNumber(a)
	bf, _, bOK := asNumber(b)
	if aOK && bOK {
		return af == bf
	}
	return ast.Equal(a, b)
}

func compareNumbers(name string, a, b ast.Expr) (int, *qerrors.EvalError) {
	af, _, aOK := asNumber(a)
	bf, _, bOK := asNumber(b)
	if !aOK || !bOK {
		return 0, qerrors.NewEvalError(qerrors.CodeTypeMismatch, "%s requires numbers, got %s and %s", name, ast.TypeName(a), ast.TypeName(b))
	}
	switch {
	case af < bf:
		return -1, nil
	case af > bf:
		return 1, nil
	default:
		return 0, nil
	}
}
