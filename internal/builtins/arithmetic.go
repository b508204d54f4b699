package builtins

import (
	"math"

	"github.com/kestrel-lang/quill/internal/ast"
	qerrors "github.com/kestrel-lang/quill/internal/errors"
	"github.com/kestrel-lang/quill/internal/eval"
)

// numberOperands evaluates both argument expressions and reports the pair
// as either both integers or (if either is a Float) both floats, per spec
// §4.3's numeric-promotion rule.
func numberOperands(name string, args []ast.Expr, env *ast.Environment, depth int) (isFloat bool, i0, i1 int64, f0, f1 float64, evalErr *qerrors.EvalError) {
	if len(args) != 2 {
		evalErr = qerrors.NewEvalError(qerrors.CodeArityMismatch, "%s expects 2 arguments, got %d", name, len(args))
		return
	}
	a, err := eval.Eval(args[0], env, depth)
	if err != nil {
		evalErr = err
		return
	}
	b, err := eval.Eval(args[1], env, depth)
	if err != nil {
		evalErr = err
		return
	}
	af, aIsFloat, aOK := asNumber(a)
	bf, bIsFloat, bOK := asNumber(b)
	if !aOK || !bOK {
		evalErr = qerrors.NewEvalError(qerrors.CodeTypeMismatch, "%s requires numbers, got %s and %s", name, ast.TypeName(a), ast.TypeName(b))
		return
	}
	if aIsFloat || bIsFloat {
		isFloat = true
		f0, f1 = af, bf
		return
	}
	i0 = a.(*ast.Integer).Value
	i1 = b.(*ast.Integer).Value
	return
}

func asNumber(v ast.Expr) (value float64, isFloat bool, ok bool) {
	switch n := v.(type) {
	case *ast.Integer:
		return float64(n.Value), false, true
	case *ast.Float:
		return n.Value, true, true
	default:
		return 0, false, false
	}
}

func installArithmetic(env *ast.Environment) {
	define(env, "+", 2, "add two numbers", func(args []ast.Expr, env *ast.Environment, depth int) (ast.Expr, error) {
		isFloat, i0, i1, f0, f1, err := numberOperands("+", args, env, depth)
		if err != nil {
			return nil, err
		}
		if isFloat {
			return &ast.Float{Value: f0 + f1}, nil
		}
		return &ast.Integer{Value: i0 + i1}, nil
	})

	define(env, "-", 2, "subtract two numbers", func(args []ast.Expr, env *ast.Environment, depth int) (ast.Expr, error) {
		isFloat, i0, i1, f0, f1, err := numberOperands("-", args, env, depth)
		if err != nil {
			return nil, err
		}
		if isFloat {
			return &ast.Float{Value: f0 - f1}, nil
		}
		return &ast.Integer{Value: i0 - i1}, nil
	})

	define(env, "*", 2, "multiply two numbers", func(args []ast.Expr, env *ast.Environment, depth int) (ast.Expr, error) {
		isFloat, i0, i1, f0, f1, err := numberOperands("*", args, env, depth)
		if err != nil {
			return nil, err
		}
		if isFloat {
			return &ast.Float{Value: f0 * f1}, nil
		}
		return &ast.Integer{Value: i0 * i1}, nil
	})

	define(env, "/", 2, "divide two numbers", func(args []ast.Expr, env *ast.Environment, depth int) (ast.Expr, error) {
		isFloat, i0, i1, f0, f1, err := numberOperands("/", args, env, depth)
		if err != nil {
			return nil, err
		}
		if isFloat {
			if f1 == 0 {
				return nil, qerrors.NewEvalError(qerrors.CodeDivideByZero, "division by zero")
			}
			return &ast.Float{Value: f0 / f1}, nil
		}
		if i1 == 0 {
			return nil, qerrors.NewEvalError(qerrors.CodeDivideByZero, "division by zero")
		}
		return &ast.Integer{Value: i0 / i1}, nil
	})

	define(env, "%", 2, "remainder of two numbers", func(args []ast.Expr, env *ast.Environment, depth int) (ast.Expr, error) {
		isFloat, i0, i1, f0, f1, err := numberOperands("%", args, env, depth)
		if err != nil {
			return nil, err
		}
		if isFloat {
			if f1 == 0 {
				return nil, qerrors.NewEvalError(qerrors.CodeDivideByZero, "division by zero")
			}
			return &ast.Float{Value: math.Mod(f0, f1)}, nil
		}
		if i1 == 0 {
			return nil, qerrors.NewEvalError(qerrors.CodeDivideByZero, "division by zero")
		}
		return &ast.Integer{Value: i0 % i1}, nil
	})

	define(env, "neg", 1, "numeric negation", func(args []ast.Expr, env *ast.Environment, depth int) (ast.Expr, error) {
		if len(args) != 1 {
			return nil, qerrors.NewEvalError(qerrors.CodeArityMismatch, "neg expects 1 argument, got %d", len(args))
		}
		v, err := eval.Eval(args[0], env, depth)
		if err != nil {
			return nil, err
		}
		switch n := v.(type) {
		case *ast.Integer:
			return &ast.Integer{Value: -n.Value}, nil
		case *ast.Float:
			return &ast.Float{Value: -n.Value}, nil
		default:
			return nil, qerrors.NewEvalError(qerrors.CodeTypeMismatch, "neg requires a number, got %s", ast.TypeName(v))
		}
	})
}
