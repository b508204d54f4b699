package eval

import (
	"github.com/kestrel-lang/quill/internal/ast"
	qerrors "github.com/kestrel-lang/quill/internal/errors"
	"github.com/kestrel-lang/quill/internal/lexer"
)

// indexGet implements spec §4.3 Index: lists take an integer (negative
// counts from the end), maps take a string key, strings return a
// one-character string; anything else is a TypeMismatch.
func indexGet(container, key ast.Expr, pos lexer.Position) (ast.Expr, *qerrors.EvalError) {
	switch c := container.(type) {
	case *ast.List:
		i, ok := key.(*ast.Integer)
		if !ok {
			return nil, qerrors.NewEvalError(qerrors.CodeTypeMismatch, "list index must be an integer, got %s", ast.TypeName(key)).At(pos)
		}
		idx, err := resolveIndex(i.Value, len(c.Elements), pos)
		if err != nil {
			return nil, err
		}
		return c.Elements[idx], nil

	case *ast.Map:
		k, ok := key.(*ast.String)
		if !ok {
			return nil, qerrors.NewEvalError(qerrors.CodeTypeMismatch, "map key must be a string, got %s", ast.TypeName(key)).At(pos)
		}
		v, ok := c.Values[k.Value]
		if !ok {
			return nil, qerrors.NewEvalError(qerrors.CodeIndexError, "missing key %q", k.Value).At(pos)
		}
		return v, nil

	case *ast.String:
		i, ok := key.(*ast.Integer)
		if !ok {
			return nil, qerrors.NewEvalError(qerrors.CodeTypeMismatch, "string index must be an integer, got %s", ast.TypeName(key)).At(pos)
		}
		runes := []rune(c.Value)
		idx, err := resolveIndex(i.Value, len(runes), pos)
		if err != nil {
			return nil, err
		}
		return &ast.String{Value: string(runes[idx])}, nil

	default:
		return nil, qerrors.NewEvalError(qerrors.CodeTypeMismatch, "%s is not indexable", ast.TypeName(container)).At(pos)
	}
}

// indexSet implements the assignable half of Index (spec §4.3 Assign):
// lists and maps are mutated in place; strings are immutable.
func indexSet(container, key, value ast.Expr, pos lexer.Position) *qerrors.EvalError {
	switch c := container.(type) {
	case *ast.List:
		i, ok := key.(*ast.Integer)
		if !ok {
			return qerrors.NewEvalError(qerrors.CodeTypeMismatch, "list index must be an integer, got %s", ast.TypeName(key)).At(pos)
		}
		idx, err := resolveIndex(i.Value, len(c.Elements), pos)
		if err != nil {
			return err
		}
		c.Elements[idx] = value
		return nil

	case *ast.Map:
		k, ok := key.(*ast.String)
		if !ok {
			return qerrors.NewEvalError(qerrors.CodeTypeMismatch, "map key must be a string, got %s", ast.TypeName(key)).At(pos)
		}
		c.Values[k.Value] = value
		return nil

	case *ast.String:
		return qerrors.NewEvalError(qerrors.CodeTypeMismatch, "strings are immutable").At(pos)

	default:
		return qerrors.NewEvalError(qerrors.CodeTypeMismatch, "%s is not indexable", ast.TypeName(container)).At(pos)
	}
}

func resolveIndex(i int64, length int, pos lexer.Position) (int, *qerrors.EvalError) {
	idx := int(i)
	if idx < 0 {
		idx += length
	}
	if idx < 0 || idx >= length {
		return 0, qerrors.NewEvalError(qerrors.CodeIndexError, "index %d out of bounds (length %d)", i, length).At(pos)
	}
	return idx, nil
}
