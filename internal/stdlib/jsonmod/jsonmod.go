// Package jsonmod is a host-registered standard module:
// jsonEncode/jsonDecode/jsonGet/jsonSet builtins backed by gjson/sjson instead
// of the stdlib encoding/json package.
package jsonmod

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/kestrel-lang/quill/internal/ast"
	qerrors "github.com/kestrel-lang/quill/internal/errors"
	"github.com/kestrel-lang/quill/internal/eval"
	"github.com/kestrel-lang/quill/internal/lexer"
)

// Install registers the module's builtins under their unqualified names
// (jsonEncode, jsonDecode, jsonGet, jsonSet). cmd/quill only wires this
// module in when the --modules flag or .quillrc.yaml names it.
func Install(env *ast.Environment) {
	define(env, "jsonEncode", "serialize a value to a JSON string", jsonEncode)
	define(env, "jsonDecode", "parse a JSON string into a value", jsonDecode)
	define(env, "jsonGet", "read a dotted path out of a JSON string", jsonGet)
	define(env, "jsonSet", "return a JSON string with a dotted path replaced", jsonSet)
}

func define(env *ast.Environment, name, help string, fn ast.BuiltinFunc) {
	env.Define(name, &ast.Builtin{Name: name, Fn: fn, Help: help, Arity: -1})
}

func jsonEncode(args []ast.Expr, env *ast.Environment, depth int) (ast.Expr, error) {
	if len(args) != 1 {
		return nil, qerrors.NewEvalError(qerrors.CodeArityMismatch, "jsonEncode expects 1 argument, got %d", len(args))
	}
	v, err := eval.Eval(args[0], env, depth)
	if err != nil {
		return nil, err
	}
	text, encErr := encode(v)
	if encErr != nil {
		return nil, qerrors.NewEvalError(qerrors.CodeCustomError, "jsonEncode: %s", encErr)
	}
	return &ast.String{Value: text}, nil
}

func jsonDecode(args []ast.Expr, env *ast.Environment, depth int) (ast.Expr, error) {
	if len(args) != 1 {
		return nil, qerrors.NewEvalError(qerrors.CodeArityMismatch, "jsonDecode expects 1 argument, got %d", len(args))
	}
	v, err := eval.Eval(args[0], env, depth)
	if err != nil {
		return nil, err
	}
	s, ok := v.(*ast.String)
	if !ok {
		return nil, qerrors.NewEvalError(qerrors.CodeTypeMismatch, "jsonDecode expects a string, got %s", ast.TypeName(v))
	}
	if !gjson.Valid(s.Value) {
		return nil, qerrors.NewEvalError(qerrors.CodeCustomError, "jsonDecode: malformed JSON")
	}
	return decode(gjson.Parse(s.Value)), nil
}

func jsonGet(args []ast.Expr, env *ast.Environment, depth int) (ast.Expr, error) {
	if len(args) != 2 {
		return nil, qerrors.NewEvalError(qerrors.CodeArityMismatch, "jsonGet expects 2 arguments, got %d", len(args))
	}
	doc, path, err := stringArgs("jsonGet", args, env, depth)
	if err != nil {
		return nil, err
	}
	result := gjson.Get(doc, path)
	if !result.Exists() {
		return nil, qerrors.NewEvalError(qerrors.CodeIndexError, "jsonGet: no value at path %q", path)
	}
	return decode(result), nil
}

func jsonSet(args []ast.Expr, env *ast.Environment, depth int) (ast.Expr, error) {
	if len(args) != 3 {
		return nil, qerrors.NewEvalError(qerrors.CodeArityMismatch, "jsonSet expects 3 arguments, got %d", len(args))
	}
	doc, path, err := stringArgs("jsonSet", args[:2], env, depth)
	if err != nil {
		return nil, err
	}
	value, everr := eval.Eval(args[2], env, depth)
	if everr != nil {
		return nil, everr
	}
	raw, decErr := toRaw(value)
	if decErr != nil {
		return nil, qerrors.NewEvalError(qerrors.CodeCustomError, "jsonSet: %s", decErr)
	}
	updated, sjErr := sjson.SetRaw(doc, path, raw)
	if sjErr != nil {
		return nil, qerrors.NewEvalError(qerrors.CodeCustomError, "jsonSet: %s", sjErr)
	}
	return &ast.String{Value: updated}, nil
}

func stringArgs(name string, args []ast.Expr, env *ast.Environment, depth int) (string, string, *qerrors.EvalError) {
	docV, err := eval.Eval(args[0], env, depth)
	if err != nil {
		return "", "", err
	}
	pathV, err := eval.Eval(args[1], env, depth)
	if err != nil {
		return "", "", err
	}
	doc, ok := docV.(*ast.String)
	if !ok {
		return "", "", qerrors.NewEvalError(qerrors.CodeTypeMismatch, "%s expects a JSON string, got %s", name, ast.TypeName(docV))
	}
	path, ok := pathV.(*ast.String)
	if !ok {
		return "", "", qerrors.NewEvalError(qerrors.CodeTypeMismatch, "%s expects a string path, got %s", name, ast.TypeName(pathV))
	}
	return doc.Value, path.Value, nil
}

// decode converts a gjson.Result to a Quill value. A JSON number with no
// fraction or exponent round-trips as ast.Integer; otherwise ast.Float —
// the chosen resolution of the integer-round-tripping question.
func decode(r gjson.Result) ast.Expr {
	switch r.Type {
	case gjson.Null:
		return &ast.None{}
	case gjson.False:
		return &ast.Boolean{Value: false}
	case gjson.True:
		return &ast.Boolean{Value: true}
	case gjson.String:
		return &ast.String{Value: r.String()}
	case gjson.Number:
		raw := r.Raw
		if !strings.ContainsAny(raw, ".eE") {
			if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
				return &ast.Integer{Value: n}
			}
		}
		return &ast.Float{Value: r.Float()}
	case gjson.JSON:
		if r.IsArray() {
			var elems []ast.Expr
			r.ForEach(func(_, v gjson.Result) bool {
				elems = append(elems, decode(v))
				return true
			})
			return &ast.List{Elements: elems}
		}
		m := ast.NewMap(lexer.Position{})
		r.ForEach(func(k, v gjson.Result) bool {
			m.Values[k.String()] = decode(v)
			return true
		})
		return m
	default:
		return &ast.None{}
	}
}

// encode is the inverse of decode, producing a JSON document text.
func encode(v ast.Expr) (string, error) {
	switch e := v.(type) {
	case *ast.None:
		return "null", nil
	case *ast.Boolean:
		return strconv.FormatBool(e.Value), nil
	case *ast.Integer:
		return strconv.FormatInt(e.Value, 10), nil
	case *ast.Float:
		return strconv.FormatFloat(e.Value, 'g', -1, 64), nil
	case *ast.String:
		out, serr := sjson.Set("", "v", e.Value)
		if serr != nil {
			return "", serr
		}
		return gjson.Get(out, "v").Raw, nil
	case *ast.List:
		parts := make([]string, len(e.Elements))
		for i, el := range e.Elements {
			s, err := encode(el)
			if err != nil {
				return "", err
			}
			parts[i] = s
		}
		return "[" + strings.Join(parts, ",") + "]", nil
	case *ast.Map:
		keys := e.SortedKeys()
		parts := make([]string, len(keys))
		for i, k := range keys {
			s, err := encode(e.Values[k])
			if err != nil {
				return "", err
			}
			keyJSON, err := encode(&ast.String{Value: k})
			if err != nil {
				return "", err
			}
			parts[i] = keyJSON + ":" + s
		}
		return "{" + strings.Join(parts, ",") + "}", nil
	default:
		return "", fmt.Errorf("cannot encode %s as JSON", ast.TypeName(v))
	}
}

func toRaw(v ast.Expr) (string, error) {
	return encode(v)
}
