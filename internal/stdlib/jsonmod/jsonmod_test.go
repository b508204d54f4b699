package jsonmod_test

import (
	"testing"

	"github.com/kestrel-lang/quill/internal/ast"
	"github.com/kestrel-lang/quill/internal/builtins"
	"github.com/kestrel-lang/quill/internal/eval"
	"github.com/kestrel-lang/quill/internal/parser"
	"github.com/kestrel-lang/quill/internal/stdlib/jsonmod"
)

func run(t *testing.T, src string) ast.Expr {
	t.Helper()
	expr, perr := parser.ParseScript(src)
	if perr != nil {
		t.Fatalf("%q: parse error: %v", src, perr)
	}
	root := ast.NewRoot()
	builtins.InstallPrelude(root)
	jsonmod.Install(root)
	v, everr := eval.Eval(expr, root, 0)
	if everr != nil {
		t.Fatalf("%q: eval error: %v", src, everr)
	}
	return v
}

func TestDecodeIntegerRoundTrip(t *testing.T) {
	v := run(t, `jsonDecode("42")`)
	i, ok := v.(*ast.Integer)
	if !ok || i.Value != 42 {
		t.Fatalf("expected Integer 42, got %#v", v)
	}
}

func TestDecodeFloatRoundTrip(t *testing.T) {
	v := run(t, `jsonDecode("4.2")`)
	f, ok := v.(*ast.Float)
	if !ok || f.Value != 4.2 {
		t.Fatalf("expected Float 4.2, got %#v", v)
	}
}

func TestDecodeExponentNotationIsFloat(t *testing.T) {
	v := run(t, `jsonDecode("1e3")`)
	if _, ok := v.(*ast.Float); !ok {
		t.Fatalf("expected Float for exponent notation, got %#v", v)
	}
}

func TestDecodeObjectAndArray(t *testing.T) {
	v := run(t, `jsonDecode("{\"a\": [1, 2], \"b\": true}")`)
	m, ok := v.(*ast.Map)
	if !ok {
		t.Fatalf("expected a Map, got %#v", v)
	}
	list, ok := m.Values["a"].(*ast.List)
	if !ok || len(list.Elements) != 2 {
		t.Fatalf("expected a.= [1, 2], got %#v", m.Values["a"])
	}
	b, ok := m.Values["b"].(*ast.Boolean)
	if !ok || !b.Value {
		t.Fatalf("expected b = true, got %#v", m.Values["b"])
	}
}

func TestEncodeRoundTripsThroughDecode(t *testing.T) {
	v := run(t, `jsonDecode(jsonEncode({name: "ann", tags: [1, 2, 3]}))`)
	m, ok := v.(*ast.Map)
	if !ok {
		t.Fatalf("expected a Map, got %#v", v)
	}
	name, ok := m.Values["name"].(*ast.String)
	if !ok || name.Value != "ann" {
		t.Fatalf("expected name = \"ann\", got %#v", m.Values["name"])
	}
}

func TestJSONGet(t *testing.T) {
	v := run(t, `jsonGet("{\"a\": {\"b\": 7}}", "a.b")`)
	i, ok := v.(*ast.Integer)
	if !ok || i.Value != 7 {
		t.Fatalf("expected Integer 7, got %#v", v)
	}
}

func TestJSONGetMissingPathIsIndexError(t *testing.T) {
	expr, perr := parser.ParseScript(`jsonGet("{\"a\": 1}", "missing")`)
	if perr != nil {
		t.Fatalf("unexpected parse error: %v", perr)
	}
	root := ast.NewRoot()
	builtins.InstallPrelude(root)
	jsonmod.Install(root)
	_, everr := eval.Eval(expr, root, 0)
	if everr == nil {
		t.Fatal("expected an IndexError for a missing path")
	}
}

func TestJSONSet(t *testing.T) {
	v := run(t, `jsonGet(jsonSet("{\"a\": 1}", "a", 9), "a")`)
	i, ok := v.(*ast.Integer)
	if !ok || i.Value != 9 {
		t.Fatalf("expected Integer 9, got %#v", v)
	}
}
