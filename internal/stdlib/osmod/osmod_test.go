package osmod_test

import (
	"os"
	"testing"

	"github.com/kestrel-lang/quill/internal/ast"
	"github.com/kestrel-lang/quill/internal/builtins"
	"github.com/kestrel-lang/quill/internal/eval"
	"github.com/kestrel-lang/quill/internal/parser"
	"github.com/kestrel-lang/quill/internal/stdlib/osmod"
)

func run(t *testing.T, src string) ast.Expr {
	t.Helper()
	expr, perr := parser.ParseScript(src)
	if perr != nil {
		t.Fatalf("%q: parse error: %v", src, perr)
	}
	root := ast.NewRoot()
	builtins.InstallPrelude(root)
	osmod.Install(root)
	v, everr := eval.Eval(expr, root, 0)
	if everr != nil {
		t.Fatalf("%q: eval error: %v", src, everr)
	}
	return v
}

func TestGetEnvReadsAProcessVariable(t *testing.T) {
	t.Setenv("QUILL_TEST_VAR", "hatter")
	v := run(t, `getEnv("QUILL_TEST_VAR")`)
	s, ok := v.(*ast.String)
	if !ok || s.Value != "hatter" {
		t.Fatalf("expected String \"hatter\", got %#v", v)
	}
}

func TestGetEnvUnsetReturnsEmptyString(t *testing.T) {
	os.Unsetenv("QUILL_TEST_VAR_UNSET")
	v := run(t, `getEnv("QUILL_TEST_VAR_UNSET")`)
	s, ok := v.(*ast.String)
	if !ok || s.Value != "" {
		t.Fatalf("expected empty String, got %#v", v)
	}
}

func TestArgsReturnsAListOfStrings(t *testing.T) {
	v := run(t, "args()")
	list, ok := v.(*ast.List)
	if !ok || len(list.Elements) == 0 {
		t.Fatalf("expected a non-empty List, got %#v", v)
	}
	if _, ok := list.Elements[0].(*ast.String); !ok {
		t.Fatalf("expected the first argument to be a String, got %#v", list.Elements[0])
	}
}
