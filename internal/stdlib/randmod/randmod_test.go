package randmod_test

import (
	"testing"

	"github.com/kestrel-lang/quill/internal/ast"
	"github.com/kestrel-lang/quill/internal/builtins"
	"github.com/kestrel-lang/quill/internal/eval"
	"github.com/kestrel-lang/quill/internal/parser"
	"github.com/kestrel-lang/quill/internal/stdlib/randmod"
)

func run(t *testing.T, src string) ast.Expr {
	t.Helper()
	expr, perr := parser.ParseScript(src)
	if perr != nil {
		t.Fatalf("%q: parse error: %v", src, perr)
	}
	root := ast.NewRoot()
	builtins.InstallPrelude(root)
	randmod.Install(root)
	v, everr := eval.Eval(expr, root, 0)
	if everr != nil {
		t.Fatalf("%q: eval error: %v", src, everr)
	}
	return v
}

func TestRandomIsWithinUnitInterval(t *testing.T) {
	for i := 0; i < 20; i++ {
		v := run(t, "random()")
		f, ok := v.(*ast.Float)
		if !ok || f.Value < 0 || f.Value >= 1 {
			t.Fatalf("random() = %#v, want a Float in [0, 1)", v)
		}
	}
}

func TestRandomIntIsWithinBound(t *testing.T) {
	for i := 0; i < 20; i++ {
		v := run(t, "randomInt 10")
		n, ok := v.(*ast.Integer)
		if !ok || n.Value < 0 || n.Value >= 10 {
			t.Fatalf("randomInt 10 = %#v, want an Integer in [0, 10)", v)
		}
	}
}

func TestRandomIntRejectsNonPositiveBound(t *testing.T) {
	expr, perr := parser.ParseScript("randomInt 0")
	if perr != nil {
		t.Fatalf("unexpected parse error: %v", perr)
	}
	root := ast.NewRoot()
	builtins.InstallPrelude(root)
	randmod.Install(root)
	_, everr := eval.Eval(expr, root, 0)
	if everr == nil {
		t.Fatal("expected an error for a non-positive bound")
	}
}
