package builtins_test

import (
	"testing"

	"github.com/kestrel-lang/quill/internal/ast"
	"github.com/kestrel-lang/quill/internal/builtins"
	"github.com/kestrel-lang/quill/internal/eval"
	"github.com/kestrel-lang/quill/internal/parser"
)

func run(t *testing.T, src string) ast.Expr {
	t.Helper()
	expr, perr := parser.ParseScript(src)
	if perr != nil {
		t.Fatalf("%q: parse error: %v", src, perr)
	}
	root := ast.NewRoot()
	builtins.InstallPrelude(root)
	v, everr := eval.Eval(expr, root, 0)
	if everr != nil {
		t.Fatalf("%q: eval error: %v", src, everr)
	}
	return v
}

func TestArithmeticOperators(t *testing.T) {
	cases := []struct {
		src  string
		want int64
	}{
		{"2 + 3", 5},
		{"2 - 3", -1},
		{"2 * 3", 6},
		{"7 / 2", 3},
		{"7 % 2", 1},
		{"neg 5", -5},
	}
	for _, c := range cases {
		v := run(t, c.src)
		i, ok := v.(*ast.Integer)
		if !ok || i.Value != c.want {
			t.Fatalf("%q: expected Integer %d, got %#v", c.src, c.want, v)
		}
	}
}

func TestArithmeticFloatPromotion(t *testing.T) {
	v := run(t, "1 + 2.5")
	f, ok := v.(*ast.Float)
	if !ok || f.Value != 3.5 {
		t.Fatalf("expected Float 3.5, got %#v", v)
	}
}

func TestDivideByZeroIsEvalError(t *testing.T) {
	expr, perr := parser.ParseScript("1 / 0")
	if perr != nil {
		t.Fatalf("unexpected parse error: %v", perr)
	}
	root := ast.NewRoot()
	builtins.InstallPrelude(root)
	_, everr := eval.Eval(expr, root, 0)
	if everr == nil {
		t.Fatal("expected a DivideByZero error")
	}
	if everr.Code() != 6 {
		t.Fatalf("expected code 6, got %d", everr.Code())
	}
}

func TestComparisonOperators(t *testing.T) {
	cases := []struct {
		src  string
		want bool
	}{
		{"1 == 1", true},
		{"1 != 2", true},
		{"1 < 2", true},
		{"2 <= 2", true},
		{"3 > 2", true},
		{"2 >= 3", false},
		{`"a" == "a"`, true},
		{"[1,2] == [1,2]", true},
	}
	for _, c := range cases {
		v := run(t, c.src)
		b, ok := v.(*ast.Boolean)
		if !ok || b.Value != c.want {
			t.Fatalf("%q: expected Boolean %v, got %#v", c.src, c.want, v)
		}
	}
}

func TestLogicShortCircuitsAndAvoidsEvaluatingRHS(t *testing.T) {
	// The right-hand side would raise DivideByZero if it were ever
	// evaluated; short-circuiting must prevent that.
	v := run(t, "false && (1/0 == 0)")
	b, ok := v.(*ast.Boolean)
	if !ok || b.Value != false {
		t.Fatalf("expected Boolean false, got %#v", v)
	}
	v = run(t, "true || (1/0 == 0)")
	b, ok = v.(*ast.Boolean)
	if !ok || b.Value != true {
		t.Fatalf("expected Boolean true, got %#v", v)
	}
}

func TestNot(t *testing.T) {
	v := run(t, "not false")
	b, ok := v.(*ast.Boolean)
	if !ok || !b.Value {
		t.Fatalf("expected Boolean true, got %#v", v)
	}
}

func TestQuoteReturnsUnevaluatedSyntax(t *testing.T) {
	v := run(t, "quote (1 + 2)")
	q, ok := v.(*ast.Quote)
	if !ok {
		t.Fatalf("expected a Quote, got %#v", v)
	}
	if _, ok := q.Wrapped.(*ast.Apply); !ok {
		t.Fatalf("expected the wrapped syntax to still be an unevaluated Apply, got %#v", q.Wrapped)
	}
}

func TestEvalRunsAQuotedExpression(t *testing.T) {
	v := run(t, "eval(quote (1 + 2))")
	i, ok := v.(*ast.Integer)
	if !ok || i.Value != 3 {
		t.Fatalf("expected Integer 3, got %#v", v)
	}
}

func TestTryReturnsValueOnSuccessWithoutCallingHandler(t *testing.T) {
	v := run(t, "try (1 + 1) (e -> -1)")
	i, ok := v.(*ast.Integer)
	if !ok || i.Value != 2 {
		t.Fatalf("expected Integer 2 (the try'd value, handler unused), got %#v", v)
	}
}

func TestTryExposesMessageAndQuotedExpression(t *testing.T) {
	v := run(t, `try (1/0) (e -> e.message)`)
	s, ok := v.(*ast.String)
	if !ok || s.Value == "" {
		t.Fatalf("expected a non-empty error message string, got %#v", v)
	}

	v = run(t, `try (1/0) (e -> e.expression)`)
	if _, ok := v.(*ast.Quote); !ok {
		t.Fatalf("expected try's handler to receive the quoted failing expression, got %#v", v)
	}
}

func TestTryCommaCallFormIsEquivalentToJuxtaposed(t *testing.T) {
	v := run(t, "try(1/0, e -> e.code)")
	i, ok := v.(*ast.Integer)
	if !ok || i.Value != 6 {
		t.Fatalf("expected Integer 6, got %#v", v)
	}
}

func TestCodesReturnsAMapOfStableCodes(t *testing.T) {
	v := run(t, "codes()")
	m, ok := v.(*ast.Map)
	if !ok {
		t.Fatalf("expected a Map, got %#v", v)
	}
	if _, ok := m.Values["DivideByZero"]; !ok {
		t.Fatalf("expected codes() to include DivideByZero, got %v", m.SortedKeys())
	}
}
