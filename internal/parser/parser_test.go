package parser

import (
	"testing"

	"github.com/kestrel-lang/quill/internal/ast"
)

func mustParse(t *testing.T, src string) ast.Expr {
	t.Helper()
	e, err := ParseExpression(src)
	if err != nil {
		t.Fatalf("%q: unexpected parse error: %v", src, err)
	}
	return e
}

func TestArithmeticPrecedence(t *testing.T) {
	e := mustParse(t, "1 + 2 * 3")
	apply, ok := e.(*ast.Apply)
	if !ok {
		t.Fatalf("expected top-level Apply, got %T", e)
	}
	callee, ok := apply.Callee.(*ast.Symbol)
	if !ok || callee.Name != "+" {
		t.Fatalf("expected '+' at the top, got %v", apply.Callee)
	}
	rhs, ok := apply.Args[1].(*ast.Apply)
	if !ok {
		t.Fatalf("expected the '*' subexpression nested on the right, got %T", apply.Args[1])
	}
	if sym, ok := rhs.Callee.(*ast.Symbol); !ok || sym.Name != "*" {
		t.Fatalf("expected nested '*' callee, got %v", rhs.Callee)
	}
}

func TestCurriedLambdaApplication(t *testing.T) {
	e := mustParse(t, "f x y")
	outer, ok := e.(*ast.Apply)
	if !ok || len(outer.Args) != 1 {
		t.Fatalf("expected outer single-arg Apply, got %#v", e)
	}
	inner, ok := outer.Callee.(*ast.Apply)
	if !ok || len(inner.Args) != 1 {
		t.Fatalf("expected inner single-arg Apply, got %#v", outer.Callee)
	}
	if sym, ok := inner.Callee.(*ast.Symbol); !ok || sym.Name != "f" {
		t.Fatalf("expected innermost callee 'f', got %v", inner.Callee)
	}
}

func TestPipelineLeftAssociative(t *testing.T) {
	// Bare symbols before '~>' parse as macros (see
	// TestMacroVsPipeDisambiguation), so the first two stages are
	// parenthesized.
	e := mustParse(t, "(a) ~> (b) ~> c")
	outer, ok := e.(*ast.Apply)
	if !ok {
		t.Fatalf("expected Apply, got %T", e)
	}
	if sym, ok := outer.Callee.(*ast.Symbol); !ok || sym.Name != "c" {
		t.Fatalf("expected outermost callee 'c', got %v", outer.Callee)
	}
	inner, ok := outer.Args[0].(*ast.Apply)
	if !ok {
		t.Fatalf("expected nested Apply, got %T", outer.Args[0])
	}
	if sym, ok := inner.Callee.(*ast.Symbol); !ok || sym.Name != "b" {
		t.Fatalf("expected inner callee 'b', got %v", inner.Callee)
	}
}

func TestMacroVsPipeDisambiguation(t *testing.T) {
	e := mustParse(t, "x ~> x + 1")
	m, ok := e.(*ast.Macro)
	if !ok {
		t.Fatalf("expected a Macro literal for a leading bare symbol before '~>', got %T", e)
	}
	if m.Param != "x" {
		t.Fatalf("expected macro parameter 'x', got %q", m.Param)
	}
}

func TestLambdaChainedArrowsRightAssociative(t *testing.T) {
	e := mustParse(t, "a -> b -> a + b")
	outer, ok := e.(*ast.Lambda)
	if !ok || outer.Param != "a" {
		t.Fatalf("expected Lambda(a, ...), got %#v", e)
	}
	inner, ok := outer.Body.(*ast.Lambda)
	if !ok || inner.Param != "b" {
		t.Fatalf("expected nested Lambda(b, ...), got %#v", outer.Body)
	}
}

func TestListLiteral(t *testing.T) {
	e := mustParse(t, "[1, 2, 3]")
	l, ok := e.(*ast.List)
	if !ok || len(l.Elements) != 3 {
		t.Fatalf("expected a 3-element list, got %#v", e)
	}
}

func TestMapVsBlockDisambiguation(t *testing.T) {
	mapExpr := mustParse(t, "{b: 2, a: 1}")
	if _, ok := mapExpr.(*ast.Map); !ok {
		t.Fatalf("expected Map, got %T", mapExpr)
	}

	blockExpr := mustParse(t, "{ 1; 2 }")
	if _, ok := blockExpr.(*ast.Do); !ok {
		t.Fatalf("expected Do block, got %T", blockExpr)
	}

	empty := mustParse(t, "{}")
	if _, ok := empty.(*ast.Map); !ok {
		t.Fatalf("expected empty {} to parse as a Map, got %T", empty)
	}
}

func TestIndexAndDotSugar(t *testing.T) {
	idx := mustParse(t, "xs[1]")
	if _, ok := idx.(*ast.Index); !ok {
		t.Fatalf("expected Index, got %T", idx)
	}
	dot := mustParse(t, "point.x")
	ix, ok := dot.(*ast.Index)
	if !ok {
		t.Fatalf("expected '.' sugar to desugar to Index, got %T", dot)
	}
	if s, ok := ix.Key.(*ast.String); !ok || s.Value != "x" {
		t.Fatalf("expected string key \"x\", got %#v", ix.Key)
	}
}

func TestIfWithAndWithoutElse(t *testing.T) {
	withElse := mustParse(t, "if true then 1 else 0")
	iff, ok := withElse.(*ast.If)
	if !ok || iff.Else == nil {
		t.Fatalf("expected If with Else, got %#v", withElse)
	}
	noElse := mustParse(t, "if true then 1")
	iff2, ok := noElse.(*ast.If)
	if !ok || iff2.Else != nil {
		t.Fatalf("expected If without Else, got %#v", noElse)
	}
}

func TestQuoteShorthand(t *testing.T) {
	e := mustParse(t, "'x")
	q, ok := e.(*ast.Quote)
	if !ok {
		t.Fatalf("expected Quote, got %T", e)
	}
	if sym, ok := q.Wrapped.(*ast.Symbol); !ok || sym.Name != "x" {
		t.Fatalf("expected quoted symbol x, got %#v", q.Wrapped)
	}
}

func TestDestructuringLetPatterns(t *testing.T) {
	e, err := ParseScript("let [a, b] = pair")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	do := e.(*ast.Do)
	decl, ok := do.Exprs[0].(*ast.Declare)
	if !ok {
		t.Fatalf("expected Declare, got %T", do.Exprs[0])
	}
	if _, ok := decl.Target.(*ast.List); !ok {
		t.Fatalf("expected List pattern target, got %#v", decl.Target)
	}
}

func TestParseExpressionRejectsTrailingTokens(t *testing.T) {
	_, err := ParseExpression("1 2 3 )")
	if err == nil {
		t.Fatal("expected a SyntaxError for unbalanced trailing tokens")
	}
}

func TestScriptSeparatesStatementsWithSemicolons(t *testing.T) {
	e, err := ParseScript("let x = 1; let y = 2; x + y")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	do := e.(*ast.Do)
	if len(do.Exprs) != 3 {
		t.Fatalf("expected 3 top-level statements, got %d", len(do.Exprs))
	}
}
