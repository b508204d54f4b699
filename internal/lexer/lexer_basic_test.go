package lexer

import "testing"

func TestNextToken(t *testing.T) {
	input := `let x = 5;
	x = x + 10;
	`

	tests := []struct {
		expectedText string
		expectedKind Kind
	}{
		{"let", Keyword},
		{"x", Symbol},
		{"=", Operator},
		{"5", IntegerLiteral},
		{";", Punctuation},
		{"x", Symbol},
		{"=", Operator},
		{"x", Symbol},
		{"+", Operator},
		{"10", IntegerLiteral},
		{";", Punctuation},
		{"", EOF},
	}

	l := New(input)
	for i, tt := range tests {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("tests[%d] - unexpected error: %v", i, err)
		}
		if tok.Kind != tt.expectedKind {
			t.Fatalf("tests[%d] - kind wrong. expected=%s, got=%s", i, tt.expectedKind, tok.Kind)
		}
		if tok.Text(input) != tt.expectedText {
			t.Fatalf("tests[%d] - text wrong. expected=%q, got=%q", i, tt.expectedText, tok.Text(input))
		}
	}
}

func TestKeywordsAreNotSymbols(t *testing.T) {
	input := `let if then else for in while do return true false None`
	tests := []struct {
		text string
		kind Kind
	}{
		{"let", Keyword},
		{"if", Keyword},
		{"then", Keyword},
		{"else", Keyword},
		{"for", Keyword},
		{"in", Keyword},
		{"while", Keyword},
		{"do", Keyword},
		{"return", Keyword},
		{"true", BooleanLiteral},
		{"false", BooleanLiteral},
		{"None", NoneLiteral},
	}

	l := New(input)
	for i, tt := range tests {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("tests[%d] - unexpected error: %v", i, err)
		}
		if tok.Kind != tt.kind {
			t.Fatalf("tests[%d] (%s) - expected kind %s, got %s", i, tt.text, tt.kind, tok.Kind)
		}
		if tok.Text(input) != tt.text {
			t.Fatalf("tests[%d] - expected text %q, got %q", i, tt.text, tok.Text(input))
		}
	}
}

func TestIdentifiersRejectHyphen(t *testing.T) {
	// '-' is always an operator, never part of an identifier (spec §4.1).
	l := New("foo-bar")
	first, _ := l.NextToken()
	if first.Text("foo-bar") != "foo" {
		t.Fatalf("expected leading identifier 'foo', got %q", first.Text("foo-bar"))
	}
	second, _ := l.NextToken()
	if second.Kind != Operator || second.Text("foo-bar") != "-" {
		t.Fatalf("expected '-' operator, got kind=%s text=%q", second.Kind, second.Text("foo-bar"))
	}
}

func TestBangAllowedInIdentifierTail(t *testing.T) {
	l := New("reset! x")
	tok, _ := l.NextToken()
	if tok.Kind != Symbol || tok.Text("reset! x") != "reset!" {
		t.Fatalf("expected symbol 'reset!', got kind=%s text=%q", tok.Kind, tok.Text("reset! x"))
	}
}
