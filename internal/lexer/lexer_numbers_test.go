package lexer

import "testing"

func TestNumberLiterals(t *testing.T) {
	tests := []struct {
		input string
		kind  Kind
	}{
		{"123", IntegerLiteral},
		{"0", IntegerLiteral},
		{"0xFF", IntegerLiteral},
		{"0xff", IntegerLiteral},
		{"0b1010", IntegerLiteral},
		{"123.45", FloatLiteral},
		{"1.5e10", FloatLiteral},
		{"1.5e+10", FloatLiteral},
		{"1.5e-10", FloatLiteral},
		{"1e5", IntegerLiteral}, // no '.', no fractional part required by grammar -> stays an int token; 'e5' trailing handled below
	}

	for i, tt := range tests {
		l := New(tt.input)
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("tests[%d] %q - unexpected error: %v", i, tt.input, err)
		}
		// "1e5" is a special case: grammar requires a '.' before the exponent
		// marker for a literal to be float-shaped, so the lexer stops at '1'
		// and 'e5' tokenizes separately as a trailing identifier.
		if tt.input == "1e5" {
			if tok.Kind != IntegerLiteral || tok.Text(tt.input) != "1" {
				t.Fatalf("tests[%d] - expected leading integer '1', got kind=%s text=%q", i, tok.Kind, tok.Text(tt.input))
			}
			continue
		}
		if tok.Kind != tt.kind {
			t.Fatalf("tests[%d] %q - expected kind %s, got %s", i, tt.input, tt.kind, tok.Kind)
		}
		if tok.Text(tt.input) != tt.input {
			t.Fatalf("tests[%d] %q - expected full literal consumed, got %q", i, tt.input, tok.Text(tt.input))
		}
	}
}

func TestMinusIsNeverPartOfNumberLiteral(t *testing.T) {
	l := New("-5")
	tok, _ := l.NextToken()
	if tok.Kind != Operator || tok.Text("-5") != "-" {
		t.Fatalf("expected leading '-' operator, got kind=%s text=%q", tok.Kind, tok.Text("-5"))
	}
	tok2, _ := l.NextToken()
	if tok2.Kind != IntegerLiteral || tok2.Text("-5") != "5" {
		t.Fatalf("expected integer '5', got kind=%s text=%q", tok2.Kind, tok2.Text("-5"))
	}
}

func TestMalformedHexNumberIsSyntaxError(t *testing.T) {
	l := New("0x")
	_, err := l.NextToken()
	if err == nil {
		t.Fatal("expected a SyntaxError for '0x' with no digits")
	}
}

func TestMalformedBinaryNumberIsSyntaxError(t *testing.T) {
	l := New("0b")
	_, err := l.NextToken()
	if err == nil {
		t.Fatal("expected a SyntaxError for '0b' with no digits")
	}
}
