package token

import "testing"

func TestKeywordsCoverReservedWords(t *testing.T) {
	want := []string{
		"and", "class", "else", "false", "for", "fun", "if", "nil", "or",
		"print", "return", "super", "this", "true", "var", "while",
	}
	for _, w := range want {
		if _, ok := Keywords[w]; !ok {
			t.Errorf("Keywords missing entry for %q", w)
		}
	}
	if len(Keywords) != len(want) {
		t.Errorf("Keywords has %d entries, want %d", len(Keywords), len(want))
	}
}

func TestKindString(t *testing.T) {
	if got := Plus.String(); got != "Plus" {
		t.Errorf("Plus.String() = %q, want %q", got, "Plus")
	}
	if got := Eof.String(); got != "Eof" {
		t.Errorf("Eof.String() = %q, want %q", got, "Eof")
	}
}

func TestNewLiteralCarriesPayload(t *testing.T) {
	tok := NewLiteral(Number, "3.5", 3.5, 1)
	if tok.Kind != Number {
		t.Errorf("Kind = %v, want Number", tok.Kind)
	}
	if tok.Literal.(float64) != 3.5 {
		t.Errorf("Literal = %v, want 3.5", tok.Literal)
	}
	if tok.Lexeme != "3.5" {
		t.Errorf("Lexeme = %q, want %q", tok.Lexeme, "3.5")
	}
}
