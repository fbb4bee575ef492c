package lexer

import (
	"testing"

	"nilan/token"
)

func scanAll(t *testing.T, source string) []token.Token {
	t.Helper()
	l := New(source)
	var toks []token.Token
	for {
		tok, err := l.ScanToken()
		if err != nil {
			t.Fatalf("unexpected scan error: %v", err)
		}
		toks = append(toks, tok)
		if tok.Kind == token.Eof {
			return toks
		}
	}
}

func TestScanPunctuationAndOperators(t *testing.T) {
	toks := scanAll(t, "(){};,.+-*/! != = == < <= > >=")
	want := []token.Kind{
		token.LeftParen, token.RightParen, token.LeftBrace, token.RightBrace,
		token.Semicolon, token.Comma, token.Dot, token.Plus, token.Minus,
		token.Star, token.Slash, token.Bang, token.BangEqual, token.Equal,
		token.EqualEqual, token.Less, token.LessEqual, token.Greater,
		token.GreaterEqual, token.Eof,
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: kind = %v, want %v", i, toks[i].Kind, k)
		}
	}
}

func TestScanStringLiteral(t *testing.T) {
	toks := scanAll(t, `"hello world"`)
	if toks[0].Kind != token.String {
		t.Fatalf("Kind = %v, want String", toks[0].Kind)
	}
	if toks[0].Literal.(string) != "hello world" {
		t.Errorf("Literal = %q, want %q", toks[0].Literal, "hello world")
	}
}

func TestScanUnterminatedString(t *testing.T) {
	l := New(`"unterminated`)
	_, err := l.ScanToken()
	if _, ok := err.(UnexpectedEofError); !ok {
		t.Fatalf("err = %v (%T), want UnexpectedEofError", err, err)
	}
}

func TestScanNumberLiterals(t *testing.T) {
	toks := scanAll(t, "123 3.14")
	if toks[0].Literal.(float64) != 123 {
		t.Errorf("toks[0].Literal = %v, want 123", toks[0].Literal)
	}
	if toks[1].Literal.(float64) != 3.14 {
		t.Errorf("toks[1].Literal = %v, want 3.14", toks[1].Literal)
	}
}

func TestScanKeywordsAndIdentifiers(t *testing.T) {
	toks := scanAll(t, "var x = nil print true false")
	want := []token.Kind{
		token.Var, token.Identifier, token.Equal, token.Nil, token.Print,
		token.True, token.False, token.Eof,
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: kind = %v, want %v", i, toks[i].Kind, k)
		}
	}
}

func TestScanSkipsLineCommentsAndTracksLines(t *testing.T) {
	toks := scanAll(t, "1; // a comment\n2;")
	if toks[0].Line != 1 {
		t.Errorf("first token line = %d, want 1", toks[0].Line)
	}
	// toks: Number(1) Semicolon Number(2) Semicolon Eof
	if toks[2].Line != 2 {
		t.Errorf("second number's line = %d, want 2", toks[2].Line)
	}
}

func TestScanUnsupportedChar(t *testing.T) {
	l := New("@")
	_, err := l.ScanToken()
	uc, ok := err.(UnsupportedCharError)
	if !ok {
		t.Fatalf("err = %v (%T), want UnsupportedCharError", err, err)
	}
	if uc.Char != '@' || uc.Line != 1 {
		t.Errorf("uc = %+v, want Char='@' Line=1", uc)
	}
}

func TestScanTokenIsIdempotentAtEof(t *testing.T) {
	l := New("")
	for i := 0; i < 3; i++ {
		tok, err := l.ScanToken()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tok.Kind != token.Eof {
			t.Errorf("call %d: Kind = %v, want Eof", i, tok.Kind)
		}
	}
}
