package lexer

import (
	"testing"

	"github.com/jacklang/vm2asm/pkg/token"
)

func TestNextToken(t *testing.T) {
	input := "push constant 17\nadd\n"

	tests := []struct {
		expectedType    token.Type
		expectedLiteral string
	}{
		{token.Push, "push"},
		{token.Constant, "constant"},
		{token.LitInt, "17"},
		{token.Newline, "\n"},
		{token.Add, "add"},
		{token.Newline, "\n"},
		{token.EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("tests[%d]: unexpected error: %v", i, err)
		}
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q", i, tt.expectedType, tok.Type)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestIfGotoKeyword(t *testing.T) {
	toks, err := Tokenize("if-goto LOOP")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[0].Type != token.IfGoto || toks[0].Literal != "if-goto" {
		t.Fatalf("expected if-goto token, got %+v", toks[0])
	}
	if toks[1].Type != token.Ident || toks[1].Literal != "LOOP" {
		t.Fatalf("expected ident LOOP, got %+v", toks[1])
	}
}

func TestIdentWithDotsAndUnderscores(t *testing.T) {
	toks, err := Tokenize("call Foo.Bar.baz_1 2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[1].Type != token.Ident || toks[1].Literal != "Foo.Bar.baz_1" {
		t.Fatalf("expected ident Foo.Bar.baz_1, got %+v", toks[1])
	}
}

func TestCommentsSkipped(t *testing.T) {
	toks, err := Tokenize("push constant 1 // comment\nadd // trailing\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var types []token.Type
	for _, tk := range toks {
		types = append(types, tk.Type)
	}
	want := []token.Type{token.Push, token.Constant, token.LitInt, token.Newline, token.Add, token.Newline, token.EOF}
	if len(types) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(types), types)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Fatalf("token %d: expected %v, got %v", i, want[i], types[i])
		}
	}
}

func TestTokenPositionsTrackLines(t *testing.T) {
	toks, err := Tokenize("add\nsub\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[0].Line != 1 {
		t.Fatalf("expected add on line 1, got %d", toks[0].Line)
	}
	if toks[2].Line != 2 {
		t.Fatalf("expected sub on line 2, got %d", toks[2].Line)
	}
}

func TestIntegerOverflow(t *testing.T) {
	_, err := Tokenize("push constant 99999999999")
	if err == nil {
		t.Fatal("expected overflow error, got nil")
	}
}

func TestUnexpectedToken(t *testing.T) {
	_, err := Tokenize("push constant $5")
	if err == nil {
		t.Fatal("expected unexpected-token error, got nil")
	}
}

func TestMultipleNewlinesCollapseToOne(t *testing.T) {
	toks, err := Tokenize("add\n\n\nsub\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []token.Type{token.Add, token.Newline, token.Sub, token.Newline, token.EOF}
	if len(toks) != len(want) {
		t.Fatalf("expected %d tokens, got %d", len(want), len(toks))
	}
	for i := range want {
		if toks[i].Type != want[i] {
			t.Fatalf("token %d: expected %v, got %v", i, want[i], toks[i].Type)
		}
	}
}
