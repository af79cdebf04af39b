package hackasm

import (
	"bytes"
	"testing"
)

func TestRenderAInstrSymbol(t *testing.T) {
	got, err := Render(AInstr{Value: "SP"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "@SP" {
		t.Fatalf("got %q, want %q", got, "@SP")
	}
}

func TestRenderAInstrLiteral(t *testing.T) {
	got, err := Render(AInstr{Value: "17"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "@17" {
		t.Fatalf("got %q, want %q", got, "@17")
	}
}

func TestRenderCInstrVariants(t *testing.T) {
	tests := []struct {
		in   CInstr
		want string
	}{
		{CInstr{Dest: "D", Comp: "M"}, "D=M"},
		{CInstr{Comp: "D", Jump: "JMP"}, "D;JMP"},
		{CInstr{Dest: "D", Comp: "D+1", Jump: "JGT"}, "D=D+1;JGT"},
		{CInstr{Comp: "0", Jump: "JMP"}, "0;JMP"},
	}
	for _, tt := range tests {
		got, err := Render(tt.in)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != tt.want {
			t.Errorf("Render(%+v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderLabelDecl(t *testing.T) {
	got, err := Render(LabelDecl{Name: "Foo.bar$if_true.3"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "(Foo.bar$if_true.3)" {
		t.Fatalf("got %q", got)
	}
}

func TestPrintAllPreservesOrder(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	instrs := []Instruction{
		AInstr{Value: "256"},
		CInstr{Dest: "D", Comp: "A"},
		LabelDecl{Name: "LOOP"},
		CInstr{Comp: "0", Jump: "JMP"},
	}
	if err := p.PrintAll(instrs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "@256\nD=A\n(LOOP)\n0;JMP\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}
