package vmil

import "testing"

func TestInstrIsClosedUnion(t *testing.T) {
	instrs := []Instr{
		Push{Segment: SegConstant, Index: 7},
		Pop{Segment: SegLocal, Index: 2},
		Arith{Op: OpAdd},
		Call{Callee: "Foo.bar", Argc: 2},
		LabelDecl{Name: "LOOP"},
		Goto{Label: "LOOP"},
		IfGoto{Label: "LOOP"},
	}

	for _, in := range instrs {
		switch in.(type) {
		case Push, Pop, Arith, Call, LabelDecl, Goto, IfGoto:
			// expected
		default:
			t.Fatalf("unexpected instruction variant: %#v", in)
		}
	}
}

func TestSegmentString(t *testing.T) {
	tests := []struct {
		seg  Segment
		want string
	}{
		{SegConstant, "constant"},
		{SegLocal, "local"},
		{SegArgument, "argument"},
		{SegThis, "this"},
		{SegThat, "that"},
		{SegStatic, "static"},
		{SegTemp, "temp"},
		{SegPointer, "pointer"},
	}
	for _, tt := range tests {
		if got := tt.seg.String(); got != tt.want {
			t.Errorf("Segment(%d).String() = %q, want %q", tt.seg, got, tt.want)
		}
	}
}

func TestFunctionBodyOrderPreserved(t *testing.T) {
	fn := Function{
		Name:   "Foo.mul",
		Locals: 2,
		Body: []Instr{
			Push{Segment: SegConstant, Index: 1},
			Push{Segment: SegConstant, Index: 2},
			Arith{Op: OpAdd},
		},
	}
	if len(fn.Body) != 3 {
		t.Fatalf("expected 3 instructions, got %d", len(fn.Body))
	}
	if _, ok := fn.Body[2].(Arith); !ok {
		t.Fatalf("expected last instruction to be Arith, got %#v", fn.Body[2])
	}
}
