// Package hackasm defines the in-memory representation of Hack
// symbolic assembly and a Printer that renders it to text. pkg/codegen
// is the only producer of hackasm.Instruction values; the generator
// never writes text directly.
package hackasm

// Instruction is the closed tagged union of one emitted assembly line:
// an A-instruction, a C-instruction, a label declaration, or a comment
// (never required for correctness; pkg/codegen does not emit one).
type Instruction interface {
	implInstruction()
}

// AInstr is `@value` — value is either a decimal literal (as text,
// already resolved by the generator) or a symbol resolved later by
// the assembler this output feeds (e.g. SP, LCL, a static symbol, or
// a generated label). The generator never emits raw addresses for
// symbolic memory; it always goes through a symbol name.
type AInstr struct {
	Value string
}

// CInstr is `dest=comp;jump`. Dest and Jump are optional; an empty
// Dest omits the `dest=` prefix and an empty Jump omits the `;jump`
// suffix, per the Hack grammar.
type CInstr struct {
	Dest string
	Comp string
	Jump string
}

// LabelDecl is `(Name)`, a jump target resolved by the assembler.
type LabelDecl struct {
	Name string
}

// Comment is a `// text` line with no semantic content. The printer
// renders it; the generator never produces it.
type Comment struct {
	Text string
}

func (AInstr) implInstruction()    {}
func (CInstr) implInstruction()    {}
func (LabelDecl) implInstruction() {}
func (Comment) implInstruction()   {}
