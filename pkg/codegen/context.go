package codegen

import (
	"fmt"
	"strconv"

	"github.com/jacklang/vm2asm/pkg/hackasm"
)

// indexLiteral renders an unsigned offset/address as an A-instruction
// value.
func indexLiteral(n uint32) string {
	return strconv.FormatUint(uint64(n), 10)
}

// genContext threads the immutable (class, function, instruction
// index) scope through a single function's emission walk. It holds no
// mutable counters: every label minted from it is a pure function of
// this scope, so uniqueness follows from construction rather than
// from a shared counter.
type genContext struct {
	class string
	fn    string
	index int
}

// instrScope is the scope used for comparison epilogues and other
// generic per-instruction labels: `<function>.<index>`.
func (c *genContext) instrScope() string {
	return fmt.Sprintf("%s.%d", c.fn, c.index)
}

// callScope is the scope used for a call's return-address label:
// `<function>$ret.<index>`.
func (c *genContext) callScope() string {
	return fmt.Sprintf("%s$ret.%d", c.fn, c.index)
}

// branchLabel maps a function-local label identifier to its emitted
// symbol: `<function>.<ident>`.
func (c *genContext) branchLabel(ident string) string {
	return c.fn + "." + ident
}

// staticSymbol maps a `static i` reference to its class-scoped symbol,
// the deliberate exception to per-instruction scoping: every function
// in the class addresses the same `@<class>.<i>` cell.
func (c *genContext) staticSymbol(index uint32) string {
	return fmt.Sprintf("%s.%d", c.class, index)
}

func a(value string) hackasm.Instruction {
	return hackasm.AInstr{Value: value}
}

func ci(dest, comp, jump string) hackasm.Instruction {
	return hackasm.CInstr{Dest: dest, Comp: comp, Jump: jump}
}

func label(name string) hackasm.Instruction {
	return hackasm.LabelDecl{Name: name}
}

// pushD appends the sequence that pushes the current D register onto
// the operand stack and advances SP.
func pushD() []hackasm.Instruction {
	return []hackasm.Instruction{
		a("SP"), ci("A", "M", ""),
		ci("M", "D", ""),
		a("SP"), ci("M", "M+1", ""),
	}
}

// popToD appends the sequence that pops the operand stack into D,
// leaving A pointing at the freed slot.
func popToD() []hackasm.Instruction {
	return []hackasm.Instruction{
		a("SP"), ci("AM", "M-1", ""),
		ci("D", "M", ""),
	}
}
