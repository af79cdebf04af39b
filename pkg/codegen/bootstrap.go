package codegen

import "github.com/jacklang/vm2asm/pkg/hackasm"

// Bootstrap returns the fixed preamble that initializes SP to 256 and
// jumps to Sys.init. It is emitted once, ahead of every per-class
// output, by the driver — never by GenerateClass itself.
func Bootstrap() []hackasm.Instruction {
	return []hackasm.Instruction{
		a("256"), ci("D", "A", ""),
		a("SP"), ci("M", "D", ""),
		a("Sys.init"), ci("", "0", "JMP"),
	}
}
