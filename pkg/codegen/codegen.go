// Package codegen lowers a vmil.Class into HACK-ASM text. Each
// function is walked once, instruction by instruction, threading a
// genContext that scopes the labels it mints; Push/Pop against the
// `static` segment deliberately escape per-instruction scoping to
// address class-level storage instead (see genContext.staticSymbol).
package codegen

import (
	"github.com/jacklang/vm2asm/pkg/hackasm"
	"github.com/jacklang/vm2asm/pkg/vmil"
)

const frameSavedWords = 5

// segBase names the base-pointer symbol for the four frame-relative
// segments; local/argument/this/that all dereference through one of
// these via base-plus-index addressing.
var segBase = map[vmil.Segment]string{
	vmil.SegLocal:    "LCL",
	vmil.SegArgument: "ARG",
	vmil.SegThis:     "THIS",
	vmil.SegThat:     "THAT",
}

// GenerateClass emits the HACK-ASM for every function in class, in
// declaration order. It does not include the bootstrap preamble; see
// Bootstrap for that.
func GenerateClass(class vmil.Class) ([]hackasm.Instruction, error) {
	var out []hackasm.Instruction
	for _, fn := range class.Functions {
		instrs, err := generateFunction(class.Name, fn)
		if err != nil {
			return nil, err
		}
		out = append(out, instrs...)
	}
	return out, nil
}

func generateFunction(className string, fn vmil.Function) ([]hackasm.Instruction, error) {
	out := []hackasm.Instruction{label(fn.Name)}
	out = append(out, initLocals(fn.Locals)...)

	ctx := &genContext{class: className, fn: fn.Name}
	for idx, instr := range fn.Body {
		ctx.index = idx
		lowered, err := ctx.lower(instr)
		if err != nil {
			return nil, err
		}
		out = append(out, lowered...)
	}

	out = append(out, genReturn()...)
	return out, nil
}

// initLocals pushes n zero words, one per declared local. A locals
// count of zero emits nothing.
func initLocals(n uint32) []hackasm.Instruction {
	var out []hackasm.Instruction
	for i := uint32(0); i < n; i++ {
		out = append(out, a("0"), ci("D", "A", ""))
		out = append(out, pushD()...)
	}
	return out
}

func (c *genContext) lower(instr vmil.Instr) ([]hackasm.Instruction, error) {
	switch in := instr.(type) {
	case vmil.Push:
		return c.genPush(in)
	case vmil.Pop:
		return c.genPop(in)
	case vmil.Arith:
		return c.genArith(in)
	case vmil.Call:
		return c.genCall(in), nil
	case vmil.LabelDecl:
		return []hackasm.Instruction{label(c.branchLabel(in.Name))}, nil
	case vmil.Goto:
		return []hackasm.Instruction{a(c.branchLabel(in.Label)), ci("", "0", "JMP")}, nil
	case vmil.IfGoto:
		out := popToD()
		out = append(out, a(c.branchLabel(in.Label)), ci("", "D", "JNE"))
		return out, nil
	default:
		panic("codegen: unreachable instruction variant")
	}
}

// genPush implements `push seg i` for every segment, including the
// constant pseudo-segment.
func (c *genContext) genPush(in vmil.Push) ([]hackasm.Instruction, error) {
	if in.Segment == vmil.SegConstant {
		out := []hackasm.Instruction{a(indexLiteral(in.Index)), ci("D", "A", "")}
		return append(out, pushD()...), nil
	}

	out, err := c.loadSegmentIntoD(in.Segment, in.Index)
	if err != nil {
		return nil, err
	}
	return append(out, pushD()...), nil
}

// genPop implements `pop seg i` for every addressable segment.
func (c *genContext) genPop(in vmil.Pop) ([]hackasm.Instruction, error) {
	if in.Segment == vmil.SegConstant {
		return nil, &SyntaxError{Function: c.fn, Reason: "pop constant has no addressable storage"}
	}

	switch in.Segment {
	case vmil.SegLocal, vmil.SegArgument, vmil.SegThis, vmil.SegThat:
		out := []hackasm.Instruction{
			a(segBase[in.Segment]), ci("D", "M", ""),
			a(indexLiteral(in.Index)), ci("D", "D+A", ""),
			a("R13"), ci("M", "D", ""),
		}
		out = append(out, popToD()...)
		out = append(out, a("R13"), ci("A", "M", ""), ci("M", "D", ""))
		return out, nil
	default:
		target, err := c.directAddress(in.Segment, in.Index)
		if err != nil {
			return nil, err
		}
		out := popToD()
		return append(out, a(target), ci("M", "D", "")), nil
	}
}

// loadSegmentIntoD loads the value addressed by (seg, index) into D,
// ready for pushD.
func (c *genContext) loadSegmentIntoD(seg vmil.Segment, index uint32) ([]hackasm.Instruction, error) {
	switch seg {
	case vmil.SegLocal, vmil.SegArgument, vmil.SegThis, vmil.SegThat:
		return []hackasm.Instruction{
			a(segBase[seg]), ci("D", "M", ""),
			a(indexLiteral(index)), ci("A", "D+A", ""),
			ci("D", "M", ""),
		}, nil
	default:
		target, err := c.directAddress(seg, index)
		if err != nil {
			return nil, err
		}
		return []hackasm.Instruction{a(target), ci("D", "M", "")}, nil
	}
}

// directAddress resolves the (seg, index) pair for the three
// segments whose address is already final — no base-register
// indirection required: temp (absolute 5+i), pointer (THIS/THAT), and
// static (symbolic class.i).
func (c *genContext) directAddress(seg vmil.Segment, index uint32) (string, error) {
	switch seg {
	case vmil.SegTemp:
		if index > 7 {
			return "", &OverflowError{Function: c.fn, Segment: "temp", Index: index}
		}
		return indexLiteral(5 + index), nil
	case vmil.SegPointer:
		switch index {
		case 0:
			return "THIS", nil
		case 1:
			return "THAT", nil
		default:
			return "", &SyntaxError{Function: c.fn, Reason: "pointer index must be 0 or 1"}
		}
	case vmil.SegStatic:
		return c.staticSymbol(index), nil
	default:
		panic("codegen: directAddress called on a base-relative segment")
	}
}

// genArith implements the nine arithmetic/logical/comparison
// variants. add/sub/and/or and neg/not are single C-instructions over
// the top one or two stack slots; eq/gt/lt expand to a branch
// diamond, see genComparison.
func (c *genContext) genArith(in vmil.Arith) ([]hackasm.Instruction, error) {
	switch in.Op {
	case vmil.OpAdd:
		return binaryOp("D+M"), nil
	case vmil.OpSub:
		return binaryOp("M-D"), nil
	case vmil.OpAnd:
		return binaryOp("D&M"), nil
	case vmil.OpOr:
		return binaryOp("D|M"), nil
	case vmil.OpNeg:
		return unaryOp("-M"), nil
	case vmil.OpNot:
		return unaryOp("!M"), nil
	case vmil.OpEq:
		return c.genComparison("JEQ"), nil
	case vmil.OpGt:
		return c.genComparison("JGT"), nil
	case vmil.OpLt:
		return c.genComparison("JLT"), nil
	default:
		panic("codegen: unreachable ArithOp variant")
	}
}

// binaryOp pops y into D, leaves A pointing at x's slot (the result
// slot), and stores comp(D, M) there — a single net decrement of SP.
func binaryOp(comp string) []hackasm.Instruction {
	return []hackasm.Instruction{
		a("SP"), ci("AM", "M-1", ""),
		ci("D", "M", ""),
		ci("A", "A-1", ""),
		ci("M", comp, ""),
	}
}

// unaryOp replaces the top of the stack with comp(top), without
// changing SP.
func unaryOp(comp string) []hackasm.Instruction {
	return []hackasm.Instruction{
		a("SP"), ci("A", "M-1", ""),
		ci("M", comp, ""),
	}
}

// genComparison lowers eq/gt/lt: pop y, compute D = x-y in place of
// the result slot, branch on D per jump, and write the canonical true
// value -1 (all bits set) or false value 0.
func (c *genContext) genComparison(jump string) []hackasm.Instruction {
	scope := c.instrScope()
	trueLabel := "TRUE." + scope
	endLabel := "END." + scope

	return []hackasm.Instruction{
		a("SP"), ci("AM", "M-1", ""),
		ci("D", "M", ""),
		ci("A", "A-1", ""),
		ci("D", "M-D", ""),
		a(trueLabel), ci("", "D", jump),
		a("SP"), ci("A", "M-1", ""), ci("M", "0", ""),
		a(endLabel), ci("", "0", "JMP"),
		label(trueLabel),
		a("SP"), ci("A", "M-1", ""), ci("M", "-1", ""),
		label(endLabel),
	}
}

// genCall implements the call/return protocol's call half: save the
// frame, rebind ARG/LCL for the callee, jump, and land the return
// label the callee will jump back to.
func (c *genContext) genCall(in vmil.Call) []hackasm.Instruction {
	retLabel := c.callScope()

	var out []hackasm.Instruction
	out = append(out, a(retLabel), ci("D", "A", ""))
	out = append(out, pushD()...)
	for _, reg := range []string{"LCL", "ARG", "THIS", "THAT"} {
		out = append(out, a(reg), ci("D", "M", ""))
		out = append(out, pushD()...)
	}

	// ARG = SP - 5 - argc
	out = append(out,
		a("SP"), ci("D", "M", ""),
		a(indexLiteral(frameSavedWords+in.Argc)), ci("D", "D-A", ""),
		a("ARG"), ci("M", "D", ""),
	)
	// LCL = SP
	out = append(out, a("SP"), ci("D", "M", ""), a("LCL"), ci("M", "D", ""))
	// goto f
	out = append(out, a(in.Callee), ci("", "0", "JMP"))
	out = append(out, label(retLabel))
	return out
}

// genReturn implements the return epilogue, always emitted at the end
// of a function body regardless of whether the source had an explicit
// `return`.
func genReturn() []hackasm.Instruction {
	out := []hackasm.Instruction{
		// R14 = *(LCL - 5), the saved return address.
		a("LCL"), ci("D", "M", ""),
		a(indexLiteral(frameSavedWords)), ci("A", "D-A", ""),
		ci("D", "M", ""),
		a("R14"), ci("M", "D", ""),
	}
	// *ARG = pop()
	out = append(out, popToD()...)
	out = append(out, a("ARG"), ci("A", "M", ""), ci("M", "D", ""))
	// SP = ARG + 1
	out = append(out, a("ARG"), ci("D", "M+1", ""), a("SP"), ci("M", "D", ""))
	// THAT = *(LCL - 1)
	out = append(out, a("LCL"), ci("A", "M-1", ""), ci("D", "M", ""), a("THAT"), ci("M", "D", ""))
	// THIS = *(LCL - 2)
	out = append(out, a("LCL"), ci("D", "M", ""), a("2"), ci("A", "D-A", ""), ci("D", "M", ""), a("THIS"), ci("M", "D", ""))
	// ARG = *(LCL - 3)
	out = append(out, a("LCL"), ci("D", "M", ""), a("3"), ci("A", "D-A", ""), ci("D", "M", ""), a("ARG"), ci("M", "D", ""))
	// LCL = *(LCL - 4)
	out = append(out, a("LCL"), ci("D", "M", ""), a("4"), ci("A", "D-A", ""), ci("D", "M", ""), a("LCL"), ci("M", "D", ""))
	// goto R14
	out = append(out, a("R14"), ci("A", "M", ""), ci("", "0", "JMP"))
	return out
}
