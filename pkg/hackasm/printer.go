package hackasm

import (
	"fmt"
	"io"
)

// Printer renders a sequence of Instruction values as Hack assembly
// text, one instruction per line.
type Printer struct {
	w io.Writer
}

// NewPrinter wraps w for use by Print/PrintAll.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// PrintAll renders every instruction in order, returning the first
// write error encountered, if any.
func (p *Printer) PrintAll(instrs []Instruction) error {
	for _, in := range instrs {
		if err := p.Print(in); err != nil {
			return err
		}
	}
	return nil
}

// Print renders a single instruction followed by a newline.
func (p *Printer) Print(in Instruction) error {
	line, err := Render(in)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(p.w, line)
	return err
}

// Render formats a single instruction as one line of Hack assembly
// text, with no trailing newline.
func Render(in Instruction) (string, error) {
	switch v := in.(type) {
	case AInstr:
		return "@" + v.Value, nil
	case CInstr:
		return renderCInstr(v), nil
	case LabelDecl:
		return "(" + v.Name + ")", nil
	case Comment:
		return "// " + v.Text, nil
	default:
		return "", fmt.Errorf("hackasm: unknown instruction type %T", in)
	}
}

func renderCInstr(c CInstr) string {
	s := c.Comp
	if c.Dest != "" {
		s = c.Dest + "=" + s
	}
	if c.Jump != "" {
		s = s + ";" + c.Jump
	}
	return s
}
