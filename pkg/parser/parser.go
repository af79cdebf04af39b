// Package parser implements a combinator-style parser over the token
// stream produced by pkg/lexer, building a pkg/vmil.Program.
//
// Each parse* method is a small combinator: on success it consumes a
// prefix of the remaining tokens and returns a value; on failure it
// reports the token types it would have accepted at the point where it
// stopped, which may be past tokens it already consumed. parseInstr
// restores the cursor before trying each next alternative and, if none
// matches, aggregates every alternative's expected set into one
// SyntaxError.
package parser

import (
	"fmt"
	"strconv"

	"github.com/jacklang/vm2asm/pkg/lexer"
	"github.com/jacklang/vm2asm/pkg/token"
	"github.com/jacklang/vm2asm/pkg/vmil"
)

// SyntaxError reports that no grammar alternative matched at a given
// token position.
type SyntaxError struct {
	Line, Column int
	Expected     []token.Type
	Got          token.Type
	GotLiteral   string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: expected one of %v, got %s %q", e.Line, e.Column, e.Expected, e.Got, e.GotLiteral)
}

// Parser parses an already-lexed token slice into a vmil.Program.
type Parser struct {
	toks []token.Token
	pos  int
}

// New creates a Parser over toks, which must end in an EOF token (as
// pkg/lexer.Tokenize guarantees).
func New(toks []token.Token) *Parser {
	return &Parser{toks: toks}
}

// ParseProgram lexes and parses VM-IL source text in one call.
func ParseProgram(src string) (vmil.Program, error) {
	toks, err := lexer.Tokenize(src)
	if err != nil {
		return nil, err
	}
	return New(toks).Parse()
}

// Parse runs the `program` grammar rule and returns the resulting
// Program, or the first structural error encountered.
//
//	program := newline* function ( newline+ function )* newline*
func (p *Parser) Parse() (vmil.Program, error) {
	p.skipNewlines()
	if p.atEOF() {
		return nil, p.unexpected(token.Function)
	}

	var prog vmil.Program
	fn, err := p.parseFunction()
	if err != nil {
		return nil, err
	}
	prog = append(prog, fn)

	for !p.atEOF() {
		if err := p.expectNewlines(); err != nil {
			return nil, err
		}
		if p.atEOF() {
			break
		}
		fn, err := p.parseFunction()
		if err != nil {
			return nil, err
		}
		prog = append(prog, fn)
	}
	return prog, nil
}

func (p *Parser) cur() token.Token {
	return p.toks[p.pos]
}

func (p *Parser) atEOF() bool {
	return p.cur().Type == token.EOF
}

func (p *Parser) advance() token.Token {
	t := p.toks[p.pos]
	if t.Type != token.EOF {
		p.pos++
	}
	return t
}

func (p *Parser) skipNewlines() {
	for p.cur().Type == token.Newline {
		p.advance()
	}
}

func (p *Parser) expectNewlines() error {
	if p.cur().Type != token.Newline {
		return p.unexpected(token.Newline)
	}
	p.skipNewlines()
	return nil
}

func (p *Parser) expect(t token.Type) (token.Token, error) {
	if p.cur().Type == t {
		return p.advance(), nil
	}
	return token.Token{}, p.unexpected(t)
}

func (p *Parser) expectLitInt() (uint32, error) {
	tok, err := p.expect(token.LitInt)
	if err != nil {
		return 0, err
	}
	n, convErr := strconv.ParseUint(tok.Literal, 10, 32)
	if convErr != nil {
		return 0, &SyntaxError{Line: tok.Line, Column: tok.Column, Expected: []token.Type{token.LitInt}, Got: tok.Type, GotLiteral: tok.Literal}
	}
	return uint32(n), nil
}

func (p *Parser) unexpected(expected ...token.Type) *SyntaxError {
	c := p.cur()
	return &SyntaxError{Line: c.Line, Column: c.Column, Expected: expected, Got: c.Type, GotLiteral: c.Literal}
}

// mergeExpected aggregates the Expected sets of several failed
// alternatives into a single SyntaxError. The error carries the
// position and offending token of the last alternative; an alternative
// that failed further along contributes its expected set only.
func mergeExpected(errs []error) *SyntaxError {
	var expected []token.Type
	var last *SyntaxError
	for _, err := range errs {
		se, ok := err.(*SyntaxError)
		if !ok {
			continue
		}
		last = se
		expected = append(expected, se.Expected...)
	}
	if last == nil {
		return &SyntaxError{}
	}
	return &SyntaxError{Line: last.Line, Column: last.Column, Expected: expected, Got: last.Got, GotLiteral: last.GotLiteral}
}

// parseFunction implements:
//
//	function := 'function' ident LitInt newline+ ( instr newline+ )* 'return'
//
// (each instruction carries its own trailing separator, so a body of
// zero instructions is legal: the header's newline then leads straight
// to `return`.)
func (p *Parser) parseFunction() (vmil.Function, error) {
	if _, err := p.expect(token.Function); err != nil {
		return vmil.Function{}, err
	}
	name, err := p.expect(token.Ident)
	if err != nil {
		return vmil.Function{}, err
	}
	locals, err := p.expectLitInt()
	if err != nil {
		return vmil.Function{}, err
	}
	if err := p.expectNewlines(); err != nil {
		return vmil.Function{}, err
	}

	var body []vmil.Instr
	for p.cur().Type != token.Return {
		instr, err := p.parseInstr()
		if err != nil {
			return vmil.Function{}, err
		}
		body = append(body, instr)
		if err := p.expectNewlines(); err != nil {
			return vmil.Function{}, err
		}
	}
	p.advance() // consume 'return'

	return vmil.Function{Name: name.Literal, Locals: locals, Body: body}, nil
}

// parseInstr implements `instr := stack_instr | call_instr | branch_instr`.
func (p *Parser) parseInstr() (vmil.Instr, error) {
	alternatives := [...]func() (vmil.Instr, error){
		p.parseMemOp,
		p.parseArith,
		p.parseCall,
		p.parseBranch,
	}

	var errs []error
	for _, alt := range alternatives {
		save := p.pos
		instr, err := alt()
		if err == nil {
			return instr, nil
		}
		p.pos = save
		errs = append(errs, err)
	}
	return nil, mergeExpected(errs)
}

// parseMemOp implements `stack_instr := ('push'|'pop') segment LitInt`.
func (p *Parser) parseMemOp() (vmil.Instr, error) {
	isPush := false
	switch p.cur().Type {
	case token.Push:
		isPush = true
	case token.Pop:
		isPush = false
	default:
		return nil, p.unexpected(token.Push, token.Pop)
	}
	p.advance()

	seg, err := p.parseSegment()
	if err != nil {
		return nil, err
	}
	n, err := p.expectLitInt()
	if err != nil {
		return nil, err
	}
	if isPush {
		return vmil.Push{Segment: seg, Index: n}, nil
	}
	return vmil.Pop{Segment: seg, Index: n}, nil
}

var segmentTokens = [...]token.Type{
	token.Constant, token.Local, token.Argument, token.This,
	token.That, token.Static, token.Temp, token.Pointer,
}

var segmentByToken = map[token.Type]vmil.Segment{
	token.Constant: vmil.SegConstant,
	token.Local:    vmil.SegLocal,
	token.Argument: vmil.SegArgument,
	token.This:     vmil.SegThis,
	token.That:     vmil.SegThat,
	token.Static:   vmil.SegStatic,
	token.Temp:     vmil.SegTemp,
	token.Pointer:  vmil.SegPointer,
}

func (p *Parser) parseSegment() (vmil.Segment, error) {
	if seg, ok := segmentByToken[p.cur().Type]; ok {
		p.advance()
		return seg, nil
	}
	return 0, p.unexpected(segmentTokens[:]...)
}

var arithByToken = map[token.Type]vmil.ArithOp{
	token.Add: vmil.OpAdd,
	token.Sub: vmil.OpSub,
	token.Neg: vmil.OpNeg,
	token.Eq:  vmil.OpEq,
	token.Gt:  vmil.OpGt,
	token.Lt:  vmil.OpLt,
	token.And: vmil.OpAnd,
	token.Or:  vmil.OpOr,
	token.Not: vmil.OpNot,
}

var arithTokens = [...]token.Type{
	token.Add, token.Sub, token.Neg, token.Eq, token.Gt,
	token.Lt, token.And, token.Or, token.Not,
}

// parseArith implements the nine-variant arithmetic/logical alternative
// of `stack_instr`.
func (p *Parser) parseArith() (vmil.Instr, error) {
	if op, ok := arithByToken[p.cur().Type]; ok {
		p.advance()
		return vmil.Arith{Op: op}, nil
	}
	return nil, p.unexpected(arithTokens[:]...)
}

// parseCall implements `call_instr := 'call' ident LitInt`.
func (p *Parser) parseCall() (vmil.Instr, error) {
	if _, err := p.expect(token.Call); err != nil {
		return nil, err
	}
	name, err := p.expect(token.Ident)
	if err != nil {
		return nil, err
	}
	argc, err := p.expectLitInt()
	if err != nil {
		return nil, err
	}
	return vmil.Call{Callee: name.Literal, Argc: argc}, nil
}

// parseBranch implements:
//
//	branch_instr := 'label' ident | 'goto' ident | 'if-goto' ident
func (p *Parser) parseBranch() (vmil.Instr, error) {
	switch p.cur().Type {
	case token.Label:
		p.advance()
		name, err := p.expect(token.Ident)
		if err != nil {
			return nil, err
		}
		return vmil.LabelDecl{Name: name.Literal}, nil
	case token.Goto:
		p.advance()
		name, err := p.expect(token.Ident)
		if err != nil {
			return nil, err
		}
		return vmil.Goto{Label: name.Literal}, nil
	case token.IfGoto:
		p.advance()
		name, err := p.expect(token.Ident)
		if err != nil {
			return nil, err
		}
		return vmil.IfGoto{Label: name.Literal}, nil
	default:
		return nil, p.unexpected(token.Label, token.Goto, token.IfGoto)
	}
}
