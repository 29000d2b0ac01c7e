package classfile

import (
	"encoding/binary"
	"fmt"
)

// Instruction locates one decoded instruction inside a code array.
type Instruction struct {
	Offset int
	Op     Opcode
	Length int
}

// Decode splits code into instructions.
func Decode(code []byte) ([]Instruction, error) {
	var out []Instruction
	for pc := 0; pc < len(code); {
		n, err := instructionLength(code, pc)
		if err != nil {
			return nil, err
		}
		out = append(out, Instruction{Offset: pc, Op: Opcode(code[pc]), Length: n})
		pc += n
	}
	return out, nil
}

func instructionLength(code []byte, pc int) (int, error) {
	op := Opcode(code[pc])
	n := fixedLength(op)
	switch {
	case n < 0:
		return 0, fmt.Errorf("%w: undefined opcode 0x%02x at %d", ErrMalformed, uint8(op), pc)
	case n > 0:
	case op == Wide:
		if pc+1 >= len(code) {
			return 0, fmt.Errorf("%w: truncated wide at %d", ErrMalformed, pc)
		}
		n = 4
		if code[pc+1] == 0x84 {
			n = 6
		}
	case op == Tableswitch:
		base := pc + 1 + switchPadding(pc)
		if base+12 > len(code) {
			return 0, fmt.Errorf("%w: truncated tableswitch at %d", ErrMalformed, pc)
		}
		low := int32(binary.BigEndian.Uint32(code[base+4:]))
		high := int32(binary.BigEndian.Uint32(code[base+8:]))
		if high < low {
			return 0, fmt.Errorf("%w: tableswitch bounds %d..%d at %d", ErrMalformed, low, high, pc)
		}
		n = base - pc + 12 + 4*int(int64(high)-int64(low)+1)
	case op == Lookupswitch:
		base := pc + 1 + switchPadding(pc)
		if base+8 > len(code) {
			return 0, fmt.Errorf("%w: truncated lookupswitch at %d", ErrMalformed, pc)
		}
		pairs := int32(binary.BigEndian.Uint32(code[base+4:]))
		if pairs < 0 {
			return 0, fmt.Errorf("%w: lookupswitch with %d pairs at %d", ErrMalformed, pairs, pc)
		}
		n = base - pc + 8 + 8*int(pairs)
	}
	if pc+n > len(code) {
		return 0, fmt.Errorf("%w: %s at %d runs past the end of code", ErrMalformed, op, pc)
	}
	return n, nil
}

// switchPadding returns the number of alignment bytes after a switch opcode at pc.
func switchPadding(pc int) int {
	return (4 - (pc+1)%4) % 4
}

// Index returns the u2 operand that follows the opcode, such as a constant
// pool index.
func (in Instruction) Index(code []byte) uint16 {
	return binary.BigEndian.Uint16(code[in.Offset+1:])
}

// BranchTarget returns the absolute target of a branch instruction.
func (in Instruction) BranchTarget(code []byte) int {
	if in.Op == GotoW || in.Op == JsrW {
		return in.Offset + int(int32(binary.BigEndian.Uint32(code[in.Offset+1:])))
	}
	return in.Offset + int(int16(binary.BigEndian.Uint16(code[in.Offset+1:])))
}

// SwitchTargets returns every absolute target of a tableswitch or
// lookupswitch, default first.
func (in Instruction) SwitchTargets(code []byte) []int {
	base := in.Offset + 1 + switchPadding(in.Offset)
	rel := func(at int) int {
		return in.Offset + int(int32(binary.BigEndian.Uint32(code[at:])))
	}
	targets := []int{rel(base)}
	switch in.Op {
	case Tableswitch:
		low := int32(binary.BigEndian.Uint32(code[base+4:]))
		high := int32(binary.BigEndian.Uint32(code[base+8:]))
		for i := 0; i <= int(high-low); i++ {
			targets = append(targets, rel(base+12+4*i))
		}
	case Lookupswitch:
		pairs := int(binary.BigEndian.Uint32(code[base+4:]))
		for i := 0; i < pairs; i++ {
			targets = append(targets, rel(base+8+8*i+4))
		}
	}
	return targets
}
