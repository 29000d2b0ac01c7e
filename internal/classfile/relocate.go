package classfile

import (
	"encoding/binary"
	"fmt"
	"math"
)

// InsertAt inserts snippet before the instruction that starts at pos and
// relocates everything that refers to code offsets: branch and switch
// operands, the exception table, StackMapTable frames (including
// uninitialized-object offsets), LineNumberTable and local variable tables.
// A branch or handler that pointed at pos keeps pointing at the original
// instruction, so the snippet only runs on fall-through.
//
// snippet is padded with nop to a multiple of four bytes so that switch
// padding is unchanged. pool resolves the names of nested attributes.
func (c *Code) InsertAt(pool *Pool, pos int, snippet []byte) error {
	insns, err := Decode(c.Code)
	if err != nil {
		return err
	}
	boundary := pos == len(c.Code)
	for _, in := range insns {
		if in.Offset == pos {
			boundary = true
			break
		}
	}
	if !boundary {
		return fmt.Errorf("%w: offset %d is not an instruction boundary", ErrMalformed, pos)
	}

	padded := append([]byte(nil), snippet...)
	for len(padded)%4 != 0 {
		padded = append(padded, byte(Nop))
	}
	n := len(padded)
	if len(c.Code)+n > math.MaxUint16 {
		return fmt.Errorf("%w: %d bytes after insertion", ErrCodeTooLarge, len(c.Code)+n)
	}

	shift := func(x int) int {
		if x >= pos {
			return x + n
		}
		return x
	}
	shiftEnd := func(x int) int {
		if x > pos {
			return x + n
		}
		return x
	}

	out := make([]byte, 0, len(c.Code)+n)
	out = append(out, c.Code[:pos]...)
	out = append(out, padded...)
	out = append(out, c.Code[pos:]...)

	for _, in := range insns {
		from := shift(in.Offset)
		switch {
		case in.Op == GotoW || in.Op == JsrW:
			rel := shift(in.BranchTarget(c.Code)) - from
			binary.BigEndian.PutUint32(out[from+1:], uint32(int32(rel)))
		case in.Op.IsBranch():
			rel := shift(in.BranchTarget(c.Code)) - from
			if rel < math.MinInt16 || rel > math.MaxInt16 {
				return fmt.Errorf("%w: %s at %d", ErrBranchOverflow, in.Op, in.Offset)
			}
			binary.BigEndian.PutUint16(out[from+1:], uint16(int16(rel)))
		case in.Op == Tableswitch || in.Op == Lookupswitch:
			relocateSwitch(c.Code, out, in, from, shift)
		}
	}

	for i, h := range c.ExceptionTable {
		c.ExceptionTable[i] = ExceptionHandler{
			StartPC:   uint16(shift(int(h.StartPC))),
			EndPC:     uint16(shiftEnd(int(h.EndPC))),
			HandlerPC: uint16(shift(int(h.HandlerPC))),
			CatchType: h.CatchType,
		}
	}

	for _, a := range c.Attributes {
		name, err := pool.UTF8(a.NameIndex)
		if err != nil {
			return err
		}
		switch name {
		case AttrStackMapTable:
			frames, err := ParseStackMap(a.Data)
			if err != nil {
				return err
			}
			for i := range frames {
				frames[i].Offset = shift(frames[i].Offset)
				shiftVerificationTypes(frames[i].Locals, shift)
				shiftVerificationTypes(frames[i].Stack, shift)
			}
			if a.Data, err = EncodeStackMap(frames); err != nil {
				return err
			}
		case AttrLineNumberTable:
			if err := relocateTable(a.Data, 4, func(e []byte) {
				putShifted(e[0:], shift)
			}); err != nil {
				return err
			}
		case AttrLocalVariableTable, AttrLocalVariableTypeTable:
			if err := relocateTable(a.Data, 10, func(e []byte) {
				start := int(binary.BigEndian.Uint16(e[0:]))
				end := start + int(binary.BigEndian.Uint16(e[2:]))
				newStart := shift(start)
				binary.BigEndian.PutUint16(e[0:], uint16(newStart))
				binary.BigEndian.PutUint16(e[2:], uint16(shiftEnd(end)-newStart))
			}); err != nil {
				return err
			}
		}
	}

	c.Code = out
	return nil
}

func relocateSwitch(old, out []byte, in Instruction, from int, shift func(int) int) {
	targets := in.SwitchTargets(old)
	base := from + 1 + switchPadding(from)
	put := func(at, target int) {
		binary.BigEndian.PutUint32(out[at:], uint32(int32(shift(target)-from)))
	}
	put(base, targets[0])
	for i, t := range targets[1:] {
		if in.Op == Tableswitch {
			put(base+12+4*i, t)
		} else {
			put(base+8+8*i+4, t)
		}
	}
}

// relocateTable rewrites a u2-counted table of fixed-size entries in place.
func relocateTable(data []byte, size int, fix func(entry []byte)) error {
	if len(data) < 2 {
		return fmt.Errorf("%w: truncated offset table", ErrMalformed)
	}
	n := int(binary.BigEndian.Uint16(data))
	if len(data) != 2+n*size {
		return fmt.Errorf("%w: offset table length %d does not match %d entries", ErrMalformed, len(data), n)
	}
	for i := 0; i < n; i++ {
		fix(data[2+i*size : 2+(i+1)*size])
	}
	return nil
}

func putShifted(b []byte, shift func(int) int) {
	binary.BigEndian.PutUint16(b, uint16(shift(int(binary.BigEndian.Uint16(b)))))
}
