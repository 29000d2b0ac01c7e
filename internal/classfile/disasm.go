package classfile

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"
)

// Disassemble writes a javap-like listing of c to w.
func Disassemble(w io.Writer, pool *Pool, c *Code) error {
	insns, err := Decode(c.Code)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "  stack=%d, locals=%d\n", c.MaxStack, c.MaxLocals)
	for _, in := range insns {
		fmt.Fprintf(w, "  %5d: %s\n", in.Offset, strings.TrimSpace(in.Op.String()+" "+operands(pool, c.Code, in)))
	}
	for _, h := range c.ExceptionTable {
		catch := "any"
		if h.CatchType != 0 {
			if name, err := pool.ClassName(h.CatchType); err == nil {
				catch = name
			}
		}
		fmt.Fprintf(w, "  try %d..%d -> %d %s\n", h.StartPC, h.EndPC, h.HandlerPC, catch)
	}
	return nil
}

func operands(pool *Pool, code []byte, in Instruction) string {
	at := in.Offset + 1
	switch {
	case in.Op.IsBranch():
		return fmt.Sprint(in.BranchTarget(code))
	case in.Op == Tableswitch || in.Op == Lookupswitch:
		return fmt.Sprint(in.SwitchTargets(code))
	case in.Op == Bipush:
		return fmt.Sprint(int8(code[at]))
	case in.Op == Sipush:
		return fmt.Sprint(int16(binary.BigEndian.Uint16(code[at:])))
	case in.Op == Ldc:
		return constantText(pool, uint16(code[at]))
	case in.Op == LdcW || in.Op == Ldc2W, in.Op >= Getstatic && in.Op <= Invokedynamic,
		in.Op == New, in.Op == Anewarray, in.Op == Checkcast, in.Op == 0xc1:
		return constantText(pool, in.Index(code))
	case in.Length == 2:
		return fmt.Sprint(code[at])
	case in.Op == Wide:
		return fmt.Sprintf("%s %d", Opcode(code[at]), binary.BigEndian.Uint16(code[at+1:]))
	}
	return ""
}

func constantText(pool *Pool, i uint16) string {
	c, err := pool.Get(i)
	if err != nil {
		return fmt.Sprintf("#%d", i)
	}
	switch c.Tag {
	case TagClass:
		name, _ := pool.ClassName(i)
		return name
	case TagString:
		s, _ := pool.UTF8(c.A)
		return fmt.Sprintf("%q", s)
	case TagFieldref, TagMethodref, TagInterfaceMethodref:
		ref, err := pool.MemberRef(i)
		if err != nil {
			return fmt.Sprintf("#%d", i)
		}
		return ref.String()
	case TagInteger:
		return fmt.Sprint(int32(c.Bits))
	case TagLong:
		return fmt.Sprint(int64(c.Bits))
	default:
		return fmt.Sprintf("#%d", i)
	}
}
