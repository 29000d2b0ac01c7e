package classfile

import (
	"fmt"
	"math"
)

// ExceptionHandler is one exception_table entry of a Code attribute.
type ExceptionHandler struct {
	StartPC   uint16
	EndPC     uint16
	HandlerPC uint16
	CatchType uint16
}

// Code is a decoded Code attribute. Nested attributes stay undecoded except
// where InsertAt has to relocate their offsets.
type Code struct {
	MaxStack       uint16
	MaxLocals      uint16
	Code           []byte
	ExceptionTable []ExceptionHandler
	Attributes     []*Attribute
}

// ParseCode decodes the payload of a Code attribute.
func ParseCode(data []byte) (*Code, error) {
	r := &reader{buf: data}
	c := &Code{MaxStack: r.u2(), MaxLocals: r.u2()}
	c.Code = r.bytes(int(r.u4()))
	n := int(r.u2())
	for i := 0; i < n && r.err == nil; i++ {
		c.ExceptionTable = append(c.ExceptionTable, ExceptionHandler{
			StartPC:   r.u2(),
			EndPC:     r.u2(),
			HandlerPC: r.u2(),
			CatchType: r.u2(),
		})
	}
	c.Attributes = readAttributes(r)
	if r.err != nil {
		return nil, r.err
	}
	if r.off != len(data) {
		return nil, fmt.Errorf("%w: %d trailing bytes in Code attribute", ErrMalformed, len(data)-r.off)
	}
	if len(c.Code) == 0 {
		return nil, fmt.Errorf("%w: empty Code attribute", ErrMalformed)
	}
	return c, nil
}

// Encode returns the payload of the Code attribute.
func (c *Code) Encode() ([]byte, error) {
	if len(c.Code) == 0 {
		return nil, fmt.Errorf("%w: empty code", ErrMalformed)
	}
	if len(c.Code) > math.MaxUint16 {
		return nil, fmt.Errorf("%w: %d bytes", ErrCodeTooLarge, len(c.Code))
	}
	b := make([]byte, 0, 12+len(c.Code)+8*len(c.ExceptionTable))
	b = appendU2(b, c.MaxStack)
	b = appendU2(b, c.MaxLocals)
	b = appendU4(b, uint32(len(c.Code)))
	b = append(b, c.Code...)
	b = appendU2(b, uint16(len(c.ExceptionTable)))
	for _, h := range c.ExceptionTable {
		b = appendU2(b, h.StartPC)
		b = appendU2(b, h.EndPC)
		b = appendU2(b, h.HandlerPC)
		b = appendU2(b, h.CatchType)
	}
	return appendAttributes(b, c.Attributes), nil
}
