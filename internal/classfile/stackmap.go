package classfile

import "fmt"

// Verification type tags used in StackMapTable frames.
const (
	VerifyTop               = 0
	VerifyInteger           = 1
	VerifyFloat             = 2
	VerifyDouble            = 3
	VerifyLong              = 4
	VerifyNull              = 5
	VerifyUninitializedThis = 6
	VerifyObject            = 7
	VerifyUninitialized     = 8
)

// VerificationType is one verification_type_info entry. Index is a constant
// pool class index for VerifyObject and the offset of the creating new
// instruction for VerifyUninitialized.
type VerificationType struct {
	Tag   uint8
	Index uint16
}

type frameKind uint8

const (
	frameSame frameKind = iota
	frameSameLocals1
	frameChop
	frameSameExtended
	frameAppend
	frameFull
)

// Frame is a StackMapTable entry with its absolute code offset.
type Frame struct {
	Offset int
	kind   frameKind
	chop   int
	Locals []VerificationType
	Stack  []VerificationType
}

// ParseStackMap decodes a StackMapTable attribute payload into frames with
// absolute offsets.
func ParseStackMap(data []byte) ([]Frame, error) {
	r := &reader{buf: data}
	n := int(r.u2())
	frames := make([]Frame, 0, n)
	offset := -1
	for i := 0; i < n && r.err == nil; i++ {
		t := r.u1()
		var f Frame
		var delta int
		switch {
		case t <= 63:
			f.kind, delta = frameSame, int(t)
		case t <= 127:
			f.kind, delta = frameSameLocals1, int(t-64)
			f.Stack = readVerificationTypes(r, 1)
		case t < 247:
			r.fail("reserved stack map frame type %d", t)
		case t == 247:
			f.kind, delta = frameSameLocals1, int(r.u2())
			f.Stack = readVerificationTypes(r, 1)
		case t <= 250:
			f.kind, f.chop, delta = frameChop, int(251-t), int(r.u2())
		case t == 251:
			f.kind, delta = frameSameExtended, int(r.u2())
		case t <= 254:
			f.kind, delta = frameAppend, int(r.u2())
			f.Locals = readVerificationTypes(r, int(t-251))
		default:
			f.kind, delta = frameFull, int(r.u2())
			f.Locals = readVerificationTypes(r, int(r.u2()))
			f.Stack = readVerificationTypes(r, int(r.u2()))
		}
		offset += delta + 1
		f.Offset = offset
		frames = append(frames, f)
	}
	if r.err != nil {
		return nil, r.err
	}
	if r.off != len(data) {
		return nil, fmt.Errorf("%w: %d trailing bytes in StackMapTable", ErrMalformed, len(data)-r.off)
	}
	return frames, nil
}

func readVerificationTypes(r *reader, n int) []VerificationType {
	var out []VerificationType
	for i := 0; i < n && r.err == nil; i++ {
		v := VerificationType{Tag: r.u1()}
		switch {
		case v.Tag == VerifyObject || v.Tag == VerifyUninitialized:
			v.Index = r.u2()
		case v.Tag > VerifyUninitialized:
			r.fail("unknown verification type %d", v.Tag)
		}
		out = append(out, v)
	}
	return out
}

// EncodeStackMap re-encodes frames, choosing the compact form of same and
// same_locals_1 frames whenever their offset delta allows it.
func EncodeStackMap(frames []Frame) ([]byte, error) {
	b := appendU2(nil, uint16(len(frames)))
	prev := -1
	for _, f := range frames {
		delta := f.Offset - prev - 1
		if delta < 0 || delta > 0xffff {
			return nil, fmt.Errorf("%w: stack map frame at %d out of order", ErrMalformed, f.Offset)
		}
		prev = f.Offset
		switch f.kind {
		case frameSame, frameSameExtended:
			if delta <= 63 {
				b = appendU1(b, uint8(delta))
			} else {
				b = appendU1(b, 251)
				b = appendU2(b, uint16(delta))
			}
		case frameSameLocals1:
			if delta <= 63 {
				b = appendU1(b, uint8(64+delta))
			} else {
				b = appendU1(b, 247)
				b = appendU2(b, uint16(delta))
			}
			b = appendVerificationTypes(b, f.Stack)
		case frameChop:
			b = appendU1(b, uint8(251-f.chop))
			b = appendU2(b, uint16(delta))
		case frameAppend:
			b = appendU1(b, uint8(251+len(f.Locals)))
			b = appendU2(b, uint16(delta))
			b = appendVerificationTypes(b, f.Locals)
		case frameFull:
			b = appendU1(b, 255)
			b = appendU2(b, uint16(delta))
			b = appendU2(b, uint16(len(f.Locals)))
			b = appendVerificationTypes(b, f.Locals)
			b = appendU2(b, uint16(len(f.Stack)))
			b = appendVerificationTypes(b, f.Stack)
		}
	}
	return b, nil
}

func appendVerificationTypes(b []byte, types []VerificationType) []byte {
	for _, v := range types {
		b = appendU1(b, v.Tag)
		if v.Tag == VerifyObject || v.Tag == VerifyUninitialized {
			b = appendU2(b, v.Index)
		}
	}
	return b
}

func shiftVerificationTypes(types []VerificationType, shift func(int) int) {
	for i, v := range types {
		if v.Tag == VerifyUninitialized {
			types[i].Index = uint16(shift(int(v.Index)))
		}
	}
}
