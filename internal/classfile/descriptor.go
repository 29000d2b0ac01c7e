package classfile

import (
	"fmt"
	"strings"
)

// MethodType is a parsed method descriptor.
type MethodType struct {
	Params []string
	Result string
}

// ParseMethodDescriptor splits a descriptor such as (ILjava/lang/String;)V.
func ParseMethodDescriptor(desc string) (MethodType, error) {
	var mt MethodType
	if !strings.HasPrefix(desc, "(") {
		return mt, fmt.Errorf("%w: method descriptor %q", ErrMalformed, desc)
	}
	rest := desc[1:]
	for !strings.HasPrefix(rest, ")") {
		n := fieldDescriptorLen(rest)
		if n == 0 {
			return mt, fmt.Errorf("%w: method descriptor %q", ErrMalformed, desc)
		}
		mt.Params = append(mt.Params, rest[:n])
		rest = rest[n:]
	}
	rest = rest[1:]
	if rest != "V" && fieldDescriptorLen(rest) != len(rest) {
		return mt, fmt.Errorf("%w: method descriptor %q", ErrMalformed, desc)
	}
	mt.Result = rest
	return mt, nil
}

// fieldDescriptorLen returns the length of the field descriptor at the start
// of s, or 0.
func fieldDescriptorLen(s string) int {
	i := 0
	for i < len(s) && s[i] == '[' {
		i++
	}
	if i >= len(s) {
		return 0
	}
	switch s[i] {
	case 'B', 'C', 'D', 'F', 'I', 'J', 'S', 'Z':
		return i + 1
	case 'L':
		end := strings.IndexByte(s[i:], ';')
		if end <= 1 {
			return 0
		}
		return i + end + 1
	}
	return 0
}

// SlotSize returns the number of stack or local slots a value of the given
// field descriptor occupies. V is zero.
func SlotSize(desc string) int {
	switch desc {
	case "V":
		return 0
	case "J", "D":
		return 2
	default:
		return 1
	}
}

// ArgSlots returns the slots taken by all parameters of mt.
func (mt MethodType) ArgSlots() int {
	n := 0
	for _, p := range mt.Params {
		n += SlotSize(p)
	}
	return n
}

// IsPrimitive reports whether desc names a primitive type.
func IsPrimitive(desc string) bool {
	return len(desc) == 1 && strings.ContainsAny(desc, "BCDFIJSZ")
}

// InternalName converts java.lang.String into java/lang/String.
func InternalName(dotted string) string {
	return strings.ReplaceAll(dotted, ".", "/")
}

// DottedName converts java/lang/String into java.lang.String.
func DottedName(internal string) string {
	return strings.ReplaceAll(internal, "/", ".")
}

// ObjectDescriptor returns the field descriptor of a dotted or internal
// class name.
func ObjectDescriptor(name string) string {
	return "L" + InternalName(name) + ";"
}

// ClassOfDescriptor returns the dotted class name of an object descriptor,
// the array descriptor itself for arrays, and "" for primitives.
func ClassOfDescriptor(desc string) string {
	switch {
	case strings.HasPrefix(desc, "L") && strings.HasSuffix(desc, ";"):
		return DottedName(desc[1 : len(desc)-1])
	case strings.HasPrefix(desc, "["):
		return desc
	default:
		return ""
	}
}
