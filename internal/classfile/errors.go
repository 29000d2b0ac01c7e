package classfile

import "errors"

var (
	// ErrMalformed is wrapped by every error caused by unparseable input.
	ErrMalformed = errors.New("malformed class file")

	// ErrCodeTooLarge reports a method body above the 65535 byte limit.
	ErrCodeTooLarge = errors.New("code too large")

	// ErrPoolOverflow reports a constant pool that outgrew 65535 entries.
	ErrPoolOverflow = errors.New("constant pool overflow")

	// ErrBranchOverflow reports a relocated branch that no longer fits its offset operand.
	ErrBranchOverflow = errors.New("branch offset out of range")
)
