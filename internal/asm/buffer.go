// Package asm assembles straight-line JVM method bodies.
//
// A Buffer appends instructions, interns their operands in a class's constant
// pool, hands out local variable slots and tracks operand stack depth so the
// finished method carries correct max_stack and max_locals values. Buffers
// never emit branches.
package asm

import (
	"fmt"
	"math"

	"github.com/grindlemire/go-formc/internal/classfile"
)

// Buffer is an append-only instruction buffer scoped to one method.
type Buffer struct {
	pool     *classfile.Pool
	code     []byte
	stack    int
	maxStack int
	locals   int
	err      error
}

// New returns a buffer for an instance method whose parameters occupy
// paramSlots local slots after this.
func New(pool *classfile.Pool, paramSlots int) *Buffer {
	return &Buffer{pool: pool, locals: 1 + paramSlots}
}

// Err returns the first error recorded while emitting.
func (b *Buffer) Err() error {
	if b.err != nil {
		return b.err
	}
	return b.pool.Err()
}

// Len returns the number of bytes emitted so far.
func (b *Buffer) Len() int { return len(b.code) }

// Stack returns the current operand stack depth in slots.
func (b *Buffer) Stack() int { return b.stack }

// NewLocal allocates a fresh reference slot.
func (b *Buffer) NewLocal() int {
	slot := b.locals
	b.locals++
	if b.locals > math.MaxUint16 && b.err == nil {
		b.err = fmt.Errorf("too many local variables")
	}
	return slot
}

func (b *Buffer) emit(op classfile.Opcode, operands ...byte) {
	b.code = append(b.code, byte(op))
	b.code = append(b.code, operands...)
}

func (b *Buffer) emitIndex(op classfile.Opcode, index uint16) {
	b.emit(op, byte(index>>8), byte(index))
}

func (b *Buffer) adjust(pop, push int) {
	b.stack -= pop
	if b.stack < 0 && b.err == nil {
		b.err = fmt.Errorf("operand stack underflow at %d", len(b.code))
	}
	b.stack += push
	if b.stack > b.maxStack {
		b.maxStack = b.stack
	}
}

// LoadThis pushes the receiver.
func (b *Buffer) LoadThis() { b.Load(0) }

// Load pushes the reference held in slot.
func (b *Buffer) Load(slot int) {
	b.local(classfile.Aload, classfile.Aload0, slot)
	b.adjust(0, 1)
}

// Store pops a reference into slot.
func (b *Buffer) Store(slot int) {
	b.local(classfile.Astore, classfile.Astore0, slot)
	b.adjust(1, 0)
}

func (b *Buffer) local(op, short classfile.Opcode, slot int) {
	switch {
	case slot < 4:
		b.emit(short + classfile.Opcode(slot))
	case slot <= math.MaxUint8:
		b.emit(op, byte(slot))
	default:
		b.emit(classfile.Wide, byte(op), byte(slot>>8), byte(slot))
	}
}

// New pushes an uninitialized instance of the class with the given dotted
// or internal name.
func (b *Buffer) New(class string) {
	b.emitIndex(classfile.New, b.pool.AddClass(classfile.InternalName(class)))
	b.adjust(0, 1)
}

// Dup duplicates the top reference.
func (b *Buffer) Dup() {
	b.emit(classfile.Dup)
	b.adjust(1, 2)
}

// Pop discards the top single-slot value.
func (b *Buffer) Pop() {
	b.emit(classfile.Pop)
	b.adjust(1, 0)
}

// PushNull pushes aconst_null.
func (b *Buffer) PushNull() {
	b.emit(classfile.AconstNull)
	b.adjust(0, 1)
}

// PushInt pushes an int using the shortest encoding.
func (b *Buffer) PushInt(v int32) {
	switch {
	case v >= -1 && v <= 5:
		b.emit(classfile.Iconst0 + classfile.Opcode(v))
	case v >= math.MinInt8 && v <= math.MaxInt8:
		b.emit(classfile.Bipush, byte(int8(v)))
	case v >= math.MinInt16 && v <= math.MaxInt16:
		b.emit(classfile.Sipush, byte(uint16(v)>>8), byte(uint16(v)))
	default:
		b.ldc(b.pool.AddInteger(v))
		return
	}
	b.adjust(0, 1)
}

// PushBool pushes 1 or 0.
func (b *Buffer) PushBool(v bool) {
	if v {
		b.PushInt(1)
		return
	}
	b.PushInt(0)
}

// PushFloat pushes a float constant.
func (b *Buffer) PushFloat(v float32) {
	switch {
	case (v == 0 && !math.Signbit(float64(v))) || v == 1 || v == 2:
		b.emit(classfile.Fconst0 + classfile.Opcode(v))
		b.adjust(0, 1)
	default:
		b.ldc(b.pool.AddFloat(v))
	}
}

// PushDouble pushes a double constant.
func (b *Buffer) PushDouble(v float64) {
	switch {
	case (v == 0 && !math.Signbit(v)) || v == 1:
		b.emit(classfile.Dconst0 + classfile.Opcode(v))
	default:
		b.emitIndex(classfile.Ldc2W, b.pool.AddDouble(v))
	}
	b.adjust(0, 2)
}

// PushLong pushes a long constant.
func (b *Buffer) PushLong(v int64) {
	switch {
	case v == 0 || v == 1:
		b.emit(classfile.Lconst0 + classfile.Opcode(v))
	default:
		b.emitIndex(classfile.Ldc2W, b.pool.AddLong(v))
	}
	b.adjust(0, 2)
}

// PushString pushes a string literal.
func (b *Buffer) PushString(s string) {
	b.ldc(b.pool.AddString(s))
}

func (b *Buffer) ldc(index uint16) {
	if index <= math.MaxUint8 {
		b.emit(classfile.Ldc, byte(index))
	} else {
		b.emitIndex(classfile.LdcW, index)
	}
	b.adjust(0, 1)
}

// InvokeVirtual calls an instance method. Owners are dotted or internal names.
func (b *Buffer) InvokeVirtual(owner, name, desc string) {
	b.invoke(classfile.Invokevirtual, b.pool.AddMethodref(classfile.InternalName(owner), name, desc), desc, true)
}

// InvokeSpecial calls a constructor or private method.
func (b *Buffer) InvokeSpecial(owner, name, desc string) {
	b.invoke(classfile.Invokespecial, b.pool.AddMethodref(classfile.InternalName(owner), name, desc), desc, true)
}

// InvokeStatic calls a static method.
func (b *Buffer) InvokeStatic(owner, name, desc string) {
	b.invoke(classfile.Invokestatic, b.pool.AddMethodref(classfile.InternalName(owner), name, desc), desc, false)
}

// InvokeInterface calls an interface method.
func (b *Buffer) InvokeInterface(owner, name, desc string) {
	index := b.pool.AddInterfaceMethodref(classfile.InternalName(owner), name, desc)
	mt, err := b.methodType(desc)
	if err != nil {
		return
	}
	b.emit(classfile.Invokeinterface, byte(index>>8), byte(index), byte(mt.ArgSlots()+1), 0)
	b.adjust(mt.ArgSlots()+1, classfile.SlotSize(mt.Result))
}

// Construct emits new, dup, the constructor call with the given descriptor
// and leaves the instance on the stack. Constructor arguments are pushed by
// args between the dup and the call.
func (b *Buffer) Construct(class, desc string, args func()) {
	b.New(class)
	b.Dup()
	if args != nil {
		args()
	}
	b.InvokeSpecial(class, classfile.ConstructorName, desc)
}

func (b *Buffer) invoke(op classfile.Opcode, index uint16, desc string, receiver bool) {
	mt, err := b.methodType(desc)
	if err != nil {
		return
	}
	pop := mt.ArgSlots()
	if receiver {
		pop++
	}
	b.emitIndex(op, index)
	b.adjust(pop, classfile.SlotSize(mt.Result))
}

func (b *Buffer) methodType(desc string) (classfile.MethodType, error) {
	mt, err := classfile.ParseMethodDescriptor(desc)
	if err != nil && b.err == nil {
		b.err = err
	}
	return mt, err
}

// GetStatic pushes a static field.
func (b *Buffer) GetStatic(owner, name, desc string) {
	b.emitIndex(classfile.Getstatic, b.pool.AddFieldref(classfile.InternalName(owner), name, desc))
	b.adjust(0, classfile.SlotSize(desc))
}

// GetField replaces the receiver on the stack with the field value.
func (b *Buffer) GetField(owner, name, desc string) {
	b.emitIndex(classfile.Getfield, b.pool.AddFieldref(classfile.InternalName(owner), name, desc))
	b.adjust(1, classfile.SlotSize(desc))
}

// PutField pops a receiver and a value and stores the value.
func (b *Buffer) PutField(owner, name, desc string) {
	b.emitIndex(classfile.Putfield, b.pool.AddFieldref(classfile.InternalName(owner), name, desc))
	b.adjust(1+classfile.SlotSize(desc), 0)
}

// CheckCast narrows the reference on top of the stack.
func (b *Buffer) CheckCast(class string) {
	b.emitIndex(classfile.Checkcast, b.pool.AddClass(classfile.InternalName(class)))
}

// Return emits a void return.
func (b *Buffer) Return() {
	b.emit(classfile.Return)
}

// AReturn returns the reference on top of the stack.
func (b *Buffer) AReturn() {
	b.emit(classfile.Areturn)
	b.adjust(1, 0)
}

// Code finalizes the buffer into a Code attribute.
func (b *Buffer) Code() (*classfile.Code, error) {
	if err := b.Err(); err != nil {
		return nil, err
	}
	if len(b.code) > math.MaxUint16 {
		return nil, fmt.Errorf("%w: %d bytes", classfile.ErrCodeTooLarge, len(b.code))
	}
	return &classfile.Code{
		MaxStack:  uint16(b.maxStack),
		MaxLocals: uint16(b.locals),
		Code:      append([]byte(nil), b.code...),
	}, nil
}
