package asm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/grindlemire/go-formc/internal/classfile"
)

func TestBuffer_PushInt(t *testing.T) {
	type tc struct {
		value int32
		op    classfile.Opcode
		size  int
	}

	tests := map[string]tc{
		"minus one": {value: -1, op: classfile.IconstM1, size: 1},
		"five":      {value: 5, op: classfile.Iconst0 + 5, size: 1},
		"byte":      {value: -100, op: classfile.Bipush, size: 2},
		"short":     {value: 1000, op: classfile.Sipush, size: 3},
		"constant":  {value: 1 << 20, op: classfile.Ldc, size: 2},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			b := New(classfile.NewPool(), 0)
			b.PushInt(tt.value)
			code, err := b.Code()
			require.NoError(t, err)
			require.Equal(t, tt.op, classfile.Opcode(code.Code[0]))
			require.Len(t, code.Code, tt.size)
			require.Equal(t, uint16(1), code.MaxStack)
		})
	}
}

func TestBuffer_StackTracking(t *testing.T) {
	b := New(classfile.NewPool(), 0)
	slot := b.NewLocal()
	b.Construct("java.awt.Dimension", "(II)V", func() {
		b.PushInt(100)
		b.PushInt(20)
	})
	b.Store(slot)
	b.Load(slot)
	b.PushDouble(0.5)
	b.InvokeVirtual("java.awt.Dimension", "scale", "(D)V")
	b.Return()

	require.NoError(t, b.Err())
	require.Equal(t, 0, b.Stack())
	code, err := b.Code()
	require.NoError(t, err)
	require.Equal(t, uint16(4), code.MaxStack)
	require.Equal(t, uint16(2), code.MaxLocals)

	insns, err := classfile.Decode(code.Code)
	require.NoError(t, err)
	var ops []classfile.Opcode
	for _, in := range insns {
		ops = append(ops, in.Op)
	}
	require.Equal(t, []classfile.Opcode{
		classfile.New, classfile.Dup, classfile.Bipush, classfile.Bipush, classfile.Invokespecial,
		classfile.Astore0 + 1, classfile.Aload0 + 1, classfile.Ldc2W, classfile.Invokevirtual, classfile.Return,
	}, ops)
}

func TestBuffer_WideLocals(t *testing.T) {
	b := New(classfile.NewPool(), 0)
	var slot int
	for i := 0; i < 300; i++ {
		slot = b.NewLocal()
	}
	b.PushNull()
	b.Store(slot)
	b.Load(slot)
	b.Pop()

	code, err := b.Code()
	require.NoError(t, err)
	require.Equal(t, []byte{
		byte(classfile.AconstNull),
		byte(classfile.Wide), byte(classfile.Astore), 1, 44,
		byte(classfile.Wide), byte(classfile.Aload), 1, 44,
		byte(classfile.Pop),
	}, code.Code)
}

func TestBuffer_Errors(t *testing.T) {
	b := New(classfile.NewPool(), 0)
	b.Pop()
	require.Error(t, b.Err())

	b = New(classfile.NewPool(), 0)
	b.InvokeStatic("a.B", "c", "broken")
	_, err := b.Code()
	require.Error(t, err)
}
