package classfile

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func u2(v int) []byte { return []byte{byte(v >> 8), byte(v)} }

func TestDecode_Switches(t *testing.T) {
	code := []byte{
		0x1b,                   // 0: iload_1
		byte(Tableswitch), 0, 0, // 1: tableswitch, two bytes of padding
		0, 0, 0, 20, // default -> 21
		0, 0, 0, 0, // low
		0, 0, 0, 0, // high
		0, 0, 0, 19, // 0 -> 20
		byte(Return), // 20
		byte(Return), // 21
	}
	insns, err := Decode(code)
	require.NoError(t, err)
	require.Len(t, insns, 4)
	require.Equal(t, Instruction{Offset: 1, Op: Tableswitch, Length: 19}, insns[1])
	require.Equal(t, []int{21, 20}, insns[1].SwitchTargets(code))

	wide := []byte{byte(Wide), 0x84, 0, 1, 0, 5, byte(Wide), 0x15, 1, 0, byte(Return)}
	insns, err = Decode(wide)
	require.NoError(t, err)
	require.Equal(t, 6, insns[0].Length)
	require.Equal(t, 4, insns[1].Length)

	_, err = Decode([]byte{byte(Invokespecial), 0})
	require.True(t, errors.Is(err, ErrMalformed))
	_, err = Decode([]byte{0xd0})
	require.True(t, errors.Is(err, ErrMalformed))
}

func TestInsertAt_RelocatesOffsets(t *testing.T) {
	pool := NewPool()
	super := pool.AddMethodref("java/lang/Object", ConstructorName, "()V")
	setup := pool.AddMethodref("demo/Panel", "setup", "()V")

	c := &Code{
		MaxStack:  1,
		MaxLocals: 2,
		Code: []byte{
			byte(Aload0),                       // 0
			byte(Invokespecial), 0, 0,          // 1
			0x1b,                               // 4: iload_1
			byte(Ifeq), 0, 7,                   // 5: -> 12
			byte(Goto), 0xff, 0xf8,             // 8: -> 0
			byte(Nop),                          // 11
			byte(Return),                       // 12
		},
		ExceptionTable: []ExceptionHandler{{StartPC: 4, EndPC: 12, HandlerPC: 12}},
		Attributes: []*Attribute{
			{NameIndex: pool.AddUTF8(AttrLineNumberTable), Data: concat(u2(2), u2(0), u2(1), u2(4), u2(2))},
			{NameIndex: pool.AddUTF8(AttrLocalVariableTable), Data: concat(u2(1), u2(0), u2(13), u2(0), u2(0), u2(0))},
			{NameIndex: pool.AddUTF8(AttrStackMapTable), Data: []byte{0, 2, 0, 11}},
		},
	}
	copy(c.Code[2:], u2(int(super)))

	snippet := concat([]byte{byte(Aload0), byte(Invokespecial)}, u2(int(setup)))
	require.NoError(t, c.InsertAt(pool, 4, snippet))

	want := concat(
		[]byte{byte(Aload0), byte(Invokespecial)}, u2(int(super)),
		snippet,
		[]byte{0x1b, byte(Ifeq), 0, 7, byte(Goto), 0xff, 0xf4, byte(Nop), byte(Return)},
	)
	require.Equal(t, want, c.Code)
	require.Equal(t, []ExceptionHandler{{StartPC: 8, EndPC: 16, HandlerPC: 16}}, c.ExceptionTable)
	require.Equal(t, concat(u2(2), u2(0), u2(1), u2(8), u2(2)), c.Attributes[0].Data)
	require.Equal(t, concat(u2(1), u2(0), u2(17), u2(0), u2(0), u2(0)), c.Attributes[1].Data)
	require.Equal(t, []byte{0, 2, 0, 15}, c.Attributes[2].Data)
}

func TestInsertAt_SwitchAndPadding(t *testing.T) {
	c := &Code{Code: []byte{
		0x1b,
		byte(Tableswitch), 0, 0,
		0, 0, 0, 20,
		0, 0, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 19,
		byte(Return),
		byte(Return),
	}}
	require.NoError(t, c.InsertAt(NewPool(), 20, []byte{byte(Aload0)}))

	require.Len(t, c.Code, 26)
	require.Equal(t, []byte{byte(Aload0), byte(Nop), byte(Nop), byte(Nop)}, c.Code[20:24])
	insns, err := Decode(c.Code)
	require.NoError(t, err)
	require.Equal(t, []int{25, 24}, insns[1].SwitchTargets(c.Code))
}

func TestInsertAt_Errors(t *testing.T) {
	type tc struct {
		code []byte
		pos  int
		want error
	}

	far := make([]byte, 32770)
	far[0] = byte(Goto)
	copy(far[1:], u2(32767))
	far[len(far)-1] = byte(Return)

	tests := map[string]tc{
		"inside instruction": {code: []byte{byte(Invokespecial), 0, 1, byte(Return)}, pos: 1, want: ErrMalformed},
		"branch overflow":    {code: far, pos: 3, want: ErrBranchOverflow},
		"too large":          {code: append(make([]byte, 65533), byte(Return)), pos: 0, want: ErrCodeTooLarge},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c := &Code{Code: tt.code}
			err := c.InsertAt(NewPool(), tt.pos, []byte{byte(Aload0)})
			require.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestStackMap_ReencodesDeltas(t *testing.T) {
	data := concat(
		u2(3),
		[]byte{10},                                // same at 10
		[]byte{64 + 5, VerifyObject}, u2(9),        // same_locals_1 at 16
		[]byte{255}, u2(3), u2(1), []byte{VerifyUninitialized}, u2(4), u2(0), // full at 20
	)
	frames, err := ParseStackMap(data)
	require.NoError(t, err)
	require.Len(t, frames, 3)
	require.Equal(t, []int{10, 16, 20}, []int{frames[0].Offset, frames[1].Offset, frames[2].Offset})

	for i := range frames {
		if frames[i].Offset >= 12 {
			frames[i].Offset += 100
		}
		shiftVerificationTypes(frames[i].Locals, func(x int) int { return x + 100 })
	}
	out, err := EncodeStackMap(frames)
	require.NoError(t, err)
	require.Equal(t, concat(
		u2(3),
		[]byte{10},
		[]byte{247}, u2(105), []byte{VerifyObject}, u2(9),
		[]byte{255}, u2(3), u2(1), []byte{VerifyUninitialized}, u2(104), u2(0),
	), out)
}

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
