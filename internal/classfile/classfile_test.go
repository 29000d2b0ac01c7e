package classfile

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func simpleClass(t *testing.T) *File {
	t.Helper()
	f := NewFile("demo/Panel", "java/lang/Object")
	f.AddField(AccPrivate, "label", "Ljavax/swing/JLabel;")
	init := f.Pool.AddMethodref("java/lang/Object", ConstructorName, "()V")
	code := &Code{MaxStack: 1, MaxLocals: 1, Code: []byte{
		byte(Aload0), byte(Invokespecial), byte(init >> 8), byte(init), byte(Return),
	}}
	require.NoError(t, f.PutMethod(AccPublic, ConstructorName, "()V", code))
	return f
}

func TestFile_RoundTrip(t *testing.T) {
	data, err := simpleClass(t).Bytes()
	require.NoError(t, err)

	parsed, err := Parse(data)
	require.NoError(t, err)

	name, err := parsed.Name()
	require.NoError(t, err)
	require.Equal(t, "demo/Panel", name)

	super, err := parsed.SuperName()
	require.NoError(t, err)
	require.Equal(t, "java/lang/Object", super)

	require.Len(t, parsed.Fields, 1)
	fname, fdesc, err := parsed.MemberInfo(parsed.Fields[0])
	require.NoError(t, err)
	require.Equal(t, "label", fname)
	require.Equal(t, "Ljavax/swing/JLabel;", fdesc)

	again, err := parsed.Bytes()
	require.NoError(t, err)
	require.True(t, bytes.Equal(data, again), "re-serialized class differs")
}

func TestFile_PutMethodReplaces(t *testing.T) {
	f := simpleClass(t)
	body := &Code{MaxStack: 0, MaxLocals: 1, Code: []byte{byte(Return)}}
	require.NoError(t, f.PutMethod(AccPrivate|AccSynthetic, "setup", "()V", body))
	require.NoError(t, f.PutMethod(AccPrivate|AccSynthetic, "setup", "()V", body))
	require.Len(t, f.Methods, 2)

	i := f.FindMethod("setup", "()V")
	require.Equal(t, 1, i)
	code, err := f.Code(f.Methods[i])
	require.NoError(t, err)
	require.Equal(t, []byte{byte(Return)}, code.Code)
	require.Equal(t, -1, f.FindMethod("setup", "(I)V"))
}

func TestParse_Errors(t *testing.T) {
	valid, err := simpleClass(t).Bytes()
	require.NoError(t, err)

	type tc struct {
		data []byte
	}

	tests := map[string]tc{
		"empty":      {data: nil},
		"bad magic":  {data: []byte{0xCA, 0xFE, 0xBA, 0xBF, 0, 0, 0, 52}},
		"truncated":  {data: valid[:len(valid)-3]},
		"trailing":   {data: append(append([]byte(nil), valid...), 0)},
		"zero count": {data: []byte{0xCA, 0xFE, 0xBA, 0xBE, 0, 0, 0, 52, 0, 0}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(tt.data)
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrMalformed), "got %v", err)
		})
	}
}

func TestPool_Interning(t *testing.T) {
	p := NewPool()
	a := p.AddMethodref("java/awt/Container", "add", "(Ljava/awt/Component;)Ljava/awt/Component;")
	b := p.AddMethodref("java/awt/Container", "add", "(Ljava/awt/Component;)Ljava/awt/Component;")
	require.Equal(t, a, b)

	ref, err := p.MemberRef(a)
	require.NoError(t, err)
	require.Equal(t, "java/awt/Container.add(Ljava/awt/Component;)Ljava/awt/Component;", ref.String())

	long := p.AddLong(42)
	next := p.AddInteger(7)
	require.Equal(t, long+2, next, "long constants take two slots")
	_, err = p.Get(long + 1)
	require.Error(t, err)

	require.NotEqual(t, p.AddString("x"), p.AddUTF8("x"))
	require.NoError(t, p.Err())
}

func TestPool_ModifiedUTF8(t *testing.T) {
	type tc struct {
		text string
		raw  []byte
	}

	tests := map[string]tc{
		"ascii":         {text: "abc", raw: []byte("abc")},
		"nul":           {text: "a\x00b", raw: []byte{'a', 0xC0, 0x80, 'b'}},
		"two byte":      {text: "é", raw: []byte{0xC3, 0xA9}},
		"supplementary": {text: "\U0001F600", raw: []byte{0xED, 0xA0, 0xBD, 0xED, 0xB8, 0x80}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			raw := encodeMUTF8(tt.text)
			require.Equal(t, tt.raw, raw)
			text, err := decodeMUTF8(raw)
			require.NoError(t, err)
			require.Equal(t, tt.text, text)
		})
	}
}

func TestCode_EncodeLimits(t *testing.T) {
	_, err := (&Code{}).Encode()
	require.True(t, errors.Is(err, ErrMalformed))

	_, err = (&Code{Code: make([]byte, 70000)}).Encode()
	require.True(t, errors.Is(err, ErrCodeTooLarge))
}

func TestParseMethodDescriptor(t *testing.T) {
	type tc struct {
		desc    string
		params  []string
		result  string
		slots   int
		wantErr bool
	}

	tests := map[string]tc{
		"no args":  {desc: "()V", result: "V"},
		"mixed":    {desc: "(IJLjava/lang/String;[D)Z", params: []string{"I", "J", "Ljava/lang/String;", "[D"}, result: "Z", slots: 5},
		"object":   {desc: "()Ljava/awt/Font;", result: "Ljava/awt/Font;"},
		"no paren": {desc: "V", wantErr: true},
		"bad arg":  {desc: "(Q)V", wantErr: true},
		"unclosed": {desc: "(Ljava/lang/String)V", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			mt, err := ParseMethodDescriptor(tt.desc)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.params, mt.Params)
			require.Equal(t, tt.result, mt.Result)
			require.Equal(t, tt.slots, mt.ArgSlots())
		})
	}
}
