package formgen

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/grindlemire/go-formc/internal/asm"
	"github.com/grindlemire/go-formc/internal/classfile"
	"github.com/grindlemire/go-formc/internal/form"
	"github.com/grindlemire/go-formc/internal/typeinfo"
)

const (
	boundName  = "demo/Form"
	setupCall  = "invokespecial demo/Form.$$$setupUI$$$()V"
	superInit  = "invokespecial java/lang/Object.<init>()V"
	objectName = "java/lang/Object"
)

type field struct {
	access uint16
	name   string
	desc   string
}

// boundClassFile returns demo.Form extending Object with the given fields
// and a public no-argument constructor calling super().
func boundClassFile(t *testing.T, fields ...field) *classfile.File {
	t.Helper()
	f := classfile.NewFile(boundName, objectName)
	for _, fld := range fields {
		f.AddField(fld.access, fld.name, fld.desc)
	}
	addCtor(t, f, "()V", 0, superCall)
	return f
}

func addCtor(t *testing.T, f *classfile.File, desc string, params int, body func(b *asm.Buffer)) {
	t.Helper()
	b := asm.New(f.Pool, params)
	body(b)
	b.Return()
	code, err := b.Code()
	require.NoError(t, err)
	require.NoError(t, f.PutMethod(classfile.AccPublic, classfile.ConstructorName, desc, code))
}

func superCall(b *asm.Buffer) {
	b.LoadThis()
	b.InvokeSpecial(objectName, classfile.ConstructorName, "()V")
}

func selfCall(b *asm.Buffer) {
	b.LoadThis()
	b.InvokeSpecial(boundName, classfile.ConstructorName, "()V")
}

func classBytes(t *testing.T, f *classfile.File) []byte {
	t.Helper()
	data, err := f.Bytes()
	require.NoError(t, err)
	return data
}

func newForm(root ...*form.Component) *form.Form {
	return &form.Form{ClassToBind: "demo.Form", Components: root}
}

func leaf(class string) *form.Component {
	return &form.Component{Class: class, Constraints: form.Constraints{Grid: form.DefaultGridConstraints()}}
}

func bound(c *form.Component, binding string) *form.Component {
	c.Binding = binding
	return c
}

func cell(c *form.Component, row, column int) *form.Component {
	c.Constraints.Grid.Row = row
	c.Constraints.Grid.Column = column
	return c
}

func panel(layout form.Layout, children ...*form.Component) *form.Component {
	c := leaf("javax.swing.JPanel")
	c.Layout = layout
	c.Children = children
	return c
}

func compile(t *testing.T, f *classfile.File, fm *form.Form, opts ...Option) *Result {
	t.Helper()
	res, err := Compile(classBytes(t, f), fm, typeinfo.Swing(), opts...)
	require.NoError(t, err)
	return res
}

// listing disassembles one method of a class into instruction lines
// without offsets, such as "invokespecial java/lang/Object.<init>()V".
func listing(t *testing.T, data []byte, name, desc string) []string {
	t.Helper()
	cf, err := classfile.Parse(data)
	require.NoError(t, err)
	i := cf.FindMethod(name, desc)
	require.GreaterOrEqual(t, i, 0, "method %s%s not found", name, desc)
	code, err := cf.Code(cf.Methods[i])
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, classfile.Disassemble(&buf, cf.Pool, code))
	var out []string
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n")[1:] {
		_, insn, _ := strings.Cut(line, ": ")
		out = append(out, insn)
	}
	return out
}

func setupListing(t *testing.T, res *Result) []string {
	t.Helper()
	return listing(t, res.Class, DefaultSetupMethodName, "()V")
}

// requireBlock asserts that want appears as a contiguous run in lines.
func requireBlock(t *testing.T, lines []string, want ...string) {
	t.Helper()
	for i := 0; i+len(want) <= len(lines); i++ {
		match := true
		for j, w := range want {
			if lines[i+j] != w {
				match = false
				break
			}
		}
		if match {
			return
		}
	}
	require.Failf(t, "block not found", "want:\n  %s\ngot:\n  %s", strings.Join(want, "\n  "), strings.Join(lines, "\n  "))
}

func count(lines []string, s string) int {
	n := 0
	for _, l := range lines {
		if l == s {
			n++
		}
	}
	return n
}
