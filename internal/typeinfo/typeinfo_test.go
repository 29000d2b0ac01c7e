package typeinfo

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/grindlemire/go-formc/internal/classfile"
	"github.com/grindlemire/go-formc/internal/form"
)

func TestIsAssignable(t *testing.T) {
	type tc struct {
		target, source string
		want           bool
	}

	tests := map[string]tc{
		"same class":        {target: "javax.swing.JButton", source: "javax.swing.JButton", want: true},
		"superclass":        {target: "javax.swing.AbstractButton", source: "javax.swing.JButton", want: true},
		"component":         {target: "java.awt.Component", source: "javax.swing.JCheckBox", want: true},
		"object":            {target: "java.lang.Object", source: "javax.swing.JLabel", want: true},
		"interface":         {target: "javax.swing.Icon", source: "javax.swing.ImageIcon", want: true},
		"sibling":           {target: "javax.swing.JLabel", source: "javax.swing.JButton", want: false},
		"subclass reversed": {target: "javax.swing.JCheckBox", source: "javax.swing.JToggleButton", want: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			ok, err := IsAssignable(Swing(), tt.target, tt.source)
			require.NoError(t, err)
			require.Equal(t, tt.want, ok)
		})
	}

	_, err := IsAssignable(Swing(), "javax.swing.JLabel", "com.acme.Missing")
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestFindSetter(t *testing.T) {
	type tc struct {
		class, property string
		owner, desc     string
		found           bool
	}

	tests := map[string]tc{
		"inherited text": {class: "javax.swing.JButton", property: "text", owner: "javax.swing.AbstractButton", desc: "(Ljava/lang/String;)V", found: true},
		"from component": {class: "javax.swing.JLabel", property: "background", owner: "java.awt.Component", desc: "(Ljava/awt/Color;)V", found: true},
		"declared":       {class: "javax.swing.JTextArea", property: "lineWrap", owner: "javax.swing.JTextArea", desc: "(Z)V", found: true},
		"unknown":        {class: "javax.swing.JPanel", property: "flavor"},
		"unknown class":  {class: "com.acme.Missing", property: "text"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			owner, m, found, err := FindSetter(Swing(), tt.class, tt.property)
			require.NoError(t, err)
			require.Equal(t, tt.found, found)
			if found {
				require.Equal(t, tt.owner, owner)
				require.Equal(t, tt.desc, m.Descriptor)
			}
		})
	}
}

func TestSizesAndInstantiable(t *testing.T) {
	minimum, preferred := Sizes(Swing(), "javax.swing.JButton")
	require.Equal(t, form.Dimension{Width: 73, Height: 25}, minimum)
	require.Equal(t, form.Dimension{Width: 73, Height: 25}, preferred)

	custom := &ClassInfo{Name: "com.acme.Fancy", Super: "javax.swing.JPanel", PublicNoArgConstructor: true}
	r := Multi{NewTable(custom), Swing()}
	minimum, _ = Sizes(r, "com.acme.Fancy")
	require.Equal(t, form.Dimension{Width: 10, Height: 10}, minimum)

	button, err := r.Resolve("javax.swing.JButton")
	require.NoError(t, err)
	require.True(t, button.Instantiable())
	component, err := r.Resolve("javax.swing.JComponent")
	require.NoError(t, err)
	require.False(t, component.Instantiable())
	icon, err := r.Resolve("javax.swing.Icon")
	require.NoError(t, err)
	require.False(t, icon.Instantiable())

	_, err = r.Resolve("com.acme.Nothing")
	require.True(t, errors.Is(err, ErrNotFound))
}

func boundClass(t *testing.T) []byte {
	t.Helper()
	f := classfile.NewFile("demo/Form", "javax/swing/JPanel")
	f.AddField(classfile.AccPrivate, "button1", "Ljavax/swing/JButton;")
	f.AddField(classfile.AccStatic|classfile.AccFinal, "ID", "I")
	require.NoError(t, f.PutMethod(classfile.AccPublic, classfile.ConstructorName, "()V",
		&classfile.Code{MaxLocals: 1, Code: []byte{byte(classfile.Return)}}))
	data, err := f.Bytes()
	require.NoError(t, err)
	return data
}

func TestFromClassFile(t *testing.T) {
	cf, err := classfile.Parse(boundClass(t))
	require.NoError(t, err)
	info, err := FromClassFile(cf)
	require.NoError(t, err)

	require.Equal(t, "demo.Form", info.Name)
	require.Equal(t, "javax.swing.JPanel", info.Super)
	require.True(t, info.PublicNoArgConstructor)

	field, ok := info.Field("ID")
	require.True(t, ok)
	require.True(t, field.IsStatic())
	require.True(t, field.IsFinal())
	_, ok = info.Field("missing")
	require.False(t, ok)
}

func TestClasspath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "classes", "demo"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "classes", "demo", "Form.class"), boundClass(t), 0o644))

	jarPath := filepath.Join(dir, "lib.jar")
	jf, err := os.Create(jarPath)
	require.NoError(t, err)
	zw := zip.NewWriter(jf)
	w, err := zw.Create("lib/Form.class")
	require.NoError(t, err)
	f := classfile.NewFile("lib/Form", "java/lang/Object")
	data, err := f.Bytes()
	require.NoError(t, err)
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, jf.Close())

	cp, err := NewClasspath(SplitList(filepath.Join(dir, "classes")+string(os.PathListSeparator)+jarPath), 4)
	require.NoError(t, err)
	defer cp.Close()

	info, err := cp.Resolve("demo.Form")
	require.NoError(t, err)
	require.Equal(t, "javax.swing.JPanel", info.Super)
	again, err := cp.Resolve("demo.Form")
	require.NoError(t, err)
	require.Same(t, info, again)

	lib, err := cp.Resolve("lib.Form")
	require.NoError(t, err)
	require.False(t, lib.PublicNoArgConstructor)

	_, err = cp.Resolve("demo.Missing")
	require.True(t, errors.Is(err, ErrNotFound))

	_, err = NewClasspath([]string{filepath.Join(dir, "nope")}, 0)
	require.Error(t, err)
}

func TestLoadHints(t *testing.T) {
	const hints = `
classes:
  - name: com.acme.Gauge
    super: javax.swing.JComponent
    setters: ["value:I"]
    fields:
      - {name: MAX, descriptor: I, static: true}
    preferredSize: [120, 40]
`
	table, err := LoadHints(strings.NewReader(hints))
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())

	r := Multi{table, Swing()}
	owner, m, found, err := FindSetter(r, "com.acme.Gauge", "value")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "com.acme.Gauge", owner)
	require.Equal(t, "(I)V", m.Descriptor)

	_, preferred := Sizes(r, "com.acme.Gauge")
	require.Equal(t, form.Dimension{Width: 120, Height: 40}, preferred)

	_, err = LoadHints(strings.NewReader("classes:\n  - super: x\n"))
	require.Error(t, err)
}
