package formgen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/grindlemire/go-formc/internal/asm"
	"github.com/grindlemire/go-formc/internal/classfile"
	"github.com/grindlemire/go-formc/internal/form"
	"github.com/grindlemire/go-formc/internal/typeinfo"
)

func withID(c *form.Component, id string) *form.Component {
	c.ID = id
	return c
}

func TestCompile_LabelFor(t *testing.T) {
	label := withID(leaf("javax.swing.JLabel"), "nameLabel")
	label.LabelFor = "name"
	root := panel(form.FlowLayout{}, label, withID(leaf("javax.swing.JTextField"), "name"))

	lines := setupListing(t, compile(t, boundClassFile(t), newForm(root)))
	requireBlock(t, lines,
		"aload_2",
		"aload_3",
		"invokevirtual javax/swing/JLabel.setLabelFor(Ljava/awt/Component;)V",
		"return",
	)
}

func TestCompile_LabelForErrors(t *testing.T) {
	type tc struct {
		class    string
		labelFor string
		want     *Error
	}

	tests := map[string]tc{
		"unknown target":  {class: "javax.swing.JLabel", labelFor: "missing", want: ErrUnknownComponent},
		"button as label": {class: "javax.swing.JButton", labelFor: "name", want: ErrTypeMismatch},
		"panel as label":  {class: "javax.swing.JPanel", labelFor: "name", want: ErrTypeMismatch},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			source := withID(leaf(tt.class), "source")
			source.LabelFor = tt.labelFor
			root := panel(form.FlowLayout{}, source, withID(leaf("javax.swing.JTextField"), "name"))
			_, err := Compile(classBytes(t, boundClassFile(t)), newForm(root), typeinfo.Swing())
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCompile_ButtonGroups(t *testing.T) {
	cf := boundClassFile(t, field{classfile.AccPrivate, "choice", "Ljavax/swing/ButtonGroup;"})
	root := panel(form.FlowLayout{},
		withID(leaf("javax.swing.JRadioButton"), "small"),
		withID(leaf("javax.swing.JRadioButton"), "large"),
	)
	fm := newForm(root)
	fm.ButtonGroups = []form.ButtonGroup{
		{Name: "choice", Bound: true, Members: []string{"small", "large"}},
		{Name: "loose", Members: []string{"large"}},
	}

	lines := setupListing(t, compile(t, cf, fm))
	requireBlock(t, lines,
		"new javax/swing/ButtonGroup",
		"dup",
		"invokespecial javax/swing/ButtonGroup.<init>()V",
		"astore 4",
		"aload_0",
		"aload 4",
		"putfield demo/Form.choiceLjavax/swing/ButtonGroup;",
		"aload 4",
		"aload_2",
		"invokevirtual javax/swing/ButtonGroup.add(Ljavax/swing/AbstractButton;)V",
		"aload 4",
		"aload_3",
		"invokevirtual javax/swing/ButtonGroup.add(Ljavax/swing/AbstractButton;)V",
	)
	requireBlock(t, lines,
		"astore 5",
		"aload 5",
		"aload_3",
		"invokevirtual javax/swing/ButtonGroup.add(Ljavax/swing/AbstractButton;)V",
		"return",
	)
	require.Equal(t, 1, count(lines, "putfield demo/Form.choiceLjavax/swing/ButtonGroup;"))
}

func TestCompile_ButtonGroupErrors(t *testing.T) {
	type tc struct {
		group form.ButtonGroup
		want  *Error
	}

	tests := map[string]tc{
		"unknown member": {
			group: form.ButtonGroup{Name: "g", Members: []string{"missing"}},
			want:  ErrUnknownComponent,
		},
		"member is not a button": {
			group: form.ButtonGroup{Name: "g", Members: []string{"caption"}},
			want:  ErrTypeMismatch,
		},
		"bound group without field": {
			group: form.ButtonGroup{Name: "g", Bound: true, Members: []string{"ok"}},
			want:  ErrUnknownField,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			root := panel(form.FlowLayout{},
				withID(leaf("javax.swing.JLabel"), "caption"),
				withID(leaf("javax.swing.JButton"), "ok"),
			)
			fm := newForm(root)
			fm.ButtonGroups = []form.ButtonGroup{tt.group}
			_, err := Compile(classBytes(t, boundClassFile(t)), fm, typeinfo.Swing())
			require.ErrorIs(t, err, tt.want)
		})
	}
}

// customClassFile returns demo.Form with a gauge field and a
// createUIComponents hook of the given access.
func customClassFile(t *testing.T, access uint16) *classfile.File {
	t.Helper()
	cf := boundClassFile(t, field{classfile.AccPrivate, "gauge", "Ljavax/swing/JComponent;"})
	b := asm.New(cf.Pool, 0)
	b.Return()
	code, err := b.Code()
	require.NoError(t, err)
	require.NoError(t, cf.PutMethod(access, createUIComponents, "()V", code))
	return cf
}

func TestCompile_CustomCreate(t *testing.T) {
	type tc struct {
		access uint16
		hook   string
	}

	tests := map[string]tc{
		"private hook": {
			access: classfile.AccPrivate,
			hook:   "invokespecial demo/Form.createUIComponents()V",
		},
		"protected hook": {
			access: classfile.AccProtected,
			hook:   "invokevirtual demo/Form.createUIComponents()V",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			gauge := bound(leaf("javax.swing.JProgressBar"), "gauge")
			gauge.CustomCreate = true
			gauge.Properties = []form.Property{{Name: "value", Value: form.Int(40)}}
			root := panel(form.GridLayout{Grid: form.Grid{Rows: 1, Columns: 1}}, gauge)

			res := compile(t, customClassFile(t, tt.access), newForm(root))
			lines := setupListing(t, res)
			require.Equal(t, []string{"aload_0", tt.hook}, lines[:2])
			requireBlock(t, lines,
				"aload_0",
				"getfield demo/Form.gaugeLjavax/swing/JComponent;",
				"checkcast javax/swing/JProgressBar",
				"astore_2",
				"aload_2",
				"bipush 40",
				"invokevirtual javax/swing/JProgressBar.setValue(I)V",
			)
			require.Zero(t, count(lines, "putfield demo/Form.gaugeLjavax/swing/JComponent;"))
			require.Zero(t, count(lines, "new javax/swing/JProgressBar"))
		})
	}
}

func TestCompile_CustomCreateErrors(t *testing.T) {
	type tc struct {
		component *form.Component
		want      *Error
	}

	tests := map[string]tc{
		"no binding": {
			component: &form.Component{Class: "javax.swing.JProgressBar", CustomCreate: true},
			want:      ErrUnknownField,
		},
		"field of another type": {
			component: &form.Component{Class: "javax.swing.ButtonGroup", Binding: "gauge", CustomCreate: true},
			want:      ErrTypeMismatch,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Compile(classBytes(t, customClassFile(t, classfile.AccPrivate)), newForm(tt.component), typeinfo.Swing())
			require.ErrorIs(t, err, tt.want)
		})
	}
}
