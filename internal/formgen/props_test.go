package formgen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/grindlemire/go-formc/internal/form"
	"github.com/grindlemire/go-formc/internal/typeinfo"
)

func withProps(class string, props ...form.Property) *form.Component {
	c := leaf(class)
	c.Properties = props
	return c
}

func ptr[T any](v T) *T { return &v }

func TestCompile_Properties(t *testing.T) {
	type tc struct {
		component *form.Component
		want      []string
	}

	tests := map[string]tc{
		"literal string": {
			component: withProps("javax.swing.JLabel", form.Property{Name: "text", Value: form.String{Text: "Hello"}}),
			want: []string{
				"aload_1",
				`ldc "Hello"`,
				"invokevirtual javax/swing/JLabel.setText(Ljava/lang/String;)V",
			},
		},
		"bundle string": {
			component: withProps("javax.swing.JLabel", form.Property{Name: "text", Value: form.String{Kind: form.StringBundle, Bundle: "messages", Key: "title"}}),
			want: []string{
				"aload_1",
				`ldc "messages"`,
				"invokestatic java/util/ResourceBundle.getBundle(Ljava/lang/String;)Ljava/util/ResourceBundle;",
				`ldc "title"`,
				"invokevirtual java/util/ResourceBundle.getString(Ljava/lang/String;)Ljava/lang/String;",
				"invokevirtual javax/swing/JLabel.setText(Ljava/lang/String;)V",
			},
		},
		"null string": {
			component: withProps("javax.swing.JLabel", form.Property{Name: "toolTipText", Value: form.String{Kind: form.StringNull}}),
			want: []string{
				"aload_1",
				"aconst_null",
				"invokevirtual javax/swing/JLabel.setToolTipText(Ljava/lang/String;)V",
			},
		},
		"rgb color": {
			component: withProps("javax.swing.JLabel", form.Property{Name: "foreground", Value: form.Color{RGB: ptr(uint32(0xff0000))}}),
			want: []string{
				"aload_1",
				"new java/awt/Color",
				"dup",
				"ldc 16711680",
				"invokespecial java/awt/Color.<init>(I)V",
				"invokevirtual javax/swing/JLabel.setForeground(Ljava/awt/Color;)V",
			},
		},
		"argb color": {
			component: withProps("javax.swing.JLabel", form.Property{Name: "background", Value: form.Color{RGB: ptr(uint32(0x80ff0000)), Alpha: true}}),
			want: []string{
				"new java/awt/Color",
				"dup",
				"ldc -2130771968",
				"iconst_1",
				"invokespecial java/awt/Color.<init>(IZ)V",
			},
		},
		"theme color": {
			component: withProps("javax.swing.JLabel", form.Property{Name: "foreground", Value: form.Color{Theme: "Label.foreground"}}),
			want: []string{
				"aload_1",
				`ldc "Label.foreground"`,
				"invokestatic javax/swing/UIManager.getColor(Ljava/lang/Object;)Ljava/awt/Color;",
				"invokevirtual javax/swing/JLabel.setForeground(Ljava/awt/Color;)V",
			},
		},
		"color constant": {
			component: withProps("javax.swing.JLabel", form.Property{Name: "foreground", Value: form.Color{Constant: "Color.red"}}),
			want: []string{
				"aload_1",
				"getstatic java/awt/Color.redLjava/awt/Color;",
				"invokevirtual javax/swing/JLabel.setForeground(Ljava/awt/Color;)V",
			},
		},
		"system color": {
			component: withProps("javax.swing.JLabel", form.Property{Name: "background", Value: form.Color{Constant: "control"}}),
			want: []string{
				"aload_1",
				"getstatic java/awt/SystemColor.controlLjava/awt/SystemColor;",
				"invokevirtual javax/swing/JLabel.setBackground(Ljava/awt/Color;)V",
			},
		},
		"dimension": {
			component: withProps("javax.swing.JLabel", form.Property{Name: "preferredSize", Value: form.Dimension{Width: 100, Height: 20}}),
			want: []string{
				"aload_1",
				"new java/awt/Dimension",
				"dup",
				"bipush 100",
				"bipush 20",
				"invokespecial java/awt/Dimension.<init>(II)V",
				"invokevirtual javax/swing/JLabel.setPreferredSize(Ljava/awt/Dimension;)V",
			},
		},
		"insets": {
			component: withProps("javax.swing.JButton", form.Property{Name: "margin", Value: form.Insets{Top: 1, Left: 2, Bottom: 3, Right: 4}}),
			want: []string{
				"aload_1",
				"new java/awt/Insets",
				"dup",
				"iconst_1",
				"iconst_2",
				"iconst_3",
				"iconst_4",
				"invokespecial java/awt/Insets.<init>(IIII)V",
				"invokevirtual javax/swing/JButton.setMargin(Ljava/awt/Insets;)V",
			},
		},
		"rectangle": {
			component: withProps("javax.swing.JPanel", form.Property{Name: "bounds", Value: form.Rectangle{X: 0, Y: 0, Width: 200, Height: 300}}),
			want: []string{
				"new java/awt/Rectangle",
				"dup",
				"iconst_0",
				"iconst_0",
				"sipush 200",
				"sipush 300",
				"invokespecial java/awt/Rectangle.<init>(IIII)V",
				"invokevirtual javax/swing/JPanel.setBounds(Ljava/awt/Rectangle;)V",
			},
		},
		"icon": {
			component: withProps("javax.swing.JLabel", form.Property{Name: "icon", Value: form.Icon{Path: "/icons/a.png"}}),
			want: []string{
				"aload_1",
				"new javax/swing/ImageIcon",
				"dup",
				"aload_0",
				"invokevirtual java/lang/Object.getClass()Ljava/lang/Class;",
				`ldc "/icons/a.png"`,
				"invokevirtual java/lang/Class.getResource(Ljava/lang/String;)Ljava/net/URL;",
				"invokespecial javax/swing/ImageIcon.<init>(Ljava/net/URL;)V",
				"invokevirtual javax/swing/JLabel.setIcon(Ljavax/swing/Icon;)V",
			},
		},
		"boolean": {
			component: withProps("javax.swing.JButton", form.Property{Name: "enabled", Value: form.Bool(false)}),
			want: []string{
				"aload_1",
				"iconst_0",
				"invokevirtual javax/swing/JButton.setEnabled(Z)V",
			},
		},
		"char": {
			component: withProps("javax.swing.JPasswordField", form.Property{Name: "echoChar", Value: form.Char('*')}),
			want: []string{
				"aload_1",
				"bipush 42",
				"invokevirtual javax/swing/JPasswordField.setEchoChar(C)V",
			},
		},
		"float": {
			component: withProps("javax.swing.JLabel", form.Property{Name: "alignmentX", Value: form.Float(1)}),
			want: []string{
				"aload_1",
				"fconst_1",
				"invokevirtual javax/swing/JLabel.setAlignmentX(F)V",
			},
		},
		"double": {
			component: withProps("javax.swing.JSplitPane", form.Property{Name: "resizeWeight", Value: form.Double(1)}),
			want: []string{
				"aload_1",
				"dconst_1",
				"invokevirtual javax/swing/JSplitPane.setResizeWeight(D)V",
			},
		},
		"setter unknown to the resolver": {
			component: withProps("javax.swing.JLabel", form.Property{Name: "timeout", Value: form.Long(7)}),
			want: []string{
				"aload_1",
				"ldc2_w 7",
				"invokevirtual javax/swing/JLabel.setTimeout(J)V",
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			res := compile(t, boundClassFile(t), newForm(tt.component))
			requireBlock(t, setupListing(t, res), tt.want...)
		})
	}
}

func TestCompile_FontMerge(t *testing.T) {
	type tc struct {
		font    form.Font
		want    []string
		absent  []string
		setFont int
	}

	tests := map[string]tc{
		"size only": {
			font: form.Font{Size: ptr(int32(14))},
			want: []string{
				"aload_1",
				"invokevirtual javax/swing/JLabel.getFont()Ljava/awt/Font;",
				"astore_2",
				"aload_1",
				"new java/awt/Font",
				"dup",
				"aload_2",
				"invokevirtual java/awt/Font.getName()Ljava/lang/String;",
				"aload_2",
				"invokevirtual java/awt/Font.getStyle()I",
				"bipush 14",
				"invokespecial java/awt/Font.<init>(Ljava/lang/String;II)V",
				"invokevirtual javax/swing/JLabel.setFont(Ljava/awt/Font;)V",
			},
			absent:  []string{"invokevirtual java/awt/Font.getSize()I"},
			setFont: 1,
		},
		"name and style": {
			font: form.Font{Name: ptr("Dialog"), Style: ptr(int32(1))},
			want: []string{
				"new java/awt/Font",
				"dup",
				`ldc "Dialog"`,
				"iconst_1",
				"aload_2",
				"invokevirtual java/awt/Font.getSize()I",
				"invokespecial java/awt/Font.<init>(Ljava/lang/String;II)V",
			},
			absent:  []string{"invokevirtual java/awt/Font.getName()Ljava/lang/String;"},
			setFont: 1,
		},
		"complete font": {
			font: form.Font{Name: ptr("Dialog"), Style: ptr(int32(1)), Size: ptr(int32(12))},
			want: []string{
				"aload_1",
				"new java/awt/Font",
				"dup",
				`ldc "Dialog"`,
				"iconst_1",
				"bipush 12",
				"invokespecial java/awt/Font.<init>(Ljava/lang/String;II)V",
				"invokevirtual javax/swing/JLabel.setFont(Ljava/awt/Font;)V",
			},
			absent:  []string{"invokevirtual javax/swing/JLabel.getFont()Ljava/awt/Font;"},
			setFont: 1,
		},
		"theme font": {
			font: form.Font{Theme: "Label.font"},
			want: []string{
				"aload_1",
				`ldc "Label.font"`,
				"invokestatic javax/swing/UIManager.getFont(Ljava/lang/Object;)Ljava/awt/Font;",
				"invokevirtual javax/swing/JLabel.setFont(Ljava/awt/Font;)V",
			},
			absent:  []string{"invokevirtual javax/swing/JLabel.getFont()Ljava/awt/Font;"},
			setFont: 1,
		},
		"empty font": {
			font:   form.Font{},
			absent: []string{"invokevirtual javax/swing/JLabel.getFont()Ljava/awt/Font;"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			res := compile(t, boundClassFile(t), newForm(withProps("javax.swing.JLabel", form.Property{Name: "font", Value: tt.font})))
			lines := setupListing(t, res)
			if len(tt.want) > 0 {
				requireBlock(t, lines, tt.want...)
			}
			for _, a := range tt.absent {
				require.NotContains(t, lines, a)
			}
			require.Equal(t, tt.setFont, count(lines, "invokevirtual javax/swing/JLabel.setFont(Ljava/awt/Font;)V"))
		})
	}
}

func TestCompile_PropertyErrors(t *testing.T) {
	type tc struct {
		prop form.Property
		want *Error
	}

	tests := map[string]tc{
		"color with nothing set": {
			prop: form.Property{Name: "foreground", Value: form.Color{}},
			want: ErrInvalidColorDescriptor,
		},
		"color with two parts": {
			prop: form.Property{Name: "foreground", Value: form.Color{Theme: "Label.foreground", Constant: "Color.red"}},
			want: ErrInvalidColorDescriptor,
		},
		"color constant of another class": {
			prop: form.Property{Name: "foreground", Value: form.Color{Constant: "Palette.red"}},
			want: ErrInvalidColorDescriptor,
		},
		"bundle without key": {
			prop: form.Property{Name: "text", Value: form.String{Kind: form.StringBundle, Bundle: "messages"}},
			want: ErrInvalidProperty,
		},
		"value of another reference type": {
			prop: form.Property{Name: "text", Value: form.Dimension{Width: 1, Height: 1}},
			want: ErrInvalidProperty,
		},
		"missing value": {
			prop: form.Property{Name: "text"},
			want: ErrInvalidProperty,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Compile(classBytes(t, boundClassFile(t)), newForm(withProps("javax.swing.JLabel", tt.prop)), typeinfo.Swing())
			require.ErrorIs(t, err, tt.want)
			require.Contains(t, err.Error(), "javax.swing.JLabel."+tt.prop.Name)
		})
	}
}

func TestColorConstant(t *testing.T) {
	type tc struct {
		in          string
		owner, name string
		ok          bool
	}

	tests := map[string]tc{
		"color":          {in: "Color.blue", owner: "java/awt/Color", name: "blue", ok: true},
		"qualified":      {in: "java.awt.Color.BLACK", owner: "java/awt/Color", name: "BLACK", ok: true},
		"system color":   {in: "SystemColor.window", owner: "java/awt/SystemColor", name: "window", ok: true},
		"unqualified":    {in: "textText", owner: "java/awt/SystemColor", name: "textText", ok: true},
		"unknown class":  {in: "Colors.red"},
		"bad identifier": {in: "Color.1st"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			owner, field, ok := colorConstant(tt.in)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				require.Equal(t, tt.owner, owner)
				require.Equal(t, tt.name, field)
			}
		})
	}
}
