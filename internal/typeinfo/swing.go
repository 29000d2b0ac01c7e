package typeinfo

import (
	"strings"
	"sync"

	"github.com/grindlemire/go-formc/internal/classfile"
	"github.com/grindlemire/go-formc/internal/form"
)

const (
	descString    = "Ljava/lang/String;"
	descColor     = "Ljava/awt/Color;"
	descFont      = "Ljava/awt/Font;"
	descDimension = "Ljava/awt/Dimension;"
	descInsets    = "Ljava/awt/Insets;"
	descRectangle = "Ljava/awt/Rectangle;"
	descIcon      = "Ljavax/swing/Icon;"
	descComponent = "Ljava/awt/Component;"
)

const public = classfile.AccPublic

// classDecl is a compact class description used to build the built-in table.
type classDecl struct {
	name, super string
	interfaces  []string
	abstract    bool
	iface       bool
	noCtor      bool
	min, pref   form.Dimension
	// setters are property:descriptor pairs.
	setters []string
	methods []Member
}

func (s classDecl) info() *ClassInfo {
	info := &ClassInfo{
		Name:                   s.name,
		Super:                  s.super,
		Interfaces:             s.interfaces,
		Interface:              s.iface,
		Abstract:               s.abstract,
		PublicNoArgConstructor: !s.noCtor && !s.iface,
		MinimumSize:            s.min,
		PreferredSize:          s.pref,
		Methods:                append([]Member(nil), s.methods...),
	}
	if info.PublicNoArgConstructor {
		info.Methods = append(info.Methods, Member{Name: classfile.ConstructorName, Descriptor: "()V", Access: public})
	}
	for _, p := range s.setters {
		prop, desc, _ := strings.Cut(p, ":")
		info.Methods = append(info.Methods, Member{Name: SetterName(prop), Descriptor: "(" + desc + ")V", Access: public})
	}
	return info
}

func dim(w, h int32) form.Dimension { return form.Dimension{Width: w, Height: h} }

func method(name, desc string) Member { return Member{Name: name, Descriptor: desc, Access: public} }

var swingDecls = []classDecl{
	{name: "java.lang.Object"},
	{name: "java.lang.String", super: "java.lang.Object"},
	{name: "java.awt.Color", super: "java.lang.Object", noCtor: true},
	{name: "java.awt.Font", super: "java.lang.Object", noCtor: true},
	{name: "java.awt.Dimension", super: "java.lang.Object"},
	{name: "java.awt.Insets", super: "java.lang.Object", noCtor: true},
	{name: "java.awt.Rectangle", super: "java.lang.Object"},
	{name: "java.awt.LayoutManager", iface: true},
	{name: "javax.swing.Icon", iface: true},
	{name: "javax.swing.ImageIcon", super: "java.lang.Object", interfaces: []string{"javax.swing.Icon"}},
	{name: "javax.swing.ButtonGroup", super: "java.lang.Object", methods: []Member{
		method("add", "(Ljavax/swing/AbstractButton;)V"),
	}},
	{
		name: "java.awt.Component", super: "java.lang.Object", abstract: true, noCtor: true,
		setters: []string{
			"background:" + descColor, "foreground:" + descColor, "font:" + descFont,
			"enabled:Z", "visible:Z", "focusable:Z", "name:" + descString,
			"minimumSize:" + descDimension, "preferredSize:" + descDimension, "maximumSize:" + descDimension,
			"bounds:" + descRectangle, "size:" + descDimension,
		},
		methods: []Member{method("getFont", "()"+descFont)},
	},
	{
		name: "java.awt.Container", super: "java.awt.Component",
		setters: []string{"layout:Ljava/awt/LayoutManager;"},
		methods: []Member{
			method("add", "("+descComponent+")"+descComponent),
			method("add", "("+descComponent+"Ljava/lang/Object;)V"),
			method("getLayout", "()Ljava/awt/LayoutManager;"),
		},
	},
	{
		name: "javax.swing.JComponent", super: "java.awt.Container", abstract: true,
		setters: []string{
			"toolTipText:" + descString, "opaque:Z", "alignmentX:F", "alignmentY:F",
			"doubleBuffered:Z", "autoscrolls:Z", "inheritsPopupMenu:Z",
		},
	},
	{name: "javax.swing.JPanel", super: "javax.swing.JComponent", min: dim(10, 10), pref: dim(10, 10)},
	{
		name: "javax.swing.JLabel", super: "javax.swing.JComponent", min: dim(0, 16), pref: dim(40, 16),
		setters: []string{
			"text:" + descString, "icon:" + descIcon, "labelFor:" + descComponent,
			"horizontalAlignment:I", "verticalAlignment:I", "displayedMnemonic:I", "iconTextGap:I",
		},
	},
	{
		name: "javax.swing.AbstractButton", super: "javax.swing.JComponent", abstract: true,
		setters: []string{
			"text:" + descString, "icon:" + descIcon, "selected:Z", "mnemonic:I",
			"margin:" + descInsets, "horizontalAlignment:I", "actionCommand:" + descString,
			"borderPainted:Z", "contentAreaFilled:Z", "focusPainted:Z",
		},
	},
	{name: "javax.swing.JButton", super: "javax.swing.AbstractButton", min: dim(73, 25), pref: dim(73, 25),
		setters: []string{"defaultCapable:Z"}},
	{name: "javax.swing.JToggleButton", super: "javax.swing.AbstractButton", min: dim(73, 25), pref: dim(73, 25)},
	{name: "javax.swing.JCheckBox", super: "javax.swing.JToggleButton", min: dim(21, 21), pref: dim(80, 21)},
	{name: "javax.swing.JRadioButton", super: "javax.swing.JToggleButton", min: dim(21, 21), pref: dim(80, 21)},
	{
		name: "javax.swing.text.JTextComponent", super: "javax.swing.JComponent", abstract: true,
		setters: []string{"text:" + descString, "editable:Z", "margin:" + descInsets, "caretPosition:I"},
	},
	{name: "javax.swing.JTextField", super: "javax.swing.text.JTextComponent", min: dim(4, 20), pref: dim(150, 20),
		setters: []string{"columns:I", "horizontalAlignment:I"}},
	{name: "javax.swing.JPasswordField", super: "javax.swing.JTextField", min: dim(4, 20), pref: dim(150, 20),
		setters: []string{"echoChar:C"}},
	{name: "javax.swing.JTextArea", super: "javax.swing.text.JTextComponent", min: dim(1, 17), pref: dim(150, 50),
		setters: []string{"rows:I", "columns:I", "lineWrap:Z", "wrapStyleWord:Z", "tabSize:I"}},
	{name: "javax.swing.JEditorPane", super: "javax.swing.text.JTextComponent", min: dim(1, 1), pref: dim(150, 50),
		setters: []string{"contentType:" + descString}},
	{name: "javax.swing.JTextPane", super: "javax.swing.JEditorPane", min: dim(1, 1), pref: dim(150, 50)},
	{name: "javax.swing.JComboBox", super: "javax.swing.JComponent", min: dim(50, 24), pref: dim(100, 24),
		setters: []string{"editable:Z", "maximumRowCount:I", "selectedIndex:I"}},
	{name: "javax.swing.JList", super: "javax.swing.JComponent", min: dim(1, 1), pref: dim(150, 50),
		setters: []string{"selectionMode:I", "visibleRowCount:I"}},
	{name: "javax.swing.JTable", super: "javax.swing.JComponent", min: dim(1, 1), pref: dim(150, 50),
		setters: []string{"rowHeight:I", "fillsViewportHeight:Z", "autoCreateRowSorter:Z"}},
	{name: "javax.swing.JTree", super: "javax.swing.JComponent", min: dim(1, 1), pref: dim(150, 50),
		setters: []string{"rootVisible:Z", "showsRootHandles:Z", "editable:Z"}},
	{name: "javax.swing.JProgressBar", super: "javax.swing.JComponent", min: dim(10, 12), pref: dim(146, 12),
		setters: []string{"value:I", "minimum:I", "maximum:I", "stringPainted:Z", "indeterminate:Z", "string:" + descString}},
	{name: "javax.swing.JSlider", super: "javax.swing.JComponent", min: dim(36, 21), pref: dim(200, 21),
		setters: []string{"value:I", "minimum:I", "maximum:I", "paintTicks:Z", "paintLabels:Z", "majorTickSpacing:I", "minorTickSpacing:I", "orientation:I"}},
	{name: "javax.swing.JSpinner", super: "javax.swing.JComponent", min: dim(30, 22), pref: dim(60, 22)},
	{name: "javax.swing.JSeparator", super: "javax.swing.JComponent", min: dim(0, 2), pref: dim(0, 2),
		setters: []string{"orientation:I"}},
	{name: "javax.swing.JScrollPane", super: "javax.swing.JComponent", min: dim(20, 20), pref: dim(20, 20),
		setters: []string{"horizontalScrollBarPolicy:I", "verticalScrollBarPolicy:I", "wheelScrollingEnabled:Z"},
		methods: []Member{method("setViewportView", "("+descComponent+")V")}},
	{name: "javax.swing.JSplitPane", super: "javax.swing.JComponent", min: dim(22, 22), pref: dim(22, 22),
		setters: []string{"orientation:I", "dividerLocation:I", "dividerSize:I", "resizeWeight:D", "continuousLayout:Z", "oneTouchExpandable:Z"},
		methods: []Member{
			method("setLeftComponent", "("+descComponent+")V"),
			method("setRightComponent", "("+descComponent+")V"),
		}},
	{name: "javax.swing.JTabbedPane", super: "javax.swing.JComponent", min: dim(10, 30), pref: dim(10, 30),
		setters: []string{"tabPlacement:I", "tabLayoutPolicy:I", "selectedIndex:I"},
		methods: []Member{
			method("addTab", "("+descString+descComponent+")V"),
			method("addTab", "("+descString+descIcon+descComponent+descString+")V"),
		}},
	{name: "javax.swing.JToolBar", super: "javax.swing.JComponent", min: dim(10, 10), pref: dim(10, 25),
		setters: []string{"floatable:Z", "rollover:Z", "orientation:I", "borderPainted:Z"}},
}

var (
	swingOnce  sync.Once
	swingTable *Table
)

// Swing returns the built-in table of common java.awt and javax.swing
// classes with approximate default sizes. The table is shared; callers must
// not modify it.
func Swing() *Table {
	swingOnce.Do(func() {
		swingTable = &Table{}
		for _, s := range swingDecls {
			swingTable.Add(s.info())
		}
	})
	return swingTable
}
