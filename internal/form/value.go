package form

import "fmt"

// Value is a typed property value. The set of implementations is closed.
type Value interface {
	isValue()
	fmt.Stringer
}

type (
	Int    int32
	Bool   bool
	Float  float32
	Double float64
	Long   int64
	Char   uint16
)

// StringKind selects how a String value is produced at runtime.
type StringKind int

const (
	StringLiteral StringKind = iota
	StringBundle
	StringNull
)

// String is a literal, a resource bundle lookup or null.
type String struct {
	Kind   StringKind
	Text   string
	Bundle string
	Key    string
}

// Color is exactly one of an RGB value, a look-and-feel color name or a
// named constant such as "Color.red" or "SystemColor.control".
type Color struct {
	RGB *uint32
	// Alpha marks RGB as ARGB.
	Alpha    bool
	Theme    string
	Constant string
}

// Font is either a look-and-feel font name or a partial explicit font.
// Unset fields are taken from the component's current font.
type Font struct {
	Name  *string
	Style *int32
	Size  *int32
	Theme string
}

// Partial reports whether some of name, style and size are unset.
func (f Font) Partial() bool {
	return f.Name == nil || f.Style == nil || f.Size == nil
}

// Empty reports whether f sets nothing.
func (f Font) Empty() bool {
	return f.Theme == "" && f.Name == nil && f.Style == nil && f.Size == nil
}

type Dimension struct {
	Width, Height int32
}

type Insets struct {
	Top, Left, Bottom, Right int32
}

type Rectangle struct {
	X, Y, Width, Height int32
}

// Icon is a class path resource loaded relative to the bound class.
type Icon struct {
	Path string
}

func (Int) isValue()       {}
func (Bool) isValue()      {}
func (Float) isValue()     {}
func (Double) isValue()    {}
func (Long) isValue()      {}
func (Char) isValue()      {}
func (String) isValue()    {}
func (Color) isValue()     {}
func (Font) isValue()      {}
func (Dimension) isValue() {}
func (Insets) isValue()    {}
func (Rectangle) isValue() {}
func (Icon) isValue()      {}

func (v Int) String() string    { return fmt.Sprintf("int(%d)", int32(v)) }
func (v Bool) String() string   { return fmt.Sprintf("bool(%t)", bool(v)) }
func (v Float) String() string  { return fmt.Sprintf("float(%g)", float32(v)) }
func (v Double) String() string { return fmt.Sprintf("double(%g)", float64(v)) }
func (v Long) String() string   { return fmt.Sprintf("long(%d)", int64(v)) }
func (v Char) String() string   { return fmt.Sprintf("char(%q)", rune(v)) }

func (v String) String() string {
	switch v.Kind {
	case StringBundle:
		return fmt.Sprintf("string(%s#%s)", v.Bundle, v.Key)
	case StringNull:
		return "string(null)"
	default:
		return fmt.Sprintf("string(%q)", v.Text)
	}
}

func (v Color) String() string {
	switch {
	case v.RGB != nil:
		return fmt.Sprintf("color(#%08x)", *v.RGB)
	case v.Theme != "":
		return "color(" + v.Theme + ")"
	default:
		return "color(" + v.Constant + ")"
	}
}

func (v Font) String() string {
	if v.Theme != "" {
		return "font(" + v.Theme + ")"
	}
	s := "font("
	if v.Name != nil {
		s += "name=" + *v.Name + " "
	}
	if v.Style != nil {
		s += fmt.Sprintf("style=%d ", *v.Style)
	}
	if v.Size != nil {
		s += fmt.Sprintf("size=%d", *v.Size)
	}
	return s + ")"
}

func (v Dimension) String() string { return fmt.Sprintf("dimension(%d,%d)", v.Width, v.Height) }
func (v Insets) String() string {
	return fmt.Sprintf("insets(%d,%d,%d,%d)", v.Top, v.Left, v.Bottom, v.Right)
}
func (v Rectangle) String() string {
	return fmt.Sprintf("rectangle(%d,%d,%d,%d)", v.X, v.Y, v.Width, v.Height)
}
func (v Icon) String() string { return "icon(" + v.Path + ")" }
