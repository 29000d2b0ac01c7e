package formgen

import (
	"strings"

	"github.com/grindlemire/go-formc/internal/asm"
	"github.com/grindlemire/go-formc/internal/classfile"
	"github.com/grindlemire/go-formc/internal/form"
	"github.com/grindlemire/go-formc/internal/typeinfo"
)

// propertyEmitter pushes one property value onto the operand stack.
type propertyEmitter interface {
	// descriptor is the natural parameter type of a setter taking the value.
	descriptor() string
	push(b *asm.Buffer) error
}

// customSetter is implemented by emitters that apply their value themselves
// instead of through a plain `component.setX(value)` call.
type customSetter interface {
	apply(b *asm.Buffer, target propertyTarget) error
}

// propertyTarget is the component a property is set on.
type propertyTarget struct {
	class    string // dotted class of the component
	slot     int
	property string
	setter   string
	param    string // setter parameter descriptor
}

func propertyEmitterFor(v form.Value) (propertyEmitter, error) {
	switch v := v.(type) {
	case form.Int:
		return primitiveEmitter{desc: "I", pushFn: func(b *asm.Buffer) { b.PushInt(int32(v)) }}, nil
	case form.Bool:
		return primitiveEmitter{desc: "Z", pushFn: func(b *asm.Buffer) { b.PushBool(bool(v)) }}, nil
	case form.Char:
		return primitiveEmitter{desc: "C", pushFn: func(b *asm.Buffer) { b.PushInt(int32(v)) }}, nil
	case form.Float:
		return primitiveEmitter{desc: "F", pushFn: func(b *asm.Buffer) { b.PushFloat(float32(v)) }}, nil
	case form.Double:
		return primitiveEmitter{desc: "D", pushFn: func(b *asm.Buffer) { b.PushDouble(float64(v)) }}, nil
	case form.Long:
		return primitiveEmitter{desc: "J", pushFn: func(b *asm.Buffer) { b.PushLong(int64(v)) }}, nil
	case form.String:
		return stringEmitter{v}, nil
	case form.Color:
		return colorEmitter{v}, nil
	case form.Font:
		return fontEmitter{v}, nil
	case form.Dimension:
		return dimensionEmitter{v}, nil
	case form.Insets:
		return insetsEmitter{v}, nil
	case form.Rectangle:
		return rectangleEmitter{v}, nil
	case form.Icon:
		return iconEmitter{v}, nil
	case nil:
		return nil, newError(KindInvalidProperty, "", "property has no value")
	default:
		return nil, newError(KindInvalidProperty, "", "unsupported value %s", v)
	}
}

type primitiveEmitter struct {
	desc   string
	pushFn func(b *asm.Buffer)
}

func (e primitiveEmitter) descriptor() string { return e.desc }

func (e primitiveEmitter) push(b *asm.Buffer) error {
	e.pushFn(b)
	return nil
}

type stringEmitter struct{ v form.String }

func (stringEmitter) descriptor() string { return "Ljava/lang/String;" }

func (e stringEmitter) push(b *asm.Buffer) error {
	switch e.v.Kind {
	case form.StringLiteral:
		b.PushString(e.v.Text)
	case form.StringBundle:
		if e.v.Bundle == "" || e.v.Key == "" {
			return newError(KindInvalidProperty, "", "resource bundle string needs a bundle and a key")
		}
		emitBundleString(b, e.v.Bundle, e.v.Key)
	case form.StringNull:
		b.PushNull()
	default:
		return newError(KindInvalidProperty, "", "unknown string kind %d", e.v.Kind)
	}
	return nil
}

func emitBundleString(b *asm.Buffer, bundle, key string) {
	b.PushString(bundle)
	b.InvokeStatic("java.util.ResourceBundle", "getBundle", "(Ljava/lang/String;)Ljava/util/ResourceBundle;")
	b.PushString(key)
	b.InvokeVirtual("java.util.ResourceBundle", "getString", "(Ljava/lang/String;)Ljava/lang/String;")
}

type colorEmitter struct{ v form.Color }

func (colorEmitter) descriptor() string { return "Ljava/awt/Color;" }

func (e colorEmitter) push(b *asm.Buffer) error {
	set := 0
	if e.v.RGB != nil {
		set++
	}
	if e.v.Theme != "" {
		set++
	}
	if e.v.Constant != "" {
		set++
	}
	if set != 1 {
		return newError(KindInvalidColorDescriptor, "", "%s: exactly one of rgb, theme and constant must be set, found %d", e.v, set)
	}

	switch {
	case e.v.RGB != nil:
		rgb := int32(*e.v.RGB)
		if e.v.Alpha {
			b.Construct("java.awt.Color", "(IZ)V", func() {
				b.PushInt(rgb)
				b.PushBool(true)
			})
		} else {
			b.Construct("java.awt.Color", "(I)V", func() { b.PushInt(rgb) })
		}
	case e.v.Theme != "":
		b.PushString(e.v.Theme)
		b.InvokeStatic("javax.swing.UIManager", "getColor", "(Ljava/lang/Object;)Ljava/awt/Color;")
	default:
		owner, name, ok := colorConstant(e.v.Constant)
		if !ok {
			return newError(KindInvalidColorDescriptor, "", "%q is not a Color or SystemColor constant", e.v.Constant)
		}
		b.GetStatic(owner, name, classfile.ObjectDescriptor(owner))
	}
	return nil
}

// colorConstant splits "Color.red" or "SystemColor.control" into the owning
// class and the field name. An unqualified name is a SystemColor field.
func colorConstant(s string) (owner, name string, ok bool) {
	owner, name = "java/awt/SystemColor", s
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		switch strings.TrimPrefix(s[:i], "java.awt.") {
		case "Color":
			owner = "java/awt/Color"
		case "SystemColor":
		default:
			return "", "", false
		}
		name = s[i+1:]
	}
	return owner, name, isJavaIdentifier(name)
}

type fontEmitter struct{ v form.Font }

func (fontEmitter) descriptor() string { return "Ljava/awt/Font;" }

func (e fontEmitter) push(b *asm.Buffer) error {
	if e.v.Theme != "" {
		b.PushString(e.v.Theme)
		b.InvokeStatic("javax.swing.UIManager", "getFont", "(Ljava/lang/Object;)Ljava/awt/Font;")
		return nil
	}
	if e.v.Partial() {
		return newError(KindInvalidProperty, "", "partial %s needs the component's current font", e.v)
	}
	b.Construct("java.awt.Font", "(Ljava/lang/String;II)V", func() {
		b.PushString(*e.v.Name)
		b.PushInt(*e.v.Style)
		b.PushInt(*e.v.Size)
	})
	return nil
}

// apply sets the font. Unset parts of a partial font are read back from
// the component's current font through a temporary local.
func (e fontEmitter) apply(b *asm.Buffer, t propertyTarget) error {
	switch {
	case e.v.Empty():
		return nil
	case e.v.Theme != "" || !e.v.Partial():
		b.Load(t.slot)
		if err := e.push(b); err != nil {
			return err
		}
		b.InvokeVirtual(t.class, t.setter, "("+t.param+")V")
		return nil
	}

	current := b.NewLocal()
	b.Load(t.slot)
	b.InvokeVirtual(t.class, getterName(t.property), "()"+t.param)
	b.Store(current)

	b.Load(t.slot)
	b.Construct("java.awt.Font", "(Ljava/lang/String;II)V", func() {
		if e.v.Name != nil {
			b.PushString(*e.v.Name)
		} else {
			b.Load(current)
			b.InvokeVirtual("java.awt.Font", "getName", "()Ljava/lang/String;")
		}
		if e.v.Style != nil {
			b.PushInt(*e.v.Style)
		} else {
			b.Load(current)
			b.InvokeVirtual("java.awt.Font", "getStyle", "()I")
		}
		if e.v.Size != nil {
			b.PushInt(*e.v.Size)
		} else {
			b.Load(current)
			b.InvokeVirtual("java.awt.Font", "getSize", "()I")
		}
	})
	b.InvokeVirtual(t.class, t.setter, "("+t.param+")V")
	return nil
}

type dimensionEmitter struct{ v form.Dimension }

func (dimensionEmitter) descriptor() string { return "Ljava/awt/Dimension;" }

func (e dimensionEmitter) push(b *asm.Buffer) error {
	emitDimension(b, e.v)
	return nil
}

func emitDimension(b *asm.Buffer, d form.Dimension) {
	b.Construct("java.awt.Dimension", "(II)V", func() {
		b.PushInt(d.Width)
		b.PushInt(d.Height)
	})
}

type insetsEmitter struct{ v form.Insets }

func (insetsEmitter) descriptor() string { return "Ljava/awt/Insets;" }

func (e insetsEmitter) push(b *asm.Buffer) error {
	emitInsets(b, e.v)
	return nil
}

func emitInsets(b *asm.Buffer, in form.Insets) {
	b.Construct("java.awt.Insets", "(IIII)V", func() {
		b.PushInt(in.Top)
		b.PushInt(in.Left)
		b.PushInt(in.Bottom)
		b.PushInt(in.Right)
	})
}

type rectangleEmitter struct{ v form.Rectangle }

func (rectangleEmitter) descriptor() string { return "Ljava/awt/Rectangle;" }

func (e rectangleEmitter) push(b *asm.Buffer) error {
	b.Construct("java.awt.Rectangle", "(IIII)V", func() {
		b.PushInt(e.v.X)
		b.PushInt(e.v.Y)
		b.PushInt(e.v.Width)
		b.PushInt(e.v.Height)
	})
	return nil
}

type iconEmitter struct{ v form.Icon }

func (iconEmitter) descriptor() string { return "Ljavax/swing/Icon;" }

func (e iconEmitter) push(b *asm.Buffer) error {
	if e.v.Path == "" {
		return newError(KindInvalidProperty, "", "icon has no resource path")
	}
	emitIcon(b, e.v)
	return nil
}

func emitIcon(b *asm.Buffer, icon form.Icon) {
	b.Construct("javax.swing.ImageIcon", "(Ljava/net/URL;)V", func() {
		b.LoadThis()
		b.InvokeVirtual("java.lang.Object", "getClass", "()Ljava/lang/Class;")
		b.PushString(icon.Path)
		b.InvokeVirtual("java.lang.Class", "getResource", "(Ljava/lang/String;)Ljava/net/URL;")
	})
}

// valueClass is the dotted class of the object an emitter pushes.
func valueClass(e propertyEmitter) string {
	if _, ok := e.(iconEmitter); ok {
		return "javax.swing.ImageIcon"
	}
	return classfile.ClassOfDescriptor(e.descriptor())
}

func getterName(property string) string {
	return "get" + strings.TrimPrefix(typeinfo.SetterName(property), "set")
}

// setProperty emits the assignment of one property on the component held
// in slot.
func (g *generator) setProperty(c *form.Component, slot int, p form.Property) error {
	em, err := propertyEmitterFor(p.Value)
	if err != nil {
		return withSubject(err, c.Name()+"."+p.Name)
	}
	t := propertyTarget{
		class:    c.Class,
		slot:     slot,
		property: p.Name,
		setter:   typeinfo.SetterName(p.Name),
		param:    em.descriptor(),
	}
	_, setter, found, err := typeinfo.FindSetter(g.cls.resolver, c.Class, p.Name)
	if err != nil {
		return newError(KindInvalidProperty, c.Name()+"."+p.Name, "%v", err)
	}
	if found {
		mt, err := classfile.ParseMethodDescriptor(setter.Descriptor)
		if err != nil {
			return wrapError(KindInvalidProperty, c.Name()+"."+p.Name, err)
		}
		t.param = mt.Params[0]
		if err := g.checkCompatible(em, t.param); err != nil {
			return withSubject(err, c.Name()+"."+p.Name)
		}
	}

	if cs, ok := em.(customSetter); ok {
		return withSubject(cs.apply(g.b, t), c.Name()+"."+p.Name)
	}
	g.b.Load(slot)
	if err := em.push(g.b); err != nil {
		return withSubject(err, c.Name()+"."+p.Name)
	}
	g.b.InvokeVirtual(t.class, t.setter, "("+t.param+")V")
	return nil
}

// checkCompatible reports whether the value an emitter pushes can be passed
// to a setter parameter of type param.
func (g *generator) checkCompatible(em propertyEmitter, param string) error {
	natural := em.descriptor()
	if natural == param {
		return nil
	}
	if classfile.IsPrimitive(natural) || classfile.IsPrimitive(param) {
		return newError(KindInvalidProperty, "", "value of type %s does not fit setter parameter %s", natural, param)
	}
	if s, ok := em.(stringEmitter); ok && s.v.Kind == form.StringNull {
		return nil
	}
	target := classfile.ClassOfDescriptor(param)
	ok, err := typeinfo.IsAssignable(g.cls.resolver, target, valueClass(em))
	if err != nil {
		return newError(KindInvalidProperty, "", "cannot check %s against %s: %v", valueClass(em), target, err)
	}
	if !ok {
		return newError(KindInvalidProperty, "", "%s is not assignable to %s", valueClass(em), target)
	}
	return nil
}

// withSubject fills in the subject of a compile error raised without one.
func withSubject(err error, subject string) error {
	if e, ok := err.(*Error); ok && e.Subject == "" {
		e.Subject = subject
	}
	return err
}
