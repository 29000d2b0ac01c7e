package formgen

import (
	"github.com/grindlemire/go-formc/internal/asm"
	"github.com/grindlemire/go-formc/internal/classfile"
	"github.com/grindlemire/go-formc/internal/form"
	"github.com/grindlemire/go-formc/internal/typeinfo"
)

const (
	buttonGroupClass    = "javax.swing.ButtonGroup"
	abstractButtonClass = "javax.swing.AbstractButton"
	labelClass          = "javax.swing.JLabel"
	rootComponentClass  = "javax.swing.JComponent"
)

// emitLabelLinks emits `label.setLabelFor(target)` for every component
// with a LabelFor reference.
func (g *generator) emitLabelLinks(root *form.Component) error {
	index := g.form.Index()
	var err error
	form.Walk(root, func(c, _ *form.Component) bool {
		if err != nil {
			return false
		}
		if c.LabelFor == "" {
			return true
		}
		target, ok := index[c.LabelFor]
		if !ok {
			err = newError(KindUnknownComponent, c.LabelFor, "label %s refers to an unknown component", c.Name())
			return false
		}
		if label, lerr := typeinfo.IsAssignable(g.cls.resolver, labelClass, c.Class); lerr != nil || !label {
			err = newError(KindTypeMismatch, c.Name(), "%s links to %s but is not a label", c.Class, c.LabelFor)
			return false
		}
		g.b.Load(g.slots[c])
		g.b.Load(g.slots[target])
		g.b.InvokeVirtual(c.Class, "setLabelFor", "(Ljava/awt/Component;)V")
		return true
	})
	return err
}

// emitButtonGroups creates each group, binds it when requested and adds
// its member buttons.
func (g *generator) emitButtonGroups() error {
	if len(g.form.ButtonGroups) == 0 {
		return nil
	}
	index := g.form.Index()
	b := g.b
	for _, group := range g.form.ButtonGroups {
		members := make([]*form.Component, 0, len(group.Members))
		for _, id := range group.Members {
			c, ok := index[id]
			if !ok {
				return newError(KindUnknownComponent, id, "button group %s refers to an unknown component", group.Name)
			}
			button, err := typeinfo.IsAssignable(g.cls.resolver, abstractButtonClass, c.Class)
			if err != nil || !button {
				return newError(KindTypeMismatch, c.Name(), "button group %s member %s is not a button", group.Name, c.Class)
			}
			members = append(members, c)
		}

		slot := b.NewLocal()
		b.Construct(buttonGroupClass, "()V", nil)
		b.Store(slot)
		if group.Bound {
			fld, err := validateBinding(g.cls, group.Name, buttonGroupClass)
			if err != nil {
				return err
			}
			emitBinding(b, g.cls, fld, slot)
		}
		for _, c := range members {
			b.Load(slot)
			b.Load(g.slots[c])
			b.InvokeVirtual(buttonGroupClass, "add", "(Ljavax/swing/AbstractButton;)V")
		}
	}
	return nil
}

// addRootGetter adds a public synthetic method returning the bound root
// component. Roots that are not JComponents get no getter.
func addRootGetter(cls *boundClass, root *form.Component, name string) error {
	if ok, err := typeinfo.IsAssignable(cls.resolver, rootComponentClass, root.Class); err != nil || !ok {
		return nil
	}
	fld, ok := cls.fields[root.Binding]
	if !ok {
		return newError(KindUnknownField, root.Binding, "%s declares no such field", cls.dotted)
	}
	b := asm.New(cls.file.Pool, 0)
	b.LoadThis()
	b.GetField(cls.name, fld.Name, fld.Descriptor)
	b.CheckCast(rootComponentClass)
	b.AReturn()
	code, err := b.Code()
	if err != nil {
		return classError(cls.dotted, err)
	}
	desc := "()" + classfile.ObjectDescriptor(rootComponentClass)
	if err := cls.file.PutMethod(classfile.AccPublic|classfile.AccSynthetic, name, desc, code); err != nil {
		return classError(cls.dotted, err)
	}
	return nil
}
