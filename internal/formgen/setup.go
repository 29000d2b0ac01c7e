package formgen

import (
	"fmt"

	"github.com/untillpro/goutils/logger"

	"github.com/grindlemire/go-formc/internal/asm"
	"github.com/grindlemire/go-formc/internal/classfile"
	"github.com/grindlemire/go-formc/internal/form"
	"github.com/grindlemire/go-formc/internal/typeinfo"
)

// createUIComponents is the bound class hook that creates custom-created
// components before the rest of the tree is built.
const createUIComponents = "createUIComponents"

// generator synthesizes the setup method of one compilation.
type generator struct {
	cls      *boundClass
	form     *form.Form
	opts     options
	b        *asm.Buffer
	slots    map[*form.Component]int
	warnings []Warning
}

func newGenerator(cls *boundClass, f *form.Form, o options) *generator {
	return &generator{
		cls:   cls,
		form:  f,
		opts:  o,
		b:     newBuffer(cls),
		slots: make(map[*form.Component]int),
	}
}

// setupMethod emits the whole setup method body for the tree under root.
func (g *generator) setupMethod(root *form.Component) (*classfile.Code, error) {
	if err := g.callCreateUIComponents(root); err != nil {
		return nil, err
	}
	if _, err := g.emitComponent(root, nil); err != nil {
		return nil, err
	}
	if err := g.emitLabelLinks(root); err != nil {
		return nil, err
	}
	if err := g.emitButtonGroups(); err != nil {
		return nil, err
	}
	g.b.Return()
	code, err := g.b.Code()
	if err != nil {
		return nil, classError(g.cls.dotted, err)
	}
	return code, nil
}

// callCreateUIComponents emits `this.createUIComponents()` when any
// component is custom-created.
func (g *generator) callCreateUIComponents(root *form.Component) error {
	custom := false
	form.Walk(root, func(c, _ *form.Component) bool {
		custom = custom || c.CustomCreate
		return !custom
	})
	if !custom {
		return nil
	}
	owner, m, found, err := typeinfo.FindMethod(g.cls.resolver, g.cls.dotted, createUIComponents, "()V")
	if err != nil {
		return newError(KindMissingMethod, createUIComponents, "%v", err)
	}
	private := m.Access&classfile.AccPrivate != 0
	if !found || m.IsStatic() || (private && owner != g.cls.dotted) {
		return newError(KindMissingMethod, createUIComponents, "%s has custom-created components but no %s()", g.cls.dotted, createUIComponents)
	}
	g.b.LoadThis()
	if private {
		g.b.InvokeSpecial(g.cls.name, createUIComponents, "()V")
	} else {
		g.b.InvokeVirtual(g.cls.name, createUIComponents, "()V")
	}
	return nil
}

// emitComponent emits c and its subtree and returns the local slot holding c.
func (g *generator) emitComponent(c *form.Component, ancestors []*form.Component) (int, error) {
	b := g.b
	slot := b.NewLocal()
	g.slots[c] = slot

	if c.CustomCreate {
		if c.Binding == "" {
			return 0, newError(KindUnknownField, c.Name(), "custom-created component has no binding")
		}
		fld, err := validateBinding(g.cls, c.Binding, c.Class)
		if err != nil {
			return 0, err
		}
		b.LoadThis()
		b.GetField(g.cls.name, fld.Name, fld.Descriptor)
		if classfile.ClassOfDescriptor(fld.Descriptor) != c.Class {
			b.CheckCast(c.Class)
		}
		b.Store(slot)
	} else {
		info, err := g.cls.resolver.Resolve(c.Class)
		if err != nil {
			return 0, newError(KindClassNotFound, c.Class, "component %s: %v", c.Name(), err)
		}
		if !info.Instantiable() {
			return 0, newError(KindNotInstantiable, c.Class, "component %s: class is abstract, an interface or has no public no-argument constructor", c.Name())
		}
		b.Construct(c.Class, "()V", nil)
		b.Store(slot)
	}

	for _, p := range c.Properties {
		if err := g.setProperty(c, slot, p); err != nil {
			return 0, err
		}
	}

	switch {
	case c.CustomCreate:
	case c.Binding != "":
		fld, err := validateBinding(g.cls, c.Binding, c.Class)
		if err != nil {
			return 0, err
		}
		emitBinding(b, g.cls, fld, slot)
	default:
		g.warnings = append(g.warnings, Warning{
			Kind:    WarningNoBinding,
			Subject: c.Name(),
			Message: "no binding field specified",
		})
	}

	if c.Layout == nil {
		return slot, nil
	}
	le, err := layoutEmitterFor(g, c, ancestors)
	if err != nil {
		return 0, err
	}
	if err := le.install(slot); err != nil {
		return 0, err
	}
	path := append(ancestors[:len(ancestors):len(ancestors)], c)
	for i, child := range c.Children {
		childSlot, err := g.emitComponent(child, path)
		if err != nil {
			return 0, err
		}
		if err := le.attach(child, childSlot, i); err != nil {
			return 0, err
		}
	}
	if f, ok := le.(layoutFinisher); ok {
		if err := f.finish(); err != nil {
			return 0, err
		}
	}
	if logger.IsVerbose() {
		logger.Verbose(fmt.Sprintf("%s: %s container %s with %d children", g.cls.dotted, c.Layout.Kind(), c.Name(), len(c.Children)))
	}
	return slot, nil
}
