package formgen

import (
	"errors"
	"fmt"

	"github.com/untillpro/goutils/logger"

	"github.com/grindlemire/go-formc/internal/asm"
	"github.com/grindlemire/go-formc/internal/classfile"
	"github.com/grindlemire/go-formc/internal/form"
	"github.com/grindlemire/go-formc/internal/typeinfo"
)

// Result is a patched class and the warnings collected while compiling it.
type Result struct {
	Class    []byte
	Warnings []Warning
}

// boundClass is the parsed class a form is compiled into.
type boundClass struct {
	file     *classfile.File
	name     string // internal name
	super    string // internal name
	info     *typeinfo.ClassInfo
	fields   map[string]typeinfo.Member
	dotted   string
	resolver typeinfo.Resolver
}

// Compile patches classBytes so that constructing the class builds the
// component tree of f. r resolves component and field classes; the bound
// class itself is resolved from classBytes. A nil r uses the built-in Swing
// table. classBytes is never modified.
func Compile(classBytes []byte, f *form.Form, r typeinfo.Resolver, opts ...Option) (*Result, error) {
	if r == nil {
		r = typeinfo.Swing()
	}
	o := defaultOptions()
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, err
		}
	}

	root, err := checkTree(f)
	if err != nil {
		return nil, err
	}
	if len(classBytes) == 0 {
		return nil, newError(KindClassNotFound, f.ClassToBind, "no class file")
	}

	cls, err := parseBound(classBytes, r)
	if err != nil {
		return nil, err
	}
	if f.ClassToBind != "" && f.ClassToBind != cls.dotted {
		return nil, newError(KindClassNotFound, f.ClassToBind, "class file defines %s", cls.dotted)
	}
	if logger.IsVerbose() {
		logger.Verbose(fmt.Sprintf("compiling form into %s (super %s)", cls.dotted, classfile.DottedName(cls.super)))
	}

	g := newGenerator(cls, f, o)
	code, err := g.setupMethod(root)
	if err != nil {
		return nil, err
	}
	if err := cls.file.PutMethod(classfile.AccPrivate|classfile.AccSynthetic, o.setupName, "()V", code); err != nil {
		return nil, classError(cls.dotted, err)
	}
	if logger.IsVerbose() {
		logger.Verbose(fmt.Sprintf("%s: setup method %s is %d bytes, %d locals", cls.dotted, o.setupName, len(code.Code), code.MaxLocals))
	}

	if err := patchConstructors(cls, o.setupName); err != nil {
		return nil, err
	}

	if o.rootGetter && root.Binding != "" {
		if err := addRootGetter(cls, root, o.rootGetterName); err != nil {
			return nil, err
		}
	}

	out, err := cls.file.Bytes()
	if err != nil {
		return nil, classError(cls.dotted, err)
	}
	return &Result{Class: out, Warnings: g.warnings}, nil
}

// checkTree enforces the tree preconditions before anything is emitted.
func checkTree(f *form.Form) (*form.Component, error) {
	if f == nil || len(f.Components) != 1 {
		n := 0
		if f != nil {
			n = len(f.Components)
		}
		return nil, newError(KindMultipleRoots, "", "form must have exactly one top-level component, found %d", n)
	}
	root := f.Components[0]
	var err error
	form.Walk(root, func(c, _ *form.Component) bool {
		if err != nil {
			return false
		}
		switch {
		case len(c.Children) > 0 && c.Layout == nil:
			err = newError(KindUnsupportedLayout, c.Name(), "container with children has no layout")
		case len(c.Children) > 0:
			if _, ok := c.Layout.(form.AbsoluteLayout); ok {
				err = newError(KindUnsupportedLayout, c.Name(), "absolute layout is only supported on empty containers")
			}
		}
		return err == nil
	})
	return root, err
}

func parseBound(data []byte, r typeinfo.Resolver) (*boundClass, error) {
	cf, err := classfile.Parse(data)
	if err != nil {
		return nil, wrapError(KindMalformedClass, "", err)
	}
	name, err := cf.Name()
	if err != nil {
		return nil, wrapError(KindMalformedClass, "", err)
	}
	super, err := cf.SuperName()
	if err != nil {
		return nil, wrapError(KindMalformedClass, name, err)
	}
	if super == "" {
		return nil, newError(KindMalformedClass, name, "class has no superclass")
	}
	info, err := typeinfo.FromClassFile(cf)
	if err != nil {
		return nil, wrapError(KindMalformedClass, name, err)
	}
	cls := &boundClass{
		file:   cf,
		name:   name,
		super:  super,
		info:   info,
		fields: make(map[string]typeinfo.Member, len(info.Fields)),
		dotted: info.Name,
	}
	for _, fld := range info.Fields {
		cls.fields[fld.Name] = fld
	}
	cls.resolver = typeinfo.Multi{typeinfo.NewTable(info), r}
	return cls, nil
}

// classError maps low-level class file errors onto the error taxonomy.
func classError(subject string, err error) error {
	switch {
	case errors.Is(err, classfile.ErrCodeTooLarge), errors.Is(err, classfile.ErrBranchOverflow), errors.Is(err, classfile.ErrPoolOverflow):
		return wrapError(KindCodeTooLarge, subject, err)
	default:
		return wrapError(KindMalformedClass, subject, err)
	}
}

// newBuffer returns an instruction buffer for a no-argument method of cls.
func newBuffer(cls *boundClass) *asm.Buffer {
	return asm.New(cls.file.Pool, 0)
}
