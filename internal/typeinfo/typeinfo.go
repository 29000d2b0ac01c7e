// Package typeinfo answers the questions formgen asks about runtime classes:
// whether a class can be instantiated, which fields and setters it declares,
// whether one class is assignable to another and how large a component of
// the class is by default.
//
// A [Resolver] maps a dotted class name to its [ClassInfo]. [Table] serves a
// fixed set of classes, [Classpath] reads class files from directories and
// jars, and [Multi] consults several resolvers in order. [Swing] returns the
// built-in table of common AWT and Swing classes.
package typeinfo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/grindlemire/go-formc/internal/classfile"
	"github.com/grindlemire/go-formc/internal/form"
)

// ErrNotFound is returned by resolvers for unknown classes.
var ErrNotFound = errors.New("class not found")

// Resolver resolves dotted class names.
type Resolver interface {
	Resolve(name string) (*ClassInfo, error)
}

// Member is a field or method declaration.
type Member struct {
	Name       string
	Descriptor string
	Access     uint16
}

// IsStatic reports whether the member is static.
func (m Member) IsStatic() bool { return m.Access&classfile.AccStatic != 0 }

// IsFinal reports whether the member is final.
func (m Member) IsFinal() bool { return m.Access&classfile.AccFinal != 0 }

// IsPublic reports whether the member is public.
func (m Member) IsPublic() bool { return m.Access&classfile.AccPublic != 0 }

// ClassInfo is what the compiler needs to know about one class.
type ClassInfo struct {
	Name       string
	Super      string
	Interfaces []string
	Interface  bool
	Abstract   bool
	// PublicNoArgConstructor reports a public ()V constructor.
	PublicNoArgConstructor bool
	Fields                 []Member
	Methods                []Member
	// MinimumSize and PreferredSize are the default sizes of a component of
	// this class; zero means unknown and is inherited from the superclass.
	MinimumSize   form.Dimension
	PreferredSize form.Dimension
}

// Instantiable reports whether `new C()` is valid for the class.
func (c *ClassInfo) Instantiable() bool {
	return !c.Interface && !c.Abstract && c.PublicNoArgConstructor
}

// Field returns the declared field called name.
func (c *ClassInfo) Field(name string) (Member, bool) {
	for _, f := range c.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Member{}, false
}

// Method returns the declared method with the given name and descriptor.
func (c *ClassInfo) Method(name, desc string) (Member, bool) {
	for _, m := range c.Methods {
		if m.Name == name && m.Descriptor == desc {
			return m, true
		}
	}
	return Member{}, false
}

// Supers returns the class followed by its superclasses up to
// java.lang.Object. A missing superclass ends the chain with an error.
func Supers(r Resolver, name string) ([]*ClassInfo, error) {
	var chain []*ClassInfo
	seen := make(map[string]bool)
	for name != "" {
		if seen[name] {
			return chain, fmt.Errorf("class hierarchy cycle at %s", name)
		}
		seen[name] = true
		info, err := r.Resolve(name)
		if err != nil {
			return chain, err
		}
		chain = append(chain, info)
		name = info.Super
	}
	return chain, nil
}

// IsAssignable reports whether a value of class source can be stored in a
// variable of class target.
func IsAssignable(r Resolver, target, source string) (bool, error) {
	if target == source || target == "java.lang.Object" {
		return true, nil
	}
	seen := make(map[string]bool)
	queue := []string{source}
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		if seen[name] {
			continue
		}
		seen[name] = true
		if name == target {
			return true, nil
		}
		info, err := r.Resolve(name)
		if err != nil {
			return false, err
		}
		if info.Super != "" {
			queue = append(queue, info.Super)
		}
		queue = append(queue, info.Interfaces...)
	}
	return false, nil
}

// SetterName returns the JavaBeans setter name of a property.
func SetterName(property string) string {
	if property == "" {
		return "set"
	}
	return "set" + strings.ToUpper(property[:1]) + property[1:]
}

// FindSetter looks up the public one-argument void setter of property on
// class or its superclasses. It returns the declaring class and the setter.
func FindSetter(r Resolver, class, property string) (string, Member, bool, error) {
	name := SetterName(property)
	chain, err := Supers(r, class)
	for _, info := range chain {
		for _, m := range info.Methods {
			if m.Name != name || !m.IsPublic() || m.IsStatic() {
				continue
			}
			mt, perr := classfile.ParseMethodDescriptor(m.Descriptor)
			if perr == nil && len(mt.Params) == 1 && mt.Result == "V" {
				return info.Name, m, true, nil
			}
		}
	}
	if err != nil && !errors.Is(err, ErrNotFound) {
		return "", Member{}, false, err
	}
	return "", Member{}, false, nil
}

// FindMethod looks up a method on class or its superclasses.
func FindMethod(r Resolver, class, name, desc string) (string, Member, bool, error) {
	chain, err := Supers(r, class)
	for _, info := range chain {
		if m, ok := info.Method(name, desc); ok {
			return info.Name, m, true, nil
		}
	}
	if err != nil && !errors.Is(err, ErrNotFound) {
		return "", Member{}, false, err
	}
	return "", Member{}, false, nil
}

// Sizes returns the default minimum and preferred sizes of a component
// class, taking each from the nearest class in the chain that declares it.
func Sizes(r Resolver, class string) (minimum, preferred form.Dimension) {
	chain, _ := Supers(r, class)
	var haveMin, havePref bool
	for _, info := range chain {
		if !haveMin && info.MinimumSize != (form.Dimension{}) {
			minimum, haveMin = info.MinimumSize, true
		}
		if !havePref && info.PreferredSize != (form.Dimension{}) {
			preferred, havePref = info.PreferredSize, true
		}
	}
	return minimum, preferred
}

// FromClassFile extracts the ClassInfo of a parsed class file.
func FromClassFile(f *classfile.File) (*ClassInfo, error) {
	name, err := f.Name()
	if err != nil {
		return nil, err
	}
	super, err := f.SuperName()
	if err != nil {
		return nil, err
	}
	info := &ClassInfo{
		Name:      classfile.DottedName(name),
		Super:     classfile.DottedName(super),
		Interface: f.Access&classfile.AccInterface != 0,
		Abstract:  f.Access&classfile.AccAbstract != 0,
	}
	for _, i := range f.Interfaces {
		iname, err := f.Pool.ClassName(i)
		if err != nil {
			return nil, err
		}
		info.Interfaces = append(info.Interfaces, classfile.DottedName(iname))
	}
	members := func(in []*classfile.Member) ([]Member, error) {
		var out []Member
		for _, m := range in {
			n, d, err := f.MemberInfo(m)
			if err != nil {
				return nil, err
			}
			out = append(out, Member{Name: n, Descriptor: d, Access: m.Access})
		}
		return out, nil
	}
	if info.Fields, err = members(f.Fields); err != nil {
		return nil, err
	}
	if info.Methods, err = members(f.Methods); err != nil {
		return nil, err
	}
	if m, ok := info.Method(classfile.ConstructorName, "()V"); ok && m.IsPublic() {
		info.PublicNoArgConstructor = true
	}
	return info, nil
}
