package formgen

import (
	"strings"

	"github.com/grindlemire/go-formc/internal/asm"
	"github.com/grindlemire/go-formc/internal/classfile"
	"github.com/grindlemire/go-formc/internal/typeinfo"
)

// validateBinding checks that an instance of componentClass can be stored
// into the bound class field called field. Checks run in a fixed order and
// the first failure is reported.
func validateBinding(cls *boundClass, field, componentClass string) (typeinfo.Member, error) {
	fld, ok := cls.fields[field]
	switch {
	case !ok:
		return fld, newError(KindUnknownField, field, "%s declares no such field", cls.dotted)
	case fld.IsStatic():
		return fld, newError(KindStaticField, field, "cannot bind to a static field")
	case fld.IsFinal():
		return fld, newError(KindFinalField, field, "cannot bind to a final field")
	case classfile.IsPrimitive(fld.Descriptor):
		return fld, newError(KindPrimitiveField, field, "cannot bind to a field of primitive type %s", fld.Descriptor)
	}

	fieldClass := classfile.ClassOfDescriptor(fld.Descriptor)
	if strings.HasPrefix(fieldClass, "[") {
		return fld, newError(KindTypeMismatch, field, "field type %s is an array", fld.Descriptor)
	}
	if _, err := cls.resolver.Resolve(fieldClass); err != nil {
		return fld, newError(KindTypeMismatch, field, "cannot resolve field type %s: %v", fieldClass, err)
	}
	ok, err := typeinfo.IsAssignable(cls.resolver, fieldClass, componentClass)
	if err != nil {
		return fld, newError(KindTypeMismatch, field, "cannot check %s against %s: %v", componentClass, fieldClass, err)
	}
	if !ok {
		return fld, newError(KindTypeMismatch, field, "%s is not assignable to %s", componentClass, fieldClass)
	}
	return fld, nil
}

// emitBinding stores the reference in slot into this.<fld>.
func emitBinding(b *asm.Buffer, cls *boundClass, fld typeinfo.Member, slot int) {
	b.LoadThis()
	b.Load(slot)
	b.PutField(cls.name, fld.Name, fld.Descriptor)
}
