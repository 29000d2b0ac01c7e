package formc

import (
	"io"

	"github.com/grindlemire/go-formc/internal/form"
	"github.com/grindlemire/go-formc/internal/formgen"
	"github.com/grindlemire/go-formc/internal/typeinfo"
)

type (
	Form        = form.Form
	Component   = form.Component
	Property    = form.Property
	ButtonGroup = form.ButtonGroup

	Resolver  = typeinfo.Resolver
	ClassInfo = typeinfo.ClassInfo
	Classpath = typeinfo.Classpath

	Result      = formgen.Result
	Error       = formgen.Error
	Kind        = formgen.Kind
	Warning     = formgen.Warning
	WarningKind = formgen.WarningKind
	Option      = formgen.Option
)

// Error kinds.
const (
	KindMultipleRoots          = formgen.KindMultipleRoots
	KindUnsupportedLayout      = formgen.KindUnsupportedLayout
	KindClassNotFound          = formgen.KindClassNotFound
	KindMissingTabTitle        = formgen.KindMissingTabTitle
	KindInvalidColorDescriptor = formgen.KindInvalidColorDescriptor
	KindUnknownField           = formgen.KindUnknownField
	KindStaticField            = formgen.KindStaticField
	KindFinalField             = formgen.KindFinalField
	KindPrimitiveField         = formgen.KindPrimitiveField
	KindTypeMismatch           = formgen.KindTypeMismatch
	KindMalformedClass         = formgen.KindMalformedClass
	KindNotInstantiable        = formgen.KindNotInstantiable
	KindInvalidConstraint      = formgen.KindInvalidConstraint
	KindInvalidFormSpec        = formgen.KindInvalidFormSpec
	KindInvalidProperty        = formgen.KindInvalidProperty
	KindUnknownComponent       = formgen.KindUnknownComponent
	KindMissingMethod          = formgen.KindMissingMethod
	KindCodeTooLarge           = formgen.KindCodeTooLarge
	KindInvalidOption          = formgen.KindInvalidOption

	WarningNoBinding = formgen.WarningNoBinding
)

// Sentinels for errors.Is. Any *Error of the same kind matches.
var (
	ErrMultipleRoots          = formgen.ErrMultipleRoots
	ErrUnsupportedLayout      = formgen.ErrUnsupportedLayout
	ErrClassNotFound          = formgen.ErrClassNotFound
	ErrMissingTabTitle        = formgen.ErrMissingTabTitle
	ErrInvalidColorDescriptor = formgen.ErrInvalidColorDescriptor
	ErrUnknownField           = formgen.ErrUnknownField
	ErrStaticField            = formgen.ErrStaticField
	ErrFinalField             = formgen.ErrFinalField
	ErrPrimitiveField         = formgen.ErrPrimitiveField
	ErrTypeMismatch           = formgen.ErrTypeMismatch
	ErrMalformedClass         = formgen.ErrMalformedClass
	ErrNotInstantiable        = formgen.ErrNotInstantiable
	ErrInvalidConstraint      = formgen.ErrInvalidConstraint
	ErrInvalidFormSpec        = formgen.ErrInvalidFormSpec
	ErrInvalidProperty        = formgen.ErrInvalidProperty
	ErrUnknownComponent       = formgen.ErrUnknownComponent
	ErrMissingMethod          = formgen.ErrMissingMethod
	ErrCodeTooLarge           = formgen.ErrCodeTooLarge
	ErrInvalidOption          = formgen.ErrInvalidOption
)

const (
	DefaultSetupMethodName = formgen.DefaultSetupMethodName
	DefaultRootGetterName  = formgen.DefaultRootGetterName
)

// Options.
var (
	WithSetupMethodName = formgen.WithSetupMethodName
	WithRootGetter      = formgen.WithRootGetter
	WithRootGetterName  = formgen.WithRootGetterName
)

// Compile patches classBytes with the setup method built from f. A nil
// resolver uses the built-in Swing table.
func Compile(classBytes []byte, f *Form, r Resolver, opts ...Option) (*Result, error) {
	return formgen.Compile(classBytes, f, r, opts...)
}

// LoadForm reads a YAML form description.
func LoadForm(r io.Reader) (*Form, error) { return form.Load(r) }

// LoadFormFile reads a YAML form description from path.
func LoadFormFile(path string) (*Form, error) { return form.LoadFile(path) }

// Swing returns the built-in resolver for common java.awt and javax.swing
// classes.
func Swing() Resolver { return typeinfo.Swing() }

// NewClasspath returns a caching resolver over directories and jar files.
func NewClasspath(entries []string) (*Classpath, error) {
	return typeinfo.NewClasspath(entries, typeinfo.DefaultCacheSize)
}

// LoadTypeHints reads class descriptions for classes that are neither built
// in nor on a class path.
func LoadTypeHints(path string) (Resolver, error) {
	t, err := typeinfo.LoadHintsFile(path)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Chain tries resolvers in order.
func Chain(rs ...Resolver) Resolver { return typeinfo.Multi(rs) }
