package formgen

import "fmt"

// Kind classifies compile errors.
type Kind int

const (
	KindMultipleRoots Kind = iota + 1
	KindUnsupportedLayout
	KindClassNotFound
	KindMissingTabTitle
	KindInvalidColorDescriptor
	KindUnknownField
	KindStaticField
	KindFinalField
	KindPrimitiveField
	KindTypeMismatch
	KindMalformedClass
	KindNotInstantiable
	KindInvalidConstraint
	KindInvalidFormSpec
	KindInvalidProperty
	KindUnknownComponent
	KindMissingMethod
	KindCodeTooLarge
	KindInvalidOption
)

var kindNames = map[Kind]string{
	KindMultipleRoots:          "MultipleRootsError",
	KindUnsupportedLayout:      "UnsupportedLayoutError",
	KindClassNotFound:          "ClassNotFoundError",
	KindMissingTabTitle:        "MissingTabTitleError",
	KindInvalidColorDescriptor: "InvalidColorDescriptorError",
	KindUnknownField:           "UnknownFieldError",
	KindStaticField:            "StaticFieldError",
	KindFinalField:             "FinalFieldError",
	KindPrimitiveField:         "PrimitiveFieldError",
	KindTypeMismatch:           "TypeMismatchError",
	KindMalformedClass:         "MalformedClassError",
	KindNotInstantiable:        "NotInstantiableError",
	KindInvalidConstraint:      "InvalidConstraintError",
	KindInvalidFormSpec:        "InvalidFormSpecError",
	KindInvalidProperty:        "InvalidPropertyError",
	KindUnknownComponent:       "UnknownComponentError",
	KindMissingMethod:          "MissingMethodError",
	KindCodeTooLarge:           "CodeTooLargeError",
	KindInvalidOption:          "InvalidOptionError",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is a compile failure. Subject names the offending component, field,
// class or property.
type Error struct {
	Kind    Kind
	Subject string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Subject != "" {
		msg += ": " + e.Subject
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so errors.Is(err, ErrStaticField)
// works whatever the subject.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrMultipleRoots          = &Error{Kind: KindMultipleRoots}
	ErrUnsupportedLayout      = &Error{Kind: KindUnsupportedLayout}
	ErrClassNotFound          = &Error{Kind: KindClassNotFound}
	ErrMissingTabTitle        = &Error{Kind: KindMissingTabTitle}
	ErrInvalidColorDescriptor = &Error{Kind: KindInvalidColorDescriptor}
	ErrUnknownField           = &Error{Kind: KindUnknownField}
	ErrStaticField            = &Error{Kind: KindStaticField}
	ErrFinalField             = &Error{Kind: KindFinalField}
	ErrPrimitiveField         = &Error{Kind: KindPrimitiveField}
	ErrTypeMismatch           = &Error{Kind: KindTypeMismatch}
	ErrMalformedClass         = &Error{Kind: KindMalformedClass}
	ErrNotInstantiable        = &Error{Kind: KindNotInstantiable}
	ErrInvalidConstraint      = &Error{Kind: KindInvalidConstraint}
	ErrInvalidFormSpec        = &Error{Kind: KindInvalidFormSpec}
	ErrInvalidProperty        = &Error{Kind: KindInvalidProperty}
	ErrUnknownComponent       = &Error{Kind: KindUnknownComponent}
	ErrMissingMethod          = &Error{Kind: KindMissingMethod}
	ErrCodeTooLarge           = &Error{Kind: KindCodeTooLarge}
	ErrInvalidOption          = &Error{Kind: KindInvalidOption}
)

func newError(kind Kind, subject, format string, args ...any) *Error {
	return &Error{Kind: kind, Subject: subject, Message: fmt.Sprintf(format, args...)}
}

func wrapError(kind Kind, subject string, err error) *Error {
	return &Error{Kind: kind, Subject: subject, Err: err}
}

// WarningKind classifies non-fatal findings.
type WarningKind int

const (
	WarningNoBinding WarningKind = iota + 1
)

func (k WarningKind) String() string {
	if k == WarningNoBinding {
		return "NoBinding"
	}
	return fmt.Sprintf("WarningKind(%d)", int(k))
}

// Warning is a non-fatal finding collected during compilation.
type Warning struct {
	Kind    WarningKind
	Subject string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s: %s", w.Kind, w.Subject, w.Message)
}
