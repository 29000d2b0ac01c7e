package formgen

// Default synthetic member names.
const (
	DefaultSetupMethodName = "$$$setupUI$$$"
	DefaultRootGetterName  = "$$$getRootComponent$$$"
)

type options struct {
	setupName      string
	rootGetter     bool
	rootGetterName string
}

func defaultOptions() options {
	return options{
		setupName:      DefaultSetupMethodName,
		rootGetter:     true,
		rootGetterName: DefaultRootGetterName,
	}
}

// Option configures Compile.
type Option func(*options) error

// WithSetupMethodName sets the name of the synthesized setup method.
// Default is $$$setupUI$$$.
func WithSetupMethodName(name string) Option {
	return func(o *options) error {
		if !isJavaIdentifier(name) {
			return newError(KindInvalidOption, name, "setup method name is not a Java identifier")
		}
		o.setupName = name
		return nil
	}
}

// WithRootGetter enables or disables the synthetic getter that returns the
// bound root component. Default is enabled.
func WithRootGetter(enabled bool) Option {
	return func(o *options) error {
		o.rootGetter = enabled
		return nil
	}
}

// WithRootGetterName sets the name of the root getter.
// Default is $$$getRootComponent$$$.
func WithRootGetterName(name string) Option {
	return func(o *options) error {
		if !isJavaIdentifier(name) {
			return newError(KindInvalidOption, name, "root getter name is not a Java identifier")
		}
		o.rootGetterName = name
		return nil
	}
}

func isJavaIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
