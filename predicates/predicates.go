package predicates

import (
	"github.com/pkg/errors"
)

// Must panics if err is non-nil and returns result otherwise.
func Must[T any](result T, err error) T {
	if err != nil {
		panic(err)
	}
	return result
}

// MustFunc wraps fn so that the returned function panics instead of returning
// an error.
func MustFunc[T any](fn func() (T, error)) func() T {
	return func() T {
		return Must(fn())
	}
}

// Require returns nil if cond holds. Otherwise it returns err annotated with
// the formatted message, so that errors.Is(result, err) still reports true.
func Require(cond bool, err error, format string, args ...any) error {
	if cond {
		return nil
	}
	return errors.Wrapf(err, format, args...)
}
