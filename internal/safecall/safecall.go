// Package safecall runs a function with a fallback and guaranteed cleanup.
package safecall

import "fmt"

// PanicError carries a value recovered from a panicking try function.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Run calls try. If try returns an error or panics, catch receives the error
// and its result is returned instead. finally always runs last, after catch.
// Nil functions behave as no-ops returning the zero value.
func Run[T any](try func() (T, error), catch func(error) T, finally func()) (result T) {
	if finally != nil {
		defer finally()
	}

	var err error
	result, err = protect(try)
	if err != nil {
		var zero T
		result = zero
		if catch != nil {
			result = catch(err)
		}
	}
	return result
}

func protect[T any](try func() (T, error)) (result T, err error) {
	if try == nil {
		return result, nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r}
		}
	}()
	return try()
}
