package engine

import "fmt"

// attempt runs task and turns a panic into an error wrapping ErrPanic.
// Nothing raised by task escapes.
func attempt[T any](task func() (T, error)) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			result = zero
			if rerr, ok := r.(error); ok {
				err = fmt.Errorf("%w: %w", ErrPanic, rerr)
			} else {
				err = fmt.Errorf("%w: %v", ErrPanic, r)
			}
		}
	}()

	return task()
}

// attemptCallback runs task through attempt and reports the outcome to cb
func attemptCallback[T any](task func() (T, error), cb func(err error, result T)) {
	result, err := attempt(task)
	if cb == nil {
		return
	}
	cb(err, result)
}
