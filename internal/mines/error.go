package mines

import "errors"

var ErrInvalidConfiguration = errors.New("invalid board configuration")

type AssertionError struct {
	message string
}

// [AssertionError] implements [error]
func (e AssertionError) Error() string {
	return e.message
}
