package perror

import "fmt"

// Error is the error type used for internal faults of the prediction library.
type Error struct {
	Err string
}

// New creates an Error from the given format and arguments.
func New(format string, args ...interface{}) *Error {
	return &Error{Err: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return e.Err
}
