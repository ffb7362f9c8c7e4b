package crush

import (
	"github.com/pkg/errors"
)

const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = -1
)

type exitCoder interface {
	ExitCode() int
}

// ExitCode maps err to a process exit status. Library failures exit with
// their own status code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var ec exitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	return ExitFailure
}

// LibraryCode returns the HIP or rocRAND status behind err, if any.
func LibraryCode(err error) (int, bool) {
	var le *LibraryError
	if errors.As(err, &le) {
		return le.Code, true
	}
	return 0, false
}

// LibraryError is a failed HIP or rocRAND call.
type LibraryError struct {
	Component string
	Op        string
	Code      int
	Err       error
}

func (e *LibraryError) Error() string {
	return e.Component + " " + e.Op + ": " + e.Err.Error()
}

func (e *LibraryError) Unwrap() error { return e.Err }

func (e *LibraryError) ExitCode() int { return e.Code }
