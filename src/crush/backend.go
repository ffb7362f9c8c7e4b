package crush

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/lost-woods/crush/src/device"
	"github.com/lost-woods/crush/src/metrics"
	"github.com/lost-woods/crush/src/rocrand"
)

const (
	BackendHIP  = "hip"
	BackendHost = "host"
)

// Backend pairs a memory owner with generators that write into its buffers.
type Backend struct {
	Device       device.Device
	NewGenerator rocrand.Factory
}

type UnknownBackendError struct {
	Name string
}

func (e *UnknownBackendError) Error() string {
	return fmt.Sprintf("unknown backend '%s' (want %s or %s)", e.Name, BackendHIP, BackendHost)
}

func (e *UnknownBackendError) ExitCode() int { return ExitUsage }

func OpenBackend(name string) (*Backend, error) {
	switch name {
	case BackendHIP:
		d, err := device.NewHIP()
		if err != nil {
			return nil, libraryError(BackendHIP, "init", err)
		}
		return &Backend{Device: d, NewGenerator: rocrand.NewGenerator}, nil
	case BackendHost:
		return &Backend{Device: device.NewHost(), NewGenerator: rocrand.NewHostGenerator}, nil
	}
	return nil, &UnknownBackendError{Name: name}
}

// libraryError keeps the numeric status of HIP and rocRAND failures so it
// can become the exit code. Other errors are only wrapped.
func libraryError(component, op string, err error) error {
	if err == nil {
		return nil
	}

	var de *device.Error
	var st rocrand.Status
	code := 0
	switch {
	case errors.As(err, &de):
		code = de.Code
	case errors.As(err, &st):
		code = int(st)
	default:
		return errors.Wrapf(err, "%s %s", component, op)
	}

	metrics.RecordFailure(component, code)
	return &LibraryError{Component: component, Op: op, Code: code, Err: err}
}
