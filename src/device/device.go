package device

import (
	"fmt"
	"unsafe"

	"github.com/pkg/errors"
)

// ErrUnavailable is returned by backends compiled without their runtime.
var ErrUnavailable = errors.New("device runtime not available in this build")

// Buffer is a float32 allocation owned by a Device.
type Buffer interface {
	Len() int
	Ptr() unsafe.Pointer
}

// Device allocates buffers and moves their contents to host memory.
// Every call blocks; Synchronize waits for queued work on the device.
type Device interface {
	Name() string
	Malloc(n int) (Buffer, error)
	Free(b Buffer) error
	Synchronize() error
	CopyToHost(dst []float32, src Buffer) error
}

// Error is a failed runtime call. Code is the runtime's own status value.
type Error struct {
	Op   string
	Code int
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("%s failed with code %d", e.Op, e.Code)
	}
	return fmt.Sprintf("%s failed with code %d: %s", e.Op, e.Code, e.Msg)
}

func (e *Error) ExitCode() int { return e.Code }

// Bytes is the size of n float32 values.
func Bytes(n int) int64 { return int64(n) * 4 }
