//go:build rocm

package device

/*
#cgo CFLAGS: -I/opt/rocm/include -D__HIP_PLATFORM_AMD__
#cgo LDFLAGS: -L/opt/rocm/lib -lamdhip64
#include <hip/hip_runtime_api.h>
*/
import "C"
import (
	"unsafe"

	"github.com/pkg/errors"
)

type hipBuffer struct {
	ptr unsafe.Pointer
	n   int
}

func (b *hipBuffer) Len() int            { return b.n }
func (b *hipBuffer) Ptr() unsafe.Pointer { return b.ptr }

// HIP allocates on the current HIP device.
type HIP struct {
	ordinal int
}

func NewHIP() (*HIP, error) {
	var count C.int
	if err := check("hipGetDeviceCount", C.hipGetDeviceCount(&count)); err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, errors.New("no HIP devices visible")
	}

	var ordinal C.int
	if err := check("hipGetDevice", C.hipGetDevice(&ordinal)); err != nil {
		return nil, err
	}
	return &HIP{ordinal: int(ordinal)}, nil
}

func (d *HIP) Name() string { return "hip" }

func (d *HIP) Malloc(n int) (Buffer, error) {
	var p unsafe.Pointer
	if err := check("hipMalloc", C.hipMalloc(&p, C.size_t(Bytes(n)))); err != nil {
		return nil, err
	}
	return &hipBuffer{ptr: p, n: n}, nil
}

func (d *HIP) Free(b Buffer) error {
	hb, ok := b.(*hipBuffer)
	if !ok {
		return errors.Errorf("hipFree: foreign buffer %T", b)
	}
	if err := check("hipFree", C.hipFree(hb.ptr)); err != nil {
		return err
	}
	hb.ptr = nil
	return nil
}

func (d *HIP) Synchronize() error {
	return check("hipDeviceSynchronize", C.hipDeviceSynchronize())
}

func (d *HIP) CopyToHost(dst []float32, src Buffer) error {
	if len(dst) != src.Len() {
		return &Error{Op: "hipMemcpy", Code: int(C.hipErrorInvalidValue), Msg: "length mismatch"}
	}
	return check("hipMemcpy", C.hipMemcpy(
		unsafe.Pointer(&dst[0]),
		src.Ptr(),
		C.size_t(Bytes(len(dst))),
		C.hipMemcpyDeviceToHost,
	))
}

func check(op string, e C.hipError_t) error {
	if e == C.hipSuccess {
		return nil
	}
	return &Error{Op: op, Code: int(e), Msg: C.GoString(C.hipGetErrorString(e))}
}
