package device

import (
	"unsafe"

	"github.com/pkg/errors"
)

type hostBuffer struct {
	data []float32
}

func (b *hostBuffer) Len() int { return len(b.data) }

func (b *hostBuffer) Ptr() unsafe.Pointer {
	if len(b.data) == 0 {
		return nil
	}
	return unsafe.Pointer(&b.data[0])
}

// Host keeps "device" buffers in Go memory. It backs host-side generators
// and tests.
type Host struct{}

func NewHost() *Host { return &Host{} }

func (h *Host) Name() string { return "host" }

func (h *Host) Malloc(n int) (Buffer, error) {
	if n <= 0 {
		return nil, &Error{Op: "host malloc", Code: 1, Msg: "invalid size"}
	}
	return &hostBuffer{data: make([]float32, n)}, nil
}

func (h *Host) Free(b Buffer) error {
	hb, ok := b.(*hostBuffer)
	if !ok {
		return errors.Errorf("host free: foreign buffer %T", b)
	}
	hb.data = nil
	return nil
}

func (h *Host) Synchronize() error { return nil }

func (h *Host) CopyToHost(dst []float32, src Buffer) error {
	hb, ok := src.(*hostBuffer)
	if !ok {
		return errors.Errorf("host copy: foreign buffer %T", src)
	}
	if len(dst) != len(hb.data) {
		return &Error{Op: "host copy", Code: 1, Msg: "length mismatch"}
	}
	copy(dst, hb.data)
	return nil
}

// HostSlice exposes the memory behind a buffer from Host, or nil for any
// other buffer.
func HostSlice(b Buffer) []float32 {
	if hb, ok := b.(*hostBuffer); ok {
		return hb.data
	}
	return nil
}
