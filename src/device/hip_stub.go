//go:build !rocm

package device

// HIP is unavailable without the rocm build tag.
type HIP struct{}

func NewHIP() (*HIP, error) { return nil, ErrUnavailable }

func (d *HIP) Name() string                               { return "hip" }
func (d *HIP) Malloc(n int) (Buffer, error)               { return nil, ErrUnavailable }
func (d *HIP) Free(b Buffer) error                        { return ErrUnavailable }
func (d *HIP) Synchronize() error                         { return ErrUnavailable }
func (d *HIP) CopyToHost(dst []float32, src Buffer) error { return ErrUnavailable }
