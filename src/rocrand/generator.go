//go:build rocm

package rocrand

/*
#cgo CFLAGS: -I/opt/rocm/include -D__HIP_PLATFORM_AMD__
#cgo LDFLAGS: -L/opt/rocm/lib -lrocrand -lamdhip64
#include <rocrand/rocrand.h>
*/
import "C"
import (
	"github.com/lost-woods/crush/src/device"
)

type generator struct {
	g C.rocrand_generator
}

// NewGenerator creates a generator that writes to HIP device memory.
func NewGenerator(t RNGType) (Generator, error) {
	var g C.rocrand_generator
	if err := check(C.rocrand_create_generator(&g, C.rocrand_rng_type(t))); err != nil {
		return nil, err
	}
	return &generator{g: g}, nil
}

// NewHostGenerator creates a generator that runs on the CPU and writes to
// host memory.
func NewHostGenerator(t RNGType) (Generator, error) {
	var g C.rocrand_generator
	if err := check(C.rocrand_create_generator_host(&g, C.rocrand_rng_type(t))); err != nil {
		return nil, err
	}
	return &generator{g: g}, nil
}

func (g *generator) SetSeed(seed uint64) error {
	return check(C.rocrand_set_seed(g.g, C.ulonglong(seed)))
}

func (g *generator) SetOffset(offset uint64) error {
	return check(C.rocrand_set_offset(g.g, C.ulonglong(offset)))
}

func (g *generator) GenerateUniform(dst device.Buffer, n int) error {
	if n > dst.Len() {
		return StatusOutOfRange
	}
	return check(C.rocrand_generate_uniform(g.g, (*C.float)(dst.Ptr()), C.size_t(n)))
}

func (g *generator) Destroy() error {
	if g.g == nil {
		return StatusNotCreated
	}
	err := check(C.rocrand_destroy_generator(g.g))
	g.g = nil
	return err
}

func check(s C.rocrand_status) error {
	if s == C.ROCRAND_STATUS_SUCCESS {
		return nil
	}
	return Status(s)
}
