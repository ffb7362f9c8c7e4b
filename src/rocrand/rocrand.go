package rocrand

import (
	"fmt"

	"github.com/lost-woods/crush/src/device"
)

// RNGType mirrors rocrand_rng_type.
type RNGType int

const (
	RNGPseudoDefault       RNGType = 400
	RNGPseudoXorwow        RNGType = 401
	RNGPseudoMRG32k3a      RNGType = 402
	RNGPseudoMTGP32        RNGType = 403
	RNGPseudoPhilox4x32_10 RNGType = 404
)

// Status mirrors rocrand_status. Non-success values are returned as errors.
type Status int

const (
	StatusSuccess                 Status = 0
	StatusVersionMismatch         Status = 100
	StatusNotCreated              Status = 101
	StatusAllocationFailed        Status = 102
	StatusTypeError               Status = 103
	StatusOutOfRange              Status = 104
	StatusLengthNotMultiple       Status = 105
	StatusDoublePrecisionRequired Status = 106
	StatusLaunchFailure           Status = 107
	StatusInternalError           Status = 108
)

var statusNames = map[Status]string{
	StatusSuccess:                 "success",
	StatusVersionMismatch:         "version mismatch",
	StatusNotCreated:              "generator not created",
	StatusAllocationFailed:        "allocation failed",
	StatusTypeError:               "type error",
	StatusOutOfRange:              "argument out of range",
	StatusLengthNotMultiple:       "length not a multiple of dimension",
	StatusDoublePrecisionRequired: "double precision required",
	StatusLaunchFailure:           "kernel launch failure",
	StatusInternalError:           "internal error",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("status %d", int(s))
}

func (s Status) Error() string {
	return fmt.Sprintf("rocrand: %s (%d)", s.String(), int(s))
}

func (s Status) ExitCode() int { return int(s) }

// Generator is a rocRAND generator handle.
type Generator interface {
	SetSeed(seed uint64) error
	SetOffset(offset uint64) error
	// GenerateUniform fills the first n values of dst with uniform floats.
	GenerateUniform(dst device.Buffer, n int) error
	Destroy() error
}

// Factory creates a generator of the given type.
type Factory func(t RNGType) (Generator, error)
