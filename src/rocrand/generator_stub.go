//go:build !rocm

package rocrand

import "github.com/pkg/errors"

// ErrUnavailable is returned when the binary was built without rocRAND.
var ErrUnavailable = errors.New("rocrand not available in this build (rebuild with -tags rocm)")

func NewGenerator(t RNGType) (Generator, error) { return nil, ErrUnavailable }

func NewHostGenerator(t RNGType) (Generator, error) { return nil, ErrUnavailable }
