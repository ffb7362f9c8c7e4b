//go:build !testu01

package battery

import "github.com/pkg/errors"

var ErrUnavailable = errors.New("TestU01 not available in this build (rebuild with -tags testu01)")

func NewSmallCrush() (Battery, error) { return nil, ErrUnavailable }
