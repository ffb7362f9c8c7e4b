package rocrand

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	assert.Equal(t, "rocrand: kernel launch failure (107)", StatusLaunchFailure.Error())
	assert.Equal(t, 107, StatusLaunchFailure.ExitCode())
	assert.Equal(t, "status 999", Status(999).String())
}

func TestPhiloxType(t *testing.T) {
	assert.Equal(t, RNGType(404), RNGPseudoPhilox4x32_10)
}
