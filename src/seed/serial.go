package seed

import (
	"io"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/tarm/serial"
)

// SerialConfigFromEnv reads the serial TRNG settings.
// Required env vars:
// - SERIAL_DEVICE_NAME (e.g. /dev/ttyACM0 or COM3)
// - SERIAL_BAUD_RATE
// - SERIAL_READ_TIMEOUT (milliseconds)
func SerialConfigFromEnv() (*serial.Config, error) {
	name := os.Getenv("SERIAL_DEVICE_NAME")
	if name == "" {
		return nil, errors.New("SERIAL_DEVICE_NAME is required")
	}

	baudStr := os.Getenv("SERIAL_BAUD_RATE")
	baud, err := strconv.Atoi(baudStr)
	if err != nil || baud <= 0 {
		return nil, errors.Errorf("invalid SERIAL_BAUD_RATE: %q", baudStr)
	}

	timeoutStr := os.Getenv("SERIAL_READ_TIMEOUT")
	timeoutMs, err := strconv.Atoi(timeoutStr)
	if err != nil || timeoutMs < 0 {
		return nil, errors.Errorf("invalid SERIAL_READ_TIMEOUT: %q", timeoutStr)
	}

	return &serial.Config{
		Name:        name,
		Baud:        baud,
		Size:        8,
		ReadTimeout: time.Duration(timeoutMs) * time.Millisecond,
	}, nil
}

// OpenSerialFromEnv opens the serial TRNG described by the environment.
func OpenSerialFromEnv() (io.ReadCloser, error) {
	cfg, err := SerialConfigFromEnv()
	if err != nil {
		return nil, err
	}
	p, err := serial.OpenPort(cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", cfg.Name)
	}
	return p, nil
}
