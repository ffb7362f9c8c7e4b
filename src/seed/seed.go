package seed

import (
	"encoding/binary"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Serial selects the hardware TRNG configured through SERIAL_* env vars.
const Serial = "serial"

// Source yields the generator seed. ok is false when the library default
// should be kept.
type Source interface {
	Seed() (seed uint64, ok bool, err error)
}

type librarySource struct{}

func (librarySource) Seed() (uint64, bool, error) { return 0, false, nil }

type fixedSource uint64

func (s fixedSource) Seed() (uint64, bool, error) { return uint64(s), true, nil }

// ReaderSource draws a seed from an entropy stream after checking it.
type ReaderSource struct {
	Open func() (io.ReadCloser, error)
	Log  *zap.SugaredLogger
}

func (s *ReaderSource) Seed() (uint64, bool, error) {
	r, err := s.Open()
	if err != nil {
		return 0, false, errors.Wrap(err, "open entropy source")
	}
	defer r.Close()

	if err := HealthCheck(r); err != nil {
		return 0, false, err
	}

	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, false, errors.Wrap(err, "read seed")
	}
	v := binary.BigEndian.Uint64(buf[:])
	if s.Log != nil {
		s.Log.Infow("Seed drawn from entropy source", "seed", v)
	}
	return v, true, nil
}

// Parse maps the --seed option to a Source: "" keeps the library default,
// "serial" reads the hardware TRNG, anything else must be a decimal uint64.
func Parse(spec string, log *zap.SugaredLogger) (Source, error) {
	spec = strings.TrimSpace(spec)
	switch strings.ToLower(spec) {
	case "":
		return librarySource{}, nil
	case Serial:
		return &ReaderSource{Open: OpenSerialFromEnv, Log: log}, nil
	}

	v, err := strconv.ParseUint(spec, 10, 64)
	if err != nil {
		return nil, errors.Errorf("invalid seed %q: want a decimal integer or %q", spec, Serial)
	}
	return fixedSource(v), nil
}
