package seed

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// HealthSampleBytes is how much the health check reads before trusting a source.
const HealthSampleBytes = 256

// HealthCheck performs a lightweight sanity check on an entropy stream.
// It cannot prove randomness, but detects disconnection/stuck output/common failures.
func HealthCheck(r io.Reader) error {
	buf := make([]byte, HealthSampleBytes)
	if _, err := io.ReadFull(r, buf); err != nil {
		return errors.Wrap(err, "entropy source read failed")
	}

	allSame := true
	for i := 1; i < len(buf); i++ {
		if buf[i] != buf[0] {
			allSame = false
			break
		}
	}
	if allSame {
		return errors.New("entropy source appears stuck (all sampled bytes identical)")
	}

	var prev uint32
	repeats, words := 0, 0
	for i := 0; i+4 <= len(buf); i += 4 {
		w := binary.BigEndian.Uint32(buf[i : i+4])
		if words > 0 && w == prev {
			repeats++
		}
		prev = w
		words++
	}
	if words > 1 && repeats > (words-1)*3/4 {
		return errors.New("entropy source appears stuck (32-bit words repeating excessively)")
	}

	distinct := make(map[byte]struct{}, 256)
	for _, b := range buf {
		distinct[b] = struct{}{}
	}
	if len(distinct) < 8 {
		return errors.Errorf("entropy sample has too few distinct byte values (%d); suspicious", len(distinct))
	}

	return nil
}
