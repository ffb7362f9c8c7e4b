package samples

import (
	"bufio"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// Write formats one value per line using the shortest representation that
// round-trips a float32.
func Write(w io.Writer, data []float32) error {
	bw := bufio.NewWriterSize(w, 1<<20)
	line := make([]byte, 0, 32)
	for _, v := range data {
		line = strconv.AppendFloat(line[:0], float64(v), 'g', -1, 32)
		line = append(line, '\n')
		if _, err := bw.Write(line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile truncates path and writes data to it.
func WriteFile(path string, data []float32) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	if err := Write(f, data); err != nil {
		f.Close()
		return errors.Wrapf(err, "write %s", path)
	}
	return errors.Wrapf(f.Close(), "close %s", path)
}
