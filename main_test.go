package main

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lost-woods/crush/src/battery"
	"github.com/lost-woods/crush/src/crush"
	"github.com/lost-woods/crush/src/device"
	"github.com/lost-woods/crush/src/rocrand"
)

type stepGenerator struct {
	fail error
}

func (g *stepGenerator) SetSeed(uint64) error   { return nil }
func (g *stepGenerator) SetOffset(uint64) error { return nil }
func (g *stepGenerator) Destroy() error         { return nil }

func (g *stepGenerator) GenerateUniform(dst device.Buffer, n int) error {
	if g.fail != nil {
		return g.fail
	}
	out := device.HostSlice(dst)
	for i := 0; i < n; i++ {
		out[i] = float32(i%1000) / 1000
	}
	return nil
}

type countingBattery struct {
	runs int
}

func (b *countingBattery) Name() string { return "FakeCrush" }

func (b *countingBattery) RunFile(path string) (*battery.Report, error) {
	b.runs++
	return &battery.Report{Battery: "FakeCrush"}, nil
}

// withFakes swaps the library backends for in-memory ones and points the
// output file into a temp dir.
func withFakes(t *testing.T, gen *stepGenerator) (string, *countingBattery) {
	t.Helper()
	out := filepath.Join(t.TempDir(), "samples.txt")
	t.Setenv("CRUSH_OUTPUT", out)
	t.Setenv("CRUSH_STATUS_ADDR", "")
	t.Setenv("CRUSH_LOG_LEVEL", "error")

	bat := &countingBattery{}
	prevBackend, prevBattery := openBackend, newBattery
	openBackend = func(string) (*crush.Backend, error) {
		return &crush.Backend{
			Device:       device.NewHost(),
			NewGenerator: func(rocrand.RNGType) (rocrand.Generator, error) { return gen, nil },
		}, nil
	}
	newBattery = func() (battery.Battery, error) { return bat, nil }
	t.Cleanup(func() { openBackend, newBattery = prevBackend, prevBattery })
	return out, bat
}

func TestRun_Help(t *testing.T) {
	out, bat := withFakes(t, &stepGenerator{})
	var stdout, stderr bytes.Buffer

	code := run([]string{"--help"}, &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "--size")
	assert.Empty(t, stderr.String())
	assert.NoFileExists(t, out)
	assert.Zero(t, bat.runs)
}

func TestRun_UnknownEngine(t *testing.T) {
	out, bat := withFakes(t, &stepGenerator{})
	var stdout, stderr bytes.Buffer

	code := run([]string{"--engine", "xorwow", "--size", "10"}, &stdout, &stderr)

	assert.Equal(t, -1, code)
	assert.Equal(t, "Error: unknown random number engine 'xorwow'\n", stderr.String())
	assert.Empty(t, stdout.String())
	assert.NoFileExists(t, out)
	assert.Zero(t, bat.runs)
}

func TestRun_WritesSamplesAndRunsBattery(t *testing.T) {
	for _, engine := range []string{"philox", "all"} {
		t.Run(engine, func(t *testing.T) {
			out, bat := withFakes(t, &stepGenerator{})
			var stdout, stderr bytes.Buffer

			code := run([]string{"--engine", engine, "--size", "2500", "--backend", "host"}, &stdout, &stderr)

			require.Equal(t, 0, code, stderr.String())
			assert.Equal(t, "philox4x32_10:\n", stdout.String())
			assert.Equal(t, 1, bat.runs)

			f, err := os.Open(out)
			require.NoError(t, err)
			defer f.Close()
			lines := 0
			sc := bufio.NewScanner(f)
			for sc.Scan() {
				v, err := strconv.ParseFloat(sc.Text(), 32)
				require.NoError(t, err)
				assert.True(t, v >= 0 && v < 1)
				lines++
			}
			assert.Equal(t, 2500, lines)
		})
	}
}

func TestRun_LibraryFailurePrintsCode(t *testing.T) {
	out, bat := withFakes(t, &stepGenerator{fail: rocrand.StatusLaunchFailure})
	var stdout, stderr bytes.Buffer

	code := run([]string{"--size", "100"}, &stdout, &stderr)

	assert.Equal(t, 107, code)
	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	assert.Equal(t, []string{"philox4x32_10:", "107"}, lines)
	assert.NoFileExists(t, out)
	assert.Zero(t, bat.runs)
}

func TestRun_InvalidSize(t *testing.T) {
	out, _ := withFakes(t, &stepGenerator{})
	var stdout, stderr bytes.Buffer

	code := run([]string{"--size=0"}, &stdout, &stderr)

	assert.Equal(t, -1, code)
	assert.Contains(t, stderr.String(), "size must be positive")
	assert.NoFileExists(t, out)
}

func TestRun_BadFlag(t *testing.T) {
	withFakes(t, &stepGenerator{})
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 1, run([]string{"--size", "many"}, &stdout, &stderr))
	assert.NotEmpty(t, stderr.String())
}
