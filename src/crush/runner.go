package crush

import (
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/lost-woods/crush/src/battery"
	"github.com/lost-woods/crush/src/device"
	"github.com/lost-woods/crush/src/metrics"
	"github.com/lost-woods/crush/src/rocrand"
	"github.com/lost-woods/crush/src/samples"
	"github.com/lost-woods/crush/src/sanity"
	"github.com/lost-woods/crush/src/seed"
	"github.com/lost-woods/crush/src/status"
)

// DefaultSize is 128 Mi samples.
const DefaultSize = 1024 * 1024 * 128

// DefaultOutput is the sample file the battery reads.
const DefaultOutput = "rocrand_generate.txt"

type Runner struct {
	Backend *Backend
	Battery battery.Battery
	Seed    seed.Source
	Offset  uint64
	Output  string
	Stdout  io.Writer
	Tracker *status.Tracker
	Log     *zap.SugaredLogger
}

// Run tests each engine in turn and stops at the first failure.
func (r *Runner) Run(size int, engines []Engine) error {
	last := ""
	for _, e := range engines {
		fmt.Fprintf(r.Stdout, "%s:\n", e.Name)
		if err := r.RunEngine(size, e); err != nil {
			if r.Tracker != nil {
				r.Tracker.Fail(err)
			}
			return err
		}
		last = e.Name
	}
	r.track(last, status.PhaseDone)
	return nil
}

// RunEngine generates size samples with e, writes them to the output file
// and runs the battery over that file.
func (r *Runner) RunEngine(size int, e Engine) error {
	if size <= 0 {
		return &InvalidSizeError{Size: size}
	}
	log := r.Log.With("engine", e.Name, "size", size, "backend", r.Backend.Device.Name())

	host, err := r.generate(size, e, log)
	if err != nil {
		return err
	}

	r.track(e.Name, status.PhaseWrite)
	if err := samples.WriteFile(r.Output, host); err != nil {
		return err
	}
	metrics.SamplesWritten.WithLabelValues(e.Name).Add(float64(len(host)))
	log.Infow("Samples written", "path", r.Output)

	r.track(e.Name, status.PhaseSanity)
	r.sanity(host, log)

	r.track(e.Name, status.PhaseBattery)
	if r.Battery == nil {
		return errors.New("no battery configured")
	}
	if size < battery.SmallCrushFileValues {
		log.Warnw("Sample file is shorter than the battery reads", "battery", r.Battery.Name(), "want", battery.SmallCrushFileValues)
	}
	report, err := r.Battery.RunFile(r.Output)
	if err != nil {
		return errors.Wrapf(err, "battery %s", r.Battery.Name())
	}
	r.record(e, report, log)
	return nil
}

func (r *Runner) generate(size int, e Engine, log *zap.SugaredLogger) (host []float32, err error) {
	dev := r.Backend.Device
	host = make([]float32, size)

	r.track(e.Name, status.PhaseAllocate)
	buf, err := dev.Malloc(size)
	if err != nil {
		return nil, libraryError(dev.Name(), "malloc", err)
	}
	metrics.RecordDeviceAlloc(device.Bytes(size))
	defer func() {
		ferr := dev.Free(buf)
		if ferr == nil {
			metrics.RecordDeviceAlloc(-device.Bytes(size))
		}
		if err == nil && ferr != nil {
			host, err = nil, libraryError(dev.Name(), "free", ferr)
		}
	}()

	gen, err := r.Backend.NewGenerator(e.Type)
	if err != nil {
		return nil, libraryError("rocrand", "create_generator", err)
	}
	defer func() {
		if derr := gen.Destroy(); derr != nil {
			log.Warnw("Destroying generator failed", "error", derr)
		}
	}()

	if err := r.configure(gen, log); err != nil {
		return nil, err
	}
	if err := dev.Synchronize(); err != nil {
		return nil, libraryError(dev.Name(), "synchronize", err)
	}

	r.track(e.Name, status.PhaseGenerate)
	start := time.Now()
	if err := gen.GenerateUniform(buf, size); err != nil {
		return nil, libraryError("rocrand", "generate_uniform", err)
	}
	if err := dev.Synchronize(); err != nil {
		return nil, libraryError(dev.Name(), "synchronize", err)
	}
	elapsed := time.Since(start)
	metrics.RecordGenerate(e.Name, elapsed)
	log.Infow("Uniform samples generated", "duration", elapsed)

	r.track(e.Name, status.PhaseCopy)
	if err := dev.CopyToHost(host, buf); err != nil {
		return nil, libraryError(dev.Name(), "memcpy", err)
	}
	if err := dev.Synchronize(); err != nil {
		return nil, libraryError(dev.Name(), "synchronize", err)
	}
	return host, nil
}

func (r *Runner) configure(gen rocrand.Generator, log *zap.SugaredLogger) error {
	if r.Seed != nil {
		v, ok, err := r.Seed.Seed()
		if err != nil {
			return errors.Wrap(err, "seed")
		}
		if ok {
			if err := gen.SetSeed(v); err != nil {
				return libraryError("rocrand", "set_seed", err)
			}
			log.Infow("Seed set", "seed", v)
		}
	}
	if r.Offset != 0 {
		if err := gen.SetOffset(r.Offset); err != nil {
			return libraryError("rocrand", "set_offset", err)
		}
		log.Infow("Offset set", "offset", r.Offset)
	}
	return nil
}

func (r *Runner) sanity(host []float32, log *zap.SugaredLogger) {
	s, err := sanity.Check(host)
	if err != nil {
		log.Warnw("Sample sanity check failed", "error", err, "summary", s.String())
		return
	}
	for _, w := range s.Warnings() {
		log.Warnw("Sample sanity warning", "warning", w)
	}
	log.Infow("Sample summary", "summary", s.String())
}

func (r *Runner) record(e Engine, report *battery.Report, log *zap.SugaredLogger) {
	for _, res := range report.Results {
		metrics.BatteryPValue.WithLabelValues(e.Name, res.Name).Set(res.PValue)
	}
	fails := report.Failures()
	metrics.BatteryFlagged.WithLabelValues(e.Name).Add(float64(len(fails)))
	if len(fails) > 0 {
		log.Warnw("Battery flagged statistics", "report", report.String())
		return
	}
	log.Infow("Battery passed", "report", report.String())
}

func (r *Runner) track(engine string, p status.Phase) {
	if r.Tracker != nil {
		r.Tracker.Set(engine, p)
	}
}

type InvalidSizeError struct {
	Size int
}

func (e *InvalidSizeError) Error() string {
	return fmt.Sprintf("size must be positive, got %d", e.Size)
}

func (e *InvalidSizeError) ExitCode() int { return ExitUsage }
