package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/lost-woods/crush/src/battery"
	"github.com/lost-woods/crush/src/config"
	"github.com/lost-woods/crush/src/crush"
	"github.com/lost-woods/crush/src/seed"
	"github.com/lost-woods/crush/src/server"
	"github.com/lost-woods/crush/src/status"
)

var (
	openBackend = crush.OpenBackend
	newBattery  = battery.NewSmallCrush
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if err := config.LoadEnv(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return crush.ExitFailure
	}

	opts, err := config.Parse(args, stdout)
	if errors.Is(err, config.ErrHelp) {
		return crush.ExitOK
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return crush.ExitFailure
	}

	engines, err := opts.Validate()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return crush.ExitCode(err)
	}

	log, err := opts.Logger()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return crush.ExitFailure
	}
	src, err := seed.Parse(opts.Seed, log)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return crush.ExitFailure
	}

	backend, err := openBackend(opts.Backend)
	if err != nil {
		return fail(stdout, log, err)
	}
	bat, err := newBattery()
	if err != nil {
		return fail(stdout, log, err)
	}

	tracker := status.New()
	if opts.StatusAddr != "" {
		srv := server.New(opts.StatusAddr, tracker, log)
		if err := srv.Start(); err != nil {
			return fail(stdout, log, errors.Wrap(err, "status server"))
		}
		defer func() {
			if err := srv.Shutdown(5 * time.Second); err != nil {
				log.Warnw("Status server shutdown", "error", err)
			}
		}()
	}

	runner := &crush.Runner{
		Backend: backend,
		Battery: bat,
		Seed:    src,
		Offset:  opts.Offset,
		Output:  opts.Output,
		Stdout:  stdout,
		Tracker: tracker,
		Log:     log,
	}

	log.Infow("Starting crush test", "size", opts.Size, "engine", opts.Engine, "backend", opts.Backend, "output", opts.Output)
	if err := runner.Run(opts.Size, engines); err != nil {
		return fail(stdout, log, err)
	}
	return crush.ExitOK
}

// fail prints library status codes on stdout, the way the check macros of
// the C++ harnesses do, and returns the exit status for err.
func fail(stdout io.Writer, log *zap.SugaredLogger, err error) int {
	if code, ok := crush.LibraryCode(err); ok {
		fmt.Fprintln(stdout, code)
	}
	log.Errorw("Crush test failed", "error", err)
	return crush.ExitCode(err)
}
