package config

import (
	"io"
	"os"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lost-woods/crush/src/crush"
)

type Options struct {
	Size       int    `long:"size" description:"number of values" default:"134217728"`
	Engine     string `long:"engine" description:"random number engine {philox, all}" default:"philox"`
	Output     string `long:"output" env:"CRUSH_OUTPUT" description:"file the generated values are written to" default:"rocrand_generate.txt"`
	Backend    string `long:"backend" env:"CRUSH_BACKEND" description:"where the generator runs {hip, host}" default:"hip"`
	Seed       string `long:"seed" env:"CRUSH_SEED" description:"generator seed: decimal value, or 'serial' for the hardware TRNG (default: library default)"`
	Offset     uint64 `long:"offset" env:"CRUSH_OFFSET" description:"generator stream offset" default:"0"`
	StatusAddr string `long:"status-addr" env:"CRUSH_STATUS_ADDR" description:"serve /health and /metrics on this address while running"`
	LogLevel   string `long:"loglevel" env:"CRUSH_LOG_LEVEL" description:"log level {debug, info, warn, error}" default:"info"`
}

// ErrHelp is returned after usage has been written.
var ErrHelp = errors.New("help requested")

// LoadEnv reads an optional .env file into the process environment.
// Variables already set win.
func LoadEnv(paths ...string) error {
	err := godotenv.Load(paths...)
	if err == nil || os.IsNotExist(err) {
		return nil
	}
	return err
}

// Parse parses args (without the program name). Usage goes to stdout on
// --help and ErrHelp is returned.
func Parse(args []string, stdout io.Writer) (*Options, error) {
	opts := &Options{}
	parser := flags.NewParser(opts, flags.HelpFlag)
	parser.Name = "crush"
	parser.Usage = "[OPTIONS]"

	rest, err := parser.ParseArgs(args)
	if err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			io.WriteString(stdout, ferr.Message+"\n")
			return nil, ErrHelp
		}
		return nil, err
	}
	if len(rest) > 0 {
		return nil, errors.Errorf("unexpected arguments: %s", strings.Join(rest, " "))
	}
	return opts, nil
}

// Validate checks the options that must fail before any library call.
func (o *Options) Validate() ([]crush.Engine, error) {
	engines, err := crush.SelectEngines(o.Engine)
	if err != nil {
		return nil, err
	}
	if o.Size <= 0 {
		return nil, &crush.InvalidSizeError{Size: o.Size}
	}
	switch o.Backend {
	case crush.BackendHIP, crush.BackendHost:
	default:
		return nil, &crush.UnknownBackendError{Name: o.Backend}
	}
	if _, err := o.Level(); err != nil {
		return nil, err
	}
	return engines, nil
}

func (o *Options) Level() (zapcore.Level, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(o.LogLevel))); err != nil {
		return lvl, errors.Wrapf(err, "invalid loglevel %q", o.LogLevel)
	}
	return lvl, nil
}

// Logger builds the production zap logger at the configured level.
func (o *Options) Logger() (*zap.SugaredLogger, error) {
	lvl, err := o.Level()
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return l.Sugar(), nil
}
