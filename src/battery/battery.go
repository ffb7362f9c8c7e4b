package battery

import (
	"fmt"
	"strings"
)

// SuspectP is TestU01's default threshold: a p-value outside
// [SuspectP, 1-SuspectP] is reported as a failure.
const SuspectP = 0.001

// SmallCrushFileValues is how many values SmallCrush consumes from a file.
const SmallCrushFileValues = 51_320_000

// Result is one statistic of one test.
type Result struct {
	Name   string
	PValue float64
}

func (r Result) Suspect() bool {
	return r.PValue < SuspectP || r.PValue > 1-SuspectP
}

// Report is what a battery run leaves behind.
type Report struct {
	Battery string
	Results []Result
}

func (r *Report) Failures() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Suspect() {
			out = append(out, res)
		}
	}
	return out
}

func (r *Report) Passed() bool { return len(r.Failures()) == 0 }

func (r *Report) String() string {
	fails := r.Failures()
	if len(fails) == 0 {
		return fmt.Sprintf("%s: all %d tests passed", r.Battery, len(r.Results))
	}
	names := make([]string, 0, len(fails))
	for _, f := range fails {
		names = append(names, fmt.Sprintf("%s (p=%.4g)", f.Name, f.PValue))
	}
	return fmt.Sprintf("%s: %d of %d tests outside [%g, %g]: %s",
		r.Battery, len(fails), len(r.Results), SuspectP, 1-SuspectP, strings.Join(names, ", "))
}

// Battery runs a statistical battery over a file of uniform samples,
// one per line.
type Battery interface {
	Name() string
	RunFile(path string) (*Report, error)
}
