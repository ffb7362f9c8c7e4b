package sanity

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	// MaxSummarized bounds the prefix used for moment statistics.
	MaxSummarized = 1 << 20
	// Buckets is the histogram width for the chi-square check.
	Buckets = 256
	// MinPValue flags the chi-square check.
	MinPValue = 1e-6
)

var ErrStuck = errors.New("generator output appears stuck (all samples identical)")

type Summary struct {
	Count      int
	Summarized int
	Mean       float64
	StdDev     float64
	Min        float64
	Max        float64
	OutOfRange int
	ChiSquare  float64
	PValue     float64
}

func (s Summary) String() string {
	return fmt.Sprintf("n=%d mean=%.6f sd=%.6f min=%g max=%g out_of_range=%d chi2=%.2f p=%.4g",
		s.Count, s.Mean, s.StdDev, s.Min, s.Max, s.OutOfRange, s.ChiSquare, s.PValue)
}

// Warnings lists findings to log before the battery runs.
func (s Summary) Warnings() []string {
	var w []string
	if s.OutOfRange > 0 {
		w = append(w, fmt.Sprintf("%d samples outside [0,1)", s.OutOfRange))
	}
	if s.Count >= Buckets*5 && s.PValue < MinPValue {
		w = append(w, fmt.Sprintf("histogram far from uniform (chi2=%.2f, p=%.3g)", s.ChiSquare, s.PValue))
	}
	return w
}

// Check summarizes data. It returns ErrStuck alongside the summary when
// every sample has the same value.
func Check(data []float32) (Summary, error) {
	s := Summary{Count: len(data)}
	if len(data) == 0 {
		return s, errors.New("no samples")
	}

	prefix := data
	if len(prefix) > MaxSummarized {
		prefix = prefix[:MaxSummarized]
	}
	s.Summarized = len(prefix)

	f := make([]float64, len(prefix))
	for i, v := range prefix {
		f[i] = float64(v)
	}

	var err error
	if s.Mean, err = stats.Mean(f); err != nil {
		return s, errors.Wrap(err, "mean")
	}
	if s.StdDev, err = stats.StandardDeviation(f); err != nil {
		return s, errors.Wrap(err, "stddev")
	}
	if s.Min, err = stats.Min(f); err != nil {
		return s, errors.Wrap(err, "min")
	}
	if s.Max, err = stats.Max(f); err != nil {
		return s, errors.Wrap(err, "max")
	}

	counts := make([]int, Buckets)
	first := data[0]
	stuck := true
	for _, v := range data {
		if v != first {
			stuck = false
		}
		if math.IsNaN(float64(v)) || v < 0 || v >= 1 {
			s.OutOfRange++
			continue
		}
		counts[int(v*Buckets)]++
	}

	inRange := len(data) - s.OutOfRange
	if inRange > 0 {
		s.ChiSquare = chiSquare(counts, float64(inRange)/Buckets)
		s.PValue = distuv.ChiSquared{K: Buckets - 1}.Survival(s.ChiSquare)
	}

	if stuck && len(data) > 1 {
		return s, ErrStuck
	}
	return s, nil
}

func chiSquare(counts []int, expected float64) float64 {
	var chi float64
	for _, c := range counts {
		diff := float64(c) - expected
		chi += diff * diff / expected
	}
	return chi
}
