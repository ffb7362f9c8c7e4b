package metrics

import (
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var deviceBytes atomic.Int64

var (
	DeviceMemoryAllocated = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "crush_device_memory_allocated_bytes",
		Help: "Current bytes allocated on the device",
	})

	GenerateDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "crush_generate_duration_seconds",
		Help:    "Duration of uniform generation calls including the following synchronize",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 30.0},
	}, []string{"engine"})

	SamplesWritten = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "crush_samples_written_total",
		Help: "Total number of samples written to sample files",
	}, []string{"engine"})

	BatteryPValue = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "crush_battery_p_value",
		Help: "Last p-value reported per battery test",
	}, []string{"engine", "test"})

	BatteryFlagged = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "crush_battery_flagged_total",
		Help: "Battery statistics outside the suspect interval",
	}, []string{"engine"})

	LibraryFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "crush_library_failures_total",
		Help: "Failed runtime or generator library calls",
	}, []string{"component", "code"})
)

// RecordDeviceAlloc tracks a signed change in device memory.
func RecordDeviceAlloc(delta int64) {
	DeviceMemoryAllocated.Set(float64(deviceBytes.Add(delta)))
}

func DeviceBytes() int64 { return deviceBytes.Load() }

func RecordGenerate(engine string, d time.Duration) {
	GenerateDuration.WithLabelValues(engine).Observe(d.Seconds())
}

func RecordFailure(component string, code int) {
	LibraryFailures.WithLabelValues(component, strconv.Itoa(code)).Inc()
}
