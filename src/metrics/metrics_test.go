package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordDeviceAlloc(t *testing.T) {
	base := DeviceBytes()
	RecordDeviceAlloc(4096)
	assert.Equal(t, base+4096, DeviceBytes())
	assert.Equal(t, float64(base+4096), testutil.ToFloat64(DeviceMemoryAllocated))

	RecordDeviceAlloc(-4096)
	assert.Equal(t, base, DeviceBytes())
}

func TestRecordFailure(t *testing.T) {
	c := LibraryFailures.WithLabelValues("rocrand", "107")
	before := testutil.ToFloat64(c)
	RecordFailure("rocrand", 107)
	assert.Equal(t, before+1, testutil.ToFloat64(c))
}

func TestRecordGenerate(t *testing.T) {
	RecordGenerate("test_engine", 20*time.Millisecond)
	assert.Equal(t, 1, testutil.CollectAndCount(GenerateDuration, "crush_generate_duration_seconds"))
}
