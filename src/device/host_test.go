package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHost_AllocCopyFree(t *testing.T) {
	h := NewHost()
	buf, err := h.Malloc(8)
	require.NoError(t, err)
	assert.Equal(t, 8, buf.Len())
	assert.NotNil(t, buf.Ptr())

	src := HostSlice(buf)
	for i := range src {
		src[i] = float32(i) / 8
	}
	require.NoError(t, h.Synchronize())

	dst := make([]float32, 8)
	require.NoError(t, h.CopyToHost(dst, buf))
	assert.Equal(t, src, dst)

	require.NoError(t, h.Free(buf))
	assert.Equal(t, 0, buf.Len())
}

func TestHost_Errors(t *testing.T) {
	h := NewHost()
	_, err := h.Malloc(0)
	require.Error(t, err)
	var de *Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, 1, de.ExitCode())

	buf, err := h.Malloc(4)
	require.NoError(t, err)
	assert.Error(t, h.CopyToHost(make([]float32, 3), buf))
}

func TestError_Message(t *testing.T) {
	assert.Equal(t, "hipMalloc failed with code 2", (&Error{Op: "hipMalloc", Code: 2}).Error())
	assert.Equal(t, "hipMemcpy failed with code 1: invalid argument",
		(&Error{Op: "hipMemcpy", Code: 1, Msg: "invalid argument"}).Error())
	assert.Equal(t, int64(512), Bytes(128))
}
