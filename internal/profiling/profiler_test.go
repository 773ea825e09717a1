package profiling

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartCPU(t *testing.T) {
	p := New()
	path := filepath.Join(t.TempDir(), "cpu.prof")

	cleanup, err := p.StartCPU(path)
	require.NoError(t, err)
	cleanup()

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestStartCPU_BadPath(t *testing.T) {
	p := New()
	_, err := p.StartCPU(filepath.Join(t.TempDir(), "missing", "cpu.prof"))
	assert.Error(t, err)
}

func TestWriteHeap(t *testing.T) {
	p := New()
	path := filepath.Join(t.TempDir(), "heap.prof")

	require.NoError(t, p.WriteHeap(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestStartTrace(t *testing.T) {
	p := New()
	path := filepath.Join(t.TempDir(), "trace.out")

	cleanup, err := p.StartTrace(path)
	require.NoError(t, err)
	cleanup()

	_, err = os.Stat(path)
	assert.NoError(t, err)
}
