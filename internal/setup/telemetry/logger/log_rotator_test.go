package logger_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/robalyx/modlog/internal/setup/telemetry/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRingBuffer(t *testing.T) {
	t.Parallel()

	rb := logger.NewRingBuffer(3)
	assert.Nil(t, rb.Lines())

	rb.Add("a")
	rb.Add("b")
	assert.Equal(t, []string{"a", "b"}, rb.Lines())

	rb.Add("c")
	rb.Add("d")
	rb.Add("e")
	assert.Equal(t, []string{"c", "d", "e"}, rb.Lines())
	assert.Equal(t, 3, rb.Len())
	assert.Equal(t, 3, rb.Cap())
}

func TestRingBufferMinimumCapacity(t *testing.T) {
	t.Parallel()

	rb := logger.NewRingBuffer(0)
	rb.Add("a")
	rb.Add("b")
	assert.Equal(t, []string{"b"}, rb.Lines())
}

func TestLogRotatorCapsLines(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "modlog.log")

	w, err := logger.Open(path, 5)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	for i := range 12 {
		_, err := fmt.Fprintf(w, "line %d\n", i)
		require.NoError(t, err)
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	assert.LessOrEqual(t, len(lines), 10)
	assert.Equal(t, "line 11", lines[len(lines)-1])
	assert.NotContains(t, lines, "line 0")
}

func TestLogRotatorMultiLineWrite(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "modlog.log")

	w, err := logger.Open(path, 100)
	require.NoError(t, err)

	n, err := w.Write([]byte("one\ntwo\n\nthree\n"))
	require.NoError(t, err)
	assert.Equal(t, 16, n)
	require.NoError(t, w.Sync())
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n\nthree\n", string(data))
}

func TestOpenFailsForMissingDirectory(t *testing.T) {
	t.Parallel()

	_, err := logger.Open(filepath.Join(t.TempDir(), "missing", "modlog.log"), 10)
	require.Error(t, err)
}

func TestLogRotatorKeepsWritingAfterFailedCompaction(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "modlog.log")

	w, err := logger.Open(path, 3)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	for i := range 5 {
		_, err := fmt.Fprintf(w, "line %d\n", i)
		require.NoError(t, err)
	}

	// A directory in place of the log file makes the rename fail
	require.NoError(t, os.Remove(path))
	require.NoError(t, os.Mkdir(path, 0o755))

	_, err = fmt.Fprintln(w, "line 5")
	require.Error(t, err)

	_, err = fmt.Fprintln(w, "line 6")
	require.NoError(t, err)
	require.NoError(t, w.Sync())

	require.NoError(t, os.RemoveAll(path))

	for i := 7; i <= 8; i++ {
		_, err := fmt.Fprintf(w, "line %d\n", i)
		require.NoError(t, err)
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "line 6\nline 7\nline 8\n", string(data))
}
