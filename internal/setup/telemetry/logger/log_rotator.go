// Package logger provides line-capped log file writers.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// LogRotator writes log output to a file and keeps the file at roughly
// maxLines lines by rewriting it with the most recent lines once it doubles.
type LogRotator struct {
	file     *os.File
	buffer   *RingBuffer
	filePath string
	mutex    sync.Mutex
}

var _ io.WriteCloser = (*LogRotator)(nil)

// Open opens or creates the log file at path.
func Open(path string, maxLines int) (*LogRotator, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file %s: %w", path, err)
	}

	return &LogRotator{
		file:     file,
		buffer:   NewRingBuffer(maxLines),
		filePath: path,
	}, nil
}

// Write implements io.Writer.
func (w *LogRotator) Write(p []byte) (int, error) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	n, err := w.file.Write(p)
	if err != nil {
		return n, err
	}

	for line := range strings.SplitSeq(strings.TrimRight(string(p), "\n"), "\n") {
		if line == "" {
			continue
		}

		w.buffer.Add(line)

		if w.buffer.overflowed() {
			// A failed compaction is retried after another full cycle
			err := w.compact()
			w.buffer.compacted()
			if err != nil {
				return n, fmt.Errorf("failed to rotate log file: %w", err)
			}
		}
	}

	return n, nil
}

// Sync flushes the file to disk.
func (w *LogRotator) Sync() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	return w.file.Sync()
}

// Close closes the underlying file.
func (w *LogRotator) Close() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	return w.file.Close()
}

// compact replaces the file with the buffered lines.
func (w *LogRotator) compact() error {
	lines := w.buffer.Lines()
	if len(lines) == 0 {
		return nil
	}

	temp, err := os.CreateTemp(filepath.Dir(w.filePath), "temp-log-")
	if err != nil {
		return err
	}

	tempPath := temp.Name()

	if _, err := temp.WriteString(strings.Join(lines, "\n") + "\n"); err != nil {
		temp.Close()
		os.Remove(tempPath)
		return err
	}

	if err := temp.Close(); err != nil {
		os.Remove(tempPath)
		return err
	}

	// The current handle stays valid until the new file is open
	if err := os.Rename(tempPath, w.filePath); err != nil {
		os.Remove(tempPath)
		return err
	}

	file, err := os.OpenFile(w.filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}

	w.file.Close()
	w.file = file

	return nil
}
