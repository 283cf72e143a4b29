package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Tiliavir/hubstaff-activity-report/internal/timecalc"
)

// Writer stores rendered daily reports under a base directory, one file per
// report date.
type Writer struct {
	base string
}

// NewWriter returns a Writer rooted at base. The directory is created on
// the first write.
func NewWriter(base string) *Writer {
	return &Writer{base: base}
}

// Path returns the file path of the report for the given date.
func (w *Writer) Path(day time.Time) string {
	return filepath.Join(w.base, "daily_activity_"+timecalc.FormatDate(day)+".html")
}

// Write atomically writes content as the report for day, replacing any
// earlier file for the same date. It returns the path written.
func (w *Writer) Write(day time.Time, content string) (string, error) {
	path := w.Path(day)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("storage error creating directories: %w", err)
	}

	// Atomic write: write to temp file then rename.
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("storage error writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("storage error renaming temp file: %w", err)
	}
	return path, nil
}
