package storage_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Tiliavir/hubstaff-activity-report/internal/storage"
)

func TestPath(t *testing.T) {
	w := storage.NewWriter("/var/reports")
	day := time.Date(2024, 1, 1, 23, 30, 0, 0, time.UTC)
	want := filepath.Join("/var/reports", "daily_activity_2024-01-01.html")
	if got := w.Path(day); got != want {
		t.Errorf("Path = %q, want %q", got, want)
	}
}

func TestWriteCreatesDirectories(t *testing.T) {
	base := filepath.Join(t.TempDir(), "a", "b")
	w := storage.NewWriter(base)
	day := time.Date(2026, 2, 27, 0, 0, 0, 0, time.UTC)

	path, err := w.Write(day, "<h1>report</h1>")
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "<h1>report</h1>" {
		t.Errorf("content = %q", data)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind")
	}
}

func TestWriteOverwritesSameDate(t *testing.T) {
	base := t.TempDir()
	w := storage.NewWriter(base)
	day := time.Date(2026, 2, 27, 0, 0, 0, 0, time.UTC)

	if _, err := w.Write(day, "first"); err != nil {
		t.Fatal(err)
	}
	path, err := w.Write(day, "second")
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "second" {
		t.Errorf("content = %q, want %q", data, "second")
	}
	entries, err := os.ReadDir(base)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("files = %d, want 1", len(entries))
	}
}

func TestWriteFailsWhenBaseIsAFile(t *testing.T) {
	base := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(base, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	w := storage.NewWriter(base)
	if _, err := w.Write(time.Now(), "content"); err == nil {
		t.Fatal("expected error when base directory is a regular file")
	}
}
