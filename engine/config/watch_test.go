package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReportsWatchedFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "reactions.tengo")
	other := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(target, []byte(`say = "a"`), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(target)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(other, []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(target, []byte(`say = "b"`), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case name := <-w.Events:
		if name != filepath.Clean(target) {
			t.Errorf("event for %q, want %q", name, target)
		}
	case err := <-w.Errors:
		t.Fatalf("watch error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("no event for watched file")
	}
}

func TestWatcherCloseClosesChannels(t *testing.T) {
	w, err := NewWatcher(filepath.Join(t.TempDir(), "catalog.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	_ = w.Close()

	if _, ok := <-w.Events; ok {
		t.Error("Events still open after Close")
	}
	if _, ok := <-w.Errors; ok {
		t.Error("Errors still open after Close")
	}
}

func TestWatcherMissingDirectory(t *testing.T) {
	if _, err := NewWatcher(filepath.Join(t.TempDir(), "nope", "catalog.yaml")); err == nil {
		t.Error("NewWatcher() on a missing directory succeeded")
	}
}
