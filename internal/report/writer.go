package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/gofrs/flock"
)

// Destination describes where a rendered report goes. At most one of File and
// Clipboard should be set; with neither, the report goes to Stdout.
type Destination struct {
	File      string
	Clipboard bool
	Stdout    io.Writer
}

// clipboardWrite is swapped out in tests.
var clipboardWrite = clipboard.WriteAll

// Deliver sends data to the destination.
func Deliver(data []byte, dest Destination) error {
	switch {
	case dest.File != "":
		return LockAndWrite(dest.File, data)
	case dest.Clipboard:
		if err := clipboardWrite(string(data)); err != nil {
			return fmt.Errorf("failed to copy report to clipboard: %w", err)
		}
		return nil
	default:
		out := dest.Stdout
		if out == nil {
			out = os.Stdout
		}
		if _, err := out.Write(data); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		return nil
	}
}

// LockAndWrite holds an exclusive lock on "<path>.lock" while atomically replacing
// path with data, so concurrent searches writing the same report never interleave.
func LockAndWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	lockPath := path + ".lock"
	lock := flock.New(lockPath)
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire lock on %s: %w", lockPath, err)
	}
	defer lock.Unlock()

	return atomicWrite(path, data)
}

// atomicWrite writes data to a temp file in the target directory and renames it over
// path. Readers see either the old report or the new one.
func atomicWrite(path string, data []byte) error {
	tempFile, err := os.CreateTemp(filepath.Dir(path), ".tmp-report-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	committed := false
	defer func() {
		if !committed {
			tempFile.Close()
			os.Remove(tempPath)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tempFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tempPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", path, err)
	}

	committed = true
	return nil
}
