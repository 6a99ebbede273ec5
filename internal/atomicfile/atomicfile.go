package atomicfile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrTargetConflict indicates an output path cannot be used.
var ErrTargetConflict = errors.New("output path conflict")

// TargetError describes why an output path was rejected.
type TargetError struct {
	Path   string
	Reason string
}

func (e *TargetError) Error() string {
	return fmt.Sprintf("%s: %q", e.Reason, e.Path)
}

func (e *TargetError) Unwrap() error {
	return ErrTargetConflict
}

// CheckTarget verifies that path can be created: its parent directory must
// exist and nothing may exist at path yet. Nothing is written.
func CheckTarget(path string) error {
	dir := filepath.Dir(path)
	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		return &TargetError{Path: dir, Reason: "could not find the parent folder path"}
	}

	st, err = os.Stat(path)
	switch {
	case err == nil && st.IsDir():
		return &TargetError{Path: path, Reason: "output path already exists as a directory"}
	case err == nil:
		return &TargetError{Path: path, Reason: "output file already exists"}
	case !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("stat output path: %w", err)
	}
	return nil
}

// CreateNew creates path with the bytes produced by write, without ever
// replacing an existing file.
//
// Output goes to a temporary file in the same directory, which is linked into
// place once write succeeds. If write fails, path is never created. This also
// avoids torn files if the process crashes mid-write.
func CreateNew(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	tmpPath := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}()

	// Best-effort; some platforms/filesystems may not support chmod here.
	_ = tmp.Chmod(0o644)

	if err := write(tmp); err != nil {
		return err
	}

	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	// Link fails if path exists, so a file created since CheckTarget is kept.
	if err := os.Link(tmpPath, path); err != nil {
		if errors.Is(err, os.ErrExist) {
			return &TargetError{Path: path, Reason: "output file already exists"}
		}
		// Filesystems without hard links: fall back to a checked rename.
		if _, statErr := os.Lstat(path); statErr == nil {
			return &TargetError{Path: path, Reason: "output file already exists"}
		}
		if err2 := os.Rename(tmpPath, path); err2 != nil {
			return fmt.Errorf("rename temp file: %w", err2)
		}
	}

	return nil
}
