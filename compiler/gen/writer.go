package gen

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// Mode controls how an artifact treats an existing file.
type Mode uint8

const (
	// Overwrite replaces the file on every run.
	Overwrite Mode = iota
	// CreateOnly writes the file only if it does not exist yet, so user
	// edits survive regeneration.
	CreateOnly
)

// Artifact is one rendered output file.
type Artifact struct {
	// Path of the file.
	Path string
	// Content of the file.
	Content []byte
	// Mode of the write.
	Mode Mode
}

// WriterMetrics tracks the outcome of a generation run.
type WriterMetrics struct {
	FilesWritten int
	FilesKept    int // CreateOnly files that already existed
	TotalBytes   int64
}

// Writer writes artifacts to disk, one at a time.
type Writer struct {
	metrics WriterMetrics
}

// NewWriter returns a new Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Metrics returns the accumulated metrics.
func (w *Writer) Metrics() WriterMetrics {
	return w.metrics
}

// Prepare creates dir and its parents.
func (w *Writer) Prepare(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &FileError{Op: "mkdir", Path: dir, Cause: err}
	}
	return nil
}

// Write writes the artifact, creating its directory. It reports whether
// the file was written; a CreateOnly artifact whose file exists is kept.
func (w *Writer) Write(a *Artifact) (bool, error) {
	if err := w.Prepare(filepath.Dir(a.Path)); err != nil {
		return false, err
	}
	switch a.Mode {
	case CreateOnly:
		f, err := os.OpenFile(a.Path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			w.metrics.FilesKept++
			return false, nil
		}
		if err != nil {
			return false, &FileError{Op: "write", Path: a.Path, Cause: err}
		}
		if _, err := f.Write(a.Content); err != nil {
			f.Close()
			return false, &FileError{Op: "write", Path: a.Path, Cause: err}
		}
		if err := f.Close(); err != nil {
			return false, &FileError{Op: "write", Path: a.Path, Cause: err}
		}
	default:
		if err := os.WriteFile(a.Path, a.Content, 0o644); err != nil {
			return false, &FileError{Op: "write", Path: a.Path, Cause: err}
		}
	}
	w.metrics.FilesWritten++
	w.metrics.TotalBytes += int64(len(a.Content))
	return true, nil
}
