// Package output handles file naming and writing for dwlg outputs.
// Splits are written to <dir>/<split>.jsonl, one record per line.
// Rendered lessons are written to <dir>/lesson-<id><ext>.
package output

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Writer writes output files below a directory.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	// Ensure the output directory exists.
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// WriteLesson writes a rendered lesson and returns the file path.
func (w *Writer) WriteLesson(id string, data []byte, ext string) (string, error) {
	path := filepath.Join(w.OutputDir, "lesson-"+sanitize(id)+ext)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// SplitPath returns the file a split is written to.
func (w *Writer) SplitPath(split string) string {
	return filepath.Join(w.OutputDir, sanitize(split)+".jsonl")
}

// CreateSplit truncates the split file and opens it for writing. The split
// name is also stored in every record, so names that would need rewriting
// to form a file name are rejected.
func (w *Writer) CreateSplit(split string) (*SplitFile, error) {
	if sanitize(split) != split {
		return nil, fmt.Errorf("invalid split name %q", split)
	}
	path := w.SplitPath(split)
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating split file: %w", err)
	}
	return &SplitFile{Path: path, f: f, buf: bufio.NewWriter(f)}, nil
}

// SplitFile is an open JSON-lines file.
type SplitFile struct {
	Path  string
	Lines int

	f   *os.File
	buf *bufio.Writer
}

// WriteLine appends line followed by a newline.
func (s *SplitFile) WriteLine(line []byte) error {
	if _, err := s.buf.Write(line); err != nil {
		return fmt.Errorf("writing %s: %w", s.Path, err)
	}
	if err := s.buf.WriteByte('\n'); err != nil {
		return fmt.Errorf("writing %s: %w", s.Path, err)
	}
	s.Lines++
	return nil
}

// Close flushes buffered lines and closes the file. It is safe to call
// more than once.
func (s *SplitFile) Close() error {
	if s.f == nil {
		return nil
	}
	flushErr := s.buf.Flush()
	closeErr := s.f.Close()
	s.f = nil
	if flushErr != nil {
		return fmt.Errorf("flushing %s: %w", s.Path, flushErr)
	}
	return closeErr
}

// sanitize replaces characters that could escape the output directory.
func sanitize(s string) string {
	var b strings.Builder
	for _, ch := range s {
		if ch == '/' || ch == '\\' || ch == 0 {
			b.WriteRune('_')
		} else {
			b.WriteRune(ch)
		}
	}
	out := b.String()
	if out == "" || out == "." || out == ".." {
		return "_" + out
	}
	return out
}
