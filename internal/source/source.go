// Package source reads the code file handed to the playground.
package source

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"
)

// ErrNotText is returned for files whose content is not valid UTF-8.
var ErrNotText = errors.New("file content is not valid UTF-8 text")

// FileError wraps any failure to read the code file.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("failed to open given file %s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// Read returns the full contents of path as text.
func Read(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", &FileError{Path: path, Err: err}
	}
	if info.IsDir() {
		return "", &FileError{Path: path, Err: fmt.Errorf("is a directory")}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", &FileError{Path: path, Err: err}
	}
	if !utf8.Valid(data) {
		return "", &FileError{Path: path, Err: ErrNotText}
	}
	return string(data), nil
}
