package note

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// ErrAlreadyExists is returned when a create or rename would overwrite an
// existing path.
var ErrAlreadyExists = errors.New("already exists")

// ErrEmptyName is returned when a user-supplied name sanitizes to nothing.
var ErrEmptyName = errors.New("empty name")

// Create makes a new, empty document under dir from a user-supplied name.
// Whitespace becomes underscores, the document extension is guaranteed, and
// intermediate folders implied by a path-like name are created. An existing
// path is never overwritten.
func Create(dir, name string) (string, error) {
	safe := sanitizeName(name)
	if safe == "" {
		return "", ErrEmptyName
	}
	if !strings.HasSuffix(safe, Extension) {
		safe += Extension
	}

	path := filepath.Join(dir, filepath.FromSlash(safe))
	if _, err := os.Lstat(path); err == nil {
		return "", fmt.Errorf("note %q: %w", safe, ErrAlreadyExists)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path, nil
}

// CreateFolder makes a new directory under dir.
func CreateFolder(dir, name string) (string, error) {
	safe := sanitizeName(name)
	if safe == "" {
		return "", ErrEmptyName
	}

	path := filepath.Join(dir, filepath.FromSlash(safe))
	if _, err := os.Lstat(path); err == nil {
		return "", fmt.Errorf("folder %q: %w", safe, ErrAlreadyExists)
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return "", err
	}
	return path, nil
}

// Rename moves oldPath to a new name resolved against its parent folder.
// The name may contain separators and ".." to traverse upward. Documents
// keep the document extension; folder renames skip it. Refuses to
// overwrite.
func Rename(oldPath, newName string, isDir bool) (string, error) {
	safe := sanitizeName(newName)
	if safe == "" {
		return "", ErrEmptyName
	}
	if !isDir && !strings.HasSuffix(safe, Extension) {
		safe += Extension
	}

	newPath := filepath.Join(filepath.Dir(oldPath), filepath.FromSlash(safe))
	if newPath == oldPath {
		return oldPath, nil
	}
	if _, err := os.Lstat(newPath); err == nil {
		return "", fmt.Errorf("target %q: %w", safe, ErrAlreadyExists)
	}
	if err := os.MkdirAll(filepath.Dir(newPath), 0o755); err != nil {
		return "", err
	}
	if err := os.Rename(oldPath, newPath); err != nil {
		return "", err
	}
	return newPath, nil
}

// Delete removes a document, or a folder and everything beneath it.
func Delete(path string, isDir bool) error {
	if isDir {
		return os.RemoveAll(path)
	}
	return os.Remove(path)
}

// sanitizeName trims the input and replaces every whitespace rune with an
// underscore. Path separators are preserved so names can address
// subfolders.
func sanitizeName(name string) string {
	name = strings.TrimSpace(name)
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '_'
		}
		return r
	}, name)
}
