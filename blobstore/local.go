package blobstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Local is a filesystem-backed Store rooted at a directory. Writes are
// atomic: blobs are staged to a temp file and renamed into place.
type Local struct {
	root string
}

// NewLocal creates a store rooted at dir, creating the directory if needed.
func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create blob root: %w", err)
	}

	return &Local{root: dir}, nil
}

func (l *Local) path(name string) string {
	return filepath.Join(l.root, filepath.Clean("/"+name))
}

// Open implements Store.
func (l *Local) Open(_ context.Context, name string) (io.ReadCloser, error) {
	f, err := os.Open(l.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}

		return nil, err
	}

	return f, nil
}

// Put implements Store.
func (l *Local) Put(_ context.Context, name string, r io.Reader) error {
	dst := l.path(name)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".blob-*")
	if err != nil {
		return err
	}

	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())

		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())

		return err
	}

	return os.Rename(tmp.Name(), dst)
}

// Delete implements Store.
func (l *Local) Delete(_ context.Context, name string) error {
	err := os.Remove(l.path(name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	return nil
}

// List implements Store.
func (l *Local) List(_ context.Context, prefix string) ([]string, error) {
	var names []string

	err := filepath.WalkDir(l.root, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}

		rel, err := filepath.Rel(l.root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if strings.HasPrefix(rel, prefix) {
			names = append(names, rel)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(names)

	return names, nil
}
