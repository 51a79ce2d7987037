// Package filestore reads and writes files confined to one base directory.
package filestore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsafePath is returned for any name that resolves outside the root.
var ErrUnsafePath = errors.New("filestore: path escapes root")

// Store is safe for concurrent use. Concurrent writes to the same name are
// not serialized; the last writer wins at byte granularity.
type Store struct {
	root string
}

// New resolves dir to an absolute, symlink-free path. The directory must
// exist.
func New(dir string) (*Store, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("filestore: %w", err)
	}
	root, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("filestore: %w", err)
	}
	fi, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("filestore: %w", err)
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("filestore: %s is not a directory", root)
	}
	return &Store{root: root}, nil
}

func (s *Store) Root() string { return s.root }

// Resolve maps name to an absolute path strictly below the root.
//
// The lexical check runs before any filesystem call. The deepest existing
// ancestor is then resolved through symlinks and must still be below the
// root.
func (s *Store) Resolve(name string) (string, error) {
	p := filepath.Join(s.root, filepath.FromSlash(name))
	if !within(s.root, p) {
		return "", ErrUnsafePath
	}
	real, err := resolveExisting(p)
	if err != nil {
		return "", err
	}
	if !within(s.root, real) {
		return "", ErrUnsafePath
	}
	return p, nil
}

// Read returns the whole content of name.
func (s *Store) Read(name string) ([]byte, error) {
	p, err := s.Resolve(name)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("filestore: read %q: %w", name, err)
	}
	return b, nil
}

// Write replaces name with content, creating missing parent directories.
func (s *Store) Write(name string, content []byte) error {
	p, err := s.Resolve(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("filestore: write %q: %w", name, err)
	}
	if err := os.WriteFile(p, content, 0o644); err != nil {
		return fmt.Errorf("filestore: write %q: %w", name, err)
	}
	return nil
}

func within(root, p string) bool {
	prefix := root
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return p != root && strings.HasPrefix(p, prefix)
}

// resolveExisting evaluates symlinks on the longest existing prefix of p and
// re-appends the missing tail. A dangling symlink is refused: writing
// through it would create its target wherever it points.
func resolveExisting(p string) (string, error) {
	cur, rest := p, ""
	for {
		real, err := filepath.EvalSymlinks(cur)
		if err == nil {
			return filepath.Join(real, rest), nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("filestore: %w", err)
		}
		if _, lerr := os.Lstat(cur); lerr == nil {
			return "", ErrUnsafePath
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return p, nil
		}
		rest = filepath.Join(filepath.Base(cur), rest)
		cur = parent
	}
}
