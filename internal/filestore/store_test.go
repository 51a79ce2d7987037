package filestore

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestNew_MissingDir(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestNew_NotADirectory(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := New(f); err == nil {
		t.Fatal("expected error for regular file root")
	}
}

func TestRoundTrip(t *testing.T) {
	s := newStore(t)
	cases := map[string][]byte{
		"test.txt":          []byte("hello"),
		"empty":             {},
		"nested/dir/b.bin":  {0x00, 0xff, '\r', '\n', 0x1f, 0x8b},
		"./dot/../plain.md": []byte("# title\n"),
	}
	for name, content := range cases {
		if err := s.Write(name, content); err != nil {
			t.Fatalf("Write(%q): %v", name, err)
		}
		got, err := s.Read(name)
		if err != nil {
			t.Fatalf("Read(%q): %v", name, err)
		}
		if !bytes.Equal(got, content) {
			t.Fatalf("Read(%q)=%q, want %q", name, got, content)
		}
	}
}

func TestWrite_Overwrites(t *testing.T) {
	s := newStore(t)
	if err := s.Write("f", []byte("a much longer first version")); err != nil {
		t.Fatal(err)
	}
	if err := s.Write("f", []byte("short")); err != nil {
		t.Fatal(err)
	}
	got, _ := s.Read("f")
	if string(got) != "short" {
		t.Fatalf("got %q", got)
	}
}

func TestRead_Missing(t *testing.T) {
	s := newStore(t)
	_, err := s.Read("missing.txt")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("err=%v, want fs.ErrNotExist", err)
	}
}

func TestRead_Directory(t *testing.T) {
	s := newStore(t)
	if err := os.Mkdir(filepath.Join(s.Root(), "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Read("sub"); err == nil {
		t.Fatal("expected error reading a directory")
	}
}

func TestTraversalRejected(t *testing.T) {
	parent := t.TempDir()
	base := filepath.Join(parent, "base")
	if err := os.Mkdir(base, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(parent, "secret"), []byte("s3cr3t"), 0o644); err != nil {
		t.Fatal(err)
	}
	// A sibling sharing the root as a string prefix.
	if err := os.Mkdir(filepath.Join(parent, "base2"), 0o755); err != nil {
		t.Fatal(err)
	}
	s, err := New(base)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"../secret", "a/../../secret", "../base2/x", "..", "", "."} {
		if _, err := s.Read(name); !errors.Is(err, ErrUnsafePath) {
			t.Errorf("Read(%q) err=%v, want ErrUnsafePath", name, err)
		}
		if err := s.Write(name, []byte("x")); !errors.Is(err, ErrUnsafePath) {
			t.Errorf("Write(%q) err=%v, want ErrUnsafePath", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(parent, "base2", "x")); err == nil {
		t.Fatal("write escaped into sibling directory")
	}
	got, _ := os.ReadFile(filepath.Join(parent, "secret"))
	if string(got) != "s3cr3t" {
		t.Fatalf("secret modified: %q", got)
	}
}

func TestSymlinkEscapeRejected(t *testing.T) {
	outside := t.TempDir()
	if err := os.WriteFile(filepath.Join(outside, "target"), []byte("out"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := newStore(t)
	if err := os.Symlink(outside, filepath.Join(s.Root(), "link")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	if _, err := s.Read("link/target"); !errors.Is(err, ErrUnsafePath) {
		t.Fatalf("Read through symlink err=%v", err)
	}
	if err := s.Write("link/new", []byte("x")); !errors.Is(err, ErrUnsafePath) {
		t.Fatalf("Write through symlink err=%v", err)
	}
	if _, err := os.Stat(filepath.Join(outside, "new")); err == nil {
		t.Fatal("write escaped through symlink")
	}
}

func TestDanglingSymlinkRejected(t *testing.T) {
	outside := t.TempDir()
	s := newStore(t)
	if err := os.Symlink(filepath.Join(outside, "created"), filepath.Join(s.Root(), "dangling")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	if err := s.Write("dangling", []byte("x")); !errors.Is(err, ErrUnsafePath) {
		t.Fatalf("Write err=%v, want ErrUnsafePath", err)
	}
	if _, err := os.Stat(filepath.Join(outside, "created")); err == nil {
		t.Fatal("write followed dangling symlink")
	}
}

func TestSymlinkInsideRootAllowed(t *testing.T) {
	s := newStore(t)
	if err := s.Write("real/a.txt", []byte("inside")); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(filepath.Join(s.Root(), "real"), filepath.Join(s.Root(), "alias")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	got, err := s.Read("alias/a.txt")
	if err != nil || string(got) != "inside" {
		t.Fatalf("Read via internal symlink = %q, %v", got, err)
	}
}
