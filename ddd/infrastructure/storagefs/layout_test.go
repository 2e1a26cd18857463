package storagefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEnsureDirIsIdempotent(t *testing.T) {
	l := NewLayout(t.TempDir())

	first, err := l.EnsureDir("vid-1")
	if err != nil {
		t.Fatalf("EnsureDir: %v", err)
	}
	second, err := l.EnsureDir("vid-1")
	if err != nil {
		t.Fatalf("EnsureDir twice: %v", err)
	}
	if first != second {
		t.Fatalf("EnsureDir returned %q then %q", first, second)
	}
	if first != l.DirFor("vid-1") {
		t.Fatalf("EnsureDir path %q != DirFor %q", first, l.DirFor("vid-1"))
	}

	info, err := os.Stat(first)
	if err != nil || !info.IsDir() {
		t.Fatalf("directory not created: %v", err)
	}
}

func TestRemoveTreeDeletesChildrenFirst(t *testing.T) {
	l := NewLayout(t.TempDir())
	dir, err := l.EnsureDir("vid-1")
	if err != nil {
		t.Fatal(err)
	}

	nested := filepath.Join(dir, "segments")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{
		filepath.Join(dir, "720p.m3u8"),
		filepath.Join(dir, "720p_000.ts"),
		filepath.Join(nested, "left.over"),
	} {
		if err := os.WriteFile(name, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	l.RemoveTree(dir)

	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatalf("directory survived RemoveTree: %v", err)
	}
}

func TestRemoveTreeToleratesMissingDir(t *testing.T) {
	l := NewLayout(t.TempDir())
	// Must not panic or fail; there is nothing to report to.
	l.RemoveTree(filepath.Join(l.Root(), "never-created"))
}

func TestExists(t *testing.T) {
	l := NewLayout(t.TempDir())

	if l.Exists(filepath.Join(l.Root(), "absent")) {
		t.Fatal("Exists reported an absent path")
	}

	dir, err := l.EnsureDir("vid-1")
	if err != nil {
		t.Fatal(err)
	}
	if !l.Exists(dir) {
		t.Fatal("Exists missed a created directory")
	}
}
