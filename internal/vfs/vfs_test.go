package vfs

import (
	"errors"
	"io/fs"
	"testing"
)

func TestWriteReadRoundTrip(t *testing.T) {
	f := New()
	if err := f.WriteFile("/manifests/pod.yaml", "kind: Pod"); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	content, err := f.ReadFile("/manifests/pod.yaml")
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	if content != "kind: Pod" {
		t.Fatalf("unexpected content %q", content)
	}
}

func TestReadMissingFile(t *testing.T) {
	f := New()
	_, err := f.ReadFile("/nope.yaml")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
}

func TestChdirAndRelativePaths(t *testing.T) {
	f := New()
	if err := f.WriteFile("/manifests/pod.yaml", "x"); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	if err := f.Chdir("/manifests"); err != nil {
		t.Fatalf("Chdir error: %v", err)
	}
	if f.Getwd() != "/manifests" {
		t.Fatalf("expected /manifests, got %q", f.Getwd())
	}
	if _, err := f.ReadFile("pod.yaml"); err != nil {
		t.Fatalf("relative ReadFile error: %v", err)
	}
	if err := f.Chdir(".."); err != nil {
		t.Fatalf("Chdir .. error: %v", err)
	}
	if f.Getwd() != "/" {
		t.Fatalf("expected /, got %q", f.Getwd())
	}
}

func TestChdirRejectsFilesAndMissing(t *testing.T) {
	f := New()
	if err := f.WriteFile("/a.txt", ""); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	if err := f.Chdir("/a.txt"); err == nil {
		t.Fatal("expected not-a-directory error")
	}
	if err := f.Chdir("/ghost"); err == nil {
		t.Fatal("expected missing directory error")
	}
}

func TestMkdirAllCreatesParents(t *testing.T) {
	f := New()
	if err := f.MkdirAll("/a/b/c"); err != nil {
		t.Fatalf("MkdirAll error: %v", err)
	}
	if err := f.Chdir("/a/b"); err != nil {
		t.Fatalf("expected parent created, got %v", err)
	}
}

func TestTouchIdempotent(t *testing.T) {
	f := New()
	if err := f.WriteFile("/a.txt", "content"); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	if err := f.Touch("/a.txt"); err != nil {
		t.Fatalf("Touch error: %v", err)
	}
	content, _ := f.ReadFile("/a.txt")
	if content != "content" {
		t.Fatalf("expected content preserved, got %q", content)
	}
}

func TestRemove(t *testing.T) {
	f := New()
	if err := f.WriteFile("/dir/a.txt", "x"); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}

	if err := f.Remove("/dir", false); err == nil {
		t.Fatal("expected directory removal to require recursive")
	}
	if err := f.Remove("/dir", true); err != nil {
		t.Fatalf("recursive Remove error: %v", err)
	}
	if _, err := f.ReadFile("/dir/a.txt"); err == nil {
		t.Fatal("expected file gone after recursive remove")
	}
	if err := f.Remove("/", true); err == nil {
		t.Fatal("expected root removal rejected")
	}
}

func TestRemoveResetsCwdWhenInside(t *testing.T) {
	f := New()
	if err := f.MkdirAll("/a/b"); err != nil {
		t.Fatalf("MkdirAll error: %v", err)
	}
	if err := f.Chdir("/a/b"); err != nil {
		t.Fatalf("Chdir error: %v", err)
	}
	if err := f.Remove("/a", true); err != nil {
		t.Fatalf("Remove error: %v", err)
	}
	if f.Getwd() != "/" {
		t.Fatalf("expected cwd reset to /, got %q", f.Getwd())
	}
}

func TestListDirsFirstSorted(t *testing.T) {
	f := New()
	for _, p := range []string{"/z.txt", "/a.txt", "/sub/inner.txt"} {
		if err := f.WriteFile(p, ""); err != nil {
			t.Fatalf("WriteFile error: %v", err)
		}
	}
	if err := f.MkdirAll("/empty"); err != nil {
		t.Fatalf("MkdirAll error: %v", err)
	}

	entries, err := f.List("/")
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	var got []string
	for _, e := range entries {
		name := e.Name
		if e.Dir {
			name += "/"
		}
		got = append(got, name)
	}
	want := []string{"empty/", "sub/", "a.txt", "z.txt"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestListFileTarget(t *testing.T) {
	f := New()
	if err := f.WriteFile("/a.txt", ""); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	entries, err := f.List("/a.txt")
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "a.txt" || entries[0].Dir {
		t.Fatalf("unexpected entries: %v", entries)
	}
}
