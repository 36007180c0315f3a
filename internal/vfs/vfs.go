// Package vfs is the in-memory filesystem backing the playground: it
// holds manifest text for -f reads and serves the shell-grammar commands
// (cd, ls, mkdir, ...). Paths are slash-separated; relative paths resolve
// against the working directory.
package vfs

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// Entry is one directory listing row.
type Entry struct {
	Name string
	Dir  bool
}

// FS is a rooted in-memory file tree with a working directory.
type FS struct {
	files map[string]string
	dirs  map[string]bool
	cwd   string
}

// New returns a filesystem containing only the root directory.
func New() *FS {
	return &FS{
		files: map[string]string{},
		dirs:  map[string]bool{"/": true},
		cwd:   "/",
	}
}

// Clean resolves p against the working directory and normalizes it.
func (f *FS) Clean(p string) string {
	if !strings.HasPrefix(p, "/") {
		p = path.Join(f.cwd, p)
	}
	return path.Clean(p)
}

// Getwd returns the working directory.
func (f *FS) Getwd() string { return f.cwd }

// Chdir changes the working directory.
func (f *FS) Chdir(p string) error {
	abs := f.Clean(p)
	if !f.dirs[abs] {
		if _, ok := f.files[abs]; ok {
			return fmt.Errorf("cd: %s: not a directory", p)
		}
		return fmt.Errorf("cd: %s: %w", p, fs.ErrNotExist)
	}
	f.cwd = abs
	return nil
}

// MkdirAll creates a directory and any missing parents.
func (f *FS) MkdirAll(p string) error {
	abs := f.Clean(p)
	if _, ok := f.files[abs]; ok {
		return fmt.Errorf("mkdir: %s: file exists", p)
	}
	for d := abs; ; d = path.Dir(d) {
		f.dirs[d] = true
		if d == "/" {
			break
		}
	}
	return nil
}

// WriteFile stores content at p, creating parent directories as needed.
func (f *FS) WriteFile(p, content string) error {
	abs := f.Clean(p)
	if f.dirs[abs] {
		return fmt.Errorf("%s: is a directory", p)
	}
	if err := f.MkdirAll(path.Dir(abs)); err != nil {
		return err
	}
	f.files[abs] = content
	return nil
}

// Touch creates an empty file if p does not exist yet.
func (f *FS) Touch(p string) error {
	abs := f.Clean(p)
	if f.dirs[abs] {
		return fmt.Errorf("touch: %s: is a directory", p)
	}
	if _, ok := f.files[abs]; ok {
		return nil
	}
	return f.WriteFile(p, "")
}

// ReadFile returns the content stored at p.
func (f *FS) ReadFile(p string) (string, error) {
	abs := f.Clean(p)
	if f.dirs[abs] {
		return "", fmt.Errorf("cat: %s: is a directory", p)
	}
	content, ok := f.files[abs]
	if !ok {
		return "", fmt.Errorf("%s: %w", p, fs.ErrNotExist)
	}
	return content, nil
}

// Remove deletes a file, or a directory when recursive is set.
func (f *FS) Remove(p string, recursive bool) error {
	abs := f.Clean(p)
	if _, ok := f.files[abs]; ok {
		delete(f.files, abs)
		return nil
	}
	if !f.dirs[abs] {
		return fmt.Errorf("rm: %s: %w", p, fs.ErrNotExist)
	}
	if abs == "/" {
		return fmt.Errorf("rm: cannot remove root directory")
	}
	if !recursive {
		return fmt.Errorf("rm: %s: is a directory (use -r)", p)
	}
	prefix := abs + "/"
	for name := range f.files {
		if strings.HasPrefix(name, prefix) {
			delete(f.files, name)
		}
	}
	for name := range f.dirs {
		if name == abs || strings.HasPrefix(name, prefix) {
			delete(f.dirs, name)
		}
	}
	if strings.HasPrefix(f.cwd+"/", prefix) || f.cwd == abs {
		f.cwd = "/"
	}
	return nil
}

// List returns the entries directly under p, directories first, each
// group sorted by name.
func (f *FS) List(p string) ([]Entry, error) {
	abs := f.Clean(p)
	if !f.dirs[abs] {
		if _, ok := f.files[abs]; ok {
			return []Entry{{Name: path.Base(abs)}}, nil
		}
		return nil, fmt.Errorf("ls: %s: %w", p, fs.ErrNotExist)
	}
	seen := map[string]bool{}
	var out []Entry
	add := func(name string, dir bool) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		out = append(out, Entry{Name: name, Dir: dir})
	}
	for name := range f.dirs {
		if child, ok := childOf(abs, name); ok {
			add(child, true)
		}
	}
	for name := range f.files {
		if child, ok := childOf(abs, name); ok {
			add(child, false)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Dir != out[j].Dir {
			return out[i].Dir
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// childOf returns the first path element of p below dir, when p is
// strictly inside dir.
func childOf(dir, p string) (string, bool) {
	if p == dir {
		return "", false
	}
	prefix := dir
	if prefix != "/" {
		prefix += "/"
	}
	rest, ok := strings.CutPrefix(p, prefix)
	if !ok || rest == "" {
		return "", false
	}
	head, _, _ := strings.Cut(rest, "/")
	return head, true
}
