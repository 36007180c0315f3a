// Package persist provides the storage collaborator of the playground
// and the debounced autosave subscriber that feeds it.
package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrNotExist is returned by Load when the key has never been saved.
var ErrNotExist = errors.New("no saved data")

// StorageError wraps a failed storage operation with its operation name
// and key.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Storage persists JSON-serializable values under string keys. The
// playground stores full cluster snapshots; it never writes partial
// state.
type Storage interface {
	Save(key string, value any) error
	Load(key string, into any) error
	Clear(key string) error
	ClearAll() error
}

// FileStorage keeps one JSON file per key under a state directory.
type FileStorage struct {
	dir string
}

const stateDirName = ".kubeplay"

// DefaultDir returns ~/.kubeplay.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, stateDirName), nil
}

// NewFileStorage creates a file-backed storage rooted at dir.
func NewFileStorage(dir string) *FileStorage {
	return &FileStorage{dir: dir}
}

func (s *FileStorage) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *FileStorage) Save(key string, value any) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return &StorageError{Op: "save", Key: key, Err: err}
	}
	b, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return &StorageError{Op: "save", Key: key, Err: err}
	}
	if err := os.WriteFile(s.path(key), b, 0o600); err != nil {
		return &StorageError{Op: "save", Key: key, Err: err}
	}
	return nil
}

func (s *FileStorage) Load(key string, into any) error {
	b, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNotExist
		}
		return &StorageError{Op: "load", Key: key, Err: err}
	}
	if len(strings.TrimSpace(string(b))) == 0 {
		return ErrNotExist
	}
	if err := json.Unmarshal(b, into); err != nil {
		return &StorageError{Op: "load", Key: key, Err: err}
	}
	return nil
}

func (s *FileStorage) Clear(key string) error {
	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return &StorageError{Op: "clear", Key: key, Err: err}
	}
	return nil
}

func (s *FileStorage) ClearAll() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return &StorageError{Op: "clear-all", Key: "", Err: err}
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, entry.Name())); err != nil {
			return &StorageError{Op: "clear-all", Key: entry.Name(), Err: err}
		}
	}
	return nil
}

// MemoryStorage is an in-process Storage for tests and embedding hosts
// that bring their own persistence. Safe for use from the debounce timer
// goroutine.
type MemoryStorage struct {
	mu     sync.Mutex
	values map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: map[string][]byte{}}
}

func (s *MemoryStorage) Save(key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return &StorageError{Op: "save", Key: key, Err: err}
	}
	s.mu.Lock()
	s.values[key] = b
	s.mu.Unlock()
	return nil
}

func (s *MemoryStorage) Load(key string, into any) error {
	s.mu.Lock()
	b, ok := s.values[key]
	s.mu.Unlock()
	if !ok {
		return ErrNotExist
	}
	if err := json.Unmarshal(b, into); err != nil {
		return &StorageError{Op: "load", Key: key, Err: err}
	}
	return nil
}

func (s *MemoryStorage) Clear(key string) error {
	s.mu.Lock()
	delete(s.values, key)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStorage) ClearAll() error {
	s.mu.Lock()
	s.values = map[string][]byte{}
	s.mu.Unlock()
	return nil
}
