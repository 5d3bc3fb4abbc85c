package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"
)

// JSONBackend stores every namespace in a single JSON document.
// Reads and writes hold a lock file next to the document, so several
// phprun processes can share it.
type JSONBackend struct {
	path string
	mu   sync.Mutex
	lock *flock.Flock
}

type jsonDocument map[string]map[string]json.RawMessage

// NewJSONBackend returns a Backend that reads/writes the JSON file at path
func NewJSONBackend(path string) *JSONBackend {
	return &JSONBackend{path: path, lock: flock.New(path + ".lock")}
}

// Get reads key from namespace. Values must themselves be JSON.
func (s *JSONBackend) Get(namespace, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.acquire(s.lock.RLock); err != nil {
		return nil, false, err
	}
	defer s.lock.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, false, err
	}
	v, ok := doc[namespace][key]
	return v, ok, nil
}

// Put writes key into namespace, replacing the file atomically
func (s *JSONBackend) Put(namespace, key string, value []byte) error {
	if !json.Valid(value) {
		return fmt.Errorf("value for %s/%s is not valid JSON", namespace, key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.acquire(s.lock.Lock); err != nil {
		return err
	}
	defer s.lock.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	if doc[namespace] == nil {
		doc[namespace] = map[string]json.RawMessage{}
	}
	doc[namespace][key] = json.RawMessage(value)

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	return s.replace(data)
}

// Close is a no-op, the file is only open during Get and Put
func (s *JSONBackend) Close() error {
	return nil
}

// acquire creates the state dir and takes the file lock with lockFn
func (s *JSONBackend) acquire(lockFn func() error) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	if err := lockFn(); err != nil {
		return fmt.Errorf("lock state file: %w", err)
	}
	return nil
}

// replace writes data to a fresh temp file in the same dir and renames it over the document
func (s *JSONBackend) replace(data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".state-*.json")
	if err != nil {
		return fmt.Errorf("create temp state: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write state: %w", err)
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return fmt.Errorf("write state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace state: %w", err)
	}
	return nil
}

func (s *JSONBackend) load() (jsonDocument, error) {
	doc := jsonDocument{}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state file: %w", err)
	}
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse state file: %w", err)
	}
	return doc, nil
}
