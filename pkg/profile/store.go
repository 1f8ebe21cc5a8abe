// pkg/profile/store.go

package profile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// Store persists the profile in a single slot.
type Store interface {
	// Load returns the stored profile. found is false when the slot is empty.
	Load(ctx context.Context) (p Profile, found bool, err error)
	// Save overwrites the slot.
	Save(ctx context.Context, p Profile) error
	// Clear removes the slot entirely.
	Clear(ctx context.Context) error
}

func encode(p Profile) ([]byte, error) {
	return json.Marshal(p)
}

func decode(data []byte) (Profile, error) {
	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return Profile{}, errors.Wrap(err, "decoding profile")
	}
	return p, nil
}

// FileStore keeps the profile as a JSON file named after the storage key.
type FileStore struct {
	path string
}

// NewFileStore stores the profile under dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{path: filepath.Join(dir, StorageKey+".json")}
}

// Path is the file backing the store.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Load(_ context.Context) (Profile, bool, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return Profile{}, false, nil
	}
	if err != nil {
		return Profile{}, false, errors.Wrap(err, "reading profile file")
	}
	p, err := decode(data)
	if err != nil {
		return Profile{}, false, err
	}
	return p, true, nil
}

func (s *FileStore) Save(_ context.Context, p Profile) error {
	data, err := encode(p)
	if err != nil {
		return errors.Wrap(err, "encoding profile")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return errors.Wrap(err, "creating profile directory")
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), StorageKey+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temporary profile file")
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "writing profile file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "writing profile file")
	}
	return errors.Wrap(os.Rename(tmp.Name(), s.path), "replacing profile file")
}

func (s *FileStore) Clear(_ context.Context) error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return errors.Wrap(err, "removing profile file")
	}
	return nil
}

// MemoryStore keeps the serialized profile in process memory.
type MemoryStore struct {
	mu   sync.Mutex
	data []byte
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (s *MemoryStore) Load(_ context.Context) (Profile, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return Profile{}, false, nil
	}
	p, err := decode(s.data)
	return p, err == nil, err
}

func (s *MemoryStore) Save(_ context.Context, p Profile) error {
	data, err := encode(p)
	if err != nil {
		return errors.Wrap(err, "encoding profile")
	}
	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	s.data = nil
	s.mu.Unlock()
	return nil
}
