package health

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/lysyi3m/rss-digest/app/news"
)

// Store persists the status map between runs.
type Store interface {
	Load() (StatusMap, error)
	Save(statuses StatusMap) error
}

var (
	_ Store = (*FileStore)(nil)
	_ Store = (*MemoryStore)(nil)
)

// FileStore keeps the status map in a JSON file, replaced whole on every save.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load() (StatusMap, error) {
	statuses := make(StatusMap)
	err := news.ReadJSON(s.path, &statuses)
	if errors.Is(err, os.ErrNotExist) {
		return make(StatusMap), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load health status: %w", err)
	}
	if statuses == nil {
		statuses = make(StatusMap)
	}
	return statuses, nil
}

func (s *FileStore) Save(statuses StatusMap) error {
	if err := news.WriteJSON(s.path, statuses); err != nil {
		return fmt.Errorf("failed to save health status: %w", err)
	}
	return nil
}

type MemoryStore struct {
	mu       sync.Mutex
	statuses StatusMap
	saves    int
}

func NewMemoryStore(initial StatusMap) *MemoryStore {
	return &MemoryStore{statuses: initial.clone()}
}

func (s *MemoryStore) Load() (StatusMap, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statuses.clone(), nil
}

func (s *MemoryStore) Save(statuses StatusMap) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses = statuses.clone()
	s.saves++
	return nil
}

func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func (m StatusMap) clone() StatusMap {
	out := make(StatusMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
