// Package score persists mini-game best scores. It is the backend
// counterpart of the browser's localStorage slots the games used.
package score

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// Store is a keyed best-score record. Whether a new value beats the
// old one (lower moves, higher points) is the game's decision; the
// store just keeps what it is given.
type Store interface {
	Best(game string) (int, bool)
	SetBest(game string, value int) error
}

// FileStore keeps scores in a small JSON file.
type FileStore struct {
	path   string
	mu     sync.Mutex
	scores map[string]int
}

// NewFileStore loads or creates the score file.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path, scores: map[string]int{}}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &s.scores); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileStore) Best(game string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.scores[game]
	return v, ok
}

func (s *FileStore) SetBest(game string, value int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scores[game] = value

	data, err := json.MarshalIndent(s.scores, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(s.path, data, 0o644)
}
