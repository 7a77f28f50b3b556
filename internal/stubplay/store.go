package stubplay

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Gist is a snippet stored by the stub server
type Gist struct {
	ID      string
	Code    string
	Created time.Time
}

// GistStore keeps gists in memory, keyed by id
type GistStore struct {
	gists map[string]Gist
	mutex sync.RWMutex
}

// NewGistStore creates an empty store
func NewGistStore() *GistStore {
	return &GistStore{gists: make(map[string]Gist)}
}

// Create stores code under a fresh id
func (s *GistStore) Create(code string) Gist {
	g := Gist{
		ID:      uuid.New().String(),
		Code:    code,
		Created: time.Now(),
	}

	s.mutex.Lock()
	s.gists[g.ID] = g
	s.mutex.Unlock()

	return g
}

// Get looks up a gist by id
func (s *GistStore) Get(id string) (Gist, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	g, ok := s.gists[id]
	return g, ok
}

// Len returns the number of stored gists
func (s *GistStore) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.gists)
}

// Prune removes gists older than maxAge
func (s *GistStore) Prune(maxAge time.Duration) int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	removed := 0
	now := time.Now()
	for id, g := range s.gists {
		if now.Sub(g.Created) > maxAge {
			delete(s.gists, id)
			removed++
		}
	}
	return removed
}
