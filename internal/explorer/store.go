package explorer

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

var ErrDatasetNotFound = errors.New("dataset not found")

// Store keeps uploaded datasets in memory for the lifetime of the process.
// Nothing is ever persisted.
type Store struct {
	mu       sync.RWMutex
	datasets map[string]*Dataset
}

func NewStore() *Store {
	return &Store{datasets: make(map[string]*Dataset)}
}

// Put assigns the dataset an ID and stores it.
func (s *Store) Put(d *Dataset) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	d.ID = uuid.NewString()
	s.datasets[d.ID] = d
	return d.ID
}

func (s *Store) Get(id string) (*Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.datasets[id]
	if !ok {
		return nil, ErrDatasetNotFound
	}
	return d, nil
}

// List returns each stored dataset's summary, upload order not guaranteed.
func (s *Store) List() []*Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]*Summary, 0, len(s.datasets))
	for _, d := range s.datasets {
		summaries = append(summaries, Summarize(d))
	}
	return summaries
}
