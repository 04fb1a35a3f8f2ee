package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/kpptag/internal/core/domain"
	"github.com/custodia-labs/kpptag/internal/core/ports/driven"
)

// Ensure MechanismStore implements the interface.
var _ driven.MechanismStore = (*MechanismStore)(nil)

// MechanismStore is an in-memory implementation of driven.MechanismStore.
// Stored snapshots are copied so callers cannot mutate them afterwards.
type MechanismStore struct {
	mu         sync.RWMutex
	mechanisms map[string]domain.Mechanism
}

// NewMechanismStore creates a new in-memory mechanism store.
func NewMechanismStore() *MechanismStore {
	return &MechanismStore{
		mechanisms: make(map[string]domain.Mechanism),
	}
}

// Save stores or replaces a snapshot.
func (s *MechanismStore) Save(_ context.Context, m *domain.Mechanism) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mechanisms[m.ID] = clone(m)
	return nil
}

// Get retrieves a snapshot by ID.
func (s *MechanismStore) Get(_ context.Context, id string) (*domain.Mechanism, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.mechanisms[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := clone(&m)
	return &out, nil
}

// List returns summaries ordered by load time, newest first.
func (s *MechanismStore) List(_ context.Context) ([]domain.MechanismSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.MechanismSummary, 0, len(s.mechanisms))
	for id := range s.mechanisms {
		m := s.mechanisms[id]
		out = append(out, m.Summary())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LoadedAt.Equal(out[j].LoadedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].LoadedAt.After(out[j].LoadedAt)
	})
	return out, nil
}

// Delete removes a snapshot.
func (s *MechanismStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.mechanisms[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.mechanisms, id)
	return nil
}

func clone(m *domain.Mechanism) domain.Mechanism {
	out := *m
	out.Headers = append([]string(nil), m.Headers...)
	out.Species = append([]domain.Species(nil), m.Species...)
	out.Issues = append([]domain.LineIssue(nil), m.Issues...)
	out.Reactions = make([]domain.Reaction, len(m.Reactions))
	for i, r := range m.Reactions {
		r.Reactants = append([]domain.Term(nil), r.Reactants...)
		r.Products = append([]domain.Term(nil), r.Products...)
		out.Reactions[i] = r
	}
	return out
}
