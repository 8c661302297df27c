// Package store keeps built hierarchies in memory so leads can be assigned
// to them one request at a time.
package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"sales-hierarchy/internal/apperr"
	"sales-hierarchy/internal/hierarchy"
	"sales-hierarchy/internal/model"
)

// entry pairs a hierarchy with the lock that serializes every assignment and
// read against it. A search followed by an assignment must not interleave.
type entry struct {
	mu sync.Mutex
	h  *hierarchy.Hierarchy
}

type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry
	max     int
}

func New(maxHierarchies int) *Store {
	return &Store{
		entries: make(map[string]*entry),
		max:     maxHierarchies,
	}
}

// Create builds spec and stores the result under a fresh id.
func (s *Store) Create(spec string) (string, model.HierarchyState, error) {
	h, err := hierarchy.Build(spec)
	if err != nil {
		kind := apperr.KindBadRequest
		if errors.Is(err, hierarchy.ErrUnknownVariant) || errors.Is(err, hierarchy.ErrEmptyHierarchy) {
			kind = apperr.KindValidation
		}
		return "", model.HierarchyState{}, apperr.Wrap(kind, err.Error(), err).WithOp("store.Create")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.entries) >= s.max {
		return "", model.HierarchyState{}, apperr.Conflict(
			fmt.Sprintf("store holds the maximum of %d hierarchies", s.max)).WithOp("store.Create")
	}
	id := uuid.NewString()
	s.entries[id] = &entry{h: h}
	return id, model.NewHierarchyState(h), nil
}

func (s *Store) get(id string) (*entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[id]
	if !ok {
		return nil, apperr.NotFound(fmt.Sprintf("hierarchy %s not found", id))
	}
	return e, nil
}

// Assign places lead on the best rep of hierarchy id. node is nil when
// nobody could take the lead.
func (s *Store) Assign(id string, lead hierarchy.Lead) (node *model.NodeState, totalRisk float64, err error) {
	e, err := s.get(id)
	if err != nil {
		return nil, 0, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if nodeID, ok := e.h.AssignToBestRep(lead); ok {
		v, err := e.h.View(nodeID)
		if err != nil {
			return nil, 0, apperr.Wrap(apperr.KindInternal, "assigned node vanished", err)
		}
		ns := model.NewNodeState(v)
		node = &ns
	}
	return node, e.h.TotalRisk(), nil
}

func (s *Store) TotalRisk(id string) (float64, error) {
	e, err := s.get(id)
	if err != nil {
		return 0, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.h.TotalRisk(), nil
}

func (s *Store) State(id string) (model.HierarchyState, error) {
	e, err := s.get(id)
	if err != nil {
		return model.HierarchyState{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return model.NewHierarchyState(e.h), nil
}

func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[id]; !ok {
		return apperr.NotFound(fmt.Sprintf("hierarchy %s not found", id))
	}
	delete(s.entries, id)
	return nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
