package interaction

import (
	"sync"

	"github.com/alexanderramin/syllabus/internal/domain"
)

// Selection is the ordered set of chosen modules, unique by ID. Safe for
// concurrent use; duplicate adds never produce duplicate entries.
type Selection struct {
	mu    sync.RWMutex
	items []domain.Module
	ids   map[string]struct{}
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{ids: make(map[string]struct{})}
}

// Add appends m unless its ID is already present. Reports whether m was added.
func (s *Selection) Add(m domain.Module) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ids[m.ID]; ok {
		return false
	}
	s.ids[m.ID] = struct{}{}
	s.items = append(s.items, m)
	return true
}

// Remove deletes the module with the given ID. Absent IDs are a no-op.
func (s *Selection) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ids[id]; !ok {
		return false
	}
	delete(s.ids, id)
	for i, m := range s.items {
		if m.ID == id {
			s.items = append(s.items[:i:i], s.items[i+1:]...)
			break
		}
	}
	return true
}

// Contains reports whether id is selected.
func (s *Selection) Contains(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.ids[id]
	return ok
}

// Items returns a copy of the selection in first-added order.
func (s *Selection) Items() []domain.Module {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Module, len(s.items))
	copy(out, s.items)
	return out
}

// IDs returns the selected module IDs in order.
func (s *Selection) IDs() []string {
	return domain.ModuleIDs(s.Items())
}

// Len returns the number of selected modules.
func (s *Selection) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
