package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Mrsumitborade/safe-earth-response/internal/fixtures"
	"github.com/Mrsumitborade/safe-earth-response/internal/models"
)

// Store is the in-memory Repository. One Store is shared by every consumer of
// a running server; nothing in it survives a restart or a Reset.
type Store struct {
	mu   sync.RWMutex
	seed fixtures.Dataset
	data fixtures.Dataset

	lastIncidentID int64
	lastInsightID  int

	now func() time.Time
}

func NewStore(seed fixtures.Dataset) *Store {
	s := &Store{
		seed: seed.Clone(),
		now:  time.Now,
	}
	s.load()
	return s
}

// load must be called with mu held for writing (or before s is shared).
func (s *Store) load() {
	s.data = s.seed.Clone()

	s.lastIncidentID = 0
	for _, inc := range s.data.Incidents {
		s.lastIncidentID = max(s.lastIncidentID, inc.ID)
	}
	s.lastInsightID = 0
	for _, in := range s.data.Insights {
		s.lastInsightID = max(s.lastInsightID, in.ID)
	}
}

func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
	return nil
}

func (s *Store) ListAlerts(ctx context.Context) ([]models.Alert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Alert(nil), s.data.Alerts...), nil
}

func (s *Store) GetAlert(ctx context.Context, id int) (*models.Alert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.data.Alerts {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, fmt.Errorf("alert %d: %w", id, ErrNotFound)
}

func (s *Store) ListResources(ctx context.Context) ([]models.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Resource(nil), s.data.Resources...), nil
}

func (s *Store) GetResource(ctx context.Context, id int) (*models.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.data.Resources {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, fmt.Errorf("resource %d: %w", id, ErrNotFound)
}

func (s *Store) TransferResource(ctx context.Context, id int, quantity int) (*models.Resource, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Resources {
		r := &s.data.Resources[i]
		if r.ID != id {
			continue
		}
		moved := max(0, min(quantity, r.Available))
		r.Available -= moved
		r.Allocated += moved

		out := *r
		return &out, moved, nil
	}
	return nil, 0, fmt.Errorf("resource %d: %w", id, ErrNotFound)
}

func (s *Store) ListIncidents(ctx context.Context) ([]models.Incident, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Incident, len(s.data.Incidents))
	for i, inc := range s.data.Incidents {
		out[i] = inc.Clone()
	}
	return out, nil
}

func (s *Store) AddIncident(ctx context.Context, inc *models.Incident) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Millisecond clock ids, bumped so two reports in the same millisecond
	// still get distinct ids.
	id := s.now().UnixMilli()
	if id <= s.lastIncidentID {
		id = s.lastIncidentID + 1
	}
	s.lastIncidentID = id
	inc.ID = id

	s.data.Incidents = append(s.data.Incidents, inc.Clone())
	return nil
}

func (s *Store) ListInsights(ctx context.Context) ([]models.AIInsight, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.AIInsight(nil), s.data.Insights...), nil
}

func (s *Store) PrependInsight(ctx context.Context, in *models.AIInsight) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastInsightID++
	in.ID = s.lastInsightID
	s.data.Insights = append([]models.AIInsight{*in}, s.data.Insights...)
	return nil
}
