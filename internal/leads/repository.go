package leads

import (
	"context"
	"sync"
	"time"
)

// Repository defines the interface for lead storage
type Repository interface {
	Insert(ctx context.Context, lead *Lead) (*Lead, error)
	GetByEventID(ctx context.Context, eventID string) (*Lead, error)
}

// InMemoryRepository is a Repository backed by a map, used when no
// database is configured and in handler tests. It enforces the same
// event_id uniqueness as the database schema.
type InMemoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	leads  map[string]*Lead
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{leads: make(map[string]*Lead)}
}

// Insert stores the lead, rejecting duplicate event ids.
func (r *InMemoryRepository) Insert(ctx context.Context, lead *Lead) (*Lead, error) {
	if err := lead.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.leads[lead.EventID]; exists {
		return nil, ErrDuplicateEvent
	}

	r.nextID++
	stored := *lead
	stored.ID = r.nextID
	now := time.Now().UTC()
	stored.CreatedOn = now
	stored.UpdatedOn = now
	r.leads[stored.EventID] = &stored

	return &stored, nil
}

// GetByEventID retrieves a lead by its event id.
func (r *InMemoryRepository) GetByEventID(ctx context.Context, eventID string) (*Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lead, ok := r.leads[eventID]
	if !ok {
		return nil, ErrLeadNotFound
	}
	return lead, nil
}

// Count reports how many leads are stored.
func (r *InMemoryRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.leads)
}
