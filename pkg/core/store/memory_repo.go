package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"hotel_underwriting/pkg/models"
)

// MemoryDealRepo keeps deals in process memory. It backs the API when no
// database is configured. Deals are stored as JSON so callers never share
// pointers with the repository.
type MemoryDealRepo struct {
	mu    sync.RWMutex
	deals map[string][]byte
	now   func() time.Time
}

// NewMemoryDealRepo creates an empty repository.
func NewMemoryDealRepo() *MemoryDealRepo {
	return &MemoryDealRepo{deals: map[string][]byte{}, now: time.Now}
}

// Save stores a copy of the deal, assigning an id when it has none.
func (r *MemoryDealRepo) Save(_ context.Context, deal *models.Deal) (*models.Deal, error) {
	saved := stamp(deal, r.now())
	data, err := json.Marshal(saved)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal deal: %w", err)
	}

	r.mu.Lock()
	r.deals[saved.ID] = data
	r.mu.Unlock()
	return saved, nil
}

// Get returns a copy of the stored deal.
func (r *MemoryDealRepo) Get(_ context.Context, id string) (*models.Deal, error) {
	r.mu.RLock()
	data, ok := r.deals[id]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDealNotFound, id)
	}

	var deal models.Deal
	if err := json.Unmarshal(data, &deal); err != nil {
		return nil, fmt.Errorf("failed to unmarshal deal %s: %w", id, err)
	}
	return &deal, nil
}

// Delete removes a deal.
func (r *MemoryDealRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.deals[id]; !ok {
		return fmt.Errorf("%w: %s", ErrDealNotFound, id)
	}
	delete(r.deals, id)
	return nil
}
