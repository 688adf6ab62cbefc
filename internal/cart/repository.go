package cart

import (
	"sync"
)

type Repository interface {
	Get(userID int) ([]CartItem, error)
	// Save replaces the user's whole cart. Last write wins; there is no
	// merge between concurrent writers.
	Save(userID int, items []CartItem, updatedAt string) error
}

type InMemoryRepository struct {
	mu    sync.RWMutex
	carts map[int][]CartItem
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{carts: make(map[int][]CartItem)}
}

func (r *InMemoryRepository) Get(userID int) ([]CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := r.carts[userID]
	out := make([]CartItem, len(items))
	copy(out, items)
	return out, nil
}

func (r *InMemoryRepository) Save(userID int, items []CartItem, _ string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := make([]CartItem, len(items))
	copy(stored, items)
	r.carts[userID] = stored
	return nil
}
