package favorite

import (
	"errors"
	"sync"
)

var (
	ErrAlreadyFavorite = errors.New("product already in favorites")
	ErrNotFavorite     = errors.New("product not in favorites")
)

type Repository interface {
	Add(userID, productID int, addedAt string) (Favorite, error)
	Remove(userID, productID int) error
	ListByUser(userID int) ([]Favorite, error)
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Favorite
	nextID  int
}

func NewInMemoryRepository(seed []Favorite) *InMemoryRepository {
	r := &InMemoryRepository{storage: make([]Favorite, 0, len(seed)), nextID: 1}
	maxID := 0
	for _, f := range seed {
		r.storage = append(r.storage, f)
		if f.ID > maxID {
			maxID = f.ID
		}
	}
	r.nextID = maxID + 1
	return r
}

func (r *InMemoryRepository) Add(userID, productID int, addedAt string) (Favorite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.storage {
		if f.UserID == userID && f.ProductID == productID {
			return Favorite{}, ErrAlreadyFavorite
		}
	}
	f := Favorite{ID: r.nextID, UserID: userID, ProductID: productID, AddedAt: addedAt}
	r.nextID++
	r.storage = append(r.storage, f)
	return f, nil
}

func (r *InMemoryRepository) Remove(userID, productID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, f := range r.storage {
		if f.UserID == userID && f.ProductID == productID {
			r.storage = append(r.storage[:i], r.storage[i+1:]...)
			return nil
		}
	}
	return ErrNotFavorite
}

func (r *InMemoryRepository) ListByUser(userID int) ([]Favorite, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Favorite, 0)
	for _, f := range r.storage {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	return out, nil
}
