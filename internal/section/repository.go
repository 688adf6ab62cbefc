package section

import (
	"errors"
	"sort"
	"sync"
)

var ErrNotFound = errors.New("section not found")

type Repository interface {
	List(activeOnly bool) ([]Section, error)
	GetByID(id int) (Section, error)
	Create(s Section) (Section, error)
	Update(id int, s Section) (Section, error)
	Delete(id int) error
}

type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Section
	nextID  int
}

func NewInMemoryRepository(seed []Section) *InMemoryRepository {
	r := &InMemoryRepository{storage: make([]Section, 0, len(seed)), nextID: 1}
	maxID := 0
	for _, s := range seed {
		r.storage = append(r.storage, s)
		if s.ID > maxID {
			maxID = s.ID
		}
	}
	r.nextID = maxID + 1
	return r
}

func (r *InMemoryRepository) List(activeOnly bool) ([]Section, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Section, 0, len(r.storage))
	for _, s := range r.storage {
		if activeOnly && !s.IsActive {
			continue
		}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (r *InMemoryRepository) GetByID(id int) (Section, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.storage {
		if s.ID == id {
			return s, nil
		}
	}
	return Section{}, ErrNotFound
}

func (r *InMemoryRepository) Create(s Section) (Section, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.ID == 0 {
		s.ID = r.nextID
		r.nextID++
	}
	r.storage = append(r.storage, s)
	return s, nil
}

func (r *InMemoryRepository) Update(id int, s Section) (Section, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			s.ID = id
			r.storage[i] = s
			return s, nil
		}
	}
	return Section{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			r.storage = append(r.storage[:i], r.storage[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
