package siteconfig

import (
	"errors"
	"sync"
)

var (
	ErrNotFound        = errors.New("site config not found")
	ErrVersionConflict = errors.New("site config was modified concurrently")
)

type Repository interface {
	Get() (SiteConfig, error)
	// Save replaces the config only when the stored version still equals
	// expectedVersion, then bumps the version.
	Save(cfg SiteConfig, expectedVersion int) (SiteConfig, error)
	// Init writes cfg only when no config exists yet.
	Init(cfg SiteConfig) error
}

type InMemoryRepository struct {
	mu     sync.RWMutex
	cfg    *SiteConfig
	exists bool
}

func NewInMemoryRepository(seed *SiteConfig) *InMemoryRepository {
	r := &InMemoryRepository{}
	if seed != nil {
		c := *seed
		r.cfg = &c
		r.exists = true
	}
	return r
}

func (r *InMemoryRepository) Get() (SiteConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.exists {
		return SiteConfig{}, ErrNotFound
	}
	return *r.cfg, nil
}

func (r *InMemoryRepository) Save(cfg SiteConfig, expectedVersion int) (SiteConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.exists {
		return SiteConfig{}, ErrNotFound
	}
	if r.cfg.Version != expectedVersion {
		return SiteConfig{}, ErrVersionConflict
	}
	cfg.Version = expectedVersion + 1
	r.cfg = &cfg
	return cfg, nil
}

func (r *InMemoryRepository) Init(cfg SiteConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.exists {
		return nil
	}
	c := cfg
	r.cfg = &c
	r.exists = true
	return nil
}
