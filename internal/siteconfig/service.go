package siteconfig

import "time"

// ServiceInterface is the subset consumed by the order package.
type ServiceInterface interface {
	Get() (SiteConfig, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns the store configuration, seeding the defaults on first access.
func (s *Service) Get() (SiteConfig, error) {
	cfg, err := s.repo.Get()
	if err == ErrNotFound {
		def := DefaultConfig()
		def.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
		if err := s.repo.Init(def); err != nil {
			return SiteConfig{}, err
		}
		return s.repo.Get()
	}
	return cfg, err
}

// Update replaces the configuration. The caller presents the version it read;
// a stale version is rejected with ErrVersionConflict instead of clobbering a
// concurrent admin's edit.
func (s *Service) Update(cfg SiteConfig, expectedVersion int) (SiteConfig, error) {
	cfg.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	return s.repo.Save(cfg, expectedVersion)
}
