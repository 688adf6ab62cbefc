package section

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListActive returns the sections shown on the storefront, ordered by sortOrder.
func (s *Service) ListActive() ([]Section, error) {
	return s.repo.List(true)
}

// ListAll returns every section for the admin screen, ordered by sortOrder.
func (s *Service) ListAll() ([]Section, error) {
	return s.repo.List(false)
}

func (s *Service) GetByID(id int) (Section, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Create(sec Section) (Section, error) {
	return s.repo.Create(sec)
}

func (s *Service) Update(id int, sec Section) (Section, error) {
	return s.repo.Update(id, sec)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}
