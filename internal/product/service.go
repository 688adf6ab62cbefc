package product

// ServiceInterface is the subset consumed by other feature packages
// (cart snapshots, order stock decrements, favorite enrichment).
type ServiceInterface interface {
	GetByID(id int) (Product, error)
	GetByIDs(ids []int) ([]Product, error)
	DecrementStock(id, qty int) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(f Filter) ([]Product, error) {
	return s.repo.List(f)
}

func (s *Service) GetByID(id int) (Product, error) {
	return s.repo.GetByID(id)
}

func (s *Service) GetByIDs(ids []int) ([]Product, error) {
	return s.repo.GetByIDs(ids)
}

func (s *Service) Create(p Product) (Product, error) {
	return s.repo.Create(p)
}

func (s *Service) Update(id int, p Product) (Product, error) {
	return s.repo.Update(id, p)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}

func (s *Service) DecrementStock(id, qty int) error {
	return s.repo.DecrementStock(id, qty)
}
