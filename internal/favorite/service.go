package favorite

import (
	"time"

	"github.com/nmartinez-dev/supplement-shop-backend/internal/product"
)

type Service struct {
	repo     Repository
	products product.ServiceInterface
}

func NewService(repo Repository, products product.ServiceInterface) *Service {
	return &Service{repo: repo, products: products}
}

func (s *Service) Add(userID, productID int) (Favorite, error) {
	// reject favorites for products that do not exist
	if _, err := s.products.GetByID(productID); err != nil {
		return Favorite{}, err
	}
	return s.repo.Add(userID, productID, time.Now().UTC().Format(time.RFC3339))
}

func (s *Service) Remove(userID, productID int) error {
	return s.repo.Remove(userID, productID)
}

// List returns the user's favorites enriched with the current product data.
// Favorites pointing at deleted products are kept, just without enrichment.
func (s *Service) List(userID int) ([]Favorite, error) {
	favs, err := s.repo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	if len(favs) == 0 {
		return favs, nil
	}

	ids := make([]int, 0, len(favs))
	for _, f := range favs {
		ids = append(ids, f.ProductID)
	}
	prods, err := s.products.GetByIDs(ids)
	if err != nil {
		return favs, nil
	}
	byID := make(map[int]product.Product, len(prods))
	for _, p := range prods {
		byID[p.ID] = p
	}
	for i := range favs {
		if p, ok := byID[favs[i].ProductID]; ok {
			cp := p
			favs[i].Product = &cp
		}
	}
	return favs, nil
}
