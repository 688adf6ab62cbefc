package cart

import (
	"errors"
	"time"

	"github.com/nmartinez-dev/supplement-shop-backend/internal/product"
)

var (
	ErrItemNotFound = errors.New("item not in cart")
	ErrOutOfStock   = errors.New("product out of stock")
)

// ServiceInterface is the subset consumed by the order package.
type ServiceInterface interface {
	Get(userID int) ([]CartItem, error)
	Clear(userID int) error
}

type Service struct {
	repo     Repository
	products product.ServiceInterface
}

func NewService(repo Repository, products product.ServiceInterface) *Service {
	return &Service{repo: repo, products: products}
}

func (s *Service) Get(userID int) ([]CartItem, error) {
	return s.repo.Get(userID)
}

// AddItem snapshots the product's current effective price into the cart. An
// existing line with the same product and flavor just grows its quantity.
func (s *Service) AddItem(userID, productID, qty int, flavor string) ([]CartItem, error) {
	if qty <= 0 {
		qty = 1
	}
	p, err := s.products.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if p.Stock <= 0 {
		return nil, ErrOutOfStock
	}

	items, err := s.repo.Get(userID)
	if err != nil {
		return nil, err
	}

	merged := false
	for i := range items {
		if items[i].ProductID == productID && items[i].SelectedFlavor == flavor {
			items[i].Quantity += qty
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, CartItem{
			ProductID:      p.ID,
			Name:           p.Name,
			Price:          p.EffectivePrice(),
			Quantity:       qty,
			Image:          p.Image,
			SelectedFlavor: flavor,
		})
	}

	if err := s.save(userID, items); err != nil {
		return nil, err
	}
	return items, nil
}

// SetQuantity updates a line's quantity; zero or less removes the line.
func (s *Service) SetQuantity(userID, productID, qty int, flavor string) ([]CartItem, error) {
	items, err := s.repo.Get(userID)
	if err != nil {
		return nil, err
	}

	for i := range items {
		if items[i].ProductID == productID && items[i].SelectedFlavor == flavor {
			if qty <= 0 {
				items = append(items[:i], items[i+1:]...)
			} else {
				items[i].Quantity = qty
			}
			if err := s.save(userID, items); err != nil {
				return nil, err
			}
			return items, nil
		}
	}
	return nil, ErrItemNotFound
}

func (s *Service) RemoveItem(userID, productID int, flavor string) ([]CartItem, error) {
	return s.SetQuantity(userID, productID, 0, flavor)
}

// Replace overwrites the stored cart wholesale. Used when an anonymous
// browser cart is uploaded at sign-in; the last writer wins.
func (s *Service) Replace(userID int, items []CartItem) ([]CartItem, error) {
	cleaned := make([]CartItem, 0, len(items))
	for _, it := range items {
		if it.ProductID <= 0 || it.Quantity <= 0 {
			continue
		}
		cleaned = append(cleaned, it)
	}
	if err := s.save(userID, cleaned); err != nil {
		return nil, err
	}
	return cleaned, nil
}

func (s *Service) Clear(userID int) error {
	return s.save(userID, []CartItem{})
}

func (s *Service) save(userID int, items []CartItem) error {
	return s.repo.Save(userID, items, time.Now().UTC().Format(time.RFC3339))
}
