package favorite

import "github.com/nmartinez-dev/supplement-shop-backend/internal/product"

// Favorite is a join record between a user and a product.
type Favorite struct {
	ID        int              `json:"id"`
	ProductID int              `json:"productId"`
	UserID    int              `json:"userId"`
	AddedAt   string           `json:"addedAt"`
	Product   *product.Product `json:"product,omitempty"`
}
