package product

// Product represents a catalog item and maps to the `public.products` table.
// JSON tags follow the camelCase convention used across the API.
type Product struct {
	ID          int      `json:"productId"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Stock       int      `json:"stock"`
	Category    string   `json:"category"`
	Subcategory *string  `json:"subcategory,omitempty"`
	Brand       *string  `json:"brand,omitempty"`
	Weight      *string  `json:"weight,omitempty"`
	Flavors     []string `json:"flavors,omitempty"`
	Image       string   `json:"image"`
	Images      []string `json:"images,omitempty"`
	IsOnSale    bool     `json:"isOnSale"`
	SalePrice   *float64 `json:"salePrice,omitempty"`
	IsCombo     bool     `json:"isCombo"`
	IsFeatured  bool     `json:"isFeatured"`
	Tags        []string `json:"tags,omitempty"`
	CreatedAt   string   `json:"createdAt,omitempty"`
	UpdatedAt   string   `json:"updatedAt,omitempty"`
}

// EffectivePrice is the price charged at checkout: the sale price while the
// product is flagged on sale, the list price otherwise.
func (p Product) EffectivePrice() float64 {
	if p.IsOnSale && p.SalePrice != nil {
		return *p.SalePrice
	}
	return p.Price
}

// Filter narrows and pages a catalog listing. Zero values mean "no filter";
// the pointer fields distinguish unset from false.
type Filter struct {
	Category    string
	Subcategory string
	Brand       string
	Tag         string
	Query       string
	OnSale      *bool
	Featured    *bool
	Combo       *bool
	Limit       int
	Offset      int
}
