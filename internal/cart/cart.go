package cart

// CartItem is a snapshot of a product at the moment it was added: the stored
// price is what checkout charges, regardless of later catalog edits.
type CartItem struct {
	ProductID      int     `json:"productId"`
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	Quantity       int     `json:"quantity"`
	Image          string  `json:"image"`
	SelectedFlavor string  `json:"selectedFlavor,omitempty"`
}

// Subtotal sums price × quantity over all items.
func Subtotal(items []CartItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}
