package order

import "github.com/nmartinez-dev/supplement-shop-backend/internal/cart"

// Order statuses advanced by the back office.
const (
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

// Payment statuses as reported by the gateway (or set manually for
// bank transfers).
const (
	PaymentPending   = "pending"
	PaymentApproved  = "approved"
	PaymentRejected  = "rejected"
	PaymentInProcess = "in_process"
)

// AdminStatuses are the only order statuses the back office buttons may set.
var AdminStatuses = []string{StatusProcessing, StatusShipped, StatusDelivered}

// ShippingDetails is the contact/address block captured at checkout.
type ShippingDetails struct {
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
}

// Order is a purchase. Items are a snapshot of the cart at submission time,
// so later catalog edits never change what a historical order shows.
type Order struct {
	ID              string          `json:"id"`
	UserID          int             `json:"userId"`
	UserEmail       string          `json:"userEmail"`
	Items           []cart.CartItem `json:"items"`
	Subtotal        float64         `json:"subtotal"`
	ShippingCost    float64         `json:"shippingCost"`
	TotalAmount     float64         `json:"totalAmount"`
	ShippingMethod  string          `json:"shippingMethod"`
	PaymentMethod   string          `json:"paymentMethod"`
	PaymentStatus   string          `json:"paymentStatus"`
	OrderStatus     string          `json:"orderStatus"`
	ShippingDetails ShippingDetails `json:"shippingDetails"`
	PaymentID       string          `json:"paymentId,omitempty"`
	CreatedAt       string          `json:"createdAt"`
	UpdatedAt       string          `json:"updatedAt"`
}

// AdminFilter narrows and pages the back-office order listing.
type AdminFilter struct {
	Status string
	Limit  int
	Offset int
}
