package order

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/nmartinez-dev/supplement-shop-backend/internal/cart"
	"github.com/nmartinez-dev/supplement-shop-backend/internal/mercadopago"
	"github.com/nmartinez-dev/supplement-shop-backend/internal/siteconfig"
)

var (
	ErrEmptyCart            = errors.New("cart is empty")
	ErrNoShippingMethod     = errors.New("shipping method is required")
	ErrNoPaymentMethod      = errors.New("payment method is required")
	ErrMissingAddress       = errors.New("shipping address is required")
	ErrMissingContact       = errors.New("contact details are required")
	ErrInvalidStatus        = errors.New("invalid order status")
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
)

// PaymentGateway is the slice of the MercadoPago client checkout needs.
// Tests substitute a fake to count calls without touching the network.
type PaymentGateway interface {
	CreatePreference(pref mercadopago.PreferenceRequest) (mercadopago.PreferenceResponse, error)
	GetPayment(paymentID string) (mercadopago.Payment, error)
}

var _ PaymentGateway = (*mercadopago.Client)(nil)

// CheckoutInput is everything the storefront sends when the buyer submits.
// Items carry the cart snapshot taken at add-to-cart time.
type CheckoutInput struct {
	Items           []cart.CartItem
	ShippingMethod  string
	PaymentMethod   string
	ShippingDetails ShippingDetails
}

// CheckoutResult is what the storefront needs to finish the flow: either the
// bank details to display, or the gateway URL to redirect to.
type CheckoutResult struct {
	Order            Order                   `json:"order"`
	BankDetails      *siteconfig.BankDetails `json:"bankDetails,omitempty"`
	InitPoint        string                  `json:"initPoint,omitempty"`
	SandboxInitPoint string                  `json:"sandboxInitPoint,omitempty"`
	Preference       string                  `json:"preferenceId,omitempty"`
}

// ProductStock is the slice of the product service checkout needs.
type ProductStock interface {
	DecrementStock(id, qty int) error
}

// CartClearer empties the buyer's stored cart after a successful checkout.
type CartClearer interface {
	Clear(userID int) error
}

type ConfigReader interface {
	Get() (siteconfig.SiteConfig, error)
}

type Service struct {
	repository    Repository
	products      ProductStock
	config        ConfigReader
	carts         CartClearer
	gateway       PaymentGateway
	returnBaseURL string
	retryDelay    time.Duration
}

func NewService(repository Repository, products ProductStock, config ConfigReader, carts CartClearer, gateway PaymentGateway, returnBaseURL string) *Service {
	return &Service{
		repository:    repository,
		products:      products,
		config:        config,
		carts:         carts,
		gateway:       gateway,
		returnBaseURL: returnBaseURL,
		retryDelay:    1500 * time.Millisecond,
	}
}

// Checkout validates the submission, writes the order, and runs the payment
// branch. Validation happens before any write so a rejected submission has no
// side effects at all.
func (s *Service) Checkout(userID int, userEmail string, in CheckoutInput) (CheckoutResult, error) {
	if len(in.Items) == 0 {
		return CheckoutResult{}, ErrEmptyCart
	}
	if in.ShippingMethod == "" {
		return CheckoutResult{}, ErrNoShippingMethod
	}
	if in.PaymentMethod == "" {
		return CheckoutResult{}, ErrNoPaymentMethod
	}

	cfg, err := s.config.Get()
	if err != nil {
		return CheckoutResult{}, err
	}
	shipping, ok := cfg.ShippingOptionByID(in.ShippingMethod)
	if !ok {
		return CheckoutResult{}, ErrNoShippingMethod
	}
	if _, ok := cfg.PaymentMethodByID(in.PaymentMethod); !ok {
		return CheckoutResult{}, ErrNoPaymentMethod
	}

	d := in.ShippingDetails
	if d.FullName == "" || d.Email == "" || d.Phone == "" {
		return CheckoutResult{}, ErrMissingContact
	}
	// Pickup only needs contact details; anything else needs an address.
	if in.ShippingMethod != siteconfig.ShippingPickup {
		if d.Address == "" || d.City == "" || d.PostalCode == "" {
			return CheckoutResult{}, ErrMissingAddress
		}
	}

	subtotal := cart.Subtotal(in.Items)
	now := time.Now().UTC().Format(time.RFC3339)
	ord := Order{
		ID:              uuid.NewString(),
		UserID:          userID,
		UserEmail:       userEmail,
		Items:           in.Items,
		Subtotal:        subtotal,
		ShippingCost:    shipping.Price,
		TotalAmount:     subtotal + shipping.Price,
		ShippingMethod:  in.ShippingMethod,
		PaymentMethod:   in.PaymentMethod,
		PaymentStatus:   PaymentPending,
		OrderStatus:     StatusProcessing,
		ShippingDetails: d,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	ord, err = s.repository.Create(ord)
	if err != nil {
		return CheckoutResult{}, err
	}

	// Stock and cart cleanup are best effort: the order is already placed
	// and a failure here must not undo the sale.
	for _, it := range in.Items {
		if err := s.products.DecrementStock(it.ProductID, it.Quantity); err != nil {
			log.Printf("order %s: decrement stock for product %d: %v", ord.ID, it.ProductID, err)
		}
	}
	if s.carts != nil {
		if err := s.carts.Clear(userID); err != nil {
			log.Printf("order %s: clear cart for user %d: %v", ord.ID, userID, err)
		}
	}

	result := CheckoutResult{Order: ord}
	switch in.PaymentMethod {
	case siteconfig.MethodBankTransfer:
		bank := cfg.BankDetails
		result.BankDetails = &bank
	case siteconfig.MethodMercadoPago:
		pref, err := s.createPreference(ord)
		if err != nil {
			// The pending order stays on record so the buyer can retry
			// payment or support can follow up.
			return CheckoutResult{}, fmt.Errorf("order %s created but payment setup failed: %w", ord.ID, err)
		}
		result.InitPoint = pref.InitPoint
		result.SandboxInitPoint = pref.SandboxInitPoint
		result.Preference = pref.ID
	}
	return result, nil
}

func (s *Service) createPreference(ord Order) (mercadopago.PreferenceResponse, error) {
	items := make([]mercadopago.Item, 0, len(ord.Items))
	for _, it := range ord.Items {
		title := it.Name
		if it.SelectedFlavor != "" {
			title = fmt.Sprintf("%s (%s)", it.Name, it.SelectedFlavor)
		}
		items = append(items, mercadopago.Item{
			ID:         fmt.Sprintf("%d", it.ProductID),
			Title:      title,
			Quantity:   it.Quantity,
			UnitPrice:  it.Price,
			CurrencyID: "ARS",
			PictureURL: it.Image,
		})
	}
	if ord.ShippingCost > 0 {
		items = append(items, mercadopago.Item{
			Title:      "Envío",
			Quantity:   1,
			UnitPrice:  ord.ShippingCost,
			CurrencyID: "ARS",
		})
	}

	return s.gateway.CreatePreference(mercadopago.PreferenceRequest{
		Items: items,
		Payer: mercadopago.Payer{
			Name:  ord.ShippingDetails.FullName,
			Email: ord.ShippingDetails.Email,
			Phone: &mercadopago.Phone{Number: ord.ShippingDetails.Phone},
		},
		BackURLs: mercadopago.BackURLs{
			Success: s.returnBaseURL + "/confirmacion?orderId=" + ord.ID,
			Failure: s.returnBaseURL + "/confirmacion?orderId=" + ord.ID,
			Pending: s.returnBaseURL + "/confirmacion?orderId=" + ord.ID,
		},
		AutoReturn:        "approved",
		ExternalReference: ord.ID,
		Expires:           true,
		ExpirationDateTo:  time.Now().UTC().Add(30 * time.Minute).Format(time.RFC3339),
	})
}

// knownPaymentStatuses gates what a confirmation redirect may claim.
var knownPaymentStatuses = map[string]bool{
	PaymentApproved:  true,
	PaymentRejected:  true,
	PaymentPending:   true,
	PaymentInProcess: true,
}

// Confirm records the outcome of a hosted-checkout redirect. The URL status
// is only a hint: when a payment id is present the gateway is asked for the
// authoritative state. The write is idempotent, so reloading the confirmation
// page does not touch the order again.
func (s *Service) Confirm(orderID, status, paymentID string) (Order, error) {
	ord, err := s.getWithRetry(orderID)
	if err != nil {
		return Order{}, err
	}

	resolved := status
	if paymentID != "" {
		payment, err := s.gateway.GetPayment(paymentID)
		if err != nil {
			log.Printf("order %s: payment lookup %s failed, keeping url status: %v", orderID, paymentID, err)
		} else if payment.Status != "" {
			resolved = payment.Status
		}
	}
	if !knownPaymentStatuses[resolved] {
		return Order{}, ErrInvalidPaymentStatus
	}

	if ord.PaymentStatus == resolved && (paymentID == "" || ord.PaymentID == paymentID) {
		return ord, nil
	}
	return s.repository.UpdatePaymentStatus(orderID, resolved, paymentID, time.Now().UTC().Format(time.RFC3339))
}

// getWithRetry tolerates read-after-write lag right after checkout by
// retrying the lookup once after a short delay.
func (s *Service) getWithRetry(orderID string) (Order, error) {
	ord, err := s.repository.GetByID(orderID)
	if err == nil {
		return ord, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Order{}, err
	}
	time.Sleep(s.retryDelay)
	return s.repository.GetByID(orderID)
}

func (s *Service) GetByID(id string) (Order, error) {
	return s.repository.GetByID(id)
}

func (s *Service) ListByUser(userID int) ([]Order, error) {
	return s.repository.ListByUser(userID)
}

func (s *Service) ListAll(f AdminFilter) ([]Order, error) {
	return s.repository.ListAll(f)
}

// UpdateStatus moves an order between the back-office statuses. Only the
// fixed set of target statuses is accepted; anything else is rejected before
// touching storage.
func (s *Service) UpdateStatus(id, status string) (Order, error) {
	valid := false
	for _, st := range AdminStatuses {
		if st == status {
			valid = true
			break
		}
	}
	if !valid {
		return Order{}, ErrInvalidStatus
	}
	return s.repository.UpdateOrderStatus(id, status, time.Now().UTC().Format(time.RFC3339))
}

// MarkPayment lets an admin settle a bank transfer manually.
func (s *Service) MarkPayment(id, status string) (Order, error) {
	if status != PaymentApproved && status != PaymentRejected {
		return Order{}, ErrInvalidPaymentStatus
	}
	return s.repository.UpdatePaymentStatus(id, status, "", time.Now().UTC().Format(time.RFC3339))
}
