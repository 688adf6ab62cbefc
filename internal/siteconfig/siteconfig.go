package siteconfig

// Shipping option ids with special checkout handling.
const (
	ShippingPickup = "pickup"
)

// Payment method ids known to checkout.
const (
	MethodBankTransfer = "bank-transfer"
	MethodMercadoPago  = "mercadopago"
)

type ShippingOption struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	Enabled       bool    `json:"enabled"`
	EstimatedDays string  `json:"estimatedDays,omitempty"`
}

type PaymentMethod struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Enabled     bool   `json:"enabled"`
	Icon        string `json:"icon,omitempty"`
}

type BankDetails struct {
	BankName      string `json:"bankName"`
	AccountHolder string `json:"accountHolder"`
	CBU           string `json:"cbu"`
	Alias         string `json:"alias"`
	CUIT          string `json:"cuit"`
}

// SiteConfig is the single store-wide settings document. Version increments
// on every save; writers must present the version they read.
type SiteConfig struct {
	ShippingOptions []ShippingOption `json:"shippingOptions"`
	PaymentMethods  []PaymentMethod  `json:"paymentMethods"`
	BankDetails     BankDetails      `json:"bankDetails"`
	StoreAddress    string           `json:"storeAddress"`
	StorePhone      string           `json:"storePhone"`
	StoreEmail      string           `json:"storeEmail"`
	StoreHours      string           `json:"storeHours"`
	Version         int              `json:"version"`
	UpdatedAt       string           `json:"updatedAt,omitempty"`
}

// ShippingOptionByID returns the enabled shipping option with the given id.
func (c SiteConfig) ShippingOptionByID(id string) (ShippingOption, bool) {
	for _, opt := range c.ShippingOptions {
		if opt.ID == id && opt.Enabled {
			return opt, true
		}
	}
	return ShippingOption{}, false
}

// PaymentMethodByID returns the enabled payment method with the given id.
func (c SiteConfig) PaymentMethodByID(id string) (PaymentMethod, bool) {
	for _, m := range c.PaymentMethods {
		if m.ID == id && m.Enabled {
			return m, true
		}
	}
	return PaymentMethod{}, false
}

// DefaultConfig is written the first time the store boots with no config row.
func DefaultConfig() SiteConfig {
	return SiteConfig{
		ShippingOptions: []ShippingOption{
			{
				ID:            ShippingPickup,
				Name:          "Retiro en Local",
				Description:   "Retira tu pedido en nuestro local",
				Price:         0,
				Enabled:       true,
				EstimatedDays: "Inmediato",
			},
			{
				ID:            "delivery",
				Name:          "Envío a Domicilio",
				Description:   "Envío a tu dirección",
				Price:         0,
				Enabled:       true,
				EstimatedDays: "1-3 días hábiles",
			},
		},
		PaymentMethods: []PaymentMethod{
			{
				ID:          MethodBankTransfer,
				Name:        "Transferencia Bancaria",
				Description: "Paga mediante transferencia bancaria",
				Enabled:     true,
				Icon:        "bank",
			},
			{
				ID:          MethodMercadoPago,
				Name:        "MercadoPago",
				Description: "Paga con tarjeta, efectivo o transferencia",
				Enabled:     true,
				Icon:        "mercadopago",
			},
		},
		BankDetails: BankDetails{
			BankName:      "Banco de la Nación Argentina",
			AccountHolder: "NM Suplementos S.R.L.",
			CBU:           "0110012345678901234567",
			Alias:         "NM.SUPLEMENTOS",
			CUIT:          "30-12345678-9",
		},
		StoreAddress: "Av. Cabildo 2100, C1428 CABA",
		StorePhone:   "+54 11 1234-5678",
		StoreEmail:   "info@nmsuplementos.com",
		StoreHours:   "Lunes a Viernes 9:00 - 18:00, Sábados 9:00 - 13:00",
		Version:      1,
	}
}
