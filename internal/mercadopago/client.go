package mercadopago

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	ErrMissingToken = errors.New("mercadopago access token is not set")
)

const defaultBaseURL = "https://api.mercadopago.com"

// Item is a single line of a checkout preference. Field names follow the
// gateway's wire format.
type Item struct {
	ID         string  `json:"id,omitempty"`
	Title      string  `json:"title"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	CurrencyID string  `json:"currency_id,omitempty"`
	PictureURL string  `json:"picture_url,omitempty"`
}

type Payer struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
	Phone *Phone `json:"phone,omitempty"`
}

type Phone struct {
	Number string `json:"number"`
}

type BackURLs struct {
	Success string `json:"success"`
	Failure string `json:"failure"`
	Pending string `json:"pending"`
}

// PreferenceRequest is the body sent to /checkout/preferences.
type PreferenceRequest struct {
	Items             []Item   `json:"items"`
	Payer             Payer    `json:"payer"`
	BackURLs          BackURLs `json:"back_urls"`
	AutoReturn        string   `json:"auto_return,omitempty"`
	ExternalReference string   `json:"external_reference,omitempty"`
	NotificationURL   string   `json:"notification_url,omitempty"`
	Expires           bool     `json:"expires,omitempty"`
	ExpirationDateTo  string   `json:"expiration_date_to,omitempty"`
}

// PreferenceResponse carries the redirect URL pair returned by the gateway.
type PreferenceResponse struct {
	ID               string `json:"id"`
	InitPoint        string `json:"init_point"`
	SandboxInitPoint string `json:"sandbox_init_point"`
}

// Payment is the subset of /v1/payments/:id we consume.
type Payment struct {
	ID                json.Number `json:"id"`
	Status            string      `json:"status"`
	StatusDetail      string      `json:"status_detail,omitempty"`
	ExternalReference string      `json:"external_reference,omitempty"`
}

// Client talks to the MercadoPago REST API.
type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
}

func NewClient(accessToken string) *Client {
	return &Client{
		baseURL:     defaultBaseURL,
		accessToken: accessToken,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

// NewClientWithBaseURL allows pointing the client at a test server.
func NewClientWithBaseURL(accessToken, baseURL string) *Client {
	c := NewClient(accessToken)
	c.baseURL = baseURL
	return c
}

// IsTestMode reports whether the configured credential is a sandbox token.
func (c *Client) IsTestMode() bool {
	return len(c.accessToken) >= 5 && c.accessToken[:5] == "TEST-"
}

// CreatePreference registers a checkout preference and returns the redirect URLs.
func (c *Client) CreatePreference(pref PreferenceRequest) (PreferenceResponse, error) {
	if c.accessToken == "" {
		return PreferenceResponse{}, ErrMissingToken
	}

	body, err := json.Marshal(pref)
	if err != nil {
		return PreferenceResponse{}, err
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/checkout/preferences", bytes.NewReader(body))
	if err != nil {
		return PreferenceResponse{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return PreferenceResponse{}, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return PreferenceResponse{}, fmt.Errorf("create preference failed: %s", res.Status)
	}

	var out PreferenceResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return PreferenceResponse{}, err
	}
	return out, nil
}

// GetPayment looks up the authoritative payment state by payment id.
func (c *Client) GetPayment(paymentID string) (Payment, error) {
	if c.accessToken == "" {
		return Payment{}, ErrMissingToken
	}

	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/v1/payments/"+paymentID, nil)
	if err != nil {
		return Payment{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return Payment{}, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return Payment{}, fmt.Errorf("get payment failed: %s", res.Status)
	}

	var out Payment
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return Payment{}, err
	}
	return out, nil
}
