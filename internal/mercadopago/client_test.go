package mercadopago

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCreatePreference(t *testing.T) {
	var gotAuth string
	var gotBody PreferenceRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/checkout/preferences" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		json.NewEncoder(w).Encode(PreferenceResponse{
			ID:               "pref-1",
			InitPoint:        "https://mp.example/init",
			SandboxInitPoint: "https://mp.example/sandbox",
		})
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("TEST-token", srv.URL)
	res, err := c.CreatePreference(PreferenceRequest{
		Items:             []Item{{Title: "Whey Protein 1kg", Quantity: 2, UnitPrice: 14500}},
		Payer:             Payer{Email: "buyer@example.com"},
		ExternalReference: "order-123",
		AutoReturn:        "approved",
	})
	if err != nil {
		t.Fatalf("CreatePreference failed: %v", err)
	}
	if res.ID != "pref-1" || res.InitPoint != "https://mp.example/init" {
		t.Fatalf("unexpected response %+v", res)
	}
	if gotAuth != "Bearer TEST-token" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
	if gotBody.ExternalReference != "order-123" {
		t.Fatalf("external reference not forwarded: %+v", gotBody)
	}
	if len(gotBody.Items) != 1 || gotBody.Items[0].UnitPrice != 14500 {
		t.Fatalf("items not forwarded: %+v", gotBody.Items)
	}
	if !c.IsTestMode() {
		t.Fatalf("expected sandbox token to be detected")
	}
}

func TestCreatePreference_MissingToken(t *testing.T) {
	c := NewClient("")
	if _, err := c.CreatePreference(PreferenceRequest{}); err != ErrMissingToken {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
}

func TestGetPayment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/payments/987" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"id":987,"status":"approved","external_reference":"order-123"}`))
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("APP-token", srv.URL)
	p, err := c.GetPayment("987")
	if err != nil {
		t.Fatalf("GetPayment failed: %v", err)
	}
	if p.Status != "approved" || p.ExternalReference != "order-123" {
		t.Fatalf("unexpected payment %+v", p)
	}
}

func TestGetPayment_GatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("APP-token", srv.URL)
	if _, err := c.GetPayment("missing"); err == nil {
		t.Fatalf("expected error on 404")
	}
}
