package siteconfig

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

func makeConfigApp(h *Handler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if role := c.Get("X-User-Role"); role != "" {
			c.Locals("user", &jwt.Token{Claims: jwt.MapClaims{"user_id": 1, "role": role}})
		}
		return c.Next()
	})
	h.RegisterPublicRoutes(app)
	h.RegisterAdminRoutes(app)
	return app
}

func TestGetConfig_SeedsDefaults(t *testing.T) {
	h := NewHandler(NewService(NewInMemoryRepository(nil)))
	app := makeConfigApp(h)

	res, err := app.Test(httptest.NewRequest("GET", "/api/v1/site-config", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	body := string(b)
	if !strings.Contains(body, "bank-transfer") || !strings.Contains(body, "mercadopago") {
		t.Fatalf("default payment methods missing: %s", body)
	}
	if !strings.Contains(body, `"id":"pickup"`) {
		t.Fatalf("default pickup option missing: %s", body)
	}
	if !strings.Contains(body, `"version":1`) {
		t.Fatalf("seeded config should start at version 1: %s", body)
	}
}

func TestUpdateConfig_VersionConflict(t *testing.T) {
	seed := DefaultConfig()
	h := NewHandler(NewService(NewInMemoryRepository(&seed)))
	app := makeConfigApp(h)

	cfg := DefaultConfig()
	cfg.StorePhone = "+54 11 9999-0000"
	cfg.Version = 1
	body, _ := json.Marshal(cfg)

	req := httptest.NewRequest("PUT", "/api/v1/admin/site-config", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Role", "admin")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 on first save, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), `"version":2`) {
		t.Fatalf("version should bump on save: %s", string(b))
	}

	// a second writer still holding version 1 is rejected
	req2 := httptest.NewRequest("PUT", "/api/v1/admin/site-config", strings.NewReader(string(body)))
	req2.Header.Set("Content-Type", "application/json")
	req2.Header.Set("X-User-Role", "admin")
	res2, _ := app.Test(req2)
	if res2.StatusCode != fiber.StatusConflict {
		t.Fatalf("expected 409 on stale version, got %d", res2.StatusCode)
	}
}

func TestUpdateConfig_RequiresAdmin(t *testing.T) {
	seed := DefaultConfig()
	h := NewHandler(NewService(NewInMemoryRepository(&seed)))
	app := makeConfigApp(h)

	cfg := DefaultConfig()
	body, _ := json.Marshal(cfg)
	req := httptest.NewRequest("PUT", "/api/v1/admin/site-config", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Role", "customer")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 for customer, got %d", res.StatusCode)
	}
}

func TestLookupHelpers_SkipDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ShippingOptions[1].Enabled = false
	cfg.PaymentMethods[0].Enabled = false

	if _, ok := cfg.ShippingOptionByID("delivery"); ok {
		t.Fatalf("disabled shipping option should not resolve")
	}
	if _, ok := cfg.ShippingOptionByID(ShippingPickup); !ok {
		t.Fatalf("pickup should resolve")
	}
	if _, ok := cfg.PaymentMethodByID(MethodBankTransfer); ok {
		t.Fatalf("disabled payment method should not resolve")
	}
	if _, ok := cfg.PaymentMethodByID(MethodMercadoPago); !ok {
		t.Fatalf("mercadopago should resolve")
	}
}
