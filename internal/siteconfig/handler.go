package siteconfig

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nmartinez-dev/supplement-shop-backend/internal/user"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/site-config", h.getConfig)
}

func (h *Handler) RegisterAdminRoutes(app *fiber.App) {
	app.Put("/api/v1/admin/site-config", user.RequireAdmin, h.updateConfig)
}

func (h *Handler) getConfig(c *fiber.Ctx) error {
	cfg, err := h.service.Get()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(cfg)
}

func (h *Handler) updateConfig(c *fiber.Ctx) error {
	payload := new(SiteConfig)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Version <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "version is required"})
	}
	if len(payload.ShippingOptions) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "at least one shipping option is required"})
	}
	if len(payload.PaymentMethods) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "at least one payment method is required"})
	}

	updated, err := h.service.Update(*payload, payload.Version)
	if err != nil {
		switch err {
		case ErrVersionConflict:
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "config changed since it was loaded, reload and retry"})
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "config not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(updated)
}
