package section

import (
	"strconv"
	"time"

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
	app.Get("/api/v1/sections", h.listSections)
}

func (h *Handler) RegisterAdminRoutes(app *fiber.App) {
	app.Get("/api/v1/admin/sections", user.RequireAdmin, h.listAllSections)
	app.Post("/api/v1/admin/sections", user.RequireAdmin, h.createSection)
	app.Put("/api/v1/admin/sections/:id<[0-9]+>", user.RequireAdmin, h.updateSection)
	app.Delete("/api/v1/admin/sections/:id<[0-9]+>", user.RequireAdmin, h.deleteSection)
}

func (h *Handler) listSections(c *fiber.Ctx) error {
	sections, err := h.service.ListActive()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(sections)
}

func (h *Handler) listAllSections(c *fiber.Ctx) error {
	sections, err := h.service.ListAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(sections)
}

func validateSection(s *Section) map[string]string {
	errs := map[string]string{}
	if s.Name == "" {
		errs["name"] = "name is required"
	}
	if s.Slug == "" {
		errs["slug"] = "slug is required"
	}
	if !validType(s.Type) {
		errs["type"] = "invalid section type"
	}
	return errs
}

func (h *Handler) createSection(c *fiber.Ctx) error {
	s := new(Section)
	if err := c.BodyParser(s); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if ves := validateSection(s); len(ves) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": ves})
	}
	if s.CreatedAt == "" {
		s.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}

	created, err := h.service.Create(*s)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) updateSection(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}
	s := new(Section)
	if err := c.BodyParser(s); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if ves := validateSection(s); len(ves) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": ves})
	}

	updated, err := h.service.Update(id, *s)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "section not found"})
	}
	return c.JSON(updated)
}

func (h *Handler) deleteSection(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}
	if err := h.service.Delete(id); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "section not found"})
	}
	return c.JSON(fiber.Map{"message": "deleted"})
}
