package order

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nmartinez-dev/supplement-shop-backend/internal/cart"
	"github.com/nmartinez-dev/supplement-shop-backend/internal/user"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

// RegisterPublicRoutes exposes the confirmation callback. The payment
// gateway redirects the buyer's browser here without our JWT, so it cannot
// sit behind the auth middleware.
func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/v1/orders/:id/confirmation", h.confirmOrder)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/orders", h.createOrder)
	app.Get("/api/v1/orders", h.listMyOrders)
	app.Get("/api/v1/orders/:id", h.getOrder)
}

func (h *Handler) RegisterAdminRoutes(app *fiber.App) {
	admin := app.Group("/api/v1/admin/orders", user.RequireAdmin)
	admin.Get("/", h.adminListOrders)
	admin.Patch("/:id/status", h.adminUpdateStatus)
	admin.Patch("/:id/payment-status", h.adminMarkPayment)
}

type checkoutRequest struct {
	Items           []cart.CartItem `json:"items"`
	ShippingMethod  string          `json:"shippingMethod"`
	PaymentMethod   string          `json:"paymentMethod"`
	ShippingDetails ShippingDetails `json:"shippingDetails"`
}

func (h *Handler) createOrder(c *fiber.Ctx) error {
	payload := new(checkoutRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	email, err := user.GetEmailFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	result, err := h.service.Checkout(userID, email, CheckoutInput{
		Items:           payload.Items,
		ShippingMethod:  payload.ShippingMethod,
		PaymentMethod:   payload.PaymentMethod,
		ShippingDetails: payload.ShippingDetails,
	})
	if err != nil {
		switch err {
		case ErrEmptyCart, ErrNoShippingMethod, ErrNoPaymentMethod, ErrMissingContact, ErrMissingAddress:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

func (h *Handler) listMyOrders(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	orders, err := h.service.ListByUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(orders)
}

// getOrder returns a single order to its owner, or to any admin.
func (h *Handler) getOrder(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	ord, err := h.service.GetByID(c.Params("id"))
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	if ord.UserID != userID {
		role, _ := user.GetRoleFromCtx(c)
		if role != user.RoleAdmin {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		}
	}
	return c.JSON(ord)
}

type confirmationRequest struct {
	Status    string `json:"status"`
	PaymentID string `json:"paymentId"`
}

func (h *Handler) confirmOrder(c *fiber.Ctx) error {
	payload := new(confirmationRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	ord, err := h.service.Confirm(c.Params("id"), payload.Status, payload.PaymentID)
	if err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		case ErrInvalidPaymentStatus:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid payment status"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(ord)
}

func (h *Handler) adminListOrders(c *fiber.Ctx) error {
	f := AdminFilter{
		Status: c.Query("status"),
		Limit:  c.QueryInt("limit"),
		Offset: c.QueryInt("offset"),
	}
	orders, err := h.service.ListAll(f)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(orders)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) adminUpdateStatus(c *fiber.Ctx) error {
	payload := new(statusRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	ord, err := h.service.UpdateStatus(c.Params("id"), payload.Status)
	if err != nil {
		switch err {
		case ErrInvalidStatus:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid order status"})
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(ord)
}

func (h *Handler) adminMarkPayment(c *fiber.Ctx) error {
	payload := new(statusRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	ord, err := h.service.MarkPayment(c.Params("id"), payload.Status)
	if err != nil {
		switch err {
		case ErrInvalidPaymentStatus:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid payment status"})
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(ord)
}
