package handlers

import (
	"fmt"

	"lablink/internal/models"
	"lablink/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles cart and coupon requests.
type CartHandler struct {
	store    *services.Store
	catalog  *services.CatalogService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(store *services.Store, catalog *services.CatalogService) *CartHandler {
	return &CartHandler{
		store:    store,
		catalog:  catalog,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the cart routes.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cart := router.Group("/cart")
	cart.Get("/", h.HandleGetCart)
	cart.Post("/", h.HandleAddToCart)
	cart.Delete("/", h.HandleClearCart)
	cart.Get("/total", h.HandleGetTotal)
	cart.Post("/coupon", h.HandleApplyCoupon)
	cart.Delete("/coupon", h.HandleRemoveCoupon)
	cart.Delete("/:id", h.HandleRemoveFromCart)
}

// CartResponse is the cart view returned by every cart mutation.
type CartResponse struct {
	Lines  []models.CartLine `json:"lines"`
	Coupon *models.Coupon    `json:"coupon"`
	Totals models.CartTotals `json:"totals"`
}

func (h *CartHandler) view() CartResponse {
	draft := h.store.Draft()
	lines := draft.Lines
	if lines == nil {
		lines = []models.CartLine{}
	}
	return CartResponse{Lines: lines, Coupon: draft.Coupon, Totals: draft.Totals}
}

// HandleGetCart returns lines, applied coupon and totals.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	return c.JSON(h.view())
}

// AddToCartRequest selects a center offer of a catalog item.
type AddToCartRequest struct {
	ItemID          string `json:"itemId" validate:"required"`
	CenterIndex     int    `json:"centerIndex" validate:"gte=0"`
	AppointmentDate string `json:"appointmentDate"`
	AppointmentSlot string `json:"appointmentSlot" validate:"required_with=AppointmentDate"`
}

// HandleAddToCart adds an item or replaces its line in place.
func (h *CartHandler) HandleAddToCart(c *fiber.Ctx) error {
	var req AddToCartRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	item, ok := h.catalog.GetByID(c.UserContext(), req.ItemID)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": fmt.Sprintf("Item with ID %s not found", req.ItemID),
		})
	}
	// Store.AddToCart treats an out-of-range index as a programming error.
	if req.CenterIndex >= len(item.CenterOffers) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": fmt.Sprintf("Item %s has no center offer %d", item.ID, req.CenterIndex),
		})
	}

	var appt *models.Appointment
	if req.AppointmentDate != "" {
		appt = &models.Appointment{Date: req.AppointmentDate, Slot: req.AppointmentSlot}
	}
	h.store.AddToCart(c.UserContext(), item, req.CenterIndex, appt)
	return c.Status(fiber.StatusCreated).JSON(h.view())
}

// HandleRemoveFromCart removes one line. Unknown ids are ignored.
func (h *CartHandler) HandleRemoveFromCart(c *fiber.Ctx) error {
	h.store.RemoveFromCart(c.UserContext(), c.Params("id"))
	return c.JSON(h.view())
}

// HandleClearCart empties the cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	h.store.ClearCart(c.UserContext())
	return c.JSON(h.view())
}

// HandleGetTotal returns the price breakdown.
func (h *CartHandler) HandleGetTotal(c *fiber.Ctx) error {
	return c.JSON(h.store.CartTotal())
}

// ApplyCouponRequest carries a coupon code as typed by the user.
type ApplyCouponRequest struct {
	Code string `json:"code" validate:"required"`
}

// HandleApplyCoupon applies a coupon to the current cart.
func (h *CartHandler) HandleApplyCoupon(c *fiber.Ctx) error {
	var req ApplyCouponRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}
	if err := h.store.ApplyCoupon(c.UserContext(), req.Code); err != nil {
		return serviceError(c, err, "Could not apply coupon")
	}
	return c.JSON(h.view())
}

// HandleRemoveCoupon drops the applied coupon.
func (h *CartHandler) HandleRemoveCoupon(c *fiber.Ctx) error {
	h.store.RemoveCoupon(c.UserContext())
	return c.JSON(h.view())
}
