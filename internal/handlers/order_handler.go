package handlers

import (
	"fmt"

	"lablink/internal/models"
	"lablink/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// OrderHandler handles checkout and order history.
type OrderHandler struct {
	checkout *services.CheckoutService
	store    *services.Store
	logger   *zap.Logger
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(checkout *services.CheckoutService, store *services.Store, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		checkout: checkout,
		store:    store,
		logger:   logger.Named("orders"),
	}
}

// RegisterRoutes registers the checkout and order routes.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/checkout", h.HandleCheckout)
	router.Get("/checkout/status", h.HandleCheckoutStatus)
	router.Get("/orders", h.HandleGetOrders)
	router.Get("/orders/:id", h.HandleGetOrderByID)
}

// HandleCheckout places an order for the current cart.
func (h *OrderHandler) HandleCheckout(c *fiber.Ctx) error {
	order, err := h.checkout.PlaceOrder(c.UserContext())
	if err != nil {
		h.logger.Debug("checkout rejected", zap.Error(err))
		return serviceError(c, err, "Could not place order")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": fmt.Sprintf("Order Placed Successfully! Order ID: %s", order.ID),
		"order":   order,
	})
}

// HandleCheckoutStatus reports whether a placement is in flight.
func (h *OrderHandler) HandleCheckoutStatus(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"processing": h.checkout.Processing()})
}

// HandleGetOrders lists order history, newest first.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders := h.store.Orders()
	if orders == nil {
		orders = []models.Order{}
	}
	return c.JSON(orders)
}

// HandleGetOrderByID returns one order from history.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	orderID := c.Params("id")
	for _, o := range h.store.Orders() {
		if o.ID == orderID {
			return c.JSON(o)
		}
	}
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"message": fmt.Sprintf("Order with ID %s not found", orderID),
	})
}
