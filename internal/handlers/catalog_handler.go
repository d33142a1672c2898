package handlers

import (
	"fmt"

	"lablink/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CatalogHandler serves tests, scans, packages and doctors.
type CatalogHandler struct {
	catalog *services.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalog *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// RegisterRoutes registers the catalog routes.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/catalog", h.HandleListCatalog)
	router.Post("/catalog/refresh", h.HandleRefresh)
	router.Get("/catalog/:id", h.HandleGetItem)
	router.Get("/doctors", h.HandleListDoctors)
}

// HandleListCatalog lists lab items, filtered by ?category= and ?q=.
func (h *CatalogHandler) HandleListCatalog(c *fiber.Ctx) error {
	items := h.catalog.Tests(c.UserContext())
	return c.JSON(services.Filter(items, c.Query("category"), c.Query("q")))
}

// HandleRefresh refetches the lab catalog from the content backend.
func (h *CatalogHandler) HandleRefresh(c *fiber.Ctx) error {
	items := h.catalog.Refresh(c.UserContext())
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Catalog refreshed: %d items", len(items)),
		"count":   len(items),
	})
}

// HandleGetItem returns one test, scan, package or doctor by id.
func (h *CatalogHandler) HandleGetItem(c *fiber.Ctx) error {
	id := c.Params("id")
	item, ok := h.catalog.GetByID(c.UserContext(), id)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": fmt.Sprintf("Item with ID %s not found", id),
		})
	}
	return c.JSON(item)
}

// HandleListDoctors lists doctors, filtered by ?q= on name or specialty.
func (h *CatalogHandler) HandleListDoctors(c *fiber.Ctx) error {
	doctors := h.catalog.Doctors(c.UserContext())
	return c.JSON(services.Filter(doctors, "", c.Query("q")))
}
