package handlers

import (
	"lablink/internal/models"
	"lablink/internal/services"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles the checkout draft and UI preferences.
type UserHandler struct {
	store *services.Store
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(store *services.Store) *UserHandler {
	return &UserHandler{store: store}
}

// RegisterRoutes registers the user and preference routes.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/user", h.HandleGetUser)
	router.Patch("/user", h.HandleUpdateUser)
	router.Get("/preferences/dark-mode", h.HandleGetDarkMode)
	router.Post("/preferences/dark-mode", h.HandleToggleDarkMode)
}

// HandleGetUser returns the checkout draft.
func (h *UserHandler) HandleGetUser(c *fiber.Ctx) error {
	return c.JSON(h.store.User())
}

// HandleUpdateUser merges the given fields into the checkout draft.
func (h *UserHandler) HandleUpdateUser(c *fiber.Ctx) error {
	var patch models.UserPatch
	if err := c.BodyParser(&patch); err != nil {
		return badBody(c, err)
	}
	user, err := h.store.UpdateUser(c.UserContext(), patch)
	if err != nil {
		return serviceError(c, err, "Could not update user details")
	}
	return c.JSON(user)
}

// HandleGetDarkMode returns the dark mode flag.
func (h *UserHandler) HandleGetDarkMode(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"darkMode": h.store.DarkMode()})
}

// HandleToggleDarkMode flips the dark mode flag.
func (h *UserHandler) HandleToggleDarkMode(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"darkMode": h.store.ToggleDarkMode(c.UserContext())})
}
