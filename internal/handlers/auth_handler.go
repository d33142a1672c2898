package handlers

import (
	"strings"

	"lablink/internal/models"
	"lablink/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PartnerRegistrar adds accounts to the offline partner directory.
type PartnerRegistrar interface {
	RegisterPartner(partner *models.Partner) error
}

// AuthHandler handles partner login and logout.
type AuthHandler struct {
	auth      services.PartnerAuthenticator
	registrar PartnerRegistrar // nil when partners live in WordPress
	store     *services.Store
	validate  *validator.Validate
	logger    *zap.Logger
}

// NewAuthHandler creates a new AuthHandler. registrar may be nil.
func NewAuthHandler(auth services.PartnerAuthenticator, registrar PartnerRegistrar, store *services.Store, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		auth:      auth,
		registrar: registrar,
		store:     store,
		validate:  validator.New(),
		logger:    logger.Named("auth"),
	}
}

// RegisterRoutes registers the authentication routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	if h.registrar != nil {
		authRoutes.Post("/register", h.HandleRegister)
	}
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Post("/logout", h.HandleLogout)
	authRoutes.Get("/session", h.HandleSession)
}

// HandleRegister adds a partner to the offline directory.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var partner models.Partner
	if err := c.BodyParser(&partner); err != nil {
		return badBody(c, err)
	}
	if err := h.validate.Struct(partner); err != nil {
		return validationFailed(c, err)
	}

	if err := h.registrar.RegisterPartner(&partner); err != nil {
		h.logger.Warn("partner registration failed", zap.String("email", partner.Email), zap.Error(err))
		if strings.Contains(err.Error(), "already registered") {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Registration failed",
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not register partner",
			"error":   err.Error(),
		})
	}

	partner.Password = ""
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Partner registered successfully",
		"partner": partner,
	})
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin authenticates a partner and starts a session. Any previous
// session's order history is discarded.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	user, err := h.auth.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		h.logger.Info("login failed", zap.String("username", req.Username), zap.Error(err))
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication failed",
			"error":   err.Error(),
		})
	}

	h.store.LoginB2B(c.UserContext(), *user)
	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   user.Token,
		"user":    user,
	})
}

// HandleLogout ends the partner session.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	h.store.LogoutB2B(c.UserContext())
	return c.JSON(fiber.Map{"message": "Logged out"})
}

// HandleSession returns the current partner session without its token.
func (h *AuthHandler) HandleSession(c *fiber.Ctx) error {
	user := h.store.Partner()
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Not logged in",
		})
	}
	user.Token = ""
	return c.JSON(user)
}
