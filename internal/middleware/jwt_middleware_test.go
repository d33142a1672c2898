package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"lablink/internal/middleware"
	"lablink/internal/models"
	"lablink/internal/repositories"
	"lablink/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPartnerRequired(t *testing.T) {
	logger := zap.NewNop()
	store := services.NewStore(repositories.NewMockSnapshotRepository(), repositories.NewStaticCouponRepository(nil), services.NewLogNotifier(logger), logger)

	app := fiber.New()
	app.Get("/private", middleware.PartnerRequired(store), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("partner_id").(string))
	})

	call := func(header string) int {
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		return resp.StatusCode
	}

	assert.Equal(t, http.StatusUnauthorized, call(""))
	assert.Equal(t, http.StatusUnauthorized, call("Token abc"))
	assert.Equal(t, http.StatusUnauthorized, call("Bearer abc"), "no session yet")

	store.LoginB2B(context.Background(), models.B2BUser{ID: "p-1", Name: "City Clinic", Token: "abc"})
	assert.Equal(t, http.StatusOK, call("Bearer abc"))
	assert.Equal(t, http.StatusUnauthorized, call("Bearer abd"))
}
