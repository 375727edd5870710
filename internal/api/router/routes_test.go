package router

import (
	"context"
	"net/http/httptest"
	"testing"

	basehdl "venta_maquinarias/internal/api/base/handler"
	"venta_maquinarias/internal/api/middleware"

	"firebase.google.com/go/v4/auth"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type noClaimVerifier struct{}

func (noClaimVerifier) VerifyIDToken(context.Context, string) (*auth.Token, error) {
	return &auth.Token{UID: "u1", Claims: map[string]interface{}{}}, nil
}

func TestSetupRoutes(t *testing.T) {
	app := fiber.New()
	r := NewRouter(app, nil, false)
	system := basehdl.NewSystemHandler(func(context.Context) error { return nil })

	err := SetupRoutes(app, r, system, func(v1 fiber.Router, r *Router) error {
		ProtectedGroup(v1, "/things", r.Protected()).Get("/", func(c fiber.Ctx) error {
			return c.SendStatus(204)
		})
		return nil
	})
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/system/health", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/v1/things/", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	req := httptest.NewRequest("GET", "/api/v1/things/", nil)
	req.Header.Set(middleware.OrganizationHeader, primitive.NewObjectID().Hex())
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 204, resp.StatusCode)
}

func TestNewRouter_AuthEnabledIgnoresBareHeader(t *testing.T) {
	app := fiber.New()
	r := NewRouter(app, &noClaimVerifier{}, true)
	ProtectedGroup(app, "/things", r.Protected()).Get("/", func(c fiber.Ctx) error {
		return c.SendStatus(204)
	})

	req := httptest.NewRequest("GET", "/things/", nil)
	req.Header.Set("Authorization", "Bearer any")
	req.Header.Set(middleware.OrganizationHeader, primitive.NewObjectID().Hex())
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)
}

func TestNewRouter_AuthEnabled(t *testing.T) {
	app := fiber.New()
	r := NewRouter(app, nil, true)
	assert.Len(t, r.Protected(), 2)
	assert.Len(t, NewRouter(app, nil, false).Protected(), 1)
}
