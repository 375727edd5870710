package logger

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// ContextKey là type cho context keys
type ContextKey string

const (
	RequestIDKey      ContextKey = "requestID"
	UserIDKey         ContextKey = "userID"
	OrganizationIDKey ContextKey = "organizationID"
)

// WithContext trả về logger entry kèm các fields có trong context
func WithContext(ctx context.Context) *logrus.Entry {
	entry := GetAppLogger().WithContext(ctx)
	if v := ctx.Value(RequestIDKey); v != nil {
		entry = entry.WithField("request_id", v)
	}
	if v := ctx.Value(UserIDKey); v != nil {
		entry = entry.WithField("user_id", v)
	}
	if v := ctx.Value(OrganizationIDKey); v != nil {
		entry = entry.WithField("organization_id", v)
	}
	return entry
}

// WithRequest trả về logger entry với thông tin request từ Fiber
func WithRequest(c fiber.Ctx) *logrus.Entry {
	entry := GetAppLogger().WithFields(logrus.Fields{
		"method": c.Method(),
		"path":   c.Path(),
		"ip":     c.IP(),
	})

	requestID, _ := c.Locals("requestid").(string)
	if requestID == "" {
		requestID = c.Get("X-Request-ID")
	}
	if requestID == "" {
		requestID = c.GetRespHeader("X-Request-ID")
	}
	if requestID != "" {
		entry = entry.WithField("request_id", requestID)
	}
	if orgID, ok := c.Locals("active_organization_id").(string); ok && orgID != "" {
		entry = entry.WithField("organization_id", orgID)
	}
	return entry
}

// WithModule trả về logger entry với module name (promo, delivery, events, ...)
func WithModule(module string) *logrus.Entry {
	return GetAppLogger().WithField("module", module)
}
