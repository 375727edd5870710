package logger

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// LogAction ghi một hành động audit (ví dụ: promotion_dispatch)
func LogAction(action string, c fiber.Ctx, details map[string]interface{}) {
	if details == nil {
		details = make(map[string]interface{})
	}
	fields := logrus.Fields{
		"action":     action,
		"ip":         c.IP(),
		"user_agent": c.Get("User-Agent"),
		"details":    details,
		"timestamp":  time.Now(),
	}
	if uid, ok := c.Locals("user_id").(string); ok {
		fields["user_id"] = uid
	}
	if orgID, ok := c.Locals("active_organization_id").(string); ok {
		fields["organization_id"] = orgID
	}
	if requestID := c.Get("X-Request-ID"); requestID != "" {
		fields["request_id"] = requestID
	}
	GetAuditLogger().WithFields(fields).Info("Audit log")
}
