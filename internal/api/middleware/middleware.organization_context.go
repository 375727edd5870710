package middleware

import (
	basehdl "venta_maquinarias/internal/api/base/handler"
	"venta_maquinarias/internal/common"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrganizationHeader là header chọn tổ chức khi chạy không xác thực (AUTH_ENABLED=false)
const OrganizationHeader = "X-Organization-ID"

// OrganizationContextMiddleware xác định tổ chức đang làm việc và lưu active_organization_id vào Locals.
//
// trustHeader = false (auth bật): tổ chức lấy từ claim trên token (do AuthMiddleware set).
// Token không có claim, hoặc header khác với claim, bị từ chối 403.
//
// trustHeader = true (auth tắt): tổ chức lấy từ header X-Organization-ID.
func OrganizationContextMiddleware(trustHeader bool) fiber.Handler {
	return func(c fiber.Ctx) error {
		claim, _ := c.Locals("token_organization_id").(string)
		header := c.Get(OrganizationHeader)

		var orgIDStr string
		switch {
		case claim != "":
			if header != "" && header != claim {
				return basehdl.HandleResponse(c, nil, common.ErrTenantForbidden)
			}
			orgIDStr = claim
		case trustHeader:
			orgIDStr = header
		default:
			return basehdl.HandleResponse(c, nil, common.ErrTenantForbidden)
		}

		if orgIDStr == "" {
			return basehdl.HandleResponse(c, nil, common.ErrTenantRequired)
		}
		if _, err := primitive.ObjectIDFromHex(orgIDStr); err != nil {
			return basehdl.HandleResponse(c, nil, common.ErrTenantRequired)
		}

		c.Locals("active_organization_id", orgIDStr)
		return c.Next()
	}
}
