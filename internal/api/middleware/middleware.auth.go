package middleware

import (
	"context"
	"strings"

	basehdl "venta_maquinarias/internal/api/base/handler"
	"venta_maquinarias/internal/common"
	"venta_maquinarias/internal/logger"

	"firebase.google.com/go/v4/auth"
	"github.com/gofiber/fiber/v3"
)

// TokenVerifier là phần của Firebase auth.Client mà middleware cần
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// OrganizationClaim là custom claim chứa tổ chức của người dùng trên Firebase ID token
const OrganizationClaim = "organizationId"

// AuthMiddleware xác thực Firebase ID token trong header Authorization: Bearer <token>.
// Lưu user_id (Firebase UID) và token_organization_id (nếu token có claim) vào Locals.
// verifier = nil nghĩa là Firebase chưa được khởi tạo.
func AuthMiddleware(verifier TokenVerifier) fiber.Handler {
	return func(c fiber.Ctx) error {
		if verifier == nil {
			return basehdl.HandleResponse(c, nil, common.ErrAuthNotReady)
		}

		authHeader := c.Get("Authorization")
		idToken, found := strings.CutPrefix(authHeader, "Bearer ")
		idToken = strings.TrimSpace(idToken)
		if !found || idToken == "" {
			return basehdl.HandleResponse(c, nil, common.ErrTokenMissing)
		}

		token, err := verifier.VerifyIDToken(c.Context(), idToken)
		if err != nil {
			logger.WithRequest(c).WithError(err).Warn("🔒 [AUTH] Token không hợp lệ")
			return basehdl.HandleResponse(c, nil, common.ErrTokenInvalid)
		}

		c.Locals("user_id", token.UID)
		if orgID, ok := token.Claims[OrganizationClaim].(string); ok && orgID != "" {
			c.Locals("token_organization_id", orgID)
		}
		return c.Next()
	}
}
