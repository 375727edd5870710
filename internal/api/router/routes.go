package router

import (
	basehdl "venta_maquinarias/internal/api/base/handler"
	"venta_maquinarias/internal/api/middleware"

	"github.com/gofiber/fiber/v3"
)

// Fiber v3: middleware truyền trực tiếp vào router.Get(path, mw, handler) không được gọi.
// Luôn đăng ký route có middleware qua ProtectedGroup (dùng group + .Use()).

// RoutePrefix chứa các prefix cơ bản cho API
type RoutePrefix struct {
	Base string // /api
	V1   string // /api/v1
}

// NewRoutePrefix tạo RoutePrefix mặc định
func NewRoutePrefix() RoutePrefix {
	base := "/api"
	return RoutePrefix{Base: base, V1: base + "/v1"}
}

// Router giữ chuỗi middleware dùng chung cho các route cần xác thực
type Router struct {
	app       *fiber.App
	protected []fiber.Handler
}

// NewRouter tạo Router. Khi authEnabled = false chỉ yêu cầu tenant header (môi trường dev/nội bộ);
// khi bật, tổ chức chỉ lấy từ claim trên token.
func NewRouter(app *fiber.App, verifier middleware.TokenVerifier, authEnabled bool) *Router {
	var chain []fiber.Handler
	if authEnabled {
		chain = append(chain, middleware.AuthMiddleware(verifier))
	}
	chain = append(chain, middleware.OrganizationContextMiddleware(!authEnabled))
	return &Router{app: app, protected: chain}
}

// Protected trả về chuỗi middleware auth + tenant
func (r *Router) Protected() []fiber.Handler {
	return r.protected
}

// ProtectedGroup tạo group prefix đã gắn middlewares; dùng khi nhiều route chung một chuỗi middleware
func ProtectedGroup(router fiber.Router, prefix string, middlewares []fiber.Handler) fiber.Router {
	routeGroup := router.Group(prefix)
	for _, mw := range middlewares {
		routeGroup.Use(mw)
	}
	return routeGroup
}

// RegisterFunc là hàm đăng ký route của một domain (do domain/router export).
type RegisterFunc func(v1 fiber.Router, r *Router) error

// SetupRoutes đăng ký /api/v1/system/health và route của từng domain.
func SetupRoutes(app *fiber.App, r *Router, system *basehdl.SystemHandler, regs ...RegisterFunc) error {
	prefix := NewRoutePrefix()
	v1 := app.Group(prefix.V1)
	v1.Get("/system/health", system.HandleHealth)
	for _, reg := range regs {
		if err := reg(v1, r); err != nil {
			return err
		}
	}
	return nil
}
