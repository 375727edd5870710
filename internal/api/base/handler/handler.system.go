package basehdl

import (
	"context"
	"time"

	"venta_maquinarias/internal/common"

	"github.com/gofiber/fiber/v3"
)

// SystemHandler xử lý các route system
type SystemHandler struct {
	ping func(ctx context.Context) error
}

// NewSystemHandler tạo SystemHandler; ping = nil nghĩa là database chưa khởi tạo
func NewSystemHandler(ping func(ctx context.Context) error) *SystemHandler {
	return &SystemHandler{ping: ping}
}

// HandleHealth kiểm tra tình trạng API và kết nối database
func (h *SystemHandler) HandleHealth(c fiber.Ctx) error {
	healthData := fiber.Map{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	}
	services := fiber.Map{"api": "ok"}
	healthData["services"] = services

	if h.ping == nil {
		healthData["status"] = "degraded"
		services["database"] = "not_initialized"
		return HandleResponse(c, healthData, nil)
	}

	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()
	if err := h.ping(ctx); err != nil {
		healthData["status"] = "degraded"
		services["database"] = "error"
		healthData["database_error"] = err.Error()
		return JSONResponse(c, common.StatusServiceUnavailable, fiber.Map{
			"code":    common.StatusServiceUnavailable,
			"message": "Hệ thống đang gặp sự cố",
			"data":    healthData,
			"status":  "error",
		})
	}
	services["database"] = "ok"
	return HandleResponse(c, healthData, nil)
}
