// Package router đăng ký các route thuộc domain khuyến mãi: phân khúc khách, lọc người nhận, gửi và lịch sử gửi.
package router

import (
	"fmt"

	promohdl "venta_maquinarias/internal/api/promo/handler"
	apirouter "venta_maquinarias/internal/api/router"

	"github.com/gofiber/fiber/v3"
)

// Register đăng ký tất cả route khuyến mãi lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	h, err := promohdl.NewPromoHandler()
	if err != nil {
		return fmt.Errorf("tạo PromoHandler: %w", err)
	}
	return Routes(h)(v1, r)
}

// Routes trả về RegisterFunc dùng handler cho sẵn
func Routes(h *promohdl.PromoHandler) apirouter.RegisterFunc {
	return func(v1 fiber.Router, r *apirouter.Router) error {
		g := apirouter.ProtectedGroup(v1, "/promotions", r.Protected())

		// GET /promotions/customers: khách kèm điểm RFM + nhóm. Query: minSpent, minVisits, recencyMonths, search, segments
		g.Get("/customers", h.HandleListCustomers)
		// POST /promotions/recipients: như trên, bộ lọc trong body
		g.Post("/recipients", h.HandleRecipients)
		// POST /promotions/send: gửi khuyến mãi theo danh sách số hoặc bộ lọc
		g.Post("/send", h.HandleSend)
		// GET /promotions/campaigns: lịch sử gửi. Query: page, limit
		g.Get("/campaigns", h.HandleListCampaigns)
		// GET /promotions/campaigns/:dispatchId: chi tiết một lần gửi
		g.Get("/campaigns/:dispatchId", h.HandleGetCampaign)
		return nil
	}
}
