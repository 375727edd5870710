package global

import (
	"venta_maquinarias/config"
	"venta_maquinarias/internal/registry"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB_CollectionName chứa tên các collection trong MongoDB
type MongoDB_CollectionName struct {
	PromoReservations string // Đặt phòng (nguồn lượt ghé thăm chính)
	PromoChats        string // Liên hệ từ chat (chỉ có phone + tên)
	PromoCampaigns    string // Lịch sử các lần gửi khuyến mãi
}

// All trả về tên các collection service dùng, theo thứ tự khai báo
func (n MongoDB_CollectionName) All() []string {
	return []string{n.PromoReservations, n.PromoChats, n.PromoCampaigns}
}

// Các biến toàn cục
var Validate *validator.Validate                  // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client                 // Phiên kết nối tới MongoDB
var MongoDB_ServerConfig *config.Configuration    // Cấu hình của server
var MongoDB_ColNames = MongoDB_CollectionName{     // Tên các collection
	PromoReservations: "promo_reservations",
	PromoChats:        "promo_chats",
	PromoCampaigns:    "promo_campaigns",
}

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
