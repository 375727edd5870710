// Package models - document của domain khuyến mãi: đặt phòng, liên hệ chat, lịch sử gửi.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Reservation là một lượt đặt phòng/báo giá (promo_reservations): nguồn lượt ghé thăm.
// Document do hệ thống khác ghi nên kiểu dữ liệu ngày không cố định (xem DateValue).
type Reservation struct {
	ID                  primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	OwnerOrganizationID primitive.ObjectID `json:"ownerOrganizationId" bson:"ownerOrganizationId" index:"single:1,compound:promo_reservation_org_phone"`
	CustomerPhone       string             `json:"customerPhone" bson:"customerPhone" index:"compound:promo_reservation_org_phone"`
	CustomerName        string             `json:"customerName,omitempty" bson:"customerName,omitempty"`
	Amount              float64            `json:"amount" bson:"amount"`
	Nights              float64            `json:"nights" bson:"nights"`
	StartDate           DateValue          `json:"startDate" bson:"startDate"`
	CreatedAt           DateValue          `json:"createdAt" bson:"createdAt"`
}

// Chat là một liên hệ từ kênh chat (promo_chats), chỉ có số điện thoại và tên hiển thị
type Chat struct {
	ID                  primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	OwnerOrganizationID primitive.ObjectID `json:"ownerOrganizationId" bson:"ownerOrganizationId" index:"single:1,compound:promo_chat_org_phone"`
	Phone               string             `json:"phone" bson:"phone" index:"compound:promo_chat_org_phone"`
	Name                string             `json:"name,omitempty" bson:"name,omitempty"`
}
