package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Trạng thái của một lần gửi khuyến mãi
const (
	CampaignStatusSent    = "sent"    // tất cả người nhận gửi thành công
	CampaignStatusPartial = "partial" // một phần thất bại
	CampaignStatusFailed  = "failed"  // không gửi được ai
)

// CampaignFilter là bộ lọc đã dùng để chọn người nhận (lưu lại để tra cứu)
type CampaignFilter struct {
	MinSpent      float64  `json:"minSpent" bson:"minSpent"`
	MinVisits     int      `json:"minVisits" bson:"minVisits"`
	RecencyMonths int      `json:"recencyMonths" bson:"recencyMonths"`
	Search        string   `json:"search,omitempty" bson:"search,omitempty"`
	Segments      []string `json:"segments,omitempty" bson:"segments,omitempty"`
}

// PromoCampaign lưu một lần gửi khuyến mãi (promo_campaigns)
type PromoCampaign struct {
	ID                  primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	OwnerOrganizationID primitive.ObjectID `json:"ownerOrganizationId" bson:"ownerOrganizationId" index:"single:1,compound:promo_campaign_org_created"`
	DispatchID          string             `json:"dispatchId" bson:"dispatchId" index:"unique"`
	Message             string             `json:"message" bson:"message"`
	ImageURL            string             `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	Filter              *CampaignFilter    `json:"filter,omitempty" bson:"filter,omitempty"` // nil khi gửi theo danh sách số cụ thể
	RecipientCount      int                `json:"recipientCount" bson:"recipientCount"`
	SentCount           int                `json:"sentCount" bson:"sentCount"`
	FailedCount         int                `json:"failedCount" bson:"failedCount"`
	BatchCount          int                `json:"batchCount" bson:"batchCount"`
	Status              string             `json:"status" bson:"status"`
	CreatedBy           string             `json:"createdBy,omitempty" bson:"createdBy,omitempty"`
	CreatedAt           int64              `json:"createdAt" bson:"createdAt" index:"compound:promo_campaign_org_created"`
}
