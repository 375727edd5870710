package promosvc

import (
	"context"
	"time"

	promomodels "venta_maquinarias/internal/api/promo/models"
	"venta_maquinarias/internal/delivery"
	"venta_maquinarias/internal/global"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sender gửi một lô khuyến mãi tới endpoint bên ngoài (delivery.Client)
type Sender interface {
	Send(ctx context.Context, batch delivery.PromotionBatch) (*delivery.SendResult, error)
}

// PromoService phân khúc khách theo RFM và gửi khuyến mãi cho một tổ chức
type PromoService struct {
	reservations RecordSource[promomodels.Reservation]
	chats        RecordSource[promomodels.Chat]
	campaigns    CampaignStore
	sender       Sender
	batchSize    int
	now          func() time.Time
}

// Options cấu hình PromoService
type Options struct {
	Reservations RecordSource[promomodels.Reservation]
	Chats        RecordSource[promomodels.Chat]
	Campaigns    CampaignStore
	Sender       Sender // nil: chưa cấu hình endpoint gửi
	BatchSize    int    // <= 0 thì dùng 50
	Now          func() time.Time
}

// NewPromoServiceWith tạo PromoService từ các thành phần cho sẵn
func NewPromoServiceWith(opts Options) *PromoService {
	if opts.BatchSize <= 0 {
		opts.BatchSize = 50
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &PromoService{
		reservations: opts.Reservations,
		chats:        opts.Chats,
		campaigns:    opts.Campaigns,
		sender:       opts.Sender,
		batchSize:    opts.BatchSize,
		now:          opts.Now,
	}
}

// NewPromoService tạo PromoService từ các collection đã đăng ký và cấu hình server
func NewPromoService() (*PromoService, error) {
	reservations, err := collectionService[promomodels.Reservation](global.MongoDB_ColNames.PromoReservations)
	if err != nil {
		return nil, err
	}
	chats, err := collectionService[promomodels.Chat](global.MongoDB_ColNames.PromoChats)
	if err != nil {
		return nil, err
	}
	campaigns, err := collectionService[promomodels.PromoCampaign](global.MongoDB_ColNames.PromoCampaigns)
	if err != nil {
		return nil, err
	}

	opts := Options{Reservations: reservations, Chats: chats, Campaigns: campaigns}
	if cfg := global.MongoDB_ServerConfig; cfg != nil {
		opts.BatchSize = cfg.PromoSendBatchSize
		if cfg.PromoSendURL != "" {
			opts.Sender = delivery.NewClient(cfg.PromoSendURL, cfg.PromoSendToken, time.Duration(cfg.PromoSendTimeoutSeconds)*time.Second)
		}
	}
	return NewPromoServiceWith(opts), nil
}

// Now trả về thời điểm hiện tại theo đồng hồ của service
func (s *PromoService) Now() time.Time {
	return s.now()
}

// LoadSegmentation đọc đặt phòng + chat của tổ chức và tính lại toàn bộ phân khúc.
// Lỗi đọc nguồn không làm hỏng kết quả: nguồn lỗi được coi là rỗng.
func (s *PromoService) LoadSegmentation(ctx context.Context, orgID primitive.ObjectID) []ClassifiedCustomer {
	reservations := listByOrganization(ctx, s.reservations, "reservations", orgID)
	chats := listByOrganization(ctx, s.chats, "chats", orgID)
	return SegmentCustomers(reservations, chats)
}

// RecipientsResult là danh sách người nhận sau lọc cùng số lượng theo nhóm
type RecipientsResult struct {
	Customers []ClassifiedCustomer `json:"customers"`
	Total     int                  `json:"total"`      // tổng số khách trước khi lọc
	Matched   int                  `json:"matched"`    // số khách sau khi lọc
	Counts    map[Segment]int      `json:"counts"`     // theo nhóm, trên toàn bộ khách
	Generated time.Time            `json:"generatedAt"`
}

// Recipients phân khúc rồi áp bộ lọc người nhận
func (s *PromoService) Recipients(ctx context.Context, orgID primitive.ObjectID, state RecipientFilterState) *RecipientsResult {
	all := s.LoadSegmentation(ctx, orgID)
	now := s.now()
	matched := FilterRecipients(all, state, now)
	return &RecipientsResult{
		Customers: matched,
		Total:     len(all),
		Matched:   len(matched),
		Counts:    SegmentCounts(all),
		Generated: now,
	}
}
