package promosvc

import (
	"context"
	"strings"

	basemodels "venta_maquinarias/internal/api/base/models"
	promomodels "venta_maquinarias/internal/api/promo/models"
	"venta_maquinarias/internal/common"
	"venta_maquinarias/internal/delivery"
	"venta_maquinarias/internal/logger"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DispatchInput là yêu cầu gửi khuyến mãi.
// Phones có giá trị thì gửi đúng danh sách đó; nếu không, người nhận được chọn bằng Filter.
type DispatchInput struct {
	Message   string
	ImageURL  string
	Phones    []string
	Filter    RecipientFilterState
	CreatedBy string
	// OnBatch (tuỳ chọn) được gọi sau mỗi lô với số lô đã xong và tổng số lô
	OnBatch func(done, total int)
}

// ResolveRecipients trả về danh sách số sẽ gửi, đã bỏ trùng theo PhoneKey, giữ thứ tự
func (s *PromoService) ResolveRecipients(ctx context.Context, orgID primitive.ObjectID, in DispatchInput) []string {
	var phones []string
	if len(in.Phones) > 0 {
		phones = in.Phones
	} else {
		for _, c := range s.Recipients(ctx, orgID, in.Filter).Customers {
			phones = append(phones, c.ContactPhone())
		}
	}

	seen := make(map[string]bool, len(phones))
	out := make([]string, 0, len(phones))
	for _, p := range phones {
		p = strings.TrimSpace(p)
		key := PhoneKey(p)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}
	return out
}

// Dispatch gửi khuyến mãi theo lô rồi lưu một PromoCampaign.
// Lô lỗi được tính là thất bại toàn lô, không retry. Khi không gửi được ai, trả về ErrSendFailed
// kèm campaign trong Details.
func (s *PromoService) Dispatch(ctx context.Context, orgID primitive.ObjectID, in DispatchInput) (*promomodels.PromoCampaign, error) {
	if s.sender == nil {
		return nil, common.ErrSendNotConfig
	}
	if strings.TrimSpace(in.Message) == "" {
		return nil, common.ErrRequiredField
	}

	phones := s.ResolveRecipients(ctx, orgID, in)
	if len(phones) == 0 {
		return nil, common.ErrNoRecipients
	}

	campaign := promomodels.PromoCampaign{
		OwnerOrganizationID: orgID,
		DispatchID:          uuid.NewString(),
		Message:             in.Message,
		ImageURL:            in.ImageURL,
		RecipientCount:      len(phones),
		CreatedBy:           in.CreatedBy,
		CreatedAt:           s.now().UnixMilli(),
	}
	if len(in.Phones) == 0 {
		campaign.Filter = toCampaignFilter(in.Filter)
	}

	log := logger.WithContext(ctx).WithFields(map[string]interface{}{
		"module":         "promo",
		"dispatchId":     campaign.DispatchID,
		"organizationId": orgID.Hex(),
		"recipients":     len(phones),
	})
	log.Info("📣 [PROMO] Bắt đầu gửi khuyến mãi")

	batches := chunk(phones, s.batchSize)
	campaign.BatchCount = len(batches)
	for i, batch := range batches {
		res, err := s.sender.Send(ctx, delivery.PromotionBatch{
			DispatchID:     campaign.DispatchID,
			OrganizationID: orgID.Hex(),
			BatchIndex:     i,
			Phones:         batch,
			Message:        in.Message,
			ImageURL:       in.ImageURL,
		})
		if err != nil {
			log.WithError(err).WithField("batchIndex", i).Warn("📣 [PROMO] Lô gửi thất bại")
			campaign.FailedCount += len(batch)
		} else {
			campaign.SentCount += res.Sent
			campaign.FailedCount += res.Failed
		}
		if in.OnBatch != nil {
			in.OnBatch(i+1, len(batches))
		}
	}
	campaign.Status = campaignStatus(campaign.SentCount, campaign.FailedCount)

	if s.campaigns != nil {
		saved, err := s.campaigns.InsertOne(ctx, campaign)
		if err != nil {
			log.WithError(err).Error("📣 [PROMO] Không lưu được lịch sử gửi")
		} else {
			campaign = saved
		}
	}

	log.WithFields(map[string]interface{}{
		"sent":   campaign.SentCount,
		"failed": campaign.FailedCount,
		"status": campaign.Status,
	}).Info("📣 [PROMO] Hoàn tất gửi khuyến mãi")

	if campaign.Status == promomodels.CampaignStatusFailed {
		return &campaign, common.NewError(common.ErrCodeExternalSend, common.MsgSendFailed, common.StatusBadGateway, campaign)
	}
	return &campaign, nil
}

// ListCampaigns trả về lịch sử gửi của tổ chức, mới nhất trước
func (s *PromoService) ListCampaigns(ctx context.Context, orgID primitive.ObjectID, page, limit int64) (*basemodels.PaginateResult[promomodels.PromoCampaign], error) {
	if s.campaigns == nil {
		page, limit = basemodels.NormalizePage(page, limit)
		return basemodels.NewPaginateResult([]promomodels.PromoCampaign{}, page, limit, 0), nil
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return s.campaigns.FindWithPagination(ctx, bson.M{"ownerOrganizationId": orgID}, page, limit, opts)
}

// GetCampaign tìm một lần gửi theo dispatchId trong phạm vi tổ chức
func (s *PromoService) GetCampaign(ctx context.Context, orgID primitive.ObjectID, dispatchID string) (*promomodels.PromoCampaign, error) {
	dispatchID = strings.TrimSpace(dispatchID)
	if dispatchID == "" {
		return nil, common.ErrRequiredField
	}
	if s.campaigns == nil {
		return nil, common.ErrNotFound
	}
	campaign, err := s.campaigns.FindOne(ctx, bson.M{"ownerOrganizationId": orgID, "dispatchId": dispatchID}, nil)
	if err != nil {
		return nil, err
	}
	return &campaign, nil
}

func campaignStatus(sent, failed int) string {
	switch {
	case sent == 0:
		return promomodels.CampaignStatusFailed
	case failed > 0:
		return promomodels.CampaignStatusPartial
	default:
		return promomodels.CampaignStatusSent
	}
}

func toCampaignFilter(state RecipientFilterState) *promomodels.CampaignFilter {
	f := &promomodels.CampaignFilter{
		MinSpent:      state.MinSpent,
		MinVisits:     state.MinVisits,
		RecencyMonths: state.RecencyMonths,
		Search:        state.Search,
	}
	for _, seg := range state.Segments {
		f.Segments = append(f.Segments, string(seg))
	}
	return f
}

// chunk chia items thành các lô tối đa size phần tử
func chunk(items []string, size int) [][]string {
	if size <= 0 {
		size = len(items)
	}
	var out [][]string
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		out = append(out, items[start:end])
	}
	return out
}
