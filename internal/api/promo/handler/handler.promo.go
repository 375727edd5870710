// Package promohdl - Handler phân khúc khách hàng và gửi khuyến mãi.
package promohdl

import (
	"fmt"
	"strconv"
	"strings"

	basehdl "venta_maquinarias/internal/api/base/handler"
	promodto "venta_maquinarias/internal/api/promo/dto"
	promosvc "venta_maquinarias/internal/api/promo/service"
	"venta_maquinarias/internal/common"
	"venta_maquinarias/internal/global"
	"venta_maquinarias/internal/logger"

	"github.com/gofiber/fiber/v3"
)

// PromoHandler xử lý các route /promotions
type PromoHandler struct {
	PromoService *promosvc.PromoService
}

// NewPromoHandler tạo PromoHandler từ các collection đã đăng ký
func NewPromoHandler() (*PromoHandler, error) {
	svc, err := promosvc.NewPromoService()
	if err != nil {
		return nil, fmt.Errorf("tạo PromoService: %w", err)
	}
	return NewPromoHandlerWith(svc), nil
}

// NewPromoHandlerWith tạo PromoHandler với service cho sẵn
func NewPromoHandlerWith(svc *promosvc.PromoService) *PromoHandler {
	return &PromoHandler{PromoService: svc}
}

// HandleListCustomers xử lý GET /promotions/customers.
// Query: minSpent, minVisits, recencyMonths, search, segments=champion,loyal
func (h *PromoHandler) HandleListCustomers(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		orgID, err := basehdl.ActiveOrganizationID(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		input, err := filterFromQuery(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		if global.Validate != nil {
			if err := global.Validate.Struct(input); err != nil {
				return basehdl.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err))
			}
		}
		result := h.PromoService.Recipients(c.Context(), orgID, input.ToState())
		return basehdl.HandleResponse(c, result, nil)
	})
}

// HandleRecipients xử lý POST /promotions/recipients (bộ lọc trong body)
func (h *PromoHandler) HandleRecipients(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		orgID, err := basehdl.ActiveOrganizationID(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		var input promodto.RecipientFilterInput
		if err := basehdl.ParseAndValidate(c, &input); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		result := h.PromoService.Recipients(c.Context(), orgID, input.ToState())
		return basehdl.HandleResponse(c, result, nil)
	})
}

// HandleSend xử lý POST /promotions/send
func (h *PromoHandler) HandleSend(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		orgID, err := basehdl.ActiveOrganizationID(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		var input promodto.SendPromotionInput
		if err := basehdl.ParseAndValidate(c, &input); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		createdBy, _ := c.Locals("user_id").(string)

		campaign, err := h.PromoService.Dispatch(c.Context(), orgID, promosvc.DispatchInput{
			Message:   input.Message,
			ImageURL:  input.ImageURL,
			Phones:    input.Phones,
			Filter:    input.Filter.ToState(),
			CreatedBy: createdBy,
		})
		if campaign != nil {
			logger.LogAction("promotion_dispatch", c, map[string]interface{}{
				"dispatchId": campaign.DispatchID,
				"recipients": campaign.RecipientCount,
				"sent":       campaign.SentCount,
				"failed":     campaign.FailedCount,
				"status":     campaign.Status,
			})
		}
		return basehdl.HandleResponse(c, campaign, err)
	})
}

// HandleListCampaigns xử lý GET /promotions/campaigns?page=&limit=
func (h *PromoHandler) HandleListCampaigns(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		orgID, err := basehdl.ActiveOrganizationID(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		page, _ := strconv.ParseInt(c.Query("page", "1"), 10, 64)
		limit, _ := strconv.ParseInt(c.Query("limit", "10"), 10, 64)
		result, err := h.PromoService.ListCampaigns(c.Context(), orgID, page, limit)
		if err != nil {
			return basehdl.HandleResponse(c, nil, common.ConvertMongoError(err))
		}
		return basehdl.HandleResponse(c, result, nil)
	})
}

// HandleGetCampaign xử lý GET /promotions/campaigns/:dispatchId
func (h *PromoHandler) HandleGetCampaign(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		orgID, err := basehdl.ActiveOrganizationID(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		campaign, err := h.PromoService.GetCampaign(c.Context(), orgID, c.Params("dispatchId"))
		return basehdl.HandleResponse(c, campaign, err)
	})
}

// filterFromQuery đọc bộ lọc từ query string; giá trị số sai định dạng trả về ErrInvalidFormat
func filterFromQuery(c fiber.Ctx) (*promodto.RecipientFilterInput, error) {
	input := &promodto.RecipientFilterInput{Search: c.Query("search")}

	if s := c.Query("minSpent"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, invalidQuery("minSpent", err)
		}
		input.MinSpent = v
	}
	if s := c.Query("minVisits"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return nil, invalidQuery("minVisits", err)
		}
		input.MinVisits = v
	}
	if s := c.Query("recencyMonths"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return nil, invalidQuery("recencyMonths", err)
		}
		input.RecencyMonths = &v
	}
	for _, seg := range strings.Split(c.Query("segments"), ",") {
		if seg = strings.TrimSpace(seg); seg != "" {
			input.Segments = append(input.Segments, seg)
		}
	}
	return input, nil
}

func invalidQuery(param string, err error) error {
	return common.NewError(common.ErrCodeValidationFormat, fmt.Sprintf("Tham số %s không hợp lệ", param), common.StatusBadRequest, err)
}
