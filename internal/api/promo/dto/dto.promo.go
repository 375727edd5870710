// Package dto - DTO cho domain khuyến mãi (lọc người nhận, gửi khuyến mãi).
package dto

import (
	"strings"

	promosvc "venta_maquinarias/internal/api/promo/service"

	"github.com/go-playground/validator/v10"
)

// RecipientFilterInput là bộ lọc người nhận gửi từ dashboard.
// RecencyMonths thiếu (nil) nghĩa là không giới hạn thời gian.
type RecipientFilterInput struct {
	MinSpent      float64  `json:"minSpent" validate:"min=0"`
	MinVisits     int      `json:"minVisits" validate:"min=0"`
	RecencyMonths *int     `json:"recencyMonths,omitempty" validate:"omitempty,min=0"`
	Search        string   `json:"search,omitempty" validate:"omitempty,max=100,no_xss"`
	Segments      []string `json:"segments,omitempty" validate:"omitempty,dive,segment"`
}

// ToState chuyển input thành RecipientFilterState của service
func (in RecipientFilterInput) ToState() promosvc.RecipientFilterState {
	state := promosvc.DefaultFilterState()
	state.MinSpent = in.MinSpent
	state.MinVisits = in.MinVisits
	if in.RecencyMonths != nil {
		state.RecencyMonths = *in.RecencyMonths
	}
	state.Search = strings.TrimSpace(in.Search)
	for _, s := range in.Segments {
		state.Segments = append(state.Segments, promosvc.Segment(s))
	}
	return state
}

// SendPromotionInput là yêu cầu gửi khuyến mãi.
// Phones có giá trị thì bỏ qua Filter.
type SendPromotionInput struct {
	Message  string               `json:"message" validate:"required,max=4096,no_xss"`
	ImageURL string               `json:"imageUrl,omitempty" validate:"omitempty,url"`
	Phones   []string             `json:"phones,omitempty" validate:"omitempty,max=5000,dive,phone_loose"`
	Filter   RecipientFilterInput `json:"filter"`
}

// RegisterValidators đăng ký tag "segment" lên validator
func RegisterValidators(v *validator.Validate) error {
	return v.RegisterValidation("segment", func(fl validator.FieldLevel) bool {
		return promosvc.Segment(fl.Field().String()).Valid()
	})
}
