package main

import (
	"fmt"
	"strings"

	promosvc "venta_maquinarias/internal/api/promo/service"

	"github.com/spf13/cobra"
)

// filterFlags là các flag bộ lọc người nhận dùng chung cho recipients và send
type filterFlags struct {
	minSpent      float64
	minVisits     int
	recencyMonths int
	search        string
	segments      []string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.minSpent, "min-spent", 0, "Tổng chi tiêu tối thiểu")
	cmd.Flags().IntVar(&f.minVisits, "min-visits", 0, "Số lượt tối thiểu")
	cmd.Flags().IntVar(&f.recencyMonths, "recency-months", promosvc.RecencyUnlimited, "Lượt gần nhất trong N tháng (>= 120: không giới hạn)")
	cmd.Flags().StringVar(&f.search, "search", "", "Tìm theo tên hoặc số điện thoại")
	cmd.Flags().StringSliceVar(&f.segments, "segments", nil, "Nhóm: champion,loyal,potential,new,at_risk,lost")
}

// state kiểm tra và chuyển flag thành RecipientFilterState
func (f *filterFlags) state() (promosvc.RecipientFilterState, error) {
	if f.minSpent < 0 || f.minVisits < 0 || f.recencyMonths < 0 {
		return promosvc.RecipientFilterState{}, fmt.Errorf("--min-spent, --min-visits, --recency-months không được âm")
	}
	state := promosvc.RecipientFilterState{
		MinSpent:      f.minSpent,
		MinVisits:     f.minVisits,
		RecencyMonths: f.recencyMonths,
		Search:        strings.TrimSpace(f.search),
	}
	for _, s := range f.segments {
		seg := promosvc.Segment(strings.ToLower(strings.TrimSpace(s)))
		if !seg.Valid() {
			return promosvc.RecipientFilterState{}, fmt.Errorf("nhóm không hợp lệ: %q", s)
		}
		state.Segments = append(state.Segments, seg)
	}
	return state, nil
}
