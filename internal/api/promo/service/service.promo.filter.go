package promosvc

import (
	"strings"
	"time"
)

// RecencyUnlimited: RecencyMonths từ giá trị này trở lên nghĩa là không giới hạn thời gian
const RecencyUnlimited = 120

// RecipientFilterState là bộ lọc người nhận; các điều kiện kết hợp AND.
// Giá trị 0 của MinSpent/MinVisits, Search rỗng và Segments rỗng đều không giới hạn.
type RecipientFilterState struct {
	MinSpent      float64   `json:"minSpent"`
	MinVisits     int       `json:"minVisits"`
	RecencyMonths int       `json:"recencyMonths"`
	Search        string    `json:"search,omitempty"`
	Segments      []Segment `json:"segments,omitempty"`
}

// DefaultFilterState không lọc gì
func DefaultFilterState() RecipientFilterState {
	return RecipientFilterState{RecencyMonths: RecencyUnlimited}
}

// FilterRecipients giữ các khách thoả mọi điều kiện, giữ nguyên thứ tự đầu vào.
// Khi RecencyMonths < RecencyUnlimited, khách phải có LastVisit trong [now − RecencyMonths tháng, now].
func FilterRecipients(customers []ClassifiedCustomer, state RecipientFilterState, now time.Time) []ClassifiedCustomer {
	var segments map[Segment]bool
	if len(state.Segments) > 0 {
		segments = make(map[Segment]bool, len(state.Segments))
		for _, s := range state.Segments {
			segments[s] = true
		}
	}

	search := strings.ToLower(strings.TrimSpace(state.Search))
	searchDigits := digitsOnly(search)
	var since time.Time
	limited := state.RecencyMonths < RecencyUnlimited
	if limited {
		since = now.AddDate(0, -state.RecencyMonths, 0)
	}

	out := make([]ClassifiedCustomer, 0, len(customers))
	for _, c := range customers {
		if search != "" && !matchesSearch(c.CustomerAggregate, search, searchDigits) {
			continue
		}
		if segments != nil && !segments[c.Segment] {
			continue
		}
		if c.TotalPaid < state.MinSpent {
			continue
		}
		if c.VisitCount < state.MinVisits {
			continue
		}
		if limited {
			if c.LastVisit == nil || c.LastVisit.Before(since) || c.LastVisit.After(now) {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

// matchesSearch: chuỗi con (không phân biệt hoa thường) của tên hoặc số điện thoại;
// nếu chuỗi tìm có chữ số thì so thêm phần chữ số với khoá điện thoại ("9 7122" khớp "56971223060").
func matchesSearch(a CustomerAggregate, search, searchDigits string) bool {
	if strings.Contains(strings.ToLower(a.Name), search) {
		return true
	}
	if strings.Contains(a.Phone, search) || strings.Contains(strings.ToLower(a.ChatPhone), search) {
		return true
	}
	return searchDigits != "" && strings.Contains(a.Key, searchDigits)
}
