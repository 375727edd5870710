package promosvc

import (
	"sort"
	"time"

	promomodels "venta_maquinarias/internal/api/promo/models"
)

// CustomerAggregate là thống kê dẫn xuất theo khách (khoá = PhoneKey), không lưu DB
type CustomerAggregate struct {
	Key         string     `json:"key"`
	Phone       string     `json:"phone"`               // số đã chuẩn hoá (có "+" nếu nguồn có)
	ChatPhone   string     `json:"chatPhone,omitempty"` // số gốc trong promo_chats, dùng để tra cuộc hội thoại
	Name        string     `json:"name,omitempty"`
	TotalPaid   float64    `json:"totalPaid"`
	TotalNights float64    `json:"totalNights"`
	VisitCount  int        `json:"visitCount"`
	LastVisit   *time.Time `json:"lastVisit,omitempty"`
}

// ContactPhone trả về số dùng để gửi tin: số chat gốc nếu có, không thì số đã chuẩn hoá
func (a *CustomerAggregate) ContactPhone() string {
	if a.ChatPhone != "" {
		return a.ChatPhone
	}
	return a.Phone
}

// AggregateVisits gộp đặt phòng và liên hệ chat thành thống kê theo khách.
//   - Bản ghi không có số điện thoại bị bỏ qua.
//   - Ngày bắt đầu thiếu/không đọc được vẫn tính vào tổng và số lượt, chỉ không cập nhật LastVisit.
//   - Mỗi số trong chats luôn có aggregate (thống kê 0 nếu chưa từng đặt).
func AggregateVisits(reservations []promomodels.Reservation, chats []promomodels.Chat) map[string]*CustomerAggregate {
	aggs := make(map[string]*CustomerAggregate)

	for i := range reservations {
		r := &reservations[i]
		key := PhoneKey(r.CustomerPhone)
		if key == "" {
			continue
		}
		agg, ok := aggs[key]
		if !ok {
			agg = &CustomerAggregate{Key: key, Phone: NormalizePhone(r.CustomerPhone)}
			aggs[key] = agg
		}
		agg.TotalPaid += r.Amount
		agg.TotalNights += r.Nights
		agg.VisitCount++
		if agg.Name == "" {
			agg.Name = r.CustomerName
		}
		if start, ok := r.StartDate.Normalize(); ok {
			if agg.LastVisit == nil || start.After(*agg.LastVisit) {
				agg.LastVisit = &start
			}
		}
	}

	for i := range chats {
		c := &chats[i]
		key := PhoneKey(c.Phone)
		if key == "" {
			continue
		}
		agg, ok := aggs[key]
		if !ok {
			agg = &CustomerAggregate{Key: key, Phone: NormalizePhone(c.Phone)}
			aggs[key] = agg
		}
		if agg.ChatPhone == "" {
			agg.ChatPhone = c.Phone
		}
		if agg.Name == "" {
			agg.Name = c.Name
		}
	}
	return aggs
}

// SortedAggregates trả về các aggregate sắp theo khoá để thứ tự xử lý ổn định
func SortedAggregates(aggs map[string]*CustomerAggregate) []*CustomerAggregate {
	out := make([]*CustomerAggregate, 0, len(aggs))
	for _, a := range aggs {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
