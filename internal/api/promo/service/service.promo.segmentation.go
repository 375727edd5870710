package promosvc

import (
	promomodels "venta_maquinarias/internal/api/promo/models"
)

// ClassifiedCustomer là khách kèm điểm RFM và nhóm
type ClassifiedCustomer struct {
	CustomerAggregate
	RFM     RFMScore `json:"rfm"`
	Segment Segment  `json:"segment"`
}

// SegmentCustomers chạy toàn bộ pipeline: gộp → chấm điểm theo quần thể → xếp nhóm.
// Kết quả sắp theo khoá điện thoại.
func SegmentCustomers(reservations []promomodels.Reservation, chats []promomodels.Chat) []ClassifiedCustomer {
	aggs := SortedAggregates(AggregateVisits(reservations, chats))
	pop := NewPopulation(aggs)

	out := make([]ClassifiedCustomer, 0, len(aggs))
	for _, a := range aggs {
		score := pop.Score(a)
		out = append(out, ClassifiedCustomer{
			CustomerAggregate: *a,
			RFM:               score,
			Segment:           Classify(score),
		})
	}
	return out
}

// SegmentCounts đếm số khách theo nhóm; luôn có đủ sáu nhóm (0 nếu trống)
func SegmentCounts(customers []ClassifiedCustomer) map[Segment]int {
	counts := make(map[Segment]int, len(AllSegments()))
	for _, s := range AllSegments() {
		counts[s] = 0
	}
	for _, c := range customers {
		counts[c.Segment]++
	}
	return counts
}
