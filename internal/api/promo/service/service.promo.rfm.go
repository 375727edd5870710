package promosvc

import (
	"math"
	"sort"
)

const (
	minScore     = 1
	maxScore     = 5
	neutralScore = 3 // dùng khi quần thể rỗng
)

// RFMScore là điểm 1..5 trên mỗi trục, tương đối theo quần thể
type RFMScore struct {
	R int `json:"r"`
	F int `json:"f"`
	M int `json:"m"`
}

// Population giữ các trục đã sắp xếp tăng dần của một quần thể khách.
// Tạo một lần rồi chấm điểm từng khách: O(n log n) cho cả quần thể.
type Population struct {
	recency   []float64
	frequency []float64
	monetary  []float64
}

// NewPopulation sắp xếp sẵn ba trục R, F, M
func NewPopulation(aggs []*CustomerAggregate) *Population {
	p := &Population{
		recency:   make([]float64, 0, len(aggs)),
		frequency: make([]float64, 0, len(aggs)),
		monetary:  make([]float64, 0, len(aggs)),
	}
	for _, a := range aggs {
		p.recency = append(p.recency, recencyValue(a))
		p.frequency = append(p.frequency, float64(a.VisitCount))
		p.monetary = append(p.monetary, a.TotalPaid)
	}
	sort.Float64s(p.recency)
	sort.Float64s(p.frequency)
	sort.Float64s(p.monetary)
	return p
}

// Size là số khách trong quần thể
func (p *Population) Size() int {
	return len(p.monetary)
}

// Score chấm điểm một khách theo quần thể. Giá trị thô cao hơn ⇒ điểm không thấp hơn.
func (p *Population) Score(a *CustomerAggregate) RFMScore {
	return RFMScore{
		R: band(p.recency, recencyValue(a)),
		F: band(p.frequency, float64(a.VisitCount)),
		M: band(p.monetary, a.TotalPaid),
	}
}

// ScoreRFM chấm điểm a theo quần thể all. Khi chấm nhiều khách, dùng NewPopulation một lần.
func ScoreRFM(a *CustomerAggregate, all []*CustomerAggregate) RFMScore {
	return NewPopulation(all).Score(a)
}

// recencyValue = LastVisit (Unix ms) hoặc 0 nếu chưa có
func recencyValue(a *CustomerAggregate) float64 {
	if a.LastVisit == nil {
		return 0
	}
	return float64(a.LastVisit.UnixMilli())
}

// band: percentile = (số giá trị nhỏ hơn hẳn v) / n, điểm = ceil(percentile*5) kẹp trong [1,5].
// Giá trị nhỏ nhất có percentile 0 nên nhận 1.
func band(sorted []float64, v float64) int {
	n := len(sorted)
	if n == 0 || math.IsNaN(v) {
		return neutralScore
	}
	less := sort.SearchFloat64s(sorted, v)
	b := math.Ceil(float64(less) / float64(n) * maxScore)
	if math.IsNaN(b) {
		return neutralScore
	}
	return int(math.Max(minScore, math.Min(maxScore, b)))
}
