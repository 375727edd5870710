package promosvc

// Segment là nhóm khách theo điểm RFM
type Segment string

const (
	SegmentChampion  Segment = "champion"
	SegmentLoyal     Segment = "loyal"
	SegmentPotential Segment = "potential"
	SegmentNew       Segment = "new"
	SegmentAtRisk    Segment = "at_risk"
	SegmentLost      Segment = "lost"
)

// AllSegments theo thứ tự hiển thị
func AllSegments() []Segment {
	return []Segment{SegmentChampion, SegmentLoyal, SegmentPotential, SegmentNew, SegmentAtRisk, SegmentLost}
}

// Valid true nếu s là một trong sáu nhóm
func (s Segment) Valid() bool {
	switch s {
	case SegmentChampion, SegmentLoyal, SegmentPotential, SegmentNew, SegmentAtRisk, SegmentLost:
		return true
	}
	return false
}

// Classify xếp nhóm theo luật đầu tiên khớp, đúng thứ tự dưới đây.
//
// Luật potential (r≥4, avg<3) đứng trước luật new (r≥4, f≤2, m≤2) nên mọi khách r≥4 với f,m ≤ 2
// đều rơi vào potential; new hiện không bao giờ được trả về. Giữ nguyên thứ tự để tương thích.
func Classify(s RFMScore) Segment {
	avgFM := float64(s.F+s.M) / 2
	switch {
	case s.R >= 4 && avgFM >= 4:
		return SegmentChampion
	case s.R >= 3 && avgFM >= 3:
		return SegmentLoyal
	case s.R >= 4 && avgFM < 3:
		return SegmentPotential
	case s.R >= 4 && s.F <= 2 && s.M <= 2:
		return SegmentNew
	case s.R <= 2 && avgFM >= 2:
		return SegmentAtRisk
	default:
		return SegmentLost
	}
}
