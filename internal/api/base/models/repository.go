// Package models chứa các kiểu dùng chung cho layer repository/base (kết quả phân trang).
package models

// PaginateResult đại diện cho kết quả phân trang
type PaginateResult[T any] struct {
	Page      int64 `json:"page" bson:"page"`           // Trang hiện tại
	Limit     int64 `json:"limit" bson:"limit"`         // Số mục trên mỗi trang
	ItemCount int64 `json:"itemCount" bson:"itemCount"` // Số mục trong trang hiện tại
	Items     []T   `json:"items" bson:"items"`
	Total     int64 `json:"total" bson:"total"`
	TotalPage int64 `json:"totalPage" bson:"totalPage"`
}

// NormalizePage đảm bảo page >= 1 và 0 < limit <= 100 (mặc định 10)
func NormalizePage(page, limit int64) (int64, int64) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

// NewPaginateResult dựng kết quả phân trang; totalPage làm tròn lên, 0 khi total = 0
func NewPaginateResult[T any](items []T, page, limit, total int64) *PaginateResult[T] {
	var totalPage int64
	if total > 0 {
		totalPage = (total + limit - 1) / limit
	}
	return &PaginateResult[T]{
		Items:     items,
		Page:      page,
		Limit:     limit,
		ItemCount: int64(len(items)),
		Total:     total,
		TotalPage: totalPage,
	}
}
