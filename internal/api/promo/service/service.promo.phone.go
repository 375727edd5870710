// Package promosvc - Phân khúc khách hàng RFM (Recency / Frequency / Monetary) và gửi khuyến mãi.
//
// Luồng: reservations + chats → AggregateVisits → Population (percentile) → Classify → FilterRecipients.
// Toàn bộ được tính lại từ dữ liệu gốc mỗi lần gọi, không lưu trạng thái dẫn xuất.
package promosvc

import "strings"

// NormalizePhone giữ lại chữ số và một dấu "+" ở đầu.
// "+56 9 7122 3060" → "+56971223060"
func NormalizePhone(raw string) string {
	raw = strings.TrimSpace(raw)
	var b strings.Builder
	b.Grow(len(raw))
	for i, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}
	if b.String() == "+" {
		return ""
	}
	return b.String()
}

// PhoneKey là khoá định danh khách: NormalizePhone bỏ dấu "+".
// "+56 9 7122 3060" và "56971223060" có cùng khoá "56971223060".
func PhoneKey(raw string) string {
	return strings.TrimPrefix(NormalizePhone(raw), "+")
}

// digitsOnly bỏ mọi ký tự không phải chữ số
func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
