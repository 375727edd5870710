package logger

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// filteredKey đánh dấu entry bị lọc; AsyncHook bỏ qua entry có field này
const filteredKey = "_filtered"

// FilterHook lọc log entries theo module và endpoint.
// Entry không có field module/endpoint luôn được ghi.
type FilterHook struct {
	modules   map[string]bool
	endpoints []string
}

// NewFilterHook tạo filter hook từ cấu hình
func NewFilterHook(cfg *LogConfig) *FilterHook {
	h := &FilterHook{modules: parseFilter(cfg.FilterModules)}
	for ep := range parseFilter(cfg.FilterEndpoints) {
		h.endpoints = append(h.endpoints, ep)
	}
	return h
}

// parseFilter parse "a,b,c" thành set; rỗng hoặc "*" trả về nil (cho phép tất cả)
func parseFilter(s string) map[string]bool {
	s = strings.TrimSpace(s)
	if s == "" || s == "*" {
		return nil
	}
	out := make(map[string]bool)
	for _, v := range strings.Split(s, ",") {
		if v = strings.ToLower(strings.TrimSpace(v)); v != "" {
			out[v] = true
		}
	}
	return out
}

// Levels trả về các log levels mà hook này xử lý
func (h *FilterHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire đánh dấu entry bị lọc, không xoá entry
func (h *FilterHook) Fire(entry *logrus.Entry) error {
	if entry.Level <= logrus.ErrorLevel {
		// Không bao giờ lọc error/fatal/panic
		return nil
	}
	if h.modules != nil {
		if module, ok := entry.Data["module"].(string); ok && module != "" && !h.modules[strings.ToLower(module)] {
			entry.Data[filteredKey] = true
			return nil
		}
	}
	if len(h.endpoints) > 0 {
		path, ok := entry.Data["path"].(string)
		if ok && path != "" && !h.matchEndpoint(strings.ToLower(path)) {
			entry.Data[filteredKey] = true
		}
	}
	return nil
}

func (h *FilterHook) matchEndpoint(path string) bool {
	for _, ep := range h.endpoints {
		if strings.HasPrefix(path, ep) {
			return true
		}
	}
	return false
}
