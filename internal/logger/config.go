package logger

import (
	"os"
	"strconv"
	"strings"
)

// LogConfig chứa cấu hình cho hệ thống logging
type LogConfig struct {
	Level  string // trace, debug, info, warn, error, fatal
	Format string // json, text
	Output string // file, stdout, both

	// Rotation (lumberjack)
	MaxSize    int  // MB
	MaxBackups int  // Số file cũ giữ lại
	MaxAge     int  // Số ngày giữ lại
	Compress   bool // Nén file cũ

	LogPath   string
	AppFile   string
	AuditFile string
	ErrorFile string

	// Bộ lọc theo module / endpoint ("*" hoặc rỗng = tất cả)
	FilterModules   string
	FilterEndpoints string
}

// DefaultConfig trả về cấu hình mặc định theo GO_ENV, có thể override bằng LOG_*
func DefaultConfig() *LogConfig {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	cfg := &LogConfig{
		Level:      "info",
		Format:     "json",
		Output:     "both",
		MaxSize:    100,
		MaxBackups: 7,
		MaxAge:     7,
		Compress:   true,
		LogPath:    "./logs",
		AppFile:    "app.log",
		AuditFile:  "audit.log",
		ErrorFile:  "error.log",
	}
	if env == "development" {
		cfg.Level = "debug"
		cfg.Format = "text"
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Level = strings.ToLower(v)
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Format = strings.ToLower(v)
	}
	if v := os.Getenv("LOG_OUTPUT"); v != "" {
		cfg.Output = strings.ToLower(v)
	}
	if n, err := strconv.Atoi(os.Getenv("LOG_MAX_SIZE")); err == nil && n > 0 {
		cfg.MaxSize = n
	}
	if n, err := strconv.Atoi(os.Getenv("LOG_MAX_BACKUPS")); err == nil && n >= 0 {
		cfg.MaxBackups = n
	}
	if n, err := strconv.Atoi(os.Getenv("LOG_MAX_AGE")); err == nil && n > 0 {
		cfg.MaxAge = n
	}
	if b, err := strconv.ParseBool(os.Getenv("LOG_COMPRESS")); err == nil {
		cfg.Compress = b
	}
	if v := os.Getenv("LOG_PATH"); v != "" {
		cfg.LogPath = v
	}
	cfg.FilterModules = os.Getenv("LOG_FILTER_MODULES")
	cfg.FilterEndpoints = os.Getenv("LOG_FILTER_ENDPOINTS")

	return cfg
}
