package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	basehdl "venta_maquinarias/internal/api/base/handler"
	"venta_maquinarias/internal/api/middleware"
	promorouter "venta_maquinarias/internal/api/promo/router"
	"venta_maquinarias/internal/api/router"
	"venta_maquinarias/internal/common"
	"venta_maquinarias/internal/global"
	"venta_maquinarias/internal/logger"
	"venta_maquinarias/internal/utility"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/google/uuid"
)

// errorHandler trả lỗi Fiber (404, 405, body quá lớn, ...) theo format {code, message, status}
func errorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"
	errorCode := common.ErrCodeInternalServer.Code

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
		switch code {
		case fiber.StatusBadRequest, fiber.StatusRequestEntityTooLarge:
			errorCode = common.ErrCodeValidationInput.Code
		case fiber.StatusUnauthorized:
			errorCode = common.ErrCodeAuthToken.Code
		case fiber.StatusNotFound, fiber.StatusMethodNotAllowed:
			errorCode = common.ErrCodeDatabaseQuery.Code
		}
	}

	entry := logger.WithRequest(c).WithFields(map[string]interface{}{
		"code":      code,
		"errorCode": errorCode,
	})
	if code >= fiber.StatusInternalServerError {
		entry.WithError(err).Error("Request error")
	} else {
		entry.Debug(message)
	}

	return c.Status(code).JSON(fiber.Map{
		"code":    errorCode,
		"message": message,
		"status":  "error",
	})
}

// corsOrigins tách CORS_ORIGINS ("*" hoặc danh sách phân cách bằng dấu phẩy)
func corsOrigins(raw string) []string {
	if strings.TrimSpace(raw) == "*" {
		return []string{"*"}
	}
	var out []string
	for _, origin := range strings.Split(raw, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			out = append(out, origin)
		}
	}
	return out
}

func isHealthPath(c fiber.Ctx) bool {
	return c.Path() == "/api/v1/system/health"
}

// tokenVerifier trả về Firebase auth client; nil interface khi Firebase chưa khởi tạo
func tokenVerifier() middleware.TokenVerifier {
	if client := utility.GetFirebaseAuth(); client != nil {
		return client
	}
	return nil
}

// InitFiberApp khởi tạo ứng dụng Fiber với middleware và routes
func InitFiberApp() *fiber.App {
	cfg := global.MongoDB_ServerConfig
	log := logger.GetAppLogger()

	app := fiber.New(fiber.Config{
		AppName:      "Venta Maquinarias Promotions API",
		ServerHeader: "Venta Maquinarias",
		BodyLimit:    4 * 1024 * 1024,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // gửi khuyến mãi chạy đồng bộ theo lô
		IdleTimeout:  120 * time.Second,
		ErrorHandler: errorHandler,
	})

	// 1. Request ID
	app.Use(requestid.New(requestid.Config{
		Header:    "X-Request-ID",
		Generator: uuid.NewString,
	}))

	// 2. CORS (đặt trước auth để preflight không bị chặn)
	app.Use(cors.New(cors.Config{
		AllowOrigins: corsOrigins(cfg.CORS_Origins),
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			"Authorization",
			"X-Request-ID",
			middleware.OrganizationHeader,
		},
		AllowCredentials: cfg.CORS_AllowCredentials,
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		MaxAge:           24 * 60 * 60,
	}))

	// 3. Security headers
	app.Use(func(c fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		return c.Next()
	})

	// 4. Rate limit theo IP
	if cfg.RateLimit_Enabled && cfg.RateLimit_Max > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:          cfg.RateLimit_Max,
			Expiration:   time.Duration(cfg.RateLimit_Window) * time.Second,
			KeyGenerator: func(c fiber.Ctx) string { return c.IP() },
			LimitReached: func(c fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"code":    common.ErrCodeBusinessOperation.Code,
					"message": "Quá nhiều yêu cầu, vui lòng thử lại sau",
					"status":  "error",
				})
			},
			Next: func(c fiber.Ctx) bool {
				return isHealthPath(c) || c.Method() == fiber.MethodOptions
			},
		}))
		log.Infof("Rate limiting enabled: %d requests per %d seconds", cfg.RateLimit_Max, cfg.RateLimit_Window)
	} else {
		log.Info("Rate limiting disabled")
	}

	// 5. Recover
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e interface{}) {
			logger.WithRequest(c).WithField("panic", fmt.Sprintf("%v", e)).Error("Panic recovered")
		},
	}))

	ping := func(ctx context.Context) error {
		if global.MongoDB_Session == nil {
			return errors.New("mongo client chưa khởi tạo")
		}
		ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		return global.MongoDB_Session.Ping(ctx, nil)
	}

	r := router.NewRouter(app, tokenVerifier(), cfg.AuthEnabled)
	if err := router.SetupRoutes(app, r, basehdl.NewSystemHandler(ping), promorouter.Register); err != nil {
		log.Fatalf("Failed to setup routes: %v", err)
	}
	return app
}
