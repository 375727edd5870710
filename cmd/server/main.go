package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"venta_maquinarias/internal/database"
	"venta_maquinarias/internal/events"
	"venta_maquinarias/internal/global"
	"venta_maquinarias/internal/logger"

	"github.com/gofiber/fiber/v3"
)

// initLogger khởi tạo logger cho toàn bộ ứng dụng (đọc LOG_* từ environment)
func initLogger() {
	if err := logger.Init(nil); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	logger.GetAppLogger().Info("Logger system initialized successfully")
}

// resolvePath resolve đường dẫn tương đối theo thư mục chứa config/env
func resolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	currentDir, err := os.Getwd()
	if err != nil {
		return path
	}
	for {
		if _, err := os.Stat(filepath.Join(currentDir, "config", "env")); err == nil {
			return filepath.Join(currentDir, path)
		}
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return path
		}
		currentDir = parentDir
	}
}

// listen chạy Fiber server (HTTP hoặc HTTPS), block tới khi server dừng
func listen(app *fiber.App) error {
	cfg := global.MongoDB_ServerConfig
	address := ":" + cfg.Address
	log := logger.GetAppLogger()

	if cfg.EnableTLS && cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		certPath := resolvePath(cfg.TLSCertFile)
		keyPath := resolvePath(cfg.TLSKeyFile)
		cert, err := tls.LoadX509KeyPair(certPath, keyPath)
		if err != nil {
			return fmt.Errorf("load TLS certificate: %w", err)
		}
		ln, err := net.Listen("tcp", address)
		if err != nil {
			return fmt.Errorf("create listener: %w", err)
		}
		tlsListener := tls.NewListener(ln, &tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
		})
		log.WithFields(map[string]interface{}{
			"address": address,
			"cert":    certPath,
		}).Info("Starting server with HTTPS/TLS")
		return app.Listener(tlsListener)
	}

	log.WithFields(map[string]interface{}{
		"address":  address,
		"protocol": "HTTP",
	}).Info("Starting server with HTTP")
	return app.Listen(address, fiber.ListenConfig{DisableStartupMessage: true})
}

func main() {
	initLogger()
	log := logger.GetAppLogger()

	InitGlobal()
	InitRegistry()
	InitDefaultData()
	forwarder := initEvents()

	app := InitFiberApp()

	errCh := make(chan error, 1)
	go func() {
		errCh <- listen(app)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		if err != nil {
			log.WithError(err).Error("Server stopped with error")
		}
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		if err := app.ShutdownWithContext(ctx); err != nil {
			log.WithError(err).Warn("Fiber shutdown error")
		}
		cancel()
	}

	// Chờ các handler event (Kafka) gửi xong trước khi đóng writer
	events.Wait()
	if forwarder != nil {
		if err := forwarder.Close(); err != nil {
			log.WithError(err).Warn("Failed to close Kafka writer")
		}
	}
	if global.MongoDB_Session != nil {
		_ = database.CloseInstance(global.MongoDB_Session)
	}
	log.Info("Server exited")
}
