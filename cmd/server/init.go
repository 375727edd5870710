package main

import (
	"venta_maquinarias/config"
	promodto "venta_maquinarias/internal/api/promo/dto"
	"venta_maquinarias/internal/database"
	"venta_maquinarias/internal/global"
	"venta_maquinarias/internal/utility"

	"github.com/sirupsen/logrus"
)

// InitGlobal khởi tạo các biến toàn cục
func InitGlobal() {
	initValidator()        // Khởi tạo validator
	initConfig()           // Khởi tạo cấu hình server
	initDatabase_MongoDB() // Khởi tạo kết nối database
	initFirebase()         // Khởi tạo Firebase (chỉ khi AUTH_ENABLED)
}

// initValidator đăng ký custom validators: no_xss, phone_loose, segment
func initValidator() {
	global.InitValidator()
	if err := promodto.RegisterValidators(global.Validate); err != nil {
		logrus.Fatalf("Failed to register promo validators: %v", err)
	}
	logrus.Info("Initialized validator")
}

// initConfig đọc cấu hình server từ env
func initConfig() {
	global.MongoDB_ServerConfig = config.NewConfig()
	if global.MongoDB_ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil")
	}
	logrus.Info("Initialized server config")
}

// initDatabase_MongoDB kết nối MongoDB
func initDatabase_MongoDB() {
	var err error
	global.MongoDB_Session, err = database.GetInstance(global.MongoDB_ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err)
	}
	logrus.Info("Connected to MongoDB")
}

// initFirebase khởi tạo Firebase Admin SDK để xác thực ID token
func initFirebase() {
	cfg := global.MongoDB_ServerConfig
	if !cfg.AuthEnabled {
		logrus.Warn("AUTH_ENABLED=false, bỏ qua Firebase: tenant chỉ đọc từ header X-Organization-ID")
		return
	}
	if cfg.FirebaseProjectID == "" || cfg.FirebaseCredentialsPath == "" {
		logrus.Warn("Firebase config không đầy đủ, các route cần xác thực sẽ trả về 503")
		return
	}
	if err := utility.InitFirebase(cfg.FirebaseProjectID, cfg.FirebaseCredentialsPath); err != nil {
		// Không fatal: health check vẫn chạy được
		logrus.Errorf("Failed to initialize Firebase: %v", err)
		return
	}
	logrus.Info("Firebase initialized successfully")
}
