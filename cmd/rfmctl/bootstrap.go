package main

import (
	"context"
	"fmt"

	"venta_maquinarias/config"
	promosvc "venta_maquinarias/internal/api/promo/service"
	"venta_maquinarias/internal/database"
	"venta_maquinarias/internal/global"
	"venta_maquinarias/internal/logger"
)

// openService đọc cấu hình như server, kết nối MongoDB và đăng ký collection
func openService(ctx context.Context) (*promosvc.PromoService, func(), error) {
	if err := logger.Init(nil); err != nil {
		return nil, nil, fmt.Errorf("khởi tạo logger: %w", err)
	}
	cfg := config.NewConfig()
	if cfg == nil {
		return nil, nil, fmt.Errorf("không đọc được cấu hình (MONGODB_CONNECTION_URI, MONGODB_DBNAME_DATA)")
	}
	global.MongoDB_ServerConfig = cfg

	client, err := database.GetInstance(cfg)
	if err != nil {
		return nil, nil, err
	}
	global.MongoDB_Session = client
	closeFn := func() { _ = database.CloseInstance(client) }

	db := client.Database(cfg.MongoDB_DBName_Data)
	for _, name := range global.MongoDB_ColNames.All() {
		if _, err := global.RegistryCollections.Register(name, db.Collection(name)); err != nil {
			closeFn()
			return nil, nil, err
		}
	}

	svc, err := promosvc.NewPromoService()
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return svc, closeFn, nil
}
