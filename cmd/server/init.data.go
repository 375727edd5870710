package main

import (
	"context"
	"time"

	promomodels "venta_maquinarias/internal/api/promo/models"
	"venta_maquinarias/internal/database"
	"venta_maquinarias/internal/global"
	"venta_maquinarias/internal/logger"
)

// InitDefaultData tạo collection còn thiếu và index theo struct tag của model
func InitDefaultData() {
	log := logger.GetAppLogger()
	log.Info("🔄 [INIT] Ensuring collections and indexes...")

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := global.MongoDB_Session.Database(global.MongoDB_ServerConfig.MongoDB_DBName_Data)
	if err := database.EnsureCollections(ctx, db, global.MongoDB_ColNames.All()); err != nil {
		log.Fatalf("Failed to ensure collections: %v", err)
	}

	models := map[string]interface{}{
		global.MongoDB_ColNames.PromoReservations: promomodels.Reservation{},
		global.MongoDB_ColNames.PromoChats:        promomodels.Chat{},
		global.MongoDB_ColNames.PromoCampaigns:    promomodels.PromoCampaign{},
	}
	for name, model := range models {
		if err := database.CreateIndexes(ctx, db.Collection(name), model); err != nil {
			// Index lỗi không chặn khởi động; truy vấn vẫn chạy được, chỉ chậm hơn
			log.WithError(err).WithField("collection", name).Warn("⚠️ [INIT] Failed to create indexes")
		}
	}
	log.Info("✅ [INIT] Collections and indexes ready")
}
