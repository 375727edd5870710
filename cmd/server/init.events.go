package main

import (
	"venta_maquinarias/internal/events"
	"venta_maquinarias/internal/global"
	"venta_maquinarias/internal/logger"
)

// EventPromotionDispatched là type của event Kafka khi một lần gửi khuyến mãi được lưu
const EventPromotionDispatched = "promotion.dispatched"

// initEvents bật chuyển tiếp event lên Kafka khi KAFKA_BROKERS có giá trị
func initEvents() *events.KafkaForwarder {
	cfg := global.MongoDB_ServerConfig
	log := logger.WithModule("events")

	brokers := cfg.KafkaBrokerList()
	if len(brokers) == 0 {
		log.Info("KAFKA_BROKERS trống, không chuyển tiếp event lên Kafka")
		return nil
	}

	writer := events.NewKafkaWriter(brokers, cfg.KafkaTopicPromotions)
	forwarder := events.NewKafkaForwarder(writer, map[string]string{
		global.MongoDB_ColNames.PromoCampaigns: EventPromotionDispatched,
	})
	forwarder.Register()
	log.WithFields(map[string]interface{}{
		"brokers": brokers,
		"topic":   cfg.KafkaTopicPromotions,
	}).Info("Kafka forwarder registered")
	return forwarder
}
