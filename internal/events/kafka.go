package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"venta_maquinarias/internal/logger"

	"github.com/segmentio/kafka-go"
)

// MessageWriter là phần của kafka.Writer mà forwarder cần
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaMessage là payload JSON gửi lên Kafka
type KafkaMessage struct {
	Type           string      `json:"type"`
	Collection     string      `json:"collection"`
	Operation      string      `json:"operation"`
	OrganizationID string      `json:"organizationId,omitempty"`
	Document       interface{} `json:"document"`
	EmittedAt      int64       `json:"emittedAt"`
}

// KafkaForwarder chuyển tiếp các DataChangeEvent được chọn lên Kafka topic.
// Key của message là organization id để các event cùng tổ chức vào cùng partition.
type KafkaForwarder struct {
	writer  MessageWriter
	types   map[string]string // collection -> event type
	timeout time.Duration

	mu     sync.Mutex
	closed bool
}

// NewKafkaWriter tạo kafka.Writer cho danh sách brokers và topic
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		Compression:  kafka.Gzip,
		RequiredAcks: kafka.RequireAll,
	}
}

// NewKafkaForwarder tạo forwarder; types map collection -> tên event (ví dụ "promotion.dispatched")
func NewKafkaForwarder(writer MessageWriter, types map[string]string) *KafkaForwarder {
	return &KafkaForwarder{writer: writer, types: types, timeout: 10 * time.Second}
}

// Register đăng ký forwarder vào bus
func (f *KafkaForwarder) Register() {
	OnDataChanged(f.Handle)
}

// Handle là DataChangeHandler: chỉ chuyển tiếp insert của các collection đã cấu hình
func (f *KafkaForwarder) Handle(ctx context.Context, e DataChangeEvent) {
	eventType, ok := f.types[e.CollectionName]
	if !ok || e.Operation != OpInsert {
		return
	}

	f.mu.Lock()
	closed := f.closed
	f.mu.Unlock()
	if closed {
		return
	}

	log := logger.WithModule("events").WithField("collection", e.CollectionName)
	msg := KafkaMessage{
		Type:       eventType,
		Collection: e.CollectionName,
		Operation:  e.Operation,
		Document:   e.Document,
		EmittedAt:  time.Now().UnixMilli(),
	}
	if orgID := GetOwnerOrganizationIDFromDocument(e.Document); !orgID.IsZero() {
		msg.OrganizationID = orgID.Hex()
	}
	value, err := json.Marshal(msg)
	if err != nil {
		log.WithError(err).Error("Không thể encode event Kafka")
		return
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()
	if err := f.writer.WriteMessages(ctx, kafka.Message{Key: []byte(msg.OrganizationID), Value: value}); err != nil {
		log.WithError(err).Warn("Không thể gửi event lên Kafka")
		return
	}
	log.WithField("type", eventType).Debug("Đã gửi event lên Kafka")
}

// Close đóng writer; các event sau đó bị bỏ qua
func (f *KafkaForwarder) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	f.closed = true
	return f.writer.Close()
}
