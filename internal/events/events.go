// Package events cung cấp bus sự kiện trong tiến trình khi dữ liệu thay đổi.
// BaseServiceMongoImpl tự phát event sau mỗi thao tác ghi thành công;
// các phản ứng (audit, chuyển tiếp Kafka, ...) đăng ký qua OnDataChanged.
package events

import (
	"context"
	"reflect"
	"sync"

	"venta_maquinarias/internal/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Các loại thao tác ghi
const (
	OpInsert = "insert"
	OpUpdate = "update"
	OpDelete = "delete"
)

// DataChangeEvent mô tả sự kiện thay đổi dữ liệu.
// Document là bản ghi sau khi thay đổi (bản ghi cũ nếu delete).
type DataChangeEvent struct {
	CollectionName string
	Operation      string
	Document       interface{}
}

// DataChangeHandler xử lý sự kiện thay đổi dữ liệu.
type DataChangeHandler func(ctx context.Context, e DataChangeEvent)

var (
	handlers   []DataChangeHandler
	handlersMu sync.RWMutex
	inflight   sync.WaitGroup
)

// OnDataChanged đăng ký handler. Gọi khi khởi động.
func OnDataChanged(h DataChangeHandler) {
	handlersMu.Lock()
	defer handlersMu.Unlock()
	handlers = append(handlers, h)
}

// EmitDataChanged phát sự kiện tới tất cả handler.
// Mỗi handler chạy trong goroutine riêng với context không bị huỷ theo request;
// panic được recover và ghi log.
func EmitDataChanged(ctx context.Context, e DataChangeEvent) {
	handlersMu.RLock()
	list := make([]DataChangeHandler, len(handlers))
	copy(list, handlers)
	handlersMu.RUnlock()

	detached := context.WithoutCancel(ctx)
	for _, h := range list {
		inflight.Add(1)
		go func(fn DataChangeHandler) {
			defer inflight.Done()
			defer func() {
				if r := recover(); r != nil {
					logger.WithModule("events").WithField("collection", e.CollectionName).
						Errorf("Event handler panic: %v", r)
				}
			}()
			fn(detached, e)
		}(h)
	}
}

// Wait chờ các handler đang chạy hoàn tất (dùng khi shutdown và trong test)
func Wait() {
	inflight.Wait()
}

// GetOwnerOrganizationIDFromDocument lấy OwnerOrganizationID từ document bằng reflection.
// Trả về NilObjectID nếu document không có field này.
func GetOwnerOrganizationIDFromDocument(doc interface{}) primitive.ObjectID {
	if doc == nil {
		return primitive.NilObjectID
	}
	val := reflect.ValueOf(doc)
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return primitive.NilObjectID
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return primitive.NilObjectID
	}
	f := val.FieldByName("OwnerOrganizationID")
	if !f.IsValid() || !f.CanInterface() {
		return primitive.NilObjectID
	}
	switch v := f.Interface().(type) {
	case primitive.ObjectID:
		return v
	case *primitive.ObjectID:
		if v != nil {
			return *v
		}
	}
	return primitive.NilObjectID
}
