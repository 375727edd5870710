// package basesvc cung cấp các service cơ bản cho việc tương tác với MongoDB
package basesvc

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	basemodels "venta_maquinarias/internal/api/base/models"
	"venta_maquinarias/internal/common"
	"venta_maquinarias/internal/events"
	"venta_maquinarias/internal/logger"
)

// BaseServiceMongo định nghĩa các thao tác cơ bản với một collection
type BaseServiceMongo[Model any] interface {
	InsertOne(ctx context.Context, data Model) (Model, error)
	FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (Model, error)
	Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]Model, error)
	FindWithPagination(ctx context.Context, filter interface{}, page, limit int64, opts *options.FindOptions) (*basemodels.PaginateResult[Model], error)
}

// BaseServiceMongoImpl triển khai BaseServiceMongo cho model T
type BaseServiceMongoImpl[T any] struct {
	collection *mongo.Collection
}

// NewBaseServiceMongo tạo service cho collection
func NewBaseServiceMongo[T any](collection *mongo.Collection) *BaseServiceMongoImpl[T] {
	return &BaseServiceMongoImpl[T]{collection: collection}
}

// InsertOne tạo mới một bản ghi và phát event insert
func (s *BaseServiceMongoImpl[T]) InsertOne(ctx context.Context, data T) (T, error) {
	var zero T

	result, err := s.collection.InsertOne(ctx, data)
	if err != nil {
		return zero, common.ConvertMongoError(err)
	}

	// Lấy lại document vừa tạo; đọc lại lỗi thì dùng data kèm _id vừa sinh (document đã được lưu)
	var created T
	if err := s.collection.FindOne(ctx, bson.M{"_id": result.InsertedID}).Decode(&created); err != nil {
		logger.WithModule("database").WithError(err).WithField("collection", s.collection.Name()).
			Warn("Không đọc lại được document vừa tạo, dùng dữ liệu đã gửi")
		created, err = withInsertedID(data, result.InsertedID)
		if err != nil {
			return zero, common.ConvertMongoError(err)
		}
	}

	events.EmitDataChanged(ctx, events.DataChangeEvent{
		CollectionName: s.collection.Name(),
		Operation:      events.OpInsert,
		Document:       created,
	})
	return created, nil
}

// FindOne tìm một document theo điều kiện lọc
func (s *BaseServiceMongoImpl[T]) FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (T, error) {
	var zero, result T
	if filter == nil {
		filter = bson.D{}
	}
	if opts == nil {
		opts = options.FindOne()
	}

	if err := s.collection.FindOne(ctx, filter, opts).Decode(&result); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return zero, common.ErrNotFound
		}
		return zero, common.ConvertMongoError(err)
	}
	return result, nil
}

// Find tìm tất cả bản ghi theo điều kiện lọc; luôn trả về slice khác nil
func (s *BaseServiceMongoImpl[T]) Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]T, error) {
	if filter == nil {
		filter = bson.D{}
	}
	if opts == nil {
		opts = options.Find()
	}

	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	results := []T{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	return results, nil
}

// FindWithPagination tìm bản ghi theo trang (page bắt đầu từ 1)
func (s *BaseServiceMongoImpl[T]) FindWithPagination(ctx context.Context, filter interface{}, page, limit int64, opts *options.FindOptions) (*basemodels.PaginateResult[T], error) {
	if filter == nil {
		filter = bson.D{}
	}
	if opts == nil {
		opts = options.Find()
	}
	page, limit = basemodels.NormalizePage(page, limit)
	opts.SetSkip((page - 1) * limit)
	opts.SetLimit(limit)

	total, err := s.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}
	items, err := s.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	return basemodels.NewPaginateResult(items, page, limit, total), nil
}

// CountDocuments đếm số document theo điều kiện lọc
func (s *BaseServiceMongoImpl[T]) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	if filter == nil {
		filter = bson.D{}
	}
	count, err := s.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	return count, nil
}

// withInsertedID trả về bản sao của data với _id = id (qua round-trip BSON)
func withInsertedID[T any](data T, id interface{}) (T, error) {
	var out T
	raw, err := bson.Marshal(data)
	if err != nil {
		return out, err
	}
	var doc bson.D
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return out, err
	}
	replaced := false
	for i := range doc {
		if doc[i].Key == "_id" {
			doc[i].Value = id
			replaced = true
		}
	}
	if !replaced {
		doc = append(bson.D{{Key: "_id", Value: id}}, doc...)
	}
	raw, err = bson.Marshal(doc)
	if err != nil {
		return out, err
	}
	err = bson.Unmarshal(raw, &out)
	return out, err
}
