package promosvc

import (
	"context"
	"fmt"

	basemodels "venta_maquinarias/internal/api/base/models"
	basesvc "venta_maquinarias/internal/api/base/service"
	promomodels "venta_maquinarias/internal/api/promo/models"
	"venta_maquinarias/internal/common"
	"venta_maquinarias/internal/global"
	"venta_maquinarias/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RecordSource đọc document theo filter (BaseServiceMongoImpl thoả interface này)
type RecordSource[T any] interface {
	Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]T, error)
}

// CampaignStore lưu và tra cứu lịch sử gửi
type CampaignStore interface {
	InsertOne(ctx context.Context, data promomodels.PromoCampaign) (promomodels.PromoCampaign, error)
	FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (promomodels.PromoCampaign, error)
	FindWithPagination(ctx context.Context, filter interface{}, page, limit int64, opts *options.FindOptions) (*basemodels.PaginateResult[promomodels.PromoCampaign], error)
}

// collectionService lấy collection đã đăng ký và bọc bằng BaseServiceMongoImpl
func collectionService[T any](name string) (*basesvc.BaseServiceMongoImpl[T], error) {
	coll, exist := global.RegistryCollections.Get(name)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", name, common.ErrNotFound)
	}
	return basesvc.NewBaseServiceMongo[T](coll), nil
}

// listByOrganization đọc toàn bộ document của tổ chức. Lỗi được ghi log và trả về slice rỗng.
func listByOrganization[T any](ctx context.Context, src RecordSource[T], source string, orgID primitive.ObjectID) []T {
	if src == nil {
		return []T{}
	}
	items, err := src.Find(ctx, bson.M{"ownerOrganizationId": orgID}, nil)
	if err != nil {
		logger.WithContext(ctx).WithFields(map[string]interface{}{
			"module":         "promo",
			"source":         source,
			"organizationId": orgID.Hex(),
		}).WithError(err).Warn("📣 [PROMO] Không đọc được nguồn dữ liệu, dùng danh sách rỗng")
		return []T{}
	}
	return items
}
