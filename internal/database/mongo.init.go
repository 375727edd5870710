package database

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"venta_maquinarias/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureCollections tạo các collection còn thiếu trong db
func EnsureCollections(ctx context.Context, db *mongo.Database, names []string) error {
	existing, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}
	have := make(map[string]bool, len(existing))
	for _, name := range existing {
		have[name] = true
	}
	for _, name := range names {
		if have[name] {
			continue
		}
		logger.WithModule("database").Infof("Collection %s chưa tồn tại, tạo mới.", name)
		if err := db.CreateCollection(ctx, name); err != nil && !isIndexExistsError(err) {
			return fmt.Errorf("failed to create collection %s: %w", name, err)
		}
	}
	return nil
}

// CreateIndexes tạo index theo tag `index` của model.
// Cú pháp tag: "single:1", "single:-1", "unique", "sparse", "compound:<tên nhóm>".
func CreateIndexes(ctx context.Context, collection *mongo.Collection, model interface{}) error {
	models := IndexModelsFromTags(model)
	if len(models) == 0 {
		return nil
	}
	for _, m := range models {
		if _, err := collection.Indexes().CreateOne(ctx, m); err != nil && !isIndexExistsError(err) {
			return fmt.Errorf("không thể tạo index cho %s: %w", collection.Name(), err)
		}
	}
	logger.WithModule("database").Debugf("Đã đảm bảo %d index cho collection %s", len(models), collection.Name())
	return nil
}

// IndexModelsFromTags dựng danh sách index từ struct tags (không gọi DB)
func IndexModelsFromTags(model interface{}) []mongo.IndexModel {
	t := reflect.TypeOf(model)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}

	var out []mongo.IndexModel
	compound := map[string]bson.D{}
	var groups []string

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag, ok := field.Tag.Lookup("index")
		if !ok {
			continue
		}
		bsonField := strings.Split(field.Tag.Get("bson"), ",")[0]
		if bsonField == "" || bsonField == "-" {
			continue
		}

		order := 1
		unique, sparse := false, false
		single := false
		for _, part := range strings.Split(tag, ",") {
			key, value, _ := strings.Cut(strings.TrimSpace(part), ":")
			switch key {
			case "single":
				single = true
				if value == "-1" {
					order = -1
				}
			case "unique":
				unique = true
			case "sparse":
				sparse = true
			case "compound":
				if _, seen := compound[value]; !seen {
					groups = append(groups, value)
				}
				compound[value] = append(compound[value], bson.E{Key: bsonField, Value: 1})
			}
		}

		if single {
			out = append(out, mongo.IndexModel{
				Keys:    bson.D{{Key: bsonField, Value: order}},
				Options: options.Index().SetName(bsonField + "_single"),
			})
		}
		if unique {
			opts := options.Index().SetName(bsonField + "_unique").SetUnique(true)
			if sparse {
				opts.SetSparse(true)
			}
			out = append(out, mongo.IndexModel{Keys: bson.D{{Key: bsonField, Value: 1}}, Options: opts})
		}
	}

	sort.Strings(groups)
	for _, name := range groups {
		opts := options.Index().SetName(name)
		if strings.Contains(name, "_unique") {
			opts.SetUnique(true)
		}
		out = append(out, mongo.IndexModel{Keys: compound[name], Options: opts})
	}
	return out
}

func isIndexExistsError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "already exists") || strings.Contains(s, "duplicate")
}
