// Package registry cung cấp registry generic thread-safe để quản lý các singleton
// (collections, services) theo tên.
package registry

import (
	"errors"
	"sort"
	"sync"
)

// ErrEmptyName trả về khi đăng ký item với tên rỗng
var ErrEmptyName = errors.New("registry: name cannot be empty")

// Registry quản lý items kiểu T theo tên, an toàn khi dùng đồng thời.
//
// Example:
//
//	cols := NewRegistry[*mongo.Collection]()
//	cols.Register("promo_chats", db.Collection("promo_chats"))
//	if col, ok := cols.Get("promo_chats"); ok { ... }
type Registry[T any] struct {
	mu    sync.RWMutex
	items map[string]T
}

// NewRegistry tạo registry rỗng
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{items: make(map[string]T)}
}

// Register đăng ký item; ghi đè nếu đã tồn tại.
// isNew = false khi ghi đè item cũ.
func (r *Registry[T]) Register(name string, item T) (isNew bool, err error) {
	if name == "" {
		return false, ErrEmptyName
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, exists := r.items[name]
	r.items[name] = item
	return !exists, nil
}

// Get lấy item theo tên
func (r *Registry[T]) Get(name string) (item T, exists bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, exists = r.items[name]
	return item, exists
}

// Names trả về danh sách tên đã đăng ký (đã sắp xếp)
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clear xoá item; cleanup (nếu có) được gọi trước khi xoá.
// Khi cleanup lỗi, item được giữ lại.
func (r *Registry[T]) Clear(name string, cleanup func(T) error) (deleted bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, exists := r.items[name]
	if !exists {
		return false, nil
	}
	if cleanup != nil {
		if err := cleanup(item); err != nil {
			return false, err
		}
	}
	delete(r.items, name)
	return true, nil
}

// ClearAll xoá tất cả items; dừng ở lỗi cleanup đầu tiên
func (r *Registry[T]) ClearAll(cleanup func(T) error) (count int, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for name, item := range r.items {
		if cleanup != nil {
			if err := cleanup(item); err != nil {
				return count, err
			}
		}
		delete(r.items, name)
		count++
	}
	return count, nil
}
