package cart

import (
	"context"
	"sync"
)

// Storage 购物车持久化存储（单键单值）
// Load 的第二个返回值表示键是否存在。
type Storage interface {
	Load(ctx context.Context, key string) (string, bool, error)
	Save(ctx context.Context, key, payload string) error
	Remove(ctx context.Context, key string) error
}

// MemoryStorage 进程内存储
type MemoryStorage struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryStorage 创建内存存储
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: make(map[string]string)}
}

// Load 读取记录
func (s *MemoryStorage) Load(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	payload, ok := s.data[key]
	return payload, ok, nil
}

// Save 写入记录
func (s *MemoryStorage) Save(_ context.Context, key, payload string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = payload
	return nil
}

// Remove 删除记录
func (s *MemoryStorage) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// Has 判断键是否存在
func (s *MemoryStorage) Has(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.data[key]
	return ok
}
