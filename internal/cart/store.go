package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/shopfront/internal/logger"
	"github.com/shopfront/internal/models"

	"go.uber.org/zap"
)

var (
	// ErrStorageUnavailable 未配置持久化存储
	ErrStorageUnavailable = errors.New("cart storage unavailable")
	// ErrPersistFailed 持久化写入失败（内存状态已更新）
	ErrPersistFailed = errors.New("cart persist failed")
)

// Store 单个购物车的状态持有者：归约器负责状态，存储负责副作用
type Store struct {
	mu      sync.RWMutex
	state   State
	summary Summary
	storage Storage
	key     string
	log     *zap.SugaredLogger
}

// NewStore 创建空购物车，随后需调用 Hydrate 恢复持久化状态
func NewStore(storage Storage, key string, log *zap.SugaredLogger) *Store {
	if log == nil {
		log = logger.Component("cart")
	}
	return &Store{
		state:   State{Items: []models.CartItem{}},
		summary: Summarize(nil),
		storage: storage,
		key:     strings.TrimSpace(key),
		log:     log,
	}
}

// Open 创建并恢复购物车
func Open(ctx context.Context, storage Storage, key string, log *zap.SugaredLogger) (*Store, error) {
	store := NewStore(storage, key, log)
	if err := store.Hydrate(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

// Hydrate 从存储恢复购物车；记录格式错误时丢弃记录并以空购物车开始
func (s *Store) Hydrate(ctx context.Context) error {
	if s.storage == nil {
		return ErrStorageUnavailable
	}
	payload, ok, err := s.storage.Load(ctx, s.key)
	if err != nil {
		return fmt.Errorf("load cart %s: %w", s.key, err)
	}
	if !ok {
		return nil
	}
	items, err := decodeItems(payload)
	if err != nil {
		s.log.Warnw("cart_hydrate_failed", "key", s.key, "error", err)
		if rmErr := s.storage.Remove(ctx, s.key); rmErr != nil {
			s.log.Warnw("cart_discard_malformed_failed", "key", s.key, "error", rmErr)
		}
		return nil
	}
	if len(items) == 0 {
		// 空购物车不保留持久化记录
		if rmErr := s.storage.Remove(ctx, s.key); rmErr != nil {
			s.log.Warnw("cart_discard_empty_failed", "key", s.key, "error", rmErr)
		}
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = State{Items: items}
	s.summary = Summarize(items)
	return nil
}

// AddToCart 加入商品
func (s *Store) AddToCart(ctx context.Context, product models.Product) error {
	return s.dispatch(ctx, AddItem{Product: product})
}

// RemoveFromCart 移除商品
func (s *Store) RemoveFromCart(ctx context.Context, productID string) error {
	return s.dispatch(ctx, RemoveItem{ProductID: productID})
}

// UpdateQuantity 设置数量，<= 0 时移除
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	if quantity <= 0 {
		return s.RemoveFromCart(ctx, productID)
	}
	return s.dispatch(ctx, SetQuantity{ProductID: productID, Quantity: quantity})
}

// ClearCart 清空购物车并删除持久化记录
func (s *Store) ClearCart(ctx context.Context) error {
	return s.dispatch(ctx, Clear{})
}

// Items 返回购物车项副本
func (s *Store) Items() []models.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneItems(s.state.Items)
}

// ItemCount 件数合计
func (s *Store) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summary.ItemCount
}

// Total 总价
func (s *Store) Total() models.Money {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summary.Total
}

// Summary 派生汇总
func (s *Store) Summary() Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summary
}

// Key 存储键
func (s *Store) Key() string {
	return s.key
}

func (s *Store) dispatch(ctx context.Context, action Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Reduce(s.state, action)
	s.summary = Summarize(s.state.Items)

	// 持锁写入，保证同一购物车的持久化顺序与变更顺序一致
	return s.persist(ctx, s.state.Items)
}

func (s *Store) persist(ctx context.Context, items []models.CartItem) error {
	if s.storage == nil {
		return ErrStorageUnavailable
	}
	if len(items) == 0 {
		if err := s.storage.Remove(ctx, s.key); err != nil {
			s.log.Errorw("cart_remove_failed", "key", s.key, "error", err)
			return fmt.Errorf("%w: %v", ErrPersistFailed, err)
		}
		return nil
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}
	if err := s.storage.Save(ctx, s.key, string(payload)); err != nil {
		s.log.Errorw("cart_save_failed", "key", s.key, "error", err)
		return fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}
	return nil
}

// decodeItems 解析持久化记录，过滤无效项（空ID、数量 < 1、重复ID）
func decodeItems(payload string) ([]models.CartItem, error) {
	var raw []models.CartItem
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, err
	}
	items := make([]models.CartItem, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, item := range raw {
		id := strings.TrimSpace(item.ID)
		if id == "" || item.Quantity < 1 {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		items = append(items, item)
	}
	return items, nil
}
