package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopfront/internal/cart"
	"github.com/shopfront/internal/logger"
	"github.com/shopfront/internal/models"

	"go.uber.org/zap"
)

// StaleCartPurger 清理长期未更新的持久化购物车
type StaleCartPurger interface {
	DeleteUpdatedBefore(ctx context.Context, before time.Time) (int64, error)
}

// CartView 购物车视图（用于响应）
type CartView struct {
	Items     []models.CartItem `json:"items"`
	ItemCount int               `json:"item_count"`
	Total     models.Money      `json:"total"`
}

// CheckoutResult 结算确认
type CheckoutResult struct {
	ItemCount   int          `json:"item_count"`
	Total       models.Money `json:"total"`
	CompletedAt time.Time    `json:"completed_at"`
}

// CartServiceOptions 购物车服务配置
type CartServiceOptions struct {
	StorageKey string
	Purger     StaleCartPurger
	Logger     *zap.SugaredLogger
}

// CartService 购物车服务：每个会话对应一个持久化键
type CartService struct {
	storage    cart.Storage
	catalog    ProductCatalog
	storageKey string
	purger     StaleCartPurger
	locks      *keyedMutex
	log        *zap.SugaredLogger
}

// NewCartService 创建购物车服务
func NewCartService(storage cart.Storage, source ProductCatalog, opts CartServiceOptions) *CartService {
	key := strings.TrimSpace(opts.StorageKey)
	if key == "" {
		key = "cart"
	}
	log := opts.Logger
	if log == nil {
		log = logger.Component("cart_service")
	}
	return &CartService{
		storage:    storage,
		catalog:    source,
		storageKey: key,
		purger:     opts.Purger,
		locks:      newKeyedMutex(),
		log:        log,
	}
}

// StorageKey 会话购物车的持久化键
func (s *CartService) StorageKey(sessionID string) string {
	return fmt.Sprintf("%s:%s", s.storageKey, strings.TrimSpace(sessionID))
}

// View 查看购物车
func (s *CartService) View(ctx context.Context, sessionID string) (*CartView, error) {
	var view *CartView
	err := s.withStore(ctx, sessionID, func(store *cart.Store) error {
		view = buildCartView(store)
		return nil
	})
	return view, err
}

// Add 加入一件商品，已存在时数量 +1
func (s *CartService) Add(ctx context.Context, sessionID, productID string) (*CartView, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, ErrProductIDRequired
	}
	product := s.catalog.GetProduct(ctx, productID)
	if product == nil {
		return nil, ErrProductNotFound
	}
	return s.mutate(ctx, sessionID, func(store *cart.Store) error {
		return store.AddToCart(ctx, *product)
	})
}

// UpdateQuantity 设置数量，<= 0 时移除该商品
func (s *CartService) UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) (*CartView, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, ErrProductIDRequired
	}
	return s.mutate(ctx, sessionID, func(store *cart.Store) error {
		return store.UpdateQuantity(ctx, productID, quantity)
	})
}

// Remove 移除商品
func (s *CartService) Remove(ctx context.Context, sessionID, productID string) (*CartView, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, ErrProductIDRequired
	}
	return s.mutate(ctx, sessionID, func(store *cart.Store) error {
		return store.RemoveFromCart(ctx, productID)
	})
}

// Clear 清空购物车
func (s *CartService) Clear(ctx context.Context, sessionID string) (*CartView, error) {
	return s.mutate(ctx, sessionID, func(store *cart.Store) error {
		return store.ClearCart(ctx)
	})
}

// Checkout 结算：仅清空购物车并返回确认信息，不产生订单
func (s *CartService) Checkout(ctx context.Context, sessionID string) (*CheckoutResult, error) {
	var result *CheckoutResult
	err := s.withStore(ctx, sessionID, func(store *cart.Store) error {
		summary := store.Summary()
		if err := store.ClearCart(ctx); err != nil {
			return err
		}
		result = &CheckoutResult{
			ItemCount:   summary.ItemCount,
			Total:       summary.Total,
			CompletedAt: time.Now(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Infow("cart_checkout", "session_id", sessionID, "item_count", result.ItemCount, "total", result.Total.String())
	return result, nil
}

// PurgeStale 删除指定时间前未更新的持久化购物车
func (s *CartService) PurgeStale(ctx context.Context, before time.Time) (int64, error) {
	if s.purger == nil {
		return 0, nil
	}
	deleted, err := s.purger.DeleteUpdatedBefore(ctx, before)
	if err != nil {
		s.log.Errorw("cart_purge_failed", "before", before, "error", err)
		return 0, err
	}
	if deleted > 0 {
		s.log.Infow("cart_purged", "before", before, "deleted", deleted)
	}
	return deleted, nil
}

func (s *CartService) mutate(ctx context.Context, sessionID string, fn func(*cart.Store) error) (*CartView, error) {
	var view *CartView
	err := s.withStore(ctx, sessionID, func(store *cart.Store) error {
		if err := fn(store); err != nil {
			return err
		}
		view = buildCartView(store)
		return nil
	})
	return view, err
}

// withStore 在会话锁内恢复购物车并执行操作
func (s *CartService) withStore(ctx context.Context, sessionID string, fn func(*cart.Store) error) error {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return ErrSessionRequired
	}
	key := s.StorageKey(sessionID)
	unlock := s.locks.Lock(key)
	defer unlock()

	store, err := cart.Open(ctx, s.storage, key, s.log)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCartUnavailable, err)
	}
	if err := fn(store); err != nil {
		if errors.Is(err, cart.ErrPersistFailed) {
			return fmt.Errorf("%w: %v", ErrCartSaveFailed, err)
		}
		return err
	}
	return nil
}

func buildCartView(store *cart.Store) *CartView {
	summary := store.Summary()
	return &CartView{
		Items:     store.Items(),
		ItemCount: summary.ItemCount,
		Total:     summary.Total,
	}
}
