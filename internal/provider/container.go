package provider

import (
	"strings"
	"time"

	"github.com/shopfront/internal/cache"
	"github.com/shopfront/internal/cart"
	"github.com/shopfront/internal/catalog"
	"github.com/shopfront/internal/config"
	"github.com/shopfront/internal/constants"
	"github.com/shopfront/internal/logger"
	"github.com/shopfront/internal/models"
	"github.com/shopfront/internal/queue"
	"github.com/shopfront/internal/repository"
	"github.com/shopfront/internal/service"
	"github.com/shopfront/internal/session"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Infrastructure
	CatalogClient  *catalog.Client
	SessionManager *session.Manager
	CartStorage    cart.Storage
	CartBackend    string

	// Repositories
	CartRecordRepo repository.CartRecordRepository

	// Services
	ProductService *service.ProductService
	CartService    *service.CartService
	ContactService *service.ContactService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化基础组件
	c.initInfrastructure()

	// 3. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	if models.DB != nil {
		c.CartRecordRepo = repository.NewCartRecordRepository(models.DB)
	}
}

func (c *Container) initInfrastructure() {
	opts := []catalog.Option{catalog.WithLogger(logger.Component("catalog"))}
	if ttl := time.Duration(c.Config.Catalog.CacheTTLSeconds) * time.Second; ttl > 0 {
		if cache.Enabled() {
			opts = append(opts, catalog.WithListCache(cache.JSONCache{}, ttl))
		} else {
			logger.Warnw("provider_catalog_cache_skipped", "reason", "redis disabled")
		}
	}
	c.CatalogClient = catalog.NewClient(c.Config.Catalog, opts...)
	c.SessionManager = session.NewManager(c.Config.Session.Secret, c.Config.Session.ExpireHours)
	c.CartStorage, c.CartBackend = c.resolveCartStorage()
	logger.Infow("provider_cart_storage", "backend", c.CartBackend)
}

// resolveCartStorage 按配置选择购物车持久化后端，不可用时回退到进程内存储
func (c *Container) resolveCartStorage() (cart.Storage, string) {
	backend := strings.ToLower(strings.TrimSpace(c.Config.Cart.Storage))
	switch backend {
	case constants.CartStorageRedis:
		if cache.Enabled() {
			return cache.NewCartStorage(retention(c.Config.Cart)), constants.CartStorageRedis
		}
		logger.Warnw("provider_cart_storage_fallback", "want", backend, "reason", "redis disabled")
	case constants.CartStorageDatabase, "":
		if c.CartRecordRepo != nil {
			return c.CartRecordRepo, constants.CartStorageDatabase
		}
		logger.Warnw("provider_cart_storage_fallback", "want", constants.CartStorageDatabase, "reason", "database not initialized")
	case constants.CartStorageMemory:
	default:
		logger.Warnw("provider_cart_storage_unknown", "want", backend)
	}
	return cart.NewMemoryStorage(), constants.CartStorageMemory
}

func (c *Container) initServices() {
	var purger service.StaleCartPurger
	if c.CartBackend == constants.CartStorageDatabase && c.CartRecordRepo != nil {
		purger = c.CartRecordRepo
	}
	c.ProductService = service.NewProductService(c.CatalogClient, c.Config.Catalog.RecommendationLimit)
	c.CartService = service.NewCartService(c.CartStorage, c.CatalogClient, service.CartServiceOptions{
		StorageKey: c.Config.Cart.StorageKey,
		Purger:     purger,
		Logger:     logger.Component("cart"),
	})
	c.ContactService = service.NewContactService(
		time.Duration(c.Config.Contact.SubmitDelayMS)*time.Millisecond,
		logger.Component("contact"),
	)
}

// CartRetention 购物车保留时长
func (c *Container) CartRetention() time.Duration {
	return retention(c.Config.Cart)
}

func retention(cfg config.CartConfig) time.Duration {
	days := cfg.RetentionDays
	if days <= 0 {
		days = 30
	}
	return time.Duration(days) * 24 * time.Hour
}
