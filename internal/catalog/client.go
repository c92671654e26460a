package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopfront/internal/config"
	"github.com/shopfront/internal/logger"
	"github.com/shopfront/internal/models"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var (
	ErrConfigInvalid   = errors.New("catalog config invalid")
	ErrRequestFailed   = errors.New("catalog request failed")
	ErrResponseInvalid = errors.New("catalog response invalid")
	ErrNotFound        = errors.New("catalog product not found")
)

const (
	defaultTimeout   = 10 * time.Second
	listCacheKey     = "catalog:products"
	productIDPattern = "{id}"
)

// ListCache 商品列表缓存（可选）
type ListCache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// Client 远程商品目录客户端
type Client struct {
	baseURL     string
	listPath    string
	productPath string
	httpClient  *http.Client
	log         *zap.SugaredLogger
	cache       ListCache
	cacheTTL    time.Duration
	inflight    singleflight.Group
}

// Option 客户端可选项
type Option func(*Client)

// WithHTTPClient 指定 HTTP 客户端
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger 指定日志实例
func WithLogger(log *zap.SugaredLogger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// WithListCache 启用商品列表缓存，ttl <= 0 时不启用
func WithListCache(cache ListCache, ttl time.Duration) Option {
	return func(c *Client) {
		if cache == nil || ttl <= 0 {
			return
		}
		c.cache = cache
		c.cacheTTL = ttl
	}
}

// NewClient 创建目录客户端
func NewClient(cfg config.CatalogConfig, opts ...Option) *Client {
	timeout := defaultTimeout
	if cfg.TimeoutMS > 0 {
		timeout = time.Duration(cfg.TimeoutMS) * time.Millisecond
	}
	productPath := strings.TrimSpace(cfg.ProductPath)
	if productPath == "" {
		productPath = "/" + productIDPattern
	}
	c := &Client{
		baseURL:     strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		listPath:    strings.TrimSpace(cfg.ListPath),
		productPath: productPath,
		httpClient:  &http.Client{Timeout: timeout},
		log:         logger.Component("catalog"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListProducts 获取全部商品；任何失败都记录日志并返回空列表
func (c *Client) ListProducts(ctx context.Context) []models.Product {
	products, err := c.FetchProducts(ctx)
	if err != nil {
		c.log.Errorw("catalog_list_failed", "error", err)
		return []models.Product{}
	}
	return products
}

// GetProduct 获取单个商品；任何失败都记录日志并返回 nil
func (c *Client) GetProduct(ctx context.Context, id string) *models.Product {
	product, err := c.FetchProduct(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.log.Infow("catalog_product_not_found", "product_id", id)
		} else {
			c.log.Errorw("catalog_product_failed", "product_id", id, "error", err)
		}
		return nil
	}
	return product
}

// FetchProducts 获取全部商品（返回错误，供需要区分失败的调用方使用）
// 并发调用合并为一次远程请求，返回的切片由调用方共享，只读使用。
func (c *Client) FetchProducts(ctx context.Context) ([]models.Product, error) {
	if c.cache != nil {
		var cached []models.Product
		if hit, err := c.cache.GetJSON(ctx, listCacheKey, &cached); err == nil && hit {
			c.log.Debugw("catalog_list_cache_hit", "count", len(cached))
			return cached, nil
		} else if err != nil {
			c.log.Warnw("catalog_list_cache_read_failed", "error", err)
		}
	}

	// 合并后的请求不随单个调用方取消，超时由 httpClient 控制
	fetchCtx := context.WithoutCancel(ctx)
	v, err, shared := c.inflight.Do(listCacheKey, func() (interface{}, error) {
		return c.fetchProductList(fetchCtx)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		c.log.Debugw("catalog_list_shared")
	}
	return v.([]models.Product), nil
}

func (c *Client) fetchProductList(ctx context.Context) ([]models.Product, error) {
	endpoint, err := c.listURL()
	if err != nil {
		return nil, err
	}
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	products, skipped, err := decodeProductList(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	if skipped > 0 {
		c.log.Warnw("catalog_list_records_skipped", "skipped", skipped)
	}
	c.log.Infow("catalog_list_fetched", "count", len(products))

	if c.cache != nil {
		if err := c.cache.SetJSON(ctx, listCacheKey, products, c.cacheTTL); err != nil {
			c.log.Warnw("catalog_list_cache_write_failed", "error", err)
		}
	}
	return products, nil
}

// FetchProduct 获取单个商品
func (c *Client) FetchProduct(ctx context.Context, id string) (*models.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrNotFound
	}
	endpoint, err := c.productURL(id)
	if err != nil {
		return nil, err
	}
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	product, err := decodeProduct(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	if product == nil {
		return nil, ErrNotFound
	}
	c.log.Debugw("catalog_product_fetched", "product_id", product.ID)
	return product, nil
}

func (c *Client) listURL() (string, error) {
	if c.baseURL == "" {
		return "", fmt.Errorf("%w: base_url is required", ErrConfigInvalid)
	}
	return c.baseURL + c.listPath, nil
}

func (c *Client) productURL(id string) (string, error) {
	if c.baseURL == "" {
		return "", fmt.Errorf("%w: base_url is required", ErrConfigInvalid)
	}
	path := strings.ReplaceAll(c.productPath, productIDPattern, url.PathEscape(id))
	return c.baseURL + path, nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: http status %d", ErrRequestFailed, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	return body, nil
}
