package config

import (
	"fmt"
	"strings"

	"github.com/shopfront/internal/logger"

	"github.com/spf13/viper"
)

// Config 应用配置结构
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Queue    QueueConfig    `mapstructure:"queue"`
	Session  SessionConfig  `mapstructure:"session"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Cart     CartConfig     `mapstructure:"cart"`
	Contact  ContactConfig  `mapstructure:"contact"`
	CORS     CORSConfig     `mapstructure:"cors"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug / release
}

// LogConfig 日志配置
type LogConfig struct {
	Dir        string `mapstructure:"dir"`
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// ToLoggerOptions 转换为 logger 配置
func (c LogConfig) ToLoggerOptions() logger.Options {
	return logger.Options{
		Dir:        c.Dir,
		Filename:   c.Filename,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
		Compress:   c.Compress,
	}
}

// DatabasePoolConfig 数据库连接池配置
type DatabasePoolConfig struct {
	MaxOpenConns           int `mapstructure:"max_open_conns"`
	MaxIdleConns           int `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeSeconds int `mapstructure:"conn_max_lifetime_seconds"`
	ConnMaxIdleTimeSeconds int `mapstructure:"conn_max_idle_time_seconds"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver string             `mapstructure:"driver"` // 数据库驱动（sqlite/postgres）
	DSN    string             `mapstructure:"dsn"`    // 数据库连接串
	Pool   DatabasePoolConfig `mapstructure:"pool"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// QueueConfig 异步队列配置
type QueueConfig struct {
	Enabled     bool           `mapstructure:"enabled"`
	Host        string         `mapstructure:"host"`
	Port        int            `mapstructure:"port"`
	Password    string         `mapstructure:"password"`
	DB          int            `mapstructure:"db"`
	Concurrency int            `mapstructure:"concurrency"`
	Queues      map[string]int `mapstructure:"queues"`
}

// SessionConfig 购物车会话配置
type SessionConfig struct {
	Secret      string `mapstructure:"secret"`
	CookieName  string `mapstructure:"cookie_name"`
	HeaderName  string `mapstructure:"header_name"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

// CatalogConfig 远程商品目录配置
type CatalogConfig struct {
	BaseURL             string `mapstructure:"base_url"`
	ListPath            string `mapstructure:"list_path"`    // 商品列表路径，相对 base_url
	ProductPath         string `mapstructure:"product_path"` // 单个商品路径模板，{id} 为占位符
	TimeoutMS           int    `mapstructure:"timeout_ms"`
	CacheTTLSeconds     int    `mapstructure:"cache_ttl_seconds"` // 0 表示不缓存
	RecommendationLimit int    `mapstructure:"recommendation_limit"`
}

// CartConfig 购物车持久化配置
type CartConfig struct {
	Storage              string `mapstructure:"storage"` // database / redis / memory
	StorageKey           string `mapstructure:"storage_key"`
	RetentionDays        int    `mapstructure:"retention_days"`
	PurgeIntervalMinutes int    `mapstructure:"purge_interval_minutes"`
}

// ContactConfig 联系表单配置
type ContactConfig struct {
	SubmitDelayMS int             `mapstructure:"submit_delay_ms"`
	RateLimit     RateLimitConfig `mapstructure:"rate_limit"`
}

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	WindowSeconds int `mapstructure:"window_seconds"`
	MaxRequests   int `mapstructure:"max_requests"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

// SetDefaults 注册默认配置
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("log.dir", "")
	v.SetDefault("log.filename", "app.log")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 7)
	v.SetDefault("log.max_age_days", 30)
	v.SetDefault("log.compress", true)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "./db/shopfront.db")
	v.SetDefault("database.pool.max_open_conns", 1)
	v.SetDefault("database.pool.max_idle_conns", 1)
	v.SetDefault("database.pool.conn_max_lifetime_seconds", 0)
	v.SetDefault("database.pool.conn_max_idle_time_seconds", 0)
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "127.0.0.1")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "sf")
	v.SetDefault("queue.enabled", false)
	v.SetDefault("queue.host", "127.0.0.1")
	v.SetDefault("queue.port", 6379)
	v.SetDefault("queue.password", "")
	v.SetDefault("queue.db", 1)
	v.SetDefault("queue.concurrency", 2)
	v.SetDefault("queue.queues", map[string]int{
		"default": 1,
	})
	v.SetDefault("session.secret", "session-change-me-in-production")
	v.SetDefault("session.cookie_name", "cart_session")
	v.SetDefault("session.header_name", "X-Cart-Session")
	v.SetDefault("session.expire_hours", 720)
	v.SetDefault("catalog.base_url", "https://v2.api.noroff.dev/online-shop")
	v.SetDefault("catalog.list_path", "")
	v.SetDefault("catalog.product_path", "/{id}")
	v.SetDefault("catalog.timeout_ms", 10000)
	v.SetDefault("catalog.cache_ttl_seconds", 0)
	v.SetDefault("catalog.recommendation_limit", 3)
	v.SetDefault("cart.storage", "database")
	v.SetDefault("cart.storage_key", "cart")
	v.SetDefault("cart.retention_days", 30)
	v.SetDefault("cart.purge_interval_minutes", 60)
	v.SetDefault("contact.submit_delay_ms", 1000)
	v.SetDefault("contact.rate_limit.window_seconds", 60)
	v.SetDefault("contact.rate_limit.max_requests", 5)
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{
		"Content-Type",
		"Content-Length",
		"Accept-Encoding",
		"Accept-Language",
		"Cache-Control",
		"X-Requested-With",
		"X-Cart-Session",
	})
	v.SetDefault("cors.allow_credentials", true)
	v.SetDefault("cors.max_age", 600)
}

// Load 从 config.yml 加载配置
func Load() *Config {
	v := viper.GetViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")     // 从当前目录查找
	v.AddConfigPath("../")   // 如果从 cmd/server 运行
	v.AddConfigPath("./etc") // etc 文件夹

	SetDefaults(v)

	// 环境变量支持（例如 catalog.base_url -> CATALOG_BASE_URL）
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		logger.Warnw("config_file_read_failed",
			"error", err,
			"fallback", "env_or_defaults",
		)
	} else {
		logger.Infow("config_file_loaded", "file", v.ConfigFileUsed())
	}

	cfg, err := Decode(v)
	if err != nil {
		logger.Errorw("config_unmarshal_failed", "error", err)
		panic(err)
	}
	return cfg
}

// Decode 将 viper 中的配置解析为 Config
func Decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("配置解析失败: %w", err)
	}
	cfg.Catalog.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.Catalog.BaseURL), "/")
	cfg.Cart.Storage = strings.ToLower(strings.TrimSpace(cfg.Cart.Storage))
	return &cfg, nil
}
