package provider

import (
	"testing"

	"github.com/shopfront/internal/config"
	"github.com/shopfront/internal/constants"
	"github.com/shopfront/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

func loadDefaultConfig(t *testing.T) *config.Config {
	t.Helper()
	v := viper.New()
	config.SetDefaults(v)
	cfg, err := config.Decode(v)
	if err != nil {
		t.Fatalf("decode config failed: %v", err)
	}
	return cfg
}

func TestNewContainerUsesDatabaseStorage(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:provider_container?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.MigrateTables(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	prev := models.DB
	models.DB = db
	t.Cleanup(func() { models.DB = prev })

	c := NewContainer(loadDefaultConfig(t))
	if c.CartBackend != constants.CartStorageDatabase {
		t.Fatalf("want database backend, got %s", c.CartBackend)
	}
	if c.CartService == nil || c.ProductService == nil || c.ContactService == nil || c.SessionManager == nil {
		t.Fatalf("services should be initialized")
	}
	if c.QueueClient != nil {
		t.Fatalf("queue disabled by default")
	}
	if c.CartRetention().Hours() != 30*24 {
		t.Fatalf("unexpected retention %v", c.CartRetention())
	}
}

func TestNewContainerFallsBackToMemory(t *testing.T) {
	prev := models.DB
	models.DB = nil
	t.Cleanup(func() { models.DB = prev })

	cfg := loadDefaultConfig(t)
	cfg.Cart.Storage = constants.CartStorageRedis
	c := NewContainer(cfg)
	if c.CartBackend != constants.CartStorageMemory {
		t.Fatalf("redis disabled should fall back to memory, got %s", c.CartBackend)
	}
}
