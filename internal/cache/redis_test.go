package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopfront/internal/config"
)

func TestDisabledRedisIsNoop(t *testing.T) {
	if err := InitRedis(&config.RedisConfig{Enabled: false}); err != nil {
		t.Fatalf("init disabled redis failed: %v", err)
	}
	ctx := context.Background()
	if Enabled() || Client() != nil {
		t.Fatalf("redis should be disabled")
	}
	if err := SetJSON(ctx, "k", map[string]int{"a": 1}, time.Minute); err != nil {
		t.Fatalf("set on disabled cache should be noop: %v", err)
	}
	var dest map[string]int
	hit, err := JSONCache{}.GetJSON(ctx, "k", &dest)
	if err != nil || hit {
		t.Fatalf("get on disabled cache want miss, got hit=%v err=%v", hit, err)
	}
	if err := Ping(ctx); err != nil {
		t.Fatalf("ping on disabled cache should be noop: %v", err)
	}
}

func TestCartStorageRequiresRedis(t *testing.T) {
	_ = InitRedis(nil)
	storage := NewCartStorage(time.Hour)
	if _, _, err := storage.Load(context.Background(), "cart:s1"); !errors.Is(err, ErrRedisDisabled) {
		t.Fatalf("want ErrRedisDisabled, got %v", err)
	}
	if err := storage.Save(context.Background(), "cart:s1", "[]"); !errors.Is(err, ErrRedisDisabled) {
		t.Fatalf("want ErrRedisDisabled, got %v", err)
	}
}

func TestBuildKey(t *testing.T) {
	redisPrefix = "sf"
	if got := buildKey(" cart:s1 "); got != "sf:cart:s1" {
		t.Fatalf("unexpected key %q", got)
	}
	if got := buildKey(""); got != "sf" {
		t.Fatalf("empty key should map to prefix, got %q", got)
	}
}

func TestNewRedisOptionsDefaults(t *testing.T) {
	opts := newRedisOptions(&config.RedisConfig{Enabled: true, DB: 2, Password: "pw"})
	if opts.Addr != "127.0.0.1:6379" {
		t.Fatalf("default addr want 127.0.0.1:6379 got %s", opts.Addr)
	}
	if opts.DB != 2 || opts.Password != "pw" {
		t.Fatalf("db/password not propagated: %+v", opts)
	}
	opts = newRedisOptions(&config.RedisConfig{Host: " redis ", Port: 6380})
	if opts.Addr != "redis:6380" {
		t.Fatalf("unexpected addr %s", opts.Addr)
	}
}
