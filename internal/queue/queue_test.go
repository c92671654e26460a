package queue

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopfront/internal/config"
)

func TestNewCartPurgeStaleTask(t *testing.T) {
	before := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	task, err := NewCartPurgeStaleTask(CartPurgeStalePayload{BeforeUnix: before.Unix()})
	if err != nil {
		t.Fatalf("create task failed: %v", err)
	}
	if task.Type() != TaskCartPurgeStale {
		t.Fatalf("unexpected task type %s", task.Type())
	}
	var payload CartPurgeStalePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		t.Fatalf("decode payload failed: %v", err)
	}
	if !payload.Before().Equal(before) {
		t.Fatalf("want %v got %v", before, payload.Before())
	}
}

func TestDisabledClientSkipsEnqueue(t *testing.T) {
	client, err := NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	if client.Enabled() {
		t.Fatalf("client should be disabled")
	}
	if err := client.EnqueueCartPurgeStale(CartPurgeStalePayload{BeforeUnix: 1}, time.Minute); err != nil {
		t.Fatalf("disabled enqueue should be noop, got %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close disabled client failed: %v", err)
	}
}

func TestBuildServerConfigDefaults(t *testing.T) {
	opt, cfg := BuildServerConfig(&config.QueueConfig{Host: " redis ", Port: 6380, DB: 2})
	if opt.Addr != "redis:6380" || opt.DB != 2 {
		t.Fatalf("unexpected redis opt %+v", opt)
	}
	if cfg.Concurrency != defaultConcurrency || cfg.Queues[DefaultQueue] != 1 || cfg.Logger == nil || cfg.ErrorHandler == nil {
		t.Fatalf("unexpected server config %+v", cfg)
	}
}

func TestPurgeTaskOptions(t *testing.T) {
	if got := len(purgeTaskOptions(DefaultQueue, 0)); got != 3 {
		t.Fatalf("without unique want 3 options got %d", got)
	}
	if got := len(purgeTaskOptions(DefaultQueue, time.Hour)); got != 4 {
		t.Fatalf("with unique want 4 options got %d", got)
	}
}

func TestBuildRedisOptDefaults(t *testing.T) {
	opt := buildRedisOpt(nil)
	if opt.Addr != "127.0.0.1:6379" || opt.DB != 0 {
		t.Fatalf("unexpected default opt %+v", opt)
	}
}
