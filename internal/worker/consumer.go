package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopfront/internal/logger"
	"github.com/shopfront/internal/provider"
	"github.com/shopfront/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskCartPurgeStale, c.handleCartPurgeStale)
}

// EnqueueCartPurge 投递清理任务：删除 now - retention 之前未更新的购物车
func (c *Consumer) EnqueueCartPurge(now time.Time, uniqueFor time.Duration) error {
	if c == nil || c.Container == nil {
		return errors.New("consumer not initialized")
	}
	return c.QueueClient.EnqueueCartPurgeStale(c.purgePayload(now, uniqueFor), uniqueFor)
}

// purgePayload 截止时间按周期对齐，多个 worker 同一周期内生成相同载荷以便去重
func (c *Consumer) purgePayload(now time.Time, period time.Duration) queue.CartPurgeStalePayload {
	if period > 0 {
		now = now.Truncate(period)
	}
	before := now.Add(-c.CartRetention())
	return queue.CartPurgeStalePayload{BeforeUnix: before.Unix()}
}

func (c *Consumer) handleCartPurgeStale(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil || c.Container == nil || c.CartService == nil {
		logger.Debugw("worker_cart_purge_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.CartPurgeStalePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_cart_purge_unmarshal_failed", "error", err)
		return err
	}
	if payload.BeforeUnix <= 0 {
		logger.Debugw("worker_cart_purge_skip_invalid_payload", "before_unix", payload.BeforeUnix)
		return nil
	}
	deleted, err := c.CartService.PurgeStale(ctx, payload.Before())
	if err != nil {
		logger.Warnw("worker_cart_purge_failed", "before_unix", payload.BeforeUnix, "error", err)
		return err
	}
	logger.Infow("worker_cart_purge_done", "before_unix", payload.BeforeUnix, "deleted", deleted)
	return nil
}

func (c *Consumer) purgeInterval() time.Duration {
	if c == nil || c.Container == nil || c.Config == nil || c.Config.Cart.PurgeIntervalMinutes <= 0 {
		return defaultPurgeInterval
	}
	return time.Duration(c.Config.Cart.PurgeIntervalMinutes) * time.Minute
}
