package queue

import (
	"context"
	"errors"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/shopfront/internal/config"
	"github.com/shopfront/internal/constants"
	"github.com/shopfront/internal/logger"

	"github.com/hibiken/asynq"
)

const (
	// DefaultQueue 默认队列名称
	DefaultQueue = constants.QueueDefault

	defaultConcurrency = 2
	purgeMaxRetry      = 3
	purgeTimeout       = 5 * time.Minute
)

// Client 队列客户端；未启用时所有投递均为空操作
type Client struct {
	client *asynq.Client
	queue  string
}

// NewClient 创建队列客户端
func NewClient(cfg *config.QueueConfig) (*Client, error) {
	if cfg == nil || !cfg.Enabled {
		return &Client{queue: DefaultQueue}, nil
	}
	return &Client{
		client: asynq.NewClient(buildRedisOpt(cfg)),
		queue:  DefaultQueue,
	}, nil
}

// Enabled 判断是否启用
func (c *Client) Enabled() bool {
	return c != nil && c.client != nil
}

// Close 关闭客户端
func (c *Client) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}

// EnqueueCartPurgeStale 投递过期购物车清理任务，uniqueFor 内重复投递会被忽略
func (c *Client) EnqueueCartPurgeStale(payload CartPurgeStalePayload, uniqueFor time.Duration) error {
	if !c.Enabled() {
		return nil
	}
	task, err := NewCartPurgeStaleTask(payload)
	if err != nil {
		return err
	}
	if _, err := c.client.Enqueue(task, purgeTaskOptions(c.queue, uniqueFor)...); err != nil {
		if errors.Is(err, asynq.ErrDuplicateTask) {
			logger.Debugw("queue_cart_purge_duplicate", "before_unix", payload.BeforeUnix)
			return nil
		}
		return err
	}
	return nil
}

func purgeTaskOptions(queue string, uniqueFor time.Duration) []asynq.Option {
	opts := []asynq.Option{
		asynq.Queue(queue),
		asynq.MaxRetry(purgeMaxRetry),
		asynq.Timeout(purgeTimeout),
	}
	if uniqueFor > 0 {
		opts = append(opts, asynq.Unique(uniqueFor))
	}
	return opts
}

// BuildServerConfig 生成 worker 服务配置，任务失败统一记录日志
func BuildServerConfig(cfg *config.QueueConfig) (asynq.RedisClientOpt, asynq.Config) {
	concurrency := defaultConcurrency
	queues := map[string]int{DefaultQueue: 1}
	if cfg != nil {
		if cfg.Concurrency > 0 {
			concurrency = cfg.Concurrency
		}
		if len(cfg.Queues) > 0 {
			queues = cfg.Queues
		}
	}
	return buildRedisOpt(cfg), asynq.Config{
		Concurrency:  concurrency,
		Queues:       queues,
		Logger:       logger.Component("queue"),
		ErrorHandler: asynq.ErrorHandlerFunc(logTaskError),
	}
}

func logTaskError(ctx context.Context, task *asynq.Task, err error) {
	retried, _ := asynq.GetRetryCount(ctx)
	maxRetry, _ := asynq.GetMaxRetry(ctx)
	logger.Warnw("queue_task_failed",
		"task", task.Type(),
		"retried", retried,
		"max_retry", maxRetry,
		"error", err,
	)
}

func buildRedisOpt(cfg *config.QueueConfig) asynq.RedisClientOpt {
	host := "127.0.0.1"
	port := 6379
	opt := asynq.RedisClientOpt{}
	if cfg != nil {
		if h := strings.TrimSpace(cfg.Host); h != "" {
			host = h
		}
		if cfg.Port > 0 {
			port = cfg.Port
		}
		opt.Password = cfg.Password
		opt.DB = cfg.DB
	}
	opt.Addr = net.JoinHostPort(host, strconv.Itoa(port))
	return opt
}
