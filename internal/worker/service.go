package worker

import (
	"context"
	"errors"
	"time"

	"github.com/shopfront/internal/config"
	"github.com/shopfront/internal/logger"
	"github.com/shopfront/internal/queue"

	"github.com/hibiken/asynq"
)

const defaultPurgeInterval = time.Hour

// Service 异步队列服务
type Service struct {
	name     string
	server   *asynq.Server
	mux      *asynq.ServeMux
	consumer *Consumer
	interval time.Duration
}

// NewService 创建异步队列服务
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{
		name:     "worker",
		server:   server,
		mux:      mux,
		consumer: consumer,
		interval: consumer.purgeInterval(),
	}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动 asynq 消费并周期投递清理任务，直到 ctx 取消
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if err := s.server.Start(s.mux); err != nil {
		return err
	}
	if s.consumer != nil && s.consumer.QueueClient.Enabled() {
		go s.runCartPurgeLoop(ctx)
	}
	<-ctx.Done()
	return nil
}

// Stop 等待进行中的任务结束，超时后直接返回
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	done := make(chan struct{})
	go func() {
		s.server.Shutdown()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// runCartPurgeLoop 按周期投递清理任务，同一周期内去重
func (s *Service) runCartPurgeLoop(ctx context.Context) {
	interval := s.interval
	if interval <= 0 {
		interval = defaultPurgeInterval
	}
	runOnce := func() {
		if err := s.consumer.EnqueueCartPurge(time.Now(), interval); err != nil {
			logger.Warnw("worker_cart_purge_enqueue_failed", "error", err)
		}
	}
	runOnce()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce()
		}
	}
}
