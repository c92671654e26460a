package app

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"time"

	"go.uber.org/zap"
)

// Service 可被 Runner 管理的长期运行服务
type Service interface {
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// Runner 服务运行器
type Runner struct {
	services []Service
}

// NewRunner 创建服务运行器
func NewRunner(services ...Service) *Runner {
	return &Runner{services: services}
}

type serviceExit struct {
	name string
	err  error
}

// RunWithOptions 运行服务并在收到系统信号时退出
func RunWithOptions(runner *Runner, opts Options) error {
	if runner == nil {
		return errors.New("runner is nil")
	}
	opts = normalizeOptions(opts)
	ctx := context.Background()
	if len(opts.Signals) > 0 {
		var cancel context.CancelFunc
		ctx, cancel = signal.NotifyContext(ctx, opts.Signals...)
		defer cancel()
	}
	return runner.Run(ctx, opts.ShutdownTimeout, opts.Logger)
}

// Run 启动全部服务，任一服务退出或 ctx 取消后按逆序停止
func (r *Runner) Run(ctx context.Context, stopTimeout time.Duration, log *zap.SugaredLogger) error {
	if r == nil || len(r.services) == 0 {
		return errors.New("no services to run")
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	exits := r.startAll(ctx, log)

	var runErr error
	select {
	case <-ctx.Done():
	case exit := <-exits:
		if exit.err != nil {
			runErr = fmt.Errorf("service %s: %w", exit.name, exit.err)
		}
	}
	cancel()

	if stopTimeout <= 0 {
		stopTimeout = defaultShutdownTimeout
	}
	stopCtx, stopCancel := context.WithTimeout(context.Background(), stopTimeout)
	defer stopCancel()
	r.stopAll(stopCtx, log)
	return runErr
}

func (r *Runner) startAll(ctx context.Context, log *zap.SugaredLogger) <-chan serviceExit {
	exits := make(chan serviceExit, len(r.services))
	for _, svc := range r.services {
		go func(svc Service) {
			if svc == nil {
				exits <- serviceExit{name: "unknown", err: errors.New("service is nil")}
				return
			}
			name := svc.Name()
			if log != nil {
				log.Infow("service_start", "service", name)
			}
			err := svc.Start(ctx)
			if log != nil {
				log.Infow("service_exit", "service", name, "error", err)
			}
			exits <- serviceExit{name: name, err: err}
		}(svc)
	}
	return exits
}

func (r *Runner) stopAll(ctx context.Context, log *zap.SugaredLogger) {
	for i := len(r.services) - 1; i >= 0; i-- {
		svc := r.services[i]
		if svc == nil {
			continue
		}
		started := time.Now()
		err := svc.Stop(ctx)
		if log == nil {
			continue
		}
		if err != nil {
			log.Errorw("service_stop_failed", "service", svc.Name(), "error", err)
			continue
		}
		log.Infow("service_stopped", "service", svc.Name(), "took", time.Since(started))
	}
}
