package app

import (
	"errors"

	"github.com/shopfront/internal/config"
	"github.com/shopfront/internal/provider"
	"github.com/shopfront/internal/router"
	"github.com/shopfront/internal/worker"
)

// BuildRunner 按启动模式组装 HTTP 与 worker 服务
func BuildRunner(cfg *config.Config, mode string) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if err := ValidateMode(mode); err != nil {
		return nil, err
	}

	container := provider.NewContainer(cfg)

	var services []Service
	if runsHTTP(mode) {
		engine := router.SetupRouter(cfg, container)
		services = append(services, NewHTTPService(cfg.Server, engine))
	}

	if runsWorker(mode, cfg.Queue.Enabled) {
		workerService, err := worker.NewService(&cfg.Queue, worker.NewConsumer(container))
		if err != nil {
			return nil, err
		}
		services = append(services, workerService)
	}

	if len(services) == 0 {
		return nil, errors.New("no services initialized (check mode and config)")
	}
	return NewRunner(services...), nil
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	runner, err := BuildRunner(opts.Config, opts.Mode)
	if err != nil {
		return err
	}

	opts.Logger.Infow("app_start",
		"addr", listenAddr(opts.Config.Server),
		"mode", opts.Mode,
		"cart_storage", opts.Config.Cart.Storage,
		"catalog", opts.Config.Catalog.BaseURL,
	)
	return RunWithOptions(runner, opts)
}
