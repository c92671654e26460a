package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopfront/internal/config"
	"github.com/shopfront/internal/logger"

	"go.uber.org/zap"
)

// 启动模式
const (
	ModeAll    = "all"
	ModeAPI    = "api"
	ModeWorker = "worker"
)

const defaultShutdownTimeout = 10 * time.Second

// Options 应用启动选项
type Options struct {
	Config          *config.Config
	Logger          *zap.SugaredLogger
	Signals         []os.Signal
	ShutdownTimeout time.Duration
	Mode            string
}

// normalizeOptions 补齐默认参数
func normalizeOptions(opts Options) Options {
	if opts.Logger == nil {
		opts.Logger = logger.S()
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = defaultShutdownTimeout
	}
	opts.Mode = strings.ToLower(strings.TrimSpace(opts.Mode))
	if opts.Mode == "" {
		opts.Mode = ModeAll
	}
	return opts
}

// ValidateMode 校验启动模式
func ValidateMode(mode string) error {
	switch mode {
	case ModeAll, ModeAPI, ModeWorker:
		return nil
	default:
		return fmt.Errorf("unknown mode %q (want all, api or worker)", mode)
	}
}

func runsHTTP(mode string) bool {
	return mode == ModeAll || mode == ModeAPI
}

// runsWorker all 模式下仅在队列启用时启动 worker
func runsWorker(mode string, queueEnabled bool) bool {
	return mode == ModeWorker || (mode == ModeAll && queueEnabled)
}
