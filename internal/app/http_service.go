package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/shopfront/internal/config"
)

const httpReadHeaderTimeout = 10 * time.Second

// HTTPService 对外 API 服务
type HTTPService struct {
	server *http.Server
}

// NewHTTPService 创建 HTTP 服务
func NewHTTPService(cfg config.ServerConfig, handler http.Handler) *HTTPService {
	return &HTTPService{
		server: &http.Server{
			Addr:              listenAddr(cfg),
			Handler:           handler,
			ReadHeaderTimeout: httpReadHeaderTimeout,
		},
	}
}

func listenAddr(cfg config.ServerConfig) string {
	port := cfg.Port
	if port == "" {
		port = "8080"
	}
	return net.JoinHostPort(cfg.Host, port)
}

// Name 服务名称
func (s *HTTPService) Name() string {
	return "http"
}

// Addr 监听地址
func (s *HTTPService) Addr() string {
	if s == nil || s.server == nil {
		return ""
	}
	return s.server.Addr
}

// Start 阻塞监听，Shutdown 后正常返回
func (s *HTTPService) Start(ctx context.Context) error {
	if s == nil || s.server == nil {
		return errors.New("http server not initialized")
	}
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop 优雅关闭，等待进行中的请求
func (s *HTTPService) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
