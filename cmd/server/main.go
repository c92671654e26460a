package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/shopfront/internal/app"
	"github.com/shopfront/internal/config"
	"github.com/shopfront/internal/constants"
	"github.com/shopfront/internal/logger"
	"github.com/shopfront/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	ansiReset     = "\033[0m"
	ansiBold      = "\033[1m"
	ansiDim       = "\033[2m"
	ansiGreen     = "\033[32m"
	ansiCyan      = "\033[36m"
	ansiBrightMag = "\033[95m"
)

func main() {
	// 解析命令行参数
	var mode string
	flag.StringVar(&mode, "mode", app.ModeAll, "启动模式: all (默认), api, worker")
	flag.Parse()

	printStartupBanner()

	// 加载配置
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if cfg.Server.Mode == "release" {
		if isWeakSecret(cfg.Session.Secret) {
			stdLog.Fatalf("会话签名密钥过弱或仍为默认值，请在生产环境中配置强随机密钥")
		}
	} else if isWeakSecret(cfg.Session.Secret) {
		stdLog.Printf("警告: 会话签名密钥过弱或仍为默认值，建议在生产环境中更换")
	}

	// 数据库仅用于购物车持久化与过期清理
	if needsDatabase(cfg, mode) {
		if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
			MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
			MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
			ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
			ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
		}); err != nil {
			stdLog.Fatalf("数据库初始化失败: %v", err)
		}

		// 自动迁移数据库表
		if err := models.AutoMigrate(); err != nil {
			stdLog.Fatalf("数据库迁移失败: %v", err)
		}
	}

	// 设置 Gin 模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		Mode:    mode,
	}); err != nil {
		stdLog.Fatalf("服务运行失败: %v", err)
	}
}

func printStartupBanner() {
	fmt.Println(ansiBrightMag + "╔══════════════════════════════════════════════════════╗" + ansiReset)
	fmt.Println(ansiBrightMag + "║              🛒 Shopfront API 启动中                 ║" + ansiReset)
	fmt.Println(ansiBrightMag + "╚══════════════════════════════════════════════════════╝" + ansiReset)
	fmt.Println(ansiCyan + "███████╗██╗  ██╗ ██████╗ ██████╗ ███████╗██████╗  ██████╗ ███╗   ██╗████████╗" + ansiReset)
	fmt.Println(ansiCyan + "██╔════╝██║  ██║██╔═══██╗██╔══██╗██╔════╝██╔══██╗██╔═══██╗████╗  ██║╚══██╔══╝" + ansiReset)
	fmt.Println(ansiCyan + "███████╗███████║██║   ██║██████╔╝█████╗  ██████╔╝██║   ██║██╔██╗ ██║   ██║   " + ansiReset)
	fmt.Println(ansiCyan + "╚════██║██╔══██║██║   ██║██╔═══╝ ██╔══╝  ██╔══██╗██║   ██║██║╚██╗██║   ██║   " + ansiReset)
	fmt.Println(ansiCyan + "███████║██║  ██║╚██████╔╝██║     ██║     ██║  ██║╚██████╔╝██║ ╚████║   ██║   " + ansiReset)
	fmt.Println(ansiCyan + "╚══════╝╚═╝  ╚═╝ ╚═════╝ ╚═╝     ╚═╝     ╚═╝  ╚═╝ ╚═════╝ ╚═╝  ╚═══╝   ╚═╝   " + ansiReset)
	fmt.Println(ansiGreen + ansiBold + "Storefront backend: catalog · cart · contact" + ansiReset)
	fmt.Println(ansiDim + "--------------------------------------------------------------" + ansiReset)
}

// needsDatabase 购物车使用数据库存储时才初始化数据库
func needsDatabase(cfg *config.Config, mode string) bool {
	if cfg == nil {
		return false
	}
	storage := strings.ToLower(strings.TrimSpace(cfg.Cart.Storage))
	if storage != "" && storage != constants.CartStorageDatabase {
		return false
	}
	return mode == app.ModeAll || mode == app.ModeAPI || mode == app.ModeWorker
}

func isWeakSecret(secret string) bool {
	if len(secret) < 32 {
		return true
	}
	normalized := strings.ToLower(secret)
	if strings.Contains(normalized, "change-me") ||
		strings.Contains(normalized, "change-in-production") ||
		strings.Contains(normalized, "your-secret-key") {
		return true
	}
	return false
}
