package router

import (
	"net/http"

	"github.com/shopfront/internal/cache"
	"github.com/shopfront/internal/config"
	publichandlers "github.com/shopfront/internal/http/handlers/public"
	"github.com/shopfront/internal/logger"
	"github.com/shopfront/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	contactRule := contactRateLimitRule(cfg.Contact.RateLimit)

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/products", publicHandler.GetProducts)
			public.GET("/products/:id", publicHandler.GetProduct)
			public.GET("/products/:id/recommendations", publicHandler.GetRecommendations)
		}

		// 购物车接口（按会话隔离）
		sessioned := apiV1.Group("", CartSessionMiddleware(c.SessionManager, cfg.Session))
		{
			sessioned.GET("/cart", publicHandler.GetCart)
			sessioned.DELETE("/cart", publicHandler.ClearCart)
			sessioned.POST("/cart/items", publicHandler.AddCartItem)
			sessioned.PUT("/cart/items/:product_id", publicHandler.UpdateCartItem)
			sessioned.DELETE("/cart/items/:product_id", publicHandler.RemoveCartItem)
			sessioned.POST("/checkout", publicHandler.Checkout)
		}

		apiV1.POST("/contact", RateLimitMiddleware(cache.Client(), contactRule), publicHandler.SubmitContact)
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		status := gin.H{"status": "ok"}
		if cache.Enabled() {
			if err := cache.Ping(c.Request.Context()); err != nil {
				status["redis"] = "unavailable"
			} else {
				status["redis"] = "ok"
			}
		}
		c.JSON(http.StatusOK, status)
	})

	return r
}

// contactRateLimitRule 联系表单按客户端 IP 限流，请求体中的字段不参与 key
func contactRateLimitRule(cfg config.RateLimitConfig) RateLimitRule {
	return RateLimitRule{
		Prefix:        cache.Prefix() + ":rate:contact",
		WindowSeconds: cfg.WindowSeconds,
		MaxRequests:   cfg.MaxRequests,
		KeyFunc:       KeyByIP,
	}
}
