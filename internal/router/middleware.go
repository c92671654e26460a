package router

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopfront/internal/config"
	"github.com/shopfront/internal/constants"
	"github.com/shopfront/internal/http/response"
	"github.com/shopfront/internal/i18n"
	"github.com/shopfront/internal/logger"
	"github.com/shopfront/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDKey = constants.ContextKeyRequestID
const requestIDHeader = "X-Request-ID"

// CORSMiddleware 跨域中间件
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	allowedMethods := cfg.AllowedMethods
	if len(allowedMethods) == 0 {
		allowedMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}
	allowedHeaders := cfg.AllowedHeaders
	if len(allowedHeaders) == 0 {
		allowedHeaders = []string{
			"Content-Type",
			"Content-Length",
			"Accept-Encoding",
			"Cache-Control",
			"X-Requested-With",
			"X-Cart-Session",
		}
	}
	methodsHeader := strings.Join(allowedMethods, ", ")
	headersHeader := strings.Join(allowedHeaders, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowedOrigin := resolveAllowedOrigin(origin, allowedOrigins, cfg.AllowCredentials)
		if allowedOrigin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			if allowedOrigin != "*" {
				c.Writer.Header().Add("Vary", "Origin")
			}
		}
		if cfg.AllowCredentials {
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", headersHeader)
		c.Writer.Header().Set("Access-Control-Allow-Methods", methodsHeader)
		if cfg.MaxAge > 0 {
			c.Writer.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func resolveAllowedOrigin(origin string, allowedOrigins []string, allowCredentials bool) string {
	if len(allowedOrigins) == 0 {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if allowed == "*" {
			if allowCredentials && origin != "" {
				return origin
			}
			return "*"
		}
	}
	if origin == "" {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if strings.EqualFold(allowed, origin) {
			return origin
		}
	}
	return ""
}

// RequestIDMiddleware 请求 ID 中间件
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

// LoggerMiddleware 结构化请求日志中间件
func LoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.L()
	}
	sugar := logger.Sugar()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log := sugar.With(
			"request_id", getRequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
		if len(c.Errors) > 0 {
			log.Errorw("request", "errors", c.Errors.String())
			return
		}
		log.Infow("request")
	}
}

func getRequestID(c *gin.Context) string {
	if value, ok := c.Get(requestIDKey); ok {
		if id, ok := value.(string); ok {
			return id
		}
	}
	return ""
}

// CartSessionMiddleware 购物车会话中间件
// 从请求头或 Cookie 读取会话令牌，缺失或无效时签发新会话，并通过响应头与 Cookie 回传。
func CartSessionMiddleware(manager *session.Manager, cfg config.SessionConfig) gin.HandlerFunc {
	headerName := strings.TrimSpace(cfg.HeaderName)
	if headerName == "" {
		headerName = "X-Cart-Session"
	}
	cookieName := strings.TrimSpace(cfg.CookieName)
	if cookieName == "" {
		cookieName = "cart_session"
	}
	return func(c *gin.Context) {
		if manager == nil {
			msg := i18n.T(i18n.ResolveLocale(c), "error.session_unavailable")
			response.Error(c, response.CodeInternal, msg)
			c.Abort()
			return
		}

		token := strings.TrimSpace(c.GetHeader(headerName))
		if token == "" {
			if cookie, err := c.Cookie(cookieName); err == nil {
				token = strings.TrimSpace(cookie)
			}
		}

		sessionID := ""
		if token != "" {
			sid, err := manager.Parse(token)
			if err == nil {
				sessionID = sid
			} else {
				logger.Debugw("cart_session_token_rejected", "request_id", getRequestID(c), "error", err)
			}
		}

		if sessionID == "" {
			sessionID = session.NewSessionID()
			issued, _, err := manager.Issue(sessionID)
			if err != nil {
				logger.Errorw("cart_session_issue_failed", "request_id", getRequestID(c), "error", err)
				msg := i18n.T(i18n.ResolveLocale(c), "error.session_unavailable")
				response.Error(c, response.CodeInternal, msg)
				c.Abort()
				return
			}
			token = issued
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cookieName, token, int(manager.Expire().Seconds()), "/", "", c.Request.TLS != nil, true)
		}

		c.Writer.Header().Set(headerName, token)
		c.Set(constants.ContextKeyCartSessionID, sessionID)
		c.Next()
	}
}
