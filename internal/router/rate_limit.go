package router

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopfront/internal/http/response"
	"github.com/shopfront/internal/i18n"
	"github.com/shopfront/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

var errRateLimitReply = errors.New("unexpected rate limit reply")

// RateLimitKeyFunc 生成限流 key 的函数
type RateLimitKeyFunc func(*gin.Context) string

// RateLimitRule 固定窗口限流规则
type RateLimitRule struct {
	Prefix        string
	WindowSeconds int
	MaxRequests   int
	MessageKey    string
	KeyFunc       RateLimitKeyFunc
}

func (r RateLimitRule) active() bool {
	return r.WindowSeconds > 0 && r.MaxRequests > 0
}

func (r RateLimitRule) key(c *gin.Context) string {
	key := ""
	if r.KeyFunc != nil {
		key = strings.TrimSpace(r.KeyFunc(c))
	}
	if key == "" {
		key = c.ClientIP()
	}
	if r.Prefix == "" {
		return key
	}
	return r.Prefix + ":" + key
}

var rateLimitScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("TTL", KEYS[1])
return {current, ttl}
`)

// RateLimitMiddleware 基于 Redis 的频率限制；未配置 Redis 或规则时放行
func RateLimitMiddleware(client *redis.Client, rule RateLimitRule) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil || !rule.active() {
			c.Next()
			return
		}

		key := rule.key(c)
		count, ttl, err := hitRateLimit(c.Request.Context(), client, key, rule.WindowSeconds)
		if err != nil {
			logger.Warnw("rate_limit_unavailable", "key", key, "error", err)
			response.Error(c, response.CodeInternal, i18n.T(i18n.ResolveLocale(c), "error.rate_limit_unavailable"))
			c.Abort()
			return
		}
		if count <= int64(rule.MaxRequests) {
			c.Next()
			return
		}

		wait := int(ttl)
		if wait < 1 {
			wait = max(rule.WindowSeconds, 1)
		}
		msgKey := strings.TrimSpace(rule.MessageKey)
		if msgKey == "" {
			msgKey = "error.rate_limited"
		}
		c.Header("Retry-After", strconv.Itoa(wait))
		response.Error(c, response.CodeTooManyRequests, i18n.Sprintf(i18n.ResolveLocale(c), msgKey, wait))
		c.Abort()
	}
}

// hitRateLimit 计数加一并返回当前计数与窗口剩余秒数
func hitRateLimit(ctx context.Context, client *redis.Client, key string, windowSeconds int) (int64, int64, error) {
	result, err := rateLimitScript.Run(ctx, client, []string{key}, windowSeconds).Result()
	if err != nil {
		return 0, 0, err
	}
	return parseRateLimitReply(result)
}

func parseRateLimitReply(result interface{}) (int64, int64, error) {
	values, ok := result.([]interface{})
	if !ok || len(values) < 2 {
		return 0, 0, errRateLimitReply
	}
	count, ok := values[0].(int64)
	if !ok {
		return 0, 0, fmt.Errorf("%w: count %T", errRateLimitReply, values[0])
	}
	ttl, _ := values[1].(int64)
	return count, ttl, nil
}

// KeyByIP 使用 IP 作为限流 key
func KeyByIP(c *gin.Context) string {
	return c.ClientIP()
}
