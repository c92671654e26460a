package shared

import (
	"github.com/shopfront/internal/constants"
	"github.com/shopfront/internal/http/response"
	"github.com/shopfront/internal/i18n"
	"github.com/shopfront/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get(constants.ContextKeyRequestID); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondError 返回国际化错误响应，并在有原始错误时记录日志。
func RespondError(c *gin.Context, code int, key string, err error) {
	msg := i18n.T(i18n.ResolveLocale(c), key)
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"code", code,
			"message_key", key,
			"path", c.FullPath(),
			"error", err,
		)
	}
	response.Error(c, code, msg)
}
