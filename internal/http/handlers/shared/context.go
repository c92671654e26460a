package shared

import (
	"strings"

	"github.com/shopfront/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetContextStringWithKey 从上下文读取非空字符串并统一处理错误响应。
func GetContextStringWithKey(c *gin.Context, key, missingKey string) (string, bool) {
	value, exists := c.Get(key)
	if !exists {
		RespondError(c, response.CodeInternal, missingKey, nil)
		return "", false
	}
	text, ok := value.(string)
	if !ok || strings.TrimSpace(text) == "" {
		RespondError(c, response.CodeInternal, missingKey, nil)
		return "", false
	}
	return text, true
}
