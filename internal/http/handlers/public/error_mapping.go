package public

import (
	"errors"

	"github.com/shopfront/internal/http/response"
	"github.com/shopfront/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
	logRaw bool
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			var raw error
			if rule.logRaw {
				raw = err
			}
			respondError(c, rule.code, rule.key, raw)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var productErrorRules = []mappedHandlerError{
	{target: service.ErrProductIDRequired, code: response.CodeBadRequest, key: "error.product_id_required"},
	{target: service.ErrProductNotFound, code: response.CodeNotFound, key: "error.product_not_found"},
}

var cartErrorRules = concatMappedHandlerErrors(productErrorRules, []mappedHandlerError{
	{target: service.ErrSessionRequired, code: response.CodeInternal, key: "error.session_unavailable"},
	{target: service.ErrCartUnavailable, code: response.CodeUnavailable, key: "error.cart_unavailable", logRaw: true},
	{target: service.ErrCartSaveFailed, code: response.CodeInternal, key: "error.cart_save_failed", logRaw: true},
})
