package public

import (
	"github.com/shopfront/internal/constants"
	handlershared "github.com/shopfront/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func getCartSessionID(c *gin.Context) (string, bool) {
	return handlershared.GetContextStringWithKey(c, constants.ContextKeyCartSessionID, "error.session_unavailable")
}
