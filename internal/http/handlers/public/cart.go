package public

import (
	"github.com/shopfront/internal/http/response"
	"github.com/shopfront/internal/i18n"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest 加入购物车请求
type AddCartItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// UpdateCartItemRequest 修改数量请求，数量 <= 0 时移除
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	sessionID, ok := getCartSessionID(c)
	if !ok {
		return
	}
	view, err := h.CartService.View(c.Request.Context(), sessionID)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, view)
}

// AddCartItem 加入购物车（数量 +1）
func (h *Handler) AddCartItem(c *gin.Context) {
	sessionID, ok := getCartSessionID(c)
	if !ok {
		return
	}
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.product_id_required", nil)
		return
	}
	view, err := h.CartService.Add(c.Request.Context(), sessionID, req.ProductID)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, view)
}

// UpdateCartItem 修改购物车商品数量
func (h *Handler) UpdateCartItem(c *gin.Context) {
	sessionID, ok := getCartSessionID(c)
	if !ok {
		return
	}
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Quantity == nil {
		respondError(c, response.CodeBadRequest, "error.quantity_invalid", nil)
		return
	}
	view, err := h.CartService.UpdateQuantity(c.Request.Context(), sessionID, c.Param("product_id"), *req.Quantity)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, view)
}

// RemoveCartItem 移除购物车商品
func (h *Handler) RemoveCartItem(c *gin.Context) {
	sessionID, ok := getCartSessionID(c)
	if !ok {
		return
	}
	view, err := h.CartService.Remove(c.Request.Context(), sessionID, c.Param("product_id"))
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, view)
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	sessionID, ok := getCartSessionID(c)
	if !ok {
		return
	}
	view, err := h.CartService.Clear(c.Request.Context(), sessionID)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "cart.cleared"), view)
}

// Checkout 结算：清空购物车并返回致谢信息
func (h *Handler) Checkout(c *gin.Context) {
	sessionID, ok := getCartSessionID(c)
	if !ok {
		return
	}
	result, err := h.CartService.Checkout(c.Request.Context(), sessionID)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "checkout.success"), result)
}
