package public

import (
	"strconv"
	"strings"

	"github.com/shopfront/internal/http/response"
	"github.com/shopfront/internal/models"

	"github.com/gin-gonic/gin"
)

// ProductListResponse 商品列表响应
type ProductListResponse struct {
	Items []models.Product `json:"items"`
	Total int              `json:"total"`
}

// GetProducts 获取商品列表，search 参数按标题过滤
func (h *Handler) GetProducts(c *gin.Context) {
	items := h.ProductService.List(c.Request.Context(), c.Query("search"))
	response.Success(c, ProductListResponse{Items: items, Total: len(items)})
}

// GetProduct 获取商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.ProductService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithMappedError(c, err, productErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, product)
}

// GetRecommendations 获取推荐商品
func (h *Handler) GetRecommendations(c *gin.Context) {
	limit := 0
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			respondError(c, response.CodeBadRequest, "error.bad_request", nil)
			return
		}
		limit = parsed
	}
	items := h.ProductService.Recommend(c.Request.Context(), c.Param("id"), limit)
	response.Success(c, ProductListResponse{Items: items, Total: len(items)})
}
