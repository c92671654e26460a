package catalog

import (
	"strings"

	"github.com/shopfront/internal/models"
)

// DefaultRecommendationLimit 推荐商品默认数量
const DefaultRecommendationLimit = 3

// FilterByTitle 按标题做不区分大小写的子串匹配，空白关键字返回全部，保持原顺序
// 关键字仅在判断是否为空白时去除首尾空白，匹配时按原样比较。
func FilterByTitle(products []models.Product, term string) []models.Product {
	if strings.TrimSpace(term) == "" {
		out := make([]models.Product, len(products))
		copy(out, products)
		return out
	}
	needle := strings.ToLower(term)
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Title), needle) {
			out = append(out, p)
		}
	}
	return out
}

// Recommend 排除当前商品后截取前 limit 个；limit <= 0 使用默认值
func Recommend(products []models.Product, currentID string, limit int) []models.Product {
	if limit <= 0 {
		limit = DefaultRecommendationLimit
	}
	out := make([]models.Product, 0, limit)
	for _, p := range products {
		if p.ID == currentID {
			continue
		}
		out = append(out, p)
		if len(out) == limit {
			break
		}
	}
	return out
}
