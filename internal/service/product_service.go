package service

import (
	"context"
	"strings"

	"github.com/shopfront/internal/catalog"
	"github.com/shopfront/internal/models"
)

// ProductService 商品业务服务
type ProductService struct {
	catalog          ProductCatalog
	recommendedLimit int
}

// NewProductService 创建商品服务
func NewProductService(source ProductCatalog, recommendedLimit int) *ProductService {
	if recommendedLimit <= 0 {
		recommendedLimit = catalog.DefaultRecommendationLimit
	}
	return &ProductService{catalog: source, recommendedLimit: recommendedLimit}
}

// List 获取商品列表，search 为空白时返回全部
func (s *ProductService) List(ctx context.Context, search string) []models.Product {
	return catalog.FilterByTitle(s.catalog.ListProducts(ctx), search)
}

// Get 获取商品详情
func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrProductIDRequired
	}
	product := s.catalog.GetProduct(ctx, id)
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Recommend 获取推荐商品：排除当前商品后截取前 limit 个
func (s *ProductService) Recommend(ctx context.Context, id string, limit int) []models.Product {
	if limit <= 0 {
		limit = s.recommendedLimit
	}
	return catalog.Recommend(s.catalog.ListProducts(ctx), strings.TrimSpace(id), limit)
}
