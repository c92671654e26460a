package service

import (
	"context"

	"github.com/shopfront/internal/models"
)

// ProductCatalog 商品目录数据源，失败时分别退化为空列表与 nil
type ProductCatalog interface {
	ListProducts(ctx context.Context) []models.Product
	GetProduct(ctx context.Context, id string) *models.Product
}
