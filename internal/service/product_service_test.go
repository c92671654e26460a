package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopfront/internal/models"
)

type fakeCatalog struct {
	products []models.Product
	listHits int
}

func (f *fakeCatalog) ListProducts(context.Context) []models.Product {
	f.listHits++
	out := make([]models.Product, len(f.products))
	copy(out, f.products)
	return out
}

func (f *fakeCatalog) GetProduct(_ context.Context, id string) *models.Product {
	for i := range f.products {
		if f.products[i].ID == id {
			p := f.products[i]
			return &p
		}
	}
	return nil
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{products: []models.Product{
		{ID: "1", Title: "Red Mug", Price: models.MustMoney("12.00"), DiscountedPrice: models.MustMoney("10.00")},
		{ID: "2", Title: "Blue Mug", Price: models.MustMoney("5.00"), DiscountedPrice: models.MustMoney("5.00")},
		{ID: "3", Title: "Green Plate", Price: models.MustMoney("8.00"), DiscountedPrice: models.MustMoney("7.50")},
		{ID: "4", Title: "Tea Pot", Price: models.MustMoney("20.00"), DiscountedPrice: models.MustMoney("18.00")},
	}}
}

func TestProductServiceListFilters(t *testing.T) {
	svc := NewProductService(newFakeCatalog(), 3)
	ctx := context.Background()

	if got := svc.List(ctx, "mug"); len(got) != 2 || got[0].Title != "Red Mug" || got[1].Title != "Blue Mug" {
		t.Fatalf("search mug unexpected result: %+v", got)
	}
	if got := svc.List(ctx, "  "); len(got) != 4 {
		t.Fatalf("blank search should return all, got %d", len(got))
	}
	empty := NewProductService(&fakeCatalog{}, 3)
	if got := empty.List(ctx, "mug"); len(got) != 0 {
		t.Fatalf("empty catalog should yield empty list")
	}
}

func TestProductServiceGet(t *testing.T) {
	svc := NewProductService(newFakeCatalog(), 3)
	ctx := context.Background()

	product, err := svc.Get(ctx, " 3 ")
	if err != nil || product.Title != "Green Plate" {
		t.Fatalf("get product want Green Plate, got %+v err=%v", product, err)
	}
	if _, err := svc.Get(ctx, "404"); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("want ErrProductNotFound, got %v", err)
	}
	if _, err := svc.Get(ctx, ""); !errors.Is(err, ErrProductIDRequired) {
		t.Fatalf("want ErrProductIDRequired, got %v", err)
	}
}

func TestProductServiceRecommend(t *testing.T) {
	svc := NewProductService(newFakeCatalog(), 0)
	ctx := context.Background()

	got := svc.Recommend(ctx, "1", 0)
	if len(got) != 3 {
		t.Fatalf("default limit should be 3, got %d", len(got))
	}
	for _, p := range got {
		if p.ID == "1" {
			t.Fatalf("current product must be excluded")
		}
	}
	if got := svc.Recommend(ctx, "2", 1); len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("limit 1 unexpected: %+v", got)
	}
}
