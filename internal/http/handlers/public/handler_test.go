package public

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopfront/internal/cart"
	"github.com/shopfront/internal/constants"
	"github.com/shopfront/internal/models"
	"github.com/shopfront/internal/provider"
	"github.com/shopfront/internal/service"

	"github.com/gin-gonic/gin"
)

type stubCatalog struct {
	products []models.Product
}

func (s stubCatalog) ListProducts(context.Context) []models.Product {
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s stubCatalog) GetProduct(_ context.Context, id string) *models.Product {
	for i := range s.products {
		if s.products[i].ID == id {
			p := s.products[i]
			return &p
		}
	}
	return nil
}

type envelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

func newTestRouter(t *testing.T) (*gin.Engine, *cart.MemoryStorage) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalog := stubCatalog{products: []models.Product{
		{ID: "1", Title: "Red Mug", Price: models.MustMoney("10.00"), DiscountedPrice: models.MustMoney("10.00")},
		{ID: "2", Title: "Blue Mug", Price: models.MustMoney("6.00"), DiscountedPrice: models.MustMoney("5.00")},
		{ID: "3", Title: "Green Plate", Price: models.MustMoney("4.00"), DiscountedPrice: models.MustMoney("4.00")},
	}}
	storage := cart.NewMemoryStorage()
	h := New(&provider.Container{
		ProductService: service.NewProductService(catalog, 3),
		CartService:    service.NewCartService(storage, catalog, service.CartServiceOptions{StorageKey: "cart"}),
		ContactService: service.NewContactService(0, nil),
	})

	r := gin.New()
	withSession := func(c *gin.Context) {
		if sid := c.GetHeader("X-Test-Session"); sid != "" {
			c.Set(constants.ContextKeyCartSessionID, sid)
		}
		c.Next()
	}
	api := r.Group("/api/v1", withSession)
	api.GET("/public/products", h.GetProducts)
	api.GET("/public/products/:id", h.GetProduct)
	api.GET("/public/products/:id/recommendations", h.GetRecommendations)
	api.GET("/cart", h.GetCart)
	api.POST("/cart/items", h.AddCartItem)
	api.PUT("/cart/items/:product_id", h.UpdateCartItem)
	api.DELETE("/cart/items/:product_id", h.RemoveCartItem)
	api.DELETE("/cart", h.ClearCart)
	api.POST("/checkout", h.Checkout)
	api.POST("/contact", h.SubmitContact)
	return r, storage
}

func doRequest(t *testing.T, r *gin.Engine, method, target, body, session string) envelope {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if session != "" {
		req.Header.Set("X-Test-Session", session)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("%s %s http status want 200 got %d", method, target, w.Code)
	}
	var resp envelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v (%s)", err, w.Body.String())
	}
	return resp
}
