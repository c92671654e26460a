package public

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/shopfront/internal/http/response"
	"github.com/shopfront/internal/service"
)

func decodeCartView(t *testing.T, raw json.RawMessage) service.CartView {
	t.Helper()
	var view service.CartView
	if err := json.Unmarshal(raw, &view); err != nil {
		t.Fatalf("decode cart view failed: %v", err)
	}
	return view
}

func TestCartFlow(t *testing.T) {
	r, storage := newTestRouter(t)
	const sid = "session-a"

	doRequest(t, r, http.MethodPost, "/api/v1/cart/items", `{"product_id":"1"}`, sid)
	doRequest(t, r, http.MethodPost, "/api/v1/cart/items", `{"product_id":"1"}`, sid)
	doRequest(t, r, http.MethodPost, "/api/v1/cart/items", `{"product_id":"2"}`, sid)
	resp := doRequest(t, r, http.MethodPut, "/api/v1/cart/items/2", `{"quantity":3}`, sid)
	view := decodeCartView(t, resp.Data)
	if view.ItemCount != 5 || view.Total.String() != "35.00" {
		t.Fatalf("want 5 items / 35.00, got %d / %s", view.ItemCount, view.Total)
	}

	resp = doRequest(t, r, http.MethodGet, "/api/v1/cart", "", sid)
	if got := decodeCartView(t, resp.Data); len(got.Items) != 2 {
		t.Fatalf("cart should have 2 lines, got %d", len(got.Items))
	}

	resp = doRequest(t, r, http.MethodPut, "/api/v1/cart/items/2", `{"quantity":0}`, sid)
	if got := decodeCartView(t, resp.Data); len(got.Items) != 1 || got.Total.String() != "20.00" {
		t.Fatalf("quantity 0 should remove line, got %+v", got)
	}

	resp = doRequest(t, r, http.MethodDelete, "/api/v1/cart/items/1", "", sid)
	if got := decodeCartView(t, resp.Data); len(got.Items) != 0 {
		t.Fatalf("cart should be empty")
	}
	if storage.Has("cart:" + sid) {
		t.Fatalf("removing the last line must clear persisted record")
	}
}

func TestCartErrors(t *testing.T) {
	r, _ := newTestRouter(t)

	resp := doRequest(t, r, http.MethodPost, "/api/v1/cart/items", `{"product_id":"999"}`, "s")
	if resp.StatusCode != response.CodeNotFound {
		t.Fatalf("unknown product want 404, got %d", resp.StatusCode)
	}
	resp = doRequest(t, r, http.MethodPost, "/api/v1/cart/items", `{}`, "s")
	if resp.StatusCode != response.CodeBadRequest {
		t.Fatalf("missing product id want 400, got %d", resp.StatusCode)
	}
	resp = doRequest(t, r, http.MethodPut, "/api/v1/cart/items/1", `{"quantity":"two"}`, "s")
	if resp.StatusCode != response.CodeBadRequest {
		t.Fatalf("invalid quantity want 400, got %d", resp.StatusCode)
	}
	resp = doRequest(t, r, http.MethodGet, "/api/v1/cart", "", "")
	if resp.StatusCode != response.CodeInternal {
		t.Fatalf("missing session want 500, got %d", resp.StatusCode)
	}
}

func TestCheckoutClearsCart(t *testing.T) {
	r, storage := newTestRouter(t)
	const sid = "session-b"

	doRequest(t, r, http.MethodPost, "/api/v1/cart/items", `{"product_id":"3"}`, sid)
	resp := doRequest(t, r, http.MethodPost, "/api/v1/checkout", "", sid)
	if resp.StatusCode != response.CodeOK || resp.Msg == "" {
		t.Fatalf("checkout should succeed with a message, got %d %q", resp.StatusCode, resp.Msg)
	}
	var result service.CheckoutResult
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		t.Fatalf("decode checkout failed: %v", err)
	}
	if result.ItemCount != 1 || result.Total.String() != "4.00" {
		t.Fatalf("unexpected checkout result %+v", result)
	}
	resp = doRequest(t, r, http.MethodGet, "/api/v1/cart", "", sid)
	if view := decodeCartView(t, resp.Data); view.ItemCount != 0 || storage.Has("cart:"+sid) {
		t.Fatalf("checkout must clear the cart")
	}
}

func TestClearCart(t *testing.T) {
	r, _ := newTestRouter(t)
	const sid = "session-c"

	doRequest(t, r, http.MethodPost, "/api/v1/cart/items", `{"product_id":"1"}`, sid)
	resp := doRequest(t, r, http.MethodDelete, "/api/v1/cart?lang=zh-CN", "", sid)
	if resp.Msg != "购物车已清空" {
		t.Fatalf("unexpected message %q", resp.Msg)
	}
	if view := decodeCartView(t, resp.Data); view.ItemCount != 0 {
		t.Fatalf("cart should be empty after clear")
	}
}
