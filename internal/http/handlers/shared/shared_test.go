package shared

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopfront/internal/http/response"

	"github.com/gin-gonic/gin"
)

func decodeStatusCode(t *testing.T, w *httptest.ResponseRecorder) (int, string) {
	t.Helper()
	var resp struct {
		StatusCode int    `json:"status_code"`
		Msg        string `json:"msg"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	return resp.StatusCode, resp.Msg
}

func TestGetContextStringWithKey(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set("cart_session_id", "sid-1")
	if got, ok := GetContextStringWithKey(c, "cart_session_id", "error.session_unavailable"); !ok || got != "sid-1" {
		t.Fatalf("want sid-1, got %q ok=%v", got, ok)
	}

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := GetContextStringWithKey(c, "cart_session_id", "error.session_unavailable"); ok {
		t.Fatalf("missing key should fail")
	}
	code, msg := decodeStatusCode(t, w)
	if code != response.CodeInternal || msg != "Cart session unavailable" {
		t.Fatalf("unexpected error response %d %q", code, msg)
	}
}

func TestRespondErrorTranslates(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?lang=zh-CN", nil)

	RespondError(c, response.CodeNotFound, "error.product_not_found", nil)
	code, msg := decodeStatusCode(t, w)
	if code != response.CodeNotFound || msg != "商品不存在" {
		t.Fatalf("unexpected error response %d %q", code, msg)
	}
}
