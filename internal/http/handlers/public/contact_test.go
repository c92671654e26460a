package public

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/shopfront/internal/http/response"
)

func TestSubmitContactInvalid(t *testing.T) {
	r, _ := newTestRouter(t)

	body := `{"full_name":"Al","subject":"Hi!","email":"not-an-email","body":"ok"}`
	resp := doRequest(t, r, http.MethodPost, "/api/v1/contact", body, "")
	if resp.StatusCode != response.CodeBadRequest {
		t.Fatalf("want 400, got %d", resp.StatusCode)
	}
	var data struct {
		State  string            `json:"state"`
		Errors map[string]string `json:"errors"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("decode data failed: %v", err)
	}
	if data.State != "invalid" || len(data.Errors) != 4 {
		t.Fatalf("want 4 field errors, got %+v", data)
	}
	if data.Errors["email"] != "Please enter a valid email address" {
		t.Fatalf("unexpected email message %q", data.Errors["email"])
	}
	if data.Errors["full_name"] != "Full name must be at least 3 characters" {
		t.Fatalf("unexpected name message %q", data.Errors["full_name"])
	}
}

func TestSubmitContactSuccess(t *testing.T) {
	r, _ := newTestRouter(t)

	body := `{"full_name":"Ada Lovelace","subject":"Order","email":"ada@example.com","body":"Where is it?"}`
	resp := doRequest(t, r, http.MethodPost, "/api/v1/contact", body, "")
	if resp.StatusCode != response.CodeOK {
		t.Fatalf("want success, got %d %q", resp.StatusCode, resp.Msg)
	}
	var data struct {
		State string `json:"state"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("decode data failed: %v", err)
	}
	if data.State != "submitted" {
		t.Fatalf("want submitted, got %s", data.State)
	}

	resp = doRequest(t, r, http.MethodPost, "/api/v1/contact", `not json`, "")
	if resp.StatusCode != response.CodeBadRequest {
		t.Fatalf("malformed body want 400, got %d", resp.StatusCode)
	}
}
