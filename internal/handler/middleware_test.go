package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestAPIKeyAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(key string) *gin.Engine {
		r := gin.New()
		r.Use(APIKeyAuth(key))
		r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
		return r
	}

	do := func(r *gin.Engine, header string) int {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/ping", nil)
		if header != "" {
			req.Header.Set("X-API-Key", header)
		}
		r.ServeHTTP(w, req)
		return w.Code
	}

	open := newRouter("")
	if code := do(open, ""); code != http.StatusOK {
		t.Errorf("empty key should disable auth, got %d", code)
	}

	guarded := newRouter("secret")
	if code := do(guarded, ""); code != http.StatusUnauthorized {
		t.Errorf("missing header: expected 401, got %d", code)
	}
	if code := do(guarded, "wrong"); code != http.StatusForbidden {
		t.Errorf("wrong key: expected 403, got %d", code)
	}
	if code := do(guarded, "secret"); code != http.StatusOK {
		t.Errorf("valid key: expected 200, got %d", code)
	}
}
