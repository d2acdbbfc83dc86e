package middlewares

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func bearerTestRouter(token string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ValidateBearerToken(token))
	router.GET("/ping", func(c *gin.Context) {
		RespondJSON(c, gin.H{"message": "pong"}, 200)
	})
	return router
}

func TestValidateBearerToken(t *testing.T) {
	router := bearerTestRouter("secret-token")

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"valid token", "Bearer secret-token", http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic secret-token", http.StatusUnauthorized},
		{"wrong token", "Bearer other-token", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestErrorEnvelopeShape(t *testing.T) {
	router := bearerTestRouter("secret-token")

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if success, ok := body["success"].(bool); !ok || success {
		t.Errorf(`body["success"] = %v, want false`, body["success"])
	}
	if _, ok := body["error"].(string); !ok {
		t.Error("error envelope is missing the error message")
	}
}

func TestSuccessEnvelopeShape(t *testing.T) {
	router := bearerTestRouter("secret-token")

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer secret-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if success, ok := body["success"].(bool); !ok || !success {
		t.Errorf(`body["success"] = %v, want true`, body["success"])
	}
	if body["message"] != "pong" {
		t.Errorf(`body["message"] = %v, want "pong"`, body["message"])
	}
}
