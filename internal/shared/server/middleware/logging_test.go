package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"triage-backend/internal/shared/telemetry"
)

func TestLoggingIncludesRequiredFields(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	if err := telemetry.Init("info", "json", &buf); err != nil {
		t.Fatalf("init telemetry: %v", err)
	}
	defer telemetry.Init("info", "json", nil)

	router := gin.New()
	router.Use(RequestID(), Logging())
	router.POST("/analyze", func(c *gin.Context) {
		c.Set(PriorityKey, "red")
		c.Set(ScoreKey, 25)
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodPost, "/analyze", nil)
	req.Header.Set("X-Request-Id", "req-123")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	last := lines[len(lines)-1]
	var payload map[string]any
	if err := json.Unmarshal([]byte(last), &payload); err != nil {
		t.Fatalf("decode log json: %v", err)
	}

	required := []string{"request_id", "method", "path", "duration_ms", "status", "priority", "score"}
	for _, key := range required {
		if _, ok := payload[key]; !ok {
			t.Fatalf("missing log field: %s", key)
		}
	}
	if payload["msg"] != "request.complete" {
		t.Fatalf("unexpected msg: %v", payload["msg"])
	}
	if payload["request_id"] != "req-123" {
		t.Fatalf("unexpected request_id: %v", payload["request_id"])
	}
	if payload["priority"] != "red" {
		t.Fatalf("unexpected priority: %v", payload["priority"])
	}
	if payload["status"] != float64(http.StatusOK) {
		t.Fatalf("unexpected status: %v", payload["status"])
	}
}

func TestLoggingSkipsPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	if err := telemetry.Init("info", "json", &buf); err != nil {
		t.Fatalf("init telemetry: %v", err)
	}
	defer telemetry.Init("info", "json", nil)

	router := gin.New()
	router.Use(Logging(), CORS([]string{"*"}))

	req := httptest.NewRequest(http.MethodOptions, "/analyze", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if strings.Contains(buf.String(), "request.complete") {
		t.Fatalf("expected no request log for OPTIONS, got %s", buf.String())
	}
}
