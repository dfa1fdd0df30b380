package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/municipal-services/complaint-service/internal/observability"
)

func TestMetricsEndpoint(t *testing.T) {
	metrics := observability.NewMetrics()
	metrics.RecordRequest("/complaints", "POST", 201, 10*time.Millisecond)
	metrics.RecordNotification(false)
	metrics.RecordNotification(true)

	h := NewHealthHandler("complaint-service", "test", nil, nil, metrics)
	app := fiber.New()
	app.Get("/health/metrics", h.Metrics)

	resp, err := app.Test(httptest.NewRequest("GET", "/health/metrics", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		t.Fatalf("status=%d", resp.StatusCode)
	}

	var body struct {
		Requests      map[string]observability.RequestStats `json:"requests"`
		Notifications struct {
			Attempts int64 `json:"attempts"`
			Failures int64 `json:"failures"`
		} `json:"notifications"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Notifications.Attempts != 2 || body.Notifications.Failures != 1 {
		t.Errorf("notifications=%+v, want 2 attempts and 1 failure", body.Notifications)
	}
	if body.Requests["/complaints|POST|201"].Count != 1 {
		t.Errorf("request counter missing: %v", body.Requests)
	}
}
