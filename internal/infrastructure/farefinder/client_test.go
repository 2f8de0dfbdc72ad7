package farefinder

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/trip-planner/internal/config"
	"github.com/trip-planner/internal/domain"
	"go.uber.org/zap"
)

func TestClient_MeteredFare(t *testing.T) {
	trip := &domain.Trip{
		Origin:      domain.Point{Lat: 28.53, Lon: -81.37},
		Destination: domain.Point{Lat: 28.61, Lon: -81.20},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch q.Get("entity_handle") {
		case "Orlando":
			assert.Equal(t, "test-key", q.Get("key"))
			assert.Equal(t, "28.530000,-81.370000", q.Get("origin"))
			w.Write([]byte(`{"metered_fare": 10.0, "status": "OK"}`))
		case "Nowhere":
			w.Write([]byte(`{"status": "REQUEST_DENIED"}`))
		default:
			w.WriteHeader(http.StatusBadGateway)
		}
	}))
	defer server.Close()

	cfg := &config.FareFinderConfig{BaseURL: server.URL, APIKey: "test-key", Entity: "Orlando", Timeout: time.Second}
	c := NewClient(cfg, zap.NewNop())

	t.Run("ok", func(t *testing.T) {
		fare, ok := c.MeteredFare(context.Background(), trip, "Orlando")
		assert.True(t, ok)
		assert.Equal(t, 10.0, fare)
	})

	t.Run("default entity", func(t *testing.T) {
		fare, ok := c.MeteredFare(context.Background(), trip, "")
		assert.True(t, ok)
		assert.Equal(t, 10.0, fare)
	})

	t.Run("non-OK status", func(t *testing.T) {
		_, ok := c.MeteredFare(context.Background(), trip, "Nowhere")
		assert.False(t, ok)
	})

	t.Run("http error", func(t *testing.T) {
		_, ok := c.MeteredFare(context.Background(), trip, "Atlantis")
		assert.False(t, ok)
	})
}
