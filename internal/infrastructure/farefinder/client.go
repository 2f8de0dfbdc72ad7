package farefinder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/trip-planner/internal/config"
	"github.com/trip-planner/internal/domain"
	"github.com/trip-planner/internal/infrastructure/bundler"
	"go.uber.org/zap"
)

const fareLabel = "taxi_fare"

type fareResponse struct {
	Status      string  `json:"status"`
	MeteredFare float64 `json:"metered_fare"`
}

// Client - клиент TaxiFareFinder, считает стоимость поездки по счетчику
type Client struct {
	httpClient *http.Client
	cfg        config.FareFinderConfig
	logger     *zap.Logger
}

func NewClient(cfg *config.FareFinderConfig, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{},
		cfg:        *cfg,
		logger:     logger,
	}
}

// MeteredFare возвращает стоимость по счетчику. Любая ошибка означает "тарифа нет".
func (c *Client) MeteredFare(ctx context.Context, trip *domain.Trip, city string) (float64, bool) {
	if city == "" {
		city = c.cfg.Entity
	}

	params := url.Values{}
	params.Set("key", c.cfg.APIKey)
	params.Set("entity_handle", city)
	params.Set("origin", fmt.Sprintf("%f,%f", trip.Origin.Lat, trip.Origin.Lon))
	params.Set("destination", fmt.Sprintf("%f,%f", trip.Destination.Lat, trip.Destination.Lon))

	b := bundler.NewWithClient(c.httpClient, c.cfg.Timeout, c.logger)
	b.Add(bundler.Request{
		Label: fareLabel,
		URL:   strings.TrimRight(c.cfg.BaseURL, "/") + "/fare?" + params.Encode(),
	})

	res, ok := b.Response(ctx, fareLabel)
	if !ok || !res.Success() {
		c.logger.Warn("Taxi fare lookup failed",
			zap.String("city", city),
			zap.Int("status_code", res.StatusCode),
			zap.Error(res.Err))
		return 0, false
	}

	var fare fareResponse
	if err := json.Unmarshal(res.Body, &fare); err != nil {
		c.logger.Warn("Failed to decode taxi fare", zap.Error(err))
		return 0, false
	}
	if fare.Status != "OK" {
		c.logger.Warn("Taxi fare finder returned non-OK status", zap.String("status", fare.Status))
		return 0, false
	}

	return fare.MeteredFare, true
}
