package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/trip-planner/internal/config"
	"github.com/trip-planner/internal/domain"
	"github.com/trip-planner/internal/domain/repository"
	"github.com/trip-planner/internal/pkg/errors"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

type client struct {
	httpClient *http.Client
	baseURL    string
	apiToken   string
	logger     *zap.Logger
}

// NewClient создает клиент внешней системы бронирования
func NewClient(cfg *config.BookingConfig, logger *zap.Logger) repository.BookingRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		apiToken: cfg.APIToken,
		logger:   logger,
	}
}

type fundingResponse struct {
	FundingSources []struct {
		Code            string   `json:"code"`
		Description     string   `json:"description"`
		AllowedPurposes []string `json:"allowed_purposes"`
	} `json:"funding_sources"`
}

type purposesResponse struct {
	TripPurposes []struct {
		Code        string `json:"code"`
		Description string `json:"description"`
		ValidFrom   string `json:"valid_from"`
		ValidUntil  string `json:"valid_until"`
	} `json:"trip_purposes"`
}

func (c *client) FundingSources(ctx context.Context, customerID string) ([]domain.FundingSource, error) {
	var resp fundingResponse
	if err := c.get(ctx, "/customers/"+url.PathEscape(customerID)+"/funding", &resp); err != nil {
		return nil, err
	}

	sources := make([]domain.FundingSource, 0, len(resp.FundingSources))
	for _, fs := range resp.FundingSources {
		sources = append(sources, domain.FundingSource{
			Code:            fs.Code,
			Description:     fs.Description,
			AllowedPurposes: fs.AllowedPurposes,
		})
	}
	return sources, nil
}

func (c *client) TripPurposes(ctx context.Context, customerID string) ([]domain.TripPurpose, error) {
	var resp purposesResponse
	if err := c.get(ctx, "/customers/"+url.PathEscape(customerID)+"/trip_purposes", &resp); err != nil {
		return nil, err
	}

	purposes := make([]domain.TripPurpose, 0, len(resp.TripPurposes))
	for _, p := range resp.TripPurposes {
		purpose := domain.TripPurpose{
			Code:        p.Code,
			Description: p.Description,
		}
		// некорректная дата трактуется как отсутствие границы
		purpose.ValidFrom = parseDate(p.ValidFrom)
		purpose.ValidUntil = parseDate(p.ValidUntil)
		purposes = append(purposes, purpose)
	}
	return purposes, nil
}

func (c *client) get(ctx context.Context, path string, out interface{}) error {
	reqURL := c.baseURL + path

	c.logger.Debug("Calling booking API", zap.String("url", reqURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Token "+c.apiToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.Error(err))
		return fmt.Errorf("%w: %v", errors.ErrBookingUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("Booking API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return fmt.Errorf("%w: status %d", errors.ErrBookingUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Error("Failed to decode response", zap.Error(err))
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}
