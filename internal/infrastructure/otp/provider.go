package otp

import (
	"context"
	"net/http"

	"github.com/trip-planner/internal/domain"
	"github.com/trip-planner/internal/domain/repository"
	"github.com/trip-planner/internal/infrastructure/bundler"
	"go.uber.org/zap"
)

type provider struct {
	cfg        Config
	httpClient *http.Client
	logger     *zap.Logger
}

// NewProvider создает фабрику Ambassador: один Ambassador и один Bundler на прогон планирования
func NewProvider(cfg Config, logger *zap.Logger) repository.RouterProvider {
	return &provider{
		cfg:        cfg,
		httpClient: &http.Client{},
		logger:     logger,
	}
}

func (p *provider) NewRouter(
	ctx context.Context,
	trip *domain.Trip,
	tripTypes []domain.TripType,
	services []domain.Service,
) repository.Router {
	b := bundler.NewWithClient(p.httpClient, p.cfg.Timeout, p.logger)
	a := NewAmbassador(p.cfg, trip, tripTypes, services, b, p.logger)
	a.Plan(ctx)
	return a
}
