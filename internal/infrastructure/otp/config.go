package otp

import (
	"time"

	"github.com/trip-planner/internal/config"
	"github.com/trip-planner/internal/domain"
)

const (
	VersionV1 = "v1"
	VersionV2 = "v2"

	graphQLPath = "/index/graphql"

	// PhoneAccessMode - режим сегмента, который бронируется по телефону
	PhoneAccessMode = "FLEX_ACCESS"
)

var modesV1 = map[domain.TripType]string{
	domain.TripTypeTransit:     "TRANSIT,WALK",
	domain.TripTypeParatransit: "CAR",
	domain.TripTypeTaxi:        "CAR",
	domain.TripTypeUber:        "CAR",
	domain.TripTypeLyft:        "CAR",
	domain.TripTypeCar:         "CAR",
	domain.TripTypeWalk:        "WALK",
	domain.TripTypeBicycle:     "BICYCLE",
	domain.TripTypeCarPark:     "CAR_PARK,WALK,TRANSIT",
}

var modesV2 = map[domain.TripType]string{
	domain.TripTypeTransit:     "TRANSIT,WALK",
	domain.TripTypeParatransit: "TRANSIT,WALK,FLEX_ACCESS,FLEX_EGRESS,FLEX_DIRECT",
	domain.TripTypeTaxi:        "CAR",
	domain.TripTypeUber:        "CAR",
	domain.TripTypeLyft:        "CAR",
	domain.TripTypeCar:         "CAR",
	domain.TripTypeWalk:        "WALK",
	domain.TripTypeBicycle:     "BICYCLE",
	domain.TripTypeCarPark:     "CAR_PARK,WALK,TRANSIT",
}

// Config - настройки роутера, передаются в Ambassador при создании
type Config struct {
	BaseURL string
	Version string
	// Quotas - сколько маршрутов запрашивать по типу поездки
	Quotas map[domain.TripType]int
	// Modes переопределяет словарь режимов выбранной версии
	Modes           map[domain.TripType]string
	Wheelchair      bool
	WalkSpeed       float64 // m/s
	MaxWalkDistance float64 // miles
	Timeout         time.Duration
}

// NewConfig собирает Config из настроек приложения
func NewConfig(cfg *config.RouterConfig) Config {
	c := Config{
		BaseURL:         cfg.BaseURL,
		Version:         cfg.Version,
		Quotas:          make(map[domain.TripType]int, len(cfg.Quotas)),
		WalkSpeed:       cfg.WalkSpeed,
		MaxWalkDistance: cfg.MaxWalkDistance,
		Timeout:         cfg.Timeout,
	}
	for name, quota := range cfg.Quotas {
		c.Quotas[domain.TripType(name)] = quota
	}
	if len(cfg.Modes) > 0 {
		c.Modes = make(map[domain.TripType]string, len(cfg.Modes))
		for name, mode := range cfg.Modes {
			c.Modes[domain.TripType(name)] = mode
		}
	}
	return c
}

// ModeFor возвращает строку режимов роутера для типа поездки
func (c Config) ModeFor(t domain.TripType) (string, bool) {
	if c.Modes != nil {
		mode, ok := c.Modes[t]
		return mode, ok
	}
	dict := modesV2
	if c.Version == VersionV1 {
		dict = modesV1
	}
	mode, ok := dict[t]
	return mode, ok
}

func (c Config) quotaFor(t domain.TripType) int {
	if q, ok := c.Quotas[t]; ok && q > 0 {
		return q
	}
	return 3
}

func (c Config) walkSpeed() float64 {
	if c.WalkSpeed > 0 {
		return c.WalkSpeed
	}
	return 1.34
}

func (c Config) maxWalkDistance() float64 {
	if c.MaxWalkDistance > 0 {
		return c.MaxWalkDistance
	}
	return 2
}
