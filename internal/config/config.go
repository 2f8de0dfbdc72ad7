package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Cache      CacheConfig
	Log        LogConfig
	Worker     WorkerConfig
	Router     RouterConfig
	Planner    PlannerConfig
	Booking    BookingConfig
	FareFinder FareFinderConfig
}

type ServerConfig struct {
	Host        string
	Port        int
	Env         string
	CORSOrigins string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	FundingCacheTTL time.Duration
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled       bool
	ConsumerGroup string
	MaxRetries    int
	BatchSize     int
}

// RouterConfig describes the external routing engine (OpenTripPlanner).
type RouterConfig struct {
	BaseURL string
	// Version selects the trip type -> mode dictionary: "v1" or "v2".
	Version         string
	Timeout         time.Duration
	Quotas          map[string]int
	ModesFile       string
	Modes           map[string]string
	WalkSpeed       float64 // m/s
	MaxWalkDistance float64 // miles, sent to the router
}

type PlannerConfig struct {
	MaxWalkDistance float64 // meters, applied to walk itineraries after planning
}

type BookingConfig struct {
	BaseURL  string
	APIToken string
	Timeout  time.Duration
}

type FareFinderConfig struct {
	BaseURL string
	APIKey  string
	Entity  string
	Timeout time.Duration
}

// routerModesFile is the shape of ROUTER_MODES_FILE.
type routerModesFile struct {
	Version string            `yaml:"version"`
	Modes   map[string]string `yaml:"modes"`
	Quotas  map[string]int    `yaml:"quotas"`
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:        viper.GetString("API_HOST"),
			Port:        viper.GetInt("API_PORT"),
			Env:         viper.GetString("API_ENV"),
			CORSOrigins: viper.GetString("CORS_ALLOW_ORIGINS"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			FundingCacheTTL: time.Duration(viper.GetInt("FUNDING_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:       viper.GetBool("WORKER_ENABLED"),
			ConsumerGroup: viper.GetString("WORKER_CONSUMER_GROUP"),
			MaxRetries:    viper.GetInt("WORKER_MAX_RETRIES"),
			BatchSize:     viper.GetInt("WORKER_BATCH_SIZE"),
		},
		Router: RouterConfig{
			BaseURL:         viper.GetString("ROUTER_BASE_URL"),
			Version:         viper.GetString("ROUTER_VERSION"),
			Timeout:         time.Duration(viper.GetInt("ROUTER_TIMEOUT")) * time.Second,
			Quotas:          ParseQuotas(viper.GetString("ROUTER_QUOTAS")),
			ModesFile:       viper.GetString("ROUTER_MODES_FILE"),
			WalkSpeed:       viper.GetFloat64("ROUTER_WALK_SPEED"),
			MaxWalkDistance: viper.GetFloat64("ROUTER_MAX_WALK_DISTANCE"),
		},
		Planner: PlannerConfig{
			MaxWalkDistance: viper.GetFloat64("MAX_WALK_DISTANCE"),
		},
		Booking: BookingConfig{
			BaseURL:  viper.GetString("BOOKING_BASE_URL"),
			APIToken: viper.GetString("BOOKING_API_TOKEN"),
			Timeout:  time.Duration(viper.GetInt("BOOKING_TIMEOUT")) * time.Second,
		},
		FareFinder: FareFinderConfig{
			BaseURL: viper.GetString("FARE_FINDER_BASE_URL"),
			APIKey:  viper.GetString("FARE_FINDER_API_KEY"),
			Entity:  viper.GetString("FARE_FINDER_ENTITY"),
			Timeout: time.Duration(viper.GetInt("FARE_FINDER_TIMEOUT")) * time.Second,
		},
	}

	if cfg.Router.ModesFile != "" {
		if err := cfg.Router.LoadModesFile(cfg.Router.ModesFile); err != nil {
			return nil, err
		}
	}

	cfg.applyDefaults()

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Cache.FundingCacheTTL == 0 {
		c.Cache.FundingCacheTTL = 10 * time.Minute
	}
	if c.Worker.ConsumerGroup == "" {
		c.Worker.ConsumerGroup = "trip-planning-workers"
	}
	if c.Worker.MaxRetries == 0 {
		c.Worker.MaxRetries = 3
	}
	if c.Worker.BatchSize == 0 {
		c.Worker.BatchSize = 10
	}
	if c.Router.Version == "" {
		c.Router.Version = "v2"
	}
	if c.Router.Timeout == 0 {
		c.Router.Timeout = 60 * time.Second
	}
	if c.Router.WalkSpeed == 0 {
		c.Router.WalkSpeed = 1.34 // 3 mph
	}
	if c.Router.MaxWalkDistance == 0 {
		c.Router.MaxWalkDistance = 2
	}
	if c.Planner.MaxWalkDistance == 0 {
		c.Planner.MaxWalkDistance = 3218.69 // 2 miles
	}
	if c.Booking.Timeout == 0 {
		c.Booking.Timeout = 15 * time.Second
	}
	if c.FareFinder.Timeout == 0 {
		c.FareFinder.Timeout = 10 * time.Second
	}
}

// LoadModesFile overrides the router mode dictionary and quotas from a YAML file.
func (r *RouterConfig) LoadModesFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read router modes file: %w", err)
	}

	var file routerModesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse router modes file: %w", err)
	}

	if file.Version != "" {
		r.Version = file.Version
	}
	if len(file.Modes) > 0 {
		r.Modes = file.Modes
	}
	if len(file.Quotas) > 0 {
		if r.Quotas == nil {
			r.Quotas = make(map[string]int, len(file.Quotas))
		}
		for mode, quota := range file.Quotas {
			r.Quotas[mode] = quota
		}
	}

	return nil
}

// ParseQuotas parses "transit:3,walk:1" into a per trip type itinerary quota.
func ParseQuotas(s string) map[string]int {
	if s == "" {
		return nil
	}
	result := make(map[string]int)
	for _, part := range strings.Split(s, ",") {
		name, value, ok := strings.Cut(strings.TrimSpace(part), ":")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n <= 0 {
			continue
		}
		result[strings.TrimSpace(name)] = n
	}
	return result
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
