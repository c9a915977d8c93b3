package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host           string
	Port           int
	AllowedOrigins []string
}

type DBConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime string
	ConnectAttempts int
}

type AuthConfig struct {
	AccessSecret string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type ReportsConfig struct {
	PageSize              int
	NearbyDefaultRadiusKm float64
	PointsCacheTTL        time.Duration
}

type OSMConfig struct {
	NominatimURL   string
	OverpassURL    string
	UserAgent      string
	RequestTimeout time.Duration
	ItemDelay      time.Duration
}

type Config struct {
	Environment string
	LogLevel    string
	HTTP        HTTPConfig
	DB          DBConfig
	Auth        AuthConfig
	Redis       RedisConfig
	Reports     ReportsConfig
	OSM         OSMConfig
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")
	v.AutomaticEnv()

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		HTTP: HTTPConfig{
			Host:           v.GetString("HTTP_HOST"),
			Port:           v.GetInt("HTTP_PORT"),
			AllowedOrigins: parseList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		DB: DBConfig{
			DSN:             v.GetString("DB_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetString("DB_CONN_MAX_LIFETIME"),
			ConnectAttempts: v.GetInt("DB_CONNECT_ATTEMPTS"),
		},
		Auth: AuthConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Reports: ReportsConfig{
			PageSize:              v.GetInt("REPORTS_PAGE_SIZE"),
			NearbyDefaultRadiusKm: v.GetFloat64("NEARBY_DEFAULT_RADIUS_KM"),
			PointsCacheTTL:        v.GetDuration("POINTS_CACHE_TTL"),
		},
		OSM: OSMConfig{
			NominatimURL:   v.GetString("OSM_NOMINATIM_URL"),
			OverpassURL:    v.GetString("OSM_OVERPASS_URL"),
			UserAgent:      v.GetString("OSM_USER_AGENT"),
			RequestTimeout: v.GetDuration("OSM_REQUEST_TIMEOUT"),
			ItemDelay:      v.GetDuration("IMPORT_ITEM_DELAY"),
		},
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 7090
	}
	if len(cfg.HTTP.AllowedOrigins) == 0 {
		cfg.HTTP.AllowedOrigins = []string{"*"}
	}
	if cfg.DB.ConnectAttempts <= 0 {
		cfg.DB.ConnectAttempts = 5
	}
	if cfg.Reports.PageSize <= 0 {
		cfg.Reports.PageSize = 10
	}
	if cfg.Reports.NearbyDefaultRadiusKm <= 0 {
		cfg.Reports.NearbyDefaultRadiusKm = 5.0
	}
	if cfg.Reports.PointsCacheTTL <= 0 {
		cfg.Reports.PointsCacheTTL = 10 * time.Minute
	}
	if cfg.OSM.NominatimURL == "" {
		cfg.OSM.NominatimURL = "https://nominatim.openstreetmap.org"
	}
	if cfg.OSM.OverpassURL == "" {
		cfg.OSM.OverpassURL = "https://overpass-api.de/api/interpreter"
	}
	if cfg.OSM.UserAgent == "" {
		cfg.OSM.UserAgent = "RecyclingPointsPopulator/1.0"
	}
	if cfg.OSM.RequestTimeout <= 0 {
		cfg.OSM.RequestTimeout = 30 * time.Second
	}
	if cfg.OSM.ItemDelay <= 0 {
		cfg.OSM.ItemDelay = 100 * time.Millisecond
	}
}

func validate(cfg *Config) error {
	if cfg.DB.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	if cfg.Auth.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	return nil
}

func parseList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	items := strings.Split(raw, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}
