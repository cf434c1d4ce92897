package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName             string
	AppEnv              string
	AppPort             string
	DatabaseURL         string
	RedisURL            string
	NATSURL             string
	JWTSecret           string
	JWTTTL              time.Duration
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	CloudinaryFolder    string
	ResultsCacheTTL     time.Duration
	DashboardCacheTTL   time.Duration
	EventChannel        string
	CriteriaFile        string
	ScoreMin            float64
	ScoreMax            float64
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("SYMPOSIUM")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Symposium API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("jwt.ttl", "1h")
	v.SetDefault("cloudinary.folder", "symposium/launch")
	v.SetDefault("results.cache_ttl", "2m")
	v.SetDefault("dashboard.cache_ttl", "5m")
	v.SetDefault("event.channel", "symposium")
	v.SetDefault("score.min", 0.0)
	v.SetDefault("score.max", 10.0)

	jwtTTL, err := time.ParseDuration(v.GetString("jwt.ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid jwt ttl: %w", err)
	}

	resultsTTL, err := time.ParseDuration(v.GetString("results.cache_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid results cache ttl: %w", err)
	}

	dashboardTTL, err := time.ParseDuration(v.GetString("dashboard.cache_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid dashboard cache ttl: %w", err)
	}

	cfg := Config{
		AppName:             v.GetString("app.name"),
		AppEnv:              v.GetString("app.env"),
		AppPort:             v.GetString("app.port"),
		DatabaseURL:         v.GetString("database.url"),
		RedisURL:            v.GetString("redis.url"),
		NATSURL:             v.GetString("nats.url"),
		JWTSecret:           v.GetString("jwt.secret"),
		JWTTTL:              jwtTTL,
		CloudinaryCloudName: v.GetString("cloudinary.cloud_name"),
		CloudinaryAPIKey:    v.GetString("cloudinary.api_key"),
		CloudinaryAPISecret: v.GetString("cloudinary.api_secret"),
		CloudinaryFolder:    v.GetString("cloudinary.folder"),
		ResultsCacheTTL:     resultsTTL,
		DashboardCacheTTL:   dashboardTTL,
		EventChannel:        v.GetString("event.channel"),
		CriteriaFile:        v.GetString("criteria.file"),
		ScoreMin:            v.GetFloat64("score.min"),
		ScoreMax:            v.GetFloat64("score.max"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	if cfg.ScoreMax <= cfg.ScoreMin {
		return Config{}, fmt.Errorf("score range is empty: min %v, max %v", cfg.ScoreMin, cfg.ScoreMax)
	}

	return cfg, nil
}
