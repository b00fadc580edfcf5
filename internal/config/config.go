package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/rogerio-castellano/inventory-insights/internal/stock"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Cache    CacheConfig
	Insights InsightsConfig
	Auth     AuthConfig
	App      AppConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	RateRPS      float64
	RateBurst    int
}

type DatabaseConfig struct {
	// URL is optional. Without it the service runs on the in-memory catalogue.
	URL string
}

type CacheConfig struct {
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	NotificationMax int
}

type InsightsConfig struct {
	GeminiAPIKey  string
	AnalysisModel string
	ImageModel    string
	Timeout       time.Duration
	Offline       bool
	Scoring       stock.Scoring
}

type AuthConfig struct {
	JWTSecret     string
	AdminUsername string
	AdminPassword string
}

type AppConfig struct {
	LogLevel  string
	SeedSales uint64
}

// Load reads configuration from the environment, after loading a .env file if one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_READ_TIMEOUT", 10)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 60)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("NOTIFICATION_FEED_MAX", 100)
	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("GEMINI_ANALYSIS_MODEL", "gemini-3-pro-preview")
	v.SetDefault("GEMINI_IMAGE_MODEL", "gemini-2.5-flash-image")
	v.SetDefault("INSIGHT_TIMEOUT_SECONDS", 45)
	v.SetDefault("OFFLINE_MODE", false)
	v.SetDefault("OPTIMIZATION_SCORE", 94)
	v.SetDefault("OPTIMIZATION_SCORE_MODE", string(stock.ScoreFixed))
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("ADMIN_USERNAME", "admin")
	v.SetDefault("ADMIN_PASSWORD", "")
	v.SetDefault("RATE_LIMIT_RPS", 5)
	v.SetDefault("RATE_LIMIT_BURST", 20)
	v.SetDefault("SEED_SALES", 1)
}

func fromViper(v *viper.Viper) (*Config, error) {
	mode := stock.ScoreMode(strings.ToLower(v.GetString("OPTIMIZATION_SCORE_MODE")))
	if mode != stock.ScoreFixed && mode != stock.ScoreDerived {
		return nil, fmt.Errorf("OPTIMIZATION_SCORE_MODE must be %q or %q, got %q", stock.ScoreFixed, stock.ScoreDerived, mode)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetString("SERVER_PORT"),
			ReadTimeout:  time.Duration(v.GetInt("SERVER_READ_TIMEOUT")) * time.Second,
			WriteTimeout: time.Duration(v.GetInt("SERVER_WRITE_TIMEOUT")) * time.Second,
			RateRPS:      v.GetFloat64("RATE_LIMIT_RPS"),
			RateBurst:    v.GetInt("RATE_LIMIT_BURST"),
		},
		Database: DatabaseConfig{
			URL: v.GetString("DATABASE_URL"),
		},
		Cache: CacheConfig{
			RedisAddr:       v.GetString("REDIS_ADDR"),
			RedisPassword:   v.GetString("REDIS_PASSWORD"),
			RedisDB:         v.GetInt("REDIS_DB"),
			NotificationMax: v.GetInt("NOTIFICATION_FEED_MAX"),
		},
		Insights: InsightsConfig{
			GeminiAPIKey:  v.GetString("GEMINI_API_KEY"),
			AnalysisModel: v.GetString("GEMINI_ANALYSIS_MODEL"),
			ImageModel:    v.GetString("GEMINI_IMAGE_MODEL"),
			Timeout:       time.Duration(v.GetInt("INSIGHT_TIMEOUT_SECONDS")) * time.Second,
			Offline:       v.GetBool("OFFLINE_MODE"),
			Scoring:       stock.Scoring{Mode: mode, Fixed: v.GetFloat64("OPTIMIZATION_SCORE")},
		},
		Auth: AuthConfig{
			JWTSecret:     v.GetString("JWT_SECRET"),
			AdminUsername: v.GetString("ADMIN_USERNAME"),
			AdminPassword: v.GetString("ADMIN_PASSWORD"),
		},
		App: AppConfig{
			LogLevel:  v.GetString("LOG_LEVEL"),
			SeedSales: v.GetUint64("SEED_SALES"),
		},
	}

	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.Server.RateRPS <= 0 || cfg.Server.RateBurst <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	return cfg, nil
}
