package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	LLM     LLMConfig     `yaml:"llm"`
	Weather WeatherConfig `yaml:"weather"`
	Chat    ChatConfig    `yaml:"chat"`
	Session SessionConfig `yaml:"session"`
	Images  ImagesConfig  `yaml:"images"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// LLMConfig contains generative AI provider settings.
type LLMConfig struct {
	APIKey              string  `yaml:"apiKey"`
	BaseURL             string  `yaml:"baseUrl"`
	Model               string  `yaml:"model"`
	AnalysisTemperature float32 `yaml:"analysisTemperature"`
}

// WeatherConfig controls the forecast client and snapshot cache.
type WeatherConfig struct {
	APIBaseURL string        `yaml:"apiBaseUrl"`
	DefaultLat float64       `yaml:"defaultLat"`
	DefaultLon float64       `yaml:"defaultLon"`
	CacheTTL   time.Duration `yaml:"cacheTtl"`
	Valkey     ValkeyConfig  `yaml:"valkey"`
}

// ValkeyConfig contains connection information for the snapshot cache.
type ValkeyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// ChatConfig controls the advisory chat domain.
type ChatConfig struct {
	Persona            string `yaml:"persona"`
	HistoryTokenBudget int    `yaml:"historyTokenBudget"`
}

// SessionConfig controls in-memory session lifecycle.
type SessionConfig struct {
	IdleTTL time.Duration `yaml:"idleTtl"`
}

// ImagesConfig contains object storage settings for uploaded images.
type ImagesConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitAndTrim(v)
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_ANALYSIS_TEMPERATURE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.LLM.AnalysisTemperature = float32(parsed)
		}
	}
	if v := os.Getenv("WEATHER_API_BASE_URL"); v != "" {
		cfg.Weather.APIBaseURL = v
	}
	if v := os.Getenv("WEATHER_DEFAULT_LAT"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Weather.DefaultLat = parsed
		}
	}
	if v := os.Getenv("WEATHER_DEFAULT_LON"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Weather.DefaultLon = parsed
		}
	}
	if v := os.Getenv("WEATHER_CACHE_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Weather.CacheTTL = parsed
		}
	}
	if v := os.Getenv("WEATHER_VALKEY_ENABLED"); v != "" {
		cfg.Weather.Valkey.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("WEATHER_VALKEY_ADDR"); v != "" {
		cfg.Weather.Valkey.Addr = v
	}
	if v := os.Getenv("CHAT_PERSONA"); v != "" {
		cfg.Chat.Persona = v
	}
	if v := os.Getenv("CHAT_HISTORY_TOKEN_BUDGET"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Chat.HistoryTokenBudget = parsed
		}
	}
	if v := os.Getenv("SESSION_IDLE_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Session.IdleTTL = parsed
		}
	}
	if v := os.Getenv("IMAGES_ENDPOINT"); v != "" {
		cfg.Images.Endpoint = v
	}
	if v := os.Getenv("IMAGES_ACCESS_KEY"); v != "" {
		cfg.Images.AccessKey = v
	}
	if v := os.Getenv("IMAGES_SECRET_KEY"); v != "" {
		cfg.Images.SecretKey = v
	}
	if v := os.Getenv("IMAGES_BUCKET"); v != "" {
		cfg.Images.Bucket = v
	}
	if v := os.Getenv("IMAGES_REGION"); v != "" {
		cfg.Images.Region = v
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
}

func splitAndTrim(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if clean := strings.TrimSpace(p); clean != "" {
			out = append(out, clean)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 30 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
		},
		LLM: LLMConfig{
			Model:               "gemini-2.5-flash",
			AnalysisTemperature: 0.4,
		},
		Weather: WeatherConfig{
			APIBaseURL: "https://api.open-meteo.com/v1/forecast",
			// Geographic center of India, used when geolocation is denied.
			DefaultLat: 20.5937,
			DefaultLon: 78.9629,
			CacheTTL:   10 * time.Minute,
		},
		Chat: ChatConfig{
			Persona:            "You are an expert AI Agricultural Advisor. Keep answers concise, simple, and easy to understand for farmers. Use bullet points.",
			HistoryTokenBudget: 4000,
		},
		Session: SessionConfig{
			IdleTTL: 30 * time.Minute,
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if strings.TrimSpace(c.LLM.Model) == "" {
		return errors.New("llm.model cannot be empty")
	}
	if c.LLM.AnalysisTemperature < 0 || c.LLM.AnalysisTemperature > 2 {
		return errors.New("llm.analysisTemperature must be within [0,2]")
	}
	if c.Weather.APIBaseURL == "" {
		return errors.New("weather.apiBaseUrl cannot be empty")
	}
	if c.Weather.CacheTTL < 0 {
		return errors.New("weather.cacheTtl cannot be negative")
	}
	if c.Weather.Valkey.Enabled && strings.TrimSpace(c.Weather.Valkey.Addr) == "" {
		return errors.New("weather.valkey.addr cannot be empty when the valkey cache is enabled")
	}
	if strings.TrimSpace(c.Chat.Persona) == "" {
		return errors.New("chat.persona cannot be empty")
	}
	if c.Chat.HistoryTokenBudget <= 0 {
		return errors.New("chat.historyTokenBudget must be positive")
	}
	if c.Session.IdleTTL <= 0 {
		return errors.New("session.idleTtl must be positive")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	return nil
}
