// README: Config loader with env defaults for HTTP, AI, and geocoding settings.
package config

import (
	"os"
	"strconv"
	"time"
)

type AIConfig struct {
	Provider    string // "ollama" or "gemini"
	OllamaURL   string
	Model       string
	Temperature float64
	NumCtx      int
	Timeout     time.Duration
	GeminiKey   string
	GeminiModel string
}

type GeocodeConfig struct {
	Provider     string // "nominatim" or "google"
	NominatimURL string
	GoogleKey    string
	MinDelay     time.Duration
	CacheTTL     time.Duration
}

type Config struct {
	HTTP struct {
		Addr string
	}
	Redis struct {
		Addr string
	}
	AI      AIConfig
	Geocode GeocodeConfig
}

func Load() (Config, error) {
	var cfg Config
	cfg.HTTP.Addr = envOrDefault("TRIPZY_HTTP_ADDR", ":8080")
	cfg.Redis.Addr = envOrDefault("TRIPZY_REDIS_ADDR", "")

	cfg.AI.Provider = envOrDefault("TRIPZY_AI_PROVIDER", "ollama")
	cfg.AI.OllamaURL = envOrDefault("TRIPZY_OLLAMA_URL", "http://localhost:11434")
	cfg.AI.Model = envOrDefault("TRIPZY_OLLAMA_MODEL", "gemma2:2b")
	cfg.AI.Temperature = envOrDefaultFloat("TRIPZY_AI_TEMPERATURE", 0.7)
	cfg.AI.NumCtx = envOrDefaultInt("TRIPZY_AI_NUM_CTX", 2048)
	cfg.AI.Timeout = envOrDefaultDuration("TRIPZY_AI_TIMEOUT", 180*time.Second)
	cfg.AI.GeminiKey = envOrDefault("GEMINI_API_KEY", "")
	cfg.AI.GeminiModel = envOrDefault("TRIPZY_GEMINI_MODEL", "gemini-2.0-flash")

	cfg.Geocode.Provider = envOrDefault("TRIPZY_GEOCODE_PROVIDER", "nominatim")
	cfg.Geocode.NominatimURL = envOrDefault("TRIPZY_NOMINATIM_URL", "https://nominatim.openstreetmap.org")
	cfg.Geocode.GoogleKey = envOrDefault("GOOGLE_MAPS_API_KEY", "")
	cfg.Geocode.MinDelay = envOrDefaultDuration("TRIPZY_GEOCODE_DELAY", time.Second)
	cfg.Geocode.CacheTTL = envOrDefaultDuration("TRIPZY_GEOCODE_CACHE_TTL", 24*time.Hour)
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
