package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTPAddr          string
	SourceLang        string
	TargetLang        string
	Translator        string
	TranslateEndpoint string
	TranslateTimeout  time.Duration
	OpenAIAPIKey      string
	OpenAIModel       string
	SentimentEngine   string
	ValkeyAddress     string
	ValkeyPassword    string
	ValkeyTLS         bool
	CacheTTL          time.Duration
	ExtendedStopWords bool
	LogLevel          string
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

// Load reads the configuration from the environment. Call LoadEnv first to
// pull in the env file.
func Load() (Config, error) {
	cfg := Config{
		HTTPAddr:          getEnv("HTTP_ADDR", ":8080"),
		SourceLang:        strings.ToLower(getEnv("SOURCE_LANG", "es")),
		TargetLang:        strings.ToLower(getEnv("TARGET_LANG", "en")),
		Translator:        strings.ToLower(getEnv("TRANSLATOR", "google")),
		TranslateEndpoint: getEnv("TRANSLATE_ENDPOINT", ""),
		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		SentimentEngine:   strings.ToLower(getEnv("SENTIMENT_ENGINE", "vader")),
		ValkeyAddress:     getEnv("VALKEY_INIT_ADDRESS", ""),
		ValkeyPassword:    getEnv("VALKEY_PASSWORD", ""),
		ValkeyTLS:         getEnv("VALKEY_TLS", "false") == "true",
		LogLevel:          getEnv("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.TranslateTimeout, err = time.ParseDuration(getEnv("TRANSLATE_TIMEOUT", "10s")); err != nil {
		return Config{}, fmt.Errorf("[Config] invalid TRANSLATE_TIMEOUT: %w", err)
	}
	if cfg.CacheTTL, err = time.ParseDuration(getEnv("CACHE_TTL", "24h")); err != nil {
		return Config{}, fmt.Errorf("[Config] invalid CACHE_TTL: %w", err)
	}
	if cfg.CacheTTL < time.Second {
		return Config{}, fmt.Errorf("[Config] CACHE_TTL must be at least 1s, got %s", cfg.CacheTTL)
	}
	if cfg.ExtendedStopWords, err = strconv.ParseBool(getEnv("EXTENDED_STOPWORDS", "false")); err != nil {
		return Config{}, fmt.Errorf("[Config] invalid EXTENDED_STOPWORDS: %w", err)
	}

	switch cfg.Translator {
	case "google", "openai", "none":
	default:
		return Config{}, fmt.Errorf("[Config] unknown TRANSLATOR %q", cfg.Translator)
	}

	return cfg, nil
}
