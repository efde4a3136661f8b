package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/spacesedan/lyricflow/config"
	"github.com/spacesedan/lyricflow/internal/clients"
	"github.com/spacesedan/lyricflow/internal/monitoring"
	"github.com/spacesedan/lyricflow/internal/processing"
	"github.com/spacesedan/lyricflow/internal/sentiment"
	"github.com/spacesedan/lyricflow/internal/tokenizer"
	"github.com/spacesedan/lyricflow/internal/translation"
)

// Pipeline is a configured analyzer plus the resources backing it.
type Pipeline struct {
	Analyzer          *processing.Analyzer
	TranslatorHealthy *atomic.Bool
	valkey            *clients.ValkeyClient
}

func (p *Pipeline) Close() {
	p.valkey.Close()
}

// NewTranslator builds the translator named by cfg.Translator.
func NewTranslator(cfg config.Config) (translation.Translator, error) {
	switch cfg.Translator {
	case "google":
		return clients.NewGoogleTranslateClient(cfg.TranslateEndpoint, cfg.TranslateTimeout)
	case "openai":
		return clients.NewOpenAITranslator(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.TranslateTimeout)
	case "none":
		return translation.Identity{}, nil
	default:
		return nil, fmt.Errorf("[App] %w: %q", translation.ErrUnknownProvider, cfg.Translator)
	}
}

// Build wires translator, caches, scorer and tokenizer from cfg. When monitor
// is set and the translator supports it, a health check runs until ctx ends.
func Build(ctx context.Context, cfg config.Config, monitor bool) (*Pipeline, error) {
	base, err := NewTranslator(cfg)
	if err != nil {
		return nil, err
	}

	scorer, err := sentiment.NewScorer(cfg.SentimentEngine)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{TranslatorHealthy: &atomic.Bool{}}
	p.TranslatorHealthy.Store(true)

	caches := []translation.Cache{translation.NewMemoryCache(translation.MEMORY_CACHE_SIZE, cfg.CacheTTL)}
	if cfg.ValkeyAddress != "" {
		vc, err := clients.InitValkey(clients.ValkeyConfig{
			Address:  cfg.ValkeyAddress,
			Password: cfg.ValkeyPassword,
			UseTLS:   cfg.ValkeyTLS,
			TTL:      cfg.CacheTTL,
		})
		if err != nil {
			slog.Warn("[App] Valkey unavailable, using in-memory translation cache only",
				slog.String("error", err.Error()))
		} else {
			p.valkey = vc
			caches = append(caches, vc)
		}
	}

	tokenizerOpts := []tokenizer.Option{}
	if cfg.ExtendedStopWords {
		tokenizerOpts = append(tokenizerOpts, tokenizer.WithExtendedStopWords(cfg.TargetLang))
	}

	opts := []processing.Option{
		processing.WithLanguages(cfg.SourceLang, cfg.TargetLang),
		processing.WithTokenizer(tokenizer.New(tokenizerOpts...)),
	}

	if checker, ok := base.(monitoring.HealthChecker); ok && monitor {
		go monitoring.MonitorTranslatorHealth(ctx, checker, p.TranslatorHealthy, monitoring.HEALTHCHECK_INTERVAL)
		opts = append(opts, processing.WithHealthCheck(p.TranslatorHealthy))
	}

	p.Analyzer = processing.NewAnalyzer(translation.NewCachedTranslator(base, caches...), scorer, opts...)

	slog.Info("[App] Pipeline ready",
		slog.String("translator", cfg.Translator),
		slog.String("sentiment_engine", cfg.SentimentEngine),
		slog.String("source_lang", cfg.SourceLang),
		slog.String("target_lang", cfg.TargetLang),
		slog.Int("cache_levels", len(caches)))

	return p, nil
}
