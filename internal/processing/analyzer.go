package processing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/spacesedan/lyricflow/internal/models"
	"github.com/spacesedan/lyricflow/internal/sentiment"
	"github.com/spacesedan/lyricflow/internal/tokenizer"
	"github.com/spacesedan/lyricflow/internal/translation"
)

const (
	DEFAULT_SOURCE_LANG = "es"
	DEFAULT_TARGET_LANG = "en"
	// MAX_ANNOTATED_SENTENCES caps the per-sentence sentiment list.
	MAX_ANNOTATED_SENTENCES = 10
)

// Analyzer runs the translate, score, split and count pipeline.
type Analyzer struct {
	translator translation.Translator
	scorer     sentiment.Scorer
	tokenizer  *tokenizer.Tokenizer
	sourceLang string
	targetLang string
	healthy    *atomic.Bool
}

type Option func(*Analyzer)

// WithLanguages sets the translation pair. source may be translation.AutoDetect.
func WithLanguages(source, target string) Option {
	return func(a *Analyzer) {
		if source != "" {
			a.sourceLang = source
		}
		if target != "" {
			a.targetLang = target
		}
	}
}

func WithTokenizer(t *tokenizer.Tokenizer) Option {
	return func(a *Analyzer) {
		a.tokenizer = t
	}
}

// WithHealthCheck skips the translator while healthy reports false, taking
// the same fallback path as a failed translation.
func WithHealthCheck(healthy *atomic.Bool) Option {
	return func(a *Analyzer) {
		a.healthy = healthy
	}
}

func NewAnalyzer(translator translation.Translator, scorer sentiment.Scorer, opts ...Option) *Analyzer {
	a := &Analyzer{
		translator: translator,
		scorer:     scorer,
		tokenizer:  tokenizer.New(),
		sourceLang: DEFAULT_SOURCE_LANG,
		targetLang: DEFAULT_TARGET_LANG,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze builds the AnalysisResult for text. Translation failures fall back
// to the original text; every other error is returned.
func (a *Analyzer) Analyze(ctx context.Context, text string) (models.AnalysisResult, error) {
	start := time.Now()
	source := translation.ResolveSource(text, a.sourceLang, DEFAULT_SOURCE_LANG)

	translated, fellBack, err := a.translate(ctx, text, source)
	if err != nil {
		return models.AnalysisResult{}, err
	}

	scores, err := a.scorer.Score(translated)
	if err != nil {
		return models.AnalysisResult{}, fmt.Errorf("[Analyzer] sentiment scoring failed: %w", err)
	}

	frequencies, tokens := a.tokenizer.CountWords(translated)

	result := models.AnalysisResult{
		SentimentPolarity:   scores.Polarity,
		Subjectivity:        scores.Subjectivity,
		Sentences:           SplitSentences(text),
		WordFrequencies:     frequencies,
		OriginalText:        text,
		TranslatedText:      translated,
		SourceLanguage:      source,
		TranslationFallback: fellBack,
	}

	slog.Info("[Analyzer] Analysis complete",
		slog.String("source_lang", source),
		slog.Int("sentences", len(result.Sentences)),
		slog.Int("tokens", len(tokens)),
		slog.Bool("translation_fallback", fellBack),
		slog.Duration("elapsed", time.Since(start)))

	return result, nil
}

// AnnotateSentences scores each of the first MAX_ANNOTATED_SENTENCES
// sentences on its own translation.
func (a *Analyzer) AnnotateSentences(ctx context.Context, sentences []string, source string) ([]models.SentenceSentiment, error) {
	if len(sentences) > MAX_ANNOTATED_SENTENCES {
		sentences = sentences[:MAX_ANNOTATED_SENTENCES]
	}
	if source == "" {
		source = a.sourceLang
	}

	annotated := make([]models.SentenceSentiment, 0, len(sentences))
	for i, sentence := range sentences {
		translated, _, err := a.translate(ctx, sentence, source)
		if err != nil {
			return nil, err
		}

		scores, err := a.scorer.Score(translated)
		if err != nil {
			return nil, fmt.Errorf("[Analyzer] sentence scoring failed: %w", err)
		}

		annotated = append(annotated, models.SentenceSentiment{
			Index:    i + 1,
			Text:     sentence,
			Polarity: scores.Polarity,
			Band:     sentiment.ClassifyPolarity(scores.Polarity),
		})
	}
	return annotated, nil
}

// Report runs Analyze and annotates the resulting sentences.
func (a *Analyzer) Report(ctx context.Context, text string) (models.AnalysisReport, error) {
	result, err := a.Analyze(ctx, text)
	if err != nil {
		return models.AnalysisReport{}, err
	}

	annotated, err := a.AnnotateSentences(ctx, result.Sentences, result.SourceLanguage)
	if err != nil {
		return models.AnalysisReport{}, err
	}

	return models.AnalysisReport{
		AnalysisResult:     result,
		SentenceSentiments: annotated,
	}, nil
}

// translate reports fellBack when the original text had to stand in for the
// translation.
func (a *Analyzer) translate(ctx context.Context, text, source string) (string, bool, error) {
	if strings.TrimSpace(text) == "" || strings.EqualFold(source, a.targetLang) {
		return text, false, nil
	}

	if a.healthy != nil && !a.healthy.Load() {
		slog.Warn("[Analyzer] Translator marked unhealthy, using original text")
		return text, true, nil
	}

	translated, err := a.translator.Translate(ctx, text, source, a.targetLang)
	if err != nil {
		var tErr *translation.Error
		if errors.As(err, &tErr) {
			slog.Warn("[Analyzer] Translation failed, using original text",
				slog.String("provider", tErr.Provider),
				slog.String("error", tErr.Error()))
			return text, true, nil
		}
		return "", false, fmt.Errorf("[Analyzer] translation: %w", err)
	}

	return translated, false, nil
}
