package processing

import (
	"context"
	"errors"
	"reflect"
	"sync/atomic"
	"testing"

	"github.com/spacesedan/lyricflow/internal/models"
	"github.com/spacesedan/lyricflow/internal/sentiment"
	"github.com/spacesedan/lyricflow/internal/translation"
)

// mapTranslator returns fixed translations and records every call.
type mapTranslator struct {
	translations map[string]string
	err          error
	calls        []string
}

func (m *mapTranslator) Translate(_ context.Context, text, _, _ string) (string, error) {
	m.calls = append(m.calls, text)
	if m.err != nil {
		return "", m.err
	}
	if out, ok := m.translations[text]; ok {
		return out, nil
	}
	return text, nil
}

// mapScorer returns fixed scores per text, zero otherwise.
type mapScorer struct {
	scores map[string]sentiment.Scores
	err    error
	seen   []string
}

func (m *mapScorer) Score(text string) (sentiment.Scores, error) {
	m.seen = append(m.seen, text)
	if m.err != nil {
		return sentiment.Scores{}, m.err
	}
	return m.scores[text], nil
}

const (
	lyric      = "Dinero y poder, nada me puede detener. Dinero y poder."
	lyricInEng = "Money and power, nothing can stop me. Money and power."
)

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"Hello world. How are you? Great!!", []string{"Hello world", "How are you", "Great"}},
		{"", []string{}},
		{"   ...!!?  ", []string{}},
		{"no delimiter at all", []string{"no delimiter at all"}},
		{"Uno.\n\nDos?!\tTres", []string{"Uno", "Dos", "Tres"}},
	}

	for _, tt := range tests {
		got := SplitSentences(tt.in)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitSentences(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAnalyzeEndToEnd(t *testing.T) {
	translator := &mapTranslator{translations: map[string]string{lyric: lyricInEng}}
	scorer := &mapScorer{scores: map[string]sentiment.Scores{
		lyricInEng: {Polarity: 0.4, Subjectivity: 0.3},
	}}

	result, err := NewAnalyzer(translator, scorer).Analyze(context.Background(), lyric)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantSentences := []string{"Dinero y poder, nada me puede detener", "Dinero y poder"}
	if !reflect.DeepEqual(result.Sentences, wantSentences) {
		t.Errorf("sentences = %q, want %q", result.Sentences, wantSentences)
	}
	if result.SentimentPolarity != 0.4 {
		t.Errorf("polarity = %v, want 0.4", result.SentimentPolarity)
	}
	if result.Subjectivity != 0.3 {
		t.Errorf("subjectivity = %v, want 0.3", result.Subjectivity)
	}
	if result.TranslatedText != lyricInEng || result.OriginalText != lyric {
		t.Errorf("texts = %q / %q", result.OriginalText, result.TranslatedText)
	}
	if result.TranslationFallback {
		t.Error("unexpected fallback flag")
	}

	if result.Frequency("money") != 2 || result.Frequency("power") != 2 {
		t.Errorf("frequencies = %v", result.WordFrequencies)
	}
	for _, wf := range result.WordFrequencies[2:] {
		if wf.Count != 1 {
			t.Errorf("expected singletons after money/power, got %+v", wf)
		}
	}
	if result.Frequency("dinero") != 0 {
		t.Error("frequencies must come from the translated text")
	}
}

func TestAnalyzeFallsBackOnTranslationFailure(t *testing.T) {
	translator := &mapTranslator{err: translation.Failure("google", errors.New("status code 503"))}
	scorer := &mapScorer{}

	result, err := NewAnalyzer(translator, scorer).Analyze(context.Background(), lyric)
	if err != nil {
		t.Fatalf("translation failure must not abort analysis: %v", err)
	}
	if result.TranslatedText != lyric {
		t.Errorf("translated text = %q, want original", result.TranslatedText)
	}
	if !result.TranslationFallback {
		t.Error("expected fallback flag")
	}
	if len(scorer.seen) != 1 || scorer.seen[0] != lyric {
		t.Errorf("scorer should see the original text, saw %q", scorer.seen)
	}
	if result.Frequency("dinero") != 2 {
		t.Errorf("frequencies = %v", result.WordFrequencies)
	}
	if len(result.Sentences) != 2 {
		t.Errorf("sentences = %q", result.Sentences)
	}
}

func TestAnalyzePropagatesUnexpectedErrors(t *testing.T) {
	boom := errors.New("client misconfigured")

	_, err := NewAnalyzer(&mapTranslator{err: boom}, &mapScorer{}).Analyze(context.Background(), lyric)
	if !errors.Is(err, boom) {
		t.Errorf("expected translator error to propagate, got %v", err)
	}

	_, err = NewAnalyzer(&mapTranslator{}, &mapScorer{err: boom}).Analyze(context.Background(), lyric)
	if !errors.Is(err, boom) {
		t.Errorf("expected scorer error to propagate, got %v", err)
	}
}

func TestAnalyzeEmptyText(t *testing.T) {
	translator := &mapTranslator{}
	result, err := NewAnalyzer(translator, &mapScorer{}).Analyze(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Sentences) != 0 || len(result.WordFrequencies) != 0 {
		t.Errorf("expected degenerate result, got %+v", result)
	}
	if len(translator.calls) != 0 {
		t.Errorf("empty text should not reach the translator")
	}
}

func TestAnalyzeSkipsTranslationForTargetLanguage(t *testing.T) {
	translator := &mapTranslator{}
	a := NewAnalyzer(translator, &mapScorer{}, WithLanguages("en", "en"))
	result, err := a.Analyze(context.Background(), "Money and power.")
	if err != nil {
		t.Fatal(err)
	}
	if len(translator.calls) != 0 {
		t.Errorf("translator called for same-language text: %q", translator.calls)
	}
	if result.TranslatedText != result.OriginalText {
		t.Error("translated text should equal original")
	}
}

func TestAnalyzeUnhealthyTranslator(t *testing.T) {
	healthy := &atomic.Bool{}
	translator := &mapTranslator{translations: map[string]string{lyric: lyricInEng}}

	result, err := NewAnalyzer(translator, &mapScorer{}, WithHealthCheck(healthy)).Analyze(context.Background(), lyric)
	if err != nil {
		t.Fatal(err)
	}
	if len(translator.calls) != 0 {
		t.Error("unhealthy translator should not be called")
	}
	if result.TranslatedText != lyric || !result.TranslationFallback {
		t.Errorf("expected fallback result, got %+v", result)
	}
}

func TestAnnotateSentences(t *testing.T) {
	translator := &mapTranslator{translations: map[string]string{
		"Estoy feliz":  "I am happy",
		"Estoy triste": "I am sad",
	}}
	scorer := &mapScorer{scores: map[string]sentiment.Scores{
		"I am happy": {Polarity: 0.051},
		"I am sad":   {Polarity: -0.051},
		"Borde":      {Polarity: 0.05},
	}}

	annotated, err := NewAnalyzer(translator, scorer).AnnotateSentences(context.Background(),
		[]string{"Estoy feliz", "Estoy triste", "Borde"}, "es")
	if err != nil {
		t.Fatal(err)
	}

	want := []models.SentimentBand{models.BandPositive, models.BandNegative, models.BandNeutral}
	if len(annotated) != len(want) {
		t.Fatalf("annotated = %+v", annotated)
	}
	for i, band := range want {
		if annotated[i].Band != band {
			t.Errorf("sentence %d band = %q, want %q", i, annotated[i].Band, band)
		}
		if annotated[i].Index != i+1 {
			t.Errorf("sentence %d index = %d", i, annotated[i].Index)
		}
	}
	if annotated[0].Text != "Estoy feliz" {
		t.Errorf("annotation should keep original text, got %q", annotated[0].Text)
	}
}

func TestAnnotateSentencesFallsBackOnTranslationFailure(t *testing.T) {
	translator := &mapTranslator{err: translation.Failure("google", errors.New("status code 503"))}
	scorer := &mapScorer{scores: map[string]sentiment.Scores{
		"Estoy feliz":  {Polarity: 0.6},
		"Estoy triste": {Polarity: -0.6},
	}}

	annotated, err := NewAnalyzer(translator, scorer).AnnotateSentences(context.Background(),
		[]string{"Estoy feliz", "Estoy triste"}, "es")
	if err != nil {
		t.Fatalf("translation failure should not surface: %v", err)
	}
	if len(annotated) != 2 {
		t.Fatalf("annotated = %+v", annotated)
	}
	if !reflect.DeepEqual(scorer.seen, []string{"Estoy feliz", "Estoy triste"}) {
		t.Errorf("scorer saw %v, want original sentences", scorer.seen)
	}
	if annotated[0].Band != models.BandPositive || annotated[1].Band != models.BandNegative {
		t.Errorf("bands = %q, %q", annotated[0].Band, annotated[1].Band)
	}
	if annotated[0].Polarity != 0.6 {
		t.Errorf("polarity = %v, want 0.6", annotated[0].Polarity)
	}
}

func TestAnnotateSentencesCapsAtTen(t *testing.T) {
	sentences := make([]string, 25)
	for i := range sentences {
		sentences[i] = "linea"
	}
	translator := &mapTranslator{}
	annotated, err := NewAnalyzer(translator, &mapScorer{}).AnnotateSentences(context.Background(), sentences, "es")
	if err != nil {
		t.Fatal(err)
	}
	if len(annotated) != MAX_ANNOTATED_SENTENCES {
		t.Errorf("got %d annotations, want %d", len(annotated), MAX_ANNOTATED_SENTENCES)
	}
	if len(translator.calls) != MAX_ANNOTATED_SENTENCES {
		t.Errorf("got %d translator calls", len(translator.calls))
	}
}

func TestReportUsesCachedSentenceTranslations(t *testing.T) {
	upstream := &mapTranslator{translations: map[string]string{
		lyric:                                  lyricInEng,
		"Dinero y poder":                       "Money and power",
		"Dinero y poder, nada me puede detener": "Money and power, nothing can stop me",
	}}
	cached := translation.NewCachedTranslator(upstream, translation.NewMemoryCache(0, 0))
	a := NewAnalyzer(cached, &mapScorer{})

	text := "Dinero y poder. Dinero y poder. Dinero y poder, nada me puede detener."
	report, err := a.Report(context.Background(), text)
	if err != nil {
		t.Fatal(err)
	}
	if len(report.SentenceSentiments) != 3 {
		t.Fatalf("sentence sentiments = %+v", report.SentenceSentiments)
	}
	// whole text + two distinct sentences
	if len(upstream.calls) != 3 {
		t.Errorf("expected 3 upstream translations, got %d: %q", len(upstream.calls), upstream.calls)
	}
}
