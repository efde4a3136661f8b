package sentiment

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
)

const (
	EngineVADER = "vader"
	EngineProse = "prose"
)

// Scores holds polarity in [-1, 1] and subjectivity in [0, 1].
type Scores struct {
	Polarity     float64 `json:"polarity"`
	Subjectivity float64 `json:"subjectivity"`
}

// Scorer is the sentiment oracle. It is expected to succeed for any string.
type Scorer interface {
	Score(text string) (Scores, error)
}

// NewScorer builds the scorer named by engine.
func NewScorer(engine string) (Scorer, error) {
	switch strings.ToLower(strings.TrimSpace(engine)) {
	case "", EngineVADER:
		slog.Info("[Sentiment] Using VADER engine")
		return NewVADERScorer(), nil
	case EngineProse:
		slog.Info("[Sentiment] Using prose engine")
		return NewProseScorer(), nil
	default:
		return nil, fmt.Errorf("[Sentiment] unknown sentiment engine %q", engine)
	}
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(lo, math.Min(hi, v))
}
