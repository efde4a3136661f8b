package sentiment

import (
	"fmt"
	"strings"

	"github.com/tsawler/prose/v3"
)

// ProseScorer uses the prose lexicon analyzer, which reports polarity and
// subjectivity directly.
type ProseScorer struct {
	analyzer *prose.SentimentAnalyzer
}

func NewProseScorer() *ProseScorer {
	cfg := prose.DefaultSentimentConfig()
	cfg.UseML = false
	return &ProseScorer{analyzer: prose.NewSentimentAnalyzer(prose.English, cfg)}
}

func (p *ProseScorer) Score(text string) (Scores, error) {
	if strings.TrimSpace(text) == "" {
		return Scores{}, nil
	}

	doc, err := prose.NewDocument(text)
	if err != nil {
		return Scores{}, fmt.Errorf("[ProseScorer] failed to build document: %w", err)
	}

	score := p.analyzer.AnalyzeDocument(doc)
	return Scores{
		Polarity:     clamp(score.Polarity, -1, 1),
		Subjectivity: clamp(score.Subjectivity, 0, 1),
	}, nil
}
