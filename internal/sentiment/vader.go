package sentiment

import (
	"strings"

	"github.com/jonreiter/govader"
)

// VADERScorer scores English text with the VADER lexicon. Polarity is the
// compound score; subjectivity is the share of the text VADER found
// non-neutral.
type VADERScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVADERScorer() *VADERScorer {
	return &VADERScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (v *VADERScorer) Score(text string) (Scores, error) {
	plainText := strings.Join(strings.Fields(text), " ")
	if plainText == "" {
		return Scores{}, nil
	}

	sentiment := v.analyzer.PolarityScores(plainText)

	return Scores{
		Polarity:     clamp(sentiment.Compound, -1, 1),
		Subjectivity: clamp(sentiment.Positive+sentiment.Negative, 0, 1),
	}, nil
}
