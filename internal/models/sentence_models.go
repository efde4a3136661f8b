package models

type SentimentBand string

const (
	BandPositive SentimentBand = "positive"
	BandNegative SentimentBand = "negative"
	BandNeutral  SentimentBand = "neutral"
)

type SentenceSentiment struct {
	Index    int           `json:"index"`
	Text     string        `json:"text"`
	Polarity float64       `json:"polarity"`
	Band     SentimentBand `json:"band"`
}

// AnalysisReport pairs the whole-text result with the per-sentence annotations
// the page and the JSON API render.
type AnalysisReport struct {
	AnalysisResult
	SentenceSentiments []SentenceSentiment `json:"sentences_sentiment"`
}
