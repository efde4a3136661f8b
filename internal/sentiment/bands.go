package sentiment

import "github.com/spacesedan/lyricflow/internal/models"

const (
	// PolarityThreshold bounds the neutral band; both ends are neutral.
	PolarityThreshold = 0.05
	// SubjectivityThreshold splits personal lyrics from narrative ones.
	SubjectivityThreshold = 0.5
)

func ClassifyPolarity(polarity float64) models.SentimentBand {
	if polarity > PolarityThreshold {
		return models.BandPositive
	} else if polarity < -PolarityThreshold {
		return models.BandNegative
	}
	return models.BandNeutral
}

func IsSubjective(subjectivity float64) bool {
	return subjectivity > SubjectivityThreshold
}

func BandEmoji(band models.SentimentBand) string {
	switch band {
	case models.BandPositive:
		return "🔥"
	case models.BandNegative:
		return "💀"
	default:
		return "😐"
	}
}

// PolarityCaption is the headline shown next to the overall sentiment bar.
func PolarityCaption(band models.SentimentBand) string {
	switch band {
	case models.BandPositive:
		return "High positivity, a winning vibe 💰"
	case models.BandNegative:
		return "Dark tone, pure trap with no fear"
	default:
		return "Neutral, a calm but steady verse"
	}
}

func SubjectivityCaption(subjectivity float64) string {
	if IsSubjective(subjectivity) {
		return "🎭 High subjectivity, personal lyrics full of feeling"
	}
	return "🧊 Low subjectivity, objective and narrative lyrics"
}
