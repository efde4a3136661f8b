package models

// AnalysisResult is built once per analysis request and never mutated after.
type AnalysisResult struct {
	SentimentPolarity float64         `json:"sentiment_polarity"`
	Subjectivity      float64         `json:"subjectivity"`
	Sentences         []string        `json:"sentences"`
	WordFrequencies   []WordFrequency `json:"word_frequencies"`
	OriginalText      string          `json:"original_text"`
	TranslatedText    string          `json:"translated_text"`
	SourceLanguage    string          `json:"source_language"`
	// TranslationFallback is set when the translator failed and
	// TranslatedText is a copy of OriginalText.
	TranslationFallback bool `json:"translation_fallback"`
}

// WordFrequency is one entry of the ranked frequency list.
type WordFrequency struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Frequency returns the count for word, or 0 when it was not counted.
func (r AnalysisResult) Frequency(word string) int {
	for _, wf := range r.WordFrequencies {
		if wf.Word == word {
			return wf.Count
		}
	}
	return 0
}

// TopWords returns at most n of the highest ranked words.
func (r AnalysisResult) TopWords(n int) []WordFrequency {
	if n < 0 {
		n = 0
	}
	if n > len(r.WordFrequencies) {
		n = len(r.WordFrequencies)
	}
	return r.WordFrequencies[:n]
}
