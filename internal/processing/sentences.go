package processing

import (
	"regexp"
	"strings"
)

var sentenceDelimiters = regexp.MustCompile(`[.!?]+`)

// SplitSentences splits text on runs of '.', '!' and '?', trims each piece
// and drops empty ones. Order follows the source text.
func SplitSentences(text string) []string {
	sentences := make([]string, 0)
	for _, piece := range sentenceDelimiters.Split(text, -1) {
		if s := strings.TrimSpace(piece); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}
