package translation

import (
	"strings"

	"github.com/tsawler/prose/v3"
)

// AutoDetect as a source language asks ResolveSource to guess it.
const AutoDetect = "auto"

// minDetectConfidence is the score below which detection falls back.
const minDetectConfidence = 0.4

var detector = prose.NewLanguageDetector()

// ResolveSource returns configured unless it is AutoDetect, in which case the
// language is detected from text. Low confidence detections return fallback.
func ResolveSource(text, configured, fallback string) string {
	if !strings.EqualFold(configured, AutoDetect) {
		return configured
	}
	lang, confidence := detector.DetectLanguage(text)
	if confidence < minDetectConfidence || lang == "" {
		return fallback
	}
	return string(lang)
}
