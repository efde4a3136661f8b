package tokenizer

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/spacesedan/lyricflow/internal/models"
)

// MinTokenLength is the shortest token kept; anything with fewer runes is dropped.
const MinTokenLength = 3

// wordPattern matches maximal runs of Unicode word characters.
var wordPattern = regexp.MustCompile(`[\p{L}\p{M}\p{N}_]+`)

type Tokenizer struct {
	stopWords    StopWordSet
	extendedLang string
}

type Option func(*Tokenizer)

// WithStopWords replaces the default stop-word set.
func WithStopWords(set StopWordSet) Option {
	return func(t *Tokenizer) {
		t.stopWords = set
	}
}

// WithExtendedStopWords also drops tokens listed as stop-words for lang
// (ISO 639-1) by github.com/bbalet/stopwords.
func WithExtendedStopWords(lang string) Option {
	return func(t *Tokenizer) {
		t.extendedLang = lang
	}
}

func New(opts ...Option) *Tokenizer {
	t := &Tokenizer{stopWords: defaultStopWords}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

var defaultTokenizer = New()

// CountWords counts text with the default stop-word set.
func CountWords(text string) ([]models.WordFrequency, []string) {
	return defaultTokenizer.CountWords(text)
}

// Tokens lower-cases text and returns every word token, unfiltered.
func Tokens(text string) []string {
	return wordPattern.FindAllString(strings.ToLower(text), -1)
}

// CountWords returns the ranked frequencies and the filtered tokens in the
// order they appear. Ranking is by count descending, ties keep first-seen order.
func (t *Tokenizer) CountWords(text string) ([]models.WordFrequency, []string) {
	filtered := make([]string, 0)
	for _, token := range Tokens(text) {
		if t.keep(token) {
			filtered = append(filtered, token)
		}
	}

	index := make(map[string]int, len(filtered))
	frequencies := make([]models.WordFrequency, 0, len(filtered))
	for _, token := range filtered {
		if i, ok := index[token]; ok {
			frequencies[i].Count++
			continue
		}
		index[token] = len(frequencies)
		frequencies = append(frequencies, models.WordFrequency{Word: token, Count: 1})
	}

	sort.SliceStable(frequencies, func(i, j int) bool {
		return frequencies[i].Count > frequencies[j].Count
	})

	return frequencies, filtered
}

func (t *Tokenizer) keep(token string) bool {
	if utf8.RuneCountInString(token) < MinTokenLength {
		return false
	}
	if t.stopWords.Contains(token) {
		return false
	}
	if t.extendedLang != "" && isLibraryStopWord(token, t.extendedLang) {
		return false
	}
	return true
}
