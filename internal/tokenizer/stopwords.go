package tokenizer

import (
	"strings"
	"unicode"

	"github.com/bbalet/stopwords"
)

// baseStopWords are the Spanish and English function words dropped from
// every frequency count.
var baseStopWords = []string{
	"a", "al", "como", "con", "de", "del", "el", "ella", "en", "es", "la", "las",
	"los", "lo", "mi", "no", "por", "que", "se", "sin", "su", "te", "tu", "un", "una",
	"y", "yo", "the", "to", "of", "and", "in", "for", "on", "with", "my", "me",
}

var defaultStopWords = NewStopWordSet(baseStopWords...)

// StopWordSet is an immutable set of normalized words. The zero value is an
// empty set.
type StopWordSet struct {
	words map[string]struct{}
}

func NewStopWordSet(words ...string) StopWordSet {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = struct{}{}
	}
	return StopWordSet{words: set}
}

// DefaultStopWords returns the process-wide stop-word set.
func DefaultStopWords() StopWordSet {
	return defaultStopWords
}

func (s StopWordSet) Contains(word string) bool {
	_, ok := s.words[word]
	return ok
}

func (s StopWordSet) Len() int {
	return len(s.words)
}

// isLibraryStopWord reports whether the bbalet/stopwords list for lang drops
// word. CleanString returns an empty string for a lone stop-word, but it also
// strips digits, so only pure letter/mark tokens are checked.
func isLibraryStopWord(word, lang string) bool {
	if word == "" || strings.IndexFunc(word, notLetterOrMark) >= 0 {
		return false
	}
	return strings.TrimSpace(stopwords.CleanString(word, lang, false)) == ""
}

func notLetterOrMark(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsMark(r)
}
