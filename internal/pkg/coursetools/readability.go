package coursetools

import (
	"strings"
	"sync"
	"unicode"

	"github.com/go-ego/gse"
)

// TextAnalyzer counts words and estimates reading level. Latin-script
// text is split on whitespace; CJK text goes through the gse
// segmenter, which is loaded lazily on first use.
type TextAnalyzer struct {
	once sync.Once
	seg  gse.Segmenter
}

// NewTextAnalyzer creates an analyzer. The segmenter dictionary is not
// loaded until a CJK text is analyzed.
func NewTextAnalyzer() *TextAnalyzer {
	return &TextAnalyzer{}
}

// WordCount counts words in mixed-script text.
func (a *TextAnalyzer) WordCount(text string) int {
	if !containsCJK(text) {
		return len(strings.Fields(text))
	}

	a.once.Do(func() {
		// Embedded default dictionary; failure degrades to rune-level
		// cutting inside gse.
		_ = a.seg.LoadDict()
	})

	count := 0
	for _, w := range a.seg.Cut(text, true) {
		if strings.TrimFunc(w, func(r rune) bool {
			return unicode.IsSpace(r) || unicode.IsPunct(r)
		}) != "" {
			count++
		}
	}
	return count
}

// SentenceCount counts sentence-terminating punctuation, treating the
// whole text as one sentence when none is found.
func (a *TextAnalyzer) SentenceCount(text string) int {
	count := 0
	for _, r := range text {
		switch r {
		case '.', '!', '?', '。', '！', '？':
			count++
		}
	}
	if count == 0 && strings.TrimSpace(text) != "" {
		return 1
	}
	return count
}

// EstimateGradeLevel maps average sentence length to an approximate
// school grade. A rough heuristic in the Flesch-Kincaid family with an
// assumed syllable rate; only used for a soft reading-level warning.
func (a *TextAnalyzer) EstimateGradeLevel(text string) float64 {
	words := a.WordCount(text)
	sentences := a.SentenceCount(text)
	if words == 0 || sentences == 0 {
		return 0
	}
	avgLen := float64(words) / float64(sentences)
	grade := 0.39*avgLen + 2.1
	if grade < 1 {
		grade = 1
	}
	if grade > 12 {
		grade = 12
	}
	return grade
}

func containsCJK(text string) bool {
	for _, r := range text {
		if unicode.Is(unicode.Han, r) || unicode.Is(unicode.Hiragana, r) || unicode.Is(unicode.Katakana, r) || unicode.Is(unicode.Hangul, r) {
			return true
		}
	}
	return false
}
