package kmeans

import (
	"strings"
	"unicode"

	"github.com/clipperhouse/uax29/v2/words"
	"golang.org/x/text/unicode/norm"
)

// StopWords is a set of terms ignored when counting.
type StopWords map[string]struct{}

// NewStopWords builds a stop-word set. Words are normalized the same way
// Tokenize normalizes text, so "The" and "the" are the same stop word.
func NewStopWords(words ...string) StopWords {
	s := make(StopWords, len(words))
	for _, w := range words {
		s[normalize(strings.TrimSpace(w))] = struct{}{}
	}
	return s
}

// Contains reports whether term is a stop word. A nil set contains nothing.
func (s StopWords) Contains(term string) bool {
	_, ok := s[term]
	return ok
}

// normalize applies Unicode normalization (NFKC) and converts to lowercase.
func normalize(s string) string {
	return strings.ToLower(norm.NFKC.String(s))
}

// isWord reports whether tok is made of letters only.
func isWord(tok string) bool {
	if tok == "" {
		return false
	}
	for _, r := range tok {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// Tokenize splits text into lower-case word tokens.
//
// Text is NFKC-normalized and segmented with UAX#29 word boundaries; segments
// that are not made only of letters (spaces, punctuation, numbers) are dropped.
func Tokenize(text string) []string {
	toks := words.FromString(normalize(text))
	var tokens []string
	for toks.Next() {
		if tok := toks.Value(); isWord(tok) {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// CountTerms returns the term frequencies of text, skipping stop words.
func CountTerms(text string, stop StopWords) Frequencies {
	freq := make(Frequencies)
	for _, tok := range Tokenize(text) {
		if stop.Contains(tok) {
			continue
		}
		freq[tok]++
	}
	return freq
}
