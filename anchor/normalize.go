// Package anchor re-attaches externally produced semantic chunks onto the
// source coordinates they came from. It matches chunk text against the
// extracted line stream, tolerating rewording, merged or split lines, and
// page-boundary continuations, and annotates each chunk in place.
package anchor

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Normalize canonicalizes text for exact comparison: NFKC normalization
// and whitespace collapsed to single spaces.
func Normalize(s string) string {
	return strings.Join(strings.Fields(norm.NFKC.String(s)), " ")
}

// NormalizeLoose canonicalizes text for punctuation-insensitive
// comparison: NFKC, punctuation and symbols stripped, lowercased, and
// whitespace collapsed.
func NormalizeLoose(s string) string {
	var b strings.Builder
	for _, r := range norm.NFKC.String(s) {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// WordSet returns the set of whitespace-separated words in s.
func WordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(s) {
		set[w] = struct{}{}
	}
	return set
}

// Jaccard is the intersection size over the union size of two word sets.
// Two empty sets score zero.
func Jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	inter := 0
	for w := range a {
		if _, ok := b[w]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}

// Score rates the similarity of two normalized strings on a 0-100 scale:
// 100 for equality, a length-ratio score when one contains the other, and
// a scaled Jaccard word-set similarity otherwise.
func Score(a, b string) int {
	if a == b {
		return 100
	}
	if a == "" || b == "" {
		return 0
	}
	la := float64(utf8.RuneCountInString(a))
	lb := float64(utf8.RuneCountInString(b))
	switch {
	case strings.Contains(b, a):
		return int(math.Round(la / lb * 95))
	case strings.Contains(a, b):
		return int(math.Round(lb / la * 90))
	}
	return int(math.Round(Jaccard(WordSet(a), WordSet(b)) * 85))
}
