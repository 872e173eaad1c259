// Package sentiment estimates the polarity of short news text using a
// lexicon and a small set of heuristic rules: word-level valences
// adjusted by negation, intensifiers, ALL-CAPS emphasis and
// exclamation marks, normalized into [-1, 1].
package sentiment

import (
	"math"
	"strings"
	"unicode"
)

const (
	// capsBoost is added to a word's valence magnitude when the word is
	// written in ALL CAPS inside mixed-case text.
	capsBoost = 0.733

	// negationDamp flips and dampens a valence when a negation word
	// precedes it within the lookback window.
	negationDamp = -0.74

	// exclamationBoost is added to the total per trailing exclamation
	// mark, up to exclamationCap.
	exclamationBoost = 0.292
	exclamationCap   = 4

	// normalizationAlpha shapes the sigmoid-like normalization.
	normalizationAlpha = 15.0

	// lookback is how many preceding words are inspected for negations
	// and boosters.
	lookback = 3
)

// Compound returns a single polarity estimate in [-1, 1] for text.
// Empty or neutral text returns 0.
func Compound(text string) float64 {
	words := splitWords(text)
	if len(words) == 0 {
		return 0
	}

	mixedCase := !allCaps(words)

	var sum float64
	for i, word := range words {
		lower := strings.ToLower(word)
		valence, ok := lexicon[lower]
		if !ok {
			continue
		}

		if mixedCase && isCaps(word) {
			if valence > 0 {
				valence += capsBoost
			} else {
				valence -= capsBoost
			}
		}

		valence = applyContext(words, i, valence, mixedCase)
		sum += valence
	}

	if sum == 0 {
		return 0
	}

	sum += punctuationEmphasis(text, sum)
	return normalize(sum)
}

// applyContext scans up to lookback preceding words for boosters and
// negations. Booster weight decays with distance, mirroring the
// original VADER scalar decay.
func applyContext(words []string, i int, valence float64, mixedCase bool) float64 {
	negated := false
	for dist := 1; dist <= lookback && i-dist >= 0; dist++ {
		prev := strings.ToLower(words[i-dist])

		if boost, ok := boosters[prev]; ok {
			scalar := boost
			if valence < 0 {
				scalar = -scalar
			}
			if mixedCase && isCaps(words[i-dist]) {
				if valence > 0 {
					scalar += capsBoost
				} else {
					scalar -= capsBoost
				}
			}
			switch dist {
			case 2:
				scalar *= 0.95
			case 3:
				scalar *= 0.9
			}
			valence += scalar
		}

		if negations[prev] {
			negated = true
		}
	}

	if negated {
		valence *= negationDamp
	}
	return valence
}

// punctuationEmphasis returns the signed amplification contributed by
// exclamation marks anywhere in the text.
func punctuationEmphasis(text string, sum float64) float64 {
	count := strings.Count(text, "!")
	if count > exclamationCap {
		count = exclamationCap
	}
	amp := float64(count) * exclamationBoost
	if sum < 0 {
		return -amp
	}
	return amp
}

// normalize maps an unbounded valence sum into (-1, 1).
func normalize(sum float64) float64 {
	norm := sum / math.Sqrt(sum*sum+normalizationAlpha)
	if norm > 1 {
		return 1
	}
	if norm < -1 {
		return -1
	}
	return norm
}

// splitWords breaks text into words, trimming surrounding punctuation
// but keeping internal apostrophes and hyphens.
func splitWords(text string) []string {
	fields := strings.Fields(text)
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		trimmed := strings.TrimFunc(f, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		})
		if trimmed != "" {
			words = append(words, trimmed)
		}
	}
	return words
}

func isCaps(word string) bool {
	hasLetter := false
	for _, r := range word {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}

func allCaps(words []string) bool {
	for _, w := range words {
		if !isCaps(w) {
			return false
		}
	}
	return true
}
