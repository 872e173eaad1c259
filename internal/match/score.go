package match

// Score converts a match result into a relevance score:
//
//	2 per matched ticker + 1 per keyword occurrence + 1 when a strong
//	word is present.
//
// The result is always >= 0.
func Score(res Result) int {
	score := 2*len(res.Symbols) + res.KeywordHits
	if res.StrongWord {
		score++
	}
	return score
}
