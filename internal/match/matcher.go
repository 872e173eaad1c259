package match

import (
	"strings"

	"main/internal/registry"
)

// Result is the outcome of scanning one candidate text against a
// registry snapshot.
type Result struct {
	Symbols     []string
	KeywordHits int
	StrongWord  bool
}

// Match scans text for ticker symbols, aliases, keywords and strong
// words. It is pure: the same text and snapshot always produce the
// same result. Repeated mentions of a ticker count once; repeated
// keyword occurrences all count.
func Match(snap registry.Snapshot, text string) Result {
	lower := strings.ToLower(text)
	upper := strings.ToUpper(text)

	var res Result
	matched := make(map[string]struct{})

	for _, ticker := range snap.Tickers {
		if _, ok := matched[ticker.Symbol]; ok {
			continue
		}
		if symbolMentioned(upper, ticker.Symbol) {
			matched[ticker.Symbol] = struct{}{}
			res.Symbols = append(res.Symbols, ticker.Symbol)
			continue
		}
		for _, alias := range ticker.Aliases {
			if strings.Contains(lower, alias) {
				matched[ticker.Symbol] = struct{}{}
				res.Symbols = append(res.Symbols, ticker.Symbol)
				break
			}
		}
	}

	for _, keyword := range snap.Keywords {
		res.KeywordHits += strings.Count(lower, keyword)
	}

	for _, word := range snap.StrongWords {
		if strings.Contains(lower, word) {
			res.StrongWord = true
			break
		}
	}

	return res
}

// symbolMentioned reports whether symbol appears as a standalone token
// in the uppercased text. Accepted forms are the symbol delimited by
// spaces or trailing punctuation, wrapped in parentheses, or prefixed
// with the $ ticker sigil.
func symbolMentioned(upper, symbol string) bool {
	padded := " " + upper + " "
	patterns := []string{
		" " + symbol + " ",
		" " + symbol + ",",
		" " + symbol + ".",
		"(" + symbol + ")",
		"$" + symbol,
	}
	for _, p := range patterns {
		if strings.Contains(padded, p) {
			return true
		}
	}
	return false
}
