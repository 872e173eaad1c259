package registry

import (
	"strings"

	"main/internal/model"
)

// TickerEntry is one instrument inside a snapshot: its symbol plus the
// merged set of lowercase alias names that should match it.
type TickerEntry struct {
	ID      uint
	Symbol  string
	Aliases []string
}

// Snapshot is the immutable bundle of tickers, keywords and strong
// words in effect for a single scrape cycle. It is assembled once at
// cycle start and passed down the pipeline so matching stays
// deterministic even while the underlying tables are edited.
type Snapshot struct {
	Tickers     []TickerEntry
	Keywords    []string
	StrongWords []string
}

// BuildSnapshot merges each ticker's user-supplied aliases with the
// curated company-name table. There is no precedence between the two;
// the result is a plain union with duplicates removed.
func BuildSnapshot(tickers []model.Ticker, keywords []model.Keyword, strongWords []string) Snapshot {
	snap := Snapshot{
		Tickers:     make([]TickerEntry, 0, len(tickers)),
		Keywords:    make([]string, 0, len(keywords)),
		StrongWords: make([]string, 0, len(strongWords)),
	}

	curated := curatedAliases(tickers)

	for _, t := range tickers {
		symbol := strings.ToUpper(strings.TrimSpace(t.Symbol))
		if symbol == "" {
			continue
		}

		seen := make(map[string]struct{})
		var aliases []string
		for _, alias := range t.Aliases() {
			if _, ok := seen[alias]; ok {
				continue
			}
			seen[alias] = struct{}{}
			aliases = append(aliases, alias)
		}
		for _, alias := range curated[symbol] {
			if _, ok := seen[alias]; ok {
				continue
			}
			seen[alias] = struct{}{}
			aliases = append(aliases, alias)
		}

		snap.Tickers = append(snap.Tickers, TickerEntry{
			ID:      t.ID,
			Symbol:  symbol,
			Aliases: aliases,
		})
	}

	for _, k := range keywords {
		word := strings.ToLower(strings.TrimSpace(k.Word))
		if word != "" {
			snap.Keywords = append(snap.Keywords, word)
		}
	}

	for _, w := range strongWords {
		word := strings.ToLower(strings.TrimSpace(w))
		if word != "" {
			snap.StrongWords = append(snap.StrongWords, word)
		}
	}

	return snap
}

// curatedAliases inverts the curated company table, keeping only
// entries whose symbol is actually configured.
func curatedAliases(tickers []model.Ticker) map[string][]string {
	configured := make(map[string]struct{}, len(tickers))
	for _, t := range tickers {
		configured[strings.ToUpper(strings.TrimSpace(t.Symbol))] = struct{}{}
	}

	out := make(map[string][]string)
	for name, symbol := range companyToTicker {
		if _, ok := configured[symbol]; ok {
			out[symbol] = append(out[symbol], name)
		}
	}
	return out
}
