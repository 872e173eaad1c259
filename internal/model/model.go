package model

import (
	"strings"
	"time"
)

// Feed is a configured RSS/Atom endpoint the radar polls.
type Feed struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	URL       string    `gorm:"uniqueIndex;not null" json:"url"`
	Name      string    `gorm:"not null" json:"name"`
	Active    bool      `gorm:"default:true" json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// Ticker is a tracked instrument. CompanyNames holds user-supplied
// lowercase aliases as a comma-joined list.
type Ticker struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Symbol       string    `gorm:"uniqueIndex;not null" json:"symbol"`
	CompanyNames string    `gorm:"default:''" json:"company_names"`
	CreatedAt    time.Time `json:"created_at"`
}

// Aliases splits CompanyNames into trimmed, lowercase alias names.
func (t Ticker) Aliases() []string {
	parts := strings.Split(t.CompanyNames, ",")
	aliases := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.ToLower(strings.TrimSpace(part))
		if trimmed != "" {
			aliases = append(aliases, trimmed)
		}
	}
	return aliases
}

// Keyword is a relevance term counted per occurrence.
type Keyword struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Word      string    `gorm:"uniqueIndex;not null" json:"word"`
	CreatedAt time.Time `json:"created_at"`
}

// Settings is the single-row (id=1) runtime configuration.
type Settings struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	RefreshInterval int       `gorm:"default:600" json:"refresh_interval"`
	MinScore        int       `gorm:"default:1" json:"min_score"`
	StrongWords     string    `gorm:"default:''" json:"strong_words"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// StrongWordList splits StrongWords into trimmed, lowercase terms.
func (s Settings) StrongWordList() []string {
	parts := strings.Split(s.StrongWords, ",")
	words := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.ToLower(strings.TrimSpace(part))
		if trimmed != "" {
			words = append(words, trimmed)
		}
	}
	return words
}

// Article is an ingested item. Score, Sentiment and Tickers are frozen
// to the registry snapshot in effect when the row was inserted; the row
// is never updated afterwards, only pruned.
type Article struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FeedID      uint      `gorm:"not null;index" json:"feed_id"`
	URL         string    `gorm:"uniqueIndex;not null" json:"url"`
	Title       string    `gorm:"not null" json:"title"`
	Summary     string    `json:"summary"`
	PublishedAt time.Time `gorm:"index" json:"published_at"`
	Score       int       `gorm:"default:0" json:"score"`
	Sentiment   float64   `gorm:"default:0" json:"sentiment"`
	CreatedAt   time.Time `json:"created_at"`

	Tickers []Ticker `gorm:"many2many:article_tickers" json:"tickers,omitempty"`
}

// CycleResult records the outcome of one completed scrape cycle.
type CycleResult struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	StartedAt     time.Time     `json:"started_at"`
	Duration      time.Duration `json:"duration"`
	FeedsOK       int           `json:"feeds_ok"`
	FeedsFailed   int           `json:"feeds_failed"`
	EntriesSeen   int           `json:"entries_seen"`
	ItemsInserted int           `json:"items_inserted"`
}
