package store

import (
	"context"
	"strings"

	"main/internal/model"
)

// AddFeed registers a new feed endpoint.
func (s *Store) AddFeed(ctx context.Context, url, name string) (model.Feed, error) {
	feed := model.Feed{URL: url, Name: name, Active: true}
	if err := s.db.WithContext(ctx).Create(&feed).Error; err != nil {
		return model.Feed{}, err
	}
	return feed, nil
}

// DeleteFeed removes a feed. Its ingested articles remain.
func (s *Store) DeleteFeed(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&model.Feed{}, id).Error
}

// ToggleFeed flips a feed's active flag. A deactivated feed is
// excluded from the next cycle without losing history.
func (s *Store) ToggleFeed(ctx context.Context, id uint, active bool) error {
	return s.db.WithContext(ctx).
		Model(&model.Feed{}).
		Where("id = ?", id).
		Update("active", active).Error
}

// Feeds lists every configured feed.
func (s *Store) Feeds(ctx context.Context) ([]model.Feed, error) {
	var feeds []model.Feed
	err := s.db.WithContext(ctx).Order("name").Find(&feeds).Error
	return feeds, err
}

// AddTicker registers a ticker. The symbol is uppercased and aliases
// lowercased before storage.
func (s *Store) AddTicker(ctx context.Context, symbol, companyNames string) (model.Ticker, error) {
	ticker := model.Ticker{
		Symbol:       strings.ToUpper(strings.TrimSpace(symbol)),
		CompanyNames: strings.ToLower(companyNames),
	}
	if err := s.db.WithContext(ctx).Create(&ticker).Error; err != nil {
		return model.Ticker{}, err
	}
	return ticker, nil
}

// UpdateTickerAliases replaces the user-supplied aliases of a ticker.
func (s *Store) UpdateTickerAliases(ctx context.Context, id uint, companyNames string) error {
	return s.db.WithContext(ctx).
		Model(&model.Ticker{}).
		Where("id = ?", id).
		Update("company_names", strings.ToLower(companyNames)).Error
}

// DeleteTicker removes a ticker. Existing articles keep the symbols
// they matched at insertion time.
func (s *Store) DeleteTicker(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&model.Ticker{}, id).Error
}

// Tickers lists every configured ticker.
func (s *Store) Tickers(ctx context.Context) ([]model.Ticker, error) {
	var tickers []model.Ticker
	err := s.db.WithContext(ctx).Order("symbol").Find(&tickers).Error
	return tickers, err
}

// AddKeyword registers a keyword, lowercased.
func (s *Store) AddKeyword(ctx context.Context, word string) (model.Keyword, error) {
	keyword := model.Keyword{Word: strings.ToLower(strings.TrimSpace(word))}
	if err := s.db.WithContext(ctx).Create(&keyword).Error; err != nil {
		return model.Keyword{}, err
	}
	return keyword, nil
}

// DeleteKeyword removes a keyword.
func (s *Store) DeleteKeyword(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&model.Keyword{}, id).Error
}

// Keywords lists every configured keyword.
func (s *Store) Keywords(ctx context.Context) ([]model.Keyword, error) {
	var keywords []model.Keyword
	err := s.db.WithContext(ctx).Order("word").Find(&keywords).Error
	return keywords, err
}

// SettingsUpdate carries the optional settings fields to change.
type SettingsUpdate struct {
	RefreshInterval *int
	MinScore        *int
	StrongWords     *string
}

// UpdateSettings applies the provided fields to the settings row. A
// change takes effect on the next cycle, never mid-cycle.
func (s *Store) UpdateSettings(ctx context.Context, update SettingsUpdate) error {
	fields := make(map[string]any)
	if update.RefreshInterval != nil {
		fields["refresh_interval"] = *update.RefreshInterval
	}
	if update.MinScore != nil {
		fields["min_score"] = *update.MinScore
	}
	if update.StrongWords != nil {
		fields["strong_words"] = *update.StrongWords
	}
	if len(fields) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).
		Model(&model.Settings{}).
		Where("id = ?", 1).
		Updates(fields).Error
}
