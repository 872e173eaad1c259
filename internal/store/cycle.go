package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"main/internal/model"
	"main/internal/registry"
)

// ActiveFeeds returns the feeds to poll this cycle, in a stable order.
func (s *Store) ActiveFeeds(ctx context.Context) ([]model.Feed, error) {
	var feeds []model.Feed
	err := s.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name").
		Find(&feeds).Error
	if err != nil {
		return nil, err
	}
	return feeds, nil
}

// LoadSettings reads the single settings row.
func (s *Store) LoadSettings(ctx context.Context) (model.Settings, error) {
	var settings model.Settings
	err := s.db.WithContext(ctx).First(&settings, 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Settings{}, ErrNoSettings
	}
	if err != nil {
		return model.Settings{}, err
	}
	return settings, nil
}

// Snapshot assembles the registry snapshot for one cycle from the
// current tickers, keywords and strong words.
func (s *Store) Snapshot(ctx context.Context, settings model.Settings) (registry.Snapshot, error) {
	var tickers []model.Ticker
	if err := s.db.WithContext(ctx).Order("symbol").Find(&tickers).Error; err != nil {
		return registry.Snapshot{}, err
	}

	var keywords []model.Keyword
	if err := s.db.WithContext(ctx).Order("word").Find(&keywords).Error; err != nil {
		return registry.Snapshot{}, err
	}

	return registry.BuildSnapshot(tickers, keywords, settings.StrongWordList()), nil
}

// TryInsertArticle inserts the article unless its URL already exists.
// A duplicate URL reports inserted=false with a nil error; the
// existing row is left untouched. Atomicity of the check-and-insert
// relies on the store-level unique constraint rather than pipeline
// locking, so administrative insert paths are covered too.
func (s *Store) TryInsertArticle(ctx context.Context, article *model.Article) (bool, error) {
	err := s.db.WithContext(ctx).Create(article).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// RecordCycleResult appends the stats row for a completed cycle.
func (s *Store) RecordCycleResult(ctx context.Context, result *model.CycleResult) error {
	return s.db.WithContext(ctx).Create(result).Error
}

// LastCycleResult returns the most recent cycle stats, if any.
func (s *Store) LastCycleResult(ctx context.Context) (model.CycleResult, error) {
	var result model.CycleResult
	err := s.db.WithContext(ctx).Order("id DESC").First(&result).Error
	if err != nil {
		return model.CycleResult{}, err
	}
	return result, nil
}
