// Package store persists feeds, tickers, keywords, settings and
// ingested articles in a single sqlite database behind gorm.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yanun0323/logs"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"main/internal/model"
)

var (
	// ErrClosed is returned by operations on a closed store.
	ErrClosed = errors.New("store: closed")

	// ErrNoSettings indicates the settings row is missing. A cycle
	// cannot run without it.
	ErrNoSettings = errors.New("store: settings row missing")
)

// Store wraps the sqlite connection pool.
type Store struct {
	db *gorm.DB
}

// Open opens (creating if needed) the sqlite database at path, runs
// migrations and seeds default rows into empty tables.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL keeps readers unblocked while a cycle writes.
	if err := db.Exec("PRAGMA journal_mode=WAL").Error; err != nil {
		return nil, err
	}
	if err := db.Exec("PRAGMA synchronous=NORMAL").Error; err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&model.Feed{},
		&model.Ticker{},
		&model.Keyword{},
		&model.Settings{},
		&model.Article{},
		&model.CycleResult{},
	); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	s := &Store{db: db}
	if err := s.seedDefaults(); err != nil {
		return nil, fmt.Errorf("seed defaults: %w", err)
	}
	return s, nil
}

// DB exposes the underlying gorm handle.
func (s *Store) DB() *gorm.DB {
	if s == nil {
		return nil
	}
	return s.db
}

// Close closes the underlying connection pool.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// seedDefaults populates empty tables with the stock configuration so
// a fresh install produces articles on the first cycle.
func (s *Store) seedDefaults() error {
	var count int64

	if err := s.db.Model(&model.Settings{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		settings := model.Settings{
			ID:              1,
			RefreshInterval: 600,
			MinScore:        1,
			StrongWords:     "breaking,exclusive,surge,crash,boom,plunge",
		}
		if err := s.db.Create(&settings).Error; err != nil {
			return err
		}
		logs.Info("seeded default settings")
	}

	if err := s.db.Model(&model.Feed{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		feeds := []model.Feed{
			{URL: "https://feeds.finance.yahoo.com/rss/2.0/headline", Name: "Yahoo Finance", Active: true},
			{URL: "https://www.cnbc.com/id/100003114/device/rss/rss.html", Name: "CNBC Top News", Active: true},
			{URL: "https://www.reuters.com/rssfeed/businessNews", Name: "Reuters Business", Active: true},
			{URL: "https://feeds.bloomberg.com/markets/news.rss", Name: "Bloomberg Markets", Active: true},
		}
		if err := s.db.Create(&feeds).Error; err != nil {
			return err
		}
		logs.Infof("seeded %d default feeds", len(feeds))
	}

	if err := s.db.Model(&model.Ticker{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		tickers := []model.Ticker{
			{Symbol: "AAPL", CompanyNames: "apple,apple inc"},
			{Symbol: "MSFT", CompanyNames: "microsoft,microsoft corporation"},
			{Symbol: "GOOGL", CompanyNames: "google,alphabet,alphabet inc"},
			{Symbol: "AMZN", CompanyNames: "amazon,amazon.com"},
			{Symbol: "TSLA", CompanyNames: "tesla,tesla motors"},
			{Symbol: "META", CompanyNames: "meta,facebook,meta platforms"},
			{Symbol: "NVDA", CompanyNames: "nvidia,nvidia corporation"},
			{Symbol: "BTC", CompanyNames: "bitcoin"},
			{Symbol: "ETH", CompanyNames: "ethereum"},
			{Symbol: "SPY", CompanyNames: "s&p 500,s&p,spy"},
		}
		if err := s.db.Create(&tickers).Error; err != nil {
			return err
		}
		logs.Infof("seeded %d default tickers", len(tickers))
	}

	if err := s.db.Model(&model.Keyword{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		words := []string{
			"earnings", "revenue", "profit", "loss", "merger",
			"acquisition", "ipo", "stock", "market", "trade",
		}
		keywords := make([]model.Keyword, 0, len(words))
		for _, w := range words {
			keywords = append(keywords, model.Keyword{Word: w})
		}
		if err := s.db.Create(&keywords).Error; err != nil {
			return err
		}
		logs.Infof("seeded %d default keywords", len(keywords))
	}

	return nil
}
