package store

import (
	"context"
	"time"

	"gorm.io/gorm"

	"main/internal/model"
)

// ArticleQuery filters and paginates article listings.
type ArticleQuery struct {
	Search   string
	MinScore *int
	Limit    int
	Offset   int
}

func (q ArticleQuery) withDefaults() ArticleQuery {
	if q.Limit <= 0 {
		q.Limit = 50
	}
	if q.Limit > 200 {
		q.Limit = 200
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	return q
}

// Articles lists persisted articles, newest first, with their matched
// tickers preloaded.
func (s *Store) Articles(ctx context.Context, query ArticleQuery) ([]model.Article, error) {
	query = query.withDefaults()

	tx := s.db.WithContext(ctx).Model(&model.Article{}).Preload("Tickers")
	tx = applyArticleFilters(tx, query)

	var articles []model.Article
	err := tx.Order("published_at DESC").
		Limit(query.Limit).
		Offset(query.Offset).
		Find(&articles).Error
	return articles, err
}

// CountArticles returns the number of articles matching the query
// filters, ignoring pagination.
func (s *Store) CountArticles(ctx context.Context, query ArticleQuery) (int64, error) {
	tx := s.db.WithContext(ctx).Model(&model.Article{})
	tx = applyArticleFilters(tx, query)

	var count int64
	err := tx.Count(&count).Error
	return count, err
}

// PruneArticles deletes articles published before cutoff and returns
// the number of rows removed.
func (s *Store) PruneArticles(ctx context.Context, cutoff time.Time) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("published_at < ?", cutoff).
		Delete(&model.Article{})
	return res.RowsAffected, res.Error
}

func applyArticleFilters(tx *gorm.DB, query ArticleQuery) *gorm.DB {
	if query.MinScore != nil {
		tx = tx.Where("score >= ?", *query.MinScore)
	}
	if query.Search != "" {
		like := "%" + query.Search + "%"
		tx = tx.Where("title LIKE ? OR summary LIKE ?", like, like)
	}
	return tx
}
