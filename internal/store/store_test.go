package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"main/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "radar.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

func TestOpenSeedsDefaults(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	settings, err := s.LoadSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 600, settings.RefreshInterval)
	assert.Equal(t, 1, settings.MinScore)
	assert.Contains(t, settings.StrongWordList(), "surge")

	feeds, err := s.Feeds(ctx)
	require.NoError(t, err)
	assert.Len(t, feeds, 4)

	tickers, err := s.Tickers(ctx)
	require.NoError(t, err)
	assert.Len(t, tickers, 10)

	keywords, err := s.Keywords(ctx)
	require.NoError(t, err)
	assert.Len(t, keywords, 10)
}

func TestLoadSettingsMissing(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.db.Delete(&model.Settings{}, 1).Error)

	_, err := s.LoadSettings(ctx)
	assert.ErrorIs(t, err, ErrNoSettings)
}

func TestTryInsertArticleDedupe(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	published := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	first := model.Article{
		FeedID:      1,
		URL:         "https://news.example.com/a",
		Title:       "Apple surges on earnings",
		Summary:     "Strong quarter.",
		PublishedAt: published,
		Score:       4,
		Sentiment:   0.42,
	}
	inserted, err := s.TryInsertArticle(ctx, &first)
	require.NoError(t, err)
	assert.True(t, inserted)

	// Same URL with different content must be rejected without touching
	// the existing row.
	second := model.Article{
		FeedID:      2,
		URL:         "https://news.example.com/a",
		Title:       "Completely different title",
		Score:       9,
		PublishedAt: published.Add(time.Hour),
	}
	inserted, err = s.TryInsertArticle(ctx, &second)
	require.NoError(t, err)
	assert.False(t, inserted)

	var stored model.Article
	require.NoError(t, s.db.Where("url = ?", first.URL).First(&stored).Error)
	assert.Equal(t, "Apple surges on earnings", stored.Title)
	assert.Equal(t, 4, stored.Score)

	var count int64
	require.NoError(t, s.db.Model(&model.Article{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestTryInsertArticleKeepsTickers(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	tickers, err := s.Tickers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, tickers)

	article := model.Article{
		FeedID:      1,
		URL:         "https://news.example.com/tagged",
		Title:       "Tagged item",
		PublishedAt: time.Now().UTC(),
		Tickers:     tickers[:2],
	}
	inserted, err := s.TryInsertArticle(ctx, &article)
	require.NoError(t, err)
	require.True(t, inserted)

	got, err := s.Articles(ctx, ArticleQuery{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Len(t, got[0].Tickers, 2)
}

func TestArticleQueryFilters(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	rows := []model.Article{
		{FeedID: 1, URL: "https://n.example.com/1", Title: "Apple earnings beat", Score: 5, PublishedAt: base.Add(3 * time.Hour)},
		{FeedID: 1, URL: "https://n.example.com/2", Title: "Quiet market day", Score: 0, PublishedAt: base.Add(2 * time.Hour)},
		{FeedID: 1, URL: "https://n.example.com/3", Title: "Tesla recall widens", Score: 2, PublishedAt: base.Add(time.Hour)},
	}
	for i := range rows {
		inserted, err := s.TryInsertArticle(ctx, &rows[i])
		require.NoError(t, err)
		require.True(t, inserted)
	}

	all, err := s.Articles(ctx, ArticleQuery{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	// Newest first.
	assert.Equal(t, "Apple earnings beat", all[0].Title)

	minScore := 2
	scored, err := s.Articles(ctx, ArticleQuery{MinScore: &minScore})
	require.NoError(t, err)
	assert.Len(t, scored, 2)

	searched, err := s.Articles(ctx, ArticleQuery{Search: "tesla"})
	require.NoError(t, err)
	require.Len(t, searched, 1)
	assert.Equal(t, "Tesla recall widens", searched[0].Title)

	count, err := s.CountArticles(ctx, ArticleQuery{MinScore: &minScore})
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	paged, err := s.Articles(ctx, ArticleQuery{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, paged, 1)
	assert.Equal(t, "Quiet market day", paged[0].Title)
}

func TestPruneArticles(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	old := model.Article{FeedID: 1, URL: "https://n.example.com/old", Title: "Old", PublishedAt: now.Add(-10 * 24 * time.Hour)}
	fresh := model.Article{FeedID: 1, URL: "https://n.example.com/new", Title: "Fresh", PublishedAt: now}
	for _, a := range []*model.Article{&old, &fresh} {
		inserted, err := s.TryInsertArticle(ctx, a)
		require.NoError(t, err)
		require.True(t, inserted)
	}

	removed, err := s.PruneArticles(ctx, now.Add(-7*24*time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	remaining, err := s.Articles(ctx, ArticleQuery{})
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "Fresh", remaining[0].Title)
}

func TestAdminMutations(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	feed, err := s.AddFeed(ctx, "https://feeds.example.com/custom", "Custom")
	require.NoError(t, err)
	assert.True(t, feed.Active)

	require.NoError(t, s.ToggleFeed(ctx, feed.ID, false))
	active, err := s.ActiveFeeds(ctx)
	require.NoError(t, err)
	for _, f := range active {
		assert.NotEqual(t, feed.ID, f.ID)
	}

	ticker, err := s.AddTicker(ctx, " amd ", "Advanced Micro Devices")
	require.NoError(t, err)
	assert.Equal(t, "AMD", ticker.Symbol)
	assert.Equal(t, "advanced micro devices", ticker.CompanyNames)

	keyword, err := s.AddKeyword(ctx, " Dividend ")
	require.NoError(t, err)
	assert.Equal(t, "dividend", keyword.Word)

	interval := 1200
	words := "breaking,urgent"
	require.NoError(t, s.UpdateSettings(ctx, SettingsUpdate{
		RefreshInterval: &interval,
		StrongWords:     &words,
	}))
	settings, err := s.LoadSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1200, settings.RefreshInterval)
	assert.Equal(t, 1, settings.MinScore)
	assert.Equal(t, []string{"breaking", "urgent"}, settings.StrongWordList())

	require.NoError(t, s.DeleteFeed(ctx, feed.ID))
	require.NoError(t, s.DeleteTicker(ctx, ticker.ID))
	require.NoError(t, s.DeleteKeyword(ctx, keyword.ID))
}

func TestSnapshotUsesSettingsStrongWords(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	settings, err := s.LoadSettings(ctx)
	require.NoError(t, err)

	snap, err := s.Snapshot(ctx, settings)
	require.NoError(t, err)
	assert.Len(t, snap.Tickers, 10)
	assert.Len(t, snap.Keywords, 10)
	assert.Equal(t, settings.StrongWordList(), snap.StrongWords)
}
