package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"main/internal/model"
	"main/internal/notify"
	"main/internal/obs"
	"main/internal/pipeline"
	"main/internal/store"
)

type fakeTrigger struct {
	result model.CycleResult
	err    error
	calls  int
}

func (f *fakeTrigger) TriggerNow(context.Context) (model.CycleResult, error) {
	f.calls++
	return f.result, f.err
}

func newTestRouter(t *testing.T, trigger Trigger, adminToken string) (*gin.Engine, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "radar.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})

	server := NewServer(st, trigger, notify.NewHub(nil), obs.NewMetrics(), adminToken)
	return server.Router(), st
}

func doJSON(router *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	router, _ := newTestRouter(t, &fakeTrigger{}, "")

	w := doJSON(router, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestAdminTokenGate(t *testing.T) {
	router, _ := newTestRouter(t, &fakeTrigger{}, "topsecret")

	body := `{"url":"https://feeds.example.com/x","name":"X"}`

	w := doJSON(router, http.MethodPost, "/api/feeds", body, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(router, http.MethodPost, "/api/feeds", body, map[string]string{"x-admin-token": "wrong"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(router, http.MethodPost, "/api/feeds", body, map[string]string{"x-admin-token": "topsecret"})
	assert.Equal(t, http.StatusOK, w.Code)

	// Read routes stay open.
	w = doJSON(router, http.MethodGet, "/api/feeds", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestFeedCRUD(t *testing.T) {
	router, st := newTestRouter(t, &fakeTrigger{}, "")

	w := doJSON(router, http.MethodPost, "/api/feeds", `{"url":"https://feeds.example.com/y","name":"Y"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotZero(t, resp.ID)

	// Missing fields are rejected by binding.
	w = doJSON(router, http.MethodPost, "/api/feeds", `{"url":"https://feeds.example.com/z"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, http.MethodPut, "/api/feeds/"+itoa(resp.ID)+"/toggle?active=false", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	feeds, err := st.ActiveFeeds(context.Background())
	require.NoError(t, err)
	for _, f := range feeds {
		assert.NotEqual(t, resp.ID, f.ID)
	}

	w = doJSON(router, http.MethodDelete, "/api/feeds/"+itoa(resp.ID), "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodDelete, "/api/feeds/notanumber", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListArticles(t *testing.T) {
	router, st := newTestRouter(t, &fakeTrigger{}, "")
	ctx := context.Background()

	published := time.Now().UTC()
	articles := []model.Article{
		{FeedID: 1, URL: "https://n.example.com/1", Title: "Apple earnings beat", Score: 5, PublishedAt: published},
		{FeedID: 1, URL: "https://n.example.com/2", Title: "Quiet day", Score: 0, PublishedAt: published.Add(-time.Hour)},
	}
	for i := range articles {
		inserted, err := st.TryInsertArticle(ctx, &articles[i])
		require.NoError(t, err)
		require.True(t, inserted)
	}

	w := doJSON(router, http.MethodGet, "/api/articles", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Articles []model.Article `json:"articles"`
		Total    int64           `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Articles, 2)
	assert.EqualValues(t, 2, resp.Total)

	w = doJSON(router, http.MethodGet, "/api/articles?min_score=3", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Articles, 1)
	assert.Equal(t, "Apple earnings beat", resp.Articles[0].Title)

	w = doJSON(router, http.MethodGet, "/api/articles?min_score=-2", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRefresh(t *testing.T) {
	trigger := &fakeTrigger{result: model.CycleResult{ItemsInserted: 4}}
	router, _ := newTestRouter(t, trigger, "")

	w := doJSON(router, http.MethodPost, "/api/refresh", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"inserted":4`)
	assert.Equal(t, 1, trigger.calls)
}

func TestRefreshSurvivesClientDisconnect(t *testing.T) {
	trigger := &ctxRecordingTrigger{}
	router, _ := newTestRouter(t, trigger, "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := httptest.NewRequest(http.MethodPost, "/api/refresh", nil).WithContext(ctx)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// The cycle context must not inherit the request cancellation.
	require.True(t, trigger.called)
	assert.NoError(t, trigger.ctxErr)
}

type ctxRecordingTrigger struct {
	called bool
	ctxErr error
}

func (f *ctxRecordingTrigger) TriggerNow(ctx context.Context) (model.CycleResult, error) {
	f.called = true
	f.ctxErr = ctx.Err()
	return model.CycleResult{}, nil
}

func TestRefreshConflict(t *testing.T) {
	trigger := &fakeTrigger{err: pipeline.ErrCycleRunning}
	router, _ := newTestRouter(t, trigger, "")

	w := doJSON(router, http.MethodPost, "/api/refresh", "", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), `"skipped":true`)
}

func TestUpdateSettings(t *testing.T) {
	router, st := newTestRouter(t, &fakeTrigger{}, "")

	w := doJSON(router, http.MethodPut, "/api/settings", `{"refresh_interval":300,"min_score":2}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	settings, err := st.LoadSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 300, settings.RefreshInterval)
	assert.Equal(t, 2, settings.MinScore)

	// Below the floor is rejected by binding.
	w = doJSON(router, http.MethodPut, "/api/settings", `{"refresh_interval":5}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPruneArticles(t *testing.T) {
	router, st := newTestRouter(t, &fakeTrigger{}, "")
	ctx := context.Background()

	old := model.Article{FeedID: 1, URL: "https://n.example.com/old", Title: "Old", PublishedAt: time.Now().AddDate(0, 0, -30)}
	inserted, err := st.TryInsertArticle(ctx, &old)
	require.NoError(t, err)
	require.True(t, inserted)

	w := doJSON(router, http.MethodDelete, "/api/articles?days=7", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"deleted":1`)

	w = doJSON(router, http.MethodDelete, "/api/articles?days=0", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func itoa(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
