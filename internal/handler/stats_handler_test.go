package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SergeiKhy/post-stats/internal/handler"
	"github.com/SergeiKhy/post-stats/internal/middleware"
	"github.com/SergeiKhy/post-stats/internal/service"
	"github.com/SergeiKhy/post-stats/internal/service/mocks"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// setupRouter собирает роутер поверх мокового хранилища
func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	postRepo := mocks.NewMockPostRepository()
	cacheRepo := mocks.NewMockCacheRepository()
	identity := service.NewIdentityDeriver("test-salt")
	policy := service.NewLikePolicy(3)
	statsService := service.NewStatsService(postRepo, cacheRepo, identity, policy, zap.NewNop())

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: 1000, // высокий лимит, чтобы не мешал тестам
		BurstSize:         1000,
		CleanupInterval:   time.Minute,
	})

	return handler.NewRouter(statsService, policy.MaxLikes(), rateLimiter, zap.NewNop())
}

// TestStatsHandler_GetStats_UnknownSlug проверяет 200 с нулями для незнакомого slug
func TestStatsHandler_GetStats_UnknownSlug(t *testing.T) {
	router := setupRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/posts/never-seen/stats", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "never-seen", resp["slug"])
	assert.EqualValues(t, 0, resp["totalViews"])
	assert.EqualValues(t, 0, resp["totalLikes"])
}

// TestStatsHandler_RecordView проверяет 201 и возврат нового счётчика
func TestStatsHandler_RecordView(t *testing.T) {
	router := setupRouter()

	for i := 1; i <= 3; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/posts/my-post/view", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp handler.ViewResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "my-post", resp.Slug)
		assert.EqualValues(t, i, resp.Views)
	}
}

// TestStatsHandler_Like проверяет успешный лайк и форму ответа
func TestStatsHandler_Like(t *testing.T) {
	router := setupRouter()

	body, _ := json.Marshal(handler.LikeRequest{Count: 2})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/posts/my-post/like", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.EqualValues(t, 2, resp["totalLikes"])
	assert.EqualValues(t, 2, resp["userLikes"])
	assert.Len(t, resp["userId"], 16)
	assert.EqualValues(t, 1, resp["postId"])
}

// TestStatsHandler_Like_InvalidBody проверяет 400 для нечисловых и кривых count
func TestStatsHandler_Like_InvalidBody(t *testing.T) {
	router := setupRouter()

	bodies := []string{
		`{"count": "abc"}`,
		`{"count": -1}`,
		`{"count": 0}`,
		`{"count": 4}`,
		`{"count": 1.5}`,
		`not json`,
		``,
	}

	for _, body := range bodies {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/posts/my-post/like", bytes.NewReader([]byte(body)))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, "body: %s", body)

		var errResp handler.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
		assert.Equal(t, "invalid_count", errResp.Error)
	}

	// Ни один из отклонённых запросов не должен был ничего записать
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/posts/my-post/stats", nil)
	router.ServeHTTP(w, req)
	var stats map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.EqualValues(t, 0, stats["totalLikes"])
}

// TestStatsHandler_Like_MaxReached проверяет различимое сообщение отказа на потолке
func TestStatsHandler_Like_MaxReached(t *testing.T) {
	router := setupRouter()

	like := func() *httptest.ResponseRecorder {
		body, _ := json.Marshal(handler.LikeRequest{Count: 3})
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/posts/my-post/like", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, like().Code)

	w := like()
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var errResp handler.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Equal(t, "max_likes_reached", errResp.Error)
}

// TestStatsHandler_UserStats проверяет персональную статистику после лайка
func TestStatsHandler_UserStats(t *testing.T) {
	router := setupRouter()

	body, _ := json.Marshal(handler.LikeRequest{Count: 1})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/posts/my-post/like", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/api/posts/my-post/user-stats", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.EqualValues(t, 1, resp["totalLikes"])
	assert.EqualValues(t, 1, resp["userLikes"], "оба запроса идут с одного тестового адреса")
}

// TestStatsHandler_HealthCheck проверяет endpoint здоровья
func TestStatsHandler_HealthCheck(t *testing.T) {
	router := setupRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "post-stats")
}
