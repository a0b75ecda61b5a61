package mocks

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/SergeiKhy/post-stats/internal/models"
)

// ErrCacheMiss mimics redis.Nil for the in-memory cache
var ErrCacheMiss = errors.New("cache miss")

// MockPostRepository implements repository.PostRepository for testing.
// Every operation takes the mutex for its whole duration, so the
// upsert-and-increment pairs are atomic just like the SQL transaction.
type MockPostRepository struct {
	mu           sync.Mutex
	posts        map[string]*models.Post
	visitorLikes map[string]map[string]int64 // slug -> visitorID -> likes
	nextID       int64

	// FailWrites makes mutations return a storage error (for failure-path tests)
	FailWrites bool
}

func NewMockPostRepository() *MockPostRepository {
	return &MockPostRepository{
		posts:        make(map[string]*models.Post),
		visitorLikes: make(map[string]map[string]int64),
		nextID:       1,
	}
}

func (m *MockPostRepository) RecordView(ctx context.Context, slug string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWrites {
		return 0, errors.New("storage unavailable")
	}

	post := m.upsertPost(slug)
	post.TotalViews++
	return post.TotalViews, nil
}

func (m *MockPostRepository) GetStats(ctx context.Context, slug, visitorID string) (*models.UserPostStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stats := &models.UserPostStats{Slug: slug}
	post, exists := m.posts[slug]
	if !exists {
		return stats, nil
	}

	stats.TotalViews = post.TotalViews
	stats.TotalLikes = post.TotalLikes
	if likes, ok := m.visitorLikes[slug]; ok {
		stats.UserLikes = likes[visitorID]
	}
	return stats, nil
}

func (m *MockPostRepository) ApplyLike(ctx context.Context, slug, visitorID string, increment int64) (*models.LikeResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWrites {
		return nil, errors.New("storage unavailable")
	}

	post := m.upsertPost(slug)
	post.TotalLikes += increment

	if m.visitorLikes[slug] == nil {
		m.visitorLikes[slug] = make(map[string]int64)
	}
	m.visitorLikes[slug][visitorID] += increment

	return &models.LikeResult{
		TotalLikes: post.TotalLikes,
		UserLikes:  m.visitorLikes[slug][visitorID],
		UserID:     visitorID,
		PostID:     post.ID,
	}, nil
}

// upsertPost must be called with the mutex held
func (m *MockPostRepository) upsertPost(slug string) *models.Post {
	post, exists := m.posts[slug]
	if !exists {
		post = &models.Post{ID: m.nextID, Slug: slug}
		m.nextID++
		m.posts[slug] = post
	}
	return post
}

// MockCacheRepository implements repository.CacheRepository for testing
type MockCacheRepository struct {
	mu    sync.RWMutex
	stats map[string]*models.PostStats
}

func NewMockCacheRepository() *MockCacheRepository {
	return &MockCacheRepository{
		stats: make(map[string]*models.PostStats),
	}
}

func (m *MockCacheRepository) Get(ctx context.Context, slug string) (*models.PostStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats, exists := m.stats[slug]
	if !exists {
		return nil, ErrCacheMiss
	}
	copied := *stats
	return &copied, nil
}

func (m *MockCacheRepository) Set(ctx context.Context, slug string, stats *models.PostStats, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *stats
	m.stats[slug] = &copied
	return nil
}

func (m *MockCacheRepository) Delete(ctx context.Context, slug string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.stats, slug)
	return nil
}
