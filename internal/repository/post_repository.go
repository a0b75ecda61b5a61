package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/SergeiKhy/post-stats/internal/models"
	"github.com/jackc/pgx/v5"
)

// PostRepository хранилище счётчиков постов.
//
// Все инкременты выполняются одним SQL-выражением с ON CONFLICT ... DO UPDATE
// SET x = x + inc: отдельные read-modify-write шаги в коде приложения теряют
// обновления при конкурентных запросах.
type PostRepository interface {
	// RecordView создаёт строку поста при первом просмотре и атомарно
	// увеличивает total_views на 1. Возвращает новое значение счётчика.
	RecordView(ctx context.Context, slug string) (int64, error)

	// GetStats возвращает счётчики поста и лайки посетителя одним запросом.
	// Для неизвестного slug возвращает нулевую статистику без ошибки.
	GetStats(ctx context.Context, slug, visitorID string) (*models.UserPostStats, error)

	// ApplyLike в одной транзакции добавляет increment к total_likes поста
	// и к лайкам пары (visitorID, post). Обе записи видны либо обе, либо ни одной.
	ApplyLike(ctx context.Context, slug, visitorID string, increment int64) (*models.LikeResult, error)
}

type postRepository struct {
	db *PostgresDB
}

func NewPostRepository(db *PostgresDB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) RecordView(ctx context.Context, slug string) (int64, error) {
	query := `
		INSERT INTO posts (slug, total_views)
		VALUES ($1, 1)
		ON CONFLICT (slug) DO UPDATE
		SET total_views = posts.total_views + 1
		RETURNING total_views
	`

	var totalViews int64
	if err := r.db.Pool.QueryRow(ctx, query, slug).Scan(&totalViews); err != nil {
		return 0, fmt.Errorf("failed to record view: %w", err)
	}

	return totalViews, nil
}

func (r *postRepository) GetStats(ctx context.Context, slug, visitorID string) (*models.UserPostStats, error) {
	query := `
		SELECT p.total_views, p.total_likes, COALESCE(vl.likes, 0)
		FROM posts p
		LEFT JOIN visitor_likes vl
			ON vl.post_id = p.id AND vl.visitor_id = $2
		WHERE p.slug = $1
	`

	stats := &models.UserPostStats{Slug: slug}
	err := r.db.Pool.QueryRow(ctx, query, slug, visitorID).Scan(
		&stats.TotalViews,
		&stats.TotalLikes,
		&stats.UserLikes,
	)

	if err != nil {
		// Непросмотренный пост — это не ошибка, у него просто нули
		if errors.Is(err, pgx.ErrNoRows) {
			return stats, nil
		}
		return nil, fmt.Errorf("failed to get post stats: %w", err)
	}

	return stats, nil
}

func (r *postRepository) ApplyLike(ctx context.Context, slug, visitorID string, increment int64) (*models.LikeResult, error) {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin like transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	postQuery := `
		INSERT INTO posts (slug, total_likes)
		VALUES ($1, $2)
		ON CONFLICT (slug) DO UPDATE
		SET total_likes = posts.total_likes + EXCLUDED.total_likes
		RETURNING id, total_likes
	`

	result := &models.LikeResult{UserID: visitorID}
	if err := tx.QueryRow(ctx, postQuery, slug, increment).Scan(&result.PostID, &result.TotalLikes); err != nil {
		return nil, fmt.Errorf("failed to upsert post likes: %w", err)
	}

	visitorQuery := `
		INSERT INTO visitor_likes (visitor_id, post_id, likes)
		VALUES ($1, $2, $3)
		ON CONFLICT (visitor_id, post_id) DO UPDATE
		SET likes = visitor_likes.likes + EXCLUDED.likes
		RETURNING likes
	`

	if err := tx.QueryRow(ctx, visitorQuery, visitorID, result.PostID, increment).Scan(&result.UserLikes); err != nil {
		return nil, fmt.Errorf("failed to upsert visitor likes: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit like transaction: %w", err)
	}

	return result, nil
}
