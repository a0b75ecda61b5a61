package service

import (
	"context"
	"time"

	"github.com/SergeiKhy/post-stats/internal/models"
	"github.com/SergeiKhy/post-stats/internal/repository"
	"go.uber.org/zap"
)

// statsCacheTTL время жизни кэша анонимной статистики.
// Короткое: кэш лишь сглаживает всплески чтений между инвалидациями.
const statsCacheTTL = 30 * time.Second

// StatsService интерфейс учёта просмотров и лайков
type StatsService interface {
	// GetStats возвращает анонимную статистику поста (нули для неизвестного slug)
	GetStats(ctx context.Context, slug string) (*models.PostStats, error)

	// GetUserStats дополняет статистику лайками посетителя с данного адреса
	GetUserStats(ctx context.Context, slug, ipAddress string) (*models.UserPostStats, error)

	// RecordView атомарно увеличивает счётчик просмотров и возвращает новое значение
	RecordView(ctx context.Context, slug string) (int64, error)

	// Like применяет лайки посетителя с учётом политики допуска.
	// Возвращает ErrInvalidCount или ErrMaxLikesReached без побочных эффектов.
	Like(ctx context.Context, slug, ipAddress string, count int64) (*models.LikeResult, error)
}

type statsService struct {
	postRepo  repository.PostRepository
	cacheRepo repository.CacheRepository
	identity  *IdentityDeriver
	policy    *LikePolicy
	logger    *zap.Logger
}

func NewStatsService(
	postRepo repository.PostRepository,
	cacheRepo repository.CacheRepository,
	identity *IdentityDeriver,
	policy *LikePolicy,
	logger *zap.Logger,
) StatsService {
	return &statsService{
		postRepo:  postRepo,
		cacheRepo: cacheRepo,
		identity:  identity,
		policy:    policy,
		logger:    logger,
	}
}

func (s *statsService) GetStats(ctx context.Context, slug string) (*models.PostStats, error) {
	// Проверка кэша
	if cached, err := s.cacheRepo.Get(ctx, slug); err == nil {
		return cached, nil
	}

	// Пустой visitorID не совпадает ни с одной строкой visitor_likes
	userStats, err := s.postRepo.GetStats(ctx, slug, "")
	if err != nil {
		return nil, err
	}

	stats := &models.PostStats{
		Slug:       userStats.Slug,
		TotalViews: userStats.TotalViews,
		TotalLikes: userStats.TotalLikes,
	}

	// Кэш best-effort: его недоступность не ломает ответ
	if err := s.cacheRepo.Set(ctx, slug, stats, statsCacheTTL); err != nil {
		s.logger.Warn("Failed to cache post stats", zap.String("slug", slug), zap.Error(err))
	}

	return stats, nil
}

func (s *statsService) GetUserStats(ctx context.Context, slug, ipAddress string) (*models.UserPostStats, error) {
	visitorID := s.identity.VisitorID(ipAddress)

	// Персональная выборка мимо кэша: payload зависит от посетителя
	return s.postRepo.GetStats(ctx, slug, visitorID)
}

func (s *statsService) RecordView(ctx context.Context, slug string) (int64, error) {
	totalViews, err := s.postRepo.RecordView(ctx, slug)
	if err != nil {
		return 0, err
	}

	s.invalidateStats(ctx, slug)
	return totalViews, nil
}

func (s *statsService) Like(ctx context.Context, slug, ipAddress string, count int64) (*models.LikeResult, error) {
	visitorID := s.identity.VisitorID(ipAddress)

	current, err := s.postRepo.GetStats(ctx, slug, visitorID)
	if err != nil {
		return nil, err
	}

	// Валидация и потолок проверяются до любой мутации хранилища
	increment, err := s.policy.Increment(current.UserLikes, count)
	if err != nil {
		return nil, err
	}

	result, err := s.postRepo.ApplyLike(ctx, slug, visitorID, increment)
	if err != nil {
		return nil, err
	}

	s.invalidateStats(ctx, slug)
	return result, nil
}

func (s *statsService) invalidateStats(ctx context.Context, slug string) {
	if err := s.cacheRepo.Delete(ctx, slug); err != nil {
		s.logger.Warn("Failed to invalidate stats cache", zap.String("slug", slug), zap.Error(err))
	}
}
