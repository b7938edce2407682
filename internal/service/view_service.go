package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"tapfolio.app/backend/internal/repository"
)

const pendingViewsKey = "pending:profile_views"

// ViewService counts card page views in Redis and periodically flushes
// them to the profiles table. A viewer is only counted once per card
// per hour.
type ViewService interface {
	RecordView(ctx context.Context, profileID uuid.UUID, viewerKey string) error
	StartViewSyncWorker(ctx context.Context)
}

type viewService struct {
	redisClient *redis.Client
	profileRepo repository.ProfileRepository
	logger      *zap.Logger
}

func NewViewService(redisClient *redis.Client, profileRepo repository.ProfileRepository, logger *zap.Logger) ViewService {
	return &viewService{
		redisClient: redisClient,
		profileRepo: profileRepo,
		logger:      logger,
	}
}

func (s *viewService) RecordView(ctx context.Context, profileID uuid.UUID, viewerKey string) error {
	if s.redisClient == nil {
		return nil
	}

	dedupKey := fmt.Sprintf("profile:viewer:%s:%s", profileID, viewerKey)

	exists, err := s.redisClient.Exists(ctx, dedupKey).Result()
	if err != nil {
		return fmt.Errorf("failed to check viewer dedup key: %w", err)
	}
	if exists == 1 {
		return nil
	}

	viewKey := fmt.Sprintf("profile:views:%s", profileID)
	if _, err := s.redisClient.Incr(ctx, viewKey).Result(); err != nil {
		return fmt.Errorf("failed to increment view: %w", err)
	}

	if _, err := s.redisClient.SAdd(ctx, pendingViewsKey, profileID.String()).Result(); err != nil {
		return fmt.Errorf("failed to add to pending views: %w", err)
	}

	if _, err := s.redisClient.SetEx(ctx, dedupKey, "viewed", time.Hour).Result(); err != nil {
		return fmt.Errorf("failed to set viewer dedup key: %w", err)
	}

	return nil
}

func (s *viewService) syncViewsToDB(ctx context.Context) {
	profileIDs, err := s.redisClient.SMembers(ctx, pendingViewsKey).Result()
	if err != nil {
		s.logger.Warn("failed to read pending profile views", zap.Error(err))
		return
	}

	for _, idStr := range profileIDs {
		profileID, err := uuid.Parse(idStr)
		if err != nil {
			s.logger.Warn("invalid profile id in pending views", zap.String("id", idStr))
			s.redisClient.SRem(ctx, pendingViewsKey, idStr)
			continue
		}

		viewKey := fmt.Sprintf("profile:views:%s", profileID)
		countStr, err := s.redisClient.Get(ctx, viewKey).Result()
		if err == redis.Nil || countStr == "" {
			s.redisClient.SRem(ctx, pendingViewsKey, idStr)
			continue
		}
		if err != nil {
			s.logger.Warn("failed to read view count", zap.String("profile_id", idStr), zap.Error(err))
			continue
		}

		var count int64
		if _, err := fmt.Sscanf(countStr, "%d", &count); err != nil || count == 0 {
			s.redisClient.SRem(ctx, pendingViewsKey, idStr)
			continue
		}

		if err := s.profileRepo.AddViews(ctx, profileID, count); err != nil {
			s.logger.Warn("failed to flush views to db", zap.String("profile_id", idStr), zap.Error(err))
			continue
		}

		// Flushed: drop the counter and the pending marker.
		s.redisClient.DecrBy(ctx, viewKey, count)
		s.redisClient.SRem(ctx, pendingViewsKey, idStr)
	}
}

func (s *viewService) StartViewSyncWorker(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.syncViewsToDB(ctx)
		}
	}
}
