package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/symposiumhq/symposium-api/internal/dto"
	"github.com/symposiumhq/symposium-api/internal/repository"
)

const dashboardCacheKey = "dashboard:admin"

// DashboardService aggregates directory and workflow counts for the admin
// dashboard.
type DashboardService interface {
	Stats(ctx context.Context) (dto.DashboardResponse, error)
}

type dashboardService struct {
	analytics repository.AdminAnalyticsRepository
	cache     *redis.Client
	cacheTTL  time.Duration
	logger    zerolog.Logger
	now       func() time.Time
}

// NewDashboardService constructs the dashboard aggregator.
func NewDashboardService(analytics repository.AdminAnalyticsRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) DashboardService {
	return &dashboardService{
		analytics: analytics,
		cache:     cache,
		cacheTTL:  ttl,
		logger:    logger.With().Str("component", "dashboard_service").Logger(),
		now:       time.Now,
	}
}

func (s *dashboardService) Stats(ctx context.Context) (dto.DashboardResponse, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, dashboardCacheKey).Result(); err == nil {
			var response dto.DashboardResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Msg("dashboard cache hit")
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read dashboard cache")
		}
	}

	counts, err := s.analytics.Counts(ctx)
	if err != nil {
		return dto.DashboardResponse{}, err
	}

	evaluations, err := s.analytics.CountEvaluations(ctx)
	if err != nil {
		return dto.DashboardResponse{}, err
	}

	recent, err := s.analytics.CountEvaluationsSince(ctx, s.now().Add(-24*time.Hour))
	if err != nil {
		return dto.DashboardResponse{}, err
	}

	launches, err := s.analytics.CountActiveLaunches(ctx)
	if err != nil {
		return dto.DashboardResponse{}, err
	}

	response := dto.DashboardResponse{
		Teams:              counts.Teams,
		Faculty:            counts.Faculty,
		Evaluators:         counts.Evaluators,
		Users:              counts.Users,
		Evaluations:        evaluations,
		EvaluationsLast24h: recent,
		ActiveLaunches:     launches,
	}

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, dashboardCacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store dashboard cache")
			}
		}
	}

	return response, nil
}
