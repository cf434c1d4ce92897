package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/symposiumhq/symposium-api/internal/dto"
	"github.com/symposiumhq/symposium-api/internal/repository"
)

type stubAnalyticsRepo struct {
	counts      repository.DirectoryCounts
	evaluations int64
	recent      int64
	launches    int64
	calls       int
}

func (s *stubAnalyticsRepo) Counts(context.Context) (repository.DirectoryCounts, error) {
	s.calls++
	return s.counts, nil
}

func (s *stubAnalyticsRepo) CountEvaluations(context.Context) (int64, error) {
	return s.evaluations, nil
}

func (s *stubAnalyticsRepo) CountEvaluationsSince(context.Context, time.Time) (int64, error) {
	return s.recent, nil
}

func (s *stubAnalyticsRepo) CountActiveLaunches(context.Context) (int64, error) {
	return s.launches, nil
}

func TestDashboardStatsWithoutCache(t *testing.T) {
	analytics := &stubAnalyticsRepo{
		counts:      repository.DirectoryCounts{Teams: 12, Faculty: 4, Evaluators: 6, Users: 22},
		evaluations: 31,
		recent:      5,
		launches:    2,
	}

	svc := NewDashboardService(analytics, nil, time.Minute, testLogger())

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, dto.DashboardResponse{
		Teams:              12,
		Faculty:            4,
		Evaluators:         6,
		Users:              22,
		Evaluations:        31,
		EvaluationsLast24h: 5,
		ActiveLaunches:     2,
	}, stats)
}

func TestDashboardStatsServedFromCache(t *testing.T) {
	server := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: server.Addr()})

	analytics := &stubAnalyticsRepo{counts: repository.DirectoryCounts{Teams: 3}}
	svc := NewDashboardService(analytics, cache, time.Minute, testLogger())

	first, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, analytics.calls)

	// second read must come from the cached payload, not the store
	analytics.counts.Teams = 99
	second, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, 1, analytics.calls)

	server.FastForward(2 * time.Minute)

	refreshed, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(99), refreshed.Teams)
	require.Equal(t, 2, analytics.calls)
}
