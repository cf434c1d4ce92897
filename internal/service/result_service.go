package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/symposiumhq/symposium-api/internal/criteria"
	"github.com/symposiumhq/symposium-api/internal/dto"
	"github.com/symposiumhq/symposium-api/internal/models"
	"github.com/symposiumhq/symposium-api/internal/repository"
)

// resultsEpochKey rotates on every release-gate change; it prefixes the result
// cache keys so a gate flip instantly orphans the cached generation.
const resultsEpochKey = "results:epoch"

// ResultService computes gated score aggregates.
type ResultService interface {
	ResultsForTeam(ctx context.Context, teamID uint) (dto.TeamResultResponse, error)
	ResultsForTeamUser(ctx context.Context, userID uint) (dto.TeamResultResponse, error)
	ResultsForFacultyUser(ctx context.Context, userID uint) (dto.FacultyResultsResponse, error)
	Overview(ctx context.Context) (dto.OverviewResponse, error)
	TeamDetail(ctx context.Context, teamID uint) ([]dto.EvaluationResponse, error)
}

type resultService struct {
	evaluations repository.EvaluationRepository
	assignments repository.AssignmentRepository
	teams       repository.TeamRepository
	users       repository.UserRepository
	faculty     repository.FacultyRepository
	releases    ReleaseService
	criteria    criteria.Set
	cache       *redis.Client
	cacheTTL    time.Duration
	tracer      trace.Tracer
	logger      zerolog.Logger
}

// NewResultService constructs the aggregator.
func NewResultService(evaluations repository.EvaluationRepository, assignments repository.AssignmentRepository, teams repository.TeamRepository, users repository.UserRepository, faculty repository.FacultyRepository, releases ReleaseService, criteriaSet criteria.Set, cache *redis.Client, cacheTTL time.Duration, logger zerolog.Logger) ResultService {
	return &resultService{
		evaluations: evaluations,
		assignments: assignments,
		teams:       teams,
		users:       users,
		faculty:     faculty,
		releases:    releases,
		criteria:    criteriaSet,
		cache:       cache,
		cacheTTL:    cacheTTL,
		tracer:      otel.Tracer("github.com/symposiumhq/symposium-api/internal/service/result"),
		logger:      logger.With().Str("component", "result_service").Logger(),
	}
}

// ResultsForTeam aggregates one team's evaluations behind the release gate.
// A closed gate and an empty evaluation set are both normal tagged states.
func (s *resultService) ResultsForTeam(ctx context.Context, teamID uint) (dto.TeamResultResponse, error) {
	ctx, span := s.tracer.Start(ctx, "results.team")
	span.SetAttributes(attribute.Int64("results.team_id", int64(teamID)))
	defer span.End()

	team, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TeamResultResponse{}, ErrTeamNotFound
		}
		return dto.TeamResultResponse{}, err
	}

	category := team.ResultCategory()
	open, releasedAt, err := s.releases.IsOpen(ctx, category)
	if err != nil {
		return dto.TeamResultResponse{}, err
	}

	response := dto.TeamResultResponse{
		TeamID:   team.ID,
		TeamName: team.Name,
		Category: category,
	}

	if !open {
		response.Status = dto.ResultStatusPending
		return response, nil
	}

	if cached, ok := s.readCache(ctx, team.ID); ok {
		return cached, nil
	}

	evaluations, err := s.evaluations.List(ctx, repository.EvaluationFilter{TeamID: &team.ID})
	if err != nil {
		return dto.TeamResultResponse{}, err
	}

	response.ReleasedAt = releasedAt
	response.EvaluationCount = len(evaluations)

	if len(evaluations) == 0 {
		response.Status = dto.ResultStatusNoEvaluations
		return response, nil
	}

	averages, total := s.aggregate(evaluations)
	response.Status = dto.ResultStatusReleased
	response.CriterionAverages = averages
	response.OverallTotal = &total

	s.writeCache(ctx, team.ID, response)

	return response, nil
}

func (s *resultService) ResultsForTeamUser(ctx context.Context, userID uint) (dto.TeamResultResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TeamResultResponse{}, ErrUserNotFound
		}
		return dto.TeamResultResponse{}, err
	}

	team, err := s.teams.GetByLeaderEmail(ctx, user.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TeamResultResponse{}, ErrTeamNotFound
		}
		return dto.TeamResultResponse{}, err
	}

	return s.ResultsForTeam(ctx, team.ID)
}

func (s *resultService) ResultsForFacultyUser(ctx context.Context, userID uint) (dto.FacultyResultsResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.FacultyResultsResponse{}, ErrUserNotFound
		}
		return dto.FacultyResultsResponse{}, err
	}

	if user.FacultyProfileID == nil {
		return dto.FacultyResultsResponse{}, ErrFacultyNotFound
	}

	teams, err := s.faculty.TeamsFor(ctx, *user.FacultyProfileID)
	if err != nil {
		return dto.FacultyResultsResponse{}, err
	}

	response := dto.FacultyResultsResponse{
		FacultyID: *user.FacultyProfileID,
		Teams:     make([]dto.TeamResultResponse, 0, len(teams)),
	}

	for _, team := range teams {
		result, err := s.ResultsForTeam(ctx, team.ID)
		if err != nil {
			return dto.FacultyResultsResponse{}, err
		}
		response.Teams = append(response.Teams, result)
	}

	return response, nil
}

// Overview is the admin cross-team summary. It ignores the release gate:
// administrators always see the live aggregates.
func (s *resultService) Overview(ctx context.Context) (dto.OverviewResponse, error) {
	teams, err := s.teams.List(ctx, repository.TeamFilter{})
	if err != nil {
		return dto.OverviewResponse{}, err
	}

	response := dto.OverviewResponse{
		Teams: make([]dto.TeamEvaluationSummary, 0, len(teams)),
	}

	for _, team := range teams {
		assigned, err := s.assignments.CountForTeam(ctx, team.ID)
		if err != nil {
			return dto.OverviewResponse{}, err
		}

		evaluations, err := s.evaluations.List(ctx, repository.EvaluationFilter{TeamID: &team.ID})
		if err != nil {
			return dto.OverviewResponse{}, err
		}

		summary := dto.TeamEvaluationSummary{
			TeamID:             team.ID,
			TeamName:           team.Name,
			Category:           team.ResultCategory(),
			AssignedEvaluators: assigned,
			SubmittedCount:     int64(len(evaluations)),
		}

		if len(evaluations) > 0 {
			_, total := s.aggregate(evaluations)
			summary.AverageTotal = &total
		}

		response.Teams = append(response.Teams, summary)
		response.TotalEvaluations += int64(len(evaluations))
	}

	return response, nil
}

func (s *resultService) TeamDetail(ctx context.Context, teamID uint) ([]dto.EvaluationResponse, error) {
	if _, err := s.teams.GetByID(ctx, teamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	evaluations, err := s.evaluations.List(ctx, repository.EvaluationFilter{TeamID: &teamID})
	if err != nil {
		return nil, err
	}

	return dto.NewEvaluationResponseSlice(evaluations), nil
}

// aggregate computes the per-criterion mean across evaluations that carry a
// score for that criterion. Records missing a criterion are excluded from its
// mean, never counted as zero. The overall total sums the criterion means.
func (s *resultService) aggregate(evaluations []models.Evaluation) (map[string]float64, float64) {
	sums := map[string]float64{}
	counts := map[string]int{}

	for _, evaluation := range evaluations {
		for key, score := range evaluation.ScoreMap() {
			sums[key] += score
			counts[key]++
		}
	}

	averages := make(map[string]float64, len(sums))
	var total float64
	for key, sum := range sums {
		average := round2(sum / float64(counts[key]))
		averages[key] = average
		total += average
	}

	return averages, round2(total)
}

func (s *resultService) readCache(ctx context.Context, teamID uint) (dto.TeamResultResponse, bool) {
	if s.cache == nil {
		return dto.TeamResultResponse{}, false
	}

	key, err := s.cacheKey(ctx, teamID)
	if err != nil {
		return dto.TeamResultResponse{}, false
	}

	cached, err := s.cache.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read results cache")
		}
		return dto.TeamResultResponse{}, false
	}

	var response dto.TeamResultResponse
	if err := json.Unmarshal([]byte(cached), &response); err != nil {
		return dto.TeamResultResponse{}, false
	}

	return response, true
}

func (s *resultService) writeCache(ctx context.Context, teamID uint, response dto.TeamResultResponse) {
	if s.cache == nil {
		return
	}

	key, err := s.cacheKey(ctx, teamID)
	if err != nil {
		return
	}

	payload, err := json.Marshal(response)
	if err != nil {
		return
	}

	if err := s.cache.Set(ctx, key, payload, s.cacheTTL).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to store results cache")
	}
}

func (s *resultService) cacheKey(ctx context.Context, teamID uint) (string, error) {
	epoch, err := s.cache.Get(ctx, resultsEpochKey).Int64()
	if err != nil && err != redis.Nil {
		return "", err
	}

	return fmt.Sprintf("results:%d:team:%d", epoch, teamID), nil
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
