package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/symposiumhq/symposium-api/internal/dto"
	"github.com/symposiumhq/symposium-api/internal/observability"
	"github.com/symposiumhq/symposium-api/internal/repository"
)

// ReleaseService controls the per-category result gates. Gates only open
// through an explicit admin call; nothing in this service opens one as a side
// effect.
type ReleaseService interface {
	Release(ctx context.Context, payload dto.ReleaseRequest, adminID uint) ([]dto.ReleaseStateResponse, error)
	IsOpen(ctx context.Context, category string) (bool, *time.Time, error)
	ResetAll(ctx context.Context, adminID uint) error
	States(ctx context.Context) ([]dto.ReleaseStateResponse, error)
}

type releaseEvent struct {
	Action     string    `json:"action"`
	Categories []string  `json:"categories,omitempty"`
	AdminID    uint      `json:"admin_id"`
	SentAt     time.Time `json:"sent_at"`
}

type releaseService struct {
	releases    repository.ReleaseRepository
	teams       repository.TeamRepository
	cache       *redis.Client
	nats        *nats.Conn
	natsSubject string
	tracer      trace.Tracer
	logger      zerolog.Logger
	now         func() time.Time
}

// NewReleaseService constructs the release gate service.
func NewReleaseService(releases repository.ReleaseRepository, teams repository.TeamRepository, cache *redis.Client, natsConn *nats.Conn, channelBase string, logger zerolog.Logger) ReleaseService {
	subject := ""
	if channelBase != "" {
		subject = channelBase + ".results"
	}

	return &releaseService{
		releases:    releases,
		teams:       teams,
		cache:       cache,
		nats:        natsConn,
		natsSubject: subject,
		tracer:      otel.Tracer("github.com/symposiumhq/symposium-api/internal/service/release"),
		logger:      logger.With().Str("component", "release_service").Logger(),
		now:         time.Now,
	}
}

// Release opens the gate for the named category, or for every category that
// currently has teams when no category is given.
func (s *releaseService) Release(ctx context.Context, payload dto.ReleaseRequest, adminID uint) ([]dto.ReleaseStateResponse, error) {
	ctx, span := s.tracer.Start(ctx, "release.open")
	span.SetAttributes(attribute.String("release.category", payload.Category))
	defer span.End()

	categories := []string{payload.Category}
	if payload.Category == "" {
		known, err := s.teams.Categories(ctx)
		if err != nil {
			return nil, err
		}
		categories = known
	}

	at := s.now()
	for _, category := range categories {
		if err := s.releases.Open(ctx, category, adminID, at); err != nil {
			span.RecordError(err)
			return nil, err
		}
		observability.ResultReleases().WithLabelValues(category).Inc()
	}

	s.bumpResultsEpoch(ctx)
	s.publish(releaseEvent{Action: "released", Categories: categories, AdminID: adminID, SentAt: at})

	s.logger.Info().Strs("categories", categories).Uint("admin_id", adminID).Msg("results released")

	return s.States(ctx)
}

func (s *releaseService) IsOpen(ctx context.Context, category string) (bool, *time.Time, error) {
	state, err := s.releases.Get(ctx, category)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil, nil
		}
		return false, nil, err
	}

	if !state.Open {
		return false, nil, nil
	}

	return true, state.ReleasedAt, nil
}

// ResetAll closes every gate so a round can be re-run. Evaluation records are
// untouched: results go dark, history stays.
func (s *releaseService) ResetAll(ctx context.Context, adminID uint) error {
	if err := s.releases.CloseAll(ctx); err != nil {
		return err
	}

	s.bumpResultsEpoch(ctx)
	s.publish(releaseEvent{Action: "reset", AdminID: adminID, SentAt: s.now()})

	s.logger.Info().Uint("admin_id", adminID).Msg("all release gates closed")
	return nil
}

func (s *releaseService) States(ctx context.Context) ([]dto.ReleaseStateResponse, error) {
	states, err := s.releases.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ReleaseStateResponse, 0, len(states))
	for _, state := range states {
		response := dto.ReleaseStateResponse{Category: state.Category, Open: state.Open}
		if state.Open {
			response.ReleasedAt = state.ReleasedAt
		}
		responses = append(responses, response)
	}

	return responses, nil
}

// bumpResultsEpoch invalidates every cached aggregate by rotating the epoch
// embedded in the result cache keys. The stale generation ages out via TTL.
func (s *releaseService) bumpResultsEpoch(ctx context.Context) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Incr(ctx, resultsEpochKey).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to rotate results cache epoch")
	}
}

func (s *releaseService) publish(event releaseEvent) {
	if s.nats == nil || s.natsSubject == "" {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return
	}

	if err := s.nats.Publish(s.natsSubject, payload); err != nil {
		s.logger.Warn().Err(err).Msg("failed to publish release event")
	}
}
