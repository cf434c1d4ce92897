package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/symposiumhq/symposium-api/internal/dto"
	"github.com/symposiumhq/symposium-api/internal/models"
	"github.com/symposiumhq/symposium-api/internal/repository"
)

var (
	// ErrAssetNotFound indicates the referenced poster or video does not exist.
	ErrAssetNotFound = errors.New("display asset not found")
	// ErrLaunchNotFound indicates the referenced launch is not active.
	ErrLaunchNotFound = errors.New("launch not found")
	// ErrUnsupportedAssetType indicates the uploaded file is not an accepted
	// image or video format.
	ErrUnsupportedAssetType = errors.New("unsupported asset type")
	// ErrAlreadyLaunched indicates the asset already has an active launch.
	ErrAlreadyLaunched = errors.New("asset is already launched")
)

var (
	posterMIMETypes = []string{"image/png", "image/jpeg", "image/webp"}
	videoMIMETypes  = []string{"video/mp4", "video/webm", "video/quicktime"}
)

// FileUploader abstracts uploading binary data and returning a URL.
type FileUploader interface {
	Upload(ctx context.Context, name string, reader io.Reader) (string, error)
}

// LaunchService manages display assets and pushes launch events to the venue
// screens.
type LaunchService interface {
	UploadPoster(ctx context.Context, payload dto.AssetUploadRequest, file *multipart.FileHeader) (dto.PosterResponse, error)
	UploadVideo(ctx context.Context, payload dto.AssetUploadRequest, file *multipart.FileHeader) (dto.VideoResponse, error)
	ListPosters(ctx context.Context) ([]dto.PosterResponse, error)
	ListVideos(ctx context.Context) ([]dto.VideoResponse, error)

	Launch(ctx context.Context, kind string, payload dto.LaunchRequest) (dto.LaunchResponse, error)
	Update(ctx context.Context, launchID uint, payload dto.LaunchUpdateRequest) (dto.LaunchResponse, error)
	Stop(ctx context.Context, launchID uint) error
	Active(ctx context.Context, kind string) ([]dto.LaunchResponse, error)
	ResetAll(ctx context.Context) (int64, error)
}

type launchService struct {
	repo      repository.LaunchRepository
	uploader  FileUploader
	feed      LaunchFeed
	validator *validator.Validate
	logger    zerolog.Logger
	tracer    trace.Tracer
}

// NewLaunchService constructs the launch workflow service.
func NewLaunchService(repo repository.LaunchRepository, uploader FileUploader, feed LaunchFeed, validate *validator.Validate, logger zerolog.Logger) LaunchService {
	return &launchService{
		repo:      repo,
		uploader:  uploader,
		feed:      feed,
		validator: validate,
		logger:    logger.With().Str("component", "launch_service").Logger(),
		tracer:    otel.Tracer("github.com/symposiumhq/symposium-api/internal/service/launch"),
	}
}

func (s *launchService) UploadPoster(ctx context.Context, payload dto.AssetUploadRequest, file *multipart.FileHeader) (dto.PosterResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.PosterResponse{}, err
	}

	url, err := s.storeAsset(ctx, file, posterMIMETypes)
	if err != nil {
		return dto.PosterResponse{}, err
	}

	poster := models.Poster{
		Title:   strings.TrimSpace(payload.Title),
		FileURL: url,
		TeamID:  payload.TeamID,
	}
	if err := s.repo.CreatePoster(ctx, &poster); err != nil {
		return dto.PosterResponse{}, err
	}

	s.logger.Info().Uint("poster_id", poster.ID).Msg("poster uploaded")

	return dto.NewPosterResponse(poster), nil
}

func (s *launchService) UploadVideo(ctx context.Context, payload dto.AssetUploadRequest, file *multipart.FileHeader) (dto.VideoResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.VideoResponse{}, err
	}

	url, err := s.storeAsset(ctx, file, videoMIMETypes)
	if err != nil {
		return dto.VideoResponse{}, err
	}

	video := models.PromotionVideo{
		Title:   strings.TrimSpace(payload.Title),
		FileURL: url,
	}
	if err := s.repo.CreateVideo(ctx, &video); err != nil {
		return dto.VideoResponse{}, err
	}

	s.logger.Info().Uint("video_id", video.ID).Msg("promotion video uploaded")

	return dto.NewVideoResponse(video), nil
}

func (s *launchService) ListPosters(ctx context.Context) ([]dto.PosterResponse, error) {
	posters, err := s.repo.ListPosters(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.PosterResponse, 0, len(posters))
	for _, poster := range posters {
		responses = append(responses, dto.NewPosterResponse(poster))
	}
	return responses, nil
}

func (s *launchService) ListVideos(ctx context.Context) ([]dto.VideoResponse, error) {
	videos, err := s.repo.ListVideos(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.VideoResponse, 0, len(videos))
	for _, video := range videos {
		responses = append(responses, dto.NewVideoResponse(video))
	}
	return responses, nil
}

func (s *launchService) Launch(ctx context.Context, kind string, payload dto.LaunchRequest) (dto.LaunchResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.LaunchResponse{}, err
	}

	attrs := []attribute.KeyValue{
		attribute.String("launch.kind", kind),
		attribute.Int64("launch.asset_id", int64(payload.AssetID)),
	}
	spanCtx, span := s.tracer.Start(ctx, "launch.create", trace.WithAttributes(attrs...))
	defer span.End()

	title, fileURL, err := s.assetDetails(spanCtx, kind, payload.AssetID)
	if err != nil {
		span.RecordError(err)
		return dto.LaunchResponse{}, err
	}

	launch := models.Launch{
		Kind:    kind,
		AssetID: payload.AssetID,
		Active:  true,
	}
	if err := launch.SetSettings(payload.Settings); err != nil {
		return dto.LaunchResponse{}, err
	}

	if err := s.repo.CreateLaunch(spanCtx, &launch); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.LaunchResponse{}, ErrAlreadyLaunched
		}
		span.RecordError(err)
		return dto.LaunchResponse{}, err
	}

	response := newLaunchResponse(launch, title, fileURL)
	s.feed.Publish(launchEvent(dto.LaunchEventLaunched, response))

	s.logger.Info().Uint("launch_id", launch.ID).Str("kind", kind).Msg("asset launched")

	return response, nil
}

func (s *launchService) Update(ctx context.Context, launchID uint, payload dto.LaunchUpdateRequest) (dto.LaunchResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.LaunchResponse{}, err
	}

	launch, err := s.repo.GetLaunch(ctx, launchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LaunchResponse{}, ErrLaunchNotFound
		}
		return dto.LaunchResponse{}, err
	}

	if err := launch.SetSettings(payload.Settings); err != nil {
		return dto.LaunchResponse{}, err
	}
	if err := s.repo.UpdateLaunch(ctx, &launch); err != nil {
		return dto.LaunchResponse{}, err
	}

	title, fileURL, err := s.assetDetails(ctx, launch.Kind, launch.AssetID)
	if err != nil {
		return dto.LaunchResponse{}, err
	}

	response := newLaunchResponse(launch, title, fileURL)
	s.feed.Publish(launchEvent(dto.LaunchEventUpdated, response))

	return response, nil
}

func (s *launchService) Stop(ctx context.Context, launchID uint) error {
	launch, err := s.repo.GetLaunch(ctx, launchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLaunchNotFound
		}
		return err
	}

	if err := s.repo.DeleteLaunch(ctx, launchID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLaunchNotFound
		}
		return err
	}

	s.feed.Publish(dto.LaunchEvent{
		Type:     dto.LaunchEventStopped,
		Kind:     launch.Kind,
		LaunchID: launch.ID,
		AssetID:  launch.AssetID,
	})

	s.logger.Info().Uint("launch_id", launchID).Msg("launch stopped")

	return nil
}

func (s *launchService) Active(ctx context.Context, kind string) ([]dto.LaunchResponse, error) {
	launches, err := s.repo.ListLaunches(ctx, kind)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.LaunchResponse, 0, len(launches))
	for _, launch := range launches {
		title, fileURL, err := s.assetDetails(ctx, launch.Kind, launch.AssetID)
		if err != nil {
			if errors.Is(err, ErrAssetNotFound) {
				continue
			}
			return nil, err
		}
		responses = append(responses, newLaunchResponse(launch, title, fileURL))
	}
	return responses, nil
}

func (s *launchService) ResetAll(ctx context.Context) (int64, error) {
	removed, err := s.repo.DeleteAllLaunches(ctx)
	if err != nil {
		return 0, err
	}

	s.feed.Publish(dto.LaunchEvent{Type: dto.LaunchEventReset})
	s.logger.Info().Int64("removed", removed).Msg("all launches reset")

	return removed, nil
}

func (s *launchService) assetDetails(ctx context.Context, kind string, assetID uint) (string, string, error) {
	switch kind {
	case models.LaunchKindPoster:
		poster, err := s.repo.GetPoster(ctx, assetID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", "", ErrAssetNotFound
			}
			return "", "", err
		}
		return poster.Title, poster.FileURL, nil
	case models.LaunchKindVideo:
		video, err := s.repo.GetVideo(ctx, assetID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", "", ErrAssetNotFound
			}
			return "", "", err
		}
		return video.Title, video.FileURL, nil
	default:
		return "", "", fmt.Errorf("unknown launch kind %q", kind)
	}
}

func (s *launchService) storeAsset(ctx context.Context, file *multipart.FileHeader, allowed []string) (string, error) {
	if file == nil {
		return "", errors.New("file is required")
	}
	if s.uploader == nil {
		return "", errors.New("no upload storage configured")
	}

	if err := validateAssetType(file, allowed); err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer src.Close()

	url, err := s.uploader.Upload(ctx, file.Filename, src)
	if err != nil {
		return "", fmt.Errorf("failed to upload asset: %w", err)
	}
	return url, nil
}

func validateAssetType(file *multipart.FileHeader, allowed []string) error {
	reader, err := file.Open()
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer reader.Close()

	mime, err := mimetype.DetectReader(reader)
	if err != nil {
		return fmt.Errorf("failed to detect file type: %w", err)
	}

	for _, a := range allowed {
		if mime.Is(a) {
			return nil
		}
	}

	return fmt.Errorf("%w: %s", ErrUnsupportedAssetType, mime.String())
}

func newLaunchResponse(launch models.Launch, title, fileURL string) dto.LaunchResponse {
	return dto.LaunchResponse{
		ID:        launch.ID,
		Kind:      launch.Kind,
		AssetID:   launch.AssetID,
		Title:     title,
		FileURL:   fileURL,
		Settings:  launch.SettingsMap(),
		CreatedAt: launch.CreatedAt,
		UpdatedAt: launch.UpdatedAt,
	}
}

func launchEvent(eventType string, launch dto.LaunchResponse) dto.LaunchEvent {
	return dto.LaunchEvent{
		Type:     eventType,
		Kind:     launch.Kind,
		LaunchID: launch.ID,
		AssetID:  launch.AssetID,
		Title:    launch.Title,
		FileURL:  launch.FileURL,
		Settings: launch.Settings,
		SentAt:   time.Now().UTC(),
	}
}
