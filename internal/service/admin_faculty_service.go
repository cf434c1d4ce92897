package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/symposiumhq/symposium-api/internal/dto"
	"github.com/symposiumhq/symposium-api/internal/models"
	"github.com/symposiumhq/symposium-api/internal/repository"
)

// AdminFacultyService manages the faculty directory for administrators.
type AdminFacultyService interface {
	List(ctx context.Context) ([]dto.FacultyResponse, error)
	Create(ctx context.Context, payload dto.FacultyCreateRequest) (dto.FacultyResponse, error)
	Update(ctx context.Context, id uint, payload dto.FacultyUpdateRequest) (dto.FacultyResponse, error)
	Delete(ctx context.Context, id uint) error
	ResendInvitation(ctx context.Context, id uint) error
}

type adminFacultyService struct {
	faculty   repository.FacultyRepository
	validator *validator.Validate
	mailer    Mailer
	logger    zerolog.Logger
}

// NewAdminFacultyService constructs the faculty directory service.
func NewAdminFacultyService(faculty repository.FacultyRepository, validate *validator.Validate, mailer Mailer, logger zerolog.Logger) AdminFacultyService {
	return &adminFacultyService{
		faculty:   faculty,
		validator: validate,
		mailer:    mailer,
		logger:    logger.With().Str("component", "admin_faculty_service").Logger(),
	}
}

func (s *adminFacultyService) List(ctx context.Context) ([]dto.FacultyResponse, error) {
	faculty, err := s.faculty.List(ctx)
	if err != nil {
		return nil, err
	}

	return dto.NewFacultyResponseSlice(faculty), nil
}

func (s *adminFacultyService) Create(ctx context.Context, payload dto.FacultyCreateRequest) (dto.FacultyResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.FacultyResponse{}, err
	}

	profile := models.Faculty{
		Name:           strings.TrimSpace(payload.Name),
		Email:          strings.ToLower(strings.TrimSpace(payload.Email)),
		Designation:    strings.TrimSpace(payload.Designation),
		Department:     strings.TrimSpace(payload.Department),
		Specialization: strings.TrimSpace(payload.Specialization),
	}

	if err := s.faculty.Create(ctx, &profile); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.FacultyResponse{}, ErrDuplicateAccount
		}
		return dto.FacultyResponse{}, err
	}

	s.sendInvitation(ctx, profile)
	s.logger.Info().Uint("faculty_id", profile.ID).Msg("faculty created")

	return dto.NewFacultyResponse(profile), nil
}

func (s *adminFacultyService) Update(ctx context.Context, id uint, payload dto.FacultyUpdateRequest) (dto.FacultyResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.FacultyResponse{}, err
	}

	profile, err := s.faculty.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.FacultyResponse{}, ErrFacultyNotFound
		}
		return dto.FacultyResponse{}, err
	}

	if payload.Name != nil {
		profile.Name = strings.TrimSpace(*payload.Name)
	}
	if payload.Designation != nil {
		profile.Designation = strings.TrimSpace(*payload.Designation)
	}
	if payload.Department != nil {
		profile.Department = strings.TrimSpace(*payload.Department)
	}
	if payload.Specialization != nil {
		profile.Specialization = strings.TrimSpace(*payload.Specialization)
	}

	if err := s.faculty.Update(ctx, &profile); err != nil {
		return dto.FacultyResponse{}, err
	}

	s.logger.Info().Uint("faculty_id", profile.ID).Msg("faculty updated")

	return dto.NewFacultyResponse(profile), nil
}

func (s *adminFacultyService) Delete(ctx context.Context, id uint) error {
	if err := s.faculty.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFacultyNotFound
		}
		return err
	}

	s.logger.Info().Uint("faculty_id", id).Msg("faculty deleted")
	return nil
}

func (s *adminFacultyService) ResendInvitation(ctx context.Context, id uint) error {
	profile, err := s.faculty.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFacultyNotFound
		}
		return err
	}

	s.sendInvitation(ctx, profile)
	return nil
}

func (s *adminFacultyService) sendInvitation(ctx context.Context, profile models.Faculty) {
	invitation := Invitation{
		RecipientName:  profile.Name,
		RecipientEmail: profile.Email,
		Role:           models.RoleFaculty,
		Token:          uuid.NewString(),
	}

	if err := s.mailer.SendInvitation(ctx, invitation); err != nil {
		s.logger.Warn().Err(err).Uint("faculty_id", profile.ID).Msg("failed to queue faculty invitation")
	}
}
