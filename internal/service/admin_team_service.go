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

// AdminTeamService manages the team directory for administrators.
type AdminTeamService interface {
	List(ctx context.Context, filter repository.TeamFilter) ([]dto.TeamResponse, error)
	Create(ctx context.Context, payload dto.TeamCreateRequest) (dto.TeamResponse, error)
	Update(ctx context.Context, id uint, payload dto.TeamUpdateRequest) (dto.TeamResponse, error)
	Delete(ctx context.Context, id uint) error
	ResendInvitation(ctx context.Context, id uint) error
}

type adminTeamService struct {
	teams     repository.TeamRepository
	faculty   repository.FacultyRepository
	validator *validator.Validate
	mailer    Mailer
	logger    zerolog.Logger
}

// NewAdminTeamService constructs the team directory service.
func NewAdminTeamService(teams repository.TeamRepository, faculty repository.FacultyRepository, validate *validator.Validate, mailer Mailer, logger zerolog.Logger) AdminTeamService {
	return &adminTeamService{
		teams:     teams,
		faculty:   faculty,
		validator: validate,
		mailer:    mailer,
		logger:    logger.With().Str("component", "admin_team_service").Logger(),
	}
}

func (s *adminTeamService) List(ctx context.Context, filter repository.TeamFilter) ([]dto.TeamResponse, error) {
	teams, err := s.teams.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return dto.NewTeamResponseSlice(teams), nil
}

// Create registers a team and issues the kiosk credential pair. The pair is
// separate from whatever account the leader later registers with the
// credential service.
func (s *adminTeamService) Create(ctx context.Context, payload dto.TeamCreateRequest) (dto.TeamResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.TeamResponse{}, err
	}

	if payload.FacultyID != nil {
		if _, err := s.faculty.GetByID(ctx, *payload.FacultyID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return dto.TeamResponse{}, ErrFacultyNotFound
			}
			return dto.TeamResponse{}, err
		}
	}

	category := strings.TrimSpace(payload.Category)
	if category == "" {
		category = models.DefaultCategory
	}

	team := models.Team{
		Name:               strings.TrimSpace(payload.Name),
		Category:           category,
		ProjectTitle:       strings.TrimSpace(payload.ProjectTitle),
		LeaderName:         strings.TrimSpace(payload.LeaderName),
		LeaderEmail:        strings.ToLower(strings.TrimSpace(payload.LeaderEmail)),
		LeaderPhone:        strings.TrimSpace(payload.LeaderPhone),
		CredentialUsername: credentialUsername(payload.Name),
		CredentialPassword: credentialPassword(),
		FacultyID:          payload.FacultyID,
	}

	if err := s.teams.Create(ctx, &team); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.TeamResponse{}, ErrDuplicateAccount
		}
		return dto.TeamResponse{}, err
	}

	s.sendInvitation(ctx, team)
	s.logger.Info().Uint("team_id", team.ID).Str("name", team.Name).Msg("team created")

	created, err := s.teams.GetByID(ctx, team.ID)
	if err != nil {
		return dto.TeamResponse{}, err
	}

	return dto.NewTeamResponse(created), nil
}

func (s *adminTeamService) Update(ctx context.Context, id uint, payload dto.TeamUpdateRequest) (dto.TeamResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.TeamResponse{}, err
	}

	team, err := s.teams.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TeamResponse{}, ErrTeamNotFound
		}
		return dto.TeamResponse{}, err
	}

	if payload.Name != nil {
		team.Name = strings.TrimSpace(*payload.Name)
	}
	if payload.Category != nil {
		team.Category = strings.TrimSpace(*payload.Category)
	}
	if payload.ProjectTitle != nil {
		team.ProjectTitle = strings.TrimSpace(*payload.ProjectTitle)
	}
	if payload.LeaderName != nil {
		team.LeaderName = strings.TrimSpace(*payload.LeaderName)
	}
	if payload.LeaderEmail != nil {
		team.LeaderEmail = strings.ToLower(strings.TrimSpace(*payload.LeaderEmail))
	}
	if payload.LeaderPhone != nil {
		team.LeaderPhone = strings.TrimSpace(*payload.LeaderPhone)
	}
	if payload.FacultyID != nil {
		if _, err := s.faculty.GetByID(ctx, *payload.FacultyID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return dto.TeamResponse{}, ErrFacultyNotFound
			}
			return dto.TeamResponse{}, err
		}
		team.FacultyID = payload.FacultyID
	}

	if err := s.teams.Update(ctx, &team); err != nil {
		return dto.TeamResponse{}, err
	}

	s.logger.Info().Uint("team_id", team.ID).Msg("team updated")

	updated, err := s.teams.GetByID(ctx, team.ID)
	if err != nil {
		return dto.TeamResponse{}, err
	}

	return dto.NewTeamResponse(updated), nil
}

func (s *adminTeamService) Delete(ctx context.Context, id uint) error {
	if err := s.teams.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTeamNotFound
		}
		return err
	}

	s.logger.Info().Uint("team_id", id).Msg("team deleted")
	return nil
}

func (s *adminTeamService) ResendInvitation(ctx context.Context, id uint) error {
	team, err := s.teams.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTeamNotFound
		}
		return err
	}

	s.sendInvitation(ctx, team)
	return nil
}

func (s *adminTeamService) sendInvitation(ctx context.Context, team models.Team) {
	invitation := Invitation{
		RecipientName:  team.LeaderName,
		RecipientEmail: team.LeaderEmail,
		Role:           models.RoleTeam,
		Token:          uuid.NewString(),
	}

	if err := s.mailer.SendInvitation(ctx, invitation); err != nil {
		s.logger.Warn().Err(err).Uint("team_id", team.ID).Msg("failed to queue team invitation")
	}
}

func credentialUsername(teamName string) string {
	base := strings.ToLower(strings.TrimSpace(teamName))
	base = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return '-'
	}, base)
	base = strings.Trim(base, "-")
	if base == "" {
		base = "team"
	}
	if len(base) > 24 {
		base = base[:24]
	}

	return base + "-" + uuid.NewString()[:8]
}

func credentialPassword() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}
