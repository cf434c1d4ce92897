package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/symposiumhq/symposium-api/internal/dto"
	"github.com/symposiumhq/symposium-api/internal/models"
	"github.com/symposiumhq/symposium-api/internal/repository"
)

// AuthService verifies identities and mints session tokens.
type AuthService interface {
	Login(ctx context.Context, payload dto.LoginRequest) (dto.AuthResponse, error)
	Register(ctx context.Context, payload dto.RegisterRequest) (dto.AuthResponse, error)
}

type authService struct {
	users     repository.UserRepository
	faculty   repository.FacultyRepository
	validator *validator.Validate
	secret    []byte
	tokenTTL  time.Duration
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAuthService constructs the credential service wrapper.
func NewAuthService(users repository.UserRepository, faculty repository.FacultyRepository, validate *validator.Validate, secret string, tokenTTL time.Duration, logger zerolog.Logger) AuthService {
	return &authService{
		users:     users,
		faculty:   faculty,
		validator: validate,
		secret:    []byte(secret),
		tokenTTL:  tokenTTL,
		logger:    logger.With().Str("component", "auth_service").Logger(),
		now:       time.Now,
	}
}

func (s *authService) Login(ctx context.Context, payload dto.LoginRequest) (dto.AuthResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AuthResponse{}, err
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AuthResponse{}, ErrInvalidCredentials
		}
		return dto.AuthResponse{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(payload.Password)) != nil {
		return dto.AuthResponse{}, ErrInvalidCredentials
	}

	if user.Role == models.RoleFaculty && user.FacultyProfileID == nil {
		user = s.linkFacultyProfile(ctx, user)
	}

	token, err := s.mintToken(user)
	if err != nil {
		return dto.AuthResponse{}, err
	}

	s.logger.Info().Uint("user_id", user.ID).Str("role", user.Role).Msg("login succeeded")

	return dto.AuthResponse{Token: token, User: dto.NewUserResponse(user)}, nil
}

func (s *authService) Register(ctx context.Context, payload dto.RegisterRequest) (dto.AuthResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AuthResponse{}, err
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))

	if _, err := s.users.GetByEmailAndRole(ctx, email, payload.Role); err == nil {
		return dto.AuthResponse{}, ErrDuplicateAccount
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.AuthResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return dto.AuthResponse{}, err
	}

	user := models.User{
		Name:         strings.TrimSpace(payload.Name),
		Email:        email,
		Role:         payload.Role,
		PasswordHash: string(hash),
	}

	if err := s.users.Create(ctx, &user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.AuthResponse{}, ErrDuplicateAccount
		}
		return dto.AuthResponse{}, err
	}

	token, err := s.mintToken(user)
	if err != nil {
		return dto.AuthResponse{}, err
	}

	s.logger.Info().Uint("user_id", user.ID).Str("role", user.Role).Msg("account registered")

	return dto.AuthResponse{Token: token, User: dto.NewUserResponse(user)}, nil
}

// linkFacultyProfile attaches an unlinked faculty profile on login. The link is
// an atomic conditional update so concurrent logins cannot double-write it;
// failure to link is logged but never blocks the login.
func (s *authService) linkFacultyProfile(ctx context.Context, user models.User) models.User {
	profile, err := s.faculty.GetByEmail(ctx, user.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn().Err(err).Uint("user_id", user.ID).Msg("faculty profile lookup failed")
		}
		return user
	}

	linked, err := s.users.LinkFacultyProfile(ctx, user.ID, profile.ID)
	if err != nil {
		s.logger.Warn().Err(err).Uint("user_id", user.ID).Msg("faculty profile link failed")
		return user
	}

	if linked {
		s.logger.Info().Uint("user_id", user.ID).Uint("faculty_id", profile.ID).Msg("faculty profile linked")
	}

	if reloaded, err := s.users.GetByID(ctx, user.ID); err == nil {
		return reloaded
	}

	return user
}

func (s *authService) mintToken(user models.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}
