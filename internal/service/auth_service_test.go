package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/symposiumhq/symposium-api/internal/dto"
	"github.com/symposiumhq/symposium-api/internal/models"
)

const testJWTSecret = "unit-test-secret"

func newAuthFixture(t *testing.T) (AuthService, *memoryUserRepo, *memoryFacultyRepo) {
	t.Helper()

	teams := newMemoryTeamRepo()
	users := newMemoryUserRepo()
	faculty := newMemoryFacultyRepo(teams)
	svc := NewAuthService(users, faculty, validator.New(), testJWTSecret, time.Hour, testLogger())
	return svc, users, faculty
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	registered, err := svc.Register(context.Background(), dto.RegisterRequest{
		Name:     "Dina",
		Email:    "Dina@Example.edu",
		Password: "sup3rsecret",
		Role:     models.RoleTeam,
	})
	require.NoError(t, err)
	require.NotEmpty(t, registered.Token)
	require.Equal(t, "dina@example.edu", registered.User.Email)

	session, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "dina@example.edu",
		Password: "sup3rsecret",
	})
	require.NoError(t, err)

	token, err := jwt.Parse(session.Token, func(*jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	require.Equal(t, models.RoleTeam, claims["role"])
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Name:     "Dina",
		Email:    "dina@example.edu",
		Password: "sup3rsecret",
		Role:     models.RoleTeam,
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), dto.LoginRequest{
		Email:    "dina@example.edu",
		Password: "wrong-password",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownAccount(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "ghost@example.edu",
		Password: "whatever1",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterDuplicateAccount(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	payload := dto.RegisterRequest{
		Name:     "Dina",
		Email:    "dina@example.edu",
		Password: "sup3rsecret",
		Role:     models.RoleTeam,
	}

	_, err := svc.Register(context.Background(), payload)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), payload)
	require.ErrorIs(t, err, ErrDuplicateAccount)
}

func TestRegisterSameEmailDifferentRole(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	payload := dto.RegisterRequest{
		Name:     "Dina",
		Email:    "dina@example.edu",
		Password: "sup3rsecret",
		Role:     models.RoleTeam,
	}

	_, err := svc.Register(context.Background(), payload)
	require.NoError(t, err)

	payload.Role = models.RoleEvaluator
	_, err = svc.Register(context.Background(), payload)
	require.NoError(t, err)
}

func TestLoginLinksFacultyProfile(t *testing.T) {
	svc, users, faculty := newAuthFixture(t)

	profile := models.Faculty{Name: "Prof. Sari", Email: "sari@example.edu"}
	require.NoError(t, faculty.Create(context.Background(), &profile))

	registered, err := svc.Register(context.Background(), dto.RegisterRequest{
		Name:     "Sari",
		Email:    "sari@example.edu",
		Password: "sup3rsecret",
		Role:     models.RoleFaculty,
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), dto.LoginRequest{
		Email:    "sari@example.edu",
		Password: "sup3rsecret",
	})
	require.NoError(t, err)

	linked, err := users.GetByID(context.Background(), registered.User.ID)
	require.NoError(t, err)
	require.NotNil(t, linked.FacultyProfileID)
	require.Equal(t, profile.ID, *linked.FacultyProfileID)
}
