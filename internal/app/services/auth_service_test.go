package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkuznetsov/awardhub/internal/app/models"
	"github.com/dkuznetsov/awardhub/internal/app/models/dto"
	"github.com/dkuznetsov/awardhub/internal/pkg/apperrors"
	"github.com/dkuznetsov/awardhub/internal/pkg/auth"
)

// fakeUserRepo is an in-memory AuthUserRepository
type fakeUserRepo struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*models.User{}, nextID: 1}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	for _, existing := range r.users {
		if existing.Login == user.Login {
			return apperrors.ErrLoginAlreadyExists
		}
		if existing.Email == user.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetByLoginOrEmail(_ context.Context, identifier string) (*models.User, error) {
	for _, user := range r.users {
		if user.Login == identifier || user.Email == identifier {
			return user, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) LoginExists(_ context.Context, login string, excludeUserID int64) (bool, error) {
	for _, user := range r.users {
		if user.Login == login && user.ID != excludeUserID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) EmailExists(_ context.Context, email string, excludeUserID int64) (bool, error) {
	for _, user := range r.users {
		if user.Email == email && user.ID != excludeUserID {
			return true, nil
		}
	}
	return false, nil
}

// fakeTokenRepo is an in-memory RefreshTokenRepository
type fakeTokenRepo struct {
	tokens map[int64]string
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: map[int64]string{}}
}

func (r *fakeTokenRepo) Store(_ context.Context, userID int64, token string) error {
	r.tokens[userID] = token
	return nil
}

func (r *fakeTokenRepo) FindUserIDByToken(_ context.Context, token string) (int64, error) {
	for userID, stored := range r.tokens {
		if stored == token {
			return userID, nil
		}
	}
	return 0, apperrors.ErrTokenNotFound
}

func (r *fakeTokenRepo) Clear(_ context.Context, userID int64) error {
	delete(r.tokens, userID)
	return nil
}

func newAuthFixture(refreshExp time.Duration) (*AuthService, *fakeUserRepo, *fakeTokenRepo) {
	userRepo := newFakeUserRepo()
	tokenRepo := newFakeTokenRepo()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		AccessSecret:    "access-secret",
		RefreshSecret:   "refresh-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: refreshExp,
		TokenIssuer:     "awardhub-test",
	})
	svc := NewAuthService(userRepo, tokenRepo, jwtService, zerolog.Nop())
	return svc, userRepo, tokenRepo
}

func TestRegisterAndLogin(t *testing.T) {
	svc, userRepo, tokenRepo := newAuthFixture(time.Hour)
	ctx := context.Background()

	result, err := svc.Register(ctx, &dto.RegisterRequest{
		Login:    "ivan_petrov",
		Email:    "Ivan@Example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	require.NotNil(t, result.User)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, models.RoleUser, result.User.Role)
	// Email is stored lowercased
	assert.Equal(t, "ivan@example.com", result.User.Email)
	// Password is stored hashed
	assert.NotEqual(t, "password123", userRepo.users[result.User.ID].Password)
	// Refresh token is persisted on the account
	assert.Equal(t, result.RefreshToken, tokenRepo.tokens[result.User.ID])

	// Login by login name
	loginResult, err := svc.Login(ctx, &dto.LoginRequest{Login: "ivan_petrov", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, loginResult.User.ID)

	// Login by email works too
	_, err = svc.Login(ctx, &dto.LoginRequest{Login: "ivan@example.com", Password: "password123"})
	require.NoError(t, err)

	// Login rotated the stored refresh token
	assert.NotEqual(t, result.RefreshToken, tokenRepo.tokens[result.User.ID])
}

func TestRegisterRejectsInvalidInput(t *testing.T) {
	svc, _, _ := newAuthFixture(time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{Login: "ab", Email: "a@b.co", Password: "password123"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.Register(ctx, &dto.RegisterRequest{Login: "valid_login", Email: "not-an-email", Password: "password123"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	svc, _, _ := newAuthFixture(time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{Login: "taken", Email: "taken@example.com", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &dto.RegisterRequest{Login: "taken", Email: "other@example.com", Password: "password123"})
	assert.ErrorIs(t, err, apperrors.ErrLoginAlreadyExists)

	_, err = svc.Register(ctx, &dto.RegisterRequest{Login: "other", Email: "taken@example.com", Password: "password123"})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestLoginUnknownAccountAndWrongPasswordLookAlike(t *testing.T) {
	svc, _, _ := newAuthFixture(time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{Login: "someone", Email: "s@example.com", Password: "password123"})
	require.NoError(t, err)

	_, unknownErr := svc.Login(ctx, &dto.LoginRequest{Login: "nobody", Password: "password123"})
	_, wrongPwErr := svc.Login(ctx, &dto.LoginRequest{Login: "someone", Password: "wrong-password"})

	assert.ErrorIs(t, unknownErr, apperrors.ErrInvalidCredentials)
	assert.ErrorIs(t, wrongPwErr, apperrors.ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Error(), wrongPwErr.Error())
}

func TestRefreshTokensRotatesPair(t *testing.T) {
	svc, _, tokenRepo := newAuthFixture(time.Hour)
	ctx := context.Background()

	registered, err := svc.Register(ctx, &dto.RegisterRequest{Login: "rotator", Email: "r@example.com", Password: "password123"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshTokens(ctx, registered.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, registered.RefreshToken, refreshed.RefreshToken)
	assert.Equal(t, refreshed.RefreshToken, tokenRepo.tokens[registered.User.ID])

	// The replaced token no longer matches any account
	_, err = svc.RefreshTokens(ctx, registered.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestRefreshTokensRejectsUnknownToken(t *testing.T) {
	svc, _, _ := newAuthFixture(time.Hour)

	_, err := svc.RefreshTokens(context.Background(), "")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)

	_, err = svc.RefreshTokens(context.Background(), "never-issued")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestRefreshTokensClearsExpiredStoredToken(t *testing.T) {
	svc, _, tokenRepo := newAuthFixture(-time.Minute)
	ctx := context.Background()

	registered, err := svc.Register(ctx, &dto.RegisterRequest{Login: "expired", Email: "e@example.com", Password: "password123"})
	require.NoError(t, err)
	require.Contains(t, tokenRepo.tokens, registered.User.ID)

	_, err = svc.RefreshTokens(ctx, registered.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
	// The stale token was cleared so the session cannot be retried
	assert.NotContains(t, tokenRepo.tokens, registered.User.ID)
}

func TestLogout(t *testing.T) {
	svc, _, tokenRepo := newAuthFixture(time.Hour)
	ctx := context.Background()

	registered, err := svc.Register(ctx, &dto.RegisterRequest{Login: "leaver", Email: "l@example.com", Password: "password123"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, registered.User.ID))
	assert.NotContains(t, tokenRepo.tokens, registered.User.ID)
}
