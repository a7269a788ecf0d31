package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dkuznetsov/awardhub/internal/app/models"
	"github.com/dkuznetsov/awardhub/internal/app/models/dto"
	"github.com/dkuznetsov/awardhub/internal/pkg/apperrors"
	"github.com/dkuznetsov/awardhub/internal/pkg/auth"
	"github.com/dkuznetsov/awardhub/internal/pkg/validation"
)

// AuthUserRepository is the account access the auth service needs
type AuthUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByLoginOrEmail(ctx context.Context, identifier string) (*models.User, error)
	LoginExists(ctx context.Context, login string, excludeUserID int64) (bool, error)
	EmailExists(ctx context.Context, email string, excludeUserID int64) (bool, error)
}

// RefreshTokenRepository manages the single refresh token held per account
type RefreshTokenRepository interface {
	Store(ctx context.Context, userID int64, token string) error
	FindUserIDByToken(ctx context.Context, token string) (int64, error)
	Clear(ctx context.Context, userID int64) error
}

// AuthService handles registration, login and the refresh token lifecycle
type AuthService struct {
	userRepo   AuthUserRepository
	tokenRepo  RefreshTokenRepository
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo AuthUserRepository,
	tokenRepo RefreshTokenRepository,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// AuthResult carries the issued token pair together with the account
type AuthResult struct {
	AccessToken  string
	RefreshToken string
	User         *models.User
}

// Register creates a new account with the default role, issues a token pair
// and persists the refresh token.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*AuthResult, error) {
	login := strings.TrimSpace(req.Login)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !validation.IsValidLogin(login) {
		return nil, &apperrors.CustomError{
			Err:     apperrors.ErrValidationFailed,
			Message: "login must be 3-50 characters of letters, digits, '-' or '_'",
		}
	}
	if !validation.IsValidEmail(email) {
		return nil, &apperrors.CustomError{
			Err:     apperrors.ErrValidationFailed,
			Message: "invalid email format",
		}
	}

	if exists, err := s.userRepo.LoginExists(ctx, login, 0); err != nil {
		return nil, err
	} else if exists {
		return nil, apperrors.ErrLoginAlreadyExists
	}
	if exists, err := s.userRepo.EmailExists(ctx, email, 0); err != nil {
		return nil, err
	} else if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Login:    login,
		Email:    email,
		Password: hashedPassword,
		Role:     models.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Str("login", user.Login).Msg("Account registered")

	return s.issueTokens(ctx, user)
}

// Login authenticates by login or email. Unknown accounts and wrong
// passwords produce the same error so the response never reveals whether
// the account exists.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*AuthResult, error) {
	user, err := s.userRepo.GetByLoginOrEmail(ctx, strings.TrimSpace(req.Login))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		s.logger.Warn().Int64("userID", user.ID).Msg("Failed login attempt")
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user)
}

// RefreshTokens rotates the token pair bound to a refresh token cookie.
// The token must match exactly what is stored on an account; a stored token
// that no longer verifies is cleared so the session cannot be retried.
func (s *AuthService) RefreshTokens(ctx context.Context, refreshToken string) (*AuthResult, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, apperrors.ErrTokenInvalid
	}

	userID, err := s.tokenRepo.FindUserIDByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrTokenNotFound) {
			return nil, apperrors.ErrTokenInvalid
		}
		return nil, err
	}

	if _, err := s.jwtService.ValidateRefreshToken(refreshToken); err != nil {
		if clearErr := s.tokenRepo.Clear(ctx, userID); clearErr != nil {
			s.logger.Error().Err(clearErr).Int64("userID", userID).Msg("Failed to clear stale refresh token")
		}
		if errors.Is(err, auth.ErrExpiredToken) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrTokenInvalid
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// Logout clears the stored refresh token of an account
func (s *AuthService) Logout(ctx context.Context, userID int64) error {
	if err := s.tokenRepo.Clear(ctx, userID); err != nil {
		return err
	}
	s.logger.Info().Int64("userID", userID).Msg("Account logged out")
	return nil
}

// GetUser returns the account for an authenticated user id
func (s *AuthService) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*AuthResult, error) {
	accessToken, refreshToken, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	if err := s.tokenRepo.Store(ctx, user.ID, refreshToken); err != nil {
		return nil, err
	}

	return &AuthResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}
