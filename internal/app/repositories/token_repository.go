package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dkuznetsov/awardhub/internal/pkg/apperrors"
	"github.com/dkuznetsov/awardhub/internal/pkg/logger"
)

// TokenRepository manages the refresh token stored on each account. An
// account holds at most one active refresh token; storing a new one
// invalidates the previous session.
type TokenRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Store persists a refresh token on an account, replacing any previous one
func (r *TokenRepository) Store(ctx context.Context, userID int64, token string) error {
	sql, args, err := r.sb.Update("users").
		Set("refresh_token", token).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building store token SQL")
		return fmt.Errorf("failed to build store token query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing store token query")
		return fmt.Errorf("error storing refresh token: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// FindUserIDByToken returns the account holding exactly this refresh token
func (r *TokenRepository) FindUserIDByToken(ctx context.Context, token string) (int64, error) {
	sql, args, err := r.sb.Select("id").
		From("users").
		Where(squirrel.Eq{"refresh_token": token}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building find token SQL")
		return 0, fmt.Errorf("failed to build find token query: %w", err)
	}

	var userID int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrTokenNotFound
		}
		logger.Error().Err(err).Msg("Error scanning token owner row")
		return 0, fmt.Errorf("error looking up refresh token: %w", err)
	}

	return userID, nil
}

// Clear removes the stored refresh token of an account. Clearing an account
// that has no token is not an error.
func (r *TokenRepository) Clear(ctx context.Context, userID int64) error {
	sql, args, err := r.sb.Update("users").
		Set("refresh_token", nil).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building clear token SQL")
		return fmt.Errorf("failed to build clear token query: %w", err)
	}

	if _, err = r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing clear token query")
		return fmt.Errorf("error clearing refresh token: %w", err)
	}

	return nil
}
