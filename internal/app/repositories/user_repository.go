package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dkuznetsov/awardhub/internal/app/models"
	"github.com/dkuznetsov/awardhub/internal/pkg/apperrors"
	"github.com/dkuznetsov/awardhub/internal/pkg/dberrors"
	"github.com/dkuznetsov/awardhub/internal/pkg/logger"
)

// IUserRepository defines the interface for account database operations
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByLogin(ctx context.Context, login string) (*models.User, error)
	GetByLoginOrEmail(ctx context.Context, identifier string) (*models.User, error)
	LoginExists(ctx context.Context, login string, excludeUserID int64) (bool, error)
	EmailExists(ctx context.Context, email string, excludeUserID int64) (bool, error)
	UpdateCredentials(ctx context.Context, userID int64, login, email string) error
	UpdatePassword(ctx context.Context, userID int64, hashedPassword string) error
	SetStudentID(ctx context.Context, userID int64, studentID *int64) error
	Delete(ctx context.Context, id int64) error
}

// UserRepository handles account database operations
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, login, email, password, role, refresh_token, student_id`

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Login,
		&user.Email,
		&user.Password,
		&user.Role,
		&user.RefreshToken,
		&user.StudentID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error scanning user row: %w", err)
	}
	return &user, nil
}

// Create inserts a new account and fills in its generated ID
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (login, email, password, role, student_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		user.Login, user.Email, user.Password, user.Role, user.StudentID,
	).Scan(&user.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_login_key") {
			return apperrors.ErrLoginAlreadyExists
		}
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("login", user.Login).Msg("Error creating user")
		return fmt.Errorf("error creating user: %w", err)
	}

	return nil
}

// GetByID retrieves an account by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRow(ctx, query, id))
}

// GetByLogin retrieves an account by login
func (r *UserRepository) GetByLogin(ctx context.Context, login string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE login = $1`
	return scanUser(r.db.QueryRow(ctx, query, login))
}

// GetByLoginOrEmail retrieves an account matching the identifier as either
// login or email. Login takes precedence when both match.
func (r *UserRepository) GetByLoginOrEmail(ctx context.Context, identifier string) (*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE login = $1 OR email = $1
		ORDER BY (login = $1) DESC
		LIMIT 1
	`
	return scanUser(r.db.QueryRow(ctx, query, identifier))
}

// LoginExists checks whether a login is used by an account other than excludeUserID.
// Pass 0 to check against every account.
func (r *UserRepository) LoginExists(ctx context.Context, login string, excludeUserID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE login = $1 AND id != $2)`,
		login, excludeUserID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking login existence: %w", err)
	}
	return exists, nil
}

// EmailExists checks whether an email is used by an account other than excludeUserID.
func (r *UserRepository) EmailExists(ctx context.Context, email string, excludeUserID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 AND id != $2)`,
		email, excludeUserID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking email existence: %w", err)
	}
	return exists, nil
}

// UpdateCredentials updates an account's login and email
func (r *UserRepository) UpdateCredentials(ctx context.Context, userID int64, login, email string) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE users SET login = $1, email = $2 WHERE id = $3`,
		login, email, userID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_login_key") {
			return apperrors.ErrLoginAlreadyExists
		}
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error updating user credentials: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// UpdatePassword replaces an account's password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, userID int64, hashedPassword string) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE users SET password = $1 WHERE id = $2`,
		hashedPassword, userID)
	if err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// SetStudentID links or unlinks the student profile of an account
func (r *UserRepository) SetStudentID(ctx context.Context, userID int64, studentID *int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE users SET student_id = $1 WHERE id = $2`,
		studentID, userID)
	if err != nil {
		return fmt.Errorf("error linking student profile: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// Delete removes an account
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}
