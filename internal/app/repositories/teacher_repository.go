package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dkuznetsov/awardhub/internal/app/models"
	"github.com/dkuznetsov/awardhub/internal/pkg/apperrors"
)

// TeacherRepository handles teacher profile database operations
type TeacherRepository struct {
	db *pgxpool.Pool
}

// NewTeacherRepository creates a new TeacherRepository
func NewTeacherRepository(db *pgxpool.Pool) *TeacherRepository {
	return &TeacherRepository{db: db}
}

// Create inserts a new teacher profile and fills in its generated ID
func (r *TeacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	query := `
		INSERT INTO teachers (user_id, first_name, last_name, middle_name, position)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		teacher.UserID, teacher.FirstName, teacher.LastName,
		teacher.MiddleName, teacher.Position,
	).Scan(&teacher.ID)
	if err != nil {
		return fmt.Errorf("error creating teacher: %w", err)
	}

	return nil
}

// GetByID retrieves a teacher by ID together with its account
func (r *TeacherRepository) GetByID(ctx context.Context, id int64) (*models.Teacher, error) {
	query := `
		SELECT t.id, t.user_id, t.first_name, t.last_name, t.middle_name, t.position,
		       u.id, u.login, u.email, u.role
		FROM teachers t
		JOIN users u ON u.id = t.user_id
		WHERE t.id = $1
	`

	var t models.Teacher
	var u models.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.UserID, &t.FirstName, &t.LastName, &t.MiddleName, &t.Position,
		&u.ID, &u.Login, &u.Email, &u.Role,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTeacherNotFound
		}
		return nil, fmt.Errorf("error retrieving teacher: %w", err)
	}
	t.User = &u

	return &t, nil
}

// GetAll retrieves all teachers with their account email and role
func (r *TeacherRepository) GetAll(ctx context.Context) ([]*models.Teacher, error) {
	query := `
		SELECT t.id, t.user_id, t.first_name, t.last_name, t.middle_name, t.position,
		       u.id, u.login, u.email, u.role
		FROM teachers t
		JOIN users u ON u.id = t.user_id
		ORDER BY t.last_name, t.first_name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing teachers: %w", err)
	}
	defer rows.Close()

	var teachers []*models.Teacher
	for rows.Next() {
		var t models.Teacher
		var u models.User
		if err := rows.Scan(
			&t.ID, &t.UserID, &t.FirstName, &t.LastName, &t.MiddleName, &t.Position,
			&u.ID, &u.Login, &u.Email, &u.Role,
		); err != nil {
			return nil, fmt.Errorf("error scanning teacher row: %w", err)
		}
		t.User = &u
		teachers = append(teachers, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return teachers, nil
}

// ListNames retrieves id and name parts of every teacher, for pick lists
func (r *TeacherRepository) ListNames(ctx context.Context) ([]*models.Teacher, error) {
	query := `
		SELECT id, first_name, last_name, middle_name
		FROM teachers
		ORDER BY last_name, first_name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing teacher names: %w", err)
	}
	defer rows.Close()

	var teachers []*models.Teacher
	for rows.Next() {
		var t models.Teacher
		if err := rows.Scan(&t.ID, &t.FirstName, &t.LastName, &t.MiddleName); err != nil {
			return nil, fmt.Errorf("error scanning teacher name row: %w", err)
		}
		teachers = append(teachers, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return teachers, nil
}

// Exists checks whether a teacher exists by ID
func (r *TeacherRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM teachers WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking teacher existence: %w", err)
	}
	return exists, nil
}

// Update replaces the mutable fields of a teacher profile
func (r *TeacherRepository) Update(ctx context.Context, teacher *models.Teacher) error {
	query := `
		UPDATE teachers
		SET first_name = $1, last_name = $2, middle_name = $3, position = $4
		WHERE id = $5
	`

	cmdTag, err := r.db.Exec(ctx, query,
		teacher.FirstName, teacher.LastName, teacher.MiddleName,
		teacher.Position, teacher.ID)
	if err != nil {
		return fmt.Errorf("error updating teacher: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTeacherNotFound
	}

	return nil
}

// Delete removes a teacher profile
func (r *TeacherRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM teachers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting teacher: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTeacherNotFound
	}
	return nil
}
