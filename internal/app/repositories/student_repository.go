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

// StudentRepository handles student profile database operations
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{db: db}
}

const studentSelect = `
	SELECT s.id, s.user_id, s.first_name, s.last_name, s.middle_name,
	       s.birth_date, s.department_id, s.group_id, s.login, s.email,
	       s.admission_year, s.avatar,
	       d.id, d.name, g.id, g.name, g.department_id
	FROM students s
	JOIN departments d ON d.id = s.department_id
	JOIN groups g ON g.id = s.group_id
`

func scanStudent(row pgx.Row) (*models.Student, error) {
	var s models.Student
	var dept models.Department
	var group models.Group
	err := row.Scan(
		&s.ID, &s.UserID, &s.FirstName, &s.LastName, &s.MiddleName,
		&s.BirthDate, &s.DepartmentID, &s.GroupID, &s.Login, &s.Email,
		&s.AdmissionYear, &s.Avatar,
		&dept.ID, &dept.Name, &group.ID, &group.Name, &group.DepartmentID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error scanning student row: %w", err)
	}
	s.Department = &dept
	s.Group = &group
	return &s, nil
}

// Create inserts a new student profile and fills in its generated ID
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (user_id, first_name, last_name, middle_name,
		                      birth_date, department_id, group_id, login,
		                      email, admission_year, avatar)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		student.UserID, student.FirstName, student.LastName, student.MiddleName,
		student.BirthDate, student.DepartmentID, student.GroupID, student.Login,
		student.Email, student.AdmissionYear, student.Avatar,
	).Scan(&student.ID)
	if err != nil {
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetByID retrieves a student by ID with department and group expanded
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	return scanStudent(r.db.QueryRow(ctx, studentSelect+` WHERE s.id = $1`, id))
}

// GetByUserID retrieves the student profile linked to an account
func (r *StudentRepository) GetByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	return scanStudent(r.db.QueryRow(ctx, studentSelect+` WHERE s.user_id = $1`, userID))
}

// GetAll retrieves the full student roster with display labels
func (r *StudentRepository) GetAll(ctx context.Context) ([]*models.Student, error) {
	rows, err := r.db.Query(ctx, studentSelect+` ORDER BY s.last_name, s.first_name`)
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// ListNames retrieves id and name parts of every student, for pick lists
func (r *StudentRepository) ListNames(ctx context.Context) ([]*models.Student, error) {
	query := `
		SELECT id, first_name, last_name, middle_name
		FROM students
		ORDER BY last_name, first_name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing student names: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		var s models.Student
		if err := rows.Scan(&s.ID, &s.FirstName, &s.LastName, &s.MiddleName); err != nil {
			return nil, fmt.Errorf("error scanning student name row: %w", err)
		}
		students = append(students, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// Exists checks whether a student exists by ID
func (r *StudentRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM students WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking student existence: %w", err)
	}
	return exists, nil
}

// Update replaces the mutable fields of a student profile
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	query := `
		UPDATE students
		SET first_name = $1, last_name = $2, middle_name = $3, birth_date = $4,
		    department_id = $5, group_id = $6, login = $7, email = $8,
		    admission_year = $9
		WHERE id = $10
	`

	cmdTag, err := r.db.Exec(ctx, query,
		student.FirstName, student.LastName, student.MiddleName, student.BirthDate,
		student.DepartmentID, student.GroupID, student.Login, student.Email,
		student.AdmissionYear, student.ID)
	if err != nil {
		return fmt.Errorf("error updating student: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// UpdateAvatar sets or clears a student's avatar path
func (r *StudentRepository) UpdateAvatar(ctx context.Context, studentID int64, avatar *string) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE students SET avatar = $1 WHERE id = $2`, avatar, studentID)
	if err != nil {
		return fmt.Errorf("error updating avatar: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// Delete removes a student profile
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}
