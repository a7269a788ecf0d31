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

// AwardRepository handles database operations for awards and the award
// reference tables (types and degrees)
type AwardRepository struct {
	db *pgxpool.Pool
}

// NewAwardRepository creates a new AwardRepository
func NewAwardRepository(db *pgxpool.Pool) *AwardRepository {
	return &AwardRepository{db: db}
}

// Create inserts a new award and fills in its generated ID
func (r *AwardRepository) Create(ctx context.Context, award *models.Award) error {
	query := `
		INSERT INTO awards (student_id, department_id, group_id, event_name,
		                    award_type_id, award_degree_id, level_id, file_path)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		award.StudentID, award.DepartmentID, award.GroupID, award.EventName,
		award.AwardTypeID, award.AwardDegreeID, award.LevelID, award.FilePath,
	).Scan(&award.ID)
	if err != nil {
		return fmt.Errorf("error creating award: %w", err)
	}

	return nil
}

const awardExpandedSelect = `
	SELECT a.id, a.student_id, a.department_id, a.group_id, a.event_name,
	       a.award_type_id, a.award_degree_id, a.level_id, a.file_path,
	       s.first_name, s.last_name, s.middle_name,
	       d.name, g.name,
	       at.name, ad.name, l.level_name
	FROM awards a
	JOIN students s ON s.id = a.student_id
	JOIN departments d ON d.id = a.department_id
	JOIN groups g ON g.id = a.group_id
	JOIN award_types at ON at.id = a.award_type_id
	LEFT JOIN award_degrees ad ON ad.id = a.award_degree_id
	JOIN levels l ON l.id = a.level_id
`

func scanAwardExpanded(row pgx.Row) (*models.Award, error) {
	var a models.Award
	var student models.Student
	var dept models.Department
	var group models.Group
	var awardType models.AwardType
	var degreeName *string
	var level models.Level

	err := row.Scan(
		&a.ID, &a.StudentID, &a.DepartmentID, &a.GroupID, &a.EventName,
		&a.AwardTypeID, &a.AwardDegreeID, &a.LevelID, &a.FilePath,
		&student.FirstName, &student.LastName, &student.MiddleName,
		&dept.Name, &group.Name,
		&awardType.Name, &degreeName, &level.LevelName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error scanning award row: %w", err)
	}

	student.ID = a.StudentID
	dept.ID = a.DepartmentID
	group.ID = a.GroupID
	awardType.ID = a.AwardTypeID
	level.ID = a.LevelID

	a.Student = &student
	a.Department = &dept
	a.Group = &group
	a.AwardType = &awardType
	a.Level = &level
	if a.AwardDegreeID != nil && degreeName != nil {
		a.AwardDegree = &models.AwardDegree{
			ID:          *a.AwardDegreeID,
			Name:        *degreeName,
			AwardTypeID: a.AwardTypeID,
		}
	}

	return &a, nil
}

// GetByID retrieves a single award with every reference expanded
func (r *AwardRepository) GetByID(ctx context.Context, id int64) (*models.Award, error) {
	return scanAwardExpanded(r.db.QueryRow(ctx, awardExpandedSelect+` WHERE a.id = $1`, id))
}

// GetByStudentID retrieves all awards of a student with every reference
// expanded, newest first
func (r *AwardRepository) GetByStudentID(ctx context.Context, studentID int64) ([]*models.Award, error) {
	rows, err := r.db.Query(ctx, awardExpandedSelect+` WHERE a.student_id = $1 ORDER BY a.id DESC`, studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing student awards: %w", err)
	}
	defer rows.Close()

	var awards []*models.Award
	for rows.Next() {
		award, err := scanAwardExpanded(rows)
		if err != nil {
			return nil, err
		}
		awards = append(awards, award)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return awards, nil
}

// GetAllTypes retrieves all award types
func (r *AwardRepository) GetAllTypes(ctx context.Context) ([]*models.AwardType, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM award_types ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("error listing award types: %w", err)
	}
	defer rows.Close()

	var types []*models.AwardType
	for rows.Next() {
		var awardType models.AwardType
		if err := rows.Scan(&awardType.ID, &awardType.Name); err != nil {
			return nil, fmt.Errorf("error scanning award type row: %w", err)
		}
		types = append(types, &awardType)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return types, nil
}

// TypeExists checks whether an award type exists by ID
func (r *AwardRepository) TypeExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM award_types WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking award type existence: %w", err)
	}
	return exists, nil
}

// GetDegreeByID retrieves an award degree by ID
func (r *AwardRepository) GetDegreeByID(ctx context.Context, id int64) (*models.AwardDegree, error) {
	var degree models.AwardDegree
	err := r.db.QueryRow(ctx,
		`SELECT id, name, award_type_id FROM award_degrees WHERE id = $1`, id,
	).Scan(&degree.ID, &degree.Name, &degree.AwardTypeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAwardDegreeNotFound
		}
		return nil, fmt.Errorf("error retrieving award degree: %w", err)
	}

	return &degree, nil
}

// GetDegreesWithValidType retrieves degrees whose parent award type still
// exists, skipping orphaned rows
func (r *AwardRepository) GetDegreesWithValidType(ctx context.Context) ([]*models.AwardDegree, error) {
	query := `
		SELECT ad.id, ad.name, ad.award_type_id
		FROM award_degrees ad
		JOIN award_types at ON at.id = ad.award_type_id
		ORDER BY ad.id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing award degrees: %w", err)
	}
	defer rows.Close()

	var degrees []*models.AwardDegree
	for rows.Next() {
		var degree models.AwardDegree
		if err := rows.Scan(&degree.ID, &degree.Name, &degree.AwardTypeID); err != nil {
			return nil, fmt.Errorf("error scanning award degree row: %w", err)
		}
		degrees = append(degrees, &degree)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return degrees, nil
}
