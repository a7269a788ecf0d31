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

// DepartmentRepository handles database operations for departments and groups
type DepartmentRepository struct {
	db *pgxpool.Pool
}

// NewDepartmentRepository creates a new department repository
func NewDepartmentRepository(db *pgxpool.Pool) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

// GetAll retrieves all departments
func (r *DepartmentRepository) GetAll(ctx context.Context) ([]*models.Department, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM departments ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("error listing departments: %w", err)
	}
	defer rows.Close()

	var departments []*models.Department
	for rows.Next() {
		var department models.Department
		if err := rows.Scan(&department.ID, &department.Name); err != nil {
			return nil, fmt.Errorf("error scanning department row: %w", err)
		}
		departments = append(departments, &department)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return departments, nil
}

// GetByID retrieves a department by ID
func (r *DepartmentRepository) GetByID(ctx context.Context, id int64) (*models.Department, error) {
	var department models.Department
	err := r.db.QueryRow(ctx,
		`SELECT id, name FROM departments WHERE id = $1`, id,
	).Scan(&department.ID, &department.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("error retrieving department: %w", err)
	}

	return &department, nil
}

// Exists checks whether a department exists by ID
func (r *DepartmentRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM departments WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking department existence: %w", err)
	}
	return exists, nil
}

// GetGroupByID retrieves a group by ID
func (r *DepartmentRepository) GetGroupByID(ctx context.Context, id int64) (*models.Group, error) {
	var group models.Group
	err := r.db.QueryRow(ctx,
		`SELECT id, name, department_id FROM groups WHERE id = $1`, id,
	).Scan(&group.ID, &group.Name, &group.DepartmentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrGroupNotFound
		}
		return nil, fmt.Errorf("error retrieving group: %w", err)
	}

	return &group, nil
}

// GetGroupsByDepartmentID retrieves all groups of a department
func (r *DepartmentRepository) GetGroupsByDepartmentID(ctx context.Context, departmentID int64) ([]*models.Group, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, department_id FROM groups WHERE department_id = $1 ORDER BY name`,
		departmentID)
	if err != nil {
		return nil, fmt.Errorf("error listing groups: %w", err)
	}
	defer rows.Close()

	var groups []*models.Group
	for rows.Next() {
		var group models.Group
		if err := rows.Scan(&group.ID, &group.Name, &group.DepartmentID); err != nil {
			return nil, fmt.Errorf("error scanning group row: %w", err)
		}
		groups = append(groups, &group)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return groups, nil
}

// GroupBelongsToDepartment checks that a group exists and is part of the
// given department
func (r *DepartmentRepository) GroupBelongsToDepartment(ctx context.Context, groupID, departmentID int64) (bool, error) {
	var belongs bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM groups WHERE id = $1 AND department_id = $2)`,
		groupID, departmentID).Scan(&belongs)
	if err != nil {
		return false, fmt.Errorf("error checking group membership: %w", err)
	}
	return belongs, nil
}
