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

// LevelRepository handles database operations for achievement levels
type LevelRepository struct {
	db *pgxpool.Pool
}

// NewLevelRepository creates a new LevelRepository
func NewLevelRepository(db *pgxpool.Pool) *LevelRepository {
	return &LevelRepository{db: db}
}

// GetAll retrieves all levels
func (r *LevelRepository) GetAll(ctx context.Context) ([]*models.Level, error) {
	rows, err := r.db.Query(ctx, `SELECT id, level_name FROM levels ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("error listing levels: %w", err)
	}
	defer rows.Close()

	var levels []*models.Level
	for rows.Next() {
		var level models.Level
		if err := rows.Scan(&level.ID, &level.LevelName); err != nil {
			return nil, fmt.Errorf("error scanning level row: %w", err)
		}
		levels = append(levels, &level)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return levels, nil
}

// GetByID retrieves a level by ID
func (r *LevelRepository) GetByID(ctx context.Context, id int64) (*models.Level, error) {
	var level models.Level
	err := r.db.QueryRow(ctx,
		`SELECT id, level_name FROM levels WHERE id = $1`, id,
	).Scan(&level.ID, &level.LevelName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLevelNotFound
		}
		return nil, fmt.Errorf("error retrieving level: %w", err)
	}

	return &level, nil
}

// Exists checks whether a level exists by ID
func (r *LevelRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM levels WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking level existence: %w", err)
	}
	return exists, nil
}
