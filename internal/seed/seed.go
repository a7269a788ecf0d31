package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/dkuznetsov/awardhub/internal/app/models"
	appRepos "github.com/dkuznetsov/awardhub/internal/app/repositories"
	"github.com/dkuznetsov/awardhub/internal/pkg/auth"
)

const (
	defaultAdminLogin    = "admin"
	defaultAdminEmail    = "admin@awardhub.local"
	defaultAdminPassword = "Admin123!"
)

var defaultLevels = []string{
	"Institutional",
	"City",
	"Regional",
	"National",
	"International",
}

// award type -> degrees
var defaultAwardTypes = map[string][]string{
	"Olympiad":    {"1st place", "2nd place", "3rd place"},
	"Competition": {"Winner", "Laureate", "Diploma"},
	"Conference":  {"Best report", "Participant"},
	"Certificate": nil,
}

var defaultDepartments = map[string][]string{
	"Computer Science": {"CS-101", "CS-102", "CS-201"},
	"Economics":        {"EC-101", "EC-201"},
	"Design":           {"DS-101"},
}

// CreateDefaultData populates reference tables (levels, award types and
// degrees, departments with their groups) and ensures a default admin
// account exists. Safe to run on every startup.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (levels, award types, departments)...")
	var finalErr error

	for _, name := range defaultLevels {
		if err := insertIfMissing(ctx, dbPool,
			`INSERT INTO levels (level_name)
			 SELECT $1 WHERE NOT EXISTS (SELECT 1 FROM levels WHERE level_name = $1)`, name); err != nil {
			lgr.Error().Err(err).Str("level", name).Msg("Error seeding level")
			finalErr = errors.Join(finalErr, err)
		}
	}

	for typeName, degrees := range defaultAwardTypes {
		if err := insertIfMissing(ctx, dbPool,
			`INSERT INTO award_types (name)
			 SELECT $1 WHERE NOT EXISTS (SELECT 1 FROM award_types WHERE name = $1)`, typeName); err != nil {
			lgr.Error().Err(err).Str("awardType", typeName).Msg("Error seeding award type")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		for _, degree := range degrees {
			err := insertIfMissing(ctx, dbPool,
				`INSERT INTO award_degrees (name, award_type_id)
				 SELECT $1, t.id FROM award_types t
				 WHERE t.name = $2
				   AND NOT EXISTS (
					SELECT 1 FROM award_degrees d WHERE d.name = $1 AND d.award_type_id = t.id)`,
				degree, typeName)
			if err != nil {
				lgr.Error().Err(err).Str("degree", degree).Msg("Error seeding award degree")
				finalErr = errors.Join(finalErr, err)
			}
		}
	}

	for deptName, groups := range defaultDepartments {
		if err := insertIfMissing(ctx, dbPool,
			`INSERT INTO departments (name)
			 SELECT $1 WHERE NOT EXISTS (SELECT 1 FROM departments WHERE name = $1)`, deptName); err != nil {
			lgr.Error().Err(err).Str("department", deptName).Msg("Error seeding department")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		for _, group := range groups {
			err := insertIfMissing(ctx, dbPool,
				`INSERT INTO groups (name, department_id)
				 SELECT $1, d.id FROM departments d
				 WHERE d.name = $2
				   AND NOT EXISTS (
					SELECT 1 FROM groups g WHERE g.name = $1 AND g.department_id = d.id)`,
				group, deptName)
			if err != nil {
				lgr.Error().Err(err).Str("group", group).Msg("Error seeding group")
				finalErr = errors.Join(finalErr, err)
			}
		}
	}

	if err := createDefaultAdmin(ctx, dbPool, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	lgr.Info().Msg("Default data check/creation finished.")
	return finalErr
}

func createDefaultAdmin(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	exists, err := userRepo.LoginExists(ctx, defaultAdminLogin, 0)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if admin user exists")
		return err
	}
	if exists {
		lgr.Info().Msg("Admin user already exists, skipping creation")
		return nil
	}

	lgr.Info().Msg("Creating default admin user...")
	hashedPassword, err := auth.HashPassword(defaultAdminPassword)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing admin password")
		return err
	}

	admin := &appModels.User{
		Login:    defaultAdminLogin,
		Email:    defaultAdminEmail,
		Password: hashedPassword,
		Role:     appModels.RoleAdmin,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		lgr.Error().Err(err).Msg("Error creating admin user")
		return err
	}

	lgr.Info().Int64("adminID", admin.ID).Msg("Default admin user created successfully")
	return nil
}

func insertIfMissing(ctx context.Context, dbPool *pgxpool.Pool, query string, args ...any) error {
	_, err := dbPool.Exec(ctx, query, args...)
	return err
}
