package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository       *UserRepository
	TokenRepository      *TokenRepository
	StudentRepository    *StudentRepository
	TeacherRepository    *TeacherRepository
	DepartmentRepository *DepartmentRepository
	LevelRepository      *LevelRepository
	AwardRepository      *AwardRepository
	EventRepository      *EventRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(db),
		TokenRepository:      NewTokenRepository(db),
		StudentRepository:    NewStudentRepository(db),
		TeacherRepository:    NewTeacherRepository(db),
		DepartmentRepository: NewDepartmentRepository(db),
		LevelRepository:      NewLevelRepository(db),
		AwardRepository:      NewAwardRepository(db),
		EventRepository:      NewEventRepository(db),
	}
}
