package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/dkuznetsov/awardhub/internal/app/models"
	"github.com/dkuznetsov/awardhub/internal/app/models/dto"
	"github.com/dkuznetsov/awardhub/internal/pkg/apperrors"
	"github.com/dkuznetsov/awardhub/internal/pkg/auth"
	"github.com/dkuznetsov/awardhub/internal/pkg/credentials"
	"github.com/dkuznetsov/awardhub/internal/pkg/email"
	"github.com/dkuznetsov/awardhub/internal/pkg/validation"
)

// RosterUserRepository is the account access the roster service needs
type RosterUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	EmailExists(ctx context.Context, email string, excludeUserID int64) (bool, error)
	UpdateCredentials(ctx context.Context, userID int64, login, email string) error
	SetStudentID(ctx context.Context, userID int64, studentID *int64) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// RosterStudentRepository is the student access the roster service needs
type RosterStudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetAll(ctx context.Context) ([]*models.Student, error)
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id int64) error
}

// RosterTeacherRepository is the teacher access the roster service needs
type RosterTeacherRepository interface {
	Create(ctx context.Context, teacher *models.Teacher) error
	GetByID(ctx context.Context, id int64) (*models.Teacher, error)
	GetAll(ctx context.Context) ([]*models.Teacher, error)
	Update(ctx context.Context, teacher *models.Teacher) error
	Delete(ctx context.Context, id int64) error
}

// RosterReferenceRepository resolves department and group references
type RosterReferenceRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Department, error)
	GetAll(ctx context.Context) ([]*models.Department, error)
	GetGroupByID(ctx context.Context, id int64) (*models.Group, error)
	GetGroupsByDepartmentID(ctx context.Context, departmentID int64) ([]*models.Group, error)
}

// RosterService implements admin bulk provisioning of students and teachers.
// Accounts are created with generated credentials which are mailed to the
// subject; the admin mailbox receives a notification.
type RosterService struct {
	userRepo    RosterUserRepository
	studentRepo RosterStudentRepository
	teacherRepo RosterTeacherRepository
	deptRepo    RosterReferenceRepository
	mailer      email.EmailService
	logger      zerolog.Logger
}

// NewRosterService creates a new RosterService
func NewRosterService(
	userRepo RosterUserRepository,
	studentRepo RosterStudentRepository,
	teacherRepo RosterTeacherRepository,
	deptRepo RosterReferenceRepository,
	mailer email.EmailService,
	logger zerolog.Logger,
) *RosterService {
	return &RosterService{
		userRepo:    userRepo,
		studentRepo: studentRepo,
		teacherRepo: teacherRepo,
		deptRepo:    deptRepo,
		mailer:      mailer,
		logger:      logger,
	}
}

// CreateStudent provisions a student together with its account. Credential
// mail is sent in the background and never rolls back the creation.
func (s *RosterService) CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*dto.StudentRosterEntry, error) {
	reqEmail := strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.checkRosterNames(req.LastName, req.FirstName, req.MiddleName); err != nil {
		return nil, err
	}
	if !validation.IsValidEmail(reqEmail) {
		return nil, &apperrors.CustomError{
			Err:     apperrors.ErrValidationFailed,
			Message: "invalid email format",
		}
	}

	department, err := s.deptRepo.GetByID(ctx, req.DepartmentID)
	if err != nil {
		return nil, err
	}
	group, err := s.deptRepo.GetGroupByID(ctx, req.GroupID)
	if err != nil {
		return nil, err
	}
	if group.DepartmentID != department.ID {
		return nil, apperrors.ErrGroupNotInDepartment
	}

	if exists, err := s.userRepo.EmailExists(ctx, reqEmail, 0); err != nil {
		return nil, err
	} else if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	login, password, hashed, err := s.generateCredentials("student")
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Login:    login,
		Email:    reqEmail,
		Password: hashed,
		Role:     models.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	student := &models.Student{
		UserID:        user.ID,
		FirstName:     strings.TrimSpace(req.FirstName),
		LastName:      strings.TrimSpace(req.LastName),
		MiddleName:    strings.TrimSpace(req.MiddleName),
		BirthDate:     time.Now(),
		DepartmentID:  department.ID,
		GroupID:       group.ID,
		Login:         login,
		Email:         reqEmail,
		AdmissionYear: time.Now().Year(),
	}
	if err := s.studentRepo.Create(ctx, student); err != nil {
		if delErr := s.userRepo.Delete(ctx, user.ID); delErr != nil {
			s.logger.Error().Err(delErr).Int64("userID", user.ID).Msg("Failed to remove account after student rollback")
		}
		return nil, err
	}
	if err := s.userRepo.SetStudentID(ctx, user.ID, &student.ID); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("studentID", student.ID).Str("login", login).Msg("Student provisioned")

	go s.notifyStudentCreated(student.FullName(), department.Name, group.Name, reqEmail, login, password)

	return &dto.StudentRosterEntry{
		ID:             student.ID,
		LastName:       student.LastName,
		FirstName:      student.FirstName,
		MiddleName:     student.MiddleName,
		DepartmentID:   department.ID,
		DepartmentName: department.Name,
		GroupID:        group.ID,
		GroupName:      group.Name,
		Email:          reqEmail,
		IsStudent:      true,
	}, nil
}

// ListStudents returns the full student roster with display labels
func (s *RosterService) ListStudents(ctx context.Context) ([]*dto.StudentRosterEntry, error) {
	students, err := s.studentRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]*dto.StudentRosterEntry, 0, len(students))
	for _, student := range students {
		entry := &dto.StudentRosterEntry{
			ID:           student.ID,
			LastName:     student.LastName,
			FirstName:    student.FirstName,
			MiddleName:   student.MiddleName,
			DepartmentID: student.DepartmentID,
			GroupID:      student.GroupID,
			Email:        student.Email,
			IsStudent:    true,
		}
		if student.Department != nil {
			entry.DepartmentName = student.Department.Name
		}
		if student.Group != nil {
			entry.GroupName = student.Group.Name
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// UpdateStudent updates a roster entry and syncs the account email
func (s *RosterService) UpdateStudent(ctx context.Context, id int64, req *dto.CreateStudentRequest) (*dto.StudentRosterEntry, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	reqEmail := strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.checkRosterNames(req.LastName, req.FirstName, req.MiddleName); err != nil {
		return nil, err
	}
	if !validation.IsValidEmail(reqEmail) {
		return nil, &apperrors.CustomError{
			Err:     apperrors.ErrValidationFailed,
			Message: "invalid email format",
		}
	}

	department, err := s.deptRepo.GetByID(ctx, req.DepartmentID)
	if err != nil {
		return nil, err
	}
	group, err := s.deptRepo.GetGroupByID(ctx, req.GroupID)
	if err != nil {
		return nil, err
	}
	if group.DepartmentID != department.ID {
		return nil, apperrors.ErrGroupNotInDepartment
	}

	if exists, err := s.userRepo.EmailExists(ctx, reqEmail, student.UserID); err != nil {
		return nil, err
	} else if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	student.FirstName = strings.TrimSpace(req.FirstName)
	student.LastName = strings.TrimSpace(req.LastName)
	student.MiddleName = strings.TrimSpace(req.MiddleName)
	student.DepartmentID = department.ID
	student.GroupID = group.ID
	student.Email = reqEmail

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}
	if err := s.userRepo.UpdateCredentials(ctx, student.UserID, student.Login, reqEmail); err != nil {
		return nil, err
	}

	return &dto.StudentRosterEntry{
		ID:             student.ID,
		LastName:       student.LastName,
		FirstName:      student.FirstName,
		MiddleName:     student.MiddleName,
		DepartmentID:   department.ID,
		DepartmentName: department.Name,
		GroupID:        group.ID,
		GroupName:      group.Name,
		Email:          reqEmail,
		IsStudent:      true,
	}, nil
}

// DeleteStudent removes a student and its account
func (s *RosterService) DeleteStudent(ctx context.Context, id int64) error {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	// Unlink first so the account row does not reference a deleted student
	if err := s.userRepo.SetStudentID(ctx, student.UserID, nil); err != nil && !errors.Is(err, apperrors.ErrUserNotFound) {
		return err
	}
	if err := s.studentRepo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, student.UserID); err != nil && !errors.Is(err, apperrors.ErrUserNotFound) {
		return err
	}

	s.logger.Info().Int64("studentID", id).Msg("Student removed from roster")
	return nil
}

// CreateTeacher provisions a teacher together with its account. is_teacher
// selects the teacher role, otherwise the account gets the default role.
func (s *RosterService) CreateTeacher(ctx context.Context, req *dto.CreateTeacherRequest) (*dto.TeacherRosterEntry, error) {
	reqEmail := strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.checkRosterNames(req.LastName, req.FirstName, req.MiddleName); err != nil {
		return nil, err
	}
	if !validation.IsValidEmail(reqEmail) {
		return nil, &apperrors.CustomError{
			Err:     apperrors.ErrValidationFailed,
			Message: "invalid email format",
		}
	}
	if strings.TrimSpace(req.Position) == "" {
		return nil, &apperrors.CustomError{
			Err:     apperrors.ErrValidationFailed,
			Message: "position is required",
		}
	}

	if exists, err := s.userRepo.EmailExists(ctx, reqEmail, 0); err != nil {
		return nil, err
	} else if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	login, password, hashed, err := s.generateCredentials("teacher")
	if err != nil {
		return nil, err
	}

	role := models.RoleUser
	if req.IsTeacher {
		role = models.RoleTeacher
	}
	user := &models.User{
		Login:    login,
		Email:    reqEmail,
		Password: hashed,
		Role:     role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	teacher := &models.Teacher{
		UserID:     user.ID,
		FirstName:  strings.TrimSpace(req.FirstName),
		LastName:   strings.TrimSpace(req.LastName),
		MiddleName: strings.TrimSpace(req.MiddleName),
		Position:   strings.TrimSpace(req.Position),
	}
	if err := s.teacherRepo.Create(ctx, teacher); err != nil {
		if delErr := s.userRepo.Delete(ctx, user.ID); delErr != nil {
			s.logger.Error().Err(delErr).Int64("userID", user.ID).Msg("Failed to remove account after teacher rollback")
		}
		return nil, err
	}

	s.logger.Info().Int64("teacherID", teacher.ID).Str("login", login).Msg("Teacher provisioned")

	fullName := fmt.Sprintf("%s %s %s", teacher.LastName, teacher.FirstName, teacher.MiddleName)
	go s.notifyTeacherCreated(strings.TrimSpace(fullName), teacher.Position, reqEmail, login, password)

	return &dto.TeacherRosterEntry{
		ID:         teacher.ID,
		LastName:   teacher.LastName,
		FirstName:  teacher.FirstName,
		MiddleName: teacher.MiddleName,
		Position:   teacher.Position,
		Email:      reqEmail,
		IsTeacher:  req.IsTeacher,
	}, nil
}

// ListTeachers returns the teacher roster with account email and role
func (s *RosterService) ListTeachers(ctx context.Context) ([]*dto.TeacherRosterEntry, error) {
	teachers, err := s.teacherRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]*dto.TeacherRosterEntry, 0, len(teachers))
	for _, teacher := range teachers {
		entry := &dto.TeacherRosterEntry{
			ID:         teacher.ID,
			LastName:   teacher.LastName,
			FirstName:  teacher.FirstName,
			MiddleName: teacher.MiddleName,
			Position:   teacher.Position,
		}
		if teacher.User != nil {
			entry.Email = teacher.User.Email
			entry.IsTeacher = teacher.User.Role == models.RoleTeacher
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// UpdateTeacher updates a roster entry, the account email and role
func (s *RosterService) UpdateTeacher(ctx context.Context, id int64, req *dto.CreateTeacherRequest) (*dto.TeacherRosterEntry, error) {
	teacher, err := s.teacherRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	reqEmail := strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.checkRosterNames(req.LastName, req.FirstName, req.MiddleName); err != nil {
		return nil, err
	}
	if !validation.IsValidEmail(reqEmail) {
		return nil, &apperrors.CustomError{
			Err:     apperrors.ErrValidationFailed,
			Message: "invalid email format",
		}
	}

	if exists, err := s.userRepo.EmailExists(ctx, reqEmail, teacher.UserID); err != nil {
		return nil, err
	} else if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	teacher.FirstName = strings.TrimSpace(req.FirstName)
	teacher.LastName = strings.TrimSpace(req.LastName)
	teacher.MiddleName = strings.TrimSpace(req.MiddleName)
	teacher.Position = strings.TrimSpace(req.Position)

	if err := s.teacherRepo.Update(ctx, teacher); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, teacher.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.UpdateCredentials(ctx, user.ID, user.Login, reqEmail); err != nil {
		return nil, err
	}

	return &dto.TeacherRosterEntry{
		ID:         teacher.ID,
		LastName:   teacher.LastName,
		FirstName:  teacher.FirstName,
		MiddleName: teacher.MiddleName,
		Position:   teacher.Position,
		Email:      reqEmail,
		IsTeacher:  req.IsTeacher,
	}, nil
}

// DeleteTeacher removes a teacher and its account
func (s *RosterService) DeleteTeacher(ctx context.Context, id int64) error {
	teacher, err := s.teacherRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.teacherRepo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, teacher.UserID); err != nil && !errors.Is(err, apperrors.ErrUserNotFound) {
		return err
	}

	s.logger.Info().Int64("teacherID", id).Msg("Teacher removed from roster")
	return nil
}

// ListDepartments returns the department reference list
func (s *RosterService) ListDepartments(ctx context.Context) ([]*models.Department, error) {
	return s.deptRepo.GetAll(ctx)
}

// ListGroups returns the groups of one department
func (s *RosterService) ListGroups(ctx context.Context, departmentID int64) ([]*models.Group, error) {
	if departmentID <= 0 {
		return nil, apperrors.NewBadRequestError("department_id is required")
	}
	return s.deptRepo.GetGroupsByDepartmentID(ctx, departmentID)
}

func (s *RosterService) generateCredentials(prefix string) (login, password, hashed string, err error) {
	login, err = credentials.GenerateLogin(prefix)
	if err != nil {
		return "", "", "", err
	}
	password, err = credentials.GeneratePassword()
	if err != nil {
		return "", "", "", err
	}
	hashed, err = auth.HashPassword(password)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to hash generated password: %w", err)
	}
	return login, password, hashed, nil
}

func (s *RosterService) notifyStudentCreated(fullName, departmentName, groupName, toEmail, login, password string) {
	if err := s.mailer.SendCredentials(toEmail, login, password); err != nil {
		s.logger.Error().Err(err).Str("email", toEmail).Msg("Failed to mail student credentials")
	}
	if err := s.mailer.SendStudentAddedNotification(fullName, departmentName, groupName, toEmail); err != nil {
		s.logger.Error().Err(err).Msg("Failed to mail student notification")
	}
}

func (s *RosterService) notifyTeacherCreated(fullName, position, toEmail, login, password string) {
	if err := s.mailer.SendCredentials(toEmail, login, password); err != nil {
		s.logger.Error().Err(err).Str("email", toEmail).Msg("Failed to mail teacher credentials")
	}
	if err := s.mailer.SendTeacherAddedNotification(fullName, position, toEmail); err != nil {
		s.logger.Error().Err(err).Msg("Failed to mail teacher notification")
	}
}

func (s *RosterService) checkRosterNames(lastName, firstName, middleName string) error {
	if !validation.IsValidName(strings.TrimSpace(lastName)) || !validation.IsValidName(strings.TrimSpace(firstName)) {
		return &apperrors.CustomError{
			Err:     apperrors.ErrValidationFailed,
			Message: "names may only contain letters, spaces and hyphens",
		}
	}
	if trimmed := strings.TrimSpace(middleName); trimmed != "" && !validation.IsValidName(trimmed) {
		return &apperrors.CustomError{
			Err:     apperrors.ErrValidationFailed,
			Message: "names may only contain letters, spaces and hyphens",
		}
	}
	return nil
}
