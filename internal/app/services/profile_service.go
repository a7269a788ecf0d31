package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/dkuznetsov/awardhub/internal/app/models"
	"github.com/dkuznetsov/awardhub/internal/app/models/dto"
	"github.com/dkuznetsov/awardhub/internal/pkg/apperrors"
	"github.com/dkuznetsov/awardhub/internal/pkg/auth"
	"github.com/dkuznetsov/awardhub/internal/pkg/filestorage"
	"github.com/dkuznetsov/awardhub/internal/pkg/validation"
)

// ProfileUserRepository is the account access the profile service needs
type ProfileUserRepository interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	LoginExists(ctx context.Context, login string, excludeUserID int64) (bool, error)
	EmailExists(ctx context.Context, email string, excludeUserID int64) (bool, error)
	UpdateCredentials(ctx context.Context, userID int64, login, email string) error
	UpdatePassword(ctx context.Context, userID int64, hashedPassword string) error
	SetStudentID(ctx context.Context, userID int64, studentID *int64) error
}

// ProfileStudentRepository is the student access the profile service needs
type ProfileStudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByUserID(ctx context.Context, userID int64) (*models.Student, error)
	Update(ctx context.Context, student *models.Student) error
	UpdateAvatar(ctx context.Context, studentID int64, avatar *string) error
}

// ProfileReferenceRepository resolves department and group references
type ProfileReferenceRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Department, error)
	GetAll(ctx context.Context) ([]*models.Department, error)
	GetGroupByID(ctx context.Context, id int64) (*models.Group, error)
	GetGroupsByDepartmentID(ctx context.Context, departmentID int64) ([]*models.Group, error)
}

// ProfileService implements student self-service profile management
type ProfileService struct {
	userRepo    ProfileUserRepository
	studentRepo ProfileStudentRepository
	deptRepo    ProfileReferenceRepository
	avatars     filestorage.FileStorage
	logger      zerolog.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(
	userRepo ProfileUserRepository,
	studentRepo ProfileStudentRepository,
	deptRepo ProfileReferenceRepository,
	avatars filestorage.FileStorage,
	logger zerolog.Logger,
) *ProfileService {
	return &ProfileService{
		userRepo:    userRepo,
		studentRepo: studentRepo,
		deptRepo:    deptRepo,
		avatars:     avatars,
		logger:      logger,
	}
}

const birthDateLayout = "2006-01-02"

// GetProfile returns the profile of an account. When no profile exists yet
// the response is an empty shell prefilled from the account, marked IsNewUser.
func (s *ProfileService) GetProfile(ctx context.Context, userID int64) (*dto.ProfileResponse, error) {
	student, err := s.studentRepo.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, err
		}

		user, userErr := s.userRepo.GetByID(ctx, userID)
		if userErr != nil {
			return nil, userErr
		}
		return &dto.ProfileResponse{
			Success:   true,
			IsNewUser: true,
			Data: dto.ProfileData{
				Login:         user.Login,
				Email:         user.Email,
				AdmissionYear: time.Now().Year(),
			},
		}, nil
	}

	return &dto.ProfileResponse{
		Success: true,
		Data:    studentToProfileData(student),
	}, nil
}

// CreateProfile creates the one-time student profile of an account and syncs
// login/email back onto it. A saved avatar is removed again when any later
// step fails.
func (s *ProfileService) CreateProfile(ctx context.Context, userID int64, form *dto.ProfileForm, avatar *multipart.FileHeader) (*dto.ProfileResponse, error) {
	if _, err := s.studentRepo.GetByUserID(ctx, userID); err == nil {
		return nil, apperrors.ErrProfileAlreadyExists
	} else if !errors.Is(err, apperrors.ErrStudentNotFound) {
		return nil, err
	}

	student, err := s.buildStudent(ctx, userID, form)
	if err != nil {
		return nil, err
	}

	var avatarPath *string
	if avatar != nil {
		if err := filestorage.ValidateAvatar(avatar); err != nil {
			return nil, err
		}
		path, err := s.avatars.Save(avatar)
		if err != nil {
			return nil, err
		}
		avatarPath = &path
	}
	student.Avatar = avatarPath

	if err := s.persistNewProfile(ctx, userID, student, form); err != nil {
		if avatarPath != nil {
			if delErr := s.avatars.Delete(*avatarPath); delErr != nil {
				s.logger.Error().Err(delErr).Str("avatar", *avatarPath).Msg("Failed to remove avatar after profile rollback")
			}
		}
		return nil, err
	}

	created, err := s.studentRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", userID).Int64("studentID", created.ID).Msg("Student profile created")

	return &dto.ProfileResponse{
		Success: true,
		Message: "Profile created",
		Data:    studentToProfileData(created),
	}, nil
}

func (s *ProfileService) persistNewProfile(ctx context.Context, userID int64, student *models.Student, form *dto.ProfileForm) error {
	if err := s.studentRepo.Create(ctx, student); err != nil {
		return err
	}
	if err := s.userRepo.UpdateCredentials(ctx, userID, student.Login, student.Email); err != nil {
		return err
	}
	if err := s.userRepo.SetStudentID(ctx, userID, &student.ID); err != nil {
		return err
	}
	return nil
}

// UpdateProfile updates an existing profile. A password change is accepted
// only when the supplied old password matches.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID int64, form *dto.ProfileForm, avatar *multipart.FileHeader) (*dto.ProfileResponse, error) {
	existing, err := s.studentRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	student, err := s.buildStudent(ctx, userID, form)
	if err != nil {
		return nil, err
	}
	student.ID = existing.ID
	student.Avatar = existing.Avatar

	if form.NewPassword != "" {
		user, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if !auth.CheckPassword(user.Password, form.OldPassword) {
			return nil, apperrors.ErrWrongOldPassword
		}
		hashed, err := auth.HashPassword(form.NewPassword)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		if err := s.userRepo.UpdatePassword(ctx, userID, hashed); err != nil {
			return nil, err
		}
	}

	if avatar != nil {
		if err := filestorage.ValidateAvatar(avatar); err != nil {
			return nil, err
		}
		path, err := s.avatars.Save(avatar)
		if err != nil {
			return nil, err
		}
		if existing.Avatar != nil {
			if delErr := s.avatars.Delete(*existing.Avatar); delErr != nil {
				s.logger.Warn().Err(delErr).Str("avatar", *existing.Avatar).Msg("Failed to delete replaced avatar")
			}
		}
		student.Avatar = &path
		if err := s.studentRepo.UpdateAvatar(ctx, student.ID, student.Avatar); err != nil {
			return nil, err
		}
	}

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}
	if err := s.userRepo.UpdateCredentials(ctx, userID, student.Login, student.Email); err != nil {
		return nil, err
	}

	updated, err := s.studentRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &dto.ProfileResponse{
		Success: true,
		Message: "Profile updated",
		Data:    studentToProfileData(updated),
	}, nil
}

// UpdateAvatar replaces or removes the avatar of the account's profile.
// Exactly one of remove or a new file must be supplied.
func (s *ProfileService) UpdateAvatar(ctx context.Context, userID int64, remove bool, avatar *multipart.FileHeader) (*string, error) {
	student, err := s.studentRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	switch {
	case remove:
		if student.Avatar != nil {
			if err := s.avatars.Delete(*student.Avatar); err != nil {
				s.logger.Warn().Err(err).Str("avatar", *student.Avatar).Msg("Failed to delete removed avatar")
			}
		}
		if err := s.studentRepo.UpdateAvatar(ctx, student.ID, nil); err != nil {
			return nil, err
		}
		return nil, nil

	case avatar != nil:
		if err := filestorage.ValidateAvatar(avatar); err != nil {
			return nil, err
		}
		path, err := s.avatars.Save(avatar)
		if err != nil {
			return nil, err
		}
		if student.Avatar != nil {
			if delErr := s.avatars.Delete(*student.Avatar); delErr != nil {
				s.logger.Warn().Err(delErr).Str("avatar", *student.Avatar).Msg("Failed to delete replaced avatar")
			}
		}
		if err := s.studentRepo.UpdateAvatar(ctx, student.ID, &path); err != nil {
			return nil, err
		}
		return &path, nil

	default:
		return nil, apperrors.NewBadRequestError("either a new image or removeAvatar=true is required")
	}
}

// ListDepartments returns the department reference list
func (s *ProfileService) ListDepartments(ctx context.Context) ([]*models.Department, error) {
	return s.deptRepo.GetAll(ctx)
}

// ListGroups returns the groups of one department
func (s *ProfileService) ListGroups(ctx context.Context, departmentID int64) ([]*models.Group, error) {
	if departmentID <= 0 {
		return nil, apperrors.NewBadRequestError("department_id is required")
	}
	return s.deptRepo.GetGroupsByDepartmentID(ctx, departmentID)
}

// buildStudent validates the form and resolves its references into a
// student model without an ID.
func (s *ProfileService) buildStudent(ctx context.Context, userID int64, form *dto.ProfileForm) (*models.Student, error) {
	firstName := strings.TrimSpace(form.FirstName)
	lastName := strings.TrimSpace(form.LastName)
	middleName := strings.TrimSpace(form.MiddleName)

	for _, name := range []string{firstName, lastName} {
		if !validation.IsValidName(name) {
			return nil, &apperrors.CustomError{
				Err:     apperrors.ErrValidationFailed,
				Message: "names may only contain letters, spaces and hyphens",
			}
		}
	}
	if middleName != "" && !validation.IsValidName(middleName) {
		return nil, &apperrors.CustomError{
			Err:     apperrors.ErrValidationFailed,
			Message: "names may only contain letters, spaces and hyphens",
		}
	}
	if !validation.IsValidAdmissionYear(form.AdmissionYear) {
		return nil, &apperrors.CustomError{
			Err:     apperrors.ErrValidationFailed,
			Message: fmt.Sprintf("admission year must be between %d and %d", validation.AdmissionYearMin, time.Now().Year()),
		}
	}

	birthDate, err := time.Parse(birthDateLayout, form.BirthDate)
	if err != nil {
		return nil, &apperrors.CustomError{
			Err:     apperrors.ErrValidationFailed,
			Message: "birth_date must be formatted as YYYY-MM-DD",
		}
	}

	login := strings.TrimSpace(form.Login)
	email := strings.ToLower(strings.TrimSpace(form.Email))
	if !validation.IsValidLogin(login) {
		return nil, &apperrors.CustomError{
			Err:     apperrors.ErrValidationFailed,
			Message: "login must be 3-50 characters of letters, digits, '-' or '_'",
		}
	}
	if !validation.IsValidEmail(email) {
		return nil, &apperrors.CustomError{
			Err:     apperrors.ErrValidationFailed,
			Message: "invalid email format",
		}
	}

	if exists, err := s.userRepo.LoginExists(ctx, login, userID); err != nil {
		return nil, err
	} else if exists {
		return nil, apperrors.ErrLoginAlreadyExists
	}
	if exists, err := s.userRepo.EmailExists(ctx, email, userID); err != nil {
		return nil, err
	} else if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	if _, err := s.deptRepo.GetByID(ctx, form.DepartmentID); err != nil {
		return nil, err
	}
	group, err := s.deptRepo.GetGroupByID(ctx, form.GroupID)
	if err != nil {
		return nil, err
	}
	if group.DepartmentID != form.DepartmentID {
		return nil, apperrors.ErrGroupNotInDepartment
	}

	return &models.Student{
		UserID:        userID,
		FirstName:     firstName,
		LastName:      lastName,
		MiddleName:    middleName,
		BirthDate:     birthDate,
		DepartmentID:  form.DepartmentID,
		GroupID:       form.GroupID,
		Login:         login,
		Email:         email,
		AdmissionYear: form.AdmissionYear,
	}, nil
}

func studentToProfileData(student *models.Student) dto.ProfileData {
	return dto.ProfileData{
		FirstName:     student.FirstName,
		LastName:      student.LastName,
		MiddleName:    student.MiddleName,
		BirthDate:     student.BirthDate.Format(birthDateLayout),
		Department:    student.Department,
		Group:         student.Group,
		Login:         student.Login,
		Email:         student.Email,
		AdmissionYear: student.AdmissionYear,
		Avatar:        student.Avatar,
	}
}
