package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/dkuznetsov/awardhub/internal/app/models"
	"github.com/dkuznetsov/awardhub/internal/app/models/dto"
	"github.com/dkuznetsov/awardhub/internal/pkg/apperrors"
	"github.com/dkuznetsov/awardhub/internal/pkg/validation"
)

// AwardStore is the award table access the award service needs
type AwardStore interface {
	Create(ctx context.Context, award *models.Award) error
	GetByID(ctx context.Context, id int64) (*models.Award, error)
	GetByStudentID(ctx context.Context, studentID int64) ([]*models.Award, error)
	GetAllTypes(ctx context.Context) ([]*models.AwardType, error)
	TypeExists(ctx context.Context, id int64) (bool, error)
	GetDegreeByID(ctx context.Context, id int64) (*models.AwardDegree, error)
	GetDegreesWithValidType(ctx context.Context) ([]*models.AwardDegree, error)
}

// AwardStudentRepository is the student access the award service needs
type AwardStudentRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Student, error)
	ListNames(ctx context.Context) ([]*models.Student, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// AwardReferenceRepository resolves department, group and level references
type AwardReferenceRepository interface {
	GetAll(ctx context.Context) ([]*models.Department, error)
	Exists(ctx context.Context, id int64) (bool, error)
	GetGroupsByDepartmentID(ctx context.Context, departmentID int64) ([]*models.Group, error)
	GroupBelongsToDepartment(ctx context.Context, groupID, departmentID int64) (bool, error)
}

// AwardLevelRepository resolves level references
type AwardLevelRepository interface {
	GetAll(ctx context.Context) ([]*models.Level, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// CreateAwardInput is the validated-id award submission. FilePath is the
// already-stored public path of the attachment, if any.
type CreateAwardInput struct {
	StudentID     int64
	DepartmentID  int64
	GroupID       int64
	EventName     string
	AwardTypeID   int64
	AwardDegreeID *int64
	LevelID       int64
	FilePath      *string
}

// AwardService implements award submission and the expanded award reads
type AwardService struct {
	awardRepo         AwardStore
	studentRepo       AwardStudentRepository
	deptRepo          AwardReferenceRepository
	levelRepo         AwardLevelRepository
	strictDegreeCheck bool
	logger            zerolog.Logger
}

// NewAwardService creates a new AwardService. With strictDegreeCheck a
// degree whose parent type differs from the submitted type is rejected;
// otherwise the mismatch is only logged.
func NewAwardService(
	awardRepo AwardStore,
	studentRepo AwardStudentRepository,
	deptRepo AwardReferenceRepository,
	levelRepo AwardLevelRepository,
	strictDegreeCheck bool,
	logger zerolog.Logger,
) *AwardService {
	return &AwardService{
		awardRepo:         awardRepo,
		studentRepo:       studentRepo,
		deptRepo:          deptRepo,
		levelRepo:         levelRepo,
		strictDegreeCheck: strictDegreeCheck,
		logger:            logger,
	}
}

// CreateAward validates every referenced entity, persists the award and
// returns it together with the student's refreshed award list.
func (s *AwardService) CreateAward(ctx context.Context, input *CreateAwardInput) (*dto.CreateAwardResponse, error) {
	for _, id := range []int64{input.StudentID, input.DepartmentID, input.GroupID, input.AwardTypeID, input.LevelID} {
		if !validation.IsValidID(id) {
			return nil, apperrors.NewBadRequestError("identifiers must be positive integers")
		}
	}
	if input.EventName == "" {
		return nil, &apperrors.CustomError{
			Err:     apperrors.ErrValidationFailed,
			Message: "eventName is required",
		}
	}

	if exists, err := s.studentRepo.Exists(ctx, input.StudentID); err != nil {
		return nil, err
	} else if !exists {
		return nil, apperrors.ErrStudentNotFound
	}
	if exists, err := s.deptRepo.Exists(ctx, input.DepartmentID); err != nil {
		return nil, err
	} else if !exists {
		return nil, apperrors.ErrDepartmentNotFound
	}
	if belongs, err := s.deptRepo.GroupBelongsToDepartment(ctx, input.GroupID, input.DepartmentID); err != nil {
		return nil, err
	} else if !belongs {
		return nil, apperrors.ErrGroupNotFound
	}
	if exists, err := s.awardRepo.TypeExists(ctx, input.AwardTypeID); err != nil {
		return nil, err
	} else if !exists {
		return nil, apperrors.ErrAwardTypeNotFound
	}
	if exists, err := s.levelRepo.Exists(ctx, input.LevelID); err != nil {
		return nil, err
	} else if !exists {
		return nil, apperrors.ErrLevelNotFound
	}

	if input.AwardDegreeID != nil {
		if !validation.IsValidID(*input.AwardDegreeID) {
			return nil, apperrors.NewBadRequestError("identifiers must be positive integers")
		}
		degree, err := s.awardRepo.GetDegreeByID(ctx, *input.AwardDegreeID)
		if err != nil {
			return nil, err
		}
		if degree.AwardTypeID != input.AwardTypeID {
			if s.strictDegreeCheck {
				return nil, apperrors.ErrDegreeTypeMismatch
			}
			s.logger.Warn().
				Int64("degreeID", degree.ID).
				Int64("degreeTypeID", degree.AwardTypeID).
				Int64("submittedTypeID", input.AwardTypeID).
				Msg("Award degree does not belong to the submitted type")
		}
	}

	award := &models.Award{
		StudentID:     input.StudentID,
		DepartmentID:  input.DepartmentID,
		GroupID:       input.GroupID,
		EventName:     input.EventName,
		AwardTypeID:   input.AwardTypeID,
		AwardDegreeID: input.AwardDegreeID,
		LevelID:       input.LevelID,
		FilePath:      input.FilePath,
	}
	if err := s.awardRepo.Create(ctx, award); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("awardID", award.ID).Int64("studentID", award.StudentID).Msg("Award recorded")

	created, err := s.awardRepo.GetByID(ctx, award.ID)
	if err != nil {
		return nil, err
	}
	all, err := s.awardRepo.GetByStudentID(ctx, award.StudentID)
	if err != nil {
		return nil, err
	}

	createdView := awardToView(created)
	return &dto.CreateAwardResponse{
		Success: true,
		Message: "Award recorded",
		Award:   &createdView,
		Awards:  awardsToViews(all),
	}, nil
}

// GetStudentAwards returns the expanded awards of one student
func (s *AwardService) GetStudentAwards(ctx context.Context, studentID int64) ([]dto.AwardView, error) {
	if !validation.IsValidID(studentID) {
		return nil, apperrors.NewBadRequestError("identifiers must be positive integers")
	}
	if exists, err := s.studentRepo.Exists(ctx, studentID); err != nil {
		return nil, err
	} else if !exists {
		return nil, apperrors.ErrStudentNotFound
	}

	awards, err := s.awardRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return awardsToViews(awards), nil
}

// LookupStudentByUserID resolves an account to its linked student identity
func (s *AwardService) LookupStudentByUserID(ctx context.Context, userID int64) (*dto.StudentLookupResponse, error) {
	if !validation.IsValidID(userID) {
		return nil, apperrors.NewBadRequestError("identifiers must be positive integers")
	}

	student, err := s.studentRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &dto.StudentLookupResponse{
		StudentID:   student.ID,
		StudentName: student.FullName(),
	}, nil
}

// GetMyAwards returns the calling account's student identity and awards
func (s *AwardService) GetMyAwards(ctx context.Context, userID int64) (*dto.MyAwardsResponse, error) {
	student, err := s.studentRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	awards, err := s.awardRepo.GetByStudentID(ctx, student.ID)
	if err != nil {
		return nil, err
	}

	return &dto.MyAwardsResponse{
		Student: dto.PersonRef{
			ID:         student.ID,
			FirstName:  student.FirstName,
			LastName:   student.LastName,
			MiddleName: student.MiddleName,
		},
		Awards: awardsToViews(awards),
	}, nil
}

// ListStudents returns the student pick list for the award form
func (s *AwardService) ListStudents(ctx context.Context) ([]*models.Student, error) {
	return s.studentRepo.ListNames(ctx)
}

// ListDepartments returns the department pick list
func (s *AwardService) ListDepartments(ctx context.Context) ([]*models.Department, error) {
	return s.deptRepo.GetAll(ctx)
}

// ListGroups returns the groups of one department
func (s *AwardService) ListGroups(ctx context.Context, departmentID int64) ([]*models.Group, error) {
	if !validation.IsValidID(departmentID) {
		return nil, apperrors.NewBadRequestError("identifiers must be positive integers")
	}
	return s.deptRepo.GetGroupsByDepartmentID(ctx, departmentID)
}

// ListTypes returns the award type pick list
func (s *AwardService) ListTypes(ctx context.Context) ([]*models.AwardType, error) {
	return s.awardRepo.GetAllTypes(ctx)
}

// ListDegrees returns degrees whose parent type exists
func (s *AwardService) ListDegrees(ctx context.Context) ([]*models.AwardDegree, error) {
	return s.awardRepo.GetDegreesWithValidType(ctx)
}

// ListLevels returns the level pick list
func (s *AwardService) ListLevels(ctx context.Context) ([]*models.Level, error) {
	return s.levelRepo.GetAll(ctx)
}

func awardToView(a *models.Award) dto.AwardView {
	view := dto.AwardView{
		ID:        a.ID,
		EventName: a.EventName,
		FilePath:  a.FilePath,
	}
	if a.Student != nil {
		view.Student = dto.PersonRef{
			ID:         a.Student.ID,
			FirstName:  a.Student.FirstName,
			LastName:   a.Student.LastName,
			MiddleName: a.Student.MiddleName,
		}
	}
	if a.Department != nil {
		view.Department = dto.NameRef{ID: a.Department.ID, Name: a.Department.Name}
	}
	if a.Group != nil {
		view.Group = dto.NameRef{ID: a.Group.ID, Name: a.Group.Name}
	}
	if a.AwardType != nil {
		view.AwardType = dto.NameRef{ID: a.AwardType.ID, Name: a.AwardType.Name}
	}
	if a.AwardDegree != nil {
		view.AwardDegree = &dto.NameRef{ID: a.AwardDegree.ID, Name: a.AwardDegree.Name}
	}
	if a.Level != nil {
		view.Level = dto.LevelRef{ID: a.Level.ID, LevelName: a.Level.LevelName}
	}
	return view
}

func awardsToViews(awards []*models.Award) []dto.AwardView {
	views := make([]dto.AwardView, 0, len(awards))
	for _, award := range awards {
		views = append(views, awardToView(award))
	}
	return views
}
