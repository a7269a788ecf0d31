package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dkuznetsov/awardhub/internal/app/models"
	"github.com/dkuznetsov/awardhub/internal/app/models/dto"
	"github.com/dkuznetsov/awardhub/internal/pkg/apperrors"
	"github.com/dkuznetsov/awardhub/internal/pkg/validation"
)

// EventStore is the event table access the event service needs
type EventStore interface {
	GetAll(ctx context.Context) ([]*models.Event, error)
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	Create(ctx context.Context, event *models.Event) error
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id int64) error
}

// EventStudentRepository checks and lists students referenced by events
type EventStudentRepository interface {
	ListNames(ctx context.Context) ([]*models.Student, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// EventTeacherRepository checks and lists teachers referenced by events
type EventTeacherRepository interface {
	ListNames(ctx context.Context) ([]*models.Teacher, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// EventLevelRepository checks and lists levels referenced by events
type EventLevelRepository interface {
	GetAll(ctx context.Context) ([]*models.Level, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// EventService implements event management
type EventService struct {
	eventRepo   EventStore
	studentRepo EventStudentRepository
	teacherRepo EventTeacherRepository
	levelRepo   EventLevelRepository
	logger      zerolog.Logger
}

// NewEventService creates a new EventService
func NewEventService(
	eventRepo EventStore,
	studentRepo EventStudentRepository,
	teacherRepo EventTeacherRepository,
	levelRepo EventLevelRepository,
	logger zerolog.Logger,
) *EventService {
	return &EventService{
		eventRepo:   eventRepo,
		studentRepo: studentRepo,
		teacherRepo: teacherRepo,
		levelRepo:   levelRepo,
		logger:      logger,
	}
}

// ListEvents returns all events with their references expanded
func (s *EventService) ListEvents(ctx context.Context) ([]dto.EventView, error) {
	events, err := s.eventRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]dto.EventView, 0, len(events))
	for _, event := range events {
		views = append(views, eventToView(event))
	}
	return views, nil
}

// CreateEvent validates every referenced entity and creates the event
func (s *EventService) CreateEvent(ctx context.Context, req *dto.EventRequest) (*dto.EventView, error) {
	event, err := s.buildEvent(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("eventID", event.ID).Str("title", event.Title).Msg("Event created")

	created, err := s.eventRepo.GetByID(ctx, event.ID)
	if err != nil {
		return nil, err
	}
	view := eventToView(created)
	return &view, nil
}

// UpdateEvent validates the payload and replaces the event
func (s *EventService) UpdateEvent(ctx context.Context, id int64, req *dto.EventRequest) (*dto.EventView, error) {
	if !validation.IsValidID(id) {
		return nil, apperrors.NewBadRequestError("identifiers must be positive integers")
	}
	if _, err := s.eventRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	event, err := s.buildEvent(ctx, req)
	if err != nil {
		return nil, err
	}
	event.ID = id

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}

	updated, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := eventToView(updated)
	return &view, nil
}

// DeleteEvent removes an event
func (s *EventService) DeleteEvent(ctx context.Context, id int64) error {
	if !validation.IsValidID(id) {
		return apperrors.NewBadRequestError("identifiers must be positive integers")
	}
	return s.eventRepo.Delete(ctx, id)
}

// ListStudents returns the student pick list for the event form
func (s *EventService) ListStudents(ctx context.Context) ([]*models.Student, error) {
	return s.studentRepo.ListNames(ctx)
}

// ListTeachers returns the teacher pick list for the event form
func (s *EventService) ListTeachers(ctx context.Context) ([]*models.Teacher, error) {
	return s.teacherRepo.ListNames(ctx)
}

// ListLevels returns the level pick list for the event form
func (s *EventService) ListLevels(ctx context.Context) ([]*models.Level, error) {
	return s.levelRepo.GetAll(ctx)
}

func (s *EventService) buildEvent(ctx context.Context, req *dto.EventRequest) (*models.Event, error) {
	if strings.TrimSpace(req.IconType) == "" || strings.TrimSpace(req.Title) == "" || req.DateTime.IsZero() {
		return nil, &apperrors.CustomError{
			Err:     apperrors.ErrValidationFailed,
			Message: "iconType, title and dateTime are required",
		}
	}

	for _, studentID := range req.Students {
		if !validation.IsValidID(studentID) {
			return nil, apperrors.NewBadRequestError("identifiers must be positive integers")
		}
		if exists, err := s.studentRepo.Exists(ctx, studentID); err != nil {
			return nil, err
		} else if !exists {
			return nil, &apperrors.CustomError{
				Err:     apperrors.ErrBadRequest,
				Message: "referenced student does not exist",
			}
		}
	}
	if req.Teacher != nil {
		if !validation.IsValidID(*req.Teacher) {
			return nil, apperrors.NewBadRequestError("identifiers must be positive integers")
		}
		if exists, err := s.teacherRepo.Exists(ctx, *req.Teacher); err != nil {
			return nil, err
		} else if !exists {
			return nil, &apperrors.CustomError{
				Err:     apperrors.ErrBadRequest,
				Message: "referenced teacher does not exist",
			}
		}
	}
	if req.Level != nil {
		if !validation.IsValidID(*req.Level) {
			return nil, apperrors.NewBadRequestError("identifiers must be positive integers")
		}
		if exists, err := s.levelRepo.Exists(ctx, *req.Level); err != nil {
			return nil, err
		} else if !exists {
			return nil, &apperrors.CustomError{
				Err:     apperrors.ErrBadRequest,
				Message: "referenced level does not exist",
			}
		}
	}

	return &models.Event{
		IconType:   strings.TrimSpace(req.IconType),
		Title:      strings.TrimSpace(req.Title),
		DateTime:   req.DateTime,
		StudentIDs: req.Students,
		TeacherID:  req.Teacher,
		LevelID:    req.Level,
	}, nil
}

func eventToView(event *models.Event) dto.EventView {
	view := dto.EventView{
		ID:       event.ID,
		IconType: event.IconType,
		Title:    event.Title,
		DateTime: event.DateTime,
		Students: make([]dto.PersonRef, 0, len(event.Students)),
	}
	for _, student := range event.Students {
		view.Students = append(view.Students, dto.PersonRef{
			ID:         student.ID,
			FirstName:  student.FirstName,
			LastName:   student.LastName,
			MiddleName: student.MiddleName,
		})
	}
	if event.Teacher != nil {
		view.Teacher = &dto.PersonRef{
			ID:         event.Teacher.ID,
			FirstName:  event.Teacher.FirstName,
			LastName:   event.Teacher.LastName,
			MiddleName: event.Teacher.MiddleName,
		}
	}
	if event.Level != nil {
		view.Level = &dto.LevelRef{ID: event.Level.ID, LevelName: event.Level.LevelName}
	}
	return view
}
