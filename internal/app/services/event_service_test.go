package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkuznetsov/awardhub/internal/app/models"
	"github.com/dkuznetsov/awardhub/internal/app/models/dto"
	"github.com/dkuznetsov/awardhub/internal/pkg/apperrors"
)

// fakeEventStore keeps events in memory and expands references on reads the
// way the joined queries do
type fakeEventStore struct {
	events   map[int64]*models.Event
	students map[int64]*models.Student
	teachers map[int64]*models.Teacher
	levels   map[int64]*models.Level
	nextID   int64
}

func (r *fakeEventStore) expand(event *models.Event) *models.Event {
	out := *event
	out.Students = nil
	for _, id := range event.StudentIDs {
		if student, ok := r.students[id]; ok {
			out.Students = append(out.Students, student)
		}
	}
	if event.TeacherID != nil {
		out.Teacher = r.teachers[*event.TeacherID]
	}
	if event.LevelID != nil {
		out.Level = r.levels[*event.LevelID]
	}
	return &out
}

func (r *fakeEventStore) GetAll(_ context.Context) ([]*models.Event, error) {
	var out []*models.Event
	for _, event := range r.events {
		out = append(out, r.expand(event))
	}
	return out, nil
}

func (r *fakeEventStore) GetByID(_ context.Context, id int64) (*models.Event, error) {
	event, ok := r.events[id]
	if !ok {
		return nil, apperrors.ErrEventNotFound
	}
	return r.expand(event), nil
}

func (r *fakeEventStore) Create(_ context.Context, event *models.Event) error {
	event.ID = r.nextID
	r.nextID++
	r.events[event.ID] = event
	return nil
}

func (r *fakeEventStore) Update(_ context.Context, event *models.Event) error {
	if _, ok := r.events[event.ID]; !ok {
		return apperrors.ErrEventNotFound
	}
	r.events[event.ID] = event
	return nil
}

func (r *fakeEventStore) Delete(_ context.Context, id int64) error {
	if _, ok := r.events[id]; !ok {
		return apperrors.ErrEventNotFound
	}
	delete(r.events, id)
	return nil
}

func newEventFixture() (*EventService, *fakeEventStore) {
	students := map[int64]*models.Student{
		1: {ID: 1, FirstName: "Anna", LastName: "Ivanova"},
	}
	teachers := map[int64]*models.Teacher{
		1: {ID: 1, FirstName: "Igor", LastName: "Petrov", Position: "Lecturer"},
	}
	levels := map[int64]*models.Level{
		1: {ID: 1, LevelName: "City"},
	}
	store := &fakeEventStore{
		events:   map[int64]*models.Event{},
		students: students,
		teachers: teachers,
		levels:   levels,
		nextID:   1,
	}
	svc := NewEventService(
		store,
		&fakeStudentRepo{students: students},
		&fakeTeacherStore{teachers: teachers, nextID: 2},
		&fakeLevelRepo{levels: levels},
		zerolog.Nop(),
	)
	return svc, store
}

func validEventRequest() *dto.EventRequest {
	teacherID := int64(1)
	levelID := int64(1)
	return &dto.EventRequest{
		IconType: "olympiad",
		Title:    "Regional Programming Olympiad",
		DateTime: time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
		Students: []int64{1},
		Teacher:  &teacherID,
		Level:    &levelID,
	}
}

func TestCreateEventExpandsReferences(t *testing.T) {
	svc, _ := newEventFixture()

	view, err := svc.CreateEvent(context.Background(), validEventRequest())
	require.NoError(t, err)
	assert.Equal(t, "Regional Programming Olympiad", view.Title)

	require.Len(t, view.Students, 1)
	assert.Equal(t, "Ivanova", view.Students[0].LastName)
	require.NotNil(t, view.Teacher)
	assert.Equal(t, "Petrov", view.Teacher.LastName)
	require.NotNil(t, view.Level)
	assert.Equal(t, "City", view.Level.LevelName)
}

func TestCreateEventRequiresFields(t *testing.T) {
	svc, _ := newEventFixture()

	req := validEventRequest()
	req.Title = "  "
	_, err := svc.CreateEvent(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	req = validEventRequest()
	req.DateTime = time.Time{}
	_, err = svc.CreateEvent(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestCreateEventRejectsUnknownReferences(t *testing.T) {
	svc, store := newEventFixture()
	ctx := context.Background()

	req := validEventRequest()
	req.Students = []int64{99}
	_, err := svc.CreateEvent(ctx, req)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	req = validEventRequest()
	unknown := int64(99)
	req.Teacher = &unknown
	_, err = svc.CreateEvent(ctx, req)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	req = validEventRequest()
	req.Level = &unknown
	_, err = svc.CreateEvent(ctx, req)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	assert.Empty(t, store.events)
}

func TestUpdateEventReplaces(t *testing.T) {
	svc, _ := newEventFixture()
	ctx := context.Background()

	created, err := svc.CreateEvent(ctx, validEventRequest())
	require.NoError(t, err)

	req := validEventRequest()
	req.Title = "National Programming Olympiad"
	req.Teacher = nil
	view, err := svc.UpdateEvent(ctx, created.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "National Programming Olympiad", view.Title)
	assert.Nil(t, view.Teacher)

	_, err = svc.UpdateEvent(ctx, 99, validEventRequest())
	assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
}

func TestDeleteEvent(t *testing.T) {
	svc, store := newEventFixture()
	ctx := context.Background()

	created, err := svc.CreateEvent(ctx, validEventRequest())
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteEvent(ctx, 0), apperrors.ErrBadRequest)
	require.NoError(t, svc.DeleteEvent(ctx, created.ID))
	assert.Empty(t, store.events)
	assert.ErrorIs(t, svc.DeleteEvent(ctx, created.ID), apperrors.ErrEventNotFound)
}

func TestListEvents(t *testing.T) {
	svc, _ := newEventFixture()
	ctx := context.Background()

	_, err := svc.CreateEvent(ctx, validEventRequest())
	require.NoError(t, err)

	views, err := svc.ListEvents(ctx)
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Len(t, views[0].Students, 1)
	assert.Equal(t, "Anna", views[0].Students[0].FirstName)
}
