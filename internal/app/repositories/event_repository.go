package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dkuznetsov/awardhub/internal/app/models"
	"github.com/dkuznetsov/awardhub/internal/pkg/apperrors"
	"github.com/dkuznetsov/awardhub/internal/pkg/dberrors"
)

// EventRepository handles database operations for events and their
// student attachments
type EventRepository struct {
	db *pgxpool.Pool
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

const eventSelect = `
	SELECT e.id, e.icon_type, e.title, e.event_time, e.teacher_id, e.level_id,
	       t.first_name, t.last_name, t.middle_name, l.level_name
	FROM events e
	LEFT JOIN teachers t ON t.id = e.teacher_id
	LEFT JOIN levels l ON l.id = e.level_id
`

func scanEvent(row pgx.Row) (*models.Event, error) {
	var e models.Event
	var teacherFirst, teacherLast, teacherMiddle *string
	var levelName *string

	err := row.Scan(
		&e.ID, &e.IconType, &e.Title, &e.DateTime, &e.TeacherID, &e.LevelID,
		&teacherFirst, &teacherLast, &teacherMiddle, &levelName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, fmt.Errorf("error scanning event row: %w", err)
	}

	if e.TeacherID != nil && teacherFirst != nil {
		e.Teacher = &models.Teacher{
			ID:         *e.TeacherID,
			FirstName:  *teacherFirst,
			LastName:   *teacherLast,
			MiddleName: derefOrEmpty(teacherMiddle),
		}
	}
	if e.LevelID != nil && levelName != nil {
		e.Level = &models.Level{ID: *e.LevelID, LevelName: *levelName}
	}

	return &e, nil
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// GetByID retrieves an event with its teacher, level and students expanded
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	event, err := scanEvent(r.db.QueryRow(ctx, eventSelect+` WHERE e.id = $1`, id))
	if err != nil {
		return nil, err
	}
	if err := r.attachStudents(ctx, []*models.Event{event}); err != nil {
		return nil, err
	}
	return event, nil
}

// GetAll retrieves all events with their references expanded, newest first
func (r *EventRepository) GetAll(ctx context.Context) ([]*models.Event, error) {
	rows, err := r.db.Query(ctx, eventSelect+` ORDER BY e.event_time DESC`)
	if err != nil {
		return nil, fmt.Errorf("error listing events: %w", err)
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachStudents(ctx, events); err != nil {
		return nil, err
	}

	return events, nil
}

// attachStudents loads the attached students for a batch of events in a
// single query
func (r *EventRepository) attachStudents(ctx context.Context, events []*models.Event) error {
	if len(events) == 0 {
		return nil
	}

	byID := make(map[int64]*models.Event, len(events))
	ids := make([]int64, 0, len(events))
	for _, event := range events {
		byID[event.ID] = event
		ids = append(ids, event.ID)
	}

	query := `
		SELECT es.event_id, s.id, s.first_name, s.last_name, s.middle_name
		FROM event_students es
		JOIN students s ON s.id = es.student_id
		WHERE es.event_id = ANY($1)
		ORDER BY s.last_name, s.first_name
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("error loading event students: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var eventID int64
		var s models.Student
		if err := rows.Scan(&eventID, &s.ID, &s.FirstName, &s.LastName, &s.MiddleName); err != nil {
			return fmt.Errorf("error scanning event student row: %w", err)
		}
		if event, ok := byID[eventID]; ok {
			event.Students = append(event.Students, &s)
			event.StudentIDs = append(event.StudentIDs, s.ID)
		}
	}

	return rows.Err()
}

// Create inserts an event and its student attachments in one transaction
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO events (icon_type, title, event_time, teacher_id, level_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		event.IconType, event.Title, event.DateTime, event.TeacherID, event.LevelID,
	).Scan(&event.ID)
	if err != nil {
		return fmt.Errorf("error creating event: %w", err)
	}

	if err := insertEventStudents(ctx, tx, event.ID, event.StudentIDs); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Update replaces an event's fields and its full student set
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	cmdTag, err := tx.Exec(ctx, `
		UPDATE events
		SET icon_type = $1, title = $2, event_time = $3, teacher_id = $4, level_id = $5
		WHERE id = $6`,
		event.IconType, event.Title, event.DateTime, event.TeacherID, event.LevelID, event.ID)
	if err != nil {
		return fmt.Errorf("error updating event: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM event_students WHERE event_id = $1`, event.ID); err != nil {
		return fmt.Errorf("error clearing event students: %w", err)
	}
	if err := insertEventStudents(ctx, tx, event.ID, event.StudentIDs); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func insertEventStudents(ctx context.Context, tx pgx.Tx, eventID int64, studentIDs []int64) error {
	for _, studentID := range studentIDs {
		if _, err := tx.Exec(ctx, `
			INSERT INTO event_students (event_id, student_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING`,
			eventID, studentID); err != nil {
			// A student removed between validation and insert surfaces here
			if dberrors.IsForeignKeyViolation(err) {
				return apperrors.ErrStudentNotFound
			}
			return fmt.Errorf("error attaching student %d to event: %w", studentID, err)
		}
	}
	return nil
}

// Delete removes an event; its student attachments cascade
func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting event: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}
