package models

import "time"

// Event represents a scheduled event. Students are attached through the
// 'event_students' join table; teacher and level are optional references.
type Event struct {
	ID         int64     `json:"id" db:"id"`
	IconType   string    `json:"iconType" db:"icon_type"`
	Title      string    `json:"title" db:"title"`
	DateTime   time.Time `json:"dateTime" db:"event_time"`
	StudentIDs []int64   `json:"studentIds,omitempty"`
	TeacherID  *int64    `json:"teacherId,omitempty" db:"teacher_id"`
	LevelID    *int64    `json:"levelId,omitempty" db:"level_id"`

	// Expanded relations, populated by joined reads only
	Students []*Student `json:"students,omitempty" db:"-"`
	Teacher  *Teacher   `json:"teacher,omitempty" db:"-"`
	Level    *Level     `json:"level,omitempty" db:"-"`
}
