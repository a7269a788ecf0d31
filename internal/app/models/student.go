package models

import "time"

// Student defines the student profile model based on the 'students' table.
// Login and email are duplicated from the owning account so the roster can be
// listed without touching 'users'; the profile handlers keep both in sync.
type Student struct {
	ID            int64       `json:"id" db:"id"`
	UserID        int64       `json:"userId" db:"user_id"`
	FirstName     string      `json:"firstName" db:"first_name"`
	LastName      string      `json:"lastName" db:"last_name"`
	MiddleName    string      `json:"middleName" db:"middle_name"`
	BirthDate     time.Time   `json:"birthDate" db:"birth_date"`
	DepartmentID  int64       `json:"departmentId" db:"department_id"`
	GroupID       int64       `json:"groupId" db:"group_id"`
	Login         string      `json:"login" db:"login"`
	Email         string      `json:"email" db:"email"`
	AdmissionYear int         `json:"admissionYear" db:"admission_year"`
	Avatar        *string     `json:"avatar" db:"avatar"`
	Department    *Department `json:"department,omitempty"` // Relation, no db tag
	Group         *Group      `json:"group,omitempty"`      // Relation, no db tag
}

// FullName returns the display name in "last first middle" order.
func (s *Student) FullName() string {
	name := s.LastName + " " + s.FirstName
	if s.MiddleName != "" {
		name += " " + s.MiddleName
	}
	return name
}

// Teacher defines the teacher profile model based on the 'teachers' table
type Teacher struct {
	ID         int64  `json:"id" db:"id"`
	UserID     int64  `json:"userId" db:"user_id"`
	FirstName  string `json:"firstName" db:"first_name"`
	LastName   string `json:"lastName" db:"last_name"`
	MiddleName string `json:"middleName" db:"middle_name"`
	Position   string `json:"position" db:"position"`
	User       *User  `json:"user,omitempty"` // Relation, no db tag
}
