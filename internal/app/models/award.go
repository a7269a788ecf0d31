package models

// AwardType represents a kind of recognition (diploma, certificate...)
type AwardType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// AwardDegree represents a degree within an award type (1st place, laureate...)
type AwardDegree struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	AwardTypeID int64  `json:"awardTypeId"`
}

// Award records a recognition given to a student, optionally with an
// uploaded attachment. Awards are create-only in the exposed API surface.
type Award struct {
	ID            int64   `json:"id" db:"id"`
	StudentID     int64   `json:"studentId" db:"student_id"`
	DepartmentID  int64   `json:"departmentId" db:"department_id"`
	GroupID       int64   `json:"groupId" db:"group_id"`
	EventName     string  `json:"eventName" db:"event_name"`
	AwardTypeID   int64   `json:"awardTypeId" db:"award_type_id"`
	AwardDegreeID *int64  `json:"awardDegreeId,omitempty" db:"award_degree_id"`
	LevelID       int64   `json:"levelId" db:"level_id"`
	FilePath      *string `json:"filePath" db:"file_path"`

	// Expanded relations, populated by joined reads only
	Student     *Student     `json:"student,omitempty" db:"-"`
	Department  *Department  `json:"department,omitempty" db:"-"`
	Group       *Group       `json:"group,omitempty" db:"-"`
	AwardType   *AwardType   `json:"awardType,omitempty" db:"-"`
	AwardDegree *AwardDegree `json:"awardDegree,omitempty" db:"-"`
	Level       *Level       `json:"level,omitempty" db:"-"`
}
