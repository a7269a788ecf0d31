package models

// Department represents an academic department
type Department struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Group represents a study group inside a department
type Group struct {
	ID           int64       `json:"id"`
	Name         string      `json:"name"`
	DepartmentID int64       `json:"departmentId"`
	Department   *Department `json:"department,omitempty"`
}

// Level represents the level of an event or award (institutional, city, regional...)
type Level struct {
	ID        int64  `json:"id"`
	LevelName string `json:"levelName"`
}
