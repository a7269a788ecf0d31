package dto

// NameRef is an expanded reference carrying its display label
type NameRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// LevelRef is an expanded level reference
type LevelRef struct {
	ID        int64  `json:"id"`
	LevelName string `json:"levelName"`
}

// PersonRef is an expanded student/teacher reference
type PersonRef struct {
	ID         int64  `json:"id"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	MiddleName string `json:"middleName,omitempty"`
}

// AwardView is an award with every reference expanded to display labels,
// the shape the front-end renders directly.
type AwardView struct {
	ID          int64     `json:"id"`
	Student     PersonRef `json:"student"`
	Department  NameRef   `json:"department"`
	Group       NameRef   `json:"group"`
	EventName   string    `json:"eventName"`
	AwardType   NameRef   `json:"awardType"`
	AwardDegree *NameRef  `json:"awardDegree,omitempty"`
	Level       LevelRef  `json:"level"`
	FilePath    *string   `json:"filePath"`
}

// CreateAwardResponse is returned from award submission: the created record
// plus the student's full refreshed award list.
type CreateAwardResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Award   *AwardView  `json:"award"`
	Awards  []AwardView `json:"awards"`
}

// StudentLookupResponse resolves an account id to its linked student
type StudentLookupResponse struct {
	StudentID   int64  `json:"studentId"`
	StudentName string `json:"studentName"`
}

// MyAwardsResponse is the current student's identity plus their awards
type MyAwardsResponse struct {
	Student PersonRef   `json:"student"`
	Awards  []AwardView `json:"awards"`
}
