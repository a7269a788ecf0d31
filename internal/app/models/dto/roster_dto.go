package dto

// CreateStudentRequest is the admin roster creation payload. Credentials are
// generated server-side; only the subject's email is supplied.
type CreateStudentRequest struct {
	LastName     string `json:"last_name" binding:"required"`
	FirstName    string `json:"first_name" binding:"required"`
	MiddleName   string `json:"middle_name"`
	DepartmentID int64  `json:"department_id" binding:"required,min=1"`
	GroupID      int64  `json:"group_id" binding:"required,min=1"`
	Email        string `json:"email" binding:"required,email"`
}

// StudentRosterEntry is one row of the admin student roster, with the
// department and group labels expanded for display.
type StudentRosterEntry struct {
	ID             int64  `json:"_id"`
	LastName       string `json:"last_name"`
	FirstName      string `json:"first_name"`
	MiddleName     string `json:"middle_name"`
	DepartmentID   int64  `json:"department_id"`
	DepartmentName string `json:"department_name"`
	GroupID        int64  `json:"group_id"`
	GroupName      string `json:"group_name"`
	Email          string `json:"email"`
	IsStudent      bool   `json:"is_student"`
}

// CreateTeacherRequest is the admin teacher creation payload. IsTeacher
// selects the 'teacher' role for the generated account.
type CreateTeacherRequest struct {
	LastName   string `json:"last_name" binding:"required"`
	FirstName  string `json:"first_name" binding:"required"`
	MiddleName string `json:"middle_name"`
	Position   string `json:"position" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	IsTeacher  bool   `json:"is_teacher"`
}

// TeacherRosterEntry is one row of the admin teacher roster
type TeacherRosterEntry struct {
	ID         int64  `json:"_id"`
	LastName   string `json:"last_name"`
	FirstName  string `json:"first_name"`
	MiddleName string `json:"middle_name"`
	Position   string `json:"position"`
	Email      string `json:"email"`
	IsTeacher  bool   `json:"is_teacher"`
}
