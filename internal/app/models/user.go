package models

// User defines the account model based on the 'users' table.
// Password and RefreshToken are never serialized into API responses.
type User struct {
	ID           int64   `json:"id" db:"id"`
	Login        string  `json:"login" db:"login"`
	Email        string  `json:"email" db:"email"`
	Password     string  `json:"-" db:"password"`
	Role         Role    `json:"role" db:"role"`
	RefreshToken *string `json:"-" db:"refresh_token"`
	StudentID    *int64  `json:"studentId,omitempty" db:"student_id"` // Set once a student profile is linked
}
