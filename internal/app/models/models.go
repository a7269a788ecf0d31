package models

// Role defines the account role stored in the 'users' table
type Role string

const (
	RoleUser    Role = "user"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

// IsValid reports whether the role is one of the known account roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleTeacher, RoleAdmin:
		return true
	}
	return false
}
