package dto

import "github.com/dkuznetsov/awardhub/internal/app/models"

// ProfileData is the student self-service profile payload. BirthDate is a
// plain YYYY-MM-DD string; the front-end edits it as a date input.
type ProfileData struct {
	FirstName     string             `json:"first_name"`
	LastName      string             `json:"last_name"`
	MiddleName    string             `json:"middle_name"`
	BirthDate     string             `json:"birth_date"`
	Department    *models.Department `json:"department_id"`
	Group         *models.Group      `json:"group_id"`
	Login         string             `json:"login"`
	Email         string             `json:"email"`
	AdmissionYear int                `json:"admission_year"`
	Avatar        *string            `json:"avatar"`
}

// ProfileResponse wraps ProfileData with the new-user marker. IsNewUser is
// true when the account has no student profile yet; Data then carries an
// empty shell prefilled from the account.
type ProfileResponse struct {
	Success   bool        `json:"success"`
	IsNewUser bool        `json:"isNewUser"`
	Message   string      `json:"message,omitempty"`
	Data      ProfileData `json:"data"`
}

// ProfileForm carries the multipart form fields for profile create/update.
// Identifier fields arrive as strings because the body is multipart.
type ProfileForm struct {
	FirstName     string `form:"first_name" binding:"required"`
	LastName      string `form:"last_name" binding:"required"`
	MiddleName    string `form:"middle_name"`
	BirthDate     string `form:"birth_date" binding:"required"`
	DepartmentID  int64  `form:"department_id" binding:"required,min=1"`
	GroupID       int64  `form:"group_id" binding:"required,min=1"`
	Login         string `form:"login" binding:"required,min=3,max=50"`
	Email         string `form:"email" binding:"required,email"`
	AdmissionYear int    `form:"admission_year" binding:"required"`
	OldPassword   string `form:"oldPassword"`
	NewPassword   string `form:"newPassword"`
}

// AvatarResponse is returned from avatar replace/remove
type AvatarResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		Avatar *string `json:"avatar"`
	} `json:"data"`
}
