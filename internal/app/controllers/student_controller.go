package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/dkuznetsov/awardhub/internal/app/models/dto"
	"github.com/dkuznetsov/awardhub/internal/app/services"
	"github.com/dkuznetsov/awardhub/internal/middleware"
)

// StudentController handles admin student roster endpoints
type StudentController struct {
	rosterService *services.RosterService
	logger        zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(rosterService *services.RosterService, logger zerolog.Logger) *StudentController {
	return &StudentController{
		rosterService: rosterService,
		logger:        logger,
	}
}

// ListStudents returns the full student roster
// @Summary List the student roster
// @Tags students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Router /students [get]
func (c *StudentController) ListStudents(ctx *gin.Context) {
	entries, err := c.rosterService.ListStudents(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: entries})
}

// CreateStudent provisions a student with a generated account
// @Summary Add a student to the roster
// @Description Creates the student together with an account and generated credentials; the credentials are mailed to the student.
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStudentRequest true "Student payload"
// @Success 201 {object} dto.APIResponse{data=dto.StudentRosterEntry}
// @Failure 400 {object} dto.ErrorResponse "Validation failure"
// @Failure 404 {object} dto.ErrorResponse "Department or group not found"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Router /students [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	entry, err := c.rosterService.CreateStudent(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("email", req.Email).Msg("Student creation failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Success: true, Data: entry})
}

// UpdateStudent updates a roster entry
// @Summary Update a roster student
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param request body dto.CreateStudentRequest true "Student payload"
// @Success 200 {object} dto.APIResponse{data=dto.StudentRosterEntry}
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [put]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "id must be a positive integer")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	entry, err := c.rosterService.UpdateStudent(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: entry})
}

// DeleteStudent removes a student and its account
// @Summary Delete a roster student
// @Tags students
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 204 "No content"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [delete]
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "id must be a positive integer")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.rosterService.DeleteStudent(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// ListDepartments returns the department names for the admin UI
// @Summary List departments
// @Tags students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse
// @Router /departments [get]
func (c *StudentController) ListDepartments(ctx *gin.Context) {
	departments, err := c.rosterService.ListDepartments(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: departments})
}

// ListGroups returns the groups of one department for the admin UI
// @Summary List groups of a department
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param department_id query int true "Department ID"
// @Success 200 {object} dto.APIResponse
// @Router /groups [get]
func (c *StudentController) ListGroups(ctx *gin.Context) {
	departmentID, err := strconv.ParseInt(ctx.Query("department_id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "department_id must be a positive integer")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	groups, err := c.rosterService.ListGroups(ctx.Request.Context(), departmentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: groups})
}
