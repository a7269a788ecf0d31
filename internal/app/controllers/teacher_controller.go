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

// TeacherController handles admin teacher roster endpoints
type TeacherController struct {
	rosterService *services.RosterService
	logger        zerolog.Logger
}

// NewTeacherController creates a new TeacherController
func NewTeacherController(rosterService *services.RosterService, logger zerolog.Logger) *TeacherController {
	return &TeacherController{
		rosterService: rosterService,
		logger:        logger,
	}
}

// ListTeachers returns the teacher roster
// @Summary List the teacher roster
// @Tags teachers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Router /teachers [get]
func (c *TeacherController) ListTeachers(ctx *gin.Context) {
	entries, err := c.rosterService.ListTeachers(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: entries})
}

// CreateTeacher provisions a teacher with a generated account
// @Summary Add a teacher to the roster
// @Tags teachers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateTeacherRequest true "Teacher payload"
// @Success 201 {object} dto.APIResponse{data=dto.TeacherRosterEntry}
// @Failure 400 {object} dto.ErrorResponse "Validation failure"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Router /teachers [post]
func (c *TeacherController) CreateTeacher(ctx *gin.Context) {
	var req dto.CreateTeacherRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	entry, err := c.rosterService.CreateTeacher(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("email", req.Email).Msg("Teacher creation failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Success: true, Data: entry})
}

// UpdateTeacher updates a roster entry
// @Summary Update a roster teacher
// @Tags teachers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Teacher ID"
// @Param request body dto.CreateTeacherRequest true "Teacher payload"
// @Success 200 {object} dto.APIResponse{data=dto.TeacherRosterEntry}
// @Failure 404 {object} dto.ErrorResponse "Teacher not found"
// @Router /teachers/{id} [put]
func (c *TeacherController) UpdateTeacher(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "id must be a positive integer")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.CreateTeacherRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	entry, err := c.rosterService.UpdateTeacher(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: entry})
}

// DeleteTeacher removes a teacher and its account
// @Summary Delete a roster teacher
// @Tags teachers
// @Security BearerAuth
// @Param id path int true "Teacher ID"
// @Success 204 "No content"
// @Failure 404 {object} dto.ErrorResponse "Teacher not found"
// @Router /teachers/{id} [delete]
func (c *TeacherController) DeleteTeacher(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "id must be a positive integer")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.rosterService.DeleteTeacher(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
