package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/dkuznetsov/awardhub/internal/app/models/dto"
	"github.com/dkuznetsov/awardhub/internal/app/services"
	"github.com/dkuznetsov/awardhub/internal/middleware"
	"github.com/dkuznetsov/awardhub/internal/pkg/filestorage"
)

// AwardController handles award submission and the award reference listers
type AwardController struct {
	awardService *services.AwardService
	eventService *services.EventService
	awardFiles   filestorage.FileStorage
	logger       zerolog.Logger
}

// NewAwardController creates a new AwardController
func NewAwardController(
	awardService *services.AwardService,
	eventService *services.EventService,
	awardFiles filestorage.FileStorage,
	logger zerolog.Logger,
) *AwardController {
	return &AwardController{
		awardService: awardService,
		eventService: eventService,
		awardFiles:   awardFiles,
		logger:       logger,
	}
}

// CreateAward records an award, optionally with an attachment
// @Summary Record an award
// @Description Validates every referenced entity, stores the optional attachment and returns the created award plus the student's refreshed award list.
// @Tags awards
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param filePath formData file false "Attachment (JPEG/JPG/PNG/PDF)"
// @Param studentId formData int true "Student ID"
// @Param departmentId formData int true "Department ID"
// @Param groupId formData int true "Group ID"
// @Param eventName formData string true "Event name"
// @Param awardType formData int true "Award type ID"
// @Param awardDegree formData int false "Award degree ID"
// @Param level formData int true "Level ID"
// @Success 201 {object} dto.CreateAwardResponse
// @Failure 400 {object} dto.ErrorResponse "Malformed ids, bad file type or degree mismatch"
// @Failure 404 {object} dto.ErrorResponse "A referenced entity does not exist"
// @Router /awards [post]
func (c *AwardController) CreateAward(ctx *gin.Context) {
	// File type is checked before anything is written anywhere
	fileHeader, _ := ctx.FormFile("filePath")
	if fileHeader != nil {
		if err := filestorage.ValidateAwardFile(fileHeader); err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
	}

	input, err := c.bindAwardForm(ctx)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if fileHeader != nil {
		path, err := c.awardFiles.Save(fileHeader)
		if err != nil {
			c.logger.Error().Err(err).Msg("Failed to store award attachment")
			middleware.HandleAPIError(ctx, err)
			return
		}
		input.FilePath = &path
	}

	resp, err := c.awardService.CreateAward(ctx.Request.Context(), input)
	if err != nil {
		// The award row was not created, so the stored attachment is orphaned
		if input.FilePath != nil {
			if delErr := c.awardFiles.Delete(*input.FilePath); delErr != nil {
				c.logger.Error().Err(delErr).Str("file", *input.FilePath).Msg("Failed to remove orphaned award attachment")
			}
		}
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, resp)
}

func (c *AwardController) bindAwardForm(ctx *gin.Context) (*services.CreateAwardInput, error) {
	input := &services.CreateAwardInput{
		EventName: strings.TrimSpace(ctx.PostForm("eventName")),
	}

	var err error
	if input.StudentID, err = parseFormID(ctx, "studentId"); err != nil {
		return nil, err
	}
	if input.DepartmentID, err = parseFormID(ctx, "departmentId"); err != nil {
		return nil, err
	}
	if input.GroupID, err = parseFormID(ctx, "groupId"); err != nil {
		return nil, err
	}
	if input.AwardTypeID, err = parseFormID(ctx, "awardType"); err != nil {
		return nil, err
	}
	if input.LevelID, err = parseFormID(ctx, "level"); err != nil {
		return nil, err
	}

	if raw := ctx.PostForm("awardDegree"); raw != "" {
		degreeID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || degreeID <= 0 {
			return nil, errInvalidFormID("awardDegree")
		}
		input.AwardDegreeID = &degreeID
	}

	return input, nil
}

// GetStudentAwards returns the expanded awards of one student
// @Summary List a student's awards
// @Tags awards
// @Produce json
// @Security BearerAuth
// @Param studentId path int true "Student ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /awards/student/{studentId} [get]
func (c *AwardController) GetStudentAwards(ctx *gin.Context) {
	studentID, err := strconv.ParseInt(ctx.Param("studentId"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "studentId must be a positive integer")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	awards, err := c.awardService.GetStudentAwards(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: awards})
}

// LookupStudent resolves an account id to its linked student
// @Summary Resolve an account to its student
// @Tags awards
// @Produce json
// @Security BearerAuth
// @Param userId path int true "Account ID"
// @Success 200 {object} dto.StudentLookupResponse
// @Failure 404 {object} dto.ErrorResponse "No student linked to the account"
// @Router /awards/user/{userId}/studentId [get]
func (c *AwardController) LookupStudent(ctx *gin.Context) {
	userID, err := strconv.ParseInt(ctx.Param("userId"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "userId must be a positive integer")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := c.awardService.LookupStudentByUserID(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// GetMyAwards returns the caller's student identity and awards
// @Summary List own awards
// @Tags awards
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.MyAwardsResponse
// @Failure 404 {object} dto.ErrorResponse "No student linked to the account"
// @Router /awards/me [get]
func (c *AwardController) GetMyAwards(ctx *gin.Context) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := c.awardService.GetMyAwards(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// ListStudents returns the student pick list for the award form
// @Summary List students for awards
// @Tags awards
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse
// @Router /awards/students [get]
func (c *AwardController) ListStudents(ctx *gin.Context) {
	students, err := c.awardService.ListStudents(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: personRefsFromStudents(students)})
}

// ListDepartments returns the department pick list for the award form
// @Summary List departments for awards
// @Tags awards
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse
// @Router /awards/departments [get]
func (c *AwardController) ListDepartments(ctx *gin.Context) {
	departments, err := c.awardService.ListDepartments(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: departments})
}

// ListGroups returns the groups of one department for the award form
// @Summary List groups for awards
// @Tags awards
// @Produce json
// @Security BearerAuth
// @Param departmentId path int true "Department ID"
// @Success 200 {object} dto.APIResponse
// @Router /awards/groups/{departmentId} [get]
func (c *AwardController) ListGroups(ctx *gin.Context) {
	departmentID, err := strconv.ParseInt(ctx.Param("departmentId"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "departmentId must be a positive integer")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	groups, err := c.awardService.ListGroups(ctx.Request.Context(), departmentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: groups})
}

// ListTypes returns the award type pick list
// @Summary List award types
// @Tags awards
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse
// @Router /awards/types [get]
func (c *AwardController) ListTypes(ctx *gin.Context) {
	types, err := c.awardService.ListTypes(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: types})
}

// ListDegrees returns degrees whose parent type exists
// @Summary List award degrees
// @Tags awards
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse
// @Router /awards/degrees [get]
func (c *AwardController) ListDegrees(ctx *gin.Context) {
	degrees, err := c.awardService.ListDegrees(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: degrees})
}

// ListLevels returns the level pick list
// @Summary List levels for awards
// @Tags awards
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse
// @Router /awards/levels [get]
func (c *AwardController) ListLevels(ctx *gin.Context) {
	levels, err := c.awardService.ListLevels(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: levels})
}

// ListEvents returns the event pick list for the award form
// @Summary List events for awards
// @Tags awards
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse
// @Router /awards/events [get]
func (c *AwardController) ListEvents(ctx *gin.Context) {
	events, err := c.eventService.ListEvents(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: events})
}

func parseFormID(ctx *gin.Context, field string) (int64, error) {
	id, err := strconv.ParseInt(ctx.PostForm(field), 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidFormID(field)
	}
	return id, nil
}

type invalidFormIDError struct {
	field string
}

func (e invalidFormIDError) Error() string {
	return e.field + " must be a positive integer"
}

func errInvalidFormID(field string) error {
	return invalidFormIDError{field: field}
}
