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

// ProfileController handles student self-service profile endpoints
type ProfileController struct {
	profileService *services.ProfileService
	logger         zerolog.Logger
}

// NewProfileController creates a new ProfileController
func NewProfileController(profileService *services.ProfileService, logger zerolog.Logger) *ProfileController {
	return &ProfileController{
		profileService: profileService,
		logger:         logger,
	}
}

// GetProfile returns the caller's profile or an empty shell for new accounts
// @Summary Get own profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ProfileResponse
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Router /students/profile [get]
func (c *ProfileController) GetProfile(ctx *gin.Context) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := c.profileService.GetProfile(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// CreateProfile creates the one-time profile of the caller
// @Summary Create own profile
// @Tags profile
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param avatar formData file false "Profile image (JPEG/PNG/GIF, up to 5MB)"
// @Success 201 {object} dto.ProfileResponse
// @Failure 400 {object} dto.ErrorResponse "Validation failure or profile already exists"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Router /students/profile [post]
func (c *ProfileController) CreateProfile(ctx *gin.Context) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	var form dto.ProfileForm
	if err := ctx.ShouldBind(&form); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid profile form")
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	avatar, _ := ctx.FormFile("avatar")

	resp, err := c.profileService.CreateProfile(ctx.Request.Context(), userID, &form, avatar)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, resp)
}

// UpdateProfile updates the caller's existing profile
// @Summary Update own profile
// @Tags profile
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param avatar formData file false "Replacement profile image"
// @Success 200 {object} dto.ProfileResponse
// @Failure 400 {object} dto.ErrorResponse "Validation failure or wrong old password"
// @Failure 404 {object} dto.ErrorResponse "No profile exists yet"
// @Router /students/profile [put]
func (c *ProfileController) UpdateProfile(ctx *gin.Context) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	var form dto.ProfileForm
	if err := ctx.ShouldBind(&form); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	avatar, _ := ctx.FormFile("avatar")

	resp, err := c.profileService.UpdateProfile(ctx.Request.Context(), userID, &form, avatar)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// UpdateAvatar replaces or removes the caller's avatar
// @Summary Replace or remove avatar
// @Tags profile
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param avatar formData file false "New profile image"
// @Param removeAvatar formData string false "true to remove the current avatar"
// @Success 200 {object} dto.AvatarResponse
// @Failure 400 {object} dto.ErrorResponse "Neither a file nor removeAvatar supplied"
// @Router /students/profile/avatar [patch]
func (c *ProfileController) UpdateAvatar(ctx *gin.Context) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	remove := ctx.PostForm("removeAvatar") == "true"
	avatar, _ := ctx.FormFile("avatar")

	path, err := c.profileService.UpdateAvatar(ctx.Request.Context(), userID, remove, avatar)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.AvatarResponse{Success: true, Message: "Avatar updated"}
	resp.Data.Avatar = path
	ctx.JSON(http.StatusOK, resp)
}

// ListDepartments returns the department reference list
// @Summary List departments
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse
// @Router /students/departments/all [get]
func (c *ProfileController) ListDepartments(ctx *gin.Context) {
	departments, err := c.profileService.ListDepartments(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: departments})
}

// ListGroups returns the groups of one department
// @Summary List groups of a department
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Param department_id query int true "Department ID"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.ErrorResponse "Missing department_id"
// @Router /students/groups [get]
func (c *ProfileController) ListGroups(ctx *gin.Context) {
	departmentID, err := strconv.ParseInt(ctx.Query("department_id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "department_id must be a positive integer")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	groups, err := c.profileService.ListGroups(ctx.Request.Context(), departmentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: groups})
}
