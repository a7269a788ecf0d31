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

// EventController handles event endpoints
type EventController struct {
	eventService *services.EventService
	logger       zerolog.Logger
}

// NewEventController creates a new EventController
func NewEventController(eventService *services.EventService, logger zerolog.Logger) *EventController {
	return &EventController{
		eventService: eventService,
		logger:       logger,
	}
}

// ListEvents returns all events with references expanded
// @Summary List events
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse
// @Router /events [get]
func (c *EventController) ListEvents(ctx *gin.Context) {
	events, err := c.eventService.ListEvents(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: events})
}

// CreateEvent creates an event
// @Summary Create an event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.EventRequest true "Event payload"
// @Success 201 {object} dto.APIResponse{data=dto.EventView}
// @Failure 400 {object} dto.ErrorResponse "Missing fields or unknown references"
// @Router /events [post]
func (c *EventController) CreateEvent(ctx *gin.Context) {
	var req dto.EventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	view, err := c.eventService.CreateEvent(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("title", req.Title).Msg("Event creation failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Success: true, Data: view})
}

// UpdateEvent replaces an event
// @Summary Update an event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param request body dto.EventRequest true "Event payload"
// @Success 200 {object} dto.APIResponse{data=dto.EventView}
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id} [put]
func (c *EventController) UpdateEvent(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "id must be a positive integer")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.EventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	view, err := c.eventService.UpdateEvent(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: view})
}

// DeleteEvent removes an event
// @Summary Delete an event
// @Tags events
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 204 "No content"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id} [delete]
func (c *EventController) DeleteEvent(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "id must be a positive integer")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.eventService.DeleteEvent(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// ListStudents returns the student pick list for the event form
// @Summary List students for events
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse
// @Router /events/students [get]
func (c *EventController) ListStudents(ctx *gin.Context) {
	students, err := c.eventService.ListStudents(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: personRefsFromStudents(students)})
}

// ListTeachers returns the teacher pick list for the event form
// @Summary List teachers for events
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse
// @Router /events/teachers [get]
func (c *EventController) ListTeachers(ctx *gin.Context) {
	teachers, err := c.eventService.ListTeachers(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: personRefsFromTeachers(teachers)})
}

// ListLevels returns the level pick list for the event form
// @Summary List levels for events
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse
// @Router /events/levels [get]
func (c *EventController) ListLevels(ctx *gin.Context) {
	levels, err := c.eventService.ListLevels(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: levels})
}
