package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/westosha-tf/team-portal/internal/dto"
	apierrors "github.com/westosha-tf/team-portal/internal/errors"
	"github.com/westosha-tf/team-portal/internal/services"
)

// ScheduleHandler serves the public calendar and the coach editor.
type ScheduleHandler struct {
	scheduleService *services.ScheduleService
	calendarService *services.CalendarService
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(scheduleService *services.ScheduleService, calendarService *services.CalendarService) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleService: scheduleService,
		calendarService: calendarService,
	}
}

// ScheduleEventRequest is the create and edit form for an event.
type ScheduleEventRequest struct {
	Date      string  `json:"date" form:"date" binding:"required"`
	StartTime string  `json:"start_time" form:"start_time"`
	Type      string  `json:"type" form:"type" binding:"required"`
	Title     string  `json:"title" form:"title" binding:"required"`
	Location  *string `json:"location" form:"location"`
	Notes     *string `json:"notes" form:"notes"`
}

func (r ScheduleEventRequest) input() services.ScheduleEventInput {
	return services.ScheduleEventInput{
		Date:      r.Date,
		StartTime: r.StartTime,
		Type:      r.Type,
		Title:     r.Title,
		Location:  r.Location,
		Notes:     r.Notes,
	}
}

// List handles GET /schedule and GET /coach/schedule
func (h *ScheduleHandler) List(c *gin.Context) {
	h.respondList(c, http.StatusOK)
}

// Calendar handles GET /schedule.ics
func (h *ScheduleHandler) Calendar(c *gin.Context) {
	feed, err := h.calendarService.Feed(c.Request.Context())
	if err != nil {
		respondScheduleError(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="schedule.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(feed))
}

// Create handles POST /coach/schedule
func (h *ScheduleHandler) Create(c *gin.Context) {
	var req ScheduleEventRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if _, err := h.scheduleService.Create(c.Request.Context(), req.input()); err != nil {
		respondScheduleError(c, err)
		return
	}

	h.respondList(c, http.StatusCreated)
}

// Update handles PUT /coach/schedule/:id
func (h *ScheduleHandler) Update(c *gin.Context) {
	var req ScheduleEventRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if _, err := h.scheduleService.Update(c.Request.Context(), c.Param("id"), req.input()); err != nil {
		respondScheduleError(c, err)
		return
	}

	h.respondList(c, http.StatusOK)
}

// Delete handles DELETE /coach/schedule/:id
func (h *ScheduleHandler) Delete(c *gin.Context) {
	if err := h.scheduleService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondScheduleError(c, err)
		return
	}

	h.respondList(c, http.StatusOK)
}

func (h *ScheduleHandler) respondList(c *gin.Context, status int) {
	events, err := h.scheduleService.List(c.Request.Context())
	if err != nil {
		respondScheduleError(c, err)
		return
	}

	c.JSON(status, dto.SchedulePage{Events: dto.ToScheduleEventDTOs(events)})
}

func respondScheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrInvalidEventType),
		errors.Is(err, services.ErrInvalidEventDate),
		errors.Is(err, services.ErrInvalidEventStart):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrEventNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, err.Error())
	}
}
