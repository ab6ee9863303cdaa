package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/westosha-tf/team-portal/internal/dto"
	apierrors "github.com/westosha-tf/team-portal/internal/errors"
	"github.com/westosha-tf/team-portal/internal/middleware"
	"github.com/westosha-tf/team-portal/internal/services"
	"github.com/westosha-tf/team-portal/internal/utils"
)

var coachSections = []string{"announcements", "attendance", "schedule", "reflections", "docs"}

// HomeHandler serves the landing pages.
type HomeHandler struct {
	announcementService *services.AnnouncementService
	scheduleService     *services.ScheduleService
	attendanceService   *services.AttendanceService
}

// NewHomeHandler creates a new HomeHandler.
func NewHomeHandler(
	announcementService *services.AnnouncementService,
	scheduleService *services.ScheduleService,
	attendanceService *services.AttendanceService,
) *HomeHandler {
	return &HomeHandler{
		announcementService: announcementService,
		scheduleService:     scheduleService,
		attendanceService:   attendanceService,
	}
}

// Home handles GET / with the next event and the top announcement.
func (h *HomeHandler) Home(c *gin.Context) {
	ctx := c.Request.Context()
	var page dto.HomePage

	next, err := h.scheduleService.Next(ctx)
	if err != nil {
		apierrors.InternalError(c, err.Error())
		return
	}
	if next != nil {
		event := dto.ToScheduleEventDTO(*next)
		page.NextEvent = &event
	}

	latest, err := h.announcementService.Latest(ctx)
	if err != nil {
		apierrors.InternalError(c, err.Error())
		return
	}
	if latest != nil {
		announcement := dto.ToAnnouncementDTO(*latest)
		page.LatestAnnouncement = &announcement
	}

	c.JSON(http.StatusOK, page)
}

// CoachHome handles GET /coach
func (h *HomeHandler) CoachHome(c *gin.Context) {
	user, _ := middleware.GetUser(c)
	c.JSON(http.StatusOK, dto.CoachHome{
		User:     dto.ToUserDTO(*user),
		Sections: coachSections,
	})
}

// AthletePortal handles GET /portal with today's attendance state.
func (h *HomeHandler) AthletePortal(c *gin.Context) {
	user, _ := middleware.GetUser(c)

	rec, err := h.attendanceService.TodayFor(c.Request.Context(), user.ID)
	if err != nil {
		apierrors.InternalError(c, err.Error())
		return
	}

	page := dto.AthletePortal{
		User:        dto.ToUserDTO(*user),
		Date:        utils.FormatDate(h.attendanceService.Today()),
		StatusLabel: dto.StatusLabel(rec),
	}
	if rec != nil {
		attendance := dto.ToAttendanceDTO(*rec)
		page.Attendance = &attendance
	}

	c.JSON(http.StatusOK, page)
}
