package handlers

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/westosha-tf/team-portal/internal/dto"
	apierrors "github.com/westosha-tf/team-portal/internal/errors"
	"github.com/westosha-tf/team-portal/internal/middleware"
	"github.com/westosha-tf/team-portal/internal/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AttendanceHandler serves athlete check-ins and the coach roster.
type AttendanceHandler struct {
	attendanceService *services.AttendanceService
	exportService     *services.ExportService
}

// NewAttendanceHandler creates a new AttendanceHandler.
func NewAttendanceHandler(attendanceService *services.AttendanceService, exportService *services.ExportService) *AttendanceHandler {
	return &AttendanceHandler{
		attendanceService: attendanceService,
		exportService:     exportService,
	}
}

// CheckIn handles PUT /portal/attendance
func (h *AttendanceHandler) CheckIn(c *gin.Context) {
	type CheckInRequest struct {
		Status string  `json:"status" form:"status" binding:"required,oneof=present late absent injured"`
		Note   *string `json:"note" form:"note"`
	}

	var req CheckInRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	athleteID, _ := middleware.GetUserID(c)
	rec, err := h.attendanceService.CheckIn(c.Request.Context(), services.CheckInInput{
		AthleteID: athleteID,
		Status:    req.Status,
		Note:      req.Note,
	})
	if err != nil {
		respondAttendanceError(c, err)
		return
	}

	attendance := dto.ToAttendanceDTO(*rec)
	c.JSON(http.StatusOK, gin.H{
		"message":    "Attendance saved!",
		"attendance": attendance,
	})
}

// CoachList handles GET /coach/attendance?date=YYYY-MM-DD
func (h *AttendanceHandler) CoachList(c *gin.Context) {
	day, raw, err := optionalDateQuery(c, "date")
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	records, err := h.attendanceService.List(c.Request.Context(), day)
	if err != nil {
		respondAttendanceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CoachAttendancePage{
		Date:    raw,
		Records: dto.ToAttendanceDTOs(records),
	})
}

// Export handles GET /coach/attendance/export?date=YYYY-MM-DD
func (h *AttendanceHandler) Export(c *gin.Context) {
	day, _, err := optionalDateQuery(c, "date")
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	buf, filename, err := h.exportService.ExportAttendance(c.Request.Context(), day)
	if err != nil {
		respondAttendanceError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func respondAttendanceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidAttendanceStatus):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, err.Error())
	}
}
