package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/westosha-tf/team-portal/internal/constants"
	"github.com/westosha-tf/team-portal/internal/dto"
	apierrors "github.com/westosha-tf/team-portal/internal/errors"
	"github.com/westosha-tf/team-portal/internal/middleware"
	"github.com/westosha-tf/team-portal/internal/services"
)

// AnnouncementHandler serves the public feed and the coach editor.
type AnnouncementHandler struct {
	announcementService *services.AnnouncementService
}

// NewAnnouncementHandler creates a new AnnouncementHandler.
func NewAnnouncementHandler(announcementService *services.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{announcementService: announcementService}
}

// PublicList handles GET /announcements
func (h *AnnouncementHandler) PublicList(c *gin.Context) {
	h.respondList(c, http.StatusOK, constants.PublicAnnouncementLimit)
}

// CoachList handles GET /coach/announcements
func (h *AnnouncementHandler) CoachList(c *gin.Context) {
	h.respondList(c, http.StatusOK, constants.CoachAnnouncementLimit)
}

// Create handles POST /coach/announcements
func (h *AnnouncementHandler) Create(c *gin.Context) {
	type CreateAnnouncementRequest struct {
		Title  string `json:"title" form:"title" binding:"required"`
		Body   string `json:"body" form:"body" binding:"required"`
		Pinned bool   `json:"pinned" form:"pinned"`
	}

	var req CreateAnnouncementRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	userID, _ := middleware.GetUserID(c)
	_, err := h.announcementService.Create(c.Request.Context(), services.CreateAnnouncementInput{
		Title:     req.Title,
		Body:      req.Body,
		Pinned:    req.Pinned,
		CreatedBy: userID,
	})
	if err != nil {
		respondAnnouncementError(c, err)
		return
	}

	h.respondList(c, http.StatusCreated, constants.CoachAnnouncementLimit)
}

// SetPinned handles PATCH /coach/announcements/:id
func (h *AnnouncementHandler) SetPinned(c *gin.Context) {
	type PinRequest struct {
		Pinned *bool `json:"pinned" form:"pinned" binding:"required"`
	}

	var req PinRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.announcementService.SetPinned(c.Request.Context(), c.Param("id"), *req.Pinned); err != nil {
		respondAnnouncementError(c, err)
		return
	}

	h.respondList(c, http.StatusOK, constants.CoachAnnouncementLimit)
}

// Delete handles DELETE /coach/announcements/:id
func (h *AnnouncementHandler) Delete(c *gin.Context) {
	if err := h.announcementService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondAnnouncementError(c, err)
		return
	}

	h.respondList(c, http.StatusOK, constants.CoachAnnouncementLimit)
}

func (h *AnnouncementHandler) respondList(c *gin.Context, status, limit int) {
	announcements, err := h.announcementService.List(c.Request.Context(), limit)
	if err != nil {
		respondAnnouncementError(c, err)
		return
	}

	c.JSON(status, dto.AnnouncementsPage{Announcements: dto.ToAnnouncementDTOs(announcements)})
}

func respondAnnouncementError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrBodyRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrAnnouncementNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, err.Error())
	}
}
