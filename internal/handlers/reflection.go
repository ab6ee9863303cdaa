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
	"github.com/westosha-tf/team-portal/internal/utils"
)

const reflectionExistsMessage = "You already submitted a reflection for this date."

// ReflectionHandler serves athlete reflections and the coach review pages.
type ReflectionHandler struct {
	reflectionService *services.ReflectionService
}

// NewReflectionHandler creates a new ReflectionHandler.
func NewReflectionHandler(reflectionService *services.ReflectionService) *ReflectionHandler {
	return &ReflectionHandler{reflectionService: reflectionService}
}

// History handles GET /portal/reflections
func (h *ReflectionHandler) History(c *gin.Context) {
	athleteID, _ := middleware.GetUserID(c)
	h.respondHistory(c, http.StatusOK, athleteID)
}

// NewForm handles GET /portal/reflections/new
func (h *ReflectionHandler) NewForm(c *gin.Context) {
	draft := h.reflectionService.Draft()
	c.JSON(http.StatusOK, dto.ReflectionForm{
		Date:   utils.FormatDate(draft.Date),
		Effort: draft.Effort,
		Energy: draft.Energy,
	})
}

// Submit handles POST /portal/reflections/new
func (h *ReflectionHandler) Submit(c *gin.Context) {
	type SubmitReflectionRequest struct {
		Date           string `json:"date" form:"date"`
		WorkoutSummary string `json:"workout_summary" form:"workout_summary"`
		Effort         *int   `json:"effort" form:"effort"`
		Energy         *int   `json:"energy" form:"energy"`
	}

	var req SubmitReflectionRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	effort, energy := constants.DefaultRating, constants.DefaultRating
	if req.Effort != nil {
		effort = *req.Effort
	}
	if req.Energy != nil {
		energy = *req.Energy
	}

	athleteID, _ := middleware.GetUserID(c)
	_, err := h.reflectionService.Submit(c.Request.Context(), services.SubmitReflectionInput{
		AthleteID:      athleteID,
		Date:           req.Date,
		WorkoutSummary: req.WorkoutSummary,
		Effort:         effort,
		Energy:         energy,
	})
	if err != nil {
		respondReflectionError(c, err)
		return
	}

	h.respondHistory(c, http.StatusCreated, athleteID)
}

// CoachList handles GET /coach/reflections?athlete_id=&date=
func (h *ReflectionHandler) CoachList(c *gin.Context) {
	day, rawDay, err := optionalDateQuery(c, "date")
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}
	athleteID := optionalQuery(c, "athlete_id")

	reflections, err := h.reflectionService.List(c.Request.Context(), services.ListReflectionsInput{
		AthleteID: athleteID,
		Date:      day,
	})
	if err != nil {
		respondReflectionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CoachReflectionsPage{
		AthleteID:   athleteID,
		Date:        rawDay,
		Reflections: dto.ToReflectionDTOs(reflections),
	})
}

// CoachGet handles GET /coach/reflections/:id
func (h *ReflectionHandler) CoachGet(c *gin.Context) {
	reflection, err := h.reflectionService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondReflectionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToReflectionDTO(*reflection))
}

func (h *ReflectionHandler) respondHistory(c *gin.Context, status int, athleteID string) {
	reflections, err := h.reflectionService.History(c.Request.Context(), athleteID)
	if err != nil {
		respondReflectionError(c, err)
		return
	}

	c.JSON(status, dto.ReflectionHistoryPage{Reflections: dto.ToReflectionDTOs(reflections)})
}

func respondReflectionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrReflectionAlreadySubmitted):
		apierrors.AlreadySubmitted(c, reflectionExistsMessage)
	case errors.Is(err, services.ErrWorkoutSummaryRequired):
		apierrors.BadRequest(c, "Please write a short workout summary.")
	case errors.Is(err, services.ErrInvalidRating),
		errors.Is(err, services.ErrInvalidReflectionDate):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrReflectionNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, err.Error())
	}
}
