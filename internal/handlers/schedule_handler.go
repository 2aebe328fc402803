package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	ucSchedule "github.com/BruksfildServices01/barber-booking/internal/usecase/schedule"
)

type ScheduleHandler struct {
	publish *ucSchedule.PublishRoster
	hidden  *ucSchedule.HiddenHours
}

func NewScheduleHandler(
	publish *ucSchedule.PublishRoster,
	hidden *ucSchedule.HiddenHours,
) *ScheduleHandler {
	return &ScheduleHandler{publish: publish, hidden: hidden}
}

type RosterAssignmentRequest struct {
	BarberID  uuid.UUID `json:"barber_id" binding:"required"`
	Date      string    `json:"date" binding:"required"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	IsDayOff  bool      `json:"is_day_off"`
}

type PublishRosterRequest struct {
	StartDate   string                    `json:"start_date" binding:"required"`
	EndDate     string                    `json:"end_date" binding:"required"`
	Assignments []RosterAssignmentRequest `json:"assignments" binding:"required,min=1,dive"`
}

type HiddenHoursRequest struct {
	Date  string   `json:"date" binding:"required"`
	Slots []string `json:"slots"`
}

func (h *ScheduleHandler) PublishRoster(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	var req PublishRosterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid roster.")
		return
	}

	in := ucSchedule.PublishRosterInput{
		Actor:     actor,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	for _, a := range req.Assignments {
		in.Assignments = append(in.Assignments, ucSchedule.AssignmentInput{
			BarberID:  a.BarberID,
			Date:      a.Date,
			StartTime: a.StartTime,
			EndTime:   a.EndTime,
			IsDayOff:  a.IsDayOff,
		})
	}

	roster, err := h.publish.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, roster)
}

// GetMyHiddenHours lists the authenticated barber's hidden slots for ?date=.
func (h *ScheduleHandler) GetMyHiddenHours(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	date, ok := requiredQuery(c, "date")
	if !ok {
		return
	}

	slots, err := h.hidden.List(c.Request.Context(), actor.UserID, date)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"date": date, "slots": slots})
}

func (h *ScheduleHandler) SetMyHiddenHours(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	h.setHiddenHours(c, actor.UserID)
}

func (h *ScheduleHandler) SetBarberHiddenHours(c *gin.Context) {
	barberID, ok := uuidParam(c, "barberId")
	if !ok {
		return
	}
	h.setHiddenHours(c, barberID)
}

func (h *ScheduleHandler) setHiddenHours(c *gin.Context, barberID uuid.UUID) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	var req HiddenHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid hidden hours.")
		return
	}

	slots, err := h.hidden.Set(c.Request.Context(), actor, barberID, req.Date, req.Slots)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"date": req.Date, "slots": slots})
}
