package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	ucBooking "github.com/BruksfildServices01/barber-booking/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	availability *ucBooking.GetAvailability
	create       *ucBooking.CreateBooking
	cancel       *ucBooking.CancelBooking
	complete     *ucBooking.CompleteBooking
	noShow       *ucBooking.MarkNoShow
	listCustomer *ucBooking.ListCustomerBookings
	listBarber   *ucBooking.ListBarberBookings
}

func NewBookingHandler(
	availability *ucBooking.GetAvailability,
	create *ucBooking.CreateBooking,
	cancel *ucBooking.CancelBooking,
	complete *ucBooking.CompleteBooking,
	noShow *ucBooking.MarkNoShow,
	listCustomer *ucBooking.ListCustomerBookings,
	listBarber *ucBooking.ListBarberBookings,
) *BookingHandler {
	return &BookingHandler{
		availability: availability,
		create:       create,
		cancel:       cancel,
		complete:     complete,
		noShow:       noShow,
		listCustomer: listCustomer,
		listBarber:   listBarber,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	BarberID   uuid.UUID   `json:"barber_id" binding:"required"`
	Date       string      `json:"date" binding:"required"`
	TimeSlot   string      `json:"time_slot" binding:"required"`
	ServiceIDs []uuid.UUID `json:"service_ids" binding:"required,min=1"`

	RewardServiceID *uuid.UUID `json:"reward_service_id"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *BookingHandler) Availability(c *gin.Context) {
	barberID, ok := uuidParam(c, "barberId")
	if !ok {
		return
	}

	date, ok := requiredQuery(c, "date")
	if !ok {
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), barberID, date)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"date":  date,
		"slots": slots,
	})
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid booking request.")
		return
	}

	in := ucBooking.CreateBookingInput{
		Actor:      actor,
		BarberID:   req.BarberID,
		Date:       req.Date,
		TimeSlot:   req.TimeSlot,
		ServiceIDs: req.ServiceIDs,
	}
	if req.RewardServiceID != nil {
		in.Reward = &ucBooking.RewardContext{ServiceID: *req.RewardServiceID}
	}

	b, err := h.create.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, b)
}

// ======================================================
// LISTINGS
// ======================================================

func (h *BookingHandler) ListMine(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	bookings, err := h.listCustomer.Execute(c.Request.Context(), actor.UserID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, bookings)
}

func (h *BookingHandler) ListBarberDay(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	date, ok := requiredQuery(c, "date")
	if !ok {
		return
	}

	bookings, err := h.listBarber.Execute(c.Request.Context(), actor.UserID, date)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, bookings)
}

// ======================================================
// TRANSITIONS
// ======================================================

func (h *BookingHandler) Cancel(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	// The body is optional; an empty one decodes to io.EOF.
	var req CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		httperr.BadRequest(c, "invalid_request", "Invalid cancel request.")
		return
	}

	if _, err := h.cancel.Execute(c.Request.Context(), id, actor, req.Reason); err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Success(c)
}

func (h *BookingHandler) Complete(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if _, err := h.complete.Execute(c.Request.Context(), id, actor); err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Success(c)
}

func (h *BookingHandler) NoShow(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if _, err := h.noShow.Execute(c.Request.Context(), id, actor); err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Success(c)
}
