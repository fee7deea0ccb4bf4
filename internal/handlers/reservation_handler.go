package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/navalha-labs/booking-engine/internal/httperr"
	"github.com/navalha-labs/booking-engine/internal/httpresp"
	"github.com/navalha-labs/booking-engine/internal/middleware"
	"github.com/navalha-labs/booking-engine/internal/models"
	"github.com/navalha-labs/booking-engine/internal/timezone"
	ucReservation "github.com/navalha-labs/booking-engine/internal/usecase/reservation"
)

type ReservationHandler struct {
	create     *ucReservation.CreateReservation
	cancel     *ucReservation.CancelReservation
	transition *ucReservation.TransitionReservation
	listByDate *ucReservation.ListByDate
}

func NewReservationHandler(
	create *ucReservation.CreateReservation,
	cancel *ucReservation.CancelReservation,
	transition *ucReservation.TransitionReservation,
	listByDate *ucReservation.ListByDate,
) *ReservationHandler {
	return &ReservationHandler{
		create:     create,
		cancel:     cancel,
		transition: transition,
		listByDate: listByDate,
	}
}

// --------- Requests ---------

type CreateReservationRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	ServiceIDs  []uint `json:"service_ids" binding:"required,min=1"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"` // HH:mm
	Notes       string `json:"notes"`
}

// --------- Handlers ---------

func (h *ReservationHandler) Create(c *gin.Context) {
	providerID := providerFromContext(c)

	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	r, err := h.create.Execute(c.Request.Context(), ucReservation.CreateReservationInput{
		ProviderID:     providerID,
		ClientName:     req.ClientName,
		ClientPhone:    req.ClientPhone,
		ClientEmail:    req.ClientEmail,
		ServiceIDs:     req.ServiceIDs,
		Date:           req.Date,
		Time:           req.Time,
		Notes:          req.Notes,
		IdempotencyKey: c.GetHeader("Idempotency-Key"),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, r)
}

func (h *ReservationHandler) ListByDate(c *gin.Context) {
	providerID := providerFromContext(c)

	date, err := timezone.ParseDate(c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "")
		return
	}

	out, err := h.listByDate.Execute(c.Request.Context(), providerID, date)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, out)
}

func (h *ReservationHandler) Cancel(c *gin.Context) {
	providerID := providerFromContext(c)

	id, ok := reservationID(c)
	if !ok {
		return
	}

	r, err := h.cancel.Execute(
		c.Request.Context(),
		id,
		ucReservation.Actor{ProviderID: providerID},
	)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, r)
}

func (h *ReservationHandler) CheckIn(c *gin.Context) {
	h.applyTransition(c, h.transition.CheckIn)
}

func (h *ReservationHandler) Start(c *gin.Context) {
	h.applyTransition(c, h.transition.Start)
}

func (h *ReservationHandler) Fulfill(c *gin.Context) {
	h.applyTransition(c, h.transition.Fulfill)
}

func (h *ReservationHandler) MarkNoShow(c *gin.Context) {
	h.applyTransition(c, h.transition.MarkNoShow)
}

// --------- Helpers ---------

func (h *ReservationHandler) applyTransition(
	c *gin.Context,
	apply func(ctx context.Context, id uint, actor ucReservation.Actor) (*models.Reservation, error),
) {
	providerID := providerFromContext(c)

	id, ok := reservationID(c)
	if !ok {
		return
	}

	r, err := apply(
		c.Request.Context(),
		id,
		ucReservation.Actor{ProviderID: providerID},
	)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, r)
}

func providerFromContext(c *gin.Context) uint {
	v, _ := c.Get(middleware.ContextProviderID)
	id, _ := v.(uint)
	return id
}

func reservationID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_reservation_id", "")
		return 0, false
	}
	return uint(id), true
}
