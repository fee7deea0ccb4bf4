package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/navalha-labs/booking-engine/internal/domain/booking"
	"github.com/navalha-labs/booking-engine/internal/httperr"
	"github.com/navalha-labs/booking-engine/internal/httpresp"
	"github.com/navalha-labs/booking-engine/internal/models"
	"github.com/navalha-labs/booking-engine/internal/timezone"
	ucReservation "github.com/navalha-labs/booking-engine/internal/usecase/reservation"
	"github.com/navalha-labs/booking-engine/internal/validators"
)

type PublicHandler struct {
	db           *gorm.DB
	availability *ucReservation.GetAvailability
	create       *ucReservation.CreateReservation
	cancel       *ucReservation.CancelReservation
}

func NewPublicHandler(
	db *gorm.DB,
	availability *ucReservation.GetAvailability,
	create *ucReservation.CreateReservation,
	cancel *ucReservation.CancelReservation,
) *PublicHandler {
	return &PublicHandler{
		db:           db,
		availability: availability,
		create:       create,
		cancel:       cancel,
	}
}

// --------- Requests ---------

type PublicCreateReservationRequest struct {
	ProviderID  uint   `json:"provider_id" binding:"required"`
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	ServiceIDs  []uint `json:"service_ids" binding:"required,min=1"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"` // HH:mm
	Notes       string `json:"notes"`
}

type PublicCancelRequest struct {
	ClientID uint `json:"client_id" binding:"required"`
}

// --------- Services ---------

func (h *PublicHandler) ListServices(c *gin.Context) {
	var services []models.Service
	if err := h.db.
		Where("active = true").
		Order("id ASC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "")
		return
	}

	httpresp.List(c, services)
}

// --------- Availability ---------

func (h *PublicHandler) Availability(c *gin.Context) {
	providerID, err := strconv.ParseUint(c.Query("provider_id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_provider_id", "")
		return
	}

	date, err := timezone.ParseDate(c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "")
		return
	}

	serviceIDs, err := parseServiceIDs(c.Query("service_ids"))
	if err != nil {
		httperr.BadRequest(c, "invalid_service_ids", "")
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), booking.AvailabilityInput{
		ProviderID: uint(providerID),
		Date:       date,
		ServiceIDs: serviceIDs,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, slots)
}

// --------- Booking ---------

func (h *PublicHandler) CreateReservation(c *gin.Context) {
	var req PublicCreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if !validators.IsPhoneValid(req.ClientPhone) {
		httperr.BadRequest(c, "invalid_phone", "")
		return
	}

	r, err := h.create.Execute(c.Request.Context(), ucReservation.CreateReservationInput{
		ProviderID:     req.ProviderID,
		ClientName:     req.ClientName,
		ClientPhone:    req.ClientPhone,
		ClientEmail:    req.ClientEmail,
		ServiceIDs:     req.ServiceIDs,
		Date:           req.Date,
		Time:           req.Time,
		Notes:          req.Notes,
		IdempotencyKey: strings.TrimSpace(c.GetHeader("Idempotency-Key")),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, r)
}

func (h *PublicHandler) CancelReservation(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_reservation_id", "")
		return
	}

	var req PublicCancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	r, err := h.cancel.Execute(
		c.Request.Context(),
		uint(id),
		ucReservation.Actor{ClientID: req.ClientID},
	)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, r)
}

func parseServiceIDs(raw string) ([]uint, error) {
	if raw == "" {
		return nil, strconv.ErrSyntax
	}

	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}
