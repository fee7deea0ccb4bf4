package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/navalha-labs/booking-engine/internal/domain/booking"
	"github.com/navalha-labs/booking-engine/internal/httperr"
	"github.com/navalha-labs/booking-engine/internal/httpresp"
)

type CommissionHandler struct {
	store booking.CommissionStore
}

func NewCommissionHandler(store booking.CommissionStore) *CommissionHandler {
	return &CommissionHandler{store: store}
}

func (h *CommissionHandler) List(c *gin.Context) {
	providerID := providerFromContext(c)

	commissions, err := h.store.ListForProvider(c.Request.Context(), providerID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, commissions)
}
