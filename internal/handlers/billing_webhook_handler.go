package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/navalha-labs/booking-engine/internal/billing"
)

// BillingWebhookHandler receives Mercado Pago preapproval notifications and
// triggers a local subscription refresh. The gateway retries on non-2xx, so
// sync failures return 500 and unknown notification types are acknowledged.
type BillingWebhookHandler struct {
	syncer *billing.SubscriptionSyncer
	log    zerolog.Logger
}

func NewBillingWebhookHandler(syncer *billing.SubscriptionSyncer, log zerolog.Logger) *BillingWebhookHandler {
	return &BillingWebhookHandler{syncer: syncer, log: log}
}

type mpNotification struct {
	Type string `json:"type"`
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

func (h *BillingWebhookHandler) Handle(c *gin.Context) {
	if h.syncer == nil {
		c.Status(http.StatusNotImplemented)
		return
	}

	var n mpNotification
	if err := c.ShouldBindJSON(&n); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_notification"})
		return
	}

	if n.Type != "subscription_preapproval" || n.Data.ID == "" {
		c.Status(http.StatusOK)
		return
	}

	if err := h.syncer.Sync(c.Request.Context(), n.Data.ID); err != nil {
		h.log.Error().Err(err).Str("preapproval_id", n.Data.ID).Msg("subscription sync failed")
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusOK)
}
