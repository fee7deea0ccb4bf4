package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/navalha-labs/booking-engine/internal/httperr"
	"github.com/navalha-labs/booking-engine/internal/models"
)

type ScheduleHandler struct {
	db *gorm.DB
}

func NewScheduleHandler(db *gorm.DB) *ScheduleHandler {
	return &ScheduleHandler{db: db}
}

type ScheduleDayConfig struct {
	Weekday    int    `json:"weekday" binding:"min=0,max=6"`
	Active     bool   `json:"active"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	LunchStart string `json:"lunch_start"`
	LunchEnd   string `json:"lunch_end"`
}

type ScheduleUpdateRequest struct {
	Days []ScheduleDayConfig `json:"days" binding:"required"`
}

func (h *ScheduleHandler) Get(c *gin.Context) {
	providerID := providerFromContext(c)

	var days []models.ProviderSchedule
	if err := h.db.
		Where("provider_id = ?", providerID).
		Order("weekday ASC").
		Find(&days).Error; err != nil {
		httperr.Internal(c, "failed_to_get_schedule", "")
		return
	}

	c.JSON(http.StatusOK, days)
}

func (h *ScheduleHandler) Update(c *gin.Context) {
	providerID := providerFromContext(c)

	var req ScheduleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	for _, d := range req.Days {
		if d.Active && !validHoursPair(d.StartTime, d.EndTime) {
			httperr.BadRequest(c, "invalid_hours", "")
			return
		}
	}

	if err := h.db.Where("provider_id = ?", providerID).
		Delete(&models.ProviderSchedule{}).Error; err != nil {
		httperr.Internal(c, "failed_to_clear_schedule", "")
		return
	}

	var toCreate []models.ProviderSchedule
	for _, d := range req.Days {
		toCreate = append(toCreate, models.ProviderSchedule{
			ProviderID: providerID,
			Weekday:    d.Weekday,
			Active:     d.Active,
			StartTime:  d.StartTime,
			EndTime:    d.EndTime,
			LunchStart: d.LunchStart,
			LunchEnd:   d.LunchEnd,
		})
	}

	if len(toCreate) > 0 {
		if err := h.db.Create(&toCreate).Error; err != nil {
			httperr.Internal(c, "failed_to_save_schedule", "")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func validHoursPair(start, end string) bool {
	s, err := time.Parse("15:04", start)
	if err != nil {
		return false
	}
	e, err := time.Parse("15:04", end)
	if err != nil {
		return false
	}
	return e.After(s)
}
