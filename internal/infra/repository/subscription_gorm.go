package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/navalha-labs/booking-engine/internal/domain/booking"
	"github.com/navalha-labs/booking-engine/internal/models"
)

type SubscriptionGormRepository struct {
	db *gorm.DB
}

func NewSubscriptionGormRepository(db *gorm.DB) *SubscriptionGormRepository {
	return &SubscriptionGormRepository{db: db}
}

// GetActiveSubscription resolves the single qualifying subscription for a
// client plus its plan's discount rules. No qualifying row is not an error.
func (r *SubscriptionGormRepository) GetActiveSubscription(
	ctx context.Context,
	clientID uint,
	now time.Time,
) (*models.ClientSubscription, []models.PlanDiscount, error) {

	var sub models.ClientSubscription
	err := r.db.WithContext(ctx).
		Where(
			"client_id = ? AND status IN ? AND period_end > ?",
			clientID,
			[]string{models.SubscriptionActive, models.SubscriptionTrialing},
			now,
		).
		Order("period_end DESC").
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil
		}
		return nil, nil, storageErr(err)
	}

	var discounts []models.PlanDiscount
	if err := r.db.WithContext(ctx).
		Where("plan_id = ?", sub.PlanID).
		Find(&discounts).Error; err != nil {
		return nil, nil, storageErr(err)
	}

	return &sub, discounts, nil
}

// --------------------------------------------------
// Billing sync side
// --------------------------------------------------

func (r *SubscriptionGormRepository) GetByPreapprovalID(
	ctx context.Context,
	preapprovalID string,
) (*models.ClientSubscription, error) {

	var sub models.ClientSubscription
	if err := r.db.WithContext(ctx).
		Where("preapproval_id = ?", preapprovalID).
		First(&sub).Error; err != nil {
		return nil, storageErr(err)
	}

	return &sub, nil
}

func (r *SubscriptionGormRepository) UpdateSubscription(
	ctx context.Context,
	sub *models.ClientSubscription,
) error {
	if err := r.db.WithContext(ctx).Save(sub).Error; err != nil {
		return storageErr(err)
	}
	return nil
}

// Compile-time check
var _ booking.SubscriptionReader = (*SubscriptionGormRepository)(nil)
