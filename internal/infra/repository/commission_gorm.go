package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/navalha-labs/booking-engine/internal/domain/booking"
	"github.com/navalha-labs/booking-engine/internal/models"
)

type CommissionGormRepository struct {
	db *gorm.DB
}

func NewCommissionGormRepository(db *gorm.DB) *CommissionGormRepository {
	return &CommissionGormRepository{db: db}
}

// InsertOnce relies on the unique index on reservation_id: a second insert
// for the same reservation is a silent no-op, which makes the commission
// calculation idempotent across repeated status-transition events.
func (r *CommissionGormRepository) InsertOnce(
	ctx context.Context,
	c *models.Commission,
) (bool, error) {

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "reservation_id"}},
			DoNothing: true,
		}).
		Create(c)
	if result.Error != nil {
		return false, storageErr(result.Error)
	}

	return result.RowsAffected > 0, nil
}

func (r *CommissionGormRepository) ListForProvider(
	ctx context.Context,
	providerID uint,
) ([]models.Commission, error) {

	var commissions []models.Commission
	if err := r.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("created_at DESC").
		Find(&commissions).Error; err != nil {
		return nil, storageErr(err)
	}

	return commissions, nil
}

// Compile-time check
var _ booking.CommissionStore = (*CommissionGormRepository)(nil)
