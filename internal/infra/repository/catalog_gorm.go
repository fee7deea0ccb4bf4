package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/navalha-labs/booking-engine/internal/domain/booking"
	"github.com/navalha-labs/booking-engine/internal/httperr"
	"github.com/navalha-labs/booking-engine/internal/models"
)

type CatalogGormRepository struct {
	db *gorm.DB
}

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

// --------------------------------------------------
// Services
// --------------------------------------------------

func (r *CatalogGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		return nil, storageErr(err)
	}
	return &svc, nil
}

func (r *CatalogGormRepository) GetServices(
	ctx context.Context,
	ids []uint,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&services).Error; err != nil {
		return nil, storageErr(err)
	}
	return services, nil
}

func (r *CatalogGormRepository) MaxServiceDuration(
	ctx context.Context,
) (time.Duration, error) {

	var minutes int
	if err := r.db.WithContext(ctx).
		Model(&models.Service{}).
		Select("COALESCE(MAX(duration_min), 0)").
		Where("active = ?", true).
		Scan(&minutes).Error; err != nil {
		return 0, storageErr(err)
	}

	return time.Duration(minutes) * time.Minute, nil
}

// --------------------------------------------------
// Schedules
// --------------------------------------------------

func (r *CatalogGormRepository) GetSchedule(
	ctx context.Context,
	providerID uint,
	weekday int,
) (*models.ProviderSchedule, error) {

	var sched models.ProviderSchedule
	err := r.db.WithContext(ctx).
		Where("provider_id = ? AND weekday = ?", providerID, weekday).
		First(&sched).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storageErr(err)
	}

	return &sched, nil
}

// --------------------------------------------------
// Providers
// --------------------------------------------------

func (r *CatalogGormRepository) GetProvider(
	ctx context.Context,
	id uint,
) (*models.Provider, error) {

	var provider models.Provider
	if err := r.db.WithContext(ctx).First(&provider, id).Error; err != nil {
		return nil, storageErr(err)
	}
	return &provider, nil
}

// storageErr keeps not-found distinguishable for callers and wraps everything
// else as a collaborator failure, which the engine never retries itself.
func storageErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return httperr.Unavailable(httperr.CodeStorage, err)
}

// Compile-time check
var _ booking.CatalogReader = (*CatalogGormRepository)(nil)
