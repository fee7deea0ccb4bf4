package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/navalha-labs/booking-engine/internal/domain/booking"
	"github.com/navalha-labs/booking-engine/internal/httperr"
	"github.com/navalha-labs/booking-engine/internal/models"
)

type ReservationGormRepository struct {
	db *gorm.DB
}

func NewReservationGormRepository(db *gorm.DB) *ReservationGormRepository {
	return &ReservationGormRepository{db: db}
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

func (r *ReservationGormRepository) FindOverlapping(
	ctx context.Context,
	providerID uint,
	from time.Time,
	to time.Time,
) ([]models.Reservation, error) {

	var reservations []models.Reservation
	if err := r.db.WithContext(ctx).
		Where(
			"provider_id = ? AND status <> ? AND start_at < ? AND end_at > ?",
			providerID,
			string(booking.StatusCancelled),
			to,
			from,
		).
		Order("start_at ASC").
		Find(&reservations).Error; err != nil {
		return nil, storageErr(err)
	}

	return reservations, nil
}

func (r *ReservationGormRepository) GetReservation(
	ctx context.Context,
	id uint,
) (*models.Reservation, error) {

	var res models.Reservation
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Service").
		Preload("Client").
		First(&res, id).Error; err != nil {
		return nil, storageErr(err)
	}

	return &res, nil
}

func (r *ReservationGormRepository) FindByIdempotencyKey(
	ctx context.Context,
	clientID uint,
	key string,
) (*models.Reservation, error) {

	var res models.Reservation
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("client_id = ? AND idempotency_key = ?", clientID, key).
		First(&res).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storageErr(err)
	}

	return &res, nil
}

func (r *ReservationGormRepository) ListForPeriod(
	ctx context.Context,
	providerID uint,
	from time.Time,
	to time.Time,
) ([]models.Reservation, error) {

	var reservations []models.Reservation
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Items").
		Preload("Items.Service").
		Where(
			"provider_id = ? AND start_at >= ? AND start_at < ?",
			providerID,
			from,
			to,
		).
		Order("start_at ASC").
		Find(&reservations).Error; err != nil {
		return nil, storageErr(err)
	}

	return reservations, nil
}

// --------------------------------------------------
// Writes
// --------------------------------------------------

// InsertAtomic serializes commits per provider with a row lock and re-checks
// non-overlap inside the same transaction as the insert. The btree_gist
// exclusion constraint on (provider_id, tstzrange) is the storage-level
// backstop: even a bypassed lock cannot produce two overlapping rows.
func (r *ReservationGormRepository) InsertAtomic(
	ctx context.Context,
	res *models.Reservation,
	items []models.ReservationItem,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var provider models.Provider
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&provider, res.ProviderID).Error; err != nil {
			return storageErr(err)
		}

		var count int64
		if err := tx.
			Model(&models.Reservation{}).
			Where(
				"provider_id = ? AND status <> ? AND start_at < ? AND end_at > ?",
				res.ProviderID,
				string(booking.StatusCancelled),
				res.EndAt,
				res.StartAt,
			).
			Count(&count).Error; err != nil {
			return storageErr(err)
		}
		if count > 0 {
			return httperr.Conflict(httperr.CodeSlotConflict)
		}

		if err := tx.Omit("Items", "Provider", "Client").Create(res).Error; err != nil {
			return translateWriteErr(err)
		}

		for i := range items {
			items[i].ReservationID = res.ID
		}
		if err := tx.Omit("Service").Create(&items).Error; err != nil {
			return translateWriteErr(err)
		}

		return nil
	})
}

func (r *ReservationGormRepository) UpdateReservation(
	ctx context.Context,
	res *models.Reservation,
) error {

	err := r.db.WithContext(ctx).
		Omit("Items", "Provider", "Client").
		Save(res).Error
	if err != nil {
		return storageErr(err)
	}
	return nil
}

// translateWriteErr maps postgres constraint violations to domain errors:
// 23P01 is the interval exclusion constraint firing, 23505 on the
// idempotency index is a retried submission racing its original.
func translateWriteErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23P01":
			return httperr.Conflict(httperr.CodeSlotConflict)
		case "23505":
			if strings.Contains(pgErr.ConstraintName, "idem") {
				return booking.ErrDuplicateKey
			}
			return httperr.Conflict(httperr.CodeSlotConflict)
		}
	}
	return storageErr(err)
}

// Compile-time check
var _ booking.ReservationStore = (*ReservationGormRepository)(nil)
