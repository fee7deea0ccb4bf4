package booking

import (
	"context"
	"errors"
	"time"

	"github.com/navalha-labs/booking-engine/internal/models"
)

// ErrDuplicateKey signals that an idempotency key raced an earlier commit for
// the same client; the caller should re-read and return the existing row.
var ErrDuplicateKey = errors.New("duplicate idempotency key")

// WindowWideningCap bounds how far the conflict window stretches beyond the
// requested interval when the catalog holds no longer service.
const WindowWideningCap = 8 * time.Hour

type AvailabilityInput struct {
	ProviderID uint
	Date       time.Time
	ServiceIDs []uint
}

// CatalogReader is the read-only lookup of services and provider schedules.
type CatalogReader interface {
	GetService(ctx context.Context, id uint) (*models.Service, error)

	GetServices(ctx context.Context, ids []uint) ([]models.Service, error)

	GetSchedule(
		ctx context.Context,
		providerID uint,
		weekday int,
	) (*models.ProviderSchedule, error)

	GetProvider(ctx context.Context, id uint) (*models.Provider, error)

	// MaxServiceDuration is the longest active service, used to widen
	// conflict windows across civil-day boundaries.
	MaxServiceDuration(ctx context.Context) (time.Duration, error)
}

// ReservationStore is the write side. InsertAtomic must re-validate
// non-overlap inside the same transaction as the insert: for two concurrent
// commits with overlapping intervals on one provider, exactly one wins.
type ReservationStore interface {
	FindOverlapping(
		ctx context.Context,
		providerID uint,
		from time.Time,
		to time.Time,
	) ([]models.Reservation, error)

	InsertAtomic(
		ctx context.Context,
		r *models.Reservation,
		items []models.ReservationItem,
	) error

	FindByIdempotencyKey(
		ctx context.Context,
		clientID uint,
		key string,
	) (*models.Reservation, error)

	GetReservation(ctx context.Context, id uint) (*models.Reservation, error)

	UpdateReservation(ctx context.Context, r *models.Reservation) error

	ListForPeriod(
		ctx context.Context,
		providerID uint,
		from time.Time,
		to time.Time,
	) ([]models.Reservation, error)
}

type ClientStore interface {
	GetOrCreateClient(
		ctx context.Context,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	GetClient(ctx context.Context, id uint) (*models.Client, error)
}

// SubscriptionReader resolves the single qualifying subscription for a
// client. Returns (nil, nil, nil) when none qualifies.
type SubscriptionReader interface {
	GetActiveSubscription(
		ctx context.Context,
		clientID uint,
		now time.Time,
	) (*models.ClientSubscription, []models.PlanDiscount, error)
}

// CommissionStore inserts at most one commission per reservation.
type CommissionStore interface {
	// InsertOnce reports false when a commission for the reservation
	// already exists. Idempotence is backed by a storage-level unique
	// constraint, not in-process locking.
	InsertOnce(ctx context.Context, c *models.Commission) (bool, error)

	ListForProvider(ctx context.Context, providerID uint) ([]models.Commission, error)
}
