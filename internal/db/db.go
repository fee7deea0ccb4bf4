package db

import (
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/navalha-labs/booking-engine/internal/config"
	"github.com/navalha-labs/booking-engine/internal/models"
)

func NewDB(cfg *config.Config, log zerolog.Logger) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get sql.DB")
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Provider{},
		&models.Client{},
		&models.Service{},
		&models.ProviderSchedule{},
		&models.Reservation{},
		&models.ReservationItem{},
		&models.SubscriptionPlan{},
		&models.PlanDiscount{},
		&models.ClientSubscription{},
		&models.Commission{},
		&models.NotificationEvent{},
	); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate")
	}

	if err := applyConstraints(db); err != nil {
		log.Fatal().Err(err).Msg("failed to apply constraints")
	}

	return db
}

// applyConstraints installs what AutoMigrate cannot express: the interval
// exclusion constraint that makes double-booking impossible at the storage
// level even if application locking is bypassed, and the partial unique
// index backing idempotency-key deduplication.
func applyConstraints(db *gorm.DB) error {
	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS btree_gist`,

		`DO $$ BEGIN
			IF NOT EXISTS (
				SELECT 1 FROM pg_constraint WHERE conname = 'reservations_no_overlap'
			) THEN
				ALTER TABLE reservations
					ADD CONSTRAINT reservations_no_overlap
					EXCLUDE USING gist (
						provider_id WITH =,
						tstzrange(start_at, end_at) WITH &&
					)
					WHERE (status <> 'cancelled');
			END IF;
		END $$`,

		`CREATE UNIQUE INDEX IF NOT EXISTS idx_reservations_client_idem
			ON reservations (client_id, idempotency_key)
			WHERE idempotency_key <> ''`,
	}

	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
