package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/navalha-labs/booking-engine/internal/billing"
	"github.com/navalha-labs/booking-engine/internal/cache"
	"github.com/navalha-labs/booking-engine/internal/config"
	"github.com/navalha-labs/booking-engine/internal/domain/commission"
	"github.com/navalha-labs/booking-engine/internal/domain/pricing"
	"github.com/navalha-labs/booking-engine/internal/handlers"
	infraRepo "github.com/navalha-labs/booking-engine/internal/infra/repository"
	"github.com/navalha-labs/booking-engine/internal/middleware"
	"github.com/navalha-labs/booking-engine/internal/notify"
	ucReservation "github.com/navalha-labs/booking-engine/internal/usecase/reservation"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	catalogRepo := infraRepo.NewCatalogGormRepository(db)
	reservationRepo := infraRepo.NewReservationGormRepository(db)
	clientRepo := infraRepo.NewClientGormRepository(db)
	subscriptionRepo := infraRepo.NewSubscriptionGormRepository(db)
	commissionRepo := infraRepo.NewCommissionGormRepository(db)

	dispatcher := notify.NewDispatcher(notify.NewStoreSink(db), log)

	var slotCache ucReservation.SlotCache
	if rdb != nil {
		slotCache = cache.NewAvailabilityCache(rdb, time.Duration(cfg.AvailabilityTTLSeconds)*time.Second)
	}

	// ======================================================
	// DOMAIN SERVICES
	// ======================================================
	pricer := pricing.NewEngine(catalogRepo, subscriptionRepo)
	commissionCalc := commission.NewCalculator(reservationRepo, catalogRepo, commissionRepo)

	// ======================================================
	// USE CASES: RESERVATIONS
	// ======================================================
	availabilityUC := ucReservation.NewGetAvailability(
		catalogRepo,
		reservationRepo,
		slotCache,
	)

	createReservationUC := ucReservation.NewCreateReservation(
		catalogRepo,
		reservationRepo,
		clientRepo,
		pricer,
		dispatcher,
	)
	createReservationUC.MinAdvanceMinutes = cfg.MinAdvanceMinutes

	cancelReservationUC := ucReservation.NewCancelReservation(
		reservationRepo,
		dispatcher,
	)

	transitionReservationUC := ucReservation.NewTransitionReservation(
		reservationRepo,
		commissionCalc,
		dispatcher,
	)

	listByDateUC := ucReservation.NewListByDate(reservationRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	serviceHandler := handlers.NewServiceHandler(db)
	scheduleHandler := handlers.NewScheduleHandler(db)
	commissionHandler := handlers.NewCommissionHandler(commissionRepo)

	reservationHandler := handlers.NewReservationHandler(
		createReservationUC,
		cancelReservationUC,
		transitionReservationUC,
		listByDateUC,
	)

	publicHandler := handlers.NewPublicHandler(
		db,
		availabilityUC,
		createReservationUC,
		cancelReservationUC,
	)

	var webhookHandler *handlers.BillingWebhookHandler
	if cfg.MPAccessToken != "" {
		syncer, err := billing.NewSubscriptionSyncer(cfg.MPAccessToken, subscriptionRepo, log)
		if err != nil {
			log.Error().Err(err).Msg("mercado pago syncer disabled")
		} else {
			webhookHandler = handlers.NewBillingWebhookHandler(syncer, log)
		}
	}

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC API
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/services", publicHandler.ListServices)
			publicAPI.GET("/availability", publicHandler.Availability)
			publicAPI.POST("/reservations", publicHandler.CreateReservation)
			publicAPI.PATCH("/reservations/:id/cancel", publicHandler.CancelReservation)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// BILLING WEBHOOKS
		// ------------------------------
		if webhookHandler != nil {
			api.POST("/webhooks/mercadopago", webhookHandler.Handle)
		}

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)

			secured.GET("/me/schedule", scheduleHandler.Get)
			secured.PUT("/me/schedule", scheduleHandler.Update)

			// ------------------------------
			// RESERVATIONS
			// ------------------------------
			secured.POST("/me/reservations", reservationHandler.Create)
			secured.GET("/me/reservations", reservationHandler.ListByDate)
			secured.PATCH("/me/reservations/:id/cancel", reservationHandler.Cancel)
			secured.PATCH("/me/reservations/:id/check-in", reservationHandler.CheckIn)
			secured.PATCH("/me/reservations/:id/start", reservationHandler.Start)
			secured.PATCH("/me/reservations/:id/fulfill", reservationHandler.Fulfill)
			secured.PATCH("/me/reservations/:id/no-show", reservationHandler.MarkNoShow)

			secured.GET("/me/commissions", commissionHandler.List)
		}
	}
}
