package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/handlers"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/notify"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	ucBooking "github.com/BruksfildServices01/barber-booking/internal/usecase/booking"
	ucLoyalty "github.com/BruksfildServices01/barber-booking/internal/usecase/loyalty"
	ucSchedule "github.com/BruksfildServices01/barber-booking/internal/usecase/schedule"
)

// Deps are the singletons built by main for the selected storage driver.
type Deps struct {
	Bookings   domain.Repository
	Schedule   schedule.Repository
	AuditStore audit.Store
	Audit      *audit.Dispatcher
	Notifier   notify.Notifier
	Clock      timezone.Clock
}

func RegisterRoutes(r *gin.Engine, d Deps, cfg *config.Config) {

	// ======================================================
	// 🔧 SETTINGS
	// ======================================================
	settings := ucBooking.SettingsFromConfig(cfg)
	now := d.Clock
	if now == nil {
		now = timezone.ClockIn(settings.Location)
	}

	// ======================================================
	// 🧠 USE CASES
	// ======================================================
	availabilityUC := ucBooking.NewGetAvailability(d.Bookings, settings, now)
	createBookingUC := ucBooking.NewCreateBooking(d.Bookings, settings, now, d.Audit, d.Notifier)
	cancelBookingUC := ucBooking.NewCancelBooking(d.Bookings, settings, now, d.Audit, d.Notifier)
	completeBookingUC := ucBooking.NewCompleteBooking(d.Bookings, settings, now, d.Audit, d.Notifier)
	noShowUC := ucBooking.NewMarkNoShow(d.Bookings, settings, now, d.Audit, d.Notifier)
	listCustomerUC := ucBooking.NewListCustomerBookings(d.Bookings)
	listBarberUC := ucBooking.NewListBarberBookings(d.Bookings, settings)

	publishRosterUC := ucSchedule.NewPublishRoster(d.Schedule, settings.Location, now, d.Audit)
	hiddenHoursUC := ucSchedule.NewHiddenHours(d.Schedule, settings.Location, settings.Grid, now, d.Audit)

	loyaltyAccountUC := ucLoyalty.NewGetAccount(d.Bookings.Ledger(), settings.Policy)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	bookingHandler := handlers.NewBookingHandler(
		availabilityUC,
		createBookingUC,
		cancelBookingUC,
		completeBookingUC,
		noShowUC,
		listCustomerUC,
		listBarberUC,
	)
	scheduleHandler := handlers.NewScheduleHandler(publishRosterUC, hiddenHoursUC)
	loyaltyHandler := handlers.NewLoyaltyHandler(loyaltyAccountUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditStore, settings.Location)

	// ======================================================
	// 🌍 PUBLIC
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(cfg))
	{
		api.GET("/barbers/:barberId/slots", bookingHandler.Availability)

		// ------------------------------
		// BOOKINGS
		// ------------------------------
		customer := middleware.RequireRole(models.RoleCustomer)
		staff := middleware.RequireRole(models.RoleBarber, models.RoleAdmin)

		api.POST("/bookings", customer, bookingHandler.Create)
		api.GET("/bookings/me", customer, bookingHandler.ListMine)
		api.POST("/bookings/:id/cancel", bookingHandler.Cancel)
		api.POST("/bookings/:id/complete", staff, bookingHandler.Complete)
		api.POST("/bookings/:id/no-show", staff, bookingHandler.NoShow)

		api.GET("/loyalty/me", customer, loyaltyHandler.GetMine)

		// ------------------------------
		// BARBER
		// ------------------------------
		barber := api.Group("/barbers/me", middleware.RequireRole(models.RoleBarber))
		{
			barber.GET("/bookings", bookingHandler.ListBarberDay)
			barber.GET("/hidden-hours", scheduleHandler.GetMyHiddenHours)
			barber.PUT("/hidden-hours", scheduleHandler.SetMyHiddenHours)
		}

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("/admin", middleware.RequireRole(models.RoleAdmin))
		{
			admin.POST("/rosters", scheduleHandler.PublishRoster)
			admin.PUT("/barbers/:barberId/hidden-hours", scheduleHandler.SetBarberHiddenHours)
			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
