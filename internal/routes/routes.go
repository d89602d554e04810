package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/wellscan/patient-portal/internal/audit"
	"github.com/wellscan/patient-portal/internal/config"
	"github.com/wellscan/patient-portal/internal/handlers"
	"github.com/wellscan/patient-portal/internal/infra/repository"
	"github.com/wellscan/patient-portal/internal/middleware"
	"github.com/wellscan/patient-portal/internal/report"
	bookinguc "github.com/wellscan/patient-portal/internal/usecase/booking"
	reportuc "github.com/wellscan/patient-portal/internal/usecase/report"
)

func Setup(r *gin.Engine, db *gorm.DB, cache *redis.Client, cfg *config.Config) {
	repo := repository.NewBookingGormRepository(db)
	dispatcher := audit.NewDispatcher(audit.New(db))
	renderer := report.NewPDFRenderer()

	createBooking := bookinguc.NewCreateBooking(repo, dispatcher)
	listBookings := bookinguc.NewListBookings(repo)
	getBooking := bookinguc.NewGetBooking(repo)
	cancelBooking := bookinguc.NewCancelBooking(repo, dispatcher)
	availability := bookinguc.NewGetAvailability(repo, cfg.ClinicOpen, cfg.ClinicClose)
	generateReport := reportuc.NewGenerateReport(repo, renderer, dispatcher)

	authHandler := handlers.NewAuthHandler(db, cfg)
	testHandler := handlers.NewTestHandler(db, cache)
	bookingHandler := handlers.NewBookingHandler(
		createBooking, listBookings, getBooking, cancelBooking, availability,
	)
	reportHandler := handlers.NewReportHandler(generateReport)

	auth := middleware.AuthMiddleware(cfg)

	api := r.Group("/api")

	patients := api.Group("/patients")
	{
		patients.POST("/register", middleware.AuthRateLimit(), authHandler.Register)
		patients.POST("/login", middleware.AuthRateLimit(), authHandler.Login)
		patients.POST("/logout", authHandler.Logout)
		patients.GET("/profile", auth, authHandler.Profile)
	}

	tests := api.Group("/tests")
	{
		tests.GET("", testHandler.List)
		tests.GET("/categories", testHandler.Categories)
		tests.GET("/:id", testHandler.GetByID)
		tests.GET("/:id/availability", auth, bookingHandler.Availability)
	}

	bookings := api.Group("/bookings", auth)
	{
		bookings.POST("", bookingHandler.Create)
		bookings.GET("", bookingHandler.List)
		bookings.GET("/:id", bookingHandler.GetOne)
		bookings.PATCH("/:id/cancel", bookingHandler.Cancel)
	}

	reports := api.Group("/reports", auth)
	{
		reports.GET("/:bookingId", reportHandler.Download)
	}
}
