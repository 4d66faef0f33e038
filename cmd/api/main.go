package main

import (
	"context"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/medqueue-uz/medqueue-api/internal/config"
	"github.com/medqueue-uz/medqueue-api/internal/handlers"
	"github.com/medqueue-uz/medqueue-api/internal/middleware"
	"github.com/medqueue-uz/medqueue-api/internal/realtime"
	"github.com/medqueue-uz/medqueue-api/internal/services"
	"github.com/medqueue-uz/medqueue-api/internal/storage"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if err := godotenv.Load(); err != nil {
		logger.Info().Msg("no .env file found, relying on environment variables")
	}

	cfg := config.Load(logger)
	if !cfg.IsProduction() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// --- Database connection ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(cfg.MongoURI).
		SetServerSelectionTimeout(10*time.Second).
		SetSocketTimeout(45*time.Second))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer client.Disconnect(context.Background())

	if err := client.Ping(ctx, nil); err != nil {
		logger.Fatal().Err(err).Msg("MongoDB is unreachable")
	}
	db := client.Database(cfg.MongoDatabase)
	logger.Info().Str("database", cfg.MongoDatabase).Msg("connected to MongoDB")

	if err := storage.EnsureIndexes(ctx, db); err != nil {
		logger.Fatal().Err(err).Msg("failed to ensure indexes")
	}

	// --- Services ---
	notifier := services.NewTelegramNotifier(cfg.BotToken, cfg.ChatID, logger)
	hub := realtime.NewHub(logger)

	h := handlers.New(db, notifier, hub, cfg, logger)

	// --- Router ---
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Authorization"},
		AllowCredentials: true,
	}))

	secret := []byte(cfg.JWTSecret)
	authRequired := middleware.Authenticate(secret)
	adminOnly := middleware.RequireAdmin()

	// --- Routes ---
	auth := r.Group("/api/auth")
	{
		auth.POST("/login", h.Login)
		auth.GET("/health", h.Health)
		auth.GET("/verify", authRequired, h.Verify)
		auth.POST("/register", authRequired, h.Register)
	}

	doctors := r.Group("/api/doctors")
	{
		doctors.GET("", h.GetDoctors)
		doctors.GET("/:id", h.GetDoctor)
		doctors.POST("", authRequired, adminOnly, h.CreateDoctor)
		doctors.PUT("/:id", authRequired, adminOnly, h.UpdateDoctor)
		doctors.DELETE("/:id", authRequired, adminOnly, h.DeleteDoctor)
	}

	appointments := r.Group("/api/appointments")
	{
		appointments.GET("", h.GetAppointments)
		appointments.GET("/time-slots", h.GetTimeSlots)
		appointments.POST("", h.CreateAppointment)
		appointments.GET("/:id", h.GetAppointment)
		appointments.PUT("/:id", h.UpdateAppointment)
		appointments.DELETE("/:id", h.DeleteAppointment)
	}

	complaints := r.Group("/api/complaints")
	{
		complaints.GET("", h.GetComplaints)
		complaints.POST("", h.CreateComplaint)
		complaints.GET("/:id", h.GetComplaint)
		complaints.PUT("/:id", authRequired, adminOnly, h.UpdateComplaint)
		complaints.DELETE("/:id", authRequired, adminOnly, h.DeleteComplaint)
	}

	serviceAppointments := r.Group("/api/service-appointments")
	{
		serviceAppointments.GET("", h.GetServiceAppointments)
		serviceAppointments.POST("", h.CreateServiceAppointment)
		serviceAppointments.GET("/:id", h.GetServiceAppointment)
		serviceAppointments.PUT("/:id", h.UpdateServiceAppointment)
		serviceAppointments.DELETE("/:id", h.DeleteServiceAppointment)
	}

	admin := r.Group("/api/admin", authRequired, adminOnly)
	{
		admin.GET("/dashboard/stats", h.DashboardStats)
		admin.GET("/appointments", h.GetAppointments)
		admin.PUT("/appointments/:id", h.AdminUpdateAppointmentStatus)
		admin.DELETE("/appointments/:id", h.DeleteAppointment)
		admin.GET("/complaints", h.GetComplaints)
		admin.DELETE("/complaints/:id", h.DeleteComplaint)
	}

	r.GET("/ws", hub.HandleConnect)

	logger.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
