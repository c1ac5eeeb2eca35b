package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/auditgrid/auditgrid/config"
	"github.com/auditgrid/auditgrid/internal/api"
	"github.com/auditgrid/auditgrid/internal/api/handlers"
	"github.com/auditgrid/auditgrid/internal/core/assessment"
	"github.com/auditgrid/auditgrid/internal/core/attribute"
	"github.com/auditgrid/auditgrid/internal/core/auth"
	"github.com/auditgrid/auditgrid/internal/core/matrix"
	"github.com/auditgrid/auditgrid/internal/core/person"
	"github.com/auditgrid/auditgrid/internal/core/query"
	"github.com/auditgrid/auditgrid/internal/logging"
	"github.com/auditgrid/auditgrid/internal/storage/postgres"
)

func main() {
	_ = godotenv.Load()

	logging.Init()
	defer logging.Sync()

	cfg := config.Load()

	if cfg.JWT.Secret == "" {
		log.Fatalf("JWT_SECRET environment variable is required")
	}

	db, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	zap.L().Info("connected to database")

	// Repositories
	authRepo := auth.NewRepository(db)
	assessmentRepo := assessment.NewRepository(db)
	attributeRepo := attribute.NewRepository(db)
	personRepo := person.NewRepository(db)

	// Services
	authService := auth.NewService(authRepo, &cfg.JWT)
	assessmentService := assessment.NewService(assessmentRepo)
	personService := person.NewService(personRepo)
	attributeService := attribute.NewService(attributeRepo, assessmentService, personService)
	matrixService := matrix.NewService(attributeService, attributeService, assessmentService, assessmentService)
	resolver := query.NewResolver(db)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	assessmentHandler := handlers.NewAssessmentHandler(assessmentService)
	attributeHandler := handlers.NewAttributeHandler(attributeService)
	personHandler := handlers.NewPersonHandler(personService)
	matrixHandler := handlers.NewMatrixHandler(resolver, matrixService)

	router := api.NewRouter(
		authService,
		authHandler,
		assessmentHandler,
		attributeHandler,
		personHandler,
		matrixHandler,
	)

	engine := router.Setup(cfg.Server.Mode)

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		zap.L().Info("shutting down server")
		db.Close()
		logging.Sync()
		os.Exit(0)
	}()

	zap.L().Info("starting server", zap.String("port", cfg.Server.Port))
	if err := engine.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
