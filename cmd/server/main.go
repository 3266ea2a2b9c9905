package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"estudamais-backend/internal/config"
	"estudamais-backend/internal/database"
	"estudamais-backend/internal/handlers"
	"estudamais-backend/internal/middleware"
	"estudamais-backend/internal/repository"
	"estudamais-backend/internal/router"
	"estudamais-backend/internal/services"
	"estudamais-backend/internal/worker"
)

func main() {
	log.Println("🚀 Starting EstudaMais Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize PostgreSQL Connection Pool ────
	pool, err := database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("✗ PostgreSQL connection failed: %v", err)
	}
	defer pool.Close()
	log.Println("✓ PostgreSQL connected")

	// ──── Step 3: Initialize Redis Client ────
	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatalf("✗ Redis connection failed: %v", err)
	}
	defer redisClient.Close()
	log.Println("✓ Redis connected")

	// ──── Step 4: Run Database Migrations ────
	if err := database.RunMigrations(pool, "migrations"); err != nil {
		log.Fatalf("✗ Database migration failed: %v", err)
	}
	log.Println("✓ Database migrations applied")

	// ──── Initialize Repositories ────
	userRepo := repository.NewUserRepo(pool)
	folderRepo := repository.NewFolderRepo(pool)
	questionRepo := repository.NewQuestionRepo(pool)
	progressRepo := repository.NewProgressRepo(pool)
	timeclockRepo := repository.NewTimeclockRepo(pool)

	// ──── Initialize Services ────
	jwtAuth := middleware.NewJWTAuth(cfg.JWTSecret)
	emailService := services.NewEmailService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.FrontendURL)
	authService := services.NewAuthService(userRepo, redisClient, jwtAuth)
	simuladoService := services.NewSimuladoService(folderRepo, questionRepo, redisClient, rand.Shuffle)
	practiceService := services.NewPracticeService(questionRepo, redisClient)
	timeclockService := services.NewTimeclockService(timeclockRepo)
	statsService := services.NewStatisticsService(timeclockRepo)
	flashcardService := services.NewFlashcardService(redisClient)
	pdfService := services.NewPDFService()

	// ──── Initialize Handlers ────
	authHandler := handlers.NewAuthHandler(authService)
	folderHandler := handlers.NewFolderHandler(folderRepo, questionRepo)
	questionHandler := handlers.NewQuestionHandler(questionRepo, folderRepo)
	practiceHandler := handlers.NewPracticeHandler(practiceService)
	simuladoHandler := handlers.NewSimuladoHandler(simuladoService)
	studyPlanHandler := handlers.NewStudyPlanHandler(folderRepo, progressRepo)
	timeclockHandler := handlers.NewTimeclockHandler(timeclockService)
	statisticsHandler := handlers.NewStatisticsHandler(statsService)
	flashcardHandler := handlers.NewFlashcardHandler(flashcardService)
	exportHandler := handlers.NewExportHandler(folderRepo, questionRepo, pdfService)
	dashboardHandler := handlers.NewDashboardHandler(folderRepo, questionRepo, statsService, flashcardService)

	// ──── Step 5: Start E-mail Worker Pool ────
	workerPool := worker.NewPool(redisClient, emailService, cfg.EmailWorkers)
	workerPool.Start()
	log.Printf("✓ Worker pool started (%d goroutines)", cfg.EmailWorkers)

	// ──── Step 6: Start HTTP Server ────
	r := router.New(
		jwtAuth,
		authHandler,
		folderHandler,
		questionHandler,
		practiceHandler,
		simuladoHandler,
		studyPlanHandler,
		timeclockHandler,
		statisticsHandler,
		flashcardHandler,
		exportHandler,
		dashboardHandler,
		cfg.FrontendURL,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		workerPool.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ EstudaMais Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/v1", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
