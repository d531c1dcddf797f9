package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"foot-match-service/handlers"
	"foot-match-service/models"
	"foot-match-service/services"
	"foot-match-service/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // 10MB, enough for cover photos
	})

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		MaxAge:       86400,
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	// TranslateError turns unique-constraint violations into
	// gorm.ErrDuplicatedKey, which the services rely on.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Match{},
		&models.MatchParticipant{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET environment variable not set")
	}
	accessTTL := envSeconds("ACCESS_TOKEN_TTL_SECONDS", 3600)
	refreshTTL := envSeconds("REFRESH_TOKEN_TTL_SECONDS", 604800)

	if err := utils.InitStorage(); err != nil {
		log.Printf("⚠️  Storage not configured, photo uploads disabled: %v", err)
	}

	tokenService := services.NewTokenService(secret, accessTTL, refreshTTL)
	authService := services.NewAuthService(db, tokenService)
	matchService := services.NewMatchService(db)
	participantService := services.NewParticipantService(db, matchService)

	matchService.StartLifecycleSweeper()

	handlers.SetupAuthRoutes(app, authService)
	handlers.SetupMatchRoutes(app, matchService, participantService, tokenService)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", port)
	log.Println("✅ Lifecycle sweeper running (every 1m)")
	log.Printf("✅ CORS configured for origins: %s", allowedOrigins)

	<-ctx.Done()
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

func envSeconds(name string, fallback int) time.Duration {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return time.Duration(fallback) * time.Second
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		log.Fatalf("%s must be a positive integer number of seconds", name)
	}
	return time.Duration(n) * time.Second
}
