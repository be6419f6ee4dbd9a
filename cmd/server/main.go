package main

import (
	"context"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/CauaGLS/Projeto-de-TCC/db"
	"github.com/CauaGLS/Projeto-de-TCC/internal/auth"
	"github.com/CauaGLS/Projeto-de-TCC/internal/cache"
	"github.com/CauaGLS/Projeto-de-TCC/internal/router"
	"github.com/CauaGLS/Projeto-de-TCC/internal/services"
	"github.com/CauaGLS/Projeto-de-TCC/internal/storage"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	// Monetary values go over the wire as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	if err := auth.InitJWTSecret(); err != nil {
		logrus.WithError(err).Fatal("Failed to initialize JWT secret")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logrus.Fatal("DATABASE_URL is required")
	}

	if err := db.ConnectDatabase(dsn); err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	if err := db.MigrateDatabase(); err != nil {
		logrus.WithError(err).Fatal("Failed to migrate database")
	}

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		redisDB := 0
		if raw := os.Getenv("REDIS_DB"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				logrus.WithError(err).Fatal("Invalid REDIS_DB")
			}
			redisDB = parsed
		}

		if err := cache.Connect(context.Background(), addr, os.Getenv("REDIS_PASSWORD"), redisDB); err != nil {
			logrus.WithError(err).Fatal("Failed to connect to Redis")
		}

		logrus.Info("Redis cache enabled")
	}

	uploadsDir := os.Getenv("UPLOADS_DIR")
	if uploadsDir == "" {
		uploadsDir = "./uploads"
	}

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	disk, err := storage.NewDiskStorage(uploadsDir, baseURL)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize upload storage")
	}
	storage.Default = disk

	if err := services.InitMailer(context.Background()); err != nil {
		logrus.WithError(err).Fatal("Failed to initialize mailer")
	}

	r := router.SetupRouter(disk.Dir())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logrus.WithField("port", port).Info("Starting server")

	if err := r.Run(":" + port); err != nil {
		logrus.WithError(err).Fatal("Server exited")
	}
}
