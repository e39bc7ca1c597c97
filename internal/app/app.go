package app

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"go-absensi/internal/shared/connection"
	"go-absensi/internal/storage"
)

func BuildApp(router *gin.Engine) error {
	// 1. Setup Infrastructure
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}
	log.Println("✅ Database connection established")

	db, err := gormDB.DB()
	if err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	log.Println("✅ Redis connection established")

	// Bukti cuti dan foto task log masuk ke GCS; tanpa bucket jatuh ke
	// penyimpanan memori untuk pengembangan lokal.
	var objects storage.ObjectStorage
	if bucket := os.Getenv("GCS_BUCKET"); bucket != "" {
		objects, err = storage.NewGCS(context.Background(), bucket)
		if err != nil {
			return err
		}
		log.Println("✅ GCS object storage ready")
	} else {
		objects = storage.NewMemory()
		log.Println("⚠️ GCS_BUCKET not set, using in-memory object storage")
	}

	// Register Modules & Routes
	return registerModules(router, db, gormDB, redisClient, objects)
}
