package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/rlourenco/catalog-admin/internal/auth"
	"github.com/rlourenco/catalog-admin/internal/config"
	"github.com/rlourenco/catalog-admin/internal/db"
	api "github.com/rlourenco/catalog-admin/internal/http"
	"github.com/rlourenco/catalog-admin/internal/http/handlers"
	rl "github.com/rlourenco/catalog-admin/internal/http/rate_limiter"
	"github.com/rlourenco/catalog-admin/internal/mailer"
	"github.com/rlourenco/catalog-admin/internal/repo"
	"github.com/rlourenco/catalog-admin/internal/storage"
)

// @title Catalog Admin API
// @version 1.0
// @description REST API for managing a product catalog: passwordless sign-in, product CRUD with image uploads, bulk delete, and CSV export.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("could not load configuration: %v", err)
	}
	auth.SetSecret([]byte(cfg.JWTSecret))

	ctx := context.Background()

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("could not connect to Redis: %v", err)
	}
	defer rdb.Close()

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("could not connect to database: ", err)
	}
	defer database.Close()

	objectStore, err := newObjectStore(ctx, cfg.Storage)
	if err != nil {
		log.Fatalf("could not set up object storage: %v", err)
	}

	userRepo := repo.NewPostgresUserRepository(database)
	tokenStore := auth.NewRedisTokenStore(rdb)
	smtpMailer := mailer.NewSMTPMailer(cfg.SMTP)
	magicLink := auth.NewMagicLinkService(tokenStore, userRepo, smtpMailer, cfg.AppBaseURL, cfg.MailFrom)

	handlers.SetProductRepo(repo.NewPostgresProductRepository(database))
	handlers.SetUserRepo(userRepo)
	handlers.SetObjectStore(objectStore, cfg.Storage.BaseURL)
	handlers.SetMagicLinkService(magicLink)
	api.SetTokenStore(tokenStore)

	go rl.StartVisitorCleanupLoop()

	r := api.NewRouter()
	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("server running on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal(err)
	}
}

func newObjectStore(ctx context.Context, cfg config.StorageConfig) (storage.Storage, error) {
	switch cfg.Driver {
	case "s3":
		return storage.NewS3(ctx, storage.S3Config{Region: cfg.S3Region, Bucket: cfg.S3Bucket})
	case "local":
		return storage.NewLocal(cfg.LocalDir), nil
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", cfg.Driver)
	}
}
