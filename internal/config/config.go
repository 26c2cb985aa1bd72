package config

import (
	"fmt"

	"github.com/rlourenco/catalog-admin/internal/mailer"
	"github.com/spf13/viper"
)

type StorageConfig struct {
	// Driver selects the object-store backend: "s3" or "local".
	Driver string
	// BaseURL is the public base address used to derive retrieval URLs.
	BaseURL string

	S3Region string
	S3Bucket string
	LocalDir string
}

type Config struct {
	Port        int
	DatabaseURL string
	RedisAddr   string
	JWTSecret   string
	// AppBaseURL is where sign-in links point back to.
	AppBaseURL string
	MailFrom   string

	Storage StorageConfig
	SMTP    mailer.SMTPConfig
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	viper.AutomaticEnv()

	viper.SetDefault("PORT", 8080)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("APP_BASE_URL", "http://localhost:8080")
	viper.SetDefault("MAIL_FROM", "no-reply@localhost")
	viper.SetDefault("STORAGE_DRIVER", "local")
	viper.SetDefault("LOCAL_STORAGE_DIR", "./storage/objects")
	viper.SetDefault("SMTP_PORT", "587")

	cfg := &Config{
		Port:        viper.GetInt("PORT"),
		DatabaseURL: viper.GetString("DATABASE_URL"),
		RedisAddr:   viper.GetString("REDIS_ADDR"),
		JWTSecret:   viper.GetString("JWT_SECRET"),
		AppBaseURL:  viper.GetString("APP_BASE_URL"),
		MailFrom:    viper.GetString("MAIL_FROM"),
		Storage: StorageConfig{
			Driver:   viper.GetString("STORAGE_DRIVER"),
			BaseURL:  viper.GetString("STORAGE_BASE_URL"),
			S3Region: viper.GetString("S3_REGION"),
			S3Bucket: viper.GetString("S3_BUCKET"),
			LocalDir: viper.GetString("LOCAL_STORAGE_DIR"),
		},
		SMTP: mailer.SMTPConfig{
			Host:         viper.GetString("SMTP_HOST"),
			Port:         viper.GetString("SMTP_PORT"),
			User:         viper.GetString("SMTP_USER"),
			Password:     viper.GetString("SMTP_PASS"),
			AuthDisabled: viper.GetBool("SMTP_AUTH_DISABLED"),
		},
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.Storage.Driver == "s3" && (cfg.Storage.S3Region == "" || cfg.Storage.S3Bucket == "") {
		return nil, fmt.Errorf("S3_REGION and S3_BUCKET are required with STORAGE_DRIVER=s3")
	}

	return cfg, nil
}
