package config

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Admin   AdminConfig
	SMTP    SMTPConfig
	Stripe  StripeConfig
	Vision  VisionConfig
	Webhook WebhookConfig
	Redis   RedisConfig
	CORS    CORSConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type StorageConfig struct {
	// ArtworksPath is the JSON document holding the artwork collection.
	ArtworksPath string
}

type AdminConfig struct {
	Email        string
	Password     string
	PasswordHash string
	Token        string
	SessionTTL   int // in hours
}

type SMTPConfig struct {
	Host     string
	Port     string
	From     string
	Password string
	NotifyTo string
}

type StripeConfig struct {
	SecretKey  string
	SuccessURL string
	CancelURL  string
}

type VisionConfig struct {
	APIKey string
	URL    string
	Model  string
}

type WebhookConfig struct {
	LeadURL string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type CORSConfig struct {
	Origins []string
}

// splitOrigins parses a comma-separated origin list from the environment.
func splitOrigins(raw string) []string {
	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

func Load() *Config {
	// Populate the process environment from .env first so viper sees it.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_ENV", "development")
	viper.SetDefault("ARTWORKS_FILE", "data/artworks.json")
	viper.SetDefault("ADMIN_SESSION_TTL_HOURS", 12)
	viper.SetDefault("SMTP_PORT", "587")
	viper.SetDefault("STRIPE_SUCCESS_URL", "http://localhost:3000/?checkout=success")
	viper.SetDefault("STRIPE_CANCEL_URL", "http://localhost:3000/?checkout=canceled")
	viper.SetDefault("VISION_MODEL", "gpt-4o-mini")
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("CORS_ORIGINS", "http://localhost:3000")

	return &Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
			Env:  viper.GetString("SERVER_ENV"),
		},
		Storage: StorageConfig{
			ArtworksPath: viper.GetString("ARTWORKS_FILE"),
		},
		Admin: AdminConfig{
			Email:        viper.GetString("ADMIN_EMAIL"),
			Password:     viper.GetString("ADMIN_PASSWORD"),
			PasswordHash: viper.GetString("ADMIN_PASSWORD_HASH"),
			Token:        viper.GetString("ADMIN_TOKEN"),
			SessionTTL:   viper.GetInt("ADMIN_SESSION_TTL_HOURS"),
		},
		SMTP: SMTPConfig{
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetString("SMTP_PORT"),
			From:     viper.GetString("SMTP_FROM"),
			Password: viper.GetString("SMTP_PASSWORD"),
			NotifyTo: viper.GetString("SMTP_NOTIFY_TO"),
		},
		Stripe: StripeConfig{
			SecretKey:  viper.GetString("STRIPE_SECRET_KEY"),
			SuccessURL: viper.GetString("STRIPE_SUCCESS_URL"),
			CancelURL:  viper.GetString("STRIPE_CANCEL_URL"),
		},
		Vision: VisionConfig{
			APIKey: viper.GetString("OPENAI_API_KEY"),
			URL:    viper.GetString("VISION_URL"),
			Model:  viper.GetString("VISION_MODEL"),
		},
		Webhook: WebhookConfig{
			LeadURL: viper.GetString("LEAD_WEBHOOK_URL"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		CORS: CORSConfig{
			Origins: splitOrigins(viper.GetString("CORS_ORIGINS")),
		},
	}
}
