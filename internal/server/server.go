package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"inner-garden/internal/config"
	"inner-garden/internal/integration"
	custommiddleware "inner-garden/internal/middleware"
	"inner-garden/internal/repository"
	"inner-garden/internal/service"
	"inner-garden/internal/transport"
)

// Server wires configuration, services and handlers into one HTTP server.
type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	redis  *redis.Client
}

// NewServer constructs the full service graph. Everything is built here once
// at process start and passed into the handlers explicitly.
func NewServer(cfg *config.Config, logger *zap.Logger) *Server {
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(cfg.CORS.Origins, cfg.Server.Env == "development"))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Storage and services
	store := repository.NewFileArtworkStore(cfg.Storage.ArtworksPath)
	catalog := service.NewCatalogService(store)
	sessions := service.NewSessionService(service.AdminCredentials{
		Email:        cfg.Admin.Email,
		Password:     cfg.Admin.Password,
		PasswordHash: cfg.Admin.PasswordHash,
		StaticToken:  cfg.Admin.Token,
	}, time.Duration(cfg.Admin.SessionTTL)*time.Hour)

	// Outbound integrations
	mailer := integration.NewMailer(integration.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		From:     cfg.SMTP.From,
		Password: cfg.SMTP.Password,
		NotifyTo: cfg.SMTP.NotifyTo,
	}, logger)
	webhook := integration.NewLeadWebhook(cfg.Webhook.LeadURL, logger)
	checkout := integration.NewCheckoutClient(integration.CheckoutConfig{
		SecretKey:  cfg.Stripe.SecretKey,
		SuccessURL: cfg.Stripe.SuccessURL,
		CancelURL:  cfg.Stripe.CancelURL,
	}, logger)
	vision := integration.NewVisionClient(integration.VisionConfig{
		APIKey: cfg.Vision.APIKey,
		URL:    cfg.Vision.URL,
		Model:  cfg.Vision.Model,
	}, logger)

	// Rate limiting for the public lead endpoints; fails open when Redis is
	// unreachable.
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	rateLimit := custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
		RequestsPerWindow: 10,
		Window:            time.Minute,
		KeyPrefix:         "leads",
	}, logger)

	adminAuth := custommiddleware.AdminAuthMiddleware(sessions, logger)

	// Handlers
	transport.NewAuthHandler(sessions, logger).RegisterRoutes(router)
	transport.NewArtworkHandler(catalog, logger).RegisterRoutes(router, adminAuth)
	transport.NewLeadHandler(catalog, mailer, webhook, logger).RegisterRoutes(router, rateLimit)
	transport.NewCommerceHandler(catalog, checkout, vision, logger).RegisterRoutes(router)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 60 * time.Second,
		},
		config: cfg,
		logger: logger,
		redis:  redisClient,
	}

	return server
}

// Close releases server resources.
func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis client", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
