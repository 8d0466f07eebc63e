package main

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/plugins/migratecmd"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	pubnub "github.com/pubnub/go"

	"ticket-verify/config"
	"ticket-verify/internal/handlers"
	"ticket-verify/internal/provider"
	"ticket-verify/internal/services"
	_ "ticket-verify/migrations"
	"ticket-verify/utils"
)

func main() {
	app := pocketbase.New()

	// Load configuration
	cfg := config.LoadConfig()

	// Initialize Redis
	redisClient := utils.NewRedisClient(cfg.RedisURL, cfg.RedisPassword, cfg.RedisDB)
	defer redisClient.Close()

	// Initialize PubNub (optional, review notifications only)
	var pn *pubnub.PubNub
	if cfg.PubNubPublishKey != "" {
		pnConfig := pubnub.NewConfig()
		pnConfig.PublishKey = cfg.PubNubPublishKey
		pnConfig.SubscribeKey = cfg.PubNubSubscribeKey
		pnConfig.SecretKey = cfg.PubNubSecretKey
		pn = pubnub.NewPubNub(pnConfig)
	}

	// Build the reference data provider chain: resilient(cache(remote))
	// falling back to the built-in sample set.
	remote := provider.NewRemoteProvider(cfg.OfficialTicketsURL, cfg.FetchTimeout)
	var primary provider.OfficialTicketProvider = remote
	if cfg.ReferenceCacheTTL > 0 {
		primary = provider.NewCachingProvider(primary, redisClient, cfg.ReferenceCacheTTL)
	}
	static := provider.NewStaticProvider(cfg.Environment == "development")
	refProvider := provider.NewResilientProvider(primary, static)

	// Initialize services
	verificationService := services.NewVerificationService(app, refProvider, pn)

	// Initialize handlers
	verifyHandler := handlers.NewVerifyHandler(app, verificationService)
	adminHandler := handlers.NewAdminHandler(app, refProvider)

	// Enable migrations
	migratecmd.MustRegister(app, app.RootCmd, migratecmd.Config{
		Automigrate: true,
	})

	// Metrics endpoint on its own port
	if cfg.EnableMetrics {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(":"+cfg.MetricsPort, mux); err != nil {
				log.Printf("metrics server stopped: %v", err)
			}
		}()
	}

	// Register routes
	app.OnServe().BindFunc(func(e *core.ServeEvent) error {
		// Verification endpoints
		e.Router.POST("/api/tickets/verify", verifyHandler.VerifyTicket)
		e.Router.POST("/api/tickets/extract", verifyHandler.ExtractFields)

		// Admin endpoints
		e.Router.GET("/api/admin/review-queue", adminHandler.GetReviewQueue)
		e.Router.GET("/api/admin/official-tickets/search", adminHandler.SearchOfficialTickets)

		// Health check
		e.Router.GET("/health", func(e *core.RequestEvent) error {
			if err := utils.RedisHealthCheck(redisClient); err != nil {
				return e.JSON(503, map[string]string{
					"status": "unhealthy",
					"error":  err.Error(),
				})
			}
			return e.JSON(200, map[string]string{"status": "healthy"})
		})

		log.Println("Server routes registered")

		return e.Next()
	})

	// Start server
	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
