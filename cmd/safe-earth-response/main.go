package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/Mrsumitborade/safe-earth-response/internal/api"
	"github.com/Mrsumitborade/safe-earth-response/internal/chat"
	"github.com/Mrsumitborade/safe-earth-response/internal/config"
	"github.com/Mrsumitborade/safe-earth-response/internal/dashboard"
	"github.com/Mrsumitborade/safe-earth-response/internal/events"
	"github.com/Mrsumitborade/safe-earth-response/internal/feed"
	"github.com/Mrsumitborade/safe-earth-response/internal/fixtures"
	"github.com/Mrsumitborade/safe-earth-response/internal/logging"
	"github.com/Mrsumitborade/safe-earth-response/internal/repository"
	"github.com/Mrsumitborade/safe-earth-response/internal/simulation"
	"github.com/Mrsumitborade/safe-earth-response/internal/version"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("Server starting",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"version", version.Version,
		"credential_mode", cfg.Chat.CredentialMode,
	)

	dataset, err := fixtures.Load(cfg.Fixtures.Path)
	if err != nil {
		logging.Fatalf("Failed to load fixtures: %v", err)
	}
	store := repository.NewStore(dataset)

	var creds chat.CredentialProvider = chat.NewSessionCredentials()
	if cfg.Chat.CredentialMode == config.CredentialModePersisted {
		db, err := repository.NewSQLiteDB(cfg.DB.Path)
		if err != nil {
			logging.Fatalf("Failed to initialize database: %v", err)
		}
		defer db.Close()
		creds = chat.NewPersistedCredentials(db)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Change notifications for stream subscribers and the optional Kafka sink
	broadcaster := events.NewBroadcaster()
	var sink events.Sink
	if len(cfg.Events.KafkaBrokers) > 0 {
		sink = events.NewKafkaSink(cfg.Events.KafkaBrokers, cfg.Events.KafkaTopic)
		slog.Info("publishing events to kafka", "brokers", cfg.Events.KafkaBrokers, "topic", cfg.Events.KafkaTopic)
	}
	publisher := events.NewPublisher(broadcaster, sink, events.PublisherConfig{
		Workers:    cfg.Worker.Count,
		BufferSize: cfg.Worker.BufferSize,
	})
	publisher.Start(ctx)

	sim := simulation.New(
		simulation.NewRand(cfg.Simulation.Seed),
		simulation.WithDelay(cfg.Simulation.AIDelay),
	)
	svc := dashboard.NewService(store, sim, publisher, dashboard.Delays{
		Load:    cfg.Simulation.LoadDelay,
		Request: cfg.Simulation.RequestDelay,
		Report:  cfg.Simulation.ReportDelay,
	})

	chatClient := chat.NewClient(chat.ClientConfig{
		URL:         cfg.Chat.URL,
		Model:       cfg.Chat.Model,
		Temperature: cfg.Chat.Temperature,
		MaxTokens:   cfg.Chat.MaxTokens,
		Timeout:     cfg.Chat.Timeout,
	})
	chatMgr := chat.NewManager(chatClient, creds, chat.ManagerConfig{
		Fallback:    cfg.Chat.Fallback,
		IdleTTL:     cfg.Chat.SessionTTL,
		MaxSessions: cfg.Chat.MaxSessions,
	})

	var alertFeed *feed.Feed
	if cfg.Feed.Enabled {
		alertFeed = feed.New(feed.Config{
			Interval:   cfg.Feed.Interval,
			Workers:    cfg.Worker.Count,
			BufferSize: cfg.Worker.BufferSize,
		}, svc, feed.Locations(dataset.Alerts), nil)
		alertFeed.Start(ctx)
	}

	// Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false, // Set to false when using wildcard origins
	}))
	router.Use(api.RequestLogger())
	router.Use(api.Metrics())
	router.Use(api.RateLimitMiddleware(cfg.Server.RateLimitRPS))

	if cfg.Server.MetricsEnabled {
		router.GET("/metrics", api.MetricsHandler())
	}

	handler := api.NewHandler(svc, chatMgr, broadcaster)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down...")

	cancel()
	if alertFeed != nil {
		alertFeed.Stop()
	}
	broadcaster.Close() // Close all streams gracefully

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
	if err := publisher.Stop(); err != nil {
		slog.Error("event sink close error", "error", err)
	}

	slog.Info("shutdown complete")
}
