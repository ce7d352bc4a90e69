package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campus-market/config"
	"campus-market/internal/api"
	"campus-market/internal/broker"
	"campus-market/internal/fixtures"
	"campus-market/internal/service"
	"campus-market/internal/snapshot"
	"campus-market/internal/state"
	"campus-market/internal/util"
	"campus-market/internal/worker"

	"github.com/gin-gonic/gin"
)

func main() {

	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting campus market service")

	tp, err := util.InitTracer("campus-market", cfg.Observ.JaegerEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	backend, err := newSnapshotBackend(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize snapshot backend: %v", err)
	}
	manager := snapshot.NewManager(backend)
	defer manager.Close()
	log.Printf("Snapshot backend ready: %s", cfg.Snapshot.Backend)

	store := state.New()
	store.SeedCatalog(fixtures.Businesses(), fixtures.Products())

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if snap, ok, err := manager.Load(startupCtx); err != nil {
		log.Printf("Failed to load snapshot, starting fresh: %v", err)
	} else if ok {
		store.Restore(snap)
	}
	startupCancel()

	producer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicEvents)
	defer producer.Close()
	log.Println("Kafka producer initialized")

	eventPublisher := broker.NewEventPublisher(producer)

	identityService := service.NewIdentityService(store)
	orderService := service.NewOrderService(store, identityService, eventPublisher)
	onboardingService := service.NewOnboardingService(store, eventPublisher)
	engagementService := service.NewEngagementService(store, eventPublisher)

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	snapshotWorker := worker.NewSnapshotWorker(store, manager, time.Duration(cfg.Snapshot.DebounceMS)*time.Millisecond)
	snapshotDone := make(chan struct{})
	go func() {
		defer close(snapshotDone)
		if err := snapshotWorker.Start(workerCtx); err != nil && err != context.Canceled {
			log.Printf("Snapshot worker error: %v", err)
		}
	}()

	eventConsumer := broker.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.TopicEvents, cfg.Kafka.ConsumerGroup)
	notificationWorker := worker.NewNotificationWorker(eventConsumer, store)
	go func() {
		if err := notificationWorker.Start(workerCtx); err != nil && err != context.Canceled {
			log.Printf("Notification worker error: %v", err)
		}
	}()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	handler := api.NewHandler(store, orderService, onboardingService, identityService, engagementService)
	handler.SetupRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	workerCancel()
	if err := notificationWorker.Stop(); err != nil {
		log.Printf("Error stopping notification worker: %v", err)
	}

	// Wait for the final snapshot flush before exiting.
	select {
	case <-snapshotDone:
	case <-time.After(10 * time.Second):
		log.Println("Timed out waiting for final snapshot flush")
	}

	log.Println("Server exited")
}

func newSnapshotBackend(cfg *config.Config) (snapshot.Backend, error) {
	switch cfg.Snapshot.Backend {
	case "redis":
		return snapshot.NewRedisBackend(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Snapshot.Key)
	case "postgres":
		return snapshot.NewPostgresBackend(cfg.Database.URL, cfg.Snapshot.Key)
	case "memory":
		return snapshot.NewMemoryBackend(), nil
	}
	return nil, fmt.Errorf("unknown snapshot backend: %s", cfg.Snapshot.Backend)
}
