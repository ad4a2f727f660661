// main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"startup-registration/config"
	"startup-registration/controllers"
	"startup-registration/gateway"
	"startup-registration/logging"
	"startup-registration/metrics"
	"startup-registration/middleware"
	"startup-registration/repository"
	"startup-registration/routes"
	"startup-registration/services"
	"startup-registration/storage"
	"startup-registration/utils"

	"github.com/gorilla/mux"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile})
	if err != nil {
		log.Fatalf("logging: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	// Persistence
	repo, closeRepo, err := newRepository(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeRepo()

	blobs, err := newBlobStore(ctx, cfg)
	if err != nil {
		return err
	}

	// Services
	m := metrics.New()
	signer := gateway.NewSigner(cfg.RazorpayKeySecret)
	razorpay := gateway.NewRazorpayClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)

	var notifier services.PaymentNotifier
	if es := utils.NewEmailService(cfg.PostmarkToken, cfg.EmailSender); es != nil {
		notifier = es
	} else {
		logger.Info("POSTMARK_API_TOKEN not set, payment confirmation emails disabled")
	}

	submissionService := services.NewSubmissionService(repo, blobs, m, logger)
	registrationService := services.NewRegistrationService(repo)
	paymentService := services.NewPaymentService(repo, razorpay, signer, notifier, m, logger)

	// Initialize controllers
	startupController := controllers.NewStartupController(submissionService, registrationService, cfg.MaxUploadBytes(), logger)
	paymentController := controllers.NewPaymentController(paymentService, logger)
	uploadController := controllers.NewUploadController(blobs, logger)

	// Set up the router
	router := mux.NewRouter()
	routes.RegisterRoutes(router, startupController, paymentController, uploadController, m.Handler())
	handler := middleware.CORS(cfg.CORSOrigins)(router)
	handler = middleware.Recover(logger)(handler)
	handler = middleware.RequestLogger(logger, m, router)(handler)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server is running", "port", cfg.Port, "store", cfg.StoreBackend, "blobs", cfg.BlobBackend)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := paymentService.Wait(shutdownCtx); err != nil {
		logger.Warn("confirmation emails still pending at shutdown", "error", err)
	}
	return nil
}

func newRepository(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repository.SubmissionRepository, func(), error) {
	if cfg.StoreBackend == config.StoreMemory {
		logger.Warn("using in-memory submission store, data is lost on restart")
		return repository.NewMemorySubmissionRepository(), func() {}, nil
	}

	// Connect to MongoDB
	client, err := utils.ConnectDB(ctx, cfg.MongoURI)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("MongoDB connected", "database", cfg.MongoDatabase, "collection", cfg.MongoCollection)

	repo := repository.NewMongoSubmissionRepository(client, cfg.MongoDatabase, cfg.MongoCollection)
	if err := repo.EnsureIndexes(ctx); err != nil {
		logger.Warn("could not create indexes", "error", err)
	}

	closeFn := func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error("mongodb disconnect", "error", err)
		}
	}
	return repo, closeFn, nil
}

func newBlobStore(ctx context.Context, cfg *config.Config) (storage.BlobStore, error) {
	switch cfg.BlobBackend {
	case config.BlobS3:
		client, err := storage.NewS3Client(ctx, storage.S3Options{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		if err != nil {
			return nil, err
		}
		return storage.NewS3Store(client, cfg.S3Bucket), nil
	case config.BlobDisk:
		return storage.NewDiskStore(cfg.UploadRoot), nil
	default:
		return nil, fmt.Errorf("unknown blob backend %q", cfg.BlobBackend)
	}
}
