package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/bagassdwipermanaa/portofolio-bagas-dwi-permana-sub000/internal/config"
	"github.com/bagassdwipermanaa/portofolio-bagas-dwi-permana-sub000/internal/handler"
	"github.com/bagassdwipermanaa/portofolio-bagas-dwi-permana-sub000/internal/logging"
	"github.com/bagassdwipermanaa/portofolio-bagas-dwi-permana-sub000/internal/mailer"
	"github.com/bagassdwipermanaa/portofolio-bagas-dwi-permana-sub000/internal/presence"
	"github.com/bagassdwipermanaa/portofolio-bagas-dwi-permana-sub000/internal/repository"
	"github.com/bagassdwipermanaa/portofolio-bagas-dwi-permana-sub000/internal/service"
	"github.com/bagassdwipermanaa/portofolio-bagas-dwi-permana-sub000/pkg/lanyard"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Setup("relay", "INFO", "json")
		logging.Fatal("invalid configuration", "error", err)
	}
	logger := logging.Setup("relay", cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logging.Fatal("server error", "error", err)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	var db repository.DB
	var deliveries repository.DeliveryRepository = repository.NopDeliveryRepository{}
	if cfg.DatabaseURL != "" {
		pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer pool.Close()
		db = pool
		deliveries = repository.NewPgDeliveryRepository(pool)
	} else {
		logger.Info("DATABASE_URL not set; delivery log disabled")
	}

	m, err := mailer.NewSMTPMailer(mailer.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
	}, logger)
	if err != nil {
		return err
	}
	smtpStatus := mailer.VerifyAsync(ctx, m, logger)

	tracker := presence.NewTracker(cfg.PresenceUserID,
		lanyard.NewClient(cfg.PresenceAPIURL),
		presence.WithInterval(cfg.PresenceInterval),
		presence.WithTimeout(cfg.PresenceTimeout),
		presence.WithFallbackUsername(cfg.PresenceUsername),
		presence.WithLogger(logger),
	)

	contactService := service.NewContactService(m, deliveries, cfg.Recipient)

	h := handler.New(db, smtpStatus)
	routes := handler.Routes(h,
		handler.NewContactHandler(contactService),
		handler.NewPresenceHandler(tracker),
	)

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      routes,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return tracker.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown error", "error", err)
		}
		return nil
	})
	return g.Wait()
}
