package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/marishandmade/storefront/internal/admin"
	"github.com/marishandmade/storefront/internal/cart"
	"github.com/marishandmade/storefront/internal/catalog"
	"github.com/marishandmade/storefront/internal/checkout"
	"github.com/marishandmade/storefront/internal/config"
	"github.com/marishandmade/storefront/internal/db"
	"github.com/marishandmade/storefront/internal/email"
	"github.com/marishandmade/storefront/internal/handler"
	"github.com/marishandmade/storefront/internal/payment"
	"github.com/marishandmade/storefront/internal/remote"
	"github.com/marishandmade/storefront/internal/transport"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	log.Logger = log.With().Str("service", "storefront").Logger()

	log.Info().Msg("Storefront starting...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	// Remote sync capability is decided once, here. Without credentials the
	// store runs local-only and never attempts a network call.
	var mirror admin.Mirror
	switch {
	case cfg.SupabaseConfigured():
		mirror = remote.NewSupabaseClient(cfg.SupabaseURL, cfg.SupabaseAnonKey)
		log.Info().Msg("Remote sync enabled (Supabase)")
	case cfg.DatabaseURL != "":
		pg, err := db.New(context.Background(), cfg.DatabaseURL, cfg.MigrationsPath)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to mirror database")
		}
		defer pg.Close()
		mirror = remote.NewPostgresMirror(pg.Pool)
		log.Info().Msg("Remote sync enabled (Postgres)")
	default:
		log.Info().Msg("Remote sync disabled, running local-only")
	}

	snapshots := admin.NewSnapshotFile(cfg.SnapshotPath)
	store := admin.NewStore(catalog.Seed(), admin.DefaultSiteConfig(), snapshots, mirror)
	if store.SyncEnabled() {
		go store.Hydrate(context.Background())
	}

	var payments payment.Provider
	if cfg.PaymentAPIURL != "" {
		payments = payment.NewAPIClient(cfg.PaymentAPIURL)
	} else {
		payments = payment.NewSimulator(cfg.SimulatedPaymentDelay)
		log.Info().Msg("Payment API not configured, simulating payments")
	}

	var emails email.Sender
	if cfg.EmailJSConfigured() {
		emails = email.NewEmailJSSender(email.EmailJSConfig{
			ServiceID:       cfg.EmailJSServiceID,
			TemplateID:      cfg.EmailJSTemplateID,
			AdminTemplateID: cfg.EmailJSAdminTemplateID,
			PublicKey:       cfg.EmailJSPublicKey,
			AdminEmail:      cfg.AdminEmail,
		})
	} else {
		emails = email.NewLogSender()
		log.Info().Msg("EmailJS not configured, logging order emails only")
	}

	auth, err := handler.NewAuth(cfg.AdminPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialise admin auth")
	}

	carts := cart.NewRegistry()
	orchestrator := checkout.New(store, payments, emails)
	router := transport.NewRouter(store, carts, orchestrator, auth)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	log.Info().Msg("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Shutdown failed")
	}
	log.Info().Msg("Server stopped")
}
