package main

import (
	"fmt"
	"os"

	"github.com/nurpe/tourbook/internal/auth"
	"github.com/nurpe/tourbook/internal/cache"
	"github.com/nurpe/tourbook/internal/config"
	"github.com/nurpe/tourbook/internal/db"
	"github.com/nurpe/tourbook/internal/excel"
	httphandler "github.com/nurpe/tourbook/internal/http"
	"github.com/nurpe/tourbook/internal/http/middleware"
	"github.com/nurpe/tourbook/internal/logger"
	"github.com/nurpe/tourbook/internal/notify"
	"github.com/nurpe/tourbook/internal/pdf"
	"github.com/nurpe/tourbook/internal/repository"
	"github.com/nurpe/tourbook/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	redisClient := cache.NewRedisClient(cfg.Cache, log)
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}
	catalogCache := cache.NewCatalogCache(redisClient, cfg.Cache.CatalogTTL, log)

	publisher := notify.NewPublisher(cfg.Queue, log)
	if !publisher.Enabled() {
		log.Info().Msg("AMQP_URL not set, reservation events disabled")
	}

	voucherGenerator, err := pdf.NewGenerator(cfg.PDF.FontPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init voucher generator")
	}

	reservationService := service.NewReservationService(repository.NewReservationRepository(database))
	catalogService := service.NewCatalogService(repository.NewProductRepository(database), catalogCache)
	quoteService := service.NewQuoteService(
		repository.NewQuoteRepository(database),
		reservationService,
		cfg.Booking.DefaultDepositPercent,
		cfg.Booking.DefaultHeadcount,
	)
	documentService := service.NewDocumentService(reservationService, excel.NewGenerator(), voucherGenerator)

	sessions := auth.NewParser(cfg.Auth.AccessSecret)
	handler := httphandler.NewHandler(reservationService, catalogService, quoteService, documentService, publisher, log)
	router := httphandler.NewRouter(handler,
		middleware.Auth(sessions, cfg.Auth.SessionCookie),
		middleware.OptionalAuth(sessions, cfg.Auth.SessionCookie),
		httphandler.RouterConfig{Environment: cfg.Environment, AllowedOrigins: cfg.HTTP.AllowedOrigins},
		log,
	)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting tourbook service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
