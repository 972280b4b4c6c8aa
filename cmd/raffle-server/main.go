package main

import (
	"context"
	"net/http"
	"time"

	"raffle-server/internal/config"
	"raffle-server/internal/gameid"
	"raffle-server/internal/logging"
	"raffle-server/internal/notify"
	"raffle-server/internal/payment"
	"raffle-server/internal/store"
	httptransport "raffle-server/internal/transport/http"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load()

	appCfg, err := config.LoadApp()
	if err != nil {
		panic(err)
	}
	logging.Init(appCfg.Log)
	cfg := appCfg.Server

	st, err := store.New(cfg.PostgresDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("store init failed")
	}
	if err := st.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("db ping failed")
	}

	if err := gameid.Seed(context.Background(), st); err != nil {
		log.Fatal().Err(err).Msg("game id sequence seed failed")
	}
	ids := gameid.NewGenerator(st)

	gateway := selectGateway(cfg)
	payments := payment.NewCoordinator(gateway, payment.NewStoreRecorder(st))

	notifier := notify.NewSMTPNotifier(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)
	dispatcher := notify.NewDispatcher(notifier, cfg.NotifyQueueSize,
		time.Duration(cfg.NotifyTimeoutSecs)*time.Second)
	defer dispatcher.Close()

	r := httptransport.NewRouter(st, cfg, payments, dispatcher, ids)
	httptransport.LogRoutes(r)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	log.Info().Str("addr", cfg.HTTPAddr).Msg("http listening")
	log.Fatal().Err(server.ListenAndServe()).Msg("server stopped")
}

// selectGateway uses the real processor when a base URL is configured
// and the local auto-approving gateway otherwise.
func selectGateway(cfg config.ServerConfig) payment.Gateway {
	if cfg.PaymentBaseURL == "" {
		log.Warn().Msg("PAYMENT_BASE_URL not set, using offline payment gateway")
		return payment.NewOfflineGateway()
	}
	return payment.NewHTTPGateway(cfg.PaymentBaseURL, cfg.PaymentAPIKey,
		time.Duration(cfg.PaymentTimeoutSecs)*time.Second)
}
