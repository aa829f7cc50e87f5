package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/Chatch9856/caringhandsnky-sub000/internal/dbmysql"
	"github.com/Chatch9856/caringhandsnky-sub000/internal/di"
	"github.com/Chatch9856/caringhandsnky-sub000/internal/messaging/handler"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	log := newLogger()

	app, cleanup, err := di.InitializeApplication(log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize messaging service")
	}
	defer cleanup()

	if err := dbmysql.Migrate(app.DB); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	router := mux.NewRouter()
	router.Use(handler.RequestLogger(log))
	app.Handler.Routes(router)
	router.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	srv := &http.Server{
		Addr:         app.Config.Server.Host + ":" + app.Config.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(app.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(app.Config.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("messaging service listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func newLogger() zerolog.Logger {
	level, err := zerolog.ParseLevel(envOrDefault("LOG_LEVEL", "info"))
	if err != nil {
		level = zerolog.InfoLevel
	}

	var log zerolog.Logger
	if envOrDefault("LOG_FORMAT", "json") == "console" {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		log = zerolog.New(os.Stderr)
	}
	return log.Level(level).With().Timestamp().Str("service", "messaging").Logger()
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
