package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	recoverer "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"github.com/thinkful-ei22/dan-noteful-4/auth"
	"github.com/thinkful-ei22/dan-noteful-4/config"
	httphandlers "github.com/thinkful-ei22/dan-noteful-4/http"
	"github.com/thinkful-ei22/dan-noteful-4/store/surreal"
	"github.com/thinkful-ei22/dan-noteful-4/validate"
	"github.com/thinkful-ei22/dan-noteful-4/ws"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		l := zerolog.New(os.Stderr)
		l.Fatal().Err(err).Msg("load config")
	}

	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if cfg.LogPretty {
		log = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	st, err := surreal.Connect(ctx,
		cfg.Database.URL, cfg.Database.Namespace, cfg.Database.Database,
		cfg.Database.User, cfg.Database.Pass, log)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("connect store")
	}
	defer st.Close()

	if err := st.EnsureSchema(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("ensure schema")
	}

	svc := auth.NewService(st, auth.BcryptHasher{}, cfg.JWT.Secret, cfg.JWT.Expiry)
	hub := ws.NewHub(log)
	server := httphandlers.NewServer(st, validate.New(st), svc, hub, log)

	app := fiber.New(fiber.Config{
		ErrorHandler: httphandlers.ErrorHandler(log),
	})
	app.Use(recoverer.New())
	app.Use(httphandlers.RequestLogger(log))
	server.Register(app)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		log.Info().Msg("shutting down")
		_ = app.Shutdown()
	}()

	log.Info().Str("port", cfg.Port).Msg("server starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
