package main

import (
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	httpapi "github.com/connectwave/signaling/internal/api/http"
	"github.com/connectwave/signaling/internal/config"
	"github.com/connectwave/signaling/internal/registry"
	"github.com/connectwave/signaling/internal/service"
	"github.com/connectwave/signaling/lib/logger/slogpretty"
)

func main() {
	_ = godotenv.Load(".env")

	cfg := config.MustLoad()
	log := setupLogger(cfg.Env)

	if cfg.Env == envProd {
		gin.SetMode(gin.ReleaseMode)
	}

	rooms := registry.New()
	relay := service.NewRelayService(rooms, log)

	signalController := httpapi.NewSignalController(relay, cfg.WS, log)
	roomController := httpapi.NewRoomController(relay, log)

	router := httpapi.SetupRouter(cfg.CORS.AllowedOrigins, signalController, roomController)

	log.Info("starting application", slog.String("addr", cfg.HTTP.Address))
	if err := router.Run(cfg.HTTP.Address); err != nil {
		log.Error("http server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = setupPrettySlog()
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	handler := opts.NewPrettyHandler(os.Stdout)

	return slog.New(handler)
}
