package main

import (
	"context"
	"flag"
	"time"

	"reviewhub/proj/internal/api/tasks"
	"reviewhub/proj/internal/config"
	"reviewhub/proj/internal/lib/logger"
	"reviewhub/proj/internal/services"
	"reviewhub/proj/internal/storage/postgres"
	storagemodels "reviewhub/proj/internal/storage/postgres/models"

	"github.com/joho/godotenv"
)

const version = "1.0.0"

func main() {
	godotenv.Load()
	cfgPath := flag.String("config", "config/local.yml", "path to config file")
	flag.Parse()
	cfg := config.MustLoad(*cfgPath)
	log := logger.SetupLogger(cfg.Debug)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	storage, err := postgres.New(ctx, cfg.DB.Dsn, cfg.DB.MaxConns, cfg.DB.MaxConnIdleTime)
	if err != nil {
		panic(err)
	}
	defer storage.Conn.Close()
	if err := postgres.Migrate(cfg.DB.Dsn); err != nil {
		panic(err)
	}
	log.Info("database connection established")

	bgTasks := tasks.New(log, cfg.BGTasks.MaxWorkers, cfg.BGTasks.QueueSize)
	bgTasks.Run()

	models := storagemodels.New(storage)
	app := NewApplication(cfg, log, services.New(log, cfg, models, bgTasks))
	if err := app.serve(); err != nil {
		log.Error("server error", "err", err.Error())
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := bgTasks.Shutdown(shutdownCtx); err != nil {
		log.Error("background tasks shutdown error", "err", err.Error())
	}
}
