package main

import (
	"io"
	"log/slog"
	"testing"

	"reviewhub/proj/internal/config"
	"reviewhub/proj/internal/services"
)

func NewTestApplication(services *services.Services, t *testing.T) *Application {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{}
	return &Application{
		cfg:          cfg,
		log:          log,
		services:     services,
		validator:    newValidator(),
		queryDecoder: newQueryDecoder(),
		Http: &Http{
			log: log,
			cfg: cfg,
		},
	}
}
