package main

import (
	"log/slog"

	"reviewhub/proj/internal/config"
	"reviewhub/proj/internal/lib/validator"
	"reviewhub/proj/internal/services"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
)

type Application struct {
	cfg          *config.Config
	log          *slog.Logger
	Http         *Http
	services     *services.Services
	validator    *govalidator.Validate
	queryDecoder *schema.Decoder
}

func NewApplication(cfg *config.Config, log *slog.Logger, services *services.Services) *Application {
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

func newValidator() *govalidator.Validate {
	v := govalidator.New(govalidator.WithRequiredStructEnabled())
	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}
	must(v.RegisterValidation("username", validator.ValidateUsername))
	must(v.RegisterValidation("notreserved", validator.ValidateNotReserved))
	must(v.RegisterValidation("slug", validator.ValidateSlug))
	must(v.RegisterValidation("maxcurrentyear", validator.ValidateMaxCurrentYear))
	return v
}

func newQueryDecoder() *schema.Decoder {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	return decoder
}
