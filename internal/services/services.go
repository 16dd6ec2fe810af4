package services

import (
	"log/slog"

	"reviewhub/proj/internal/config"
	"reviewhub/proj/internal/mails"
	"reviewhub/proj/internal/services/auth"
	"reviewhub/proj/internal/services/catalog"
	"reviewhub/proj/internal/services/comments"
	"reviewhub/proj/internal/services/reviews"
	"reviewhub/proj/internal/services/titles"
	"reviewhub/proj/internal/services/users"
	storagemodels "reviewhub/proj/internal/storage/postgres/models"
)

type Services struct {
	Auth     *auth.AuthService
	Users    *users.UserService
	Catalog  *catalog.CatalogService
	Titles   *titles.TitleService
	Reviews  *reviews.ReviewService
	Comments *comments.CommentService
}

func New(log *slog.Logger, cfg *config.Config, models *storagemodels.Models, taskExecutor auth.TaskExecutor) *Services {
	var mailer auth.MailProvider
	if cfg.SMTPServer.UseApi {
		mailer = &mails.ApiMailer{
			ApiUrl:       cfg.SMTPServer.ApiUrl,
			ApiToken:     cfg.SMTPServer.ApiToken,
			Sender:       cfg.SMTPServer.Sender,
			RetriesCount: cfg.SMTPServer.RetriesCount,
		}
	} else {
		mailer = mails.New(
			cfg.SMTPServer.Host,
			cfg.SMTPServer.Port,
			cfg.SMTPServer.Timeout,
			cfg.SMTPServer.Username,
			cfg.SMTPServer.Password,
			cfg.SMTPServer.Sender,
			cfg.SMTPServer.RetriesCount,
		)
	}
	catalogService := catalog.New(log, models.Categories, models.Genres)
	return &Services{
		Auth:     auth.New(log, models.Users, mailer, taskExecutor, cfg.AppSecret, cfg.TokenTTL),
		Users:    users.New(log, models.Users),
		Catalog:  catalogService,
		Titles:   titles.New(log, models.Titles, catalogService),
		Reviews:  reviews.New(log, models.Reviews, models.Titles),
		Comments: comments.New(log, models.Comments, models.Reviews),
	}
}
