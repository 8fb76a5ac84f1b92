package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"ls-tech-blogs/internal/config"
	"ls-tech-blogs/internal/repository"
	"ls-tech-blogs/internal/service/audit"
	"ls-tech-blogs/internal/service/auth"
	"ls-tech-blogs/internal/service/blog"
	"ls-tech-blogs/internal/service/bookmark"
	"ls-tech-blogs/internal/service/dashboard"
	"ls-tech-blogs/internal/service/email"
	"ls-tech-blogs/internal/service/export"
	"ls-tech-blogs/internal/service/history"
	"ls-tech-blogs/internal/service/interaction"
	"ls-tech-blogs/internal/service/media"
	"ls-tech-blogs/internal/service/notification"
	"ls-tech-blogs/internal/service/report"
	"ls-tech-blogs/internal/service/user"
)

type Services struct {
	Auth         auth.Service
	User         user.Service
	Blog         blog.Service
	Bookmark     bookmark.Service
	Interaction  interaction.Service
	Notification notification.Service
	History      history.Service
	Media        media.Service
	Report       report.Service
	Email        email.Service
	Dashboard    dashboard.Service
	Export       export.Service
	Audit        audit.Service
}

func NewServices(repos *repository.Repositories, redis *redis.Client, minioClient *minio.Client, cfg *config.Config) *Services {
	emailService := email.NewService(cfg)
	authService := auth.NewService(
		repos.User,
		repos.Session,
		auth.NewRedisOTPStore(redis),
		auth.NewGoogleVerifier(cfg.GoogleClientID),
		emailService,
		cfg,
	)

	notificationService := notification.NewService(repos.Notification, repos.User, repos.Stats, cfg.Locale)
	historyService := history.NewService(repos.History, repos.Blog)

	blogService := blog.NewService(repos.Blog, historyService, redis)
	blogService.SetNotificationService(notificationService)

	interactionService := interaction.NewService(repos.Interaction, repos.Blog, cfg.Locale)
	interactionService.SetNotificationService(notificationService)

	return &Services{
		Auth:         authService,
		User:         user.NewService(repos.User, repos.Blog, repos.Session),
		Blog:         blogService,
		Bookmark:     bookmark.NewService(repos.Bookmark, repos.Blog),
		Interaction:  interactionService,
		Notification: notificationService,
		History:      historyService,
		Media:        media.NewService(repos.Media, minioClient, cfg),
		Report:       report.NewService(repos.Report, repos.Blog, repos.Interaction),
		Email:        emailService,
		Dashboard:    dashboard.NewService(repos.Stats, redis),
		Export:       export.NewService(repos.User, repos.Blog, repos.Interaction),
		Audit:        audit.NewService(repos.AuditLog),
	}
}
