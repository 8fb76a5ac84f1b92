package handler

import "ls-tech-blogs/internal/service"

type Handlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Blog         *BlogHandler
	Interaction  *InteractionHandler
	Notification *NotificationHandler
	History      *HistoryHandler
	Media        *MediaHandler
	Report       *ReportHandler
	Admin        *AdminHandler
}

func NewHandlers(services *service.Services, locale string) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(services.Auth, locale),
		User:         NewUserHandler(services.User, services.Media),
		Blog:         NewBlogHandler(services.Blog, services.Bookmark),
		Interaction:  NewInteractionHandler(services.Interaction, locale),
		Notification: NewNotificationHandler(services.Notification, locale),
		History:      NewHistoryHandler(services.History, locale),
		Media:        NewMediaHandler(services.Media),
		Report:       NewReportHandler(services.Report),
		Admin: NewAdminHandler(
			services.User,
			services.Blog,
			services.Interaction,
			services.Notification,
			services.Report,
			services.Dashboard,
			services.Export,
			services.Audit,
			locale,
		),
	}
}
