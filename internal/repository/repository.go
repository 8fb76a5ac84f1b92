package repository

import (
	"github.com/jmoiron/sqlx"
	"go.mongodb.org/mongo-driver/mongo"
)

type Repositories struct {
	User         UserRepository
	Session      SessionRepository
	Blog         BlogRepository
	Interaction  InteractionRepository
	Notification NotificationRepository
	Bookmark     BookmarkRepository
	Report       ReportRepository
	Stats        StatsRepository
	Media        MediaRepository
	History      HistoryRepository
	AuditLog     AuditLogRepository
}

func NewRepositories(db *sqlx.DB, mongoDB *mongo.Database) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Session:      NewSessionRepository(db),
		Blog:         NewBlogRepository(db),
		Interaction:  NewInteractionRepository(db),
		Notification: NewNotificationRepository(db),
		Bookmark:     NewBookmarkRepository(db),
		Report:       NewReportRepository(db),
		Stats:        NewStatsRepository(db),
		Media:        NewMediaRepository(db),
		History:      NewHistoryRepository(mongoDB),
		AuditLog:     NewAuditLogRepository(db),
	}
}
