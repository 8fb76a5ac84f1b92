package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"ls-tech-blogs/internal/config"
	"ls-tech-blogs/internal/domain"
	"ls-tech-blogs/internal/handler"
	"ls-tech-blogs/internal/middleware"
	"ls-tech-blogs/internal/pkg/i18n"
	applog "ls-tech-blogs/internal/pkg/logger"
	"ls-tech-blogs/internal/repository"
	"ls-tech-blogs/internal/service"
)

const sessionSweepInterval = time.Hour

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	cfg := config.Load()
	applog.Setup(cfg.LogLevel, cfg.Environment)

	if err := i18n.LoadTranslations(cfg.LocalesPath); err != nil {
		logrus.WithError(err).Fatal("failed to load translations")
	}

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}
	defer db.Close()

	redis, err := config.NewRedisClient(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to Redis")
	}
	defer redis.Close()

	mongoDB, err := config.NewMongoDatabase(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to MongoDB")
	}
	defer func() { _ = mongoDB.Client().Disconnect(context.Background()) }()

	if err := repository.EnsureHistoryIndexes(context.Background(), mongoDB); err != nil {
		logrus.WithError(err).Warn("failed to ensure history indexes")
	}

	minioClient, err := config.NewMinIOClient(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to MinIO")
	}

	repos := repository.NewRepositories(db, mongoDB)
	services := service.NewServices(repos, redis, minioClient, cfg)
	handlers := handler.NewHandlers(services, cfg.Locale)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go sweepSessions(ctx, repos.Session)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
		BodyLimit:    12 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	setupRoutes(app, handlers, services)

	go func() {
		<-ctx.Done()
		logrus.Info("shutting down server")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logrus.WithError(err).Error("server shutdown failed")
		}
	}()

	logrus.WithField("port", cfg.Port).Info("server starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		logrus.WithError(err).Fatal("failed to start server")
	}
}

// sweepSessions drops expired refresh sessions until ctx is cancelled.
func sweepSessions(ctx context.Context, sessions repository.SessionRepository) {
	ticker := time.NewTicker(sessionSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := sessions.DeleteExpired(ctx)
			if err != nil {
				logrus.WithError(err).Warn("failed to delete expired sessions")
				continue
			}
			if n > 0 {
				logrus.WithField("count", n).Debug("expired sessions removed")
			}
		}
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, services *service.Services) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")
	authRequired := middleware.AuthRequired(services.Auth)
	optionalAuth := middleware.OptionalAuth(services.Auth)

	auth := v1.Group("/auth")
	auth.Post("/signup", h.Auth.Signup)
	auth.Post("/verify", h.Auth.VerifyOTP)
	auth.Post("/resend-otp", h.Auth.ResendOTP)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/google", h.Auth.GoogleLogin)
	auth.Post("/refresh", h.Auth.RefreshToken)
	auth.Post("/forgot-password", h.Auth.ForgotPassword)
	auth.Post("/reset-password", h.Auth.ResetPassword)

	blogs := v1.Group("/blogs")
	blogs.Get("/", optionalAuth, h.Blog.List)
	blogs.Get("/mine", authRequired, h.Blog.ListMine)
	blogs.Get("/:id", optionalAuth, h.Blog.Get)
	blogs.Post("/", authRequired, h.Blog.Create)
	blogs.Put("/:id", authRequired, h.Blog.Update)
	blogs.Put("/:id/publish", authRequired, h.Blog.Publish)
	blogs.Put("/:id/unpublish", authRequired, h.Blog.Unpublish)
	blogs.Delete("/:id", authRequired, h.Blog.Delete)
	blogs.Post("/:id/bookmark", authRequired, h.Blog.ToggleBookmark)
	v1.Get("/bookmarks", authRequired, h.Blog.ListBookmarks)

	v1.Post("/blog/:id/interaction", authRequired, h.Interaction.Post)

	post := v1.Group("/post", authRequired)
	post.Get("/likes/:id", h.Interaction.GetLikes)
	post.Post("/comments/:id", h.Interaction.GetComments)
	post.Post("/replies/:id", h.Interaction.GetReplies)
	post.Put("/comment/like/:id", h.Interaction.LikeComment)
	post.Put("/update/comment/:id", h.Interaction.UpdateComment)
	post.Delete("/deleteinteraction/:id", h.Interaction.Delete)

	notifications := v1.Group("/notifications", authRequired)
	notifications.Get("/", h.Notification.List)
	notifications.Post("/", h.Notification.List)
	notifications.Put("/read-all", h.Notification.MarkAllAsRead)
	notifications.Put("/:id/read", h.Notification.MarkAsRead)
	notifications.Post("/unread-count", h.Notification.GetUnreadCount)

	v1.Post("/search/history", authRequired, h.History.RecordSearch)
	v1.Get("/history/reading", authRequired, h.History.ReadingHistory)

	users := v1.Group("/users", authRequired)
	users.Get("/me", h.User.GetProfile)
	users.Put("/me", h.User.UpdateProfile)
	users.Put("/me/picture", h.User.UpdatePicture)
	users.Get("/:id/profile", h.User.GetPublicProfile)

	media := v1.Group("/media", authRequired)
	media.Post("/", h.Media.Upload)
	media.Get("/", h.Media.List)
	media.Delete("/:id", h.Media.Delete)

	v1.Post("/reports", authRequired, h.Report.Create)

	admin := v1.Group("/admin", authRequired, middleware.RequireRole(domain.RoleAdmin))
	admin.Get("/users", h.Admin.ListUsers)
	admin.Get("/users/:id", h.Admin.GetUser)
	admin.Put("/users/:id/role", h.Admin.UpdateUserRole)
	admin.Put("/users/:id/status", h.Admin.UpdateUserStatus)
	admin.Get("/blogs", h.Admin.ListBlogs)
	admin.Delete("/blogs/:id", h.Admin.DeleteBlog)
	admin.Get("/comments", h.Admin.ListComments)
	admin.Delete("/comments/:id", h.Admin.DeleteComment)
	admin.Post("/notification", h.Admin.SendNotification)
	admin.Get("/notifications", h.Admin.ListNotifications)
	admin.Get("/broadcasts", h.Admin.ListNotifications)
	admin.Delete("/notifications/:id", h.Admin.DeleteNotification)
	admin.Get("/reports", h.Admin.ListReports)
	admin.Put("/reports/:id", h.Admin.UpdateReport)
	admin.Get("/dashboard/stats", h.Admin.DashboardStats)
	admin.Get("/exports/:type", h.Admin.Export)
	admin.Get("/audit-logs", h.Admin.ListAuditLogs)
}
