package domain

import (
	"time"

	"github.com/google/uuid"
)

type DashboardStats struct {
	TotalUsers     int64         `json:"total_users" db:"total_users"`
	ActiveUsers    int64         `json:"active_users" db:"active_users"`
	NewUsersToday  int64         `json:"new_users_today" db:"new_users_today"`
	TotalBlogs     int64         `json:"total_blogs" db:"total_blogs"`
	PublishedBlogs int64         `json:"published_blogs" db:"published_blogs"`
	DraftBlogs     int64         `json:"draft_blogs" db:"draft_blogs"`
	TotalComments  int64         `json:"total_comments" db:"total_comments"`
	TotalLikes     int64         `json:"total_likes" db:"total_likes"`
	PendingReports int64         `json:"pending_reports" db:"pending_reports"`
	TopAuthors     []AuthorStat  `json:"top_authors" db:"-"`
	PopularBlogs   []PopularBlog `json:"popular_blogs" db:"-"`
	GeneratedAt    time.Time     `json:"generated_at" db:"-"`
}

type AuthorStat struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	FirstName string    `json:"first_name" db:"first_name"`
	LastName  string    `json:"last_name" db:"last_name"`
	BlogCount int64     `json:"blog_count" db:"blog_count"`
}

type PopularBlog struct {
	ID       uuid.UUID `json:"id" db:"id"`
	Title    string    `json:"title" db:"title"`
	Views    int64     `json:"views" db:"views"`
	Likes    int64     `json:"likes" db:"likes"`
	Comments int64     `json:"comments" db:"comments"`
}
