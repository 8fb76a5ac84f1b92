package domain

import "time"

type ExportType string

const (
	ExportUsers    ExportType = "users"
	ExportBlogs    ExportType = "blogs"
	ExportComments ExportType = "comments"
)

func (t ExportType) IsValid() bool {
	switch t {
	case ExportUsers, ExportBlogs, ExportComments:
		return true
	}
	return false
}

// ExportFile carries the CSV body inline so the client can save it.
type ExportFile struct {
	Data     string `json:"data"`
	Filename string `json:"filename"`
}

type BlogExportRow struct {
	ID        string    `db:"id"`
	Title     string    `db:"title"`
	Author    string    `db:"author"`
	Status    string    `db:"status"`
	Views     int64     `db:"views"`
	Likes     int64     `db:"likes"`
	Comments  int64     `db:"comments"`
	CreatedAt time.Time `db:"created_at"`
}

type CommentExportRow struct {
	ID        string    `db:"id"`
	Content   string    `db:"content"`
	Author    string    `db:"author"`
	BlogTitle string    `db:"blog_title"`
	Likes     int64     `db:"likes"`
	CreatedAt time.Time `db:"created_at"`
}
