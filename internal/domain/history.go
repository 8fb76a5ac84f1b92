package domain

import (
	"strings"
	"time"
)

// MaxHistoryEntries bounds both the search and the reading list of a daily document.
const MaxHistoryEntries = 50

// History is one user's activity for one UTC day.
type History struct {
	UserID         string         `json:"user_id" bson:"user_id"`
	Date           time.Time      `json:"date" bson:"date"`
	ReadingHistory []ReadingEntry `json:"reading_history" bson:"reading_history"`
	SearchHistory  []SearchEntry  `json:"search_history" bson:"search_history"`
	CreatedAt      time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at" bson:"updated_at"`
	// Version counts saves; zero means the document has not been stored yet.
	Version        int64          `json:"-" bson:"version"`
}

type ReadingEntry struct {
	BlogID      string    `json:"blog_id" bson:"blog_id"`
	ReadAt      time.Time `json:"read_at" bson:"read_at"`
	ReadingTime int       `json:"reading_time" bson:"reading_time"`
}

type SearchEntry struct {
	Query      string    `json:"query" bson:"query"`
	SearchedAt time.Time `json:"searched_at" bson:"searched_at"`
	Frequency  int       `json:"frequency" bson:"frequency"`
	Thumbnail  string    `json:"thumbnail,omitempty" bson:"thumbnail,omitempty"`
}

func DayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func NewHistory(userID string, now time.Time) *History {
	return &History{
		UserID:         userID,
		Date:           DayStart(now),
		ReadingHistory: []ReadingEntry{},
		SearchHistory:  []SearchEntry{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// RecordSearch bumps an existing query or prepends a new one, keeping the 50 most recent.
func (h *History) RecordSearch(query, thumbnail string, now time.Time) {
	for i := range h.SearchHistory {
		if h.SearchHistory[i].Query != query {
			continue
		}
		h.SearchHistory[i].Frequency++
		h.SearchHistory[i].SearchedAt = now
		if thumbnail != "" {
			h.SearchHistory[i].Thumbnail = thumbnail
		}
		h.UpdatedAt = now
		return
	}

	entry := SearchEntry{Query: query, SearchedAt: now, Frequency: 1, Thumbnail: thumbnail}
	h.SearchHistory = append([]SearchEntry{entry}, h.SearchHistory...)
	if len(h.SearchHistory) > MaxHistoryEntries {
		h.SearchHistory = h.SearchHistory[:MaxHistoryEntries]
	}
	h.UpdatedAt = now
}

func (h *History) RecordRead(blogID string, readingTime int, now time.Time) {
	entry := ReadingEntry{BlogID: blogID, ReadAt: now, ReadingTime: readingTime}
	h.ReadingHistory = append([]ReadingEntry{entry}, h.ReadingHistory...)
	if len(h.ReadingHistory) > MaxHistoryEntries {
		h.ReadingHistory = h.ReadingHistory[:MaxHistoryEntries]
	}
	h.UpdatedAt = now
}

// LatestSearch is the query with the newest searched_at, not the head of the list.
func (h *History) LatestSearch() (SearchEntry, bool) {
	var latest SearchEntry
	found := false
	for _, e := range h.SearchHistory {
		if !found || e.SearchedAt.After(latest.SearchedAt) {
			latest = e
			found = true
		}
	}
	return latest, found
}

type SearchHistoryInput struct {
	Query     string `json:"query" validate:"required,max=200"`
	Thumbnail string `json:"thumbnail,omitempty" validate:"omitempty,url"`
}

func (in SearchHistoryInput) Normalized() string {
	return strings.TrimSpace(in.Query)
}

// ReadingHistoryItem is a reading entry joined with its blog.
type ReadingHistoryItem struct {
	BlogID      string       `json:"blog_id"`
	Title       string       `json:"title"`
	Slug        string       `json:"slug,omitempty"`
	Author      *UserSummary `json:"author,omitempty"`
	ReadAt      time.Time    `json:"read_at"`
	ReadingTime int          `json:"reading_time"`
}
