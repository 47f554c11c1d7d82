package models

import (
	"time"

	"github.com/google/uuid"
)

type Pageview struct {
	ID        uuid.UUID `db:"id" json:"id"`
	SessionID string    `db:"session_id" json:"sessionId"`
	URL       string    `db:"url" json:"url"`
	Path      string    `db:"path" json:"path"`
	Title     string    `db:"title" json:"title,omitempty"`
	Referrer  string    `db:"referrer" json:"referrer,omitempty"`
	UserAgent string    `db:"user_agent" json:"userAgent,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

type AnalyticsEvent struct {
	ID        uuid.UUID      `db:"id" json:"id"`
	SessionID string         `db:"session_id" json:"sessionId"`
	Name      string         `db:"name" json:"name"`
	Category  string         `db:"category" json:"category,omitempty"`
	Label     string         `db:"label" json:"label,omitempty"`
	Value     float64        `db:"value" json:"value,omitempty"`
	URL       string         `db:"url" json:"url,omitempty"`
	Props     map[string]any `db:"props" json:"props,omitempty"`
	CreatedAt time.Time      `db:"created_at" json:"createdAt"`
}

// Session keeps running aggregates for one visitor session; it is the only
// analytics record that is updated after insert.
type Session struct {
	ID        string    `db:"id" json:"id"`
	FirstSeen time.Time `db:"first_seen" json:"firstSeen"`
	LastSeen  time.Time `db:"last_seen" json:"lastSeen"`
	Pageviews int       `db:"pageviews" json:"pageviews"`
	Duration  int       `db:"duration" json:"duration"`
	EntryURL  string    `db:"entry_url" json:"entryUrl"`
	LastURL   string    `db:"last_url" json:"lastUrl"`
	UserAgent string    `db:"user_agent" json:"userAgent,omitempty"`
}

type DayCount struct {
	Day       time.Time `json:"day"`
	Pageviews int64     `json:"pageviews"`
	Sessions  int64     `json:"sessions"`
}

type PageCount struct {
	Path      string `json:"path"`
	Pageviews int64  `json:"pageviews"`
}

type AnalyticsOverview struct {
	Pageviews       int64   `json:"pageviews"`
	Sessions        int64   `json:"sessions"`
	Events          int64   `json:"events"`
	AvgDuration     float64 `json:"avgDuration"`
	AvgPagesPerSess float64 `json:"avgPagesPerSession"`
}
