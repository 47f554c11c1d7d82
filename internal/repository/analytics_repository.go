package repository

import (
	"context"
	"fmt"
	"time"

	"magazine_cms/internal/domain/models"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4/pgxpool"
)

type AnalyticsRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewAnalyticsRepository(db *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *AnalyticsRepo) SavePageview(ctx context.Context, pv models.Pageview) error {
	const op = "repository.analytics_repository.SavePageview"

	query, args, err := r.sb.Insert("pageviews").
		Columns("session_id", "url", "path", "title", "referrer", "user_agent", "created_at").
		Values(pv.SessionID, pv.URL, pv.Path, pv.Title, pv.Referrer, pv.UserAgent, pv.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *AnalyticsRepo) SaveEvent(ctx context.Context, ev models.AnalyticsEvent) error {
	const op = "repository.analytics_repository.SaveEvent"

	query, args, err := r.sb.Insert("analytics_events").
		Columns("session_id", "name", "category", "label", "value", "url", "props", "created_at").
		Values(ev.SessionID, ev.Name, ev.Category, ev.Label, ev.Value, ev.URL, ev.Props, ev.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// TouchSession creates the session on its first hit and otherwise bumps the
// running aggregates in the same statement.
func (r *AnalyticsRepo) TouchSession(ctx context.Context, s models.Session) error {
	const op = "repository.analytics_repository.TouchSession"

	query, args, err := r.sb.Insert("sessions").
		Columns("id", "first_seen", "last_seen", "pageviews", "duration", "entry_url", "last_url", "user_agent").
		Values(s.ID, s.LastSeen, s.LastSeen, s.Pageviews, 0, s.LastURL, s.LastURL, s.UserAgent).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			last_seen = GREATEST(sessions.last_seen, EXCLUDED.last_seen),
			pageviews = sessions.pageviews + EXCLUDED.pageviews,
			duration  = GREATEST(0, EXTRACT(EPOCH FROM (GREATEST(sessions.last_seen, EXCLUDED.last_seen) - sessions.first_seen))::INT),
			last_url  = CASE WHEN EXCLUDED.last_url = '' THEN sessions.last_url ELSE EXCLUDED.last_url END`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *AnalyticsRepo) CountPageviews(ctx context.Context, since time.Time) (int64, error) {
	const op = "repository.analytics_repository.CountPageviews"

	n, err := r.count(ctx, "pageviews", "created_at", since)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return n, nil
}

func (r *AnalyticsRepo) CountSessions(ctx context.Context, since time.Time) (int64, error) {
	const op = "repository.analytics_repository.CountSessions"

	n, err := r.count(ctx, "sessions", "last_seen", since)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return n, nil
}

func (r *AnalyticsRepo) CountEvents(ctx context.Context, since time.Time) (int64, error) {
	const op = "repository.analytics_repository.CountEvents"

	n, err := r.count(ctx, "analytics_events", "created_at", since)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return n, nil
}

func (r *AnalyticsRepo) count(ctx context.Context, table, column string, since time.Time) (int64, error) {
	query, args, err := r.sb.Select("COUNT(*)").
		From(table).
		Where(sq.GtOrEq{column: since}).
		ToSql()
	if err != nil {
		return 0, err
	}

	var n int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}

	return n, nil
}

func (r *AnalyticsRepo) SessionAverages(ctx context.Context, since time.Time) (float64, float64, error) {
	const op = "repository.analytics_repository.SessionAverages"

	query, args, err := r.sb.Select("COALESCE(AVG(duration), 0)::FLOAT8", "COALESCE(AVG(pageviews), 0)::FLOAT8").
		From("sessions").
		Where(sq.GtOrEq{"last_seen": since}).
		ToSql()
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", op, err)
	}

	var avgDuration, avgPages float64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&avgDuration, &avgPages); err != nil {
		return 0, 0, fmt.Errorf("%s: %w", op, err)
	}

	return avgDuration, avgPages, nil
}

// PageviewsByDay groups pageviews by UTC calendar day, oldest first.
func (r *AnalyticsRepo) PageviewsByDay(ctx context.Context, since time.Time) ([]models.DayCount, error) {
	const op = "repository.analytics_repository.PageviewsByDay"

	query, args, err := r.sb.Select(
		"date_trunc('day', created_at AT TIME ZONE 'UTC') AS day",
		"COUNT(*)",
		"COUNT(DISTINCT session_id)",
	).
		From("pageviews").
		Where(sq.GtOrEq{"created_at": since}).
		GroupBy("day").
		OrderBy("day").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	days := make([]models.DayCount, 0)
	for rows.Next() {
		var d models.DayCount
		if err := rows.Scan(&d.Day, &d.Pageviews, &d.Sessions); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		d.Day = d.Day.UTC()
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return days, nil
}

func (r *AnalyticsRepo) TopPages(ctx context.Context, since time.Time, limit int) ([]models.PageCount, error) {
	const op = "repository.analytics_repository.TopPages"

	query, args, err := r.sb.Select("path", "COUNT(*) AS hits").
		From("pageviews").
		Where(sq.GtOrEq{"created_at": since}).
		GroupBy("path").
		OrderBy("hits DESC", "path").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	pages := make([]models.PageCount, 0, limit)
	for rows.Next() {
		var p models.PageCount
		if err := rows.Scan(&p.Path, &p.Pageviews); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		pages = append(pages, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return pages, nil
}
